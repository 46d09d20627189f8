package server

import (
	"time"

	"github.com/alexanderramin/learnhub/internal/catalog"
	"github.com/alexanderramin/learnhub/internal/intelligence"
	"github.com/alexanderramin/learnhub/internal/repository"
	"github.com/alexanderramin/learnhub/internal/service"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"go.uber.org/zap"
)

const bodyLimit = 10 * 1024 * 1024

// Deps are the services the HTTP surface exposes. Logs and Catalog are
// optional.
type Deps struct {
	Chat        intelligence.ChatService
	Dispatcher  service.DispatchService
	Logs        repository.ConversationRepo
	Catalog     catalog.Source
	Logger      *zap.Logger
	CORSOrigins string
}

type Server struct {
	app  *fiber.App
	deps Deps
	log  *zap.Logger
}

func New(deps Deps) *Server {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	logger = logger.Named("http")
	if deps.CORSOrigins == "" {
		deps.CORSOrigins = "*"
	}

	s := &Server{deps: deps, log: logger}
	s.app = fiber.New(fiber.Config{
		BodyLimit:             bodyLimit,
		DisableStartupMessage: true,
		ErrorHandler:          s.handleError,
		ReadTimeout:           30 * time.Second,
	})

	s.app.Use(requestLogger(logger, s.handleError))
	s.app.Use(recover.New())
	s.app.Use(cors.New(cors.Config{
		AllowOrigins: deps.CORSOrigins,
		AllowHeaders: "Origin, Content-Type, Accept",
		AllowMethods: "GET, POST, OPTIONS",
	}))

	s.registerRoutes()
	return s
}

// App exposes the fiber app, mainly for app.Test in tests.
func (s *Server) App() *fiber.App {
	return s.app
}

// Run blocks serving on addr until Shutdown is called or listening fails.
func (s *Server) Run(addr string) error {
	s.log.Info("listening", zap.String("addr", addr))
	return s.app.Listen(addr)
}

func (s *Server) Shutdown() error {
	return s.app.Shutdown()
}

func (s *Server) registerRoutes() {
	s.app.Get("/health", s.health)
	s.app.Post("/chat", s.chat)
	s.app.Post("/dispatch", s.dispatch)
	if s.deps.Logs != nil {
		s.app.Get("/logs", s.listLogs)
	}
}
