package server

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/alexanderramin/learnhub/internal/contract"
	"github.com/alexanderramin/learnhub/internal/domain"
	"github.com/alexanderramin/learnhub/internal/repository"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

func (s *Server) health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}

func (s *Server) chat(c *fiber.Ctx) error {
	if s.deps.Chat == nil {
		return fiber.NewError(fiber.StatusServiceUnavailable, "chat is disabled: no LLM configured")
	}
	var req contract.ChatRequest
	// An unreadable body is treated as empty so the client gets the
	// missing-field message rather than a parser error.
	if err := c.BodyParser(&req); err != nil {
		req = contract.ChatRequest{}
	}
	s.fillCatalog(c, &req.DBData)

	resp, err := s.deps.Chat.Reply(c.UserContext(), req)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

func (s *Server) dispatch(c *fiber.Ctx) error {
	var req contract.DispatchRequest
	if err := c.BodyParser(&req); err != nil {
		req = contract.DispatchRequest{}
	}
	if err := contract.Validate(req); err != nil {
		return err
	}
	s.fillCatalog(c, &req.DBData)

	return c.JSON(s.deps.Dispatcher.Dispatch(c.UserContext(), req.Reply, req.DBData))
}

// fillCatalog substitutes the configured snapshot when the request carries
// no courses. Load failures leave the request view untouched.
func (s *Server) fillCatalog(c *fiber.Ctx, view *domain.CatalogView) {
	if s.deps.Catalog == nil || len(view.Courses) > 0 {
		return
	}
	snapshot, err := s.deps.Catalog.Load(c.UserContext())
	if err != nil {
		s.log.Warn("catalog load failed", zap.String("source", s.deps.Catalog.Name()), zap.Error(err))
		return
	}
	view.Courses = snapshot.Courses
	if len(view.Enrolled) == 0 {
		view.Enrolled = snapshot.Enrolled
	}
	if len(view.Cart) == 0 {
		view.Cart = snapshot.Cart
	}
}

// ActionView is the wire form of one logged action.
type ActionView struct {
	Seq      int             `json:"seq"`
	Type     string          `json:"type"`
	Executed bool            `json:"executed"`
	Payload  json.RawMessage `json:"payload"`
}

// LogView is the wire form of a conversation log. Error is null on success.
type LogView struct {
	ID               string                `json:"id"`
	Timestamp        string                `json:"timestamp"`
	UserEmail        string                `json:"user_email"`
	UserName         string                `json:"user_name"`
	UserPrompt       string                `json:"user_prompt"`
	PromptStyle      string                `json:"prompt_style"`
	DBContextSummary domain.CatalogSummary `json:"db_context_summary"`
	ModelResponse    string                `json:"model_response"`
	AgentActions     []ActionView          `json:"agent_actions"`
	Status           string                `json:"status"`
	Error            *string               `json:"error"`
}

// NewLogView converts a stored log for output.
func NewLogView(l *domain.ConversationLog) LogView {
	v := LogView{
		ID:               l.ID,
		Timestamp:        l.Timestamp.UTC().Format(time.RFC3339),
		UserEmail:        l.UserEmail,
		UserName:         l.UserName,
		UserPrompt:       l.UserPrompt,
		PromptStyle:      string(l.PromptStyle),
		DBContextSummary: l.Summary,
		ModelResponse:    l.ModelResponse,
		AgentActions:     make([]ActionView, 0, len(l.Actions)),
		Status:           string(l.Status),
	}
	if l.Error != "" {
		v.Error = &l.Error
	}
	for _, a := range l.Actions {
		v.AgentActions = append(v.AgentActions, ActionView{
			Seq: a.Seq, Type: a.Type, Executed: a.Executed, Payload: a.Payload,
		})
	}
	return v
}

func (s *Server) listLogs(c *fiber.Ctx) error {
	status := domain.ConversationStatus(c.Query("status"))
	if status != "" && status != domain.StatusSuccess && status != domain.StatusError {
		return &contract.ChatError{Code: contract.ErrInvalidRequest, Message: "status must be one of: success error"}
	}

	logs, err := s.deps.Logs.List(c.UserContext(), repository.ConversationFilter{
		Limit:     c.QueryInt("limit", repository.DefaultListLimit),
		UserEmail: c.Query("email"),
		Status:    status,
	})
	if err != nil {
		return err
	}

	out := make([]LogView, 0, len(logs))
	for _, l := range logs {
		out = append(out, NewLogView(l))
	}
	return c.JSON(out)
}

// handleError maps request and model failures onto {"error": message}.
func (s *Server) handleError(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := err.Error()

	var chatErr *contract.ChatError
	var fiberErr *fiber.Error
	switch {
	case errors.As(err, &chatErr):
		message = chatErr.Message
		if chatErr.Code == contract.ErrInvalidRequest {
			code = fiber.StatusBadRequest
		}
	case errors.As(err, &fiberErr):
		code = fiberErr.Code
		message = fiberErr.Message
	}

	if code >= fiber.StatusInternalServerError {
		s.log.Error("request failed", zap.String("path", c.Path()), zap.Error(err))
	}
	return c.Status(code).JSON(fiber.Map{"error": message})
}
