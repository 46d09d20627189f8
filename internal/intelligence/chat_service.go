package intelligence

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/alexanderramin/learnhub/internal/contract"
	"github.com/alexanderramin/learnhub/internal/db"
	"github.com/alexanderramin/learnhub/internal/domain"
	"github.com/alexanderramin/learnhub/internal/llm"
	"github.com/alexanderramin/learnhub/internal/protocol"
	"github.com/alexanderramin/learnhub/internal/repository"
	"github.com/alexanderramin/learnhub/internal/service"
	"go.uber.org/zap"
)

// EmptyReplyText replaces a blank model reply.
const EmptyReplyText = "I couldn't generate a response."

// ChatService runs one chat turn end to end: prompt, model call, action
// dispatch and conversation logging.
type ChatService interface {
	Reply(ctx context.Context, req contract.ChatRequest) (*contract.ChatResponse, error)
}

// ChatOptions configures a ChatService. A nil UoW disables conversation
// logging.
type ChatOptions struct {
	UoW             db.UnitOfWork
	Logger          *zap.Logger
	MaxCatalogChars int
	Observer        service.UseCaseObserver
}

type chatService struct {
	client     llm.LLMClient
	dispatcher service.DispatchService
	uow        db.UnitOfWork
	logger     *zap.Logger
	maxChars   int
	observer   service.UseCaseObserver
}

// NewChatService creates a ChatService backed by an LLM client.
func NewChatService(client llm.LLMClient, dispatcher service.DispatchService, opts ChatOptions) ChatService {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	observer := opts.Observer
	if observer == nil {
		observer = service.NoopUseCaseObserver{}
	}
	return &chatService{
		client:     client,
		dispatcher: dispatcher,
		uow:        opts.UoW,
		logger:     logger.Named("chat"),
		maxChars:   opts.MaxCatalogChars,
		observer:   observer,
	}
}

func (s *chatService) Reply(ctx context.Context, req contract.ChatRequest) (resp *contract.ChatResponse, err error) {
	startedAt := time.Now().UTC()
	defer func() {
		fields := map[string]any{"prompt_style": string(req.PromptType)}
		if resp != nil {
			fields["actions"] = len(resp.Actions)
		}
		s.observer.ObserveUseCase(ctx, service.UseCaseEvent{
			Name:      "chat",
			StartedAt: startedAt,
			Duration:  time.Since(startedAt),
			Success:   err == nil,
			Err:       err,
			Fields:    fields,
		})
	}()

	req.Normalize()
	if vErr := contract.Validate(req); vErr != nil {
		return nil, vErr
	}

	messages := BuildMessages(req.UserInput, req.DBData, req.Context, req.PromptType, s.maxChars)
	out, err := s.client.Chat(ctx, llm.ChatRequest{Messages: messages})
	if err != nil {
		s.record(ctx, failedLog(req, err))
		return nil, &contract.ChatError{Code: contract.ErrLLMFailure, Message: err.Error()}
	}

	text := strings.TrimSpace(out.Text)
	if text == "" {
		text = EmptyReplyText
	}

	result := s.dispatcher.Dispatch(ctx, text, req.DBData)
	s.record(ctx, successLog(req, result))
	return result, nil
}

// record persists a conversation log. Failures are logged and never
// surface to the caller.
func (s *chatService) record(ctx context.Context, l *domain.ConversationLog) {
	if s.uow == nil {
		return
	}
	err := s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		return repository.NewSQLiteConversationRepo(tx).Create(ctx, l)
	})
	if err != nil {
		s.logger.Warn("conversation log write failed",
			zap.String("status", string(l.Status)),
			zap.Error(err),
		)
	}
}

func baseLog(req contract.ChatRequest) *domain.ConversationLog {
	return &domain.ConversationLog{
		Timestamp:   time.Now().UTC(),
		UserEmail:   req.UserEmail,
		UserName:    req.UserName,
		UserPrompt:  req.UserInput,
		PromptStyle: req.PromptType,
	}
}

func successLog(req contract.ChatRequest, result *service.DispatchResult) *domain.ConversationLog {
	l := baseLog(req)
	l.Summary = req.DBData.Summary()
	l.ModelResponse = result.Reply
	l.Status = domain.StatusSuccess
	l.Actions = conversationActions(result.Actions)
	return l
}

// failedLog records a turn that never reached the model reply. The catalog
// summary is left empty.
func failedLog(req contract.ChatRequest, cause error) *domain.ConversationLog {
	l := baseLog(req)
	l.Status = domain.StatusError
	l.Error = cause.Error()
	return l
}

func conversationActions(actions []protocol.ActionRequest) []domain.ConversationAction {
	out := make([]domain.ConversationAction, 0, len(actions))
	for i, a := range actions {
		payload, err := json.Marshal(a)
		if err != nil {
			payload = []byte("{}")
		}
		out = append(out, domain.ConversationAction{
			Seq:      i,
			Type:     string(a.Type),
			Executed: a.Executed,
			Payload:  payload,
		})
	}
	return out
}

// IsLLMFailure reports whether err came from the model call rather than
// request validation.
func IsLLMFailure(err error) bool {
	var chatErr *contract.ChatError
	return errors.As(err, &chatErr) && chatErr.Code == contract.ErrLLMFailure
}
