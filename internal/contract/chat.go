package contract

import (
	"errors"
	"reflect"
	"strings"

	"github.com/alexanderramin/learnhub/internal/domain"
	"github.com/alexanderramin/learnhub/internal/service"
	"github.com/go-playground/validator/v10"
)

// ChatTurn is one prior message supplied as conversation context. Clients
// send the body as either "text" or "content".
type ChatTurn struct {
	Role    string `json:"role" validate:"omitempty,oneof=user assistant system"`
	Text    string `json:"text,omitempty"`
	Content string `json:"content,omitempty"`
}

// Message returns the turn body.
func (t ChatTurn) Message() string {
	return domain.CoalesceStr(t.Text, t.Content)
}

// RoleOrUser returns the role, defaulting to "user".
func (t ChatTurn) RoleOrUser() string {
	return domain.CoalesceStr(t.Role, "user")
}

// ChatRequest is the inbound chat payload.
type ChatRequest struct {
	UserInput  string             `json:"userInput" validate:"required"`
	DBData     domain.CatalogView `json:"dbData"`
	Context    []ChatTurn         `json:"context" validate:"dive"`
	PromptType domain.PromptStyle `json:"promptType" validate:"omitempty,oneof=improved naive"`
	UserEmail  string             `json:"userEmail"`
	UserName   string             `json:"userName"`
}

// Normalize trims the user input and fills the default prompt style.
func (r *ChatRequest) Normalize() {
	r.UserInput = strings.TrimSpace(r.UserInput)
	if r.PromptType == "" {
		r.PromptType = domain.PromptImproved
	}
}

// ChatResponse is the outbound payload: display reply, finalized actions and
// the results of deferred execution.
type ChatResponse = service.DispatchResult

// DispatchRequest runs the action core on a caller-supplied reply.
type DispatchRequest struct {
	Reply  string             `json:"reply" validate:"required"`
	DBData domain.CatalogView `json:"dbData"`
}

type ChatErrorCode string

const (
	ErrInvalidRequest ChatErrorCode = "INVALID_REQUEST"
	ErrLLMFailure     ChatErrorCode = "LLM_FAILURE"
)

// ChatError is a request-level failure with a client-facing message.
type ChatError struct {
	Code    ChatErrorCode
	Message string
}

func (e *ChatError) Error() string {
	return string(e.Code) + ": " + e.Message
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Validate checks a request struct and reports the first violation as a
// ChatError with code INVALID_REQUEST.
func Validate(req any) error {
	err := validate.Struct(req)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		return &ChatError{Code: ErrInvalidRequest, Message: describe(fieldErrs[0])}
	}
	return &ChatError{Code: ErrInvalidRequest, Message: err.Error()}
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fe.Field() + " is required"
	case "oneof":
		return fe.Field() + " must be one of: " + fe.Param()
	default:
		return fe.Field() + " validation failed: " + fe.Tag()
	}
}
