package repository

import (
	"context"

	"github.com/alexanderramin/learnhub/internal/domain"
)

// ConversationFilter narrows a conversation log listing. Zero values mean
// "no constraint"; Limit <= 0 falls back to DefaultListLimit.
type ConversationFilter struct {
	Limit     int
	UserEmail string
	Status    domain.ConversationStatus
}

// DefaultListLimit caps listings when the caller does not choose a limit.
const DefaultListLimit = 20

type ConversationRepo interface {
	Create(ctx context.Context, l *domain.ConversationLog) error
	GetByID(ctx context.Context, id string) (*domain.ConversationLog, error)
	List(ctx context.Context, f ConversationFilter) ([]*domain.ConversationLog, error)
	Delete(ctx context.Context, id string) error
}
