package service

import (
	"context"

	"github.com/alexanderramin/learnhub/internal/domain"
)

// DispatchService turns a model reply into finalized actions against a
// request-scoped catalog view.
type DispatchService interface {
	Dispatch(ctx context.Context, reply string, view domain.CatalogView) *DispatchResult
}
