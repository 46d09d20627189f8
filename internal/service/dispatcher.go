package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/learnhub/internal/domain"
	"github.com/alexanderramin/learnhub/internal/engine"
	"github.com/alexanderramin/learnhub/internal/protocol"
	"go.uber.org/zap"
)

// ErrActionFault wraps a panic recovered while executing a single action.
var ErrActionFault = errors.New("action execution fault")

// ExecutedResult reports the outcome of one deferred action.
type ExecutedResult struct {
	Type    protocol.ActionType `json:"type"`
	Result  any                 `json:"result,omitempty"`
	Error   string              `json:"error,omitempty"`
	Success bool                `json:"success"`
}

// DispatchResult is the display text plus every detected action. Only the
// actions that needed execution appear in ExecutedResults.
type DispatchResult struct {
	Reply           string                   `json:"reply"`
	Actions         []protocol.ActionRequest `json:"actions"`
	ExecutedResults []ExecutedResult         `json:"executed_results"`
}

// Succeeded counts successful executed results.
func (r *DispatchResult) Succeeded() int {
	n := 0
	for _, er := range r.ExecutedResults {
		if er.Success {
			n++
		}
	}
	return n
}

type actionHandler func(req protocol.ActionRequest, view domain.CatalogView) (any, error)

type dispatcher struct {
	logger    *zap.Logger
	parseOpts protocol.ParseOptions
	handlers  map[protocol.ActionType]actionHandler
	observer  UseCaseObserver
}

// NewDispatcher builds the action dispatcher. A nil logger discards output.
func NewDispatcher(logger *zap.Logger, opts protocol.ParseOptions, observers ...UseCaseObserver) DispatchService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &dispatcher{
		logger:    logger.Named("dispatcher"),
		parseOpts: opts,
		handlers:  defaultHandlers(),
		observer:  useCaseObserverOrNoop(observers),
	}
}

func defaultHandlers() map[protocol.ActionType]actionHandler {
	return map[protocol.ActionType]actionHandler{
		protocol.ActionRecommendCourses:   runRecommend,
		protocol.ActionCreateLearningPath: runLearningPath,
		protocol.ActionCompareCourses:     runCompare,
	}
}

func (d *dispatcher) Dispatch(ctx context.Context, reply string, view domain.CatalogView) *DispatchResult {
	startedAt := time.Now().UTC()

	actions := protocol.ParseWithOptions(reply, d.parseOpts)
	result := &DispatchResult{
		Reply:           protocol.DisplayText(reply),
		Actions:         actions,
		ExecutedResults: []ExecutedResult{},
	}

	for i := range actions {
		a := &actions[i]
		if !a.Pending() {
			continue
		}
		if a.Type == protocol.ActionAddToCart {
			d.groundCartTitle(a, view)
			continue
		}
		handler, ok := d.handlers[a.Type]
		if !ok {
			continue
		}

		out, err := d.execute(handler, *a, view)
		if err != nil {
			a.Error = err.Error()
			d.logger.Warn("action failed",
				zap.String("type", string(a.Type)),
				zap.Int("index", i),
				zap.Error(err),
			)
			result.ExecutedResults = append(result.ExecutedResults, ExecutedResult{
				Type:  a.Type,
				Error: a.Error,
			})
			continue
		}

		a.Executed = true
		a.Result = out
		result.ExecutedResults = append(result.ExecutedResults, ExecutedResult{
			Type:    a.Type,
			Result:  out,
			Success: true,
		})
	}

	d.observer.ObserveUseCase(ctx, UseCaseEvent{
		Name:      "dispatch",
		StartedAt: startedAt,
		Duration:  time.Since(startedAt),
		Success:   true,
		Fields: map[string]any{
			"actions":   len(actions),
			"executed":  len(result.ExecutedResults),
			"succeeded": result.Succeeded(),
		},
	})
	return result
}

// execute runs one handler, converting a panic into an error so that a
// single faulty action never aborts the batch.
func (d *dispatcher) execute(h actionHandler, req protocol.ActionRequest, view domain.CatalogView) (out any, err error) {
	defer func() {
		if r := recover(); r != nil {
			out = nil
			err = fmt.Errorf("%w: %v", ErrActionFault, r)
		}
	}()
	return h(req, view)
}

func (d *dispatcher) groundCartTitle(a *protocol.ActionRequest, view domain.CatalogView) {
	m, err := engine.Resolve(a.CourseTitle, view.Courses)
	if err != nil {
		d.logger.Debug("cart title not in catalog", zap.String("title", a.CourseTitle))
		return
	}
	course := m.Course
	a.MatchedCourse = &course
}

func runRecommend(_ protocol.ActionRequest, view domain.CatalogView) (any, error) {
	recs := engine.Recommend(view.Enrolled, view.Courses)
	if recs == nil {
		recs = []engine.Recommendation{}
	}
	return recs, nil
}

func runLearningPath(req protocol.ActionRequest, view domain.CatalogView) (any, error) {
	path := engine.PlanPath(view.Courses, req.CareerGoal)
	return &path, nil
}

func runCompare(req protocol.ActionRequest, view domain.CatalogView) (any, error) {
	return engine.Compare(req.CourseTitles, view.Courses)
}
