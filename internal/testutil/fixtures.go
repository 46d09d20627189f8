package testutil

import (
	"encoding/json"
	"time"

	"github.com/alexanderramin/learnhub/internal/domain"
	"github.com/google/uuid"
)

// Course options
type CourseOption func(*domain.Course)

func WithCategory(c string) CourseOption {
	return func(course *domain.Course) {
		course.Category = c
	}
}

func WithInstructor(name string) CourseOption {
	return func(course *domain.Course) {
		course.Instructor = name
	}
}

func WithRating(r float64) CourseOption {
	return func(course *domain.Course) {
		course.Rating = domain.Ptr(r)
	}
}

func WithPrice(p float64) CourseOption {
	return func(course *domain.Course) {
		course.Price = domain.Ptr(p)
	}
}

func WithLessons(n int) CourseOption {
	return func(course *domain.Course) {
		course.LessonsCount = domain.Ptr(n)
	}
}

func WithDuration(d string) CourseOption {
	return func(course *domain.Course) {
		course.Duration = d
	}
}

func NewTestCourse(title string, opts ...CourseOption) domain.Course {
	c := domain.Course{Title: title}
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

// SampleCatalog returns a small catalog that spans several tracks and levels.
func SampleCatalog() []domain.Course {
	return []domain.Course{
		NewTestCourse("Python Basics", WithCategory("Programming"), WithInstructor("Ana Silva"),
			WithRating(4.6), WithPrice(20), WithLessons(12), WithDuration("6h")),
		NewTestCourse("Advanced Python", WithCategory("Programming"), WithInstructor("Ana Silva"),
			WithRating(4.8), WithPrice(45), WithLessons(30), WithDuration("14h")),
		NewTestCourse("Docker Fundamentals", WithCategory("DevOps"), WithInstructor("Ben Okafor"),
			WithRating(4.4), WithPrice(30), WithLessons(18), WithDuration("8h")),
		NewTestCourse("Kubernetes Mastery", WithCategory("DevOps"), WithInstructor("Ben Okafor"),
			WithRating(4.9), WithPrice(60), WithLessons(40), WithDuration("20h")),
		NewTestCourse("Intro to UI Design", WithCategory("Design"), WithInstructor("Chloe Park"),
			WithRating(4.2), WithPrice(15), WithLessons(10), WithDuration("4h")),
	}
}

// Conversation options
type ConversationOption func(*domain.ConversationLog)

func WithUserEmail(email string) ConversationOption {
	return func(l *domain.ConversationLog) {
		l.UserEmail = email
	}
}

func WithStatus(s domain.ConversationStatus, errMsg string) ConversationOption {
	return func(l *domain.ConversationLog) {
		l.Status = s
		l.Error = errMsg
	}
}

func WithTimestamp(ts time.Time) ConversationOption {
	return func(l *domain.ConversationLog) {
		l.Timestamp = ts
	}
}

// WithAction appends an action whose payload is the JSON encoding of v.
func WithAction(actionType string, executed bool, v any) ConversationOption {
	return func(l *domain.ConversationLog) {
		payload, err := json.Marshal(v)
		if err != nil {
			payload = []byte("{}")
		}
		l.Actions = append(l.Actions, domain.ConversationAction{
			Seq:      len(l.Actions),
			Type:     actionType,
			Executed: executed,
			Payload:  payload,
		})
	}
}

func NewTestConversation(prompt string, opts ...ConversationOption) *domain.ConversationLog {
	l := &domain.ConversationLog{
		ID:            uuid.New().String(),
		Timestamp:     time.Now().UTC(),
		UserEmail:     "learner@example.com",
		UserName:      "Test Learner",
		UserPrompt:    prompt,
		PromptStyle:   domain.PromptImproved,
		ModelResponse: "Here are some ideas.",
		Status:        domain.StatusSuccess,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}
