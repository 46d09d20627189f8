package intelligence

import (
	"context"
	"sync"

	"github.com/alexanderramin/learnhub/internal/llm"
)

// fakeClient returns canned replies in order and records every request.
type fakeClient struct {
	mu       sync.Mutex
	replies  []string
	err      error
	requests []llm.ChatRequest
}

func (f *fakeClient) Chat(_ context.Context, req llm.ChatRequest) (*llm.ChatResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.requests = append(f.requests, req)
	if f.err != nil {
		return nil, f.err
	}
	text := ""
	if len(f.replies) > 0 {
		text = f.replies[0]
		f.replies = f.replies[1:]
	}
	return &llm.ChatResponse{Text: text, Model: "fake"}, nil
}

func (f *fakeClient) Available(context.Context) bool { return f.err == nil }

func (f *fakeClient) lastMessages() []llm.Message {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.requests) == 0 {
		return nil
	}
	return f.requests[len(f.requests)-1].Messages
}
