package server

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/alexanderramin/learnhub/internal/catalog"
	"github.com/alexanderramin/learnhub/internal/domain"
	"github.com/alexanderramin/learnhub/internal/intelligence"
	"github.com/alexanderramin/learnhub/internal/llm"
	"github.com/alexanderramin/learnhub/internal/protocol"
	"github.com/alexanderramin/learnhub/internal/repository"
	"github.com/alexanderramin/learnhub/internal/service"
	"github.com/alexanderramin/learnhub/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

type stubLLM struct {
	reply string
	err   error
}

func (s stubLLM) Chat(context.Context, llm.ChatRequest) (*llm.ChatResponse, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &llm.ChatResponse{Text: s.reply}, nil
}

func (s stubLLM) Available(context.Context) bool { return s.err == nil }

type harness struct {
	srv  *Server
	repo repository.ConversationRepo
	logs *observer.ObservedLogs
}

func newHarness(t *testing.T, client llm.LLMClient, src catalog.Source) harness {
	t.Helper()
	database := testutil.NewTestDB(t)
	core, logs := observer.New(zapcore.InfoLevel)
	logger := zap.New(core)

	dispatcher := service.NewDispatcher(logger, protocol.ParseOptions{})
	repo := repository.NewSQLiteConversationRepo(database)
	chat := intelligence.NewChatService(client, dispatcher, intelligence.ChatOptions{
		UoW:    testutil.NewTestUoW(database),
		Logger: logger,
	})

	srv := New(Deps{
		Chat:       chat,
		Dispatcher: dispatcher,
		Logs:       repo,
		Catalog:    src,
		Logger:     logger,
	})
	return harness{srv: srv, repo: repo, logs: logs}
}

func (h harness) do(t *testing.T, method, path, body string) (int, map[string]any) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := h.srv.App().Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var out map[string]any
	if len(raw) > 0 && raw[0] == '{' {
		require.NoError(t, json.Unmarshal(raw, &out))
	}
	return resp.StatusCode, out
}

func catalogJSON(t *testing.T) string {
	t.Helper()
	view := domain.CatalogView{Courses: testutil.SampleCatalog(), Enrolled: testutil.SampleCatalog()[:1]}
	b, err := json.Marshal(view)
	require.NoError(t, err)
	return string(b)
}

func TestHealth(t *testing.T) {
	h := newHarness(t, stubLLM{}, nil)

	status, body := h.do(t, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "ok", body["status"])

	entries := h.logs.FilterMessage("request").All()
	require.NotEmpty(t, entries)
	assert.Equal(t, "http", entries[0].LoggerName)
}

func TestChat_Success(t *testing.T) {
	reply := "Here is your path.\n\nACTIONS:\n[ACTION:CREATE_LEARNING_PATH]\nCAREER_GOAL: DevOps engineer\n[/ACTION:CREATE_LEARNING_PATH]"
	h := newHarness(t, stubLLM{reply: reply}, nil)

	status, body := h.do(t, http.MethodPost, "/chat",
		`{"userInput":"plan devops","dbData":`+catalogJSON(t)+`,"userEmail":"a@example.com"}`)
	require.Equal(t, http.StatusOK, status)

	assert.Equal(t, "Here is your path.", body["reply"])
	actions := body["actions"].([]any)
	require.Len(t, actions, 1)
	action := actions[0].(map[string]any)
	assert.Equal(t, "CREATE_LEARNING_PATH", action["type"])
	assert.Equal(t, true, action["executed"])

	results := body["executed_results"].([]any)
	require.Len(t, results, 1)
	assert.Equal(t, true, results[0].(map[string]any)["success"])

	logs, err := h.repo.List(context.Background(), repository.ConversationFilter{})
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.Equal(t, "a@example.com", logs[0].UserEmail)
}

func TestChat_MissingUserInput(t *testing.T) {
	h := newHarness(t, stubLLM{reply: "unused"}, nil)

	for _, body := range []string{`{}`, `{"userInput":"   "}`, `not json`, ``} {
		status, out := h.do(t, http.MethodPost, "/chat", body)
		assert.Equal(t, http.StatusBadRequest, status, "body %q", body)
		assert.Equal(t, "userInput is required", out["error"], "body %q", body)
	}

	entries := h.logs.FilterMessage("request").FilterField(zap.Int("status", http.StatusBadRequest)).All()
	assert.Len(t, entries, 4)
}

func TestChat_InvalidPromptType(t *testing.T) {
	h := newHarness(t, stubLLM{reply: "unused"}, nil)

	status, out := h.do(t, http.MethodPost, "/chat", `{"userInput":"hi","promptType":"fancy"}`)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "promptType must be one of: improved naive", out["error"])
}

func TestChat_LLMFailure(t *testing.T) {
	h := newHarness(t, stubLLM{err: errors.New("upstream 502")}, nil)

	status, out := h.do(t, http.MethodPost, "/chat", `{"userInput":"hi"}`)
	assert.Equal(t, http.StatusInternalServerError, status)
	assert.Contains(t, out["error"], "upstream 502")

	logs, err := h.repo.List(context.Background(), repository.ConversationFilter{Status: domain.StatusError})
	require.NoError(t, err)
	assert.Len(t, logs, 1)
}

func TestChat_FallsBackToConfiguredCatalog(t *testing.T) {
	reply := "Top picks!\n\nACTIONS:\n[ACTION:RECOMMEND_COURSES]\n[/ACTION:RECOMMEND_COURSES]"
	src := catalog.StaticSource{View: domain.CatalogView{
		Courses:  testutil.SampleCatalog(),
		Enrolled: testutil.SampleCatalog()[:1],
	}}
	h := newHarness(t, stubLLM{reply: reply}, src)

	status, body := h.do(t, http.MethodPost, "/chat", `{"userInput":"recommend"}`)
	require.Equal(t, http.StatusOK, status)

	logs, err := h.repo.List(context.Background(), repository.ConversationFilter{})
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.Equal(t, 5, logs[0].Summary.CoursesCount)
	assert.Len(t, body["executed_results"], 1)
}

func TestDispatch(t *testing.T) {
	h := newHarness(t, stubLLM{}, nil)

	reply := `Comparing now.

ACTIONS:
[ACTION:COMPARE_COURSES]
COURSE_TITLES: Docker Fundamentals | Kubernetes Mastery
[/ACTION:COMPARE_COURSES]`
	payload, err := json.Marshal(map[string]any{"reply": reply, "dbData": json.RawMessage(catalogJSON(t))})
	require.NoError(t, err)

	status, body := h.do(t, http.MethodPost, "/dispatch", string(payload))
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Comparing now.", body["reply"])

	results := body["executed_results"].([]any)
	require.Len(t, results, 1)
	result := results[0].(map[string]any)
	assert.Equal(t, "COMPARE_COURSES", result["type"])
	assert.Equal(t, true, result["success"])

	logs, err := h.repo.List(context.Background(), repository.ConversationFilter{})
	require.NoError(t, err)
	assert.Empty(t, logs, "dispatch does not record conversations")
}

func TestDispatch_MissingReply(t *testing.T) {
	h := newHarness(t, stubLLM{}, nil)

	status, out := h.do(t, http.MethodPost, "/dispatch", `{"dbData":{}}`)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "reply is required", out["error"])
}

func TestListLogs(t *testing.T) {
	h := newHarness(t, stubLLM{}, nil)
	ctx := context.Background()

	require.NoError(t, h.repo.Create(ctx, testutil.NewTestConversation("one",
		testutil.WithAction("ADD_TO_CART", false, map[string]string{"course_title": "Docker Fundamentals"}))))
	require.NoError(t, h.repo.Create(ctx, testutil.NewTestConversation("two",
		testutil.WithStatus(domain.StatusError, "boom"))))

	req := httptest.NewRequest(http.MethodGet, "/logs?limit=10", nil)
	resp, err := h.srv.App().Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var views []LogView
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&views))
	require.Len(t, views, 2)

	byPrompt := map[string]LogView{}
	for _, v := range views {
		byPrompt[v.UserPrompt] = v
	}
	require.Len(t, byPrompt["one"].AgentActions, 1)
	assert.Nil(t, byPrompt["one"].Error)
	require.NotNil(t, byPrompt["two"].Error)
	assert.Equal(t, "boom", *byPrompt["two"].Error)

	status, out := h.do(t, http.MethodGet, "/logs?status=weird", "")
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Contains(t, out["error"], "status must be one of")
}

func TestUnknownRoute(t *testing.T) {
	h := newHarness(t, stubLLM{}, nil)

	status, out := h.do(t, http.MethodGet, "/nope", "")
	assert.Equal(t, http.StatusNotFound, status)
	assert.NotEmpty(t, out["error"])
}

func TestChat_DisabledWithoutLLM(t *testing.T) {
	srv := New(Deps{Dispatcher: service.NewDispatcher(nil, protocol.ParseOptions{})})
	h := harness{srv: srv}

	status, out := h.do(t, http.MethodPost, "/chat", `{"userInput":"hi"}`)
	assert.Equal(t, http.StatusServiceUnavailable, status)
	assert.Contains(t, out["error"], "chat is disabled")

	status, _ = h.do(t, http.MethodGet, "/logs", "")
	assert.Equal(t, http.StatusNotFound, status, "logs route needs a store")
}
