package service

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"promo-insights-be/internal/constant"
	"promo-insights-be/internal/dto"
	"promo-insights-be/internal/repository/memory"
	"promo-insights-be/internal/store"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"
)

type nopLogger struct{}

func (nopLogger) Debug(module, message string, details map[string]interface{}) {}
func (nopLogger) Info(module, message string, details map[string]interface{})  {}
func (nopLogger) Warn(module, message string, details map[string]interface{})  {}
func (nopLogger) Error(module, message string, details map[string]interface{}) {}
func (nopLogger) Sync() error                                                  { return nil }

func newTestNavigation() (INavigationService, *store.FilterStore) {
	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermill.NopLogger{})
	filterStore := store.NewFilterStore()
	publisher := NewPublisherService(pubSub)
	return NewNavigationService(filterStore, publisher, nopLogger{}), filterStore
}

func newTestChatService(backendURL string) (IChatService, *memory.SessionRepository) {
	nav, _ := newTestNavigation()
	repo := memory.NewSessionRepository()
	svc := NewChatService(repo, nav, backendURL, 5*time.Second, nopLogger{})
	return svc, repo
}

func sseBackend(t *testing.T, lines ...string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/query/stream" {
			t.Errorf("unexpected path %s", r.URL.Path)
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "text/event-stream")
		for _, line := range lines {
			fmt.Fprintf(w, "%s\n", line)
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestSendStreamsContentChunks(t *testing.T) {
	backend := sseBackend(t,
		`data: {"type":"status","message":"Thinking..."}`,
		`data: {"type":"content","content":"Hel"}`,
		`data: {"type":"content","content":"lo"}`,
		`data: {"type":"done","content":"Hello from fallback"}`,
	)

	svc, repo := newTestChatService(backend.URL)
	session := svc.CreateSession()

	if err := svc.Begin(session.Id, "what is going on"); err != nil {
		t.Fatalf("Begin: %v", err)
	}

	var events []dto.StreamEvent
	err := svc.Send(context.Background(), session.Id, "what is going on", func(ev dto.StreamEvent) error {
		events = append(events, ev)
		return nil
	})
	if err != nil {
		t.Fatalf("Send: %v", err)
	}

	if len(events) != 4 {
		t.Fatalf("events = %d, want 4", len(events))
	}
	if events[0].Type != constant.StreamEventStatus {
		t.Errorf("event 0 type = %s, want status", events[0].Type)
	}
	// The done event must not leak a full text diverging from the chunks the
	// client already rendered.
	last := events[len(events)-1]
	if last.Type != constant.StreamEventDone || last.Content != "Hello" {
		t.Errorf("done event = %+v, want content Hello", last)
	}

	// The accumulated answer lands in the history, after the greeting and the
	// user question.
	stored, _ := repo.Get(session.Id)
	if got := len(stored.Messages); got != 3 {
		t.Fatalf("history = %d messages, want 3", got)
	}
	answer := stored.Messages[2]
	if answer.Role != constant.ChatMessageRoleModel || answer.Chat != "Hello" {
		t.Errorf("stored answer = %+v, want model Hello", answer)
	}
	if stored.State != constant.ChatStateIdle {
		t.Errorf("state = %s, want idle after completion", stored.State)
	}
}

func TestSendUsesDoneFallbackWhenNoChunks(t *testing.T) {
	backend := sseBackend(t,
		`data: {"type":"done","content":"complete answer"}`,
	)

	svc, _ := newTestChatService(backend.URL)
	session := svc.CreateSession()
	if err := svc.Begin(session.Id, "q"); err != nil {
		t.Fatalf("Begin: %v", err)
	}

	var events []dto.StreamEvent
	if err := svc.Send(context.Background(), session.Id, "q", func(ev dto.StreamEvent) error {
		events = append(events, ev)
		return nil
	}); err != nil {
		t.Fatalf("Send: %v", err)
	}

	if len(events) != 1 || events[0].Content != "complete answer" {
		t.Errorf("events = %v, want single done with fallback", events)
	}
}

func TestBeginRejectsBusySession(t *testing.T) {
	svc, _ := newTestChatService("http://unused")
	session := svc.CreateSession()

	if err := svc.Begin(session.Id, "first"); err != nil {
		t.Fatalf("first Begin: %v", err)
	}
	if err := svc.Begin(session.Id, "second"); err == nil {
		t.Fatal("second Begin should be rejected while a request is in flight")
	}
}

func TestBeginUnknownSession(t *testing.T) {
	svc, _ := newTestChatService("http://unused")
	if err := svc.Begin(uuid.New(), "q"); err == nil {
		t.Fatal("Begin on unknown session should fail")
	}
}

func TestSendEmitsErrorEventOnBackendFailure(t *testing.T) {
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer backend.Close()

	svc, repo := newTestChatService(backend.URL)
	session := svc.CreateSession()
	if err := svc.Begin(session.Id, "q"); err != nil {
		t.Fatalf("Begin: %v", err)
	}

	var events []dto.StreamEvent
	if err := svc.Send(context.Background(), session.Id, "q", func(ev dto.StreamEvent) error {
		events = append(events, ev)
		return nil
	}); err != nil {
		t.Fatalf("Send: %v", err)
	}

	if len(events) != 1 || events[0].Type != constant.StreamEventError {
		t.Errorf("events = %v, want single error event", events)
	}

	// The failure releases the session for the next attempt.
	stored, _ := repo.Get(session.Id)
	if stored.State != constant.ChatStateIdle {
		t.Errorf("state = %s, want idle", stored.State)
	}
}

func TestSessionLifecycle(t *testing.T) {
	svc, _ := newTestChatService("http://unused")

	session := svc.CreateSession()
	history, err := svc.GetHistory(session.Id)
	if err != nil {
		t.Fatalf("GetHistory: %v", err)
	}
	if len(history) != 1 || history[0].Role != constant.ChatMessageRoleModel {
		t.Errorf("new session history = %v, want single greeting", history)
	}

	if err := svc.DeleteSession(session.Id); err != nil {
		t.Fatalf("DeleteSession: %v", err)
	}
	if _, err := svc.GetHistory(session.Id); err == nil {
		t.Error("history of a deleted session should fail")
	}
}
