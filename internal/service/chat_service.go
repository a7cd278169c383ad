package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"promo-insights-be/internal/constant"
	"promo-insights-be/internal/dto"
	"promo-insights-be/internal/pkg/logger"
	"promo-insights-be/internal/repository/memory"

	"promo-insights-be/pkg/stream"

	"github.com/google/uuid"
)

// EmitFunc delivers one decoded stream event to the UI. Returning an error
// aborts the stream (client went away).
type EmitFunc func(dto.StreamEvent) error

// IChatService drives the asynchronous request/response cycle with the
// analysis backend. Per session: Idle -> Sending -> Streaming -> Idle. While
// a request is in flight, new submissions are rejected rather than
// cancelling the prior one.
type IChatService interface {
	CreateSession() dto.CreateSessionResponse
	GetHistory(sessionId uuid.UUID) ([]dto.ChatHistoryEntry, error)
	DeleteSession(sessionId uuid.UUID) error
	Begin(sessionId uuid.UUID, question string) error
	Send(ctx context.Context, sessionId uuid.UUID, question string, emit EmitFunc) error
}

type chatService struct {
	sessionRepo *memory.SessionRepository
	navigation  INavigationService
	backendURL  string
	client      *http.Client
	logger      logger.ILogger
}

func NewChatService(
	sessionRepo *memory.SessionRepository,
	navigation INavigationService,
	backendURL string,
	timeout time.Duration,
	log logger.ILogger,
) IChatService {
	return &chatService{
		sessionRepo: sessionRepo,
		navigation:  navigation,
		backendURL:  backendURL,
		client:      &http.Client{Timeout: timeout},
		logger:      log,
	}
}

func (cs *chatService) CreateSession() dto.CreateSessionResponse {
	session := cs.sessionRepo.Create()
	return dto.CreateSessionResponse{Id: session.Id}
}

func (cs *chatService) GetHistory(sessionId uuid.UUID) ([]dto.ChatHistoryEntry, error) {
	session, found := cs.sessionRepo.Get(sessionId)
	if !found {
		return nil, errSessionNotFound()
	}
	return session.Messages, nil
}

func (cs *chatService) DeleteSession(sessionId uuid.UUID) error {
	if _, found := cs.sessionRepo.Get(sessionId); !found {
		return errSessionNotFound()
	}
	cs.sessionRepo.Delete(sessionId)
	return nil
}

// Begin reserves the session for one submission. The caller gets the
// rejection (unknown session, request already in flight) before any stream
// is opened; a successful Begin must be followed by Send.
func (cs *chatService) Begin(sessionId uuid.UUID, question string) error {
	session, found := cs.sessionRepo.Get(sessionId)
	if !found {
		return errSessionNotFound()
	}
	if session.State != constant.ChatStateIdle {
		return errSessionBusy()
	}

	session.State = constant.ChatStateSending
	session.Messages = append(session.Messages, dto.ChatHistoryEntry{
		Id:        uuid.New(),
		Role:      constant.ChatMessageRoleUser,
		Chat:      question,
		CreatedAt: time.Now(),
	})
	cs.sessionRepo.Save(session)
	return nil
}

// Send runs the submission reserved by Begin. Navigation derived from the
// same text is applied before the backend request goes out, so the dashboard
// is already on the right view when the first answer token arrives. Decoded
// events are re-emitted to the caller in arrival order.
func (cs *chatService) Send(ctx context.Context, sessionId uuid.UUID, question string, emit EmitFunc) error {
	session, found := cs.sessionRepo.Get(sessionId)
	if !found {
		return errSessionNotFound()
	}

	// Back to Idle whatever happens, so the next submission isn't locked out.
	defer func() {
		session.State = constant.ChatStateIdle
		cs.sessionRepo.Save(session)
	}()

	// Navigation first, independent of the chat round-trip.
	cs.navigation.Interpret(question)

	onFirstByte := func() {
		session.State = constant.ChatStateStreaming
		cs.sessionRepo.Save(session)
	}

	answer, err := cs.streamFromBackend(ctx, question, emit, onFirstByte)
	if err != nil {
		cs.logger.Error("ChatService", "Chat backend request failed", map[string]interface{}{"error": err.Error()})
		_ = emit(dto.StreamEvent{
			Type:    constant.StreamEventError,
			Message: "Something went wrong while answering. Please try again.",
		})
		return nil
	}

	if answer != "" {
		session.Messages = append(session.Messages, dto.ChatHistoryEntry{
			Id:        uuid.New(),
			Role:      constant.ChatMessageRoleModel,
			Chat:      answer,
			CreatedAt: time.Now(),
		})
	}
	return nil
}

// streamFromBackend issues the request and decodes the event stream,
// returning the accumulated answer text. A done event's content is only a
// fallback for the case where no content chunks arrived at all.
func (cs *chatService) streamFromBackend(ctx context.Context, question string, emit EmitFunc, onFirstByte func()) (string, error) {
	payload, err := json.Marshal(map[string]string{"question": question})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, cs.backendURL+"/query/stream", bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "text/event-stream")

	resp, err := cs.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("chat backend: unexpected status %d", resp.StatusCode)
	}

	decoder := stream.NewDecoder()
	decoder.OnSkip = func(line string, err error) {
		cs.logger.Warn("ChatService", "Skipping malformed stream line", map[string]interface{}{"line": line, "error": err.Error()})
	}

	var accumulated string
	terminal := false

	handle := func(ev dto.StreamEvent) (stop bool, err error) {
		switch ev.Type {
		case constant.StreamEventContent:
			accumulated += ev.Content
		case constant.StreamEventDone:
			if accumulated == "" {
				accumulated = ev.Content
			}
			// Don't leak the full fallback text to a client that already
			// saw the chunks.
			if ev.Content != "" && ev.Content != accumulated {
				ev.Content = accumulated
			}
			stop = true
		case constant.StreamEventError:
			stop = true
		}
		if err := emit(ev); err != nil {
			return true, err
		}
		return stop, nil
	}

	buf := make([]byte, 4096)
	firstByte := true
	for !terminal {
		n, readErr := resp.Body.Read(buf)
		if n > 0 {
			if firstByte {
				firstByte = false
				onFirstByte()
			}
			for _, ev := range decoder.Feed(buf[:n]) {
				stop, err := handle(ev)
				if err != nil {
					return accumulated, nil
				}
				if stop {
					terminal = true
					break
				}
			}
		}
		if readErr != nil {
			break
		}
	}

	if !terminal {
		for _, ev := range decoder.Flush() {
			if stop, err := handle(ev); err != nil || stop {
				break
			}
		}
	}

	return accumulated, nil
}
