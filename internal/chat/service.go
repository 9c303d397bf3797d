// Package chat backs the assistant chat widget: prompt validation, the chat
// request, and the in-memory message log.
package chat

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/myc22ka/mathapp-client/pkg/mathsdk"
)

// Message is one question/response exchange.
type Message struct {
	ID        string    `json:"id"`
	Question  string    `json:"question"`
	Response  string    `json:"response"`
	CreatedAt time.Time `json:"createdAt"`
}

// API is the slice of the backend client the service uses.
type API interface {
	Chat(ctx context.Context, prompt string) (string, error)
}

// Service sends prompts and accumulates the exchange log.
type Service struct {
	api API

	mu       sync.RWMutex
	messages []Message
	loading  bool
	errMsg   string
}

func New(api API) *Service {
	return &Service{api: api}
}

// Messages returns a copy of the exchange log, oldest first.
func (s *Service) Messages() []Message {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Message, len(s.messages))
	copy(out, s.messages)
	return out
}

// IsLoading reports whether a prompt is in flight.
func (s *Service) IsLoading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

// Err returns the last error message, or "".
func (s *Service) Err() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.errMsg
}

// Send validates the prompt, performs the request, and appends the exchange
// to the log. Empty prompts never reach the network.
func (s *Service) Send(ctx context.Context, prompt string) {
	if strings.TrimSpace(prompt) == "" {
		s.mu.Lock()
		s.errMsg = "Message cannot be empty"
		s.mu.Unlock()
		return
	}

	s.mu.Lock()
	s.loading = true
	s.errMsg = ""
	s.mu.Unlock()

	response, err := s.api.Chat(ctx, prompt)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false
	if err != nil {
		s.errMsg = mathsdk.Message(err)
		return
	}

	s.messages = append(s.messages, Message{
		ID:        uuid.NewString(),
		Question:  prompt,
		Response:  response,
		CreatedAt: time.Now(),
	})
}
