// Package exercise drives the daily practice feature: fetching today's
// exercise and submitting answers.
package exercise

import (
	"context"
	"sync"

	"github.com/myc22ka/mathapp-client/pkg/mathsdk"
)

// API is the slice of the backend client the service uses.
type API interface {
	DailyExerciseTask(ctx context.Context) (*mathsdk.ExerciseDTO, error)
	SolveDaily(ctx context.Context, answer string) (*mathsdk.DefaultResponse, error)
}

// Service holds the daily exercise view state: the current exercise, a
// loading flag, and the last error message.
type Service struct {
	api API

	mu       sync.RWMutex
	exercise *mathsdk.ExerciseDTO
	loading  bool
	errMsg   string
}

func New(api API) *Service {
	return &Service{api: api}
}

// Exercise returns the last fetched exercise, or nil.
func (s *Service) Exercise() *mathsdk.ExerciseDTO {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.exercise == nil {
		return nil
	}
	copied := *s.exercise
	return &copied
}

// IsLoading reports whether a fetch or solve is in flight.
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

func (s *Service) begin() func() {
	s.mu.Lock()
	s.loading = true
	s.errMsg = ""
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		s.loading = false
		s.mu.Unlock()
	}
}

// FetchDaily loads today's exercise.
func (s *Service) FetchDaily(ctx context.Context) {
	defer s.begin()()

	exercise, err := s.api.DailyExerciseTask(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.errMsg = mathsdk.Message(err)
		return
	}
	s.exercise = exercise
}

// SolveDaily submits an answer and returns the backend's verdict, or nil on
// failure with the error surfaced through Err.
func (s *Service) SolveDaily(ctx context.Context, answer string) *mathsdk.DefaultResponse {
	defer s.begin()()

	resp, err := s.api.SolveDaily(ctx, answer)
	if err != nil {
		s.mu.Lock()
		s.errMsg = mathsdk.Message(err)
		s.mu.Unlock()
		return nil
	}
	return resp
}
