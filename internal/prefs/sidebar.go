package prefs

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"sync"
)

// sidebarStorageKey is the fixed key the sidebar state persists under.
const sidebarStorageKey = "sidebar-state"

// SidebarSettings are the user's persisted sidebar preferences.
type SidebarSettings struct {
	Disabled    bool `json:"disabled"`
	IsHoverOpen bool `json:"isHoverOpen"`
}

// SidebarState is the full sidebar state: the open/closed flag, the transient
// hover flag, and the settings.
type SidebarState struct {
	IsOpen   bool            `json:"isOpen"`
	IsHover  bool            `json:"isHover"`
	Settings SidebarSettings `json:"settings"`
}

// SettingsPatch is a partial settings update; nil fields are left unchanged.
type SettingsPatch struct {
	Disabled    *bool
	IsHoverOpen *bool
}

// ============================================================================
// Actions and the pure transition function
// ============================================================================

// Action is the tagged union consumed by the sidebar reducer.
type Action interface{ isAction() }

// ToggleOpen flips the open flag.
type ToggleOpen struct{}

// SetOpen sets the open flag.
type SetOpen struct{ Open bool }

// SetHover sets the transient hover flag.
type SetHover struct{ Hover bool }

// SetSettings merges a partial settings update.
type SetSettings struct{ Patch SettingsPatch }

// Hydrate replaces the whole state with a stored snapshot.
type Hydrate struct{ State SidebarState }

func (ToggleOpen) isAction()  {}
func (SetOpen) isAction()     {}
func (SetHover) isAction()    {}
func (SetSettings) isAction() {}
func (Hydrate) isAction()     {}

// Reduce is the pure sidebar transition function. Unknown actions return the
// state unchanged.
func Reduce(state SidebarState, action Action) SidebarState {
	switch a := action.(type) {
	case ToggleOpen:
		state.IsOpen = !state.IsOpen
	case SetOpen:
		state.IsOpen = a.Open
	case SetHover:
		state.IsHover = a.Hover
	case SetSettings:
		if a.Patch.Disabled != nil {
			state.Settings.Disabled = *a.Patch.Disabled
		}
		if a.Patch.IsHoverOpen != nil {
			state.Settings.IsHoverOpen = *a.Patch.IsHoverOpen
		}
	case Hydrate:
		state = a.State
	}
	return state
}

// defaultSidebarState mirrors the pre-hydration defaults.
func defaultSidebarState() SidebarState {
	return SidebarState{IsOpen: true}
}

// ============================================================================
// Store
// ============================================================================

// SidebarStore runs the reducer over durable storage. Hydration happens once
// on Open; state changes persist only after hydration has completed so
// defaults never overwrite a stored snapshot.
type SidebarStore struct {
	storage *Storage
	logger  *slog.Logger

	mu       sync.Mutex
	state    SidebarState
	hydrated bool
}

// OpenSidebarStore creates the store and hydrates it from storage. A missing
// or unreadable snapshot falls back to defaults; the store still marks itself
// hydrated so subsequent changes persist.
func OpenSidebarStore(ctx context.Context, storage *Storage, logger *slog.Logger) *SidebarStore {
	s := &SidebarStore{
		storage: storage,
		logger:  logger,
		state:   defaultSidebarState(),
	}

	stored, err := storage.Get(ctx, sidebarStorageKey)
	if err == nil {
		var snapshot SidebarState
		if jsonErr := json.Unmarshal([]byte(stored), &snapshot); jsonErr == nil {
			s.state = Reduce(s.state, Hydrate{State: snapshot})
		} else {
			logger.Warn("failed to parse stored sidebar state", "error", jsonErr)
		}
	} else if !errors.Is(err, ErrNotFound) {
		logger.Warn("failed to read stored sidebar state", "error", err)
	}

	s.hydrated = true
	return s
}

// Dispatch applies an action and persists the resulting state.
func (s *SidebarStore) Dispatch(ctx context.Context, action Action) {
	s.mu.Lock()
	s.state = Reduce(s.state, action)
	state := s.state
	hydrated := s.hydrated
	s.mu.Unlock()

	if !hydrated {
		return
	}

	encoded, err := json.Marshal(state)
	if err != nil {
		s.logger.Warn("failed to encode sidebar state", "error", err)
		return
	}
	if err := s.storage.Set(ctx, sidebarStorageKey, string(encoded)); err != nil {
		s.logger.Warn("failed to persist sidebar state", "error", err)
	}
}

// State returns the current sidebar state.
func (s *SidebarStore) State() SidebarState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Settings returns the current persisted preferences.
func (s *SidebarStore) Settings() SidebarSettings {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Settings
}

// OpenState derives whether the sidebar renders open: explicitly open, or
// hover-open when the preference allows it.
func (s *SidebarStore) OpenState() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.IsOpen || (s.state.Settings.IsHoverOpen && s.state.IsHover)
}

// Convenience dispatchers mirroring the reducer's action set.

func (s *SidebarStore) Toggle(ctx context.Context)            { s.Dispatch(ctx, ToggleOpen{}) }
func (s *SidebarStore) SetOpen(ctx context.Context, v bool)   { s.Dispatch(ctx, SetOpen{Open: v}) }
func (s *SidebarStore) SetHover(ctx context.Context, v bool)  { s.Dispatch(ctx, SetHover{Hover: v}) }

// SetSettings merges a partial settings update.
func (s *SidebarStore) SetSettings(ctx context.Context, patch SettingsPatch) {
	s.Dispatch(ctx, SetSettings{Patch: patch})
}
