package prefs

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func openTestStorage(t *testing.T) *Storage {
	t.Helper()

	path := filepath.Join(t.TempDir(), "prefs.db")
	storage, err := OpenStorage(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = storage.Close() })
	return storage
}

func TestReduce(t *testing.T) {
	t.Parallel()

	t.Run("toggle flips open", func(t *testing.T) {
		s := Reduce(SidebarState{IsOpen: true}, ToggleOpen{})
		require.False(t, s.IsOpen)

		s = Reduce(s, ToggleOpen{})
		require.True(t, s.IsOpen)
	})

	t.Run("set open and hover", func(t *testing.T) {
		s := Reduce(SidebarState{}, SetOpen{Open: true})
		require.True(t, s.IsOpen)

		s = Reduce(s, SetHover{Hover: true})
		require.True(t, s.IsHover)
	})

	t.Run("settings merge is partial", func(t *testing.T) {
		disabled := true
		s := SidebarState{Settings: SidebarSettings{IsHoverOpen: true}}

		s = Reduce(s, SetSettings{Patch: SettingsPatch{Disabled: &disabled}})

		require.True(t, s.Settings.Disabled)
		require.True(t, s.Settings.IsHoverOpen, "untouched field must survive the merge")
	})

	t.Run("hydrate replaces everything", func(t *testing.T) {
		snapshot := SidebarState{IsOpen: false, Settings: SidebarSettings{Disabled: true}}
		s := Reduce(defaultSidebarState(), Hydrate{State: snapshot})
		require.Equal(t, snapshot, s)
	})
}

func TestStorage(t *testing.T) {
	t.Parallel()

	storage := openTestStorage(t)
	ctx := context.Background()

	t.Run("missing key", func(t *testing.T) {
		_, err := storage.Get(ctx, "nope")
		require.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("set get delete", func(t *testing.T) {
		require.NoError(t, storage.Set(ctx, "k", "v1"))

		got, err := storage.Get(ctx, "k")
		require.NoError(t, err)
		require.Equal(t, "v1", got)

		require.NoError(t, storage.Set(ctx, "k", "v2"))
		got, err = storage.Get(ctx, "k")
		require.NoError(t, err)
		require.Equal(t, "v2", got)

		require.NoError(t, storage.Delete(ctx, "k"))
		_, err = storage.Get(ctx, "k")
		require.ErrorIs(t, err, ErrNotFound)
	})
}

func TestSidebarStore(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("defaults when nothing stored", func(t *testing.T) {
		store := OpenSidebarStore(ctx, openTestStorage(t), discardLogger())

		state := store.State()
		require.True(t, state.IsOpen)
		require.False(t, state.Settings.Disabled)
	})

	t.Run("open state derives from hover preference", func(t *testing.T) {
		store := OpenSidebarStore(ctx, openTestStorage(t), discardLogger())

		store.SetOpen(ctx, false)
		require.False(t, store.OpenState())

		store.SetHover(ctx, true)
		require.False(t, store.OpenState(), "hover alone must not open without the preference")

		hoverOpen := true
		store.SetSettings(ctx, SettingsPatch{IsHoverOpen: &hoverOpen})
		require.True(t, store.OpenState())
	})

	t.Run("settings survive a remount", func(t *testing.T) {
		storage := openTestStorage(t)

		store := OpenSidebarStore(ctx, storage, discardLogger())
		disabled := true
		store.SetSettings(ctx, SettingsPatch{Disabled: &disabled})
		store.SetOpen(ctx, false)

		reopened := OpenSidebarStore(ctx, storage, discardLogger())
		require.True(t, reopened.Settings().Disabled)
		require.False(t, reopened.State().IsOpen)
	})

	t.Run("corrupt snapshot falls back to defaults but still persists", func(t *testing.T) {
		storage := openTestStorage(t)
		require.NoError(t, storage.Set(ctx, "sidebar-state", "{not json"))

		store := OpenSidebarStore(ctx, storage, discardLogger())
		require.True(t, store.State().IsOpen)

		store.Toggle(ctx)

		reopened := OpenSidebarStore(ctx, storage, discardLogger())
		require.False(t, reopened.State().IsOpen)
	})
}
