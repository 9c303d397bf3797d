package verifycode

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"
)

// submitSpy counts submissions and scripts their outcome.
type submitSpy struct {
	mu    sync.Mutex
	codes []string
	err   error
}

func (s *submitSpy) submit(ctx context.Context, code string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.codes = append(s.codes, code)
	return s.err
}

func (s *submitSpy) calls() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.codes...)
}

func newTestFlow(spy *submitSpy) *Flow {
	return New(Config{
		Submit: spy.submit,
		Resend: func(ctx context.Context) error { return nil },
	})
}

func typeDigits(f *Flow, digits string) {
	ctx := context.Background()
	for i, d := range digits {
		f.Type(ctx, i, string(d))
	}
}

func TestTypeSequentialFill(t *testing.T) {
	t.Parallel()

	t.Run("accepts digits in order and advances focus", func(t *testing.T) {
		f := newTestFlow(&submitSpy{})

		f.Type(context.Background(), 0, "1")
		require.Equal(t, 1, f.FocusIndex())

		f.Type(context.Background(), 1, "2")
		require.Equal(t, [Size]string{"1", "2", "", "", "", ""}, f.Slots())
		require.Equal(t, StatePartiallyFilled, f.State())
	})

	t.Run("rejects typing past a gap", func(t *testing.T) {
		f := newTestFlow(&submitSpy{})

		f.Type(context.Background(), 0, "1")
		f.Type(context.Background(), 3, "4")

		require.Equal(t, [Size]string{"1", "", "", "", "", ""}, f.Slots())
	})

	t.Run("rejects non-digit input", func(t *testing.T) {
		f := newTestFlow(&submitSpy{})

		f.Type(context.Background(), 0, "a")
		f.Type(context.Background(), 0, "12")

		require.Equal(t, StateEmpty, f.State())
	})

	t.Run("filling the last slot submits exactly once", func(t *testing.T) {
		spy := &submitSpy{}
		f := newTestFlow(spy)

		typeDigits(f, "123456")

		require.Equal(t, []string{"123456"}, spy.calls())
		require.Equal(t, StateVerified, f.State())
		require.Equal(t, Blurred, f.FocusIndex())
	})
}

func TestFocus(t *testing.T) {
	t.Parallel()

	t.Run("redirects to first empty slot", func(t *testing.T) {
		f := newTestFlow(&submitSpy{})
		typeDigits(f, "12")

		f.Focus(5)
		require.Equal(t, 2, f.FocusIndex())
	})

	t.Run("focusing a filled slot is ignored", func(t *testing.T) {
		f := newTestFlow(&submitSpy{})
		typeDigits(f, "12")

		f.Focus(0)
		require.Equal(t, 2, f.FocusIndex())
	})
}

func TestBackspace(t *testing.T) {
	t.Parallel()

	t.Run("filled slot clears in place", func(t *testing.T) {
		f := newTestFlow(&submitSpy{})
		typeDigits(f, "123")

		f.Backspace(2)

		require.Equal(t, [Size]string{"1", "2", "", "", "", ""}, f.Slots())
		require.Equal(t, 2, f.FocusIndex())
	})

	t.Run("empty slot clears previous and moves focus back", func(t *testing.T) {
		f := newTestFlow(&submitSpy{})
		typeDigits(f, "123")

		f.Backspace(3)

		require.Equal(t, [Size]string{"1", "2", "", "", "", ""}, f.Slots())
		require.Equal(t, 2, f.FocusIndex())
	})

	t.Run("first slot empty is a no-op", func(t *testing.T) {
		f := newTestFlow(&submitSpy{})

		f.Backspace(0)

		require.Equal(t, StateEmpty, f.State())
		require.Equal(t, 0, f.FocusIndex())
	})
}

func TestPaste(t *testing.T) {
	t.Parallel()

	t.Run("exact six digits fills and submits once", func(t *testing.T) {
		spy := &submitSpy{}
		f := newTestFlow(spy)

		f.Paste(context.Background(), "987654")

		require.Equal(t, []string{"987654"}, spy.calls())
		require.Equal(t, StateVerified, f.State())
	})

	t.Run("non-digit content is rejected entirely", func(t *testing.T) {
		spy := &submitSpy{}
		f := newTestFlow(spy)
		typeDigits(f, "12")

		f.Paste(context.Background(), "98a654")

		require.Empty(t, spy.calls())
		require.Equal(t, [Size]string{"1", "2", "", "", "", ""}, f.Slots())
	})

	t.Run("wrong length is rejected entirely", func(t *testing.T) {
		spy := &submitSpy{}
		f := newTestFlow(spy)

		f.Paste(context.Background(), "12345")
		f.Paste(context.Background(), "1234567")

		require.Empty(t, spy.calls())
		require.Equal(t, StateEmpty, f.State())
	})

	t.Run("paste bypasses the sequential-fill constraint", func(t *testing.T) {
		spy := &submitSpy{}
		f := newTestFlow(spy)
		typeDigits(f, "12")

		f.Paste(context.Background(), "999999")

		require.Equal(t, []string{"999999"}, spy.calls())
	})
}

func TestClipboardProbe(t *testing.T) {
	t.Parallel()

	t.Run("ingests only a complete code", func(t *testing.T) {
		spy := &submitSpy{}
		f := newTestFlow(spy)

		f.ClipboardProbe(context.Background(), "some text 123")
		require.Empty(t, spy.calls())

		f.ClipboardProbe(context.Background(), "123456")
		require.Equal(t, []string{"123456"}, spy.calls())
	})

	t.Run("probes are rate limited", func(t *testing.T) {
		spy := &submitSpy{err: errors.New("Invalid code")}
		f := New(Config{
			Submit:     spy.submit,
			Resend:     func(ctx context.Context) error { return nil },
			ProbeLimit: rate.NewLimiter(rate.Limit(0), 1),
		})

		f.ClipboardProbe(context.Background(), "123456")
		f.ClipboardProbe(context.Background(), "123456")

		require.Len(t, spy.calls(), 1)
	})
}

func TestSubmitOutcomes(t *testing.T) {
	t.Parallel()

	t.Run("rejection preserves slots and surfaces the error", func(t *testing.T) {
		spy := &submitSpy{err: errors.New("Invalid code")}
		f := newTestFlow(spy)

		typeDigits(f, "123456")

		require.Equal(t, StateRejected, f.State())
		require.Equal(t, "Invalid code", f.Err())
		require.Equal(t, [Size]string{"1", "2", "3", "4", "5", "6"}, f.Slots())
	})

	t.Run("success runs the verified callback", func(t *testing.T) {
		spy := &submitSpy{}
		verified := false
		f := New(Config{
			Submit:     spy.submit,
			Resend:     func(ctx context.Context) error { return nil },
			OnVerified: func(ctx context.Context) { verified = true },
		})

		typeDigits(f, "123456")

		require.True(t, verified)
		require.Equal(t, "Code verified successfully", f.Notice())
	})
}

func TestResend(t *testing.T) {
	t.Parallel()

	t.Run("clears slots and refocuses the first", func(t *testing.T) {
		resent := 0
		f := New(Config{
			Submit: func(ctx context.Context, code string) error { return nil },
			Resend: func(ctx context.Context) error { resent++; return nil },
		})
		typeDigits(f, "123")

		f.Resend(context.Background())

		require.Equal(t, 1, resent)
		require.Equal(t, StateEmpty, f.State())
		require.Equal(t, 0, f.FocusIndex())
		require.Equal(t, "A new code has been sent", f.Notice())
	})

	t.Run("failure surfaces inline", func(t *testing.T) {
		f := New(Config{
			Submit: func(ctx context.Context, code string) error { return nil },
			Resend: func(ctx context.Context) error { return errors.New("Too many requests") },
		})

		f.Resend(context.Background())

		require.Equal(t, "Too many requests", f.Err())
		require.False(t, f.IsResending())
	})
}
