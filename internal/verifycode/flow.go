// Package verifycode implements the six-digit verification code entry flow:
// sequential slot filling with focus management, backspace editing, atomic
// paste and clipboard ingestion, exactly-once submission, and an independent
// resend path.
package verifycode

import (
	"context"
	"regexp"
	"sync"

	"golang.org/x/time/rate"
)

// Size is the number of code slots.
const Size = 6

// Blurred marks that no slot holds focus.
const Blurred = -1

var (
	slotPattern = regexp.MustCompile(`^\d?$`)
	codePattern = regexp.MustCompile(`^\d{6}$`)
)

// State describes where the flow currently sits.
type State int

const (
	// StateEmpty: no slot filled.
	StateEmpty State = iota
	// StatePartiallyFilled: some but not all slots filled.
	StatePartiallyFilled
	// StateSubmitting: all slots filled and a submit is in flight.
	StateSubmitting
	// StateVerified: a submit succeeded.
	StateVerified
	// StateRejected: the last submit failed; slots are preserved for edit.
	StateRejected
)

// Config wires the flow to its collaborators.
type Config struct {
	// Submit sends the assembled code. A returned error's text is surfaced
	// as the inline error message.
	Submit func(ctx context.Context, code string) error

	// Resend requests a fresh code.
	Resend func(ctx context.Context) error

	// OnVerified runs after a successful submit (session refresh and
	// navigation in the application).
	OnVerified func(ctx context.Context)

	// ProbeLimit throttles the opportunistic clipboard probe. Nil disables
	// throttling.
	ProbeLimit *rate.Limiter
}

// Flow is the code-entry state machine. Event methods are safe for
// concurrent use; submission happens synchronously inside the event that
// completed the code.
type Flow struct {
	cfg Config

	mu         sync.Mutex
	slots      [Size]string
	focus      int
	submitting bool
	resending  bool
	verified   bool
	rejected   bool
	errMsg     string
	notice     string
}

// New creates a flow with all slots empty and focus on the first slot.
func New(cfg Config) *Flow {
	return &Flow{cfg: cfg}
}

// ============================================================================
// Accessors
// ============================================================================

// Slots returns a copy of the current slot contents.
func (f *Flow) Slots() [Size]string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.slots
}

// Code returns the concatenated slot contents.
func (f *Flow) Code() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.codeLocked()
}

// FocusIndex returns the focused slot, or Blurred.
func (f *Flow) FocusIndex() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.focus
}

// IsSubmitting reports whether a code submit is in flight.
func (f *Flow) IsSubmitting() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.submitting
}

// IsResending reports whether a resend request is in flight. Independent of
// the submit flag so the two paths cannot block each other.
func (f *Flow) IsResending() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.resending
}

// Err returns the current inline error message, if any.
func (f *Flow) Err() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.errMsg
}

// Notice returns the current success notice, if any.
func (f *Flow) Notice() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.notice
}

// State derives the flow state from the slot contents and flags.
func (f *Flow) State() State {
	f.mu.Lock()
	defer f.mu.Unlock()

	switch {
	case f.submitting:
		return StateSubmitting
	case f.verified:
		return StateVerified
	case f.rejected:
		return StateRejected
	case f.filledLocked() == 0:
		return StateEmpty
	default:
		return StatePartiallyFilled
	}
}

func (f *Flow) codeLocked() string {
	code := ""
	for _, slot := range f.slots {
		code += slot
	}
	return code
}

func (f *Flow) filledLocked() int {
	n := 0
	for _, slot := range f.slots {
		if slot != "" {
			n++
		}
	}
	return n
}

func (f *Flow) firstEmptyLocked() int {
	for i, slot := range f.slots {
		if slot == "" {
			return i
		}
	}
	return -1
}

// ============================================================================
// Events
// ============================================================================

// Focus handles a slot receiving focus. Focusing anything other than the
// first empty slot redirects there; when no slot is empty all inputs blur,
// preventing out-of-order edits.
func (f *Flow) Focus(index int) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if index < 0 || index >= Size || f.submitting {
		return
	}
	if f.slots[index] != "" {
		return
	}

	firstEmpty := f.firstEmptyLocked()
	if firstEmpty == -1 {
		f.focus = Blurred
		return
	}
	f.focus = firstEmpty
}

// Type handles a character entered into a slot. Only an empty string or a
// single digit is accepted, and only when every slot before it is already
// filled; anything else leaves the state unchanged. Filling the last empty
// slot triggers exactly one submission.
func (f *Flow) Type(ctx context.Context, index int, value string) {
	f.mu.Lock()

	if index < 0 || index >= Size || f.submitting || !slotPattern.MatchString(value) {
		f.mu.Unlock()
		return
	}

	// Sequential-fill constraint: slots before index must all be filled.
	for i := 0; i < index; i++ {
		if f.slots[i] == "" {
			f.mu.Unlock()
			return
		}
	}

	f.slots[index] = value

	if value != "" && index < Size-1 {
		f.focus = index + 1
	}

	if f.firstEmptyLocked() == -1 {
		f.submitLocked(ctx)
		return
	}

	f.mu.Unlock()
}

// Backspace handles the backspace key on a slot: a filled slot clears in
// place keeping focus, an empty slot clears the previous slot and moves
// focus there.
func (f *Flow) Backspace(index int) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if index < 0 || index >= Size || f.submitting {
		return
	}

	if f.slots[index] != "" {
		f.slots[index] = ""
		f.focus = index
		return
	}

	if index > 0 {
		f.slots[index-1] = ""
		f.focus = index - 1
	}
}

// Paste handles clipboard paste into any slot. An exact six-digit string
// fills all slots atomically, bypassing the sequential-fill constraint, and
// submits immediately; anything else is rejected without touching state.
func (f *Flow) Paste(ctx context.Context, pasted string) {
	f.mu.Lock()

	if f.submitting || !codePattern.MatchString(pasted) {
		f.mu.Unlock()
		return
	}

	f.fillLocked(pasted)
	f.submitLocked(ctx)
}

// ClipboardProbe is the opportunistic foreground-return path: it auto-fills
// and submits only when the clipboard holds exactly six digits. Partial or
// malformed content is never ingested. Probes are rate limited.
func (f *Flow) ClipboardProbe(ctx context.Context, clipboard string) {
	if f.cfg.ProbeLimit != nil && !f.cfg.ProbeLimit.Allow() {
		return
	}
	f.Paste(ctx, clipboard)
}

// Resend clears all slots, refocuses the first, and requests a fresh code.
// Its in-flight flag is independent of the submit flag.
func (f *Flow) Resend(ctx context.Context) {
	f.mu.Lock()
	if f.resending {
		f.mu.Unlock()
		return
	}
	f.resending = true
	f.errMsg = ""
	f.notice = ""
	f.slots = [Size]string{}
	f.focus = 0
	f.rejected = false
	f.mu.Unlock()

	err := f.cfg.Resend(ctx)

	f.mu.Lock()
	defer f.mu.Unlock()
	f.resending = false
	if err != nil {
		f.errMsg = err.Error()
		return
	}
	f.notice = "A new code has been sent"
}

// ============================================================================
// Submission
// ============================================================================

// submitLocked runs the single submission attempt for a fully filled code.
// Called with mu held; releases it around the network call. All inputs blur
// before the call so further keystrokes cannot re-trigger it.
func (f *Flow) submitLocked(ctx context.Context) {
	code := f.codeLocked()
	f.focus = Blurred
	f.submitting = true
	f.errMsg = ""
	f.notice = ""
	f.mu.Unlock()

	err := f.cfg.Submit(ctx, code)

	f.mu.Lock()
	f.submitting = false
	if err != nil {
		// Slots stay as-is for correction: the code may still be valid if
		// the failure was transient.
		f.rejected = true
		f.errMsg = err.Error()
		f.mu.Unlock()
		return
	}

	f.verified = true
	f.rejected = false
	f.notice = "Code verified successfully"
	f.mu.Unlock()

	if f.cfg.OnVerified != nil {
		f.cfg.OnVerified(ctx)
	}
}

// fillLocked replaces all slots from a six-digit string.
func (f *Flow) fillLocked(code string) {
	for i := 0; i < Size; i++ {
		f.slots[i] = string(code[i])
	}
}
