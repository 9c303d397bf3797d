// Package session holds the client-side authenticated session state and
// mediates every identity-changing operation. It is the single writer of the
// current User record; everything else reads through its accessors.
//
// The service is constructed once at application start and passed by
// reference to whatever needs it. There is no package-level instance.
package session

import (
	"context"
	"net/url"
	"sync"

	"github.com/google/uuid"

	"github.com/myc22ka/mathapp-client/pkg/mathsdk"
)

// Navigation targets used by the operations below.
const (
	pathHome      = "/"
	pathLogin     = "/auth/login"
	pathVerify    = "/verify"
	pathDashboard = "/dashboard"
)

// Service is the session store. All state behind mu; operations perform their
// network call outside the lock and only then apply the resulting mutation,
// so readers never block on the backend.
type Service struct {
	api    API
	nav    Navigator
	notify Notifier
	files  FileSaver

	mu         sync.RWMutex
	user       *mathsdk.User
	pending2FA string // email of a login attempt awaiting its second factor
	verifyUID  string // correlation token for the registration verify screen
	loading    bool
	submitting bool

	initOnce sync.Once
}

// New constructs the session service. The returned service reports loading
// until Initialize has resolved its first whoami probe.
func New(api API, nav Navigator, notify Notifier, files FileSaver) *Service {
	return &Service{
		api:     api,
		nav:     nav,
		notify:  notify,
		files:   files,
		loading: true,
	}
}

// ============================================================================
// Accessors
// ============================================================================

// User returns the current user record, or nil when unauthenticated. Check
// IsLoading to distinguish "unknown yet" from "confirmed logged out".
func (s *Service) User() *mathsdk.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return nil
	}
	copied := *s.user
	return &copied
}

// IsAuthenticated reports whether a user record is present.
func (s *Service) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user != nil
}

// IsLoading is true only while the initial session probe is unresolved.
func (s *Service) IsLoading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

// IsSubmitting reports whether a mutating operation is in flight. The UI uses
// this to disable the triggering control; it is advisory debouncing, not a
// lock.
func (s *Service) IsSubmitting() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.submitting
}

// Pending2FA returns the email of a login attempt awaiting its second factor,
// or "" when none is pending.
func (s *Service) Pending2FA() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.pending2FA
}

// VerifyUID returns the correlation token generated for the most recent
// registration, or "" when none exists.
func (s *Service) VerifyUID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.verifyUID
}

// beginSubmit marks a mutating operation in flight. The returned func must be
// deferred so the flag clears even when the operation panics.
func (s *Service) beginSubmit() func() {
	s.mu.Lock()
	s.submitting = true
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		s.submitting = false
		s.mu.Unlock()
	}
}

// ============================================================================
// Lifecycle
// ============================================================================

// Initialize runs the one-shot startup probe. Regardless of outcome the
// loading flag drops when it resolves; errors are swallowed because an
// unauthenticated start is not an error.
func (s *Service) Initialize(ctx context.Context) {
	s.initOnce.Do(func() {
		user, err := s.api.Me(ctx)

		s.mu.Lock()
		defer s.mu.Unlock()
		if err != nil {
			s.user = nil
		} else {
			s.user = user
		}
		s.loading = false
	})
}

// RefreshUser is the silent background re-sync path: success replaces the
// user record, any failure clears it. No user-visible message either way.
func (s *Service) RefreshUser(ctx context.Context) {
	user, err := s.api.Me(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.user = nil
		return
	}
	s.user = user
}

// ============================================================================
// Authentication Operations
// ============================================================================

// Login authenticates with a login-or-email identifier. A partial response
// (email only) means a second factor is required: the user record stays
// unset and the flow moves to the verification screen. A full response
// establishes the session and navigates home.
func (s *Service) Login(ctx context.Context, identifier, password string) {
	defer s.beginSubmit()()

	resp, err := s.api.SignIn(ctx, mathsdk.LoginRequest{
		Identifier: identifier,
		Password:   password,
	})
	if err != nil {
		s.notify.Error(mathsdk.Message(err))
		return
	}

	if resp.SecondFactorRequired() {
		s.mu.Lock()
		s.pending2FA = resp.Email
		s.mu.Unlock()

		s.nav.Navigate(pathVerify + "?email=" + url.QueryEscape(resp.Email))
		return
	}

	s.mu.Lock()
	s.user = resp
	s.mu.Unlock()

	s.notify.Success("Signed in successfully")
	s.nav.Navigate(pathHome)
}

// Register creates the account, stores the returned user, and generates the
// verification correlation token carried to the code-entry screen.
func (s *Service) Register(ctx context.Context, req mathsdk.RegisterRequest) {
	defer s.beginSubmit()()

	user, err := s.api.Register(ctx, req)
	if err != nil {
		s.notify.Error(mathsdk.Message(err))
		return
	}

	uid := uuid.NewString()

	s.mu.Lock()
	s.user = user
	s.verifyUID = uid
	s.mu.Unlock()

	s.notify.Success("Account created successfully")
	s.nav.Navigate(pathVerify + "?email=" + url.QueryEscape(user.Email) + "&uid=" + uid)
}

// Logout signs out best-effort: a failed network call is reported but never
// blocks clearing the local session.
func (s *Service) Logout(ctx context.Context) {
	if err := s.api.SignOut(ctx); err != nil {
		s.notify.Error(mathsdk.Message(err))
	} else {
		s.notify.Success("Signed out successfully")
	}

	s.mu.Lock()
	s.user = nil
	s.pending2FA = ""
	s.mu.Unlock()

	s.nav.Navigate(pathLogin)
}

// CompleteVerification is the final step of the code flow: re-probe the
// session and move to the dashboard.
func (s *Service) CompleteVerification(ctx context.Context) {
	s.mu.Lock()
	s.pending2FA = ""
	s.verifyUID = ""
	s.mu.Unlock()

	s.RefreshUser(ctx)
	s.nav.Navigate(pathDashboard)
}

// ============================================================================
// Password Operations
// ============================================================================

// ForgotPassword requests a reset code for the given email.
func (s *Service) ForgotPassword(ctx context.Context, email string) {
	defer s.beginSubmit()()

	resp, err := s.api.RequestPasswordReset(ctx, email)
	if err != nil {
		s.notify.Error(mathsdk.Message(err))
		return
	}
	s.notify.Success(resp.Message)
}

// ResetPassword exchanges an emailed code for a new password and returns to
// the login screen.
func (s *Service) ResetPassword(ctx context.Context, code, newPassword string) {
	defer s.beginSubmit()()

	resp, err := s.api.ConfirmPasswordReset(ctx, code, newPassword)
	if err != nil {
		s.notify.Error(mathsdk.Message(err))
		return
	}

	s.notify.Success(resp.Message)
	s.nav.Navigate(pathLogin)
}

// ChangePassword rotates the password for the signed-in user.
func (s *Service) ChangePassword(ctx context.Context, oldPassword, newPassword string) {
	defer s.beginSubmit()()

	resp, err := s.api.ChangePassword(ctx, oldPassword, newPassword)
	if err != nil {
		s.notify.Error(mathsdk.Message(err))
		return
	}
	s.notify.Success(resp.Message)
}

// ============================================================================
// Account Operations
// ============================================================================

// DeleteAccount destroys the account after password re-entry. On success the
// user record is cleared before navigating home, so any subsequent read
// observes nil.
func (s *Service) DeleteAccount(ctx context.Context, password string) {
	defer s.beginSubmit()()

	if err := s.api.DeleteAccount(ctx, password); err != nil {
		s.notify.Error(mathsdk.Message(err))
		return
	}

	s.mu.Lock()
	s.user = nil
	s.pending2FA = ""
	s.mu.Unlock()

	s.notify.Success("Account has been deleted")
	s.nav.Navigate(pathHome)
}

// ToggleTwoFactor posts the new flag then reconciles through the whoami
// probe; the backend is authoritative for the resulting state.
func (s *Service) ToggleTwoFactor(ctx context.Context, enabled bool) {
	defer s.beginSubmit()()

	resp, err := s.api.SetTwoFactor(ctx, enabled)
	if err != nil {
		s.notify.Error(mathsdk.Message(err))
		return
	}

	s.RefreshUser(ctx)
	s.notify.Success(resp.Message)
}

// UpdateProfile applies a partial update and replaces the stored user with
// the server's returned representation.
func (s *Service) UpdateProfile(ctx context.Context, update mathsdk.ProfileUpdate) {
	defer s.beginSubmit()()

	user, err := s.api.UpdateProfile(ctx, update)
	if err != nil {
		s.notify.Error(mathsdk.Message(err))
		return
	}

	s.mu.Lock()
	s.user = user
	s.mu.Unlock()

	s.notify.Success("Profile updated successfully")
}
