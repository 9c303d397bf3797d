package mathsdk

import (
	"context"
	"net/http"
)

// ============================================================================
// Session Establishment
// ============================================================================

// SignIn authenticates with a login-or-email identifier and password.
//
// Two success shapes exist: a fully populated User means the session cookie
// was set and the session is established; a partial record with only Email
// means a second factor is required (see User.SecondFactorRequired).
func (c *Client) SignIn(ctx context.Context, req LoginRequest) (*User, error) {
	resp, err := c.doJSON(ctx, http.MethodPost, "/auth/sign-in", req)
	if err != nil {
		return nil, err
	}

	var user User
	if err := decodeJSON(resp, &user, http.StatusOK); err != nil {
		return nil, err
	}

	return &user, nil
}

// Register creates a new account. The backend sets the session cookie and
// sends a verification email; the returned user is not yet verified.
func (c *Client) Register(ctx context.Context, req RegisterRequest) (*User, error) {
	resp, err := c.doJSON(ctx, http.MethodPost, "/auth/register", req)
	if err != nil {
		return nil, err
	}

	var user User
	if err := decodeJSON(resp, &user, http.StatusOK); err != nil {
		return nil, err
	}

	return &user, nil
}

// SignOut asks the backend to clear the session cookie.
func (c *Client) SignOut(ctx context.Context) error {
	resp, err := c.doJSON(ctx, http.MethodPost, "/auth/sign-out", nil)
	if err != nil {
		return err
	}

	return checkStatus(resp, http.StatusOK)
}

// Me is the whoami probe: it returns the authoritative current user for the
// session cookie, or an error when the session is absent or expired.
func (c *Client) Me(ctx context.Context) (*User, error) {
	resp, err := c.doJSON(ctx, http.MethodGet, "/auth/me", nil)
	if err != nil {
		return nil, err
	}

	var user User
	if err := decodeJSON(resp, &user, http.StatusOK); err != nil {
		return nil, err
	}

	return &user, nil
}

// ============================================================================
// Password Management
// ============================================================================

// RequestPasswordReset emails a reset code to the given address.
func (c *Client) RequestPasswordReset(ctx context.Context, email string) (*DefaultResponse, error) {
	resp, err := c.doJSON(ctx, http.MethodPost, "/auth/password/request", map[string]string{
		"email": email,
	})
	if err != nil {
		return nil, err
	}

	var out DefaultResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}

	return &out, nil
}

// ConfirmPasswordReset exchanges an emailed reset code for a new password.
func (c *Client) ConfirmPasswordReset(ctx context.Context, code, newPassword string) (*DefaultResponse, error) {
	resp, err := c.doJSON(ctx, http.MethodPost, "/auth/password/confirm", map[string]string{
		"code":        code,
		"newPassword": newPassword,
	})
	if err != nil {
		return nil, err
	}

	var out DefaultResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}

	return &out, nil
}

// ChangePassword rotates the password for the authenticated session.
func (c *Client) ChangePassword(ctx context.Context, oldPassword, newPassword string) (*DefaultResponse, error) {
	resp, err := c.doJSON(ctx, http.MethodPost, "/auth/password/change", map[string]string{
		"oldPassword": oldPassword,
		"newPassword": newPassword,
	})
	if err != nil {
		return nil, err
	}

	var out DefaultResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}

	return &out, nil
}

// ============================================================================
// Account Management
// ============================================================================

// DeleteAccount permanently removes the authenticated account. The password
// re-entry is a confirmation factor required by the backend.
func (c *Client) DeleteAccount(ctx context.Context, password string) error {
	resp, err := c.doJSON(ctx, http.MethodDelete, "/auth/delete", map[string]string{
		"password": password,
	})
	if err != nil {
		return err
	}

	return checkStatus(resp, http.StatusOK)
}

// SetTwoFactor enables or disables two-factor authentication. Callers should
// re-probe /auth/me afterwards; the flag on the stored user is stale.
func (c *Client) SetTwoFactor(ctx context.Context, enabled bool) (*DefaultResponse, error) {
	resp, err := c.doJSON(ctx, http.MethodPost, "/auth/2fa", map[string]bool{
		"enabled": enabled,
	})
	if err != nil {
		return nil, err
	}

	var out DefaultResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}

	return &out, nil
}

// UpdateProfile applies a partial profile update and returns the server's
// authoritative representation of the user.
func (c *Client) UpdateProfile(ctx context.Context, update ProfileUpdate) (*User, error) {
	resp, err := c.doJSON(ctx, http.MethodPatch, "/auth/update", update)
	if err != nil {
		return nil, err
	}

	var user User
	if err := decodeJSON(resp, &user, http.StatusOK); err != nil {
		return nil, err
	}

	return &user, nil
}

// ============================================================================
// Verification Codes
// ============================================================================

// VerifyCode submits a six-digit email verification code. On success the
// backend refreshes the session cookie for the now-verified user.
func (c *Client) VerifyCode(ctx context.Context, email, code string) error {
	path := appendQuery("/auth/verify-code", map[string]string{
		"email": email,
		"code":  code,
	})

	resp, err := c.doJSON(ctx, http.MethodPost, path, nil)
	if err != nil {
		return err
	}

	return checkStatus(resp, http.StatusOK)
}

// ResendCode asks the backend to email a fresh verification code.
func (c *Client) ResendCode(ctx context.Context, email string) (*DefaultResponse, error) {
	path := appendQuery("/auth/resend-code", map[string]string{"email": email})

	resp, err := c.doJSON(ctx, http.MethodPost, path, nil)
	if err != nil {
		return nil, err
	}

	var out DefaultResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}

	return &out, nil
}
