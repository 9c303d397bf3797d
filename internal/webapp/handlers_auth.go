package webapp

import (
	"net/http"

	"github.com/myc22ka/mathapp-client/internal/validation"
	"github.com/myc22ka/mathapp-client/pkg/httpx"
	"github.com/myc22ka/mathapp-client/pkg/logx"
	"github.com/myc22ka/mathapp-client/pkg/mathsdk"
)

// writeFieldErrors answers a client-side validation failure. These requests
// never reach the backend.
func writeFieldErrors(w http.ResponseWriter, r *http.Request, errs validation.FieldErrors) {
	logx.FromContext(r.Context()).Debug("form rejected client-side", "fields", len(errs))
	httpx.WriteJSON(w, http.StatusUnprocessableEntity, map[string]any{
		"message": errs.First(),
		"fields":  errs,
	})
}

func (app *Application) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Identifier string `json:"identifier"`
		Password   string `json:"password"`
	}
	if !decodeBody(w, r, &req) {
		return
	}

	form := validation.LoginForm{Identifier: req.Identifier, Password: req.Password}
	if errs := form.Validate(); !errs.Valid() {
		writeFieldErrors(w, r, errs)
		return
	}

	app.sessions.Login(r.Context(), req.Identifier, req.Password)
	app.finishOp(w, r)
}

func (app *Application) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Login           string `json:"login"`
		Email           string `json:"email"`
		Password        string `json:"password"`
		ConfirmPassword string `json:"confirmPassword"`
		AcceptTerms     bool   `json:"acceptTerms"`
	}
	if !decodeBody(w, r, &req) {
		return
	}

	form := validation.RegisterForm{
		Login:           req.Login,
		Email:           req.Email,
		Password:        req.Password,
		ConfirmPassword: req.ConfirmPassword,
		AcceptTerms:     req.AcceptTerms,
	}
	if errs := form.Validate(); !errs.Valid() {
		writeFieldErrors(w, r, errs)
		return
	}

	app.sessions.Register(r.Context(), mathsdk.RegisterRequest{
		Login:       req.Login,
		Email:       req.Email,
		Password:    req.Password,
		AcceptTerms: req.AcceptTerms,
	})
	app.finishOp(w, r)
}

func (app *Application) handleLogout(w http.ResponseWriter, r *http.Request) {
	app.sessions.Logout(r.Context())

	// Drop the jar entry even if the sign-out call failed; a stale cookie
	// must not make the client look authenticated.
	app.client.ClearSession()
	app.finishOp(w, r)
}

func (app *Application) handleForgotPassword(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email string `json:"email"`
	}
	if !decodeBody(w, r, &req) {
		return
	}

	form := validation.ForgotPasswordForm{Email: req.Email}
	if errs := form.Validate(); !errs.Valid() {
		writeFieldErrors(w, r, errs)
		return
	}

	app.sessions.ForgotPassword(r.Context(), req.Email)
	app.finishOp(w, r)
}

func (app *Application) handleResetPassword(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Code            string `json:"code"`
		Password        string `json:"password"`
		ConfirmPassword string `json:"confirmPassword"`
	}
	if !decodeBody(w, r, &req) {
		return
	}

	form := validation.PasswordResetForm{
		Password:        req.Password,
		ConfirmPassword: req.ConfirmPassword,
	}
	if errs := form.Validate(); !errs.Valid() {
		writeFieldErrors(w, r, errs)
		return
	}

	app.sessions.ResetPassword(r.Context(), req.Code, req.Password)
	app.finishOp(w, r)
}

func (app *Application) handleChangePassword(w http.ResponseWriter, r *http.Request) {
	var req struct {
		OldPassword     string `json:"oldPassword"`
		NewPassword     string `json:"newPassword"`
		ConfirmPassword string `json:"confirmPassword"`
	}
	if !decodeBody(w, r, &req) {
		return
	}

	form := validation.PasswordResetForm{
		Password:        req.NewPassword,
		ConfirmPassword: req.ConfirmPassword,
	}
	if errs := form.Validate(); !errs.Valid() {
		writeFieldErrors(w, r, errs)
		return
	}

	app.sessions.ChangePassword(r.Context(), req.OldPassword, req.NewPassword)
	app.finishOp(w, r)
}

func (app *Application) handleDeleteAccount(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Password string `json:"password"`
	}
	if !decodeBody(w, r, &req) {
		return
	}

	app.sessions.DeleteAccount(r.Context(), req.Password)
	if !app.sessions.IsAuthenticated() {
		app.client.ClearSession()
	}
	app.finishOp(w, r)
}

func (app *Application) handleTwoFactor(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Enabled bool `json:"enabled"`
	}
	if !decodeBody(w, r, &req) {
		return
	}

	app.sessions.ToggleTwoFactor(r.Context(), req.Enabled)
	app.finishOp(w, r)
}

func (app *Application) handleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	var update mathsdk.ProfileUpdate
	if !decodeBody(w, r, &update) {
		return
	}

	app.sessions.UpdateProfile(r.Context(), update)
	app.finishOp(w, r)
}

func (app *Application) handleUploadPhoto(w http.ResponseWriter, r *http.Request) {
	file, header, err := r.FormFile("file")
	if err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "missing file")
		return
	}
	defer file.Close()

	app.sessions.UploadProfileImage(r.Context(), header.Filename, file)
	app.finishOp(w, r)
}

func (app *Application) handleDeletePhoto(w http.ResponseWriter, r *http.Request) {
	app.sessions.DeleteProfileImage(r.Context())
	app.finishOp(w, r)
}

func (app *Application) handleDownloadPhoto(w http.ResponseWriter, r *http.Request) {
	app.sessions.DownloadProfileImage(r.Context())
	app.finishOp(w, r)
}
