package webapp

import (
	"net/http"

	"github.com/myc22ka/mathapp-client/internal/verifycode"
	"github.com/myc22ka/mathapp-client/pkg/httpx"
)

// verifyState is the code-entry screen snapshot.
type verifyState struct {
	Email        string                   `json:"email"`
	Slots        [verifycode.Size]string  `json:"slots"`
	FocusIndex   int                      `json:"focusIndex"`
	State        verifycode.State         `json:"state"`
	IsSubmitting bool                     `json:"isSubmitting"`
	IsResending  bool                     `json:"isResending"`
	Error        string                   `json:"error,omitempty"`
	Notice       string                   `json:"notice,omitempty"`
}

func snapshotFlow(flow *verifycode.Flow, email string) verifyState {
	return verifyState{
		Email:        email,
		Slots:        flow.Slots(),
		FocusIndex:   flow.FocusIndex(),
		State:        flow.State(),
		IsSubmitting: flow.IsSubmitting(),
		IsResending:  flow.IsResending(),
		Error:        flow.Err(),
		Notice:       flow.Notice(),
	}
}

// requireFlow fetches the active flow or answers 409 when no verification
// attempt has been started.
func (app *Application) requireFlow(w http.ResponseWriter) (*verifycode.Flow, string, bool) {
	flow, email := app.currentVerification()
	if flow == nil {
		httpx.WriteError(w, http.StatusConflict, "no verification in progress")
		return nil, "", false
	}
	return flow, email, true
}

func (app *Application) handleVerifyStart(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email string `json:"email"`
	}
	if !decodeBody(w, r, &req) {
		return
	}

	// The email normally rides in from the login/register redirect; fall back
	// to the pending second-factor attempt.
	email := req.Email
	if email == "" {
		email = app.sessions.Pending2FA()
	}
	if email == "" {
		httpx.WriteError(w, http.StatusBadRequest, "missing email")
		return
	}

	flow := app.beginVerification(email)
	httpx.WriteJSON(w, http.StatusOK, snapshotFlow(flow, email))
}

func (app *Application) handleVerifyState(w http.ResponseWriter, r *http.Request) {
	flow, email, ok := app.requireFlow(w)
	if !ok {
		return
	}
	httpx.WriteJSON(w, http.StatusOK, snapshotFlow(flow, email))
}

func (app *Application) handleVerifyFocus(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Index int `json:"index"`
	}
	if !decodeBody(w, r, &req) {
		return
	}

	flow, email, ok := app.requireFlow(w)
	if !ok {
		return
	}

	flow.Focus(req.Index)
	httpx.WriteJSON(w, http.StatusOK, snapshotFlow(flow, email))
}

func (app *Application) handleVerifyType(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Index int    `json:"index"`
		Value string `json:"value"`
	}
	if !decodeBody(w, r, &req) {
		return
	}

	flow, email, ok := app.requireFlow(w)
	if !ok {
		return
	}

	flow.Type(r.Context(), req.Index, req.Value)
	app.finishVerifyEvent(w, r, flow, email)
}

func (app *Application) handleVerifyBackspace(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Index int `json:"index"`
	}
	if !decodeBody(w, r, &req) {
		return
	}

	flow, email, ok := app.requireFlow(w)
	if !ok {
		return
	}

	flow.Backspace(req.Index)
	httpx.WriteJSON(w, http.StatusOK, snapshotFlow(flow, email))
}

func (app *Application) handleVerifyPaste(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Text string `json:"text"`
	}
	if !decodeBody(w, r, &req) {
		return
	}

	flow, email, ok := app.requireFlow(w)
	if !ok {
		return
	}

	flow.Paste(r.Context(), req.Text)
	app.finishVerifyEvent(w, r, flow, email)
}

func (app *Application) handleVerifyClipboard(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Text string `json:"text"`
	}
	if !decodeBody(w, r, &req) {
		return
	}

	flow, email, ok := app.requireFlow(w)
	if !ok {
		return
	}

	flow.ClipboardProbe(r.Context(), req.Text)
	app.finishVerifyEvent(w, r, flow, email)
}

func (app *Application) handleVerifyResend(w http.ResponseWriter, r *http.Request) {
	flow, email, ok := app.requireFlow(w)
	if !ok {
		return
	}

	flow.Resend(r.Context())
	httpx.WriteJSON(w, http.StatusOK, snapshotFlow(flow, email))
}

// finishVerifyEvent completes an event that may have triggered a submission:
// a successful verify navigates via the session service, so honour any
// recorded redirect, otherwise return the flow snapshot.
func (app *Application) finishVerifyEvent(w http.ResponseWriter, r *http.Request, flow *verifycode.Flow, email string) {
	app.mirrorSessionCookie(w)

	if path, ok := app.redirects.Consume(); ok {
		http.Redirect(w, r, path, http.StatusSeeOther)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, snapshotFlow(flow, email))
}
