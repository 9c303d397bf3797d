package webapp

import (
	"encoding/json"
	"net/http"

	"github.com/myc22ka/mathapp-client/pkg/httpx"
	"github.com/myc22ka/mathapp-client/pkg/mathsdk"
)

// appState is the shell snapshot the UI polls.
type appState struct {
	User            *mathsdk.User `json:"user"`
	IsAuthenticated bool          `json:"isAuthenticated"`
	IsLoading       bool          `json:"isLoading"`
	IsSubmitting    bool          `json:"isSubmitting"`
	Pending2FA      string        `json:"pending2FA,omitempty"`
	VerifyUID       string        `json:"verifyUID,omitempty"`
}

func (app *Application) stateSnapshot() appState {
	return appState{
		User:            app.sessions.User(),
		IsAuthenticated: app.sessions.IsAuthenticated(),
		IsLoading:       app.sessions.IsLoading(),
		IsSubmitting:    app.sessions.IsSubmitting(),
		Pending2FA:      app.sessions.Pending2FA(),
		VerifyUID:       app.sessions.VerifyUID(),
	}
}

// decodeBody parses a JSON request body into target. On failure it answers
// 400 and returns false.
func decodeBody(w http.ResponseWriter, r *http.Request, target any) bool {
	if err := json.NewDecoder(r.Body).Decode(target); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid request body")
		return false
	}
	return true
}

// mirrorSessionCookie copies the backend session cookie from the SDK jar onto
// the local response, so the route guard's presence check tracks the real
// session. An absent jar cookie clears the local one.
func (app *Application) mirrorSessionCookie(w http.ResponseWriter) {
	if cookie := app.client.SessionCookie(); cookie != nil {
		http.SetCookie(w, &http.Cookie{
			Name:     mathsdk.SessionCookieName,
			Value:    cookie.Value,
			Path:     "/",
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		})
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     mathsdk.SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})
}

// finishOp completes a session-mutating request: sync the session cookie,
// then either follow the navigation the operation requested or answer with
// the fresh state snapshot.
func (app *Application) finishOp(w http.ResponseWriter, r *http.Request) {
	app.mirrorSessionCookie(w)

	if path, ok := app.redirects.Consume(); ok {
		http.Redirect(w, r, path, http.StatusSeeOther)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, app.stateSnapshot())
}

func (app *Application) handleAppState(w http.ResponseWriter, r *http.Request) {
	httpx.WriteJSON(w, http.StatusOK, app.stateSnapshot())
}

func (app *Application) handleToasts(w http.ResponseWriter, r *http.Request) {
	toasts := app.toasts.Drain()
	if toasts == nil {
		toasts = []Toast{}
	}
	httpx.WriteJSON(w, http.StatusOK, toasts)
}
