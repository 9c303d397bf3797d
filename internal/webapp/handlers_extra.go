package webapp

import (
	"net/http"

	"github.com/myc22ka/mathapp-client/pkg/httpx"
)

func (app *Application) handleDailyExercise(w http.ResponseWriter, r *http.Request) {
	app.exercises.FetchDaily(r.Context())

	if msg := app.exercises.Err(); msg != "" {
		httpx.WriteError(w, http.StatusBadGateway, msg)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, app.exercises.Exercise())
}

func (app *Application) handleSolveExercise(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Answer string `json:"answer"`
	}
	if !decodeBody(w, r, &req) {
		return
	}

	resp := app.exercises.SolveDaily(r.Context(), req.Answer)
	if resp == nil {
		httpx.WriteError(w, http.StatusBadGateway, app.exercises.Err())
		return
	}

	// A solve can bump the streak and daily counters.
	app.sessions.RefreshUser(r.Context())
	httpx.WriteJSON(w, http.StatusOK, resp)
}

func (app *Application) handleChat(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Prompt string `json:"prompt"`
	}
	if !decodeBody(w, r, &req) {
		return
	}

	app.assistant.Send(r.Context(), req.Prompt)

	if msg := app.assistant.Err(); msg != "" {
		httpx.WriteError(w, http.StatusBadRequest, msg)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, app.assistant.Messages())
}

func (app *Application) handleChatMessages(w http.ResponseWriter, r *http.Request) {
	httpx.WriteJSON(w, http.StatusOK, app.assistant.Messages())
}
