package webapp

import (
	"net/http"

	"github.com/myc22ka/mathapp-client/internal/prefs"
	"github.com/myc22ka/mathapp-client/pkg/httpx"
)

// sidebarView is the sidebar state plus its derived render flag.
type sidebarView struct {
	prefs.SidebarState
	OpenState bool `json:"openState"`
}

func (app *Application) sidebarSnapshot() sidebarView {
	return sidebarView{
		SidebarState: app.sidebar.State(),
		OpenState:    app.sidebar.OpenState(),
	}
}

func (app *Application) handleSidebarState(w http.ResponseWriter, r *http.Request) {
	httpx.WriteJSON(w, http.StatusOK, app.sidebarSnapshot())
}

func (app *Application) handleSidebarToggle(w http.ResponseWriter, r *http.Request) {
	app.sidebar.Toggle(r.Context())
	httpx.WriteJSON(w, http.StatusOK, app.sidebarSnapshot())
}

func (app *Application) handleSidebarOpen(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Open bool `json:"open"`
	}
	if !decodeBody(w, r, &req) {
		return
	}

	app.sidebar.SetOpen(r.Context(), req.Open)
	httpx.WriteJSON(w, http.StatusOK, app.sidebarSnapshot())
}

func (app *Application) handleSidebarHover(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Hover bool `json:"hover"`
	}
	if !decodeBody(w, r, &req) {
		return
	}

	app.sidebar.SetHover(r.Context(), req.Hover)
	httpx.WriteJSON(w, http.StatusOK, app.sidebarSnapshot())
}

func (app *Application) handleSidebarSettings(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Disabled    *bool `json:"disabled"`
		IsHoverOpen *bool `json:"isHoverOpen"`
	}
	if !decodeBody(w, r, &req) {
		return
	}

	app.sidebar.SetSettings(r.Context(), prefs.SettingsPatch{
		Disabled:    req.Disabled,
		IsHoverOpen: req.IsHoverOpen,
	})
	httpx.WriteJSON(w, http.StatusOK, app.sidebarSnapshot())
}
