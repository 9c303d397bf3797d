package webapp

import (
	"net/http"

	"github.com/myc22ka/mathapp-client/internal/routeguard"
	"github.com/myc22ka/mathapp-client/pkg/httpx"
	"github.com/myc22ka/mathapp-client/pkg/logx"
)

// routes builds the local UI handler: request logging and the route guard
// wrap everything; authentication POSTs additionally carry a strict per-IP
// rate limit so a hijacked local port cannot brute-force the backend.
func (app *Application) routes() http.Handler {
	mux := http.NewServeMux()

	strict := httpx.RateLimitByIP(httpx.StrictLimit)

	// Session lifecycle
	mux.Handle("POST /auth/login", strict(http.HandlerFunc(app.handleLogin)))
	mux.Handle("POST /auth/register", strict(http.HandlerFunc(app.handleRegister)))
	mux.Handle("POST /auth/logout", http.HandlerFunc(app.handleLogout))

	// Password management
	mux.Handle("POST /auth/forgot-password", strict(http.HandlerFunc(app.handleForgotPassword)))
	mux.Handle("POST /auth/reset-password", strict(http.HandlerFunc(app.handleResetPassword)))
	mux.Handle("POST /auth/change-password", strict(http.HandlerFunc(app.handleChangePassword)))

	// Account management
	mux.Handle("POST /auth/delete-account", strict(http.HandlerFunc(app.handleDeleteAccount)))
	mux.Handle("POST /auth/two-factor", http.HandlerFunc(app.handleTwoFactor))
	mux.Handle("POST /profile", http.HandlerFunc(app.handleUpdateProfile))
	mux.Handle("POST /profile/photo", http.HandlerFunc(app.handleUploadPhoto))
	mux.Handle("DELETE /profile/photo", http.HandlerFunc(app.handleDeletePhoto))
	mux.Handle("GET /profile/photo/download", http.HandlerFunc(app.handleDownloadPhoto))

	// Verification code flow
	mux.Handle("GET /verify/state", http.HandlerFunc(app.handleVerifyState))
	mux.Handle("POST /verify/start", http.HandlerFunc(app.handleVerifyStart))
	mux.Handle("POST /verify/focus", http.HandlerFunc(app.handleVerifyFocus))
	mux.Handle("POST /verify/type", http.HandlerFunc(app.handleVerifyType))
	mux.Handle("POST /verify/backspace", http.HandlerFunc(app.handleVerifyBackspace))
	mux.Handle("POST /verify/paste", http.HandlerFunc(app.handleVerifyPaste))
	mux.Handle("POST /verify/clipboard", http.HandlerFunc(app.handleVerifyClipboard))
	mux.Handle("POST /verify/resend", strict(http.HandlerFunc(app.handleVerifyResend)))

	// Sidebar preferences
	mux.Handle("GET /api/sidebar", http.HandlerFunc(app.handleSidebarState))
	mux.Handle("POST /api/sidebar/toggle", http.HandlerFunc(app.handleSidebarToggle))
	mux.Handle("POST /api/sidebar/open", http.HandlerFunc(app.handleSidebarOpen))
	mux.Handle("POST /api/sidebar/hover", http.HandlerFunc(app.handleSidebarHover))
	mux.Handle("POST /api/sidebar/settings", http.HandlerFunc(app.handleSidebarSettings))

	// Daily exercise and chat
	mux.Handle("GET /api/exercise/daily", http.HandlerFunc(app.handleDailyExercise))
	mux.Handle("POST /api/exercise/solve", http.HandlerFunc(app.handleSolveExercise))
	mux.Handle("POST /api/chat", http.HandlerFunc(app.handleChat))
	mux.Handle("GET /api/chat/messages", http.HandlerFunc(app.handleChatMessages))

	// Page state for the UI shell
	mux.Handle("GET /api/state", http.HandlerFunc(app.handleAppState))
	mux.Handle("GET /api/toasts", http.HandlerFunc(app.handleToasts))

	return httpx.Chain(mux,
		logx.HTTPMiddleware(app.logger),
		routeguard.Middleware,
	)
}
