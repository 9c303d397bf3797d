package session

import (
	"context"
	"io"

	"github.com/myc22ka/mathapp-client/pkg/mathsdk"
)

// API is the slice of the backend client the session service drives.
// *mathsdk.Client satisfies it; tests substitute failure-injecting fakes.
type API interface {
	SignIn(ctx context.Context, req mathsdk.LoginRequest) (*mathsdk.User, error)
	Register(ctx context.Context, req mathsdk.RegisterRequest) (*mathsdk.User, error)
	SignOut(ctx context.Context) error
	Me(ctx context.Context) (*mathsdk.User, error)
	RequestPasswordReset(ctx context.Context, email string) (*mathsdk.DefaultResponse, error)
	ConfirmPasswordReset(ctx context.Context, code, newPassword string) (*mathsdk.DefaultResponse, error)
	ChangePassword(ctx context.Context, oldPassword, newPassword string) (*mathsdk.DefaultResponse, error)
	DeleteAccount(ctx context.Context, password string) error
	SetTwoFactor(ctx context.Context, enabled bool) (*mathsdk.DefaultResponse, error)
	UpdateProfile(ctx context.Context, update mathsdk.ProfileUpdate) (*mathsdk.User, error)
	UploadProfileImage(ctx context.Context, filename string, content io.Reader) (*mathsdk.DefaultResponse, error)
	DownloadProfileImage(ctx context.Context) ([]byte, error)
	DeleteProfileImage(ctx context.Context) (*mathsdk.DefaultResponse, error)
}

// Navigator receives navigation side effects from session operations. In the
// application it translates to HTTP redirects on the local UI server.
type Navigator interface {
	Navigate(path string)
}

// NavigatorFunc adapts a function to the Navigator interface.
type NavigatorFunc func(path string)

func (f NavigatorFunc) Navigate(path string) { f(path) }

// Notifier surfaces transient success/error notifications, the toast
// equivalent of the original UI.
type Notifier interface {
	Success(msg string)
	Error(msg string)
}

// FileSaver persists downloaded binary content client-side.
type FileSaver interface {
	Save(name string, content []byte) error
}
