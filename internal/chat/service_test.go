package chat

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/myc22ka/mathapp-client/pkg/mathsdk"
)

type fakeChatAPI struct {
	reply string
	err   error
	calls int
}

func (f *fakeChatAPI) Chat(ctx context.Context, prompt string) (string, error) {
	f.calls++
	return f.reply, f.err
}

func TestSend(t *testing.T) {
	t.Parallel()

	t.Run("appends the exchange to the log", func(t *testing.T) {
		api := &fakeChatAPI{reply: "4"}
		svc := New(api)

		svc.Send(context.Background(), "what is 2+2")

		messages := svc.Messages()
		require.Len(t, messages, 1)
		require.Equal(t, "what is 2+2", messages[0].Question)
		require.Equal(t, "4", messages[0].Response)
		require.NotEmpty(t, messages[0].ID)
		require.Empty(t, svc.Err())
	})

	t.Run("empty prompt never reaches the network", func(t *testing.T) {
		api := &fakeChatAPI{}
		svc := New(api)

		svc.Send(context.Background(), "   ")

		require.Zero(t, api.calls)
		require.Equal(t, "Message cannot be empty", svc.Err())
		require.Empty(t, svc.Messages())
	})

	t.Run("failure surfaces without appending", func(t *testing.T) {
		api := &fakeChatAPI{err: &mathsdk.APIError{Status: 503, Msg: "Assistant unavailable"}}
		svc := New(api)

		svc.Send(context.Background(), "hello")

		require.Equal(t, "Assistant unavailable", svc.Err())
		require.Empty(t, svc.Messages())
	})

	t.Run("messages accumulate in order", func(t *testing.T) {
		api := &fakeChatAPI{reply: "ok"}
		svc := New(api)

		svc.Send(context.Background(), "first")
		svc.Send(context.Background(), "second")

		messages := svc.Messages()
		require.Len(t, messages, 2)
		require.Equal(t, "first", messages[0].Question)
		require.Equal(t, "second", messages[1].Question)
		require.NotEqual(t, messages[0].ID, messages[1].ID)
	})
}
