package exercise

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/myc22ka/mathapp-client/pkg/mathsdk"
)

type fakeExerciseAPI struct {
	exercise *mathsdk.ExerciseDTO
	fetchErr error
	solve    *mathsdk.DefaultResponse
	solveErr error
}

func (f *fakeExerciseAPI) DailyExerciseTask(ctx context.Context) (*mathsdk.ExerciseDTO, error) {
	return f.exercise, f.fetchErr
}

func (f *fakeExerciseAPI) SolveDaily(ctx context.Context, answer string) (*mathsdk.DefaultResponse, error) {
	return f.solve, f.solveErr
}

func TestFetchDaily(t *testing.T) {
	t.Parallel()

	t.Run("stores the exercise", func(t *testing.T) {
		svc := New(&fakeExerciseAPI{
			exercise: &mathsdk.ExerciseDTO{ID: 42, Text: "2+2=?", Answer: "4"},
		})

		svc.FetchDaily(context.Background())

		require.NotNil(t, svc.Exercise())
		require.Equal(t, int64(42), svc.Exercise().ID)
		require.Empty(t, svc.Err())
		require.False(t, svc.IsLoading())
	})

	t.Run("failure surfaces and keeps the previous exercise", func(t *testing.T) {
		api := &fakeExerciseAPI{
			exercise: &mathsdk.ExerciseDTO{ID: 42, Text: "2+2=?"},
		}
		svc := New(api)
		svc.FetchDaily(context.Background())

		api.exercise = nil
		api.fetchErr = &mathsdk.APIError{Status: 500, Msg: "No exercise today"}
		svc.FetchDaily(context.Background())

		require.Equal(t, "No exercise today", svc.Err())
		require.NotNil(t, svc.Exercise())
	})
}

func TestSolveDaily(t *testing.T) {
	t.Parallel()

	t.Run("returns the verdict", func(t *testing.T) {
		svc := New(&fakeExerciseAPI{
			solve: &mathsdk.DefaultResponse{Message: "Correct!", Status: 200},
		})

		resp := svc.SolveDaily(context.Background(), "4")

		require.NotNil(t, resp)
		require.Equal(t, "Correct!", resp.Message)
	})

	t.Run("failure returns nil and sets the error", func(t *testing.T) {
		svc := New(&fakeExerciseAPI{
			solveErr: &mathsdk.APIError{Status: 409, Msg: "Already solved today"},
		})

		resp := svc.SolveDaily(context.Background(), "4")

		require.Nil(t, resp)
		require.Equal(t, "Already solved today", svc.Err())
	})
}
