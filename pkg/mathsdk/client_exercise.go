package mathsdk

import (
	"context"
	"net/http"
)

// DailyExerciseTask fetches today's exercise.
func (c *Client) DailyExerciseTask(ctx context.Context) (*ExerciseDTO, error) {
	resp, err := c.doJSON(ctx, http.MethodGet, "/api/exercises/daily", nil)
	if err != nil {
		return nil, err
	}

	var exercise ExerciseDTO
	if err := decodeJSON(resp, &exercise, http.StatusOK); err != nil {
		return nil, err
	}

	return &exercise, nil
}

// SolveDaily submits an answer for today's exercise. The response message
// carries the verdict; Status distinguishes correct from incorrect attempts.
func (c *Client) SolveDaily(ctx context.Context, answer string) (*DefaultResponse, error) {
	resp, err := c.doJSON(ctx, http.MethodPost, "/api/exercises/solve-daily", map[string]string{
		"answer": answer,
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
