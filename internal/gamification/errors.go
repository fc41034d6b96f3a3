package gamification

import "errors"

var (
	// ErrUserNotFound means the user row behind a stats operation is missing.
	ErrUserNotFound = errors.New("user not found")

	// ErrInvalidInput covers negative XP amounts, negative durations, and
	// other caller mistakes that must never mutate state.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnsupportedMetric rejects leaderboard metrics outside the
	// supported set before any query runs.
	ErrUnsupportedMetric = errors.New("unsupported leaderboard metric")
)
