package ports

import "context"

// Action identifies one user-facing operation guarded by a busy flag.
type Action string

const (
	ActionAdvice     Action = "advice"
	ActionRating     Action = "rating"
	ActionRatingChat Action = "rating_chat"
	ActionChat       Action = "chat"
	ActionGenerate   Action = "generate"
	ActionEdit       Action = "edit"
)

// ActionLocker enforces at most one in-flight request per user per action.
// It is a boolean busy flag, not a queue: a losing caller is rejected, never
// parked. Distinct actions never contend with each other.
type ActionLocker interface {
	// Acquire reports whether the caller obtained the flag.
	Acquire(ctx context.Context, userID string, action Action) (bool, error)
	Release(ctx context.Context, userID string, action Action) error
}
