package service

import (
	"context"

	"github.com/fashio-ai/styling-api/internal/core/domain"
	"github.com/fashio-ai/styling-api/internal/core/ports"
)

// acquireAction claims the per-user busy flag for an action and returns the
// matching release func. A held flag is a rejection, not a wait.
func acquireAction(ctx context.Context, locks ports.ActionLocker, userID string, action ports.Action) (func(), error) {
	ok, err := locks.Acquire(ctx, userID, action)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, domain.ErrActionInProgress
	}
	release := func() {
		// Release must run even when the request context was cancelled.
		_ = locks.Release(context.WithoutCancel(ctx), userID, action)
	}
	return release, nil
}
