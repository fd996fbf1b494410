package session

import "context"

// Store persists session state.
//
// Update loads the state for id (a fresh one when none exists), applies fn and
// saves the result. If fn returns an error nothing is saved and the error is
// returned unchanged. fn may run more than once when a concurrent writer wins,
// so it must only touch the state it is given.
type Store interface {
	Get(ctx context.Context, id string) (*State, error)
	Update(ctx context.Context, id string, fn func(*State) error) (*State, error)
}
