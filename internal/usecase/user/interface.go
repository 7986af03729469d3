package user

import "context"

// Usecase defines the interface for identity operations.
type Usecase interface {
	// Lookup returns the user record for an email, or (nil, nil) when the
	// store has no matching record.
	Lookup(ctx context.Context, in LookupRequest) (*Response, error)

	// Create registers a new user record. It does not deduplicate; a
	// duplicate email yields a conflict error from the store.
	Create(ctx context.Context, in CreateRequest) (*Response, error)
}
