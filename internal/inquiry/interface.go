package inquiry

import "context"

//go:generate mockery --name UseCase
type UseCase interface {
	// Respond runs the full response pipeline for one guest message and
	// always returns a well-formed output; unexpected faults resolve to
	// the error tier rather than a non-nil error.
	Respond(ctx context.Context, input RespondInput) (RespondOutput, error)
}
