// Package results defines the operation result type returned by service
// layer methods: either a success payload or a failure payload, alongside
// the transport-level error.
package results

// OperationResult carries the outcome of one service operation. Exactly one
// of Success or Failure is set on a completed operation; both nil with a
// non-nil error means the operation never reached a decision.
type OperationResult[S any, F any] struct {
	Success *S
	Failure *F
	Error   error
}

// SuccessResult wraps a success payload.
func SuccessResult[S any, F any](payload S) OperationResult[S, F] {
	return OperationResult[S, F]{Success: &payload}
}

// FailureResult wraps a failure payload and its causing error.
func FailureResult[S any, F any](payload F, err error) OperationResult[S, F] {
	return OperationResult[S, F]{Failure: &payload, Error: err}
}

// IsSuccess reports whether a success payload is present.
func (r OperationResult[S, F]) IsSuccess() bool {
	return r.Success != nil
}

// IsFailure reports whether a failure payload is present.
func (r OperationResult[S, F]) IsFailure() bool {
	return r.Failure != nil
}
