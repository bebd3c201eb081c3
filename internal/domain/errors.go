package domain

import (
	"errors"

	"google.golang.org/grpc/codes"
)

var (
	ErrNotFound           = errors.New("resource not found")
	ErrPermissionDenied   = errors.New("permission denied")
	ErrInvalidState       = errors.New("operation not allowed in current status")
	ErrAlreadySubmitted   = errors.New("guardian already submitted for this request")
	ErrAlreadyExists      = errors.New("resource already exists")
	ErrReconstruction     = errors.New("secret reconstruction failed")
	ErrExpired            = errors.New("deadline passed")
	ErrPreconditionFailed = errors.New("dependent resource not ready")
	ErrRateLimitExceeded  = errors.New("submission rate limit exceeded")
	ErrInvalidArgument    = errors.New("invalid argument")
)

// ErrorCode maps a domain error to the gRPC status code the API layer
// should respond with.
func ErrorCode(err error) codes.Code {
	switch {
	case errors.Is(err, ErrNotFound):
		return codes.NotFound
	case errors.Is(err, ErrPermissionDenied):
		return codes.PermissionDenied
	case errors.Is(err, ErrInvalidState), errors.Is(err, ErrExpired), errors.Is(err, ErrPreconditionFailed):
		return codes.FailedPrecondition
	case errors.Is(err, ErrAlreadySubmitted), errors.Is(err, ErrAlreadyExists):
		return codes.AlreadyExists
	case errors.Is(err, ErrReconstruction):
		return codes.DataLoss
	case errors.Is(err, ErrRateLimitExceeded):
		return codes.ResourceExhausted
	case errors.Is(err, ErrInvalidArgument):
		return codes.InvalidArgument
	default:
		return codes.Internal
	}
}
