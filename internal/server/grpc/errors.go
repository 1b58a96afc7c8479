package grpc

import (
	"errors"

	"github.com/dmitrijs2005/streakkeeper/internal/common"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// Code maps a service error to the gRPC code it is reported with.
func Code(err error) codes.Code {
	switch {
	case err == nil:
		return codes.OK
	case errors.Is(err, common.ErrValidation):
		return codes.InvalidArgument
	case errors.Is(err, common.ErrConflict):
		return codes.Aborted
	case errors.Is(err, common.ErrStoreUnavailable):
		return codes.Unavailable
	case errors.Is(err, common.ErrorNotFound):
		return codes.NotFound
	case errors.Is(err, common.ErrorUnauthorized):
		return codes.PermissionDenied
	case errors.Is(err, common.ErrAlreadyExists):
		return codes.AlreadyExists
	case errors.Is(err, common.ErrInvalidCredentials),
		errors.Is(err, common.ErrInvalidToken),
		errors.Is(err, common.ErrTokenExpired),
		errors.Is(err, common.ErrRefreshTokenExpired):
		return codes.Unauthenticated
	default:
		return codes.Internal
	}
}

// toStatus converts err into a status error. Internal and unavailable
// failures get a generic message so driver details never reach clients.
func toStatus(err error) error {
	if err == nil {
		return nil
	}
	if _, ok := status.FromError(err); ok {
		return err
	}

	code := Code(err)
	switch code {
	case codes.Internal:
		return status.Error(code, "internal error")
	case codes.Unavailable:
		return status.Error(code, "store unavailable, try again")
	default:
		return status.Error(code, err.Error())
	}
}
