package httpapi

import (
	"net/http"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

var httpStatusByCode = map[codes.Code]int{
	codes.OK:               http.StatusOK,
	codes.InvalidArgument:  http.StatusBadRequest,
	codes.Unauthenticated:  http.StatusUnauthorized,
	codes.PermissionDenied: http.StatusForbidden,
	codes.NotFound:         http.StatusNotFound,
	codes.AlreadyExists:    http.StatusConflict,
	codes.Aborted:          http.StatusConflict,
	codes.Unavailable:      http.StatusServiceUnavailable,
}

// httpStatus maps an error returned by the service to a status code and a
// message safe to show.
func httpStatus(err error) (int, string) {
	st := status.Convert(err)
	code, ok := httpStatusByCode[st.Code()]
	if !ok {
		return http.StatusInternalServerError, "internal error"
	}
	return code, st.Message()
}
