package backend

import (
	"context"
	"errors"
	"net/http"
	types "pos-terminal/internal/common/type"
	"pos-terminal/internal/pkg/helper"
)

// StatusOf returns the backend status carried by err, or 0.
func StatusOf(err error) int {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode
	}
	return 0
}

// ErrorResponse maps a failed backend call to the response relayed to the
// terminal. Client errors keep the backend's message; everything else is a
// bad gateway.
func ErrorResponse(err error, message string) *types.Response {
	code := http.StatusBadGateway
	var apiErr *APIError
	switch {
	case errors.As(err, &apiErr):
		switch apiErr.StatusCode {
		case http.StatusBadRequest, http.StatusUnprocessableEntity, http.StatusConflict:
			code = http.StatusBadRequest
			message = apiErr.Message
		case http.StatusUnauthorized, http.StatusForbidden, http.StatusNotFound:
			code = apiErr.StatusCode
		}
	case errors.Is(err, context.DeadlineExceeded):
		code = http.StatusGatewayTimeout
	}

	return helper.ParseResponse(&types.Response{
		Code:    code,
		Message: message,
		Error:   err,
	})
}
