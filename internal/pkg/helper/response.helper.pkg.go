package helper

import (
	"net/http"
	types "pos-terminal/internal/common/type"
	"pos-terminal/internal/pkg/logger"
)

// ParseResponse fills in defaults and logs server-side failures.
func ParseResponse(r *types.Response) *types.Response {
	if r.Code == 0 {
		r.Code = http.StatusOK
	}
	if r.Message == "" {
		r.Message = http.StatusText(r.Code)
	}
	if r.Error != nil && r.Code >= http.StatusInternalServerError {
		logger.Error.Printf("%s: %v", r.Message, r.Error)
	}
	return r
}

// ToResponseAPI builds the JSON envelope. Error text is hidden when hideError is set.
func ToResponseAPI(r *types.Response, hideError bool) types.ResponseAPI {
	out := types.ResponseAPI{
		Status:  r.Code,
		Message: r.Message,
		Data:    r.Data,
	}
	if r.Error != nil && !(hideError && r.Code >= http.StatusInternalServerError) {
		out.Error = r.Error.Error()
	}
	return out
}
