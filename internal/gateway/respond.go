package gateway

import (
	"encoding/json"
	"net/http"

	"github.com/campusdata/webreg-collector/internal/apierr"
)

// writeJSON encodes v as the response body with the given status code.
func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError translates err into the standard {"error", "context"} body.
// Any error that is not an *apierr.APIError is treated as an opaque 500.
func writeError(w http.ResponseWriter, err error) {
	apiErr, ok := err.(*apierr.APIError)
	if !ok {
		apiErr = apierr.General(http.StatusInternalServerError, "an unexpected internal error occurred", err.Error())
	}
	writeJSON(w, apiErr.Status, apiErr.Body())
}
