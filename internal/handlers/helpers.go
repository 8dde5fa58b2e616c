package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"kidquest/internal/apperr"
)

// respondJSON writes a JSON response with the given status
func respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Printf("Failed to encode response: %v", err)
	}
}

// decodeJSON decodes a request body into dst, rejecting unknown content
func decodeJSON(r *http.Request, dst any) error {
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(dst); err != nil {
		return apperr.InvalidArgument("invalid request body")
	}
	return nil
}

// errorResponse is the JSON shape of every error payload
type errorResponse struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// respondError maps an error to an HTTP status and JSON body. Application
// errors carry their own code and status; anything else becomes a logged
// 500 with no internals leaked.
func respondError(w http.ResponseWriter, r *http.Request, err error) {
	var appErr *apperr.Error
	if !errors.As(err, &appErr) {
		appErr = apperr.Internal(err)
	}

	if appErr.HTTPStatus() >= http.StatusInternalServerError {
		log.Printf("%s %s: %v", r.Method, r.URL.Path, err)
	}

	var body errorResponse
	body.Error.Code = appErr.Code
	body.Error.Message = appErr.Message
	respondJSON(w, appErr.HTTPStatus(), body)
}
