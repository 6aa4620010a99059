package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"strconv"

	"mesh-demo/internal/domain"
)

// Error is the JSON error envelope.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// writeError maps domain error kinds to HTTP status codes. Anything
// unrecognized is a 500 with a generic message so internals don't leak.
func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	message := "internal server error"

	switch {
	case errors.As(err, new(*domain.ValidationError)):
		status = http.StatusBadRequest
		message = err.Error()
	case errors.As(err, new(*domain.NotFoundError)):
		status = http.StatusNotFound
		message = err.Error()
	case errors.As(err, new(*domain.ConflictError)):
		status = http.StatusConflict
		message = err.Error()
	}

	writeJSON(w, status, Error{Code: status, Message: message})
}

// pageFromQuery extracts a PageRequest from max_results/page_token query
// parameters. Invalid values fall back to defaults.
func pageFromQuery(q url.Values) domain.PageRequest {
	p := domain.PageRequest{PageToken: q.Get("page_token")}
	if v := q.Get("max_results"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			p.MaxResults = n
		}
	}
	return p
}

func decodeBody(r *http.Request, dst any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return domain.ErrValidation("invalid request body: %v", err)
	}
	return nil
}
