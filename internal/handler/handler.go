package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"furnistore/internal/auth"
	"furnistore/internal/blob"
	"furnistore/internal/catalog"
	"furnistore/internal/middleware"
	"furnistore/internal/model"

	"github.com/rs/zerolog"
)

// sessionBlobs scopes the shared blob store to the request's session.
func sessionBlobs(r *http.Request, blobs blob.Store) blob.Store {
	return blob.WithPrefix(blobs, "sess:"+middleware.SessionID(r.Context())+":")
}

// ClientFactory builds a catalogue client bound to one session's blob
// store, so calls carry that session's bearer token and a 401 triggers that
// session's silent refresh.
type ClientFactory func(session blob.Store) catalog.Client

// ResolverFactory builds a product resolver bound to one session's blob
// store.
type ResolverFactory func(session blob.Store) catalog.Resolver

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		// Headers are already out; nothing left to tell the client.
		return
	}
}

// writeError writes a generic error response.
func writeError(w http.ResponseWriter, status int, code, message string, logger zerolog.Logger) {
	logger.Error().Str("code", code).Str("error", message).Int("status", status).Msg("handler error")
	writeJSON(w, status, model.ErrorResponse{Error: code, Message: message})
}

// writeDomainError maps a domain error to an HTTP response. Session expiry
// carries the login redirect so the page can navigate there.
func writeDomainError(w http.ResponseWriter, r *http.Request, err error, logger zerolog.Logger) {
	var domainErr *model.DomainError
	if !errors.As(err, &domainErr) {
		writeError(w, http.StatusInternalServerError, model.ErrCodeInternalError, "internal error", logger)
		return
	}

	status := http.StatusBadRequest
	redirect := ""
	switch domainErr.Code {
	case model.ErrCodeNoOrder:
		status = http.StatusNotFound
		redirect = "/"
	case model.ErrCodeProductNotFound:
		status = http.StatusNotFound
	case model.ErrCodeEmptyCart:
		status = http.StatusUnprocessableEntity
	case model.ErrCodeOrderSubmitted:
		status = http.StatusConflict
	case model.ErrCodeSessionExpired:
		status = http.StatusUnauthorized
		redirect = auth.LoginRedirect(r.URL.Path)
	}

	logger.Warn().Str("code", domainErr.Code).Int("status", status).Msg(domainErr.Message)
	writeJSON(w, status, model.ErrorResponse{
		Error:    domainErr.Code,
		Message:  domainErr.Message,
		Redirect: redirect,
	})
}

// decodeJSON decodes a request body, answering a coded 400 on failure.
func decodeJSON(w http.ResponseWriter, r *http.Request, into any, logger zerolog.Logger) bool {
	if err := json.NewDecoder(r.Body).Decode(into); err != nil {
		writeError(w, http.StatusBadRequest, model.ErrCodeInvalidJSON, "invalid JSON body", logger)
		return false
	}
	return true
}
