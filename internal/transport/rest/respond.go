package rest

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/google/uuid"

	"github.com/heartmarshall/flashdeck-backend/internal/domain"
	"github.com/heartmarshall/flashdeck-backend/pkg/ctxutil"
)

// errorResponse is the body of every non-2xx response.
type errorResponse struct {
	Error  string       `json:"error"`
	Kind   string       `json:"kind"`
	Reason string       `json:"reason,omitempty"`
	Fields []fieldError `json:"fields,omitempty"`
}

type fieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

var kindStatus = map[domain.ErrorKind]int{
	domain.KindNotFound:           http.StatusNotFound,
	domain.KindForbidden:          http.StatusForbidden,
	domain.KindUnauthenticated:    http.StatusUnauthorized,
	domain.KindValidation:         http.StatusBadRequest,
	domain.KindPreconditionFailed: http.StatusUnprocessableEntity,
	domain.KindConflict:           http.StatusConflict,
	domain.KindAlreadyExists:      http.StatusConflict,
	domain.KindInternal:           http.StatusInternalServerError,
}

// writeError maps err onto the error taxonomy. Internal errors are logged
// and their text is never sent to the caller.
func writeError(w http.ResponseWriter, r *http.Request, log *slog.Logger, err error) {
	kind := domain.KindOf(err)
	status := kindStatus[kind]

	resp := errorResponse{Error: err.Error(), Kind: kind.String()}
	if reason, ok := domain.PreconditionOf(err); ok {
		resp.Reason = reason.String()
	}

	var verr *domain.ValidationError
	if errors.As(err, &verr) {
		for _, fe := range verr.Errors {
			resp.Fields = append(resp.Fields, fieldError{Field: fe.Field, Message: fe.Message})
		}
	}

	if kind == domain.KindInternal {
		log.ErrorContext(r.Context(), "internal error",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.String("error", err.Error()),
		)
		resp.Error = "internal server error"
	}

	writeJSON(w, status, resp)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck
}

// maxBodyBytes caps request bodies; the largest legitimate one is a
// moderation reason or note.
const maxBodyBytes = 64 << 10

// decodeBody decodes an optional JSON body of at most maxBodyBytes. An empty
// body leaves v untouched.
func decodeBody(w http.ResponseWriter, r *http.Request, v any) error {
	if r.Body == nil || r.ContentLength == 0 {
		return nil
	}
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	err := dec.Decode(v)
	var tooLarge *http.MaxBytesError
	switch {
	case err == nil, errors.Is(err, io.EOF):
		return nil
	case errors.As(err, &tooLarge):
		return domain.NewValidationError("body", fmt.Sprintf("request body exceeds %d bytes", tooLarge.Limit))
	default:
		return domain.NewValidationError("body", "invalid request body")
	}
}

// pathID parses a uuid path value.
func pathID(r *http.Request, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(r.PathValue(name))
	if err != nil {
		return uuid.Nil, domain.NewValidationError(name, "must be a uuid")
	}
	return id, nil
}

// queryInt parses an optional integer query parameter.
func queryInt(r *http.Request, name string) (int, error) {
	v := r.URL.Query().Get(name)
	if v == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, domain.NewValidationError(name, "must be an integer")
	}
	return n, nil
}

// queryID parses an optional uuid query parameter.
func queryID(r *http.Request, name string) (*uuid.UUID, error) {
	v := r.URL.Query().Get(name)
	if v == "" {
		return nil, nil
	}
	id, err := uuid.Parse(v)
	if err != nil {
		return nil, domain.NewValidationError(name, "must be a uuid")
	}
	return &id, nil
}

// callerID returns the authenticated user id.
func callerID(r *http.Request) (uuid.UUID, error) {
	id, ok := ctxutil.UserIDFromCtx(r.Context())
	if !ok {
		return uuid.Nil, domain.ErrUnauthorized
	}
	return id, nil
}
