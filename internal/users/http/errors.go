package http

import (
	"errors"
	"fmt"
	"net/http"
	"slices"
	"strings"

	"github.com/aussiebroadwan/usersapi/internal/users/service"
	"github.com/aussiebroadwan/usersapi/internal/users/store"
	"github.com/aussiebroadwan/usersapi/pkg/httpx"
	"github.com/aussiebroadwan/usersapi/pkg/slogx"
	"github.com/aussiebroadwan/usersapi/pkg/validx"
)

const phoneConflictMessage = "The phone number is already used by another account."

// writeError maps a service or store error onto the response body shared by
// every endpoint.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	var (
		verrs    *validx.Errors
		conflict *store.ConflictError
		tokenErr *service.TokenError
	)

	switch {
	case errors.As(err, &verrs):
		httpx.WriteError(w, http.StatusBadRequest, verrs.Messages, "Bad Request")

	case errors.As(err, &conflict):
		httpx.WriteError(w, http.StatusConflict, conflictMessage(conflict.Fields), "")

	case errors.Is(err, service.ErrUserNotFound):
		httpx.WriteError(w, http.StatusNotFound, "User not found.", "Not Found")

	case errors.Is(err, store.ErrNotFound):
		httpx.WriteError(w, http.StatusNotFound, "Record not found.", "")

	case errors.Is(err, service.ErrIncorrectPassword):
		httpx.WriteError(w, http.StatusUnauthorized, "Incorrect password.", "Unauthorized")

	case errors.As(err, &tokenErr):
		httpx.WriteError(w, http.StatusUnauthorized, tokenErr.Error(), "Unauthorized")

	default:
		slogx.FromContext(r.Context()).Error("request failed", "err", err)
		httpx.WriteError(w, http.StatusBadRequest, err.Error(), "Bad Request")
	}
}

func conflictMessage(fields []string) string {
	if slices.ContainsFunc(fields, func(f string) bool { return strings.Contains(f, "phone") }) {
		return phoneConflictMessage
	}
	return fmt.Sprintf("The fields [%s] are already in use.", strings.Join(fields, ", "))
}

// writeUnauthorized answers a failed credential check.
func writeUnauthorized(w http.ResponseWriter) {
	httpx.WriteError(w, http.StatusUnauthorized, "Unauthorized", "")
}
