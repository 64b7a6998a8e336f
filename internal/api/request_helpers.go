package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/phrazzld/userbase-api/internal/api/shared"
	"github.com/phrazzld/userbase-api/internal/domain"
	"github.com/phrazzld/userbase-api/internal/platform/logger"
)

// getUserIDFromContext extracts the authenticated user's ID from the request
// context, where the authentication middleware placed it.
func getUserIDFromContext(r *http.Request) (int64, bool) {
	return shared.GetUserID(r.Context())
}

// getPathID extracts a user ID from the URL path parameter paramName.
// It returns an error wrapping domain.ErrInvalidID when the parameter is
// missing, not a number, or not positive.
func getPathID(r *http.Request, paramName string) (int64, error) {
	return domain.ParseUserID(chi.URLParam(r, paramName))
}

// handleUserIDAndPathID extracts both the acting user ID from context and a
// numeric ID from the path parameters. It writes an error response if either
// extraction fails.
func handleUserIDAndPathID(
	w http.ResponseWriter,
	r *http.Request,
	paramName string,
	log *slog.Logger,
) (int64, int64, bool) {
	if log == nil {
		log = logger.FromContextOrDefault(r.Context(), slog.Default())
	}

	userID, ok := getUserIDFromContext(r)
	if !ok {
		log.Warn("user ID not found or invalid in request context")
		HandleAPIError(w, r, ErrUnauthenticated, "")
		return 0, 0, false
	}

	pathID, ok := handlePathID(w, r, paramName, log)
	if !ok {
		return 0, 0, false
	}

	return userID, pathID, true
}

// handlePathID parses the path parameter and writes a 400 response when it is
// not a valid ID.
func handlePathID(w http.ResponseWriter, r *http.Request, paramName string, log *slog.Logger) (int64, bool) {
	pathID, err := getPathID(r, paramName)
	if err != nil {
		log.Debug("invalid path parameter",
			slog.String("param_name", paramName),
			slog.String("value", chi.URLParam(r, paramName)))
		HandleAPIError(w, r, err, "")
		return 0, false
	}
	return pathID, true
}

// decodeAndValidate decodes the JSON body into v and runs struct validation,
// writing a 400 response on failure.
func decodeAndValidate(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := shared.DecodeJSON(r, v); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, "Invalid request format", err)
		return false
	}
	if err := shared.ValidateRequest(v); err != nil {
		HandleAPIError(w, r, err, "")
		return false
	}
	return true
}
