package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"varotra-backend-go/internal/hub"
	"varotra-backend-go/internal/store"
)

// ErrorResponse is the standardized error payload.
type ErrorResponse struct {
	Error   string `json:"error"`
	Kind    string `json:"kind,omitempty"`
	Details string `json:"details,omitempty"`
}

// IDResponse returns a newly assigned document id.
type IDResponse struct {
	ID string `json:"id"`
}

// StateResponse reports the workspace lifecycle state and, when failed,
// the classified error so the client can render an actionable message.
type StateResponse struct {
	State string         `json:"state"`
	Error *ErrorResponse `json:"error,omitempty"`
}

func stateResponse(state hub.State, se *store.Error) StateResponse {
	resp := StateResponse{State: state.String()}
	if se != nil {
		resp.Error = &ErrorResponse{
			Error:   userMessage(se.Kind),
			Kind:    se.Kind.String(),
			Details: se.Error(),
		}
	}
	return resp
}

// userMessage maps an error kind to the actionable message shown to the
// operator.
func userMessage(kind store.Kind) string {
	switch kind {
	case store.KindPermissionDenied:
		return "Access denied by the data store. Check the security rules for this account, or switch to local mode."
	case store.KindMissingIndex:
		return "The data store is missing a required index. Create it in the console, then retry."
	case store.KindTransport:
		return "The data store is unreachable. Retry, or switch to local mode."
	case store.KindNotFound:
		return "The requested record does not exist."
	default:
		return "The data store reported an unexpected error."
	}
}

// writeError translates the layered error taxonomy into HTTP responses.
func writeError(c *gin.Context, log *zap.Logger, err error) {
	switch {
	case errors.Is(err, store.ErrNotAuthenticated):
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Authentication required"})
		return
	case errors.Is(err, hub.ErrLocalNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "Record not found"})
		return
	}

	var me *store.MigrationError
	if errors.As(err, &me) {
		log.Warn("migration failed", zap.Error(err))
		resp := ErrorResponse{
			Error:   "Migration did not complete; no records were written",
			Details: me.Error(),
		}
		var se *store.Error
		if errors.As(me.Err, &se) {
			resp.Kind = se.Kind.String()
			c.JSON(statusForKind(se.Kind), resp)
		} else {
			// Validation failure (empty or oversize dataset), nothing was
			// sent to the store.
			c.JSON(http.StatusBadRequest, resp)
		}
		return
	}

	var se *store.Error
	if errors.As(err, &se) {
		log.Warn("store error", zap.String("kind", se.Kind.String()), zap.Error(err))
		c.JSON(statusForKind(se.Kind), ErrorResponse{
			Error: userMessage(se.Kind),
			Kind:  se.Kind.String(),
		})
		return
	}

	log.Error("unhandled error", zap.Error(err))
	c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Internal server error"})
}

func statusForKind(kind store.Kind) int {
	switch kind {
	case store.KindPermissionDenied:
		return http.StatusForbidden
	case store.KindNotFound:
		return http.StatusNotFound
	case store.KindTransport:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
