package http

import (
	"errors"
	"net/http"

	"github.com/powergrid-apps/billkeeper/internal/logger"
	"github.com/powergrid-apps/billkeeper/internal/service"
	"github.com/powergrid-apps/billkeeper/internal/store"
	"github.com/powergrid-apps/billkeeper/models"
)

var errorStatusMap = map[error]int{
	service.ErrInvalidDataProvided:     http.StatusBadRequest,
	service.ErrInvalidCredentials:      http.StatusUnauthorized,
	service.ErrTokenIsExpiredOrInvalid: http.StatusUnauthorized,
	service.ErrTokenCreationFailed:     http.StatusInternalServerError,

	// the id space for the configured prefix/width is exhausted; the server
	// cannot store further consumers until reconfigured
	service.ErrCapacityExceeded: http.StatusInsufficientStorage,

	// the whole registration is safe to retry
	service.ErrAllocationContention: http.StatusServiceUnavailable,

	store.ErrConsumerNotFound:   http.StatusNotFound,
	store.ErrBillNotFound:       http.StatusNotFound,
	store.ErrBillAlreadyPaid:    http.StatusConflict,
	store.ErrConsumerIDTaken:    http.StatusConflict,
	store.ErrNationalIDTaken:    http.StatusConflict,
	store.ErrEmailTaken:         http.StatusConflict,
	store.ErrStoreUnavailable:   http.StatusServiceUnavailable,
	store.ErrBuildingSQLQuery:   http.StatusInternalServerError,
	store.ErrExecutingQuery:     http.StatusInternalServerError,
	store.ErrExecutingStatement: http.StatusInternalServerError,
	store.ErrScanningRow:        http.StatusInternalServerError,
	store.ErrScanningRows:       http.StatusInternalServerError,
}

func statusFromError(err error) int {
	for target, status := range errorStatusMap {
		if errors.Is(err, target) {
			return status
		}
	}
	return http.StatusInternalServerError
}

// writeServiceError translates a service-layer error into an HTTP response.
//
// Natural-key conflicts carry the offending field name in a JSON body so the
// client can highlight the exact attribute; every other error maps through
// [statusFromError] to a plain-text status.
func (h *Handler) writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	log := logger.FromRequest(r)

	if conflict := service.AsConflict(err); conflict != nil {
		log.Warn().Str("field", conflict.Field).Msg("request rejected on natural-key conflict")
		writeJSONResponse(w, r, models.ConflictResponse{Field: conflict.Field}, http.StatusConflict)
		return
	}

	status := statusFromError(err)
	if status >= http.StatusInternalServerError {
		log.Err(err).Msg("request ended with server error")
	} else {
		log.Warn().Err(err).Msg("request rejected")
	}

	writeJSONResponse(w, r, models.ErrorResponse{Message: http.StatusText(status)}, status)
}
