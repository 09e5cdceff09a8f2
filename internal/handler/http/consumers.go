package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/powergrid-apps/billkeeper/internal/logger"
	"github.com/powergrid-apps/billkeeper/internal/utils"
	"github.com/powergrid-apps/billkeeper/models"
)

// registerConsumer handles POST /api/users.
//
// The request body is a consumer candidate without an id: identifiers are
// assigned by the server and returned in the created record. On a
// natural-key conflict the response is 409 with the offending field name.
func (h *Handler) registerConsumer(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var candidate models.Consumer
	if err := json.NewDecoder(r.Body).Decode(&candidate); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	created, err := h.services.RegistrarService.Register(ctx, candidate)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	log.Info().Str("id", created.ID).Msg("consumer registered")
	writeJSONResponse(w, r, created, http.StatusCreated)
}

func (h *Handler) getConsumer(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	consumer, err := h.services.RegistrarService.Get(ctx, chi.URLParam(r, "id"))
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	writeJSONResponse(w, r, consumer, http.StatusOK)
}

func (h *Handler) listConsumers(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	consumers, err := h.services.RegistrarService.List(ctx)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	writeJSONResponse(w, r, consumers, http.StatusOK)
}

// updateConsumer handles PUT /api/users/{id}. Only fields present in the
// body are touched; the id itself is immutable and absent fields keep their
// stored values.
func (h *Handler) updateConsumer(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var patch models.ConsumerPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	updated, err := h.services.RegistrarService.Update(ctx, chi.URLParam(r, "id"), patch)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	log.Info().Str("id", updated.ID).Msg("consumer updated")
	writeJSONResponse(w, r, updated, http.StatusOK)
}

func (h *Handler) deleteConsumer(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	id := chi.URLParam(r, "id")
	if err := h.services.RegistrarService.Delete(ctx, id); err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	log.Info().Str("id", id).Msg("consumer deleted")
	w.WriteHeader(http.StatusNoContent)
}

// writeJSONResponse writes data as JSON, logging serialization failures
// instead of surfacing them to the already-started response.
func writeJSONResponse(w http.ResponseWriter, r *http.Request, data any, statusCode int) {
	if _, err := utils.WriteJSON(w, data, statusCode); err != nil {
		logger.FromRequest(r).Err(err).Msg("error writing JSON response")
	}
}
