package http

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/powergrid-apps/billkeeper/internal/logger"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string `json:"token"`
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	token, err := h.services.AuthService.Login(ctx, req.Email, req.Password)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	log.Debug().Str("id", token.ConsumerID).Msg("consumer successfully logged in")

	w.Header().Set("Authorization", fmt.Sprintf("Bearer %s", token.SignedString))
	writeJSONResponse(w, r, loginResponse{Token: token.SignedString}, http.StatusOK)
}
