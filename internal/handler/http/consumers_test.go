package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/powergrid-apps/billkeeper/internal/service"
	"github.com/powergrid-apps/billkeeper/internal/store"
	"github.com/powergrid-apps/billkeeper/models"
)

var validCandidate = models.Consumer{
	NationalID: "NID-1",
	Email:      "jane@example.test",
	Name:       "Jane Doe",
	Password:   "s3cret",
}

func newConsumerRouter(t *testing.T, registrar *mockRegistrarService) http.Handler {
	t.Helper()
	h := newTestHandler(t, &service.Services{
		RegistrarService: registrar,
		AuthService:      allowAllAuth(),
	})
	return h.Init()
}

func authorized(req *http.Request) *http.Request {
	req.Header.Set("Authorization", "Bearer test.jwt.token")
	return req
}

func TestRegisterConsumer_Success(t *testing.T) {
	registrar := &mockRegistrarService{
		registerFn: func(_ context.Context, candidate models.Consumer) (models.Consumer, error) {
			assert.Equal(t, "jane@example.test", candidate.Email)
			candidate.ID = "USER0001"
			return candidate, nil
		},
	}
	router := newConsumerRouter(t, registrar)

	req := httptest.NewRequest(http.MethodPost, "/api/users", strings.NewReader(jsonBody(t, validCandidate)))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code)

	var created models.Consumer
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.Equal(t, "USER0001", created.ID)
	// password material never leaves the server
	assert.NotContains(t, w.Body.String(), "s3cret")
	assert.NotContains(t, w.Body.String(), "password_hash")
}

func TestRegisterConsumer_InvalidJSON(t *testing.T) {
	router := newConsumerRouter(t, &mockRegistrarService{})

	req := httptest.NewRequest(http.MethodPost, "/api/users", strings.NewReader("{not json"))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRegisterConsumer_Conflict(t *testing.T) {
	registrar := &mockRegistrarService{
		registerFn: func(_ context.Context, _ models.Consumer) (models.Consumer, error) {
			return models.Consumer{}, &service.ConflictError{Field: service.FieldEmail}
		},
	}
	router := newConsumerRouter(t, registrar)

	req := httptest.NewRequest(http.MethodPost, "/api/users", strings.NewReader(jsonBody(t, validCandidate)))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusConflict, w.Code)

	var body models.ConflictResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "email", body.Field)
}

func TestRegisterConsumer_CapacityExceeded(t *testing.T) {
	registrar := &mockRegistrarService{
		registerFn: func(_ context.Context, _ models.Consumer) (models.Consumer, error) {
			return models.Consumer{}, service.ErrCapacityExceeded
		},
	}
	router := newConsumerRouter(t, registrar)

	req := httptest.NewRequest(http.MethodPost, "/api/users", strings.NewReader(jsonBody(t, validCandidate)))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusInsufficientStorage, w.Code)
}

func TestRegisterConsumer_AllocationContention(t *testing.T) {
	registrar := &mockRegistrarService{
		registerFn: func(_ context.Context, _ models.Consumer) (models.Consumer, error) {
			return models.Consumer{}, service.ErrAllocationContention
		},
	}
	router := newConsumerRouter(t, registrar)

	req := httptest.NewRequest(http.MethodPost, "/api/users", strings.NewReader(jsonBody(t, validCandidate)))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestGetConsumer_Success(t *testing.T) {
	registrar := &mockRegistrarService{
		getFn: func(_ context.Context, id string) (models.Consumer, error) {
			assert.Equal(t, "USER0042", id)
			return models.Consumer{ID: id, Name: "Jane"}, nil
		},
	}
	router := newConsumerRouter(t, registrar)

	req := authorized(httptest.NewRequest(http.MethodGet, "/api/users/USER0042", nil))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var got models.Consumer
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, "Jane", got.Name)
}

func TestGetConsumer_NotFound(t *testing.T) {
	registrar := &mockRegistrarService{
		getFn: func(_ context.Context, _ string) (models.Consumer, error) {
			return models.Consumer{}, store.ErrConsumerNotFound
		},
	}
	router := newConsumerRouter(t, registrar)

	req := authorized(httptest.NewRequest(http.MethodGet, "/api/users/USER0404", nil))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetConsumer_Unauthorized(t *testing.T) {
	router := newConsumerRouter(t, &mockRegistrarService{})

	req := httptest.NewRequest(http.MethodGet, "/api/users/USER0042", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestListConsumers_Success(t *testing.T) {
	registrar := &mockRegistrarService{
		listFn: func(_ context.Context) ([]models.Consumer, error) {
			return []models.Consumer{{ID: "USER0001"}, {ID: "USER0002"}}, nil
		},
	}
	router := newConsumerRouter(t, registrar)

	req := authorized(httptest.NewRequest(http.MethodGet, "/api/users", nil))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var got []models.Consumer
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	require.Len(t, got, 2)
	assert.Equal(t, "USER0001", got[0].ID)
}

func TestUpdateConsumer_Success(t *testing.T) {
	registrar := &mockRegistrarService{
		updateFn: func(_ context.Context, id string, patch models.ConsumerPatch) (models.Consumer, error) {
			require.NotNil(t, patch.Email)
			return models.Consumer{ID: id, Email: *patch.Email}, nil
		},
	}
	router := newConsumerRouter(t, registrar)

	body := `{"email":"new@example.test"}`
	req := authorized(httptest.NewRequest(http.MethodPut, "/api/users/USER0001", strings.NewReader(body)))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var got models.Consumer
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, "new@example.test", got.Email)
}

func TestUpdateConsumer_Conflict(t *testing.T) {
	registrar := &mockRegistrarService{
		updateFn: func(_ context.Context, _ string, _ models.ConsumerPatch) (models.Consumer, error) {
			return models.Consumer{}, &service.ConflictError{Field: service.FieldNationalID}
		},
	}
	router := newConsumerRouter(t, registrar)

	body := `{"national_id":"NID-2"}`
	req := authorized(httptest.NewRequest(http.MethodPut, "/api/users/USER0001", strings.NewReader(body)))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusConflict, w.Code)

	var resp models.ConflictResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "national_id", resp.Field)
}

func TestDeleteConsumer_Success(t *testing.T) {
	deleted := ""
	registrar := &mockRegistrarService{
		deleteFn: func(_ context.Context, id string) error {
			deleted = id
			return nil
		},
	}
	router := newConsumerRouter(t, registrar)

	req := authorized(httptest.NewRequest(http.MethodDelete, "/api/users/USER0001", nil))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "USER0001", deleted)
}

func TestDeleteConsumer_NotFound(t *testing.T) {
	registrar := &mockRegistrarService{
		deleteFn: func(_ context.Context, _ string) error {
			return store.ErrConsumerNotFound
		},
	}
	router := newConsumerRouter(t, registrar)

	req := authorized(httptest.NewRequest(http.MethodDelete, "/api/users/USER0404", nil))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestStoreUnavailableMapsTo503(t *testing.T) {
	registrar := &mockRegistrarService{
		getFn: func(_ context.Context, _ string) (models.Consumer, error) {
			return models.Consumer{}, store.ErrStoreUnavailable
		},
	}
	router := newConsumerRouter(t, registrar)

	req := authorized(httptest.NewRequest(http.MethodGet, "/api/users/USER0001", nil))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusServiceUnavailable, w.Code)
}
