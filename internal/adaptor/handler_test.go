package adaptor

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"taxi-booking/internal/data/entity"
	"taxi-booking/internal/dto/request"
	"taxi-booking/internal/dto/response"
	"taxi-booking/internal/usecase"
	"taxi-booking/pkg/routing"
	"taxi-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestHandleServiceError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code int
	}{
		{"validation", &usecase.ValidationError{Fields: map[string]string{"Date": "This field is required"}}, http.StatusBadRequest},
		{"unauthorized", usecase.ErrUnauthorized, http.StatusUnauthorized},
		{"bad credentials", usecase.ErrInvalidCredentials, http.StatusUnauthorized},
		{"routing", fmt.Errorf("%w: timeout", routing.ErrRouteNotFound), http.StatusBadGateway},
		{"illegal transition", fmt.Errorf("%w: pending to finished", entity.ErrIllegalTransition), http.StatusConflict},
		{"slot taken", fmt.Errorf("%w: 2024-06-01 14:00", entity.ErrSlotUnavailable), http.StatusConflict},
		{"needs confirm", usecase.ErrConfirmationRequired, http.StatusConflict},
		{"taxi off duty", usecase.ErrTaxiUnavailable, http.StatusConflict},
		{"already submitted", usecase.ErrAlreadySubmitted, http.StatusConflict},
		{"email taken", entity.ErrEmailTaken, http.StatusConflict},
		{"missing row", fmt.Errorf("ride %s not found", uuid.New()), http.StatusNotFound},
		{"anything else", errors.New("connection reset"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			handleServiceError(rec, zap.NewNop(), tt.err, "test")
			assert.Equal(t, tt.code, rec.Code)
		})
	}
}

func TestHandleServiceError_ValidationBody(t *testing.T) {
	rec := httptest.NewRecorder()
	handleServiceError(rec, zap.NewNop(), &usecase.ValidationError{Fields: map[string]string{"time": "This field is required"}}, "confirm")

	var body utils.Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.False(t, body.Status)
	assert.Equal(t, map[string]any{"time": "This field is required"}, body.Errors)
}

func TestHandleServiceError_HidesInternalDetail(t *testing.T) {
	rec := httptest.NewRecorder()
	handleServiceError(rec, zap.NewNop(), errors.New("pq: password authentication failed"), "list")
	assert.NotContains(t, rec.Body.String(), "password")
}

type stubRideService struct {
	usecase.RideService
	advance func(id uuid.UUID, req *request.UpdateRideStatusRequest) (*response.RideResponse, error)
}

func (s *stubRideService) Advance(_ context.Context, id uuid.UUID, req *request.UpdateRideStatusRequest) (*response.RideResponse, error) {
	return s.advance(id, req)
}

func TestRideHandler_UpdateStatus(t *testing.T) {
	rideID := uuid.New()
	svc := &stubRideService{advance: func(id uuid.UUID, req *request.UpdateRideStatusRequest) (*response.RideResponse, error) {
		if req.Status != "accepted" {
			return nil, fmt.Errorf("%w: pending to %s", entity.ErrIllegalTransition, req.Status)
		}
		return &response.RideResponse{ID: id.String(), Status: entity.RideStatusAccepted}, nil
	}}

	r := chi.NewRouter()
	r.Put("/rides/{id}/status", NewRideHandler(svc, zap.NewNop()).UpdateStatus)

	tests := []struct {
		name string
		path string
		body string
		code int
	}{
		{"legal", "/rides/" + rideID.String() + "/status", `{"status":"accepted"}`, http.StatusOK},
		{"illegal", "/rides/" + rideID.String() + "/status", `{"status":"finished"}`, http.StatusConflict},
		{"bad id", "/rides/nope/status", `{"status":"accepted"}`, http.StatusBadRequest},
		{"bad body", "/rides/" + rideID.String() + "/status", `{`, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPut, tt.path, strings.NewReader(tt.body))
			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, req)
			assert.Equal(t, tt.code, rec.Code)
		})
	}
}

type stubTaxiService struct {
	usecase.TaxiService
	deleted []uuid.UUID
}

func (s *stubTaxiService) Delete(_ context.Context, id uuid.UUID, confirmed bool) error {
	if !confirmed {
		return usecase.ErrConfirmationRequired
	}
	s.deleted = append(s.deleted, id)
	return nil
}

func TestTaxiHandler_DeleteNeedsConfirm(t *testing.T) {
	svc := &stubTaxiService{}
	r := chi.NewRouter()
	r.Delete("/taxis/{id}", NewTaxiHandler(svc, zap.NewNop()).Delete)
	id := uuid.New()

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/taxis/"+id.String(), nil))
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Empty(t, svc.deleted)

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/taxis/"+id.String()+"?confirm=true", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []uuid.UUID{id}, svc.deleted)
}

func TestClientInfo(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Forwarded-For", "203.0.113.7, 10.0.0.1")
	req.Header.Set("User-Agent", "test-agent")

	info := clientInfo(req)
	assert.Equal(t, "203.0.113.7", info.IPAddress)
	assert.Equal(t, "test-agent", info.UserAgent)
}
