package health

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type PingerMock struct {
	mock.Mock
}

func (m *PingerMock) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

func TestHealthHandler_OK(t *testing.T) {
	storageMock := new(PingerMock)
	storageMock.On("Ping", mock.Anything).Return(nil).Once()
	sessionsMock := new(PingerMock)
	sessionsMock.On("Ping", mock.Anything).Return(nil).Once()

	handler := New(newNoopLogger(), storageMock, sessionsMock)

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, rr.Code)

	var body struct {
		Status string         `json:"status"`
		Data   map[string]any `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	assert.Equal(t, "OK", body.Status)
	assert.Equal(t, "ok", body.Data["status"])
	storageMock.AssertExpectations(t)
	sessionsMock.AssertExpectations(t)
}

func TestHealthHandler_DatabaseDown(t *testing.T) {
	storageMock := new(PingerMock)
	storageMock.On("Ping", mock.Anything).
		Return(errors.New("connection refused")).Once()
	sessionsMock := new(PingerMock)

	handler := New(newNoopLogger(), storageMock, sessionsMock)

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusServiceUnavailable, rr.Code)
	assert.Contains(t, rr.Body.String(), "database is not ready")
	sessionsMock.AssertNotCalled(t, "Ping", mock.Anything)
}

func TestHealthHandler_SessionStoreDown(t *testing.T) {
	storageMock := new(PingerMock)
	storageMock.On("Ping", mock.Anything).Return(nil).Once()
	sessionsMock := new(PingerMock)
	sessionsMock.On("Ping", mock.Anything).
		Return(errors.New("connection refused")).Once()

	handler := New(newNoopLogger(), storageMock, sessionsMock)

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusServiceUnavailable, rr.Code)
	assert.Contains(t, rr.Body.String(), "session store is not ready")
}
