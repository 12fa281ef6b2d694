package update_booking

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BatoulDev/babibeauty-booking/internal/api/handlers"
	"github.com/BatoulDev/babibeauty-booking/internal/api/middleware"
	updateBooking "github.com/BatoulDev/babibeauty-booking/internal/usecase/update_booking"
)

type fakeUseCase struct {
	resp    *updateBooking.Response
	err     error
	lastReq *updateBooking.Request
}

func (f *fakeUseCase) Execute(_ context.Context, req *updateBooking.Request) (*updateBooking.Response, error) {
	f.lastReq = req
	return f.resp, f.err
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func newTestRouter(uc UpdateBookingUseCase) *mux.Router {
	r := mux.NewRouter()
	protected := r.PathPrefix("/api/v1").Subrouter()
	protected.Use(middleware.Auth)
	protected.HandleFunc("/bookings/{bookingId:[0-9]+}", NewHandler(uc, nopLogger{}).Handle).Methods(http.MethodPatch)
	return r
}

func doRequest(t *testing.T, router *mux.Router, body string, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodPatch, "/api/v1/bookings/5", strings.NewReader(body))
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decodeErrorKind(t *testing.T, rec *httptest.ResponseRecorder) handlers.ErrorInfo {
	t.Helper()

	var body handlers.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body.Error
}

const statusBody = `{"status": "cancelled"}`

func TestHandle_CallerIdentityFromHeaders(t *testing.T) {
	uc := &fakeUseCase{resp: &updateBooking.Response{ID: 5, Status: "cancelled"}}

	rec := doRequest(t, newTestRouter(uc), statusBody, map[string]string{
		"X-User-ID":   "42",
		"X-User-Role": "admin",
	})

	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, uc.lastReq)
	assert.Equal(t, int64(5), uc.lastReq.BookingID)
	assert.Equal(t, int64(42), uc.lastReq.UserID)
	assert.True(t, uc.lastReq.IsAdmin)
}

func TestHandle_ForeignBookingForbidden(t *testing.T) {
	uc := &fakeUseCase{err: updateBooking.ErrAccessDenied}

	rec := doRequest(t, newTestRouter(uc), statusBody, map[string]string{"X-User-ID": "99"})

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, handlers.KindAccessDenied, decodeErrorKind(t, rec).Kind)
}

func TestHandle_MissingAuthHeader(t *testing.T) {
	rec := doRequest(t, newTestRouter(&fakeUseCase{}), statusBody, nil)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, handlers.KindUnauthorized, decodeErrorKind(t, rec).Kind)
}

func TestHandle_ErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantKind   string
	}{
		{name: "not found", err: updateBooking.ErrBookingNotFound, wantStatus: http.StatusNotFound, wantKind: handlers.KindNotFound},
		{name: "invalid transition", err: updateBooking.ErrInvalidTransition, wantStatus: http.StatusUnprocessableEntity, wantKind: handlers.KindInvalidTransition},
		{name: "expert inactive", err: updateBooking.ErrExpertInactive, wantStatus: http.StatusUnprocessableEntity, wantKind: handlers.KindExpertInactive},
		{name: "slot full", err: updateBooking.ErrSlotFull, wantStatus: http.StatusConflict, wantKind: handlers.KindSlotFull},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doRequest(t, newTestRouter(&fakeUseCase{err: tt.err}), statusBody, map[string]string{"X-User-ID": "42"})

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantKind, decodeErrorKind(t, rec).Kind)
		})
	}
}
