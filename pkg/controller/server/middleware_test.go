package server_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/m-mizutani/deploydoctor/pkg/controller/server"
	"github.com/m-mizutani/deploydoctor/pkg/domain/mock"
	"github.com/m-mizutani/deploydoctor/pkg/domain/model"
	"github.com/m-mizutani/deploydoctor/pkg/utils/logging"
	"github.com/m-mizutani/gt"
)

func TestPreProcess(t *testing.T) {
	var capturedCtx context.Context
	mockUC := &mock.UseCaseMock{
		GetStatsFunc: func(ctx context.Context) (*model.Stats, error) {
			capturedCtx = ctx
			return &model.Stats{}, nil
		},
	}
	srv := server.New(mockUC)

	t.Run("request ID is shared by context and response header", func(t *testing.T) {
		rec := httptest.NewRecorder()
		srv.Mux().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/stats", nil))
		gt.V(t, rec.Code).Equal(http.StatusOK)

		reqID, _ := logging.CtxRequestID(capturedCtx)
		gt.V(t, rec.Header().Get("X-Request-ID")).Equal(string(reqID))

		// Handlers get a request scoped logger
		gt.False(t, logging.From(capturedCtx) == logging.Default())
	})

	t.Run("each request has its own ID", func(t *testing.T) {
		ids := map[string]struct{}{}
		for range 3 {
			rec := httptest.NewRecorder()
			srv.Mux().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
			ids[rec.Header().Get("X-Request-ID")] = struct{}{}
		}
		gt.V(t, len(ids)).Equal(3)
	})

	t.Run("status code of unknown route is passed through", func(t *testing.T) {
		rec := httptest.NewRecorder()
		srv.Mux().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/no-such-path", nil))
		gt.V(t, rec.Code).Equal(http.StatusNotFound)
		gt.V(t, rec.Header().Get("X-Request-ID")).NotEqual("")
	})

	t.Run("method not allowed", func(t *testing.T) {
		rec := httptest.NewRecorder()
		srv.Mux().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/analyze", nil))
		gt.V(t, rec.Code).Equal(http.StatusMethodNotAllowed)
	})
}
