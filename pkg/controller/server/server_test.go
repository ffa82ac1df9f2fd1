package server_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/m-mizutani/deploydoctor/pkg/controller/server"
	"github.com/m-mizutani/deploydoctor/pkg/domain/mock"
	"github.com/m-mizutani/deploydoctor/pkg/domain/model"
	"github.com/m-mizutani/deploydoctor/pkg/domain/types"
	"github.com/m-mizutani/deploydoctor/pkg/infra"
	"github.com/m-mizutani/deploydoctor/pkg/infra/githubapi"
	"github.com/m-mizutani/deploydoctor/pkg/usecase"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gt"
)

type errorResponse struct {
	Error struct {
		Kind    string `json:"kind"`
		Message string `json:"message"`
	} `json:"error"`
}

func serve(t *testing.T, srv *server.Server, method, path string, body []byte) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	srv.Mux().ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) errorResponse {
	t.Helper()
	var resp errorResponse
	gt.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

func TestHealth(t *testing.T) {
	srv := server.New(usecase.New(infra.New()))

	rec := serve(t, srv, http.MethodGet, "/health", nil)
	gt.V(t, rec.Code).Equal(http.StatusOK)
	gt.V(t, rec.Header().Get("Content-Type")).Equal("application/json")
	gt.V(t, rec.Body.String()).Equal(`{"status":"healthy"}`)
}

func TestAnalyze(t *testing.T) {
	src := &mock.RepositorySourceMock{
		FetchTreeFunc: func(ctx context.Context, repo model.RepositoryIdentifier) ([]string, error) {
			if repo.Name == "missing" {
				return nil, goerr.Wrap(types.ErrRepositoryFetch, "not found")
			}
			return []string{"README.md", "requirements.txt", "Dockerfile", ".github/workflows/ci.yml"}, nil
		},
	}
	srv := server.New(usecase.New(infra.New(infra.WithRepositorySource(src))))

	t.Run("fresh and cached analysis", func(t *testing.T) {
		body := []byte(`{"repo_url": "https://github.com/octo/app"}`)

		rec := serve(t, srv, http.MethodPost, "/analyze", body)
		gt.V(t, rec.Code).Equal(http.StatusOK)

		var first map[string]any
		gt.NoError(t, json.Unmarshal(rec.Body.Bytes(), &first))
		gt.V(t, first["cached"]).Equal(false)
		gt.V(t, first["score"]).Equal(float64(100))
		gt.V(t, first["message"]).Equal(model.VerdictProductionReady)
		gt.V(t, first["scoring_version"]).Equal(model.ScoringVersion)
		gt.V(t, first["suggestions"]).Equal([]any{model.SuggestNothing})
		gt.V(t, first["features"]).Equal(map[string]any{
			"has_readme":       true,
			"has_requirements": true,
			"has_dockerfile":   true,
			"has_ci_cd":        true,
		})

		rec = serve(t, srv, http.MethodPost, "/analyze", body)
		gt.V(t, rec.Code).Equal(http.StatusOK)

		var second map[string]any
		gt.NoError(t, json.Unmarshal(rec.Body.Bytes(), &second))
		gt.V(t, second["cached"]).Equal(true)
		gt.V(t, second["analysis_id"]).Equal(first["analysis_id"])
	})

	t.Run("invalid URL", func(t *testing.T) {
		rec := serve(t, srv, http.MethodPost, "/analyze", []byte(`{"repo_url": "https://github.com/octo"}`))
		gt.V(t, rec.Code).Equal(http.StatusBadRequest)
		gt.V(t, decodeError(t, rec).Error.Kind).Equal(server.ErrKindInvalidRepositoryURL)
	})

	t.Run("missing URL", func(t *testing.T) {
		rec := serve(t, srv, http.MethodPost, "/analyze", []byte(`{}`))
		gt.V(t, rec.Code).Equal(http.StatusBadRequest)
		gt.V(t, decodeError(t, rec).Error.Kind).Equal(server.ErrKindInvalidRepositoryURL)
	})

	t.Run("malformed body", func(t *testing.T) {
		rec := serve(t, srv, http.MethodPost, "/analyze", []byte(`{"repo_url": `))
		gt.V(t, rec.Code).Equal(http.StatusBadRequest)
		gt.V(t, decodeError(t, rec).Error.Kind).Equal(server.ErrKindInvalidRequest)
	})

	t.Run("fetch failure", func(t *testing.T) {
		rec := serve(t, srv, http.MethodPost, "/analyze", []byte(`{"repo_url": "https://github.com/octo/missing"}`))
		gt.V(t, rec.Code).Equal(http.StatusBadGateway)
		gt.V(t, decodeError(t, rec).Error.Kind).Equal(server.ErrKindRepositoryFetch)
	})
}

func TestAnalyzeUpstreamStatus(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"message": "Not Found"}`))
	}))
	t.Cleanup(upstream.Close)

	client := gt.R1(githubapi.New(upstream.URL, githubapi.WithRetryWait(time.Millisecond))).NoError(t)
	srv := server.New(usecase.New(infra.New(infra.WithRepositorySource(client))))

	rec := serve(t, srv, http.MethodPost, "/analyze", []byte(`{"repo_url": "https://github.com/octo/gone"}`))
	gt.V(t, rec.Code).Equal(http.StatusBadGateway)

	resp := decodeError(t, rec)
	gt.V(t, resp.Error.Kind).Equal(server.ErrKindRepositoryFetch)
	gt.True(t, strings.Contains(resp.Error.Message, "404"))
	gt.True(t, strings.Contains(resp.Error.Message, "octo/gone"))
}

func TestAnalyzeInternalError(t *testing.T) {
	mockUC := &mock.UseCaseMock{
		AnalyzeFunc: func(ctx context.Context, input *model.AnalyzeInput) (*model.AnalyzeResult, error) {
			return nil, errors.New("database is locked")
		},
	}
	srv := server.New(mockUC)

	rec := serve(t, srv, http.MethodPost, "/analyze", []byte(`{"repo_url": "https://github.com/octo/app"}`))
	gt.V(t, rec.Code).Equal(http.StatusInternalServerError)

	resp := decodeError(t, rec)
	gt.V(t, resp.Error.Kind).Equal(server.ErrKindInternal)
	gt.False(t, strings.Contains(resp.Error.Message, "database"))
}

func TestStats(t *testing.T) {
	t.Run("empty", func(t *testing.T) {
		srv := server.New(usecase.New(infra.New()))

		rec := serve(t, srv, http.MethodGet, "/stats", nil)
		gt.V(t, rec.Code).Equal(http.StatusOK)
		gt.V(t, rec.Body.String()).Equal(`{"total_analyses":0,"average_score":0}`)
	})

	t.Run("values from usecase", func(t *testing.T) {
		mockUC := &mock.UseCaseMock{
			GetStatsFunc: func(ctx context.Context) (*model.Stats, error) {
				return &model.Stats{TotalAnalyses: 3, AverageScore: 66.67}, nil
			},
		}
		srv := server.New(mockUC)

		rec := serve(t, srv, http.MethodGet, "/stats", nil)
		gt.V(t, rec.Code).Equal(http.StatusOK)
		gt.V(t, rec.Body.String()).Equal(`{"total_analyses":3,"average_score":66.67}`)
	})
}

func TestHistory(t *testing.T) {
	newMock := func() *mock.UseCaseMock {
		return &mock.UseCaseMock{
			ListHistoryFunc: func(ctx context.Context, limit int) ([]*model.HistoryEntry, error) {
				return nil, nil
			},
		}
	}

	t.Run("default limit", func(t *testing.T) {
		mockUC := newMock()
		rec := serve(t, server.New(mockUC), http.MethodGet, "/history", nil)
		gt.V(t, rec.Code).Equal(http.StatusOK)
		gt.V(t, rec.Body.String()).Equal(`[]`)
		gt.V(t, mockUC.ListHistoryCalls()[0].Limit).Equal(model.DefaultHistoryLimit)
	})

	t.Run("explicit limit", func(t *testing.T) {
		mockUC := newMock()
		rec := serve(t, server.New(mockUC), http.MethodGet, "/history?limit=3", nil)
		gt.V(t, rec.Code).Equal(http.StatusOK)
		gt.V(t, mockUC.ListHistoryCalls()[0].Limit).Equal(3)
	})

	for _, v := range []string{"0", "-1", "abc", "1.5"} {
		t.Run("invalid limit "+v, func(t *testing.T) {
			mockUC := newMock()
			rec := serve(t, server.New(mockUC), http.MethodGet, "/history?limit="+v, nil)
			gt.V(t, rec.Code).Equal(http.StatusBadRequest)
			gt.V(t, decodeError(t, rec).Error.Kind).Equal(server.ErrKindInvalidRequest)
			gt.A(t, mockUC.ListHistoryCalls()).Length(0)
		})
	}

	t.Run("entries from real usecase", func(t *testing.T) {
		src := &mock.RepositorySourceMock{
			FetchTreeFunc: func(ctx context.Context, repo model.RepositoryIdentifier) ([]string, error) {
				return []string{"README.md"}, nil
			},
		}
		srv := server.New(usecase.New(infra.New(infra.WithRepositorySource(src))))
		serve(t, srv, http.MethodPost, "/analyze", []byte(`{"repo_url": "https://github.com/octo/app"}`))

		rec := serve(t, srv, http.MethodGet, "/history", nil)
		gt.V(t, rec.Code).Equal(http.StatusOK)

		var entries []map[string]any
		gt.NoError(t, json.Unmarshal(rec.Body.Bytes(), &entries))
		gt.A(t, entries).Length(1)
		gt.V(t, entries[0]["repo_url"]).Equal("https://github.com/octo/app")
		gt.V(t, entries[0]["score"]).Equal(float64(15))
	})
}

func TestCORS(t *testing.T) {
	srv := server.New(usecase.New(infra.New()), server.WithAllowedOrigins("https://app.example.com"))

	req := httptest.NewRequest(http.MethodOptions, "/analyze", nil)
	req.Header.Set("Origin", "https://app.example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec := httptest.NewRecorder()
	srv.Mux().ServeHTTP(rec, req)

	gt.V(t, rec.Header().Get("Access-Control-Allow-Origin")).Equal("https://app.example.com")

	req = httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("Origin", "https://evil.example.com")
	rec = httptest.NewRecorder()
	srv.Mux().ServeHTTP(rec, req)

	gt.V(t, rec.Header().Get("Access-Control-Allow-Origin")).Equal("")
}
