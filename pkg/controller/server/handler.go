package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/m-mizutani/deploydoctor/pkg/domain/interfaces"
	"github.com/m-mizutani/deploydoctor/pkg/domain/model"
	"github.com/m-mizutani/deploydoctor/pkg/domain/types"
	"github.com/m-mizutani/deploydoctor/pkg/utils/errutil"
	"github.com/m-mizutani/deploydoctor/pkg/utils/logging"
	"github.com/m-mizutani/goerr/v2"
)

const maxRequestBodySize = 1 << 20

const (
	ErrKindInvalidRepositoryURL = "InvalidRepositoryURL"
	ErrKindRepositoryFetch      = "RepositoryFetchError"
	ErrKindInvalidRequest       = "InvalidRequest"
	ErrKindInternal             = "InternalError"
)

type errorBody struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

type errorResponse struct {
	Error errorBody `json:"error"`
}

var errInvalidRequest = goerr.New("invalid request")

func classifyError(err error) (string, int) {
	switch {
	case errors.Is(err, types.ErrInvalidRepositoryURL):
		return ErrKindInvalidRepositoryURL, http.StatusBadRequest
	case errors.Is(err, types.ErrRepositoryFetch):
		return ErrKindRepositoryFetch, http.StatusBadGateway
	case errors.Is(err, errInvalidRequest), errors.Is(err, types.ErrValidationFailed):
		return ErrKindInvalidRequest, http.StatusBadRequest
	default:
		return ErrKindInternal, http.StatusInternalServerError
	}
}

func writeError(w http.ResponseWriter, r *http.Request, err error) {
	kind, code := classifyError(err)

	msg := err.Error()
	if code >= http.StatusInternalServerError && code != http.StatusBadGateway {
		errutil.HandleError(r.Context(), "fail to handle request", err)
		msg = "internal server error"
	} else {
		logging.From(r.Context()).Warn("request failed", "kind", kind, "error", err)
	}

	writeJSON(w, code, errorResponse{Error: errorBody{Kind: kind, Message: msg}})
}

func handleAnalyze(uc interfaces.UseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var input model.AnalyzeInput
		decoder := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBodySize))
		if err := decoder.Decode(&input); err != nil {
			writeError(w, r, goerr.Wrap(errInvalidRequest, "malformed JSON body", goerr.V("cause", err.Error())))
			return
		}

		result, err := uc.Analyze(r.Context(), &input)
		if err != nil {
			writeError(w, r, err)
			return
		}

		writeJSON(w, http.StatusOK, result)
	}
}

func handleStats(uc interfaces.UseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		stats, err := uc.GetStats(r.Context())
		if err != nil {
			writeError(w, r, err)
			return
		}

		writeJSON(w, http.StatusOK, stats)
	}
}

func handleHistory(uc interfaces.UseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit := model.DefaultHistoryLimit
		if v := r.URL.Query().Get("limit"); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil || n <= 0 {
				writeError(w, r, goerr.Wrap(errInvalidRequest, "limit must be a positive integer", goerr.V("limit", v)))
				return
			}
			limit = n
		}

		entries, err := uc.ListHistory(r.Context(), limit)
		if err != nil {
			writeError(w, r, err)
			return
		}
		if entries == nil {
			entries = []*model.HistoryEntry{}
		}

		writeJSON(w, http.StatusOK, entries)
	}
}
