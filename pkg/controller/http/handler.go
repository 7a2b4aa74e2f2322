package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/riskmatch/pkg/domain/model"
	"github.com/secmon-lab/riskmatch/pkg/domain/types"
	"github.com/secmon-lab/riskmatch/pkg/service/relevance"
	"github.com/secmon-lab/riskmatch/pkg/usecase"
	"github.com/secmon-lab/riskmatch/pkg/utils/errutil"
	"github.com/secmon-lab/riskmatch/pkg/utils/safe"
)

const maxRequestBodySize = 1 << 20

// ErrBadRequest marks errors caused by malformed client input
var ErrBadRequest = goerr.New("bad request")

func healthHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(r.Context(), w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) workspacesHandler(w http.ResponseWriter, r *http.Request) {
	workspaces := s.workspace.List()
	resp := workspacesResponse{
		Workspaces: make([]workspaceResponse, len(workspaces)),
	}
	for i, ws := range workspaces {
		resp.Workspaces[i] = workspaceResponse{
			ID:   ws.ID.String(),
			Name: ws.Name,
		}
	}
	writeJSON(r.Context(), w, http.StatusOK, resp)
}

func (s *Server) riskControlsHandler(w http.ResponseWriter, r *http.Request) {
	opts, err := rankOptions(r)
	if err != nil {
		handleError(r.Context(), w, err)
		return
	}

	ranked, err := s.recommend.RecommendControls(r.Context(),
		types.WorkspaceID(chi.URLParam(r, "workspaceID")),
		model.RiskID(chi.URLParam(r, "riskID")),
		opts...,
	)
	if err != nil {
		handleError(r.Context(), w, err)
		return
	}

	writeJSON(r.Context(), w, http.StatusOK, map[string]any{
		"controls": toRankedControls(ranked),
	})
}

func (s *Server) controlRisksHandler(w http.ResponseWriter, r *http.Request) {
	opts, err := rankOptions(r)
	if err != nil {
		handleError(r.Context(), w, err)
		return
	}

	ranked, err := s.recommend.RecommendRisks(r.Context(),
		types.WorkspaceID(chi.URLParam(r, "workspaceID")),
		model.ControlID(chi.URLParam(r, "controlID")),
		opts...,
	)
	if err != nil {
		handleError(r.Context(), w, err)
		return
	}

	writeJSON(r.Context(), w, http.StatusOK, map[string]any{
		"risks": toRankedRisks(ranked),
	})
}

func (s *Server) pairScoreHandler(w http.ResponseWriter, r *http.Request) {
	pair, err := s.recommend.ScorePair(r.Context(),
		types.WorkspaceID(chi.URLParam(r, "workspaceID")),
		model.RiskID(chi.URLParam(r, "riskID")),
		model.ControlID(chi.URLParam(r, "controlID")),
	)
	if err != nil {
		handleError(r.Context(), w, err)
		return
	}

	writeJSON(r.Context(), w, http.StatusOK, pairScoreResponse{
		RiskID:         pair.RiskID.String(),
		ControlID:      pair.ControlID.String(),
		ControlForRisk: toMatchResponse(pair.ControlForRisk),
		RiskForControl: toMatchResponse(pair.RiskForControl),
	})
}

func (s *Server) coverageHandler(w http.ResponseWriter, r *http.Request) {
	opts, err := rankOptions(r)
	if err != nil {
		handleError(r.Context(), w, err)
		return
	}

	report, err := s.recommend.Coverage(r.Context(),
		types.WorkspaceID(chi.URLParam(r, "workspaceID")), opts...)
	if err != nil {
		handleError(r.Context(), w, err)
		return
	}

	writeJSON(r.Context(), w, http.StatusOK, toCoverageResponse(report))
}

// scoreRecordsHandler scores records sent by the client without touching any
// workspace. Keys may be snake_case or camelCase.
func (s *Server) scoreRecordsHandler(w http.ResponseWriter, r *http.Request) {
	var req scoreRequest
	body := http.MaxBytesReader(w, r.Body, maxRequestBodySize)
	if err := json.NewDecoder(body).Decode(&req); err != nil {
		handleError(r.Context(), w, goerr.Wrap(ErrBadRequest, "failed to decode score request",
			goerr.V("cause", err.Error())))
		return
	}

	// A missing side yields zero results, as the engine does for nil records
	risk := req.Risk.toModel()
	control := req.Control.toModel()

	resp := pairScoreResponse{
		ControlForRisk: toMatchResponse(relevance.ScoreControlForRisk(control, risk)),
		RiskForControl: toMatchResponse(relevance.ScoreRiskForControl(risk, control)),
	}
	if risk != nil {
		resp.RiskID = risk.ID.String()
	}
	if control != nil {
		resp.ControlID = control.ID.String()
	}
	writeJSON(r.Context(), w, http.StatusOK, resp)
}

// rankOptions reads the optional min_score query parameter
func rankOptions(r *http.Request) ([]relevance.RankOption, error) {
	raw := r.URL.Query().Get("min_score")
	if raw == "" {
		return nil, nil
	}

	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 || n > 100 {
		return nil, goerr.Wrap(ErrBadRequest, "min_score must be an integer between 0 and 100",
			goerr.V("min_score", raw))
	}
	return []relevance.RankOption{relevance.WithMinScore(n)}, nil
}

func statusOf(err error) int {
	switch {
	case errors.Is(err, ErrBadRequest):
		return http.StatusBadRequest
	case errors.Is(err, model.ErrWorkspaceNotFound),
		errors.Is(err, usecase.ErrRiskNotFound),
		errors.Is(err, usecase.ErrControlNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func handleError(ctx context.Context, w http.ResponseWriter, err error) {
	errutil.HandleHTTP(ctx, w, err, statusOf(err))
}

func writeJSON(ctx context.Context, w http.ResponseWriter, status int, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		errutil.HandleHTTP(ctx, w, goerr.Wrap(err, "failed to marshal response"), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	safe.Write(ctx, w, data)
}
