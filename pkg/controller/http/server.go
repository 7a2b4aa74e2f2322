package http

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/secmon-lab/riskmatch/pkg/domain/model"
	"github.com/secmon-lab/riskmatch/pkg/domain/types"
	"github.com/secmon-lab/riskmatch/pkg/service/relevance"
	"github.com/secmon-lab/riskmatch/pkg/utils/logging"
)

// RecommendUseCase is the read side the API exposes
type RecommendUseCase interface {
	RecommendControls(ctx context.Context, workspaceID types.WorkspaceID, riskID model.RiskID, opts ...relevance.RankOption) ([]model.RankedControl, error)
	RecommendRisks(ctx context.Context, workspaceID types.WorkspaceID, controlID model.ControlID, opts ...relevance.RankOption) ([]model.RankedRisk, error)
	ScorePair(ctx context.Context, workspaceID types.WorkspaceID, riskID model.RiskID, controlID model.ControlID) (*model.PairScore, error)
	Coverage(ctx context.Context, workspaceID types.WorkspaceID, opts ...relevance.RankOption) (*model.CoverageReport, error)
}

// WorkspaceUseCase lists the loaded workspaces
type WorkspaceUseCase interface {
	List() []model.Workspace
}

type Server struct {
	router      *chi.Mux
	recommend   RecommendUseCase
	workspace   WorkspaceUseCase
	corsOrigins []string
}

type Options func(*Server)

// WithCORSOrigins allows browser clients from the given origins
func WithCORSOrigins(origins []string) Options {
	return func(s *Server) {
		s.corsOrigins = origins
	}
}

func New(recommend RecommendUseCase, workspace WorkspaceUseCase, opts ...Options) *Server {
	r := chi.NewRouter()

	s := &Server{
		router:    r,
		recommend: recommend,
		workspace: workspace,
	}
	for _, opt := range opts {
		opt(s)
	}

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(accessLogger)
	r.Use(middleware.Recoverer)

	if len(s.corsOrigins) > 0 {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: s.corsOrigins,
			AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
			AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-Id"},
			MaxAge:         300,
		}))
	}

	r.Get("/health", healthHandler)

	r.Route("/api", func(r chi.Router) {
		r.Get("/workspaces", s.workspacesHandler)
		r.Post("/score", s.scoreRecordsHandler)

		r.Route("/workspaces/{workspaceID}", func(r chi.Router) {
			r.Get("/coverage", s.coverageHandler)
			r.Get("/risks/{riskID}/controls", s.riskControlsHandler)
			r.Get("/risks/{riskID}/controls/{controlID}/score", s.pairScoreHandler)
			r.Get("/controls/{controlID}/risks", s.controlRisksHandler)
		})
	})

	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// accessLogger is a middleware that logs HTTP requests. Handlers get a
// request-scoped logger carrying the request ID.
func accessLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		logger := logging.Default().With("request_id", middleware.GetReqID(r.Context()))
		ctx := logging.With(r.Context(), logger)

		defer func() {
			logger.Info("access",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"duration", time.Since(start),
				"remote", r.RemoteAddr,
				"user_agent", r.UserAgent(),
			)
		}()

		next.ServeHTTP(ww, r.WithContext(ctx))
	})
}
