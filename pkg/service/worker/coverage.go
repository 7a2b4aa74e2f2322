package worker

import (
	"context"
	"sync"
	"time"

	"github.com/secmon-lab/riskmatch/pkg/domain/model"
	"github.com/secmon-lab/riskmatch/pkg/domain/types"
	"github.com/secmon-lab/riskmatch/pkg/service/relevance"
	"github.com/secmon-lab/riskmatch/pkg/utils/errutil"
	"github.com/secmon-lab/riskmatch/pkg/utils/logging"
)

// CoverageUseCase computes a coverage report for one workspace
type CoverageUseCase interface {
	Coverage(ctx context.Context, workspaceID types.WorkspaceID, opts ...relevance.RankOption) (*model.CoverageReport, error)
}

// WorkspaceLister lists the loaded workspaces
type WorkspaceLister interface {
	List() []model.Workspace
}

// CoverageSummary is the last computed coverage of one workspace
type CoverageSummary struct {
	WorkspaceID types.WorkspaceID
	Risks       int
	Uncovered   []model.RiskID
	CheckedAt   time.Time
}

// CoverageWorker periodically recomputes coverage for every workspace and
// logs risks that lost their last recommended control. Workspaces can be
// reloaded between runs, so the list is read on every cycle.
type CoverageWorker struct {
	coverage   CoverageUseCase
	workspaces WorkspaceLister
	interval   time.Duration
	stopCh     chan struct{}
	doneCh     chan struct{}

	mu     sync.RWMutex
	latest map[types.WorkspaceID]CoverageSummary
}

// NewCoverageWorker creates a new worker for monitoring coverage
func NewCoverageWorker(coverage CoverageUseCase, workspaces WorkspaceLister, interval time.Duration) *CoverageWorker {
	return &CoverageWorker{
		coverage:   coverage,
		workspaces: workspaces,
		interval:   interval,
		stopCh:     make(chan struct{}),
		doneCh:     make(chan struct{}),
		latest:     make(map[types.WorkspaceID]CoverageSummary),
	}
}

// Start begins the background loop. The first check runs immediately in the
// background and does not block server startup.
func (w *CoverageWorker) Start(ctx context.Context) {
	logging.Default().Info("Coverage worker starting", "interval", w.interval.String())
	go w.run(ctx)
}

// Stop signals the worker to stop and waits for completion
func (w *CoverageWorker) Stop() {
	close(w.stopCh)
	<-w.doneCh
	logging.Default().Info("Coverage worker stopped")
}

// Latest returns the last summary of a workspace
func (w *CoverageWorker) Latest(workspaceID types.WorkspaceID) (CoverageSummary, bool) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	s, ok := w.latest[workspaceID]
	return s, ok
}

func (w *CoverageWorker) run(ctx context.Context) {
	defer close(w.doneCh)

	w.check(ctx)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			w.check(ctx)

		case <-w.stopCh:
			return

		case <-ctx.Done():
			logging.Default().Info("Coverage worker context cancelled")
			return
		}
	}
}

// check runs one cycle. A failing workspace is logged and skipped; the
// others are still checked.
func (w *CoverageWorker) check(ctx context.Context) {
	for _, ws := range w.workspaces.List() {
		report, err := w.coverage.Coverage(ctx, ws.ID)
		if err != nil {
			_ = errutil.Handle(ctx, err, "coverage check failed")
			continue
		}

		summary := CoverageSummary{
			WorkspaceID: ws.ID,
			Risks:       len(report.Risks),
			Uncovered:   []model.RiskID{},
			CheckedAt:   time.Now(),
		}
		for _, r := range report.Uncovered() {
			summary.Uncovered = append(summary.Uncovered, r.ID)
		}

		w.mu.Lock()
		prev, seen := w.latest[ws.ID]
		w.latest[ws.ID] = summary
		w.mu.Unlock()

		newly := newlyUncovered(prev.Uncovered, summary.Uncovered)
		if seen && len(newly) > 0 {
			logging.Default().Warn("Risks lost their recommended controls",
				"workspace_id", ws.ID,
				"risk_ids", newly,
			)
		}
		logging.Default().Debug("Coverage checked",
			"workspace_id", ws.ID,
			"risks", summary.Risks,
			"uncovered", len(summary.Uncovered),
		)
	}
}

func newlyUncovered(prev, current []model.RiskID) []model.RiskID {
	before := make(map[model.RiskID]struct{}, len(prev))
	for _, id := range prev {
		before[id] = struct{}{}
	}
	var newly []model.RiskID
	for _, id := range current {
		if _, ok := before[id]; !ok {
			newly = append(newly, id)
		}
	}
	return newly
}
