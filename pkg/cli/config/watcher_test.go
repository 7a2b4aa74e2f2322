package config_test

import (
	"context"
	"os"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/riskmatch/pkg/cli/config"
	"github.com/secmon-lab/riskmatch/pkg/domain/interfaces"
	"github.com/secmon-lab/riskmatch/pkg/domain/model"
	"github.com/secmon-lab/riskmatch/pkg/domain/types"
	"github.com/secmon-lab/riskmatch/pkg/repository/memory"
	"github.com/secmon-lab/riskmatch/pkg/usecase"
)

func TestWorkspaceWatcher_ReloadsOnWrite(t *testing.T) {
	path := writeFile(t, t.TempDir(), "acme.toml", "[workspace]\nid = \"acme\"\nname = \"Before\"\n")

	cfg := config.NewWorkspaceForTest(path)
	uc := usecase.New(memory.New(), nil)
	_, err := cfg.Configure(context.Background(), uc)
	gt.NoError(t, err).Required()

	watcher, err := cfg.NewWatcher(uc)
	gt.NoError(t, err).Required()
	watcher.SetDebounceForTest(10 * time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- watcher.Run(ctx) }()
	t.Cleanup(func() {
		cancel()
		<-done
	})

	gt.NoError(t, os.WriteFile(path, []byte("[workspace]\nid = \"acme\"\nname = \"After\"\n"), 0o600)).Required()

	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		entry, err := uc.Registry().Get(types.WorkspaceID("acme"))
		gt.NoError(t, err).Required()
		if entry.Workspace.Name == "After" {
			return
		}
		time.Sleep(20 * time.Millisecond)
	}
	t.Fatal("workspace was not reloaded")
}

func TestWorkspaceWatcher_KeepsRecordsOnBrokenFile(t *testing.T) {
	path := writeFile(t, t.TempDir(), "acme.toml", validWorkspace)

	cfg := config.NewWorkspaceForTest(path)
	uc := usecase.New(memory.New(), nil)
	_, err := cfg.Configure(context.Background(), uc)
	gt.NoError(t, err).Required()

	watcher, err := cfg.NewWatcher(uc)
	gt.NoError(t, err).Required()
	watcher.SetDebounceForTest(10 * time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- watcher.Run(ctx) }()

	gt.NoError(t, os.WriteFile(path, []byte("[workspace\n"), 0o600)).Required()
	time.Sleep(200 * time.Millisecond)
	cancel()
	gt.NoError(t, <-done)

	ranked, err := uc.Recommend.RecommendControls(context.Background(), "acme", "outage")
	gt.NoError(t, err).Required()
	gt.Array(t, ranked).Length(1)
}

// slowRiskRepository records how many risk replacements run at once
type slowRiskRepository struct {
	interfaces.RiskRepository
	active  atomic.Int32
	maxSeen atomic.Int32
}

func (r *slowRiskRepository) Replace(ctx context.Context, workspaceID types.WorkspaceID, risks []*model.Risk) error {
	n := r.active.Add(1)
	defer r.active.Add(-1)
	for {
		seen := r.maxSeen.Load()
		if n <= seen || r.maxSeen.CompareAndSwap(seen, n) {
			break
		}
	}
	time.Sleep(20 * time.Millisecond)
	return r.RiskRepository.Replace(ctx, workspaceID, risks)
}

type slowRepository struct {
	*memory.Memory
	risk *slowRiskRepository
}

func (r *slowRepository) Risk() interfaces.RiskRepository {
	return r.risk
}

func TestWorkspaceWatcher_ReloadsDoNotOverlap(t *testing.T) {
	path := writeFile(t, t.TempDir(), "acme.toml", validWorkspace)

	mem := memory.New()
	repo := &slowRepository{
		Memory: mem,
		risk:   &slowRiskRepository{RiskRepository: mem.Risk()},
	}
	cfg := config.NewWorkspaceForTest(path)
	uc := usecase.New(repo, nil)

	watcher, err := cfg.NewWatcher(uc)
	gt.NoError(t, err).Required()

	ctx := context.Background()
	var wg sync.WaitGroup
	for range 4 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			watcher.ReloadForTest(ctx)
		}()
	}
	wg.Wait()

	gt.Value(t, repo.risk.maxSeen.Load()).Equal(int32(1))

	risks, err := repo.Risk().List(ctx, "acme")
	gt.NoError(t, err).Required()
	gt.Array(t, risks).Length(3)
}
