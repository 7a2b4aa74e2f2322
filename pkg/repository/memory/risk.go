package memory

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/riskmatch/pkg/domain/model"
	"github.com/secmon-lab/riskmatch/pkg/domain/types"
)

type riskRepository struct {
	store *workspaceStore[model.RiskID, *model.Risk]
}

func newRiskRepository() *riskRepository {
	return &riskRepository{
		store: newWorkspaceStore[model.RiskID]("risk", (*model.Risk).Clone),
	}
}

func (r *riskRepository) Put(ctx context.Context, workspaceID types.WorkspaceID, risks ...*model.Risk) ([]*model.Risk, error) {
	stored := make([]*model.Risk, 0, len(risks))
	for _, risk := range risks {
		if risk == nil {
			return nil, goerr.New("risk is nil", goerr.V("workspace_id", workspaceID))
		}
		v := risk.Clone()
		if v.ID == "" {
			v.ID = model.NewRiskID()
		}
		stored = append(stored, r.store.put(workspaceID, v.ID, v))
	}
	return stored, nil
}

func (r *riskRepository) Get(ctx context.Context, workspaceID types.WorkspaceID, id model.RiskID) (*model.Risk, error) {
	return r.store.get(workspaceID, id)
}

func (r *riskRepository) List(ctx context.Context, workspaceID types.WorkspaceID) ([]*model.Risk, error) {
	return r.store.list(workspaceID), nil
}

func (r *riskRepository) Delete(ctx context.Context, workspaceID types.WorkspaceID, id model.RiskID) error {
	return r.store.delete(workspaceID, id)
}

func (r *riskRepository) Replace(ctx context.Context, workspaceID types.WorkspaceID, risks []*model.Risk) error {
	ids := make([]model.RiskID, len(risks))
	values := make([]*model.Risk, len(risks))
	for i, risk := range risks {
		if risk == nil {
			return goerr.New("risk is nil", goerr.V("workspace_id", workspaceID), goerr.V("index", i))
		}
		v := risk.Clone()
		if v.ID == "" {
			v.ID = model.NewRiskID()
		}
		ids[i] = v.ID
		values[i] = v
	}

	r.store.replace(workspaceID, ids, values)
	return nil
}
