package memory

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/riskmatch/pkg/domain/model"
	"github.com/secmon-lab/riskmatch/pkg/domain/types"
)

type controlRepository struct {
	store *workspaceStore[model.ControlID, *model.Control]
}

func newControlRepository() *controlRepository {
	return &controlRepository{
		store: newWorkspaceStore[model.ControlID]("control", (*model.Control).Clone),
	}
}

func (r *controlRepository) Put(ctx context.Context, workspaceID types.WorkspaceID, controls ...*model.Control) ([]*model.Control, error) {
	stored := make([]*model.Control, 0, len(controls))
	for _, control := range controls {
		if control == nil {
			return nil, goerr.New("control is nil", goerr.V("workspace_id", workspaceID))
		}
		v := control.Clone()
		if v.ID == "" {
			v.ID = model.NewControlID()
		}
		stored = append(stored, r.store.put(workspaceID, v.ID, v))
	}
	return stored, nil
}

func (r *controlRepository) Get(ctx context.Context, workspaceID types.WorkspaceID, id model.ControlID) (*model.Control, error) {
	return r.store.get(workspaceID, id)
}

func (r *controlRepository) List(ctx context.Context, workspaceID types.WorkspaceID) ([]*model.Control, error) {
	return r.store.list(workspaceID), nil
}

func (r *controlRepository) Delete(ctx context.Context, workspaceID types.WorkspaceID, id model.ControlID) error {
	return r.store.delete(workspaceID, id)
}

func (r *controlRepository) Replace(ctx context.Context, workspaceID types.WorkspaceID, controls []*model.Control) error {
	ids := make([]model.ControlID, len(controls))
	values := make([]*model.Control, len(controls))
	for i, control := range controls {
		if control == nil {
			return goerr.New("control is nil", goerr.V("workspace_id", workspaceID), goerr.V("index", i))
		}
		v := control.Clone()
		if v.ID == "" {
			v.ID = model.NewControlID()
		}
		ids[i] = v.ID
		values[i] = v
	}

	r.store.replace(workspaceID, ids, values)
	return nil
}
