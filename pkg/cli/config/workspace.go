package config

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sort"

	"github.com/m-mizutani/goerr/v2"
	"github.com/pelletier/go-toml/v2"
	"github.com/secmon-lab/riskmatch/pkg/domain/model"
	"github.com/secmon-lab/riskmatch/pkg/domain/types"
	"github.com/secmon-lab/riskmatch/pkg/usecase"
	"github.com/secmon-lab/riskmatch/pkg/utils/logging"
	"github.com/urfave/cli/v3"
)

// WorkspaceFile is the TOML layout of one workspace file
type WorkspaceFile struct {
	Workspace WorkspaceSection `toml:"workspace"`
	Risks     []RiskEntry      `toml:"risk"`
	Controls  []ControlEntry   `toml:"control"`
}

// WorkspaceSection identifies the workspace a file describes
type WorkspaceSection struct {
	ID   string `toml:"id"`
	Name string `toml:"name"`
}

// RiskEntry is a risk record. Inherent risk is either given directly
// (number or numeric string) or as the product of likelihood and impact.
type RiskEntry struct {
	ID           string   `toml:"id"`
	Title        string   `toml:"title"`
	Description  string   `toml:"description"`
	Category     string   `toml:"category"`
	Department   string   `toml:"department"`
	Causes       []string `toml:"causes"`
	Consequences []string `toml:"consequences"`
	InherentRisk any      `toml:"inherent_risk"`
	Likelihood   any      `toml:"likelihood"`
	Impact       any      `toml:"impact"`
	Treatment    string   `toml:"treatment"`
}

// ControlEntry is a control record
type ControlEntry struct {
	ID                      string   `toml:"id"`
	Name                    string   `toml:"name"`
	Titles                  []string `toml:"titles"`
	Type                    string   `toml:"type"`
	Category                string   `toml:"category"`
	Department              string   `toml:"department"`
	MitigatesRiskCategories []string `toml:"mitigates_risk_categories"`
	MitigatesRiskKeywords   []string `toml:"mitigates_risk_keywords"`
	PlainLanguage           []string `toml:"plain_language"`
	Effectiveness           string   `toml:"effectiveness"`
}

// Validate checks if the RiskEntry is valid
func (r *RiskEntry) Validate() error {
	if r.Title == "" {
		return goerr.Wrap(ErrMissingTitle, "risk title is required", goerr.V(RiskIDKey, r.ID))
	}
	return nil
}

// InherentScore resolves the inherent risk of the entry
func (r *RiskEntry) InherentScore() types.RiskScore {
	if r.InherentRisk != nil {
		return types.ParseRiskScore(r.InherentRisk)
	}
	if r.Likelihood != nil && r.Impact != nil {
		return types.ParseRiskScore(r.Likelihood) * types.ParseRiskScore(r.Impact)
	}
	return 0
}

// Validate checks if the ControlEntry is valid
func (c *ControlEntry) Validate() error {
	if c.Name != "" {
		return nil
	}
	for _, t := range c.Titles {
		if t != "" {
			return nil
		}
	}
	return goerr.Wrap(ErrMissingName, "control needs a name or a title", goerr.V(ControlIDKey, c.ID))
}

// Validate checks if the WorkspaceFile is valid
func (f *WorkspaceFile) Validate() error {
	wsID := types.WorkspaceID(f.Workspace.ID)
	if err := wsID.Validate(); err != nil {
		return goerr.Wrap(ErrInvalidConfig, "invalid workspace ID",
			goerr.V(WorkspaceIDKey, f.Workspace.ID), goerr.V("cause", err.Error()))
	}

	riskIDs := make(map[string]bool)
	for i, r := range f.Risks {
		if err := r.Validate(); err != nil {
			return goerr.Wrap(err, "invalid risk", goerr.V(RecordIndexKey, i))
		}
		if r.ID == "" {
			continue
		}
		if riskIDs[r.ID] {
			return goerr.Wrap(ErrDuplicateRiskID, "duplicate risk ID", goerr.V(RiskIDKey, r.ID))
		}
		riskIDs[r.ID] = true
	}

	controlIDs := make(map[string]bool)
	for i, c := range f.Controls {
		if err := c.Validate(); err != nil {
			return goerr.Wrap(err, "invalid control", goerr.V(RecordIndexKey, i))
		}
		if c.ID == "" {
			continue
		}
		if controlIDs[c.ID] {
			return goerr.Wrap(ErrDuplicateControlID, "duplicate control ID", goerr.V(ControlIDKey, c.ID))
		}
		controlIDs[c.ID] = true
	}

	return nil
}

// ToSnapshot converts the file into domain records. Records without an ID
// get one derived from the workspace ID and their position in the file, so
// reloading an unchanged file keeps the IDs.
func (f *WorkspaceFile) ToSnapshot(source string) *model.WorkspaceSnapshot {
	name := f.Workspace.Name
	if name == "" {
		name = f.Workspace.ID
	}

	wsID := types.WorkspaceID(f.Workspace.ID)
	snapshot := &model.WorkspaceSnapshot{
		Workspace: model.Workspace{
			ID:   wsID,
			Name: name,
		},
		Source:   source,
		Risks:    make([]*model.Risk, 0, len(f.Risks)),
		Controls: make([]*model.Control, 0, len(f.Controls)),
	}

	for i, r := range f.Risks {
		id := model.RiskID(r.ID)
		if id == "" {
			id = model.DeriveRiskID(wsID, i)
		}
		snapshot.Risks = append(snapshot.Risks, &model.Risk{
			ID:           id,
			Title:        r.Title,
			Description:  r.Description,
			Category:     types.RiskCategory(r.Category),
			Department:   r.Department,
			Causes:       r.Causes,
			Consequences: r.Consequences,
			InherentRisk: r.InherentScore(),
			Treatment:    types.Treatment(r.Treatment),
		})
	}

	for i, c := range f.Controls {
		id := model.ControlID(c.ID)
		if id == "" {
			id = model.DeriveControlID(wsID, i)
		}
		categories := make([]types.RiskCategory, 0, len(c.MitigatesRiskCategories))
		for _, rc := range c.MitigatesRiskCategories {
			categories = append(categories, types.RiskCategory(rc))
		}
		snapshot.Controls = append(snapshot.Controls, &model.Control{
			ID:                      id,
			Name:                    c.Name,
			Titles:                  c.Titles,
			Type:                    types.ControlType(c.Type),
			Category:                types.ControlCategory(c.Category),
			Department:              c.Department,
			MitigatesRiskCategories: categories,
			MitigatesRiskKeywords:   c.MitigatesRiskKeywords,
			PlainLanguage:           c.PlainLanguage,
			Effectiveness:           types.Effectiveness(c.Effectiveness),
		})
	}

	return snapshot
}

// LoadWorkspaceFile reads, parses and validates one workspace file
func LoadWorkspaceFile(path string) (*model.WorkspaceSnapshot, error) {
	// #nosec G304 - path is expected to be provided by CLI argument
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, goerr.Wrap(ErrConfigNotFound, "workspace file not found", goerr.V(ConfigPathKey, path))
		}
		return nil, goerr.Wrap(err, "failed to read workspace file", goerr.V(ConfigPathKey, path))
	}

	var file WorkspaceFile
	if err := toml.Unmarshal(data, &file); err != nil {
		return nil, goerr.Wrap(ErrInvalidConfig, "failed to parse TOML workspace file",
			goerr.V(ConfigPathKey, path), goerr.V("cause", err.Error()))
	}

	if err := file.Validate(); err != nil {
		return nil, goerr.Wrap(err, "workspace file validation failed", goerr.V(ConfigPathKey, path))
	}

	return file.ToSnapshot(path), nil
}

// Workspace holds the workspace file flags
type Workspace struct {
	paths []string
}

// Flags returns CLI flags for workspace files
func (x *Workspace) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringSliceFlag{
			Name:        "workspace",
			Aliases:     []string{"w"},
			Usage:       "Path to a workspace TOML file or directory (repeatable)",
			Sources:     cli.EnvVars("RISKMATCH_WORKSPACE"),
			Destination: &x.paths,
		},
	}
}

// Paths returns the configured workspace file paths
func (x *Workspace) Paths() []string {
	return x.paths
}

// Files expands the configured paths. A directory contributes its *.toml
// files in lexical order.
func (x *Workspace) Files() ([]string, error) {
	var files []string
	for _, p := range x.paths {
		info, err := os.Stat(p)
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				return nil, goerr.Wrap(ErrConfigNotFound, "workspace path not found", goerr.V(ConfigPathKey, p))
			}
			return nil, goerr.Wrap(err, "failed to stat workspace path", goerr.V(ConfigPathKey, p))
		}
		if !info.IsDir() {
			files = append(files, p)
			continue
		}

		matches, err := filepath.Glob(filepath.Join(p, "*.toml"))
		if err != nil {
			return nil, goerr.Wrap(err, "failed to list workspace directory", goerr.V(ConfigPathKey, p))
		}
		sort.Strings(matches)
		files = append(files, matches...)
	}

	if len(files) == 0 {
		return nil, goerr.Wrap(ErrNoWorkspace, "at least one --workspace file is required")
	}
	return files, nil
}

// Load reads every workspace file. Workspace IDs must be unique across files.
func (x *Workspace) Load() ([]*model.WorkspaceSnapshot, error) {
	files, err := x.Files()
	if err != nil {
		return nil, err
	}

	seen := make(map[types.WorkspaceID]string)
	snapshots := make([]*model.WorkspaceSnapshot, 0, len(files))
	for _, path := range files {
		snapshot, err := LoadWorkspaceFile(path)
		if err != nil {
			return nil, err
		}
		if prev, ok := seen[snapshot.Workspace.ID]; ok {
			return nil, goerr.Wrap(ErrDuplicateWorkspace, "workspace ID used by multiple files",
				goerr.V(WorkspaceIDKey, snapshot.Workspace.ID),
				goerr.V(ConfigPathKey, path),
				goerr.V("previous_path", prev))
		}
		seen[snapshot.Workspace.ID] = path
		snapshots = append(snapshots, snapshot)
	}

	return snapshots, nil
}

// Configure loads every workspace file and imports it into the use cases.
// Nothing is imported when any file fails to load.
func (x *Workspace) Configure(ctx context.Context, uc *usecase.UseCases) ([]*model.WorkspaceSnapshot, error) {
	snapshots, err := x.Load()
	if err != nil {
		return nil, err
	}

	for _, snapshot := range snapshots {
		if err := uc.Workspace.Import(ctx, snapshot); err != nil {
			return nil, goerr.Wrap(err, "failed to import workspace", goerr.V(ConfigPathKey, snapshot.Source))
		}
	}

	logging.From(ctx).Debug("Workspaces configured", "count", len(snapshots))
	return snapshots, nil
}
