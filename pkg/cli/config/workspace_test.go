package config_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/riskmatch/pkg/cli/config"
	"github.com/secmon-lab/riskmatch/pkg/domain/model"
	"github.com/secmon-lab/riskmatch/pkg/domain/types"
	"github.com/secmon-lab/riskmatch/pkg/repository/memory"
	"github.com/secmon-lab/riskmatch/pkg/usecase"
)

const validWorkspace = `
[workspace]
id = "acme"
name = "ACME Corp"

[[risk]]
id = "outage"
title = "Data centre outage"
category = "technology"
department = "it"
causes = ["power failure", "cooling failure"]
consequences = ["service unavailable"]
inherent_risk = 16
treatment = "mitigate"

[[risk]]
id = "fx"
title = "Currency exposure"
category = "financial"
inherent_risk = "12.5"

[[risk]]
title = "Supplier default"
likelihood = 3
impact = 4

[[control]]
id = "failover"
titles = ["Automated failover"]
type = "preventive"
category = "automated"
department = "it"
mitigates_risk_categories = ["technology"]
mitigates_risk_keywords = ["outage", "power"]
plain_language = ["service unavailable"]
effectiveness = "effective"

[[control]]
name = "Hedging policy"
type = "directive"
category = "policy"
`

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	gt.NoError(t, os.WriteFile(path, []byte(content), 0o600)).Required()
	return path
}

func TestLoadWorkspaceFile(t *testing.T) {
	path := writeFile(t, t.TempDir(), "acme.toml", validWorkspace)

	snapshot, err := config.LoadWorkspaceFile(path)
	gt.NoError(t, err).Required()

	gt.Value(t, snapshot.Workspace.ID).Equal(types.WorkspaceID("acme"))
	gt.Value(t, snapshot.Workspace.Name).Equal("ACME Corp")
	gt.Value(t, snapshot.Source).Equal(path)
	gt.Array(t, snapshot.Risks).Length(3).Required()
	gt.Array(t, snapshot.Controls).Length(2).Required()

	outage := snapshot.Risks[0]
	gt.Value(t, outage.ID).Equal(model.RiskID("outage"))
	gt.Value(t, outage.Category).Equal(types.RiskCategoryTechnology)
	gt.Value(t, outage.InherentRisk).Equal(types.RiskScore(16))
	gt.Array(t, outage.Causes).Length(2)
	gt.Value(t, outage.Treatment).Equal(types.TreatmentMitigate)

	gt.Value(t, snapshot.Risks[1].InherentRisk).Equal(types.RiskScore(12.5))

	supplier := snapshot.Risks[2]
	gt.Value(t, supplier.ID).NotEqual(model.RiskID(""))
	gt.Value(t, supplier.InherentRisk).Equal(types.RiskScore(12))

	failover := snapshot.Controls[0]
	gt.Value(t, failover.Type).Equal(types.ControlTypePreventive)
	gt.Value(t, failover.Category).Equal(types.ControlCategoryAutomated)
	gt.Value(t, failover.Effectiveness).Equal(types.EffectivenessEffective)
	gt.Value(t, failover.MitigatesRiskCategories).Equal([]types.RiskCategory{types.RiskCategoryTechnology})
	gt.Value(t, failover.DisplayName()).Equal("Automated failover")

	hedging := snapshot.Controls[1]
	gt.Value(t, hedging.ID).NotEqual(model.ControlID(""))
	gt.Value(t, hedging.DisplayName()).Equal("Hedging policy")
}

func TestLoadWorkspaceFile_StableDerivedIDs(t *testing.T) {
	path := writeFile(t, t.TempDir(), "acme.toml", validWorkspace)

	first, err := config.LoadWorkspaceFile(path)
	gt.NoError(t, err).Required()
	second, err := config.LoadWorkspaceFile(path)
	gt.NoError(t, err).Required()

	gt.Value(t, second.Risks[2].ID).Equal(first.Risks[2].ID)
	gt.Value(t, second.Controls[1].ID).Equal(first.Controls[1].ID)
	gt.Value(t, first.Risks[2].ID).Equal(model.DeriveRiskID("acme", 2))
	gt.Value(t, first.Controls[1].ID).Equal(model.DeriveControlID("acme", 1))

	// Explicit IDs are kept as written
	gt.Value(t, first.Risks[0].ID).Equal(model.RiskID("outage"))
}

func TestWorkspace_Configure_ReloadKeepsDerivedIDs(t *testing.T) {
	ctx := context.Background()
	path := writeFile(t, t.TempDir(), "acme.toml", validWorkspace)
	cfg := config.NewWorkspaceForTest(path)
	uc := usecase.New(memory.New(), nil)

	_, err := cfg.Configure(ctx, uc)
	gt.NoError(t, err).Required()
	before, err := uc.Recommend.RecommendControls(ctx, "acme", model.DeriveRiskID("acme", 2))
	gt.NoError(t, err).Required()

	_, err = cfg.Configure(ctx, uc)
	gt.NoError(t, err).Required()
	after, err := uc.Recommend.RecommendControls(ctx, "acme", model.DeriveRiskID("acme", 2))
	gt.NoError(t, err).Required()

	gt.Array(t, after).Length(len(before))
}

func TestLoadWorkspaceFile_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr error
	}{
		{
			name:    "invalid TOML",
			content: "[workspace\nid = ",
			wantErr: config.ErrInvalidConfig,
		},
		{
			name:    "invalid workspace ID",
			content: "[workspace]\nid = \"Not Valid\"\n",
			wantErr: config.ErrInvalidConfig,
		},
		{
			name: "risk without title",
			content: `
[workspace]
id = "acme"

[[risk]]
id = "r-1"
`,
			wantErr: config.ErrMissingTitle,
		},
		{
			name: "duplicate risk ID",
			content: `
[workspace]
id = "acme"

[[risk]]
id = "r-1"
title = "A"

[[risk]]
id = "r-1"
title = "B"
`,
			wantErr: config.ErrDuplicateRiskID,
		},
		{
			name: "control without name or title",
			content: `
[workspace]
id = "acme"

[[control]]
id = "c-1"
titles = [""]
`,
			wantErr: config.ErrMissingName,
		},
		{
			name: "duplicate control ID",
			content: `
[workspace]
id = "acme"

[[control]]
id = "c-1"
name = "A"

[[control]]
id = "c-1"
name = "B"
`,
			wantErr: config.ErrDuplicateControlID,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, t.TempDir(), "ws.toml", tt.content)
			_, err := config.LoadWorkspaceFile(path)
			gt.Error(t, err).Is(tt.wantErr)
		})
	}
}

func TestLoadWorkspaceFile_NotFound(t *testing.T) {
	_, err := config.LoadWorkspaceFile(filepath.Join(t.TempDir(), "missing.toml"))
	gt.Error(t, err).Is(config.ErrConfigNotFound)
}

func TestRiskEntry_InherentScore(t *testing.T) {
	tests := []struct {
		name  string
		entry config.RiskEntry
		want  types.RiskScore
	}{
		{name: "direct number wins", entry: config.RiskEntry{InherentRisk: int64(9), Likelihood: int64(5), Impact: int64(5)}, want: 9},
		{name: "numeric string", entry: config.RiskEntry{InherentRisk: "15"}, want: 15},
		{name: "garbage string", entry: config.RiskEntry{InherentRisk: "high"}, want: 0},
		{name: "likelihood times impact", entry: config.RiskEntry{Likelihood: int64(4), Impact: 2.5}, want: 10},
		{name: "likelihood only", entry: config.RiskEntry{Likelihood: int64(4)}, want: 0},
		{name: "nothing", entry: config.RiskEntry{}, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gt.Value(t, tt.entry.InherentScore()).Equal(tt.want)
		})
	}
}

func TestWorkspace_Configure(t *testing.T) {
	dir := t.TempDir()
	first := writeFile(t, dir, "acme.toml", validWorkspace)
	second := writeFile(t, dir, "beta.toml", "[workspace]\nid = \"beta\"\n")

	uc := usecase.New(memory.New(), nil)
	snapshots, err := config.NewWorkspaceForTest(first, second).Configure(context.Background(), uc)
	gt.NoError(t, err).Required()
	gt.Array(t, snapshots).Length(2)

	workspaces := uc.Workspace.List()
	gt.Array(t, workspaces).Length(2).Required()
	gt.Value(t, workspaces[0].ID).Equal(types.WorkspaceID("acme"))
	gt.Value(t, workspaces[1].Name).Equal("beta")

	ranked, err := uc.Recommend.RecommendControls(context.Background(), "acme", "outage")
	gt.NoError(t, err).Required()
	gt.Array(t, ranked).Length(1)
}

func TestWorkspace_Load_Errors(t *testing.T) {
	t.Run("no files", func(t *testing.T) {
		_, err := config.NewWorkspaceForTest().Load()
		gt.Error(t, err).Is(config.ErrNoWorkspace)
	})

	t.Run("duplicate workspace across files", func(t *testing.T) {
		dir := t.TempDir()
		a := writeFile(t, dir, "a.toml", "[workspace]\nid = \"same\"\n")
		b := writeFile(t, dir, "b.toml", "[workspace]\nid = \"same\"\n")

		uc := usecase.New(memory.New(), nil)
		_, err := config.NewWorkspaceForTest(a, b).Configure(context.Background(), uc)
		gt.Error(t, err).Is(config.ErrDuplicateWorkspace)
		gt.Array(t, uc.Workspace.List()).Length(0)
	})
}

func TestWorkspace_Files_Directory(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "b.toml", "[workspace]\nid = \"b\"\n")
	writeFile(t, dir, "a.toml", "[workspace]\nid = \"a\"\n")
	writeFile(t, dir, "notes.txt", "ignored")

	files, err := config.NewWorkspaceForTest(dir).Files()
	gt.NoError(t, err).Required()
	gt.Value(t, files).Equal([]string{filepath.Join(dir, "a.toml"), filepath.Join(dir, "b.toml")})

	_, err = config.NewWorkspaceForTest(t.TempDir()).Files()
	gt.Error(t, err).Is(config.ErrNoWorkspace)
}
