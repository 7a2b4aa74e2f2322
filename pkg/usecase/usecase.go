package usecase

import (
	"github.com/secmon-lab/riskmatch/pkg/domain/interfaces"
	"github.com/secmon-lab/riskmatch/pkg/domain/model"
)

const defaultCoverageConcurrency = 8

type UseCases struct {
	repo                interfaces.Repository
	registry            *model.WorkspaceRegistry
	coverageConcurrency int

	Recommend *RecommendUseCase
	Workspace *WorkspaceUseCase
}

type Option func(*UseCases)

// WithCoverageConcurrency limits how many risks are ranked in parallel when
// building a coverage report
func WithCoverageConcurrency(n int) Option {
	return func(uc *UseCases) {
		if n > 0 {
			uc.coverageConcurrency = n
		}
	}
}

func New(repo interfaces.Repository, registry *model.WorkspaceRegistry, opts ...Option) *UseCases {
	if registry == nil {
		registry = model.NewWorkspaceRegistry()
	}

	uc := &UseCases{
		repo:                repo,
		registry:            registry,
		coverageConcurrency: defaultCoverageConcurrency,
	}

	for _, opt := range opts {
		opt(uc)
	}

	uc.Recommend = NewRecommendUseCase(repo, registry, uc.coverageConcurrency)
	uc.Workspace = NewWorkspaceUseCase(repo, registry)

	return uc
}

// Registry returns the workspace registry shared by all use cases
func (uc *UseCases) Registry() *model.WorkspaceRegistry {
	return uc.registry
}
