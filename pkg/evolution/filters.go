package evolution

import (
	"github.com/arturpasiut/poke-sky-api/pkg/apperrors"
	"github.com/arturpasiut/poke-sky-api/pkg/models"
)

const (
	BranchingAny       = "any"
	BranchingLinear    = "linear"
	BranchingBranching = "branching"
)

// FilterOptions narrows a built chain. Zero values mean "no filter"; Branching
// accepts "linear", "branching" or "any"/"".
type FilterOptions struct {
	Type       string
	Generation *int
	Branching  string
}

func (o FilterOptions) hasStageFilters() bool {
	return o.Type != "" || o.Generation != nil
}

func (o FilterOptions) matches(stage models.EvolutionStageDto) bool {
	if o.Type != "" && !containsString(stage.Types, o.Type) {
		return false
	}
	if o.Generation != nil && stage.Generation != *o.Generation {
		return false
	}
	return true
}

// ApplyFilters prunes a built chain to the branches that satisfy the caller's
// filters. Matching keeps whole branches so the surrounding evolutionary
// context survives, and the root stage is always kept. An empty result fails
// closed with a 404-equivalent error instead of returning an empty chain.
// Title, summary and lead fields still describe the pre-filter chain.
func ApplyFilters(dto *models.EvolutionChainDto, branches []BranchPath, opts FilterOptions) (*models.EvolutionChainDto, error) {
	switch opts.Branching {
	case BranchingLinear:
		if len(dto.Branches) > 1 {
			return nil, apperrors.FilterMismatch("chain %s branches and cannot be shown as linear", dto.ChainID)
		}
	case BranchingBranching:
		if len(dto.Branches) <= 1 {
			return nil, apperrors.FilterMismatch("chain %s is linear and has no branches", dto.ChainID)
		}
	}

	if !opts.hasStageFilters() {
		return dto, nil
	}

	matching := make(map[int64]bool)
	for _, stage := range dto.Stages {
		if opts.matches(stage) {
			matching[stage.PokemonID] = true
		}
	}
	if len(matching) == 0 {
		return nil, apperrors.FilterMismatch("no stages match the requested filters")
	}

	keptBranches := make(map[string]bool)
	allowed := make(map[int64]bool)
	for _, branch := range branches {
		kept := false
		for _, node := range branch.Nodes {
			if matching[node.ID] {
				kept = true
				break
			}
		}
		if !kept {
			continue
		}
		keptBranches[branch.ID] = true
		for _, node := range branch.Nodes {
			allowed[node.ID] = true
		}
	}

	filteredStages := make([]models.EvolutionStageDto, 0, len(dto.Stages))
	for _, stage := range dto.Stages {
		if stage.Order == 1 || allowed[stage.PokemonID] {
			filteredStages = append(filteredStages, stage)
		}
	}
	if len(filteredStages) == 0 {
		return nil, apperrors.FilterMismatch("no stages match the requested filters")
	}

	filteredBranches := make([]models.EvolutionBranchDto, 0, len(dto.Branches))
	for _, branch := range dto.Branches {
		if keptBranches[branch.ID] {
			filteredBranches = append(filteredBranches, branch)
		}
	}

	filtered := *dto
	filtered.Stages = filteredStages
	filtered.Branches = filteredBranches
	return &filtered, nil
}
