package evolution

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arturpasiut/poke-sky-api/pkg/pokeapi"
)

func TestBuildStageAccumulatorsLinear(t *testing.T) {
	root := chainNode(1, "bulbasaur",
		chainNodeWithDetails(2, "ivysaur", []pokeapi.EvolutionDetail{levelUpDetail(16)},
			chainNodeWithDetails(3, "venusaur", []pokeapi.EvolutionDetail{levelUpDetail(32)})))

	branches := CollectBranchPaths(&root)
	stages := BuildStageAccumulators(branches)

	require.Len(t, stages, 3)
	assert.Equal(t, 1, stages[1].Order)
	assert.Equal(t, 2, stages[2].Order)
	assert.Equal(t, 3, stages[3].Order)

	// the root never accumulates transition details
	assert.Empty(t, stages[1].Details)
	require.Len(t, stages[2].Details, 1)
	assert.Equal(t, 16, *stages[2].Details[0].MinLevel)
}

func TestBuildStageAccumulatorsBranchMembership(t *testing.T) {
	root := chainNode(133, "eevee",
		chainNodeWithDetails(134, "vaporeon", []pokeapi.EvolutionDetail{itemDetail("water-stone")}),
		chainNodeWithDetails(135, "jolteon", []pokeapi.EvolutionDetail{itemDetail("thunder-stone")}))

	branches := CollectBranchPaths(&root)
	stages := BuildStageAccumulators(branches)

	require.Len(t, stages, 3)

	// the shared root sits on both branches, the leaves on one each
	assert.ElementsMatch(t, []string{branches[0].ID, branches[1].ID}, stages[133].BranchIDs)
	assert.Equal(t, []string{branches[0].ID}, stages[134].BranchIDs)
	assert.Equal(t, []string{branches[1].ID}, stages[135].BranchIDs)

	assert.Equal(t, 1, stages[133].Order)
	assert.Equal(t, 2, stages[134].Order)
	assert.Equal(t, 2, stages[135].Order)
}

func TestBuildStageAccumulatorsIdempotent(t *testing.T) {
	root := chainNode(133, "eevee",
		chainNodeWithDetails(134, "vaporeon", []pokeapi.EvolutionDetail{itemDetail("water-stone")}),
		chainNodeWithDetails(135, "jolteon", []pokeapi.EvolutionDetail{itemDetail("thunder-stone")}))

	branches := CollectBranchPaths(&root)
	first := BuildStageAccumulators(branches)
	second := BuildStageAccumulators(branches)

	require.Len(t, second, len(first))
	for id, stage := range first {
		assert.Equal(t, stage.Order, second[id].Order)
		assert.Equal(t, stage.BranchIDs, second[id].BranchIDs)
		assert.Equal(t, stage.Details, second[id].Details)
	}
}

func TestBuildStageAccumulatorsMinimumDepthWins(t *testing.T) {
	// the same species reachable at depth 1 and depth 2 keeps order 2
	shared := chainNode(99, "shared")
	root := chainNode(1, "root",
		shared,
		chainNode(2, "middle", shared))

	branches := CollectBranchPaths(&root)
	stages := BuildStageAccumulators(branches)

	assert.Equal(t, 2, stages[99].Order)
}

func TestBuildStageAccumulatorsSkippedNodeKeepsDepth(t *testing.T) {
	// a malformed mid-path node must not promote the species below it
	broken := chainNode(0, "broken",
		chainNodeWithDetails(3, "venusaur", []pokeapi.EvolutionDetail{levelUpDetail(32)}))
	broken.Species.URL = "not-a-resource-url"
	root := chainNode(1, "bulbasaur", broken)

	stages := BuildStageAccumulators(CollectBranchPaths(&root))

	require.Len(t, stages, 2)
	assert.Equal(t, 1, stages[1].Order)
	assert.Equal(t, 3, stages[3].Order)
	require.Len(t, stages[3].Details, 1)
}

func TestBuildStageAccumulatorsSkippedRootKeepsChildAtSecondStage(t *testing.T) {
	root := chainNode(0, "broken",
		chainNodeWithDetails(2, "ivysaur", []pokeapi.EvolutionDetail{levelUpDetail(16)}))
	root.Species.URL = "not-a-resource-url"

	stages := BuildStageAccumulators(CollectBranchPaths(&root))

	require.Len(t, stages, 1)
	assert.Equal(t, 2, stages[2].Order)
	// the child is still an evolution, not the base form
	require.Len(t, stages[2].Details, 1)
	assert.Equal(t, 16, *stages[2].Details[0].MinLevel)
}

func TestBuildStageAccumulatorsEmptyBranches(t *testing.T) {
	assert.Empty(t, BuildStageAccumulators(nil))
}
