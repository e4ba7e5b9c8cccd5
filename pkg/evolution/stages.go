package evolution

import "github.com/arturpasiut/poke-sky-api/pkg/pokeapi"

// StageAccumulator gathers everything known about one species across every
// branch path that traverses it: its minimum depth, the branches it sits on
// and the raw evolution details that produced it.
type StageAccumulator struct {
	PokemonID int64
	Name      string
	Order     int
	BranchIDs []string
	Details   []pokeapi.EvolutionDetail
}

// BuildStageAccumulators merges the branch paths into per-species
// accumulators. A species reachable at several depths keeps the smallest one.
// Order comes from each node's graph depth rather than its index in the path,
// so skipped malformed nodes leave no gap-shifted stages. Graph roots
// contribute no transition details; every deeper node appends the details
// describing the evolution into it. Iteration order of the returned map is
// not meaningful; callers sort by Order.
func BuildStageAccumulators(branches []BranchPath) map[int64]*StageAccumulator {
	stages := make(map[int64]*StageAccumulator)

	for _, branch := range branches {
		for _, node := range branch.Nodes {
			stage, seen := stages[node.ID]
			if !seen {
				stage = &StageAccumulator{
					PokemonID: node.ID,
					Name:      node.Name,
					Order:     node.Depth + 1,
				}
				stages[node.ID] = stage
			} else if node.Depth+1 < stage.Order {
				stage.Order = node.Depth + 1
			}

			if !containsString(stage.BranchIDs, branch.ID) {
				stage.BranchIDs = append(stage.BranchIDs, branch.ID)
			}

			if node.Depth > 0 {
				stage.Details = append(stage.Details, node.Details...)
			}
		}
	}

	return stages
}

func containsString(values []string, target string) bool {
	for _, v := range values {
		if v == target {
			return true
		}
	}
	return false
}
