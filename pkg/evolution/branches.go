package evolution

import (
	"fmt"

	"github.com/arturpasiut/poke-sky-api/pkg/pokeapi"
)

// BranchNode is one resolvable species along a branch path, together with the
// raw detail records describing the transition into it. Depth is the node's
// position in the chain graph, counted from the root, and keeps counting past
// skipped nodes so a species never shifts stages because a sibling record was
// malformed.
type BranchNode struct {
	ID      int64
	Name    string
	Depth   int
	Details []pokeapi.EvolutionDetail
}

// BranchPath is one root-to-leaf walk through the chain graph. Nodes holds the
// species along the path in root-first order; nodes whose species URL yields
// no id are dropped from the path, but their graph position survives in the
// Depth of the nodes below them.
type BranchPath struct {
	ID    string
	Label string
	Nodes []BranchNode
}

// CollectBranchPaths walks the chain depth-first and returns every
// root-to-leaf path. Paths come back in traversal order, so the branch index
// is stable for a given upstream payload. A node with an unresolvable species
// URL is skipped but the walk continues below it; a path that ends up with no
// resolvable nodes at all is discarded.
func CollectBranchPaths(root *pokeapi.ChainLink) []BranchPath {
	if root == nil {
		return nil
	}

	var paths []BranchPath
	var walk func(node *pokeapi.ChainLink, depth int, trail []BranchNode)
	walk = func(node *pokeapi.ChainLink, depth int, trail []BranchNode) {
		current := trail
		if id, ok := pokeapi.ExtractID(node.Species.URL); ok {
			current = append(append([]BranchNode(nil), trail...), BranchNode{
				ID:      id,
				Name:    node.Species.Name,
				Depth:   depth,
				Details: node.EvolutionDetails,
			})
		}

		if len(node.EvolvesTo) == 0 {
			if len(current) == 0 {
				return
			}
			paths = append(paths, BranchPath{
				Label: FormatLabel(current[len(current)-1].Name),
				Nodes: current,
			})
			return
		}

		for i := range node.EvolvesTo {
			walk(&node.EvolvesTo[i], depth+1, current)
		}
	}
	walk(root, 0, nil)

	for i := range paths {
		leaf := Slugify(paths[i].Nodes[len(paths[i].Nodes)-1].Name)
		paths[i].ID = fmt.Sprintf("branch-%d-%s", i+1, leaf)
	}

	return paths
}
