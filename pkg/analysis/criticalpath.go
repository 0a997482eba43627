package analysis

import "github.com/dd0wney/cluso-strategy/pkg/wardley"

// findCriticalPath finds the longest dependency chain rooted at a
// genesis-stage component, following out-edges depth-first. A node
// already on the current path terminates that branch, so cycles cannot
// loop and no name repeats within the reported path. The longest path
// across all roots wins; ties keep the first one found. The shared
// MaxPathNodes budget bounds total work on pathological graphs.
func (a *Analyzer) findCriticalPath(snap *snapshot, out *wardley.MapAnalysis) {
	budget := a.opts.MaxPathNodes

	var best []string
	for _, c := range snap.ordered {
		if c.Evolution >= 0.25 {
			continue
		}
		path := longestPathFrom(snap, c.Key(), &budget)
		if len(path) > len(best) {
			best = path
		}
	}
	if len(best) == 0 {
		return
	}

	names := make([]string, len(best))
	for i, key := range best {
		names[i] = snap.index[key].Name
	}
	out.CriticalPath = names
}

// pathFrame is one level of the iterative depth-first search: a node and
// the index of its next untried out-edge.
type pathFrame struct {
	key  string
	next int
}

// longestPathFrom runs an iterative DFS from root and returns the longest
// simple path reachable along forward edges. Each new node pushed costs
// one unit of budget; once the budget is spent no further nodes are
// explored and the best path seen so far stands.
func longestPathFrom(snap *snapshot, root string, budget *int) []string {
	if *budget <= 0 {
		return nil
	}
	*budget--

	stack := []pathFrame{{key: root}}
	onPath := map[string]bool{root: true}
	path := []string{root}
	best := []string{root}

	for len(stack) > 0 {
		top := &stack[len(stack)-1]
		neighbors := snap.forward[top.key]

		moved := false
		for top.next < len(neighbors) {
			next := neighbors[top.next]
			top.next++
			if onPath[next] {
				continue
			}
			if *budget <= 0 {
				break
			}
			*budget--

			onPath[next] = true
			path = append(path, next)
			stack = append(stack, pathFrame{key: next})
			if len(path) > len(best) {
				best = append([]string(nil), path...)
			}
			moved = true
			break
		}
		if moved {
			continue
		}

		// Neighbors exhausted (or budget spent): backtrack.
		key := stack[len(stack)-1].key
		stack = stack[:len(stack)-1]
		path = path[:len(path)-1]
		delete(onPath, key)
	}

	return best
}
