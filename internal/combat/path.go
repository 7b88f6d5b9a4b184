package combat

import "math"

// Unreachable is the PathResult length when no path exists.
const Unreachable = math.MaxInt

// PathResult describes the shortest path found between two cells.
// Next is the first cell of the path (the search start), Last the cell
// adjacent to the destination, or -1 when the destination is unreachable.
type PathResult struct {
	Next int
	Last int
	Len  int
}

func (p PathResult) Reachable() bool { return p.Len != Unreachable }

// ShortestStep searches from start to destination over Open cells. The
// destination itself may hold an agent. Cells are expanded in the order they
// were discovered, neighbours up, left, right, down, and the search stops the
// first time a cell next to the destination is expanded; that cell is Last.
func ShortestStep(m *Map, start, destination int) PathResult {
	return shortestStepWithin(m, start, destination, Unreachable)
}

// shortestStepWithin is ShortestStep that gives up on paths longer than limit.
// Cells whose distance plus Manhattan distance to the destination exceeds
// limit are never queued; this does not change the expansion order of the
// cells that remain.
func shortestStepWithin(m *Map, start, destination, limit int) PathResult {
	res := PathResult{Next: start, Last: -1, Len: Unreachable}
	if start == destination {
		res.Len = 0
		return res
	}
	width, size := m.width, len(m.tiles)
	if manhattan(start, destination, width) > limit {
		return res
	}

	dist := make([]int, size)
	for i := range dist {
		dist[i] = -1
	}
	dist[start] = 0
	queue := []int{start}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]

		cells, n := around(cur, width, size)
		for _, next := range cells[:n] {
			if next == destination {
				res.Last, res.Len = cur, dist[cur]+1
				return res
			}
			if dist[next] >= 0 || m.tiles[next].Kind != Open {
				continue
			}
			d := dist[cur] + 1
			if d+manhattan(next, destination, width) > limit {
				continue
			}
			dist[next] = d
			queue = append(queue, next)
		}
	}
	return res
}
