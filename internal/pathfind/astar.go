// Package pathfind implements A* and flood-fill search over a grid.Bounds
// against a per-call obstacle set. The priority queue follows the same
// container/heap shape the teacher project used for its Dijkstra-style
// Voronoi expansion (voronoi.go's PriorityQueue).
package pathfind

import (
	"container/heap"
	"container/list"

	"github.com/gerd03/snakepilot/internal/grid"
)

// astarNode is one entry in the open set.
type astarNode struct {
	cell  grid.Cell
	gCost int
	fCost int
	index int // heap bookkeeping
}

type openSet []*astarNode

func (o openSet) Len() int { return len(o) }

func (o openSet) Less(i, j int) bool {
	if o[i].fCost == o[j].fCost {
		return o[i].gCost > o[j].gCost // prefer deeper ties: closer to goal heuristically
	}
	return o[i].fCost < o[j].fCost
}

func (o openSet) Swap(i, j int) {
	o[i], o[j] = o[j], o[i]
	o[i].index = i
	o[j].index = j
}

func (o *openSet) Push(x interface{}) {
	n := x.(*astarNode)
	n.index = len(*o)
	*o = append(*o, n)
}

func (o *openSet) Pop() interface{} {
	old := *o
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	item.index = -1
	*o = old[:n-1]
	return item
}

// FindPath runs A* with a Manhattan heuristic from start to end, treating
// every cell in obstacles (other than end itself, when the caller has
// already excluded it) as impassable. The returned path excludes start
// and includes end, in step order. It returns (nil, true) when
// start == end (the empty path). It returns (nil, false) when end is
// unreachable.
func FindPath(b grid.Bounds, start, end grid.Cell, obstacles map[grid.Cell]struct{}) ([]grid.Cell, bool) {
	if start == end {
		return nil, true
	}
	if !b.InBounds(start) || !b.InBounds(end) {
		return nil, false
	}

	startNode := &astarNode{cell: start, gCost: 0, fCost: grid.Manhattan(start, end)}
	open := &openSet{startNode}
	heap.Init(open)

	gScore := map[grid.Cell]int{start: 0}
	cameFrom := map[grid.Cell]grid.Cell{}
	closed := map[grid.Cell]struct{}{}

	for open.Len() > 0 {
		current := heap.Pop(open).(*astarNode)
		if current.cell == end {
			return reconstructPath(cameFrom, start, end), true
		}
		if _, done := closed[current.cell]; done {
			continue
		}
		closed[current.cell] = struct{}{}

		for _, dir := range grid.AllDirections {
			next := current.cell.Add(dir)
			if !b.InBounds(next) {
				continue
			}
			// Obstacles block every cell uniformly, including end: the
			// caller grants destination access by omitting it from the
			// obstacle set (e.g. removing a tail about to vacate), not by
			// special-casing it here.
			if _, blocked := obstacles[next]; blocked {
				continue
			}
			if _, done := closed[next]; done {
				continue
			}

			tentativeG := current.gCost + 1
			if existing, seen := gScore[next]; seen && tentativeG >= existing {
				continue
			}

			gScore[next] = tentativeG
			cameFrom[next] = current.cell
			heap.Push(open, &astarNode{
				cell:  next,
				gCost: tentativeG,
				fCost: tentativeG + grid.Manhattan(next, end),
			})
		}
	}

	return nil, false
}

func reconstructPath(cameFrom map[grid.Cell]grid.Cell, start, end grid.Cell) []grid.Cell {
	path := []grid.Cell{end}
	cur := end
	for cur != start {
		prev, ok := cameFrom[cur]
		if !ok {
			break
		}
		path = append(path, prev)
		cur = prev
	}
	// reverse, then drop start
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path[1:]
}

// OpenNeighborCount returns how many of start's four neighbors are
// in-bounds and not present in obstacles.
func OpenNeighborCount(b grid.Bounds, start grid.Cell, obstacles map[grid.Cell]struct{}) int {
	count := 0
	for _, dir := range grid.AllDirections {
		next := start.Add(dir)
		if !b.InBounds(next) {
			continue
		}
		if _, blocked := obstacles[next]; blocked {
			continue
		}
		count++
	}
	return count
}

// FloodFill performs a BFS over 4-connected cells starting at start,
// bounded by b.CellCount, and returns the number of reachable in-bounds
// cells not present in obstacles (including start itself, if it is
// legal). It never visits a cell more than once.
func FloodFill(b grid.Bounds, start grid.Cell, obstacles map[grid.Cell]struct{}) int {
	if !b.InBounds(start) {
		return 0
	}
	if _, blocked := obstacles[start]; blocked {
		return 0
	}

	visited := make(map[grid.Cell]struct{}, b.CellCount)
	visited[start] = struct{}{}
	queue := list.New()
	queue.PushBack(start)
	count := 0

	for queue.Len() > 0 && count < b.CellCount {
		front := queue.Front()
		cur := front.Value.(grid.Cell)
		queue.Remove(front)
		count++

		for _, dir := range grid.AllDirections {
			next := cur.Add(dir)
			if !b.InBounds(next) {
				continue
			}
			if _, seen := visited[next]; seen {
				continue
			}
			if _, blocked := obstacles[next]; blocked {
				continue
			}
			visited[next] = struct{}{}
			queue.PushBack(next)
		}
	}

	return count
}
