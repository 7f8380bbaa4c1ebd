// pkg/grid/pathfinding.go
package grid

import (
	"container/heap"

	"go-td-core/pkg/geom"
)

// AStar finds a shortest 4-connected route from start to goal over cells
// accepted by walkable. It returns nil when no route exists.
func (g *Grid) AStar(start, goal Point, walkable func(Cell) bool) []Point {
	if !g.IsValidPosition(start.X, start.Y) || !g.IsValidPosition(goal.X, goal.Y) {
		return nil
	}
	pq := &PriorityQueue{}
	heap.Init(pq)
	heap.Push(pq, &Node{Point: start, Cost: 0})
	costSoFar := map[Point]int{start: 0}
	seq := 0
	for pq.Len() > 0 {
		current := heap.Pop(pq).(*Node)
		if current.Point == goal {
			return reconstructPath(current)
		}
		for _, next := range g.neighbors(current.Point) {
			c, _ := g.Cell(next.X, next.Y)
			if next != goal && !walkable(c) {
				continue
			}
			newCost := costSoFar[current.Point] + 1
			if old, seen := costSoFar[next]; !seen || newCost < old {
				costSoFar[next] = newCost
				seq++
				priority := newCost + manhattan(next, goal)
				heap.Push(pq, &Node{Point: next, Cost: priority, Seq: seq, Parent: current})
			}
		}
	}
	return nil
}

func (g *Grid) neighbors(p Point) []Point {
	out := make([]Point, 0, 4)
	for _, d := range [...]Point{{1, 0}, {-1, 0}, {0, 1}, {0, -1}} {
		n := Point{p.X + d.X, p.Y + d.Y}
		if g.IsValidPosition(n.X, n.Y) {
			out = append(out, n)
		}
	}
	return out
}

func manhattan(a, b Point) int {
	return geom.Abs(a.X-b.X) + geom.Abs(a.Y-b.Y)
}

// PriorityQueue orders A* nodes by cost, then insertion.
type PriorityQueue []*Node

type Node struct {
	Point  Point
	Cost   int
	Seq    int
	Parent *Node
}

func (pq PriorityQueue) Len() int { return len(pq) }
func (pq PriorityQueue) Less(i, j int) bool {
	if pq[i].Cost != pq[j].Cost {
		return pq[i].Cost < pq[j].Cost
	}
	return pq[i].Seq < pq[j].Seq
}
func (pq PriorityQueue) Swap(i, j int) { pq[i], pq[j] = pq[j], pq[i] }
func (pq *PriorityQueue) Push(x interface{}) {
	*pq = append(*pq, x.(*Node))
}
func (pq *PriorityQueue) Pop() interface{} {
	old := *pq
	n := len(old)
	item := old[n-1]
	*pq = old[0 : n-1]
	return item
}

func reconstructPath(node *Node) []Point {
	var path []Point
	for n := node; n != nil; n = n.Parent {
		path = append(path, n.Point)
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}
