// internal/spawn/queue.go
package spawn

// pendingSpawn is one scheduled release of a staggered or burst event.
type pendingSpawn struct {
	due float64
	seq int
	req Request
}

// spawnQueue orders pending spawns by due time, then by scheduling order.
type spawnQueue []pendingSpawn

func (q spawnQueue) Len() int { return len(q) }
func (q spawnQueue) Less(i, j int) bool {
	if q[i].due != q[j].due {
		return q[i].due < q[j].due
	}
	return q[i].seq < q[j].seq
}
func (q spawnQueue) Swap(i, j int) { q[i], q[j] = q[j], q[i] }
func (q *spawnQueue) Push(x interface{}) {
	*q = append(*q, x.(pendingSpawn))
}
func (q *spawnQueue) Pop() interface{} {
	old := *q
	n := len(old)
	item := old[n-1]
	*q = old[0 : n-1]
	return item
}
