package scheduler

import "container/heap"

// Ready is the structure admitted, not-yet-completed jobs wait in.
// Pop returns the job the active policy prefers, or nil when empty.
type Ready interface {
	Push(j *Job)
	Pop() *Job
	Len() int
}

// FIFOQueue hands jobs out in the order they were pushed.
type FIFOQueue struct {
	jobs []*Job
}

func (q *FIFOQueue) Push(j *Job) { q.jobs = append(q.jobs, j) }

func (q *FIFOQueue) Pop() *Job {
	if len(q.jobs) == 0 {
		return nil
	}
	j := q.jobs[0]
	q.jobs[0] = nil
	q.jobs = q.jobs[1:]
	return j
}

func (q *FIFOQueue) Len() int { return len(q.jobs) }

type entry struct {
	job *Job
	key int
	seq uint64 // admission order; breaks ties between equal keys
}

// entries implements heap.Interface. Lower key = popped first.
type entries []entry

func (e entries) Len() int { return len(e) }

func (e entries) Less(i, j int) bool {
	if e[i].key != e[j].key {
		return e[i].key < e[j].key
	}
	return e[i].seq < e[j].seq
}

func (e entries) Swap(i, j int) { e[i], e[j] = e[j], e[i] }

// Push is called by heap.Push. Do not call directly.
func (e *entries) Push(x any) { *e = append(*e, x.(entry)) }

// Pop is called by heap.Pop. Do not call directly.
func (e *entries) Pop() any {
	old := *e
	n := len(old)
	it := old[n-1]
	old[n-1] = entry{} // avoid memory leak
	*e = old[:n-1]
	return it
}

// PriorityQueue pops the job with the lowest key. Jobs with equal keys come
// out in the order they were pushed.
type PriorityQueue struct {
	keyOf   func(*Job) int
	entries entries
	seq     uint64
}

// NewPriorityQueue builds a queue ordered by keyOf.
func NewPriorityQueue(keyOf func(*Job) int) *PriorityQueue {
	pq := &PriorityQueue{keyOf: keyOf}
	heap.Init(&pq.entries)
	return pq
}

func (pq *PriorityQueue) Push(j *Job) {
	heap.Push(&pq.entries, entry{job: j, key: pq.keyOf(j), seq: pq.seq})
	pq.seq++
}

func (pq *PriorityQueue) Pop() *Job {
	if pq.entries.Len() == 0 {
		return nil
	}
	return heap.Pop(&pq.entries).(entry).job
}

func (pq *PriorityQueue) Len() int { return pq.entries.Len() }
