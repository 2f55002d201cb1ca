package scheduler

import (
	"cmp"

	"github.com/pkg/errors"
	"golang.org/x/exp/slices"
)

// Strategy is the ordering policy a Simulation runs under. A Strategy carries
// no per-run state; each run gets a fresh ready structure from NewReady.
type Strategy interface {
	Policy() Policy
	// Order sorts jobs into the order the admission cursor walks them.
	Order(jobs []*Job)
	// NewReady returns an empty ready structure whose Pop implements the
	// policy's selection rule.
	NewReady() Ready
	// Slice is how long j runs once selected.
	Slice(j *Job) int
}

// NewStrategy returns the strategy for p. quantum is only read by Round Robin.
func NewStrategy(p Policy, quantum int) (Strategy, error) {
	switch p {
	case FCFS:
		return fcfs{}, nil
	case SJN:
		return sjn{}, nil
	case Priority:
		return priority{}, nil
	case RoundRobin:
		if quantum <= 0 {
			return nil, errors.Wrapf(ErrInvalidParameter, "quantum must be positive, got %d", quantum)
		}
		return roundRobin{quantum: quantum}, nil
	default:
		return nil, errors.Wrapf(ErrUnknownPolicy, "policy %d", int(p))
	}
}

func byArrival(a, b *Job) int { return cmp.Compare(a.Arrival, b.Arrival) }

type fcfs struct{}

func (fcfs) Policy() Policy    { return FCFS }
func (fcfs) Order(jobs []*Job) { slices.SortStableFunc(jobs, byArrival) }
func (fcfs) NewReady() Ready   { return &FIFOQueue{} }
func (fcfs) Slice(j *Job) int  { return j.Remaining }

type sjn struct{}

func (sjn) Policy() Policy { return SJN }

func (sjn) Order(jobs []*Job) {
	slices.SortStableFunc(jobs, func(a, b *Job) int {
		if c := byArrival(a, b); c != 0 {
			return c
		}
		return cmp.Compare(a.Burst, b.Burst)
	})
}

func (sjn) NewReady() Ready {
	return NewPriorityQueue(func(j *Job) int { return j.Burst })
}

func (sjn) Slice(j *Job) int { return j.Remaining }

type priority struct{}

func (priority) Policy() Policy    { return Priority }
func (priority) Order(jobs []*Job) { slices.SortStableFunc(jobs, byArrival) }

func (priority) NewReady() Ready {
	return NewPriorityQueue(func(j *Job) int { return j.Priority })
}

func (priority) Slice(j *Job) int { return j.Remaining }

type roundRobin struct {
	quantum int
}

func (roundRobin) Policy() Policy    { return RoundRobin }
func (roundRobin) Order(jobs []*Job) { slices.SortStableFunc(jobs, byArrival) }
func (roundRobin) NewReady() Ready   { return &FIFOQueue{} }

func (r roundRobin) Slice(j *Job) int { return min(j.Remaining, r.quantum) }
