package scheduler

// Policy selects the ordering discipline for one simulation run.
type Policy int

const (
	FCFS       Policy = iota + 1 // First-come, first-served
	SJN                          // Shortest job next (non-preemptive)
	Priority                     // Static priority, lower value first (non-preemptive)
	RoundRobin                   // Preemptive, fixed time quantum
)

// Policies lists every supported policy in menu order.
var Policies = []Policy{FCFS, SJN, Priority, RoundRobin}

func (p Policy) String() string {
	switch p {
	case FCFS:
		return "fcfs"
	case SJN:
		return "sjn"
	case Priority:
		return "priority"
	case RoundRobin:
		return "rr"
	default:
		return "unknown"
	}
}

// Title is the human-readable policy name used in trace headers.
func (p Policy) Title() string {
	switch p {
	case FCFS:
		return "FCFS"
	case SJN:
		return "SJN"
	case Priority:
		return "Priority"
	case RoundRobin:
		return "Round Robin"
	default:
		return "Unknown"
	}
}

// Preemptive reports whether a running job can be interrupted before it finishes.
func (p Policy) Preemptive() bool { return p == RoundRobin }

// State is a phase of the scheduler loop.
type State int

const (
	Idle    State = iota // Ready structure empty, jobs remain unadmitted
	Select                // Ready structure non-empty, choose next job
	Execute               // Chosen job runs for its slice
	Done                  // Every job completed
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Select:
		return "select"
	case Execute:
		return "execute"
	case Done:
		return "done"
	default:
		return "unknown"
	}
}

// Job is one unit of work to schedule.
type Job struct {
	ID       string
	Arrival  int // Simulated time the job becomes eligible to run
	Burst    int // Total CPU time required
	Priority int // Lower value = higher precedence

	// Remaining is the unexecuted part of Burst. It is only maintained on the
	// working copies a Simulation owns; callers never see it change.
	Remaining int
}

// Event records one execution slice. Non-preemptive policies emit exactly one
// event per job; Round Robin emits one per quantum.
type Event struct {
	Seq       int    `json:"seq"`
	JobID     string `json:"job_id"`
	Arrival   int    `json:"arrival"`
	Burst     int    `json:"burst"`
	Priority  int    `json:"priority"`
	Start     int    `json:"start"`
	End       int    `json:"end"`
	Waiting   int    `json:"waiting"`   // Time spent ready but not running, up to Start
	Remaining int    `json:"remaining"` // Burst left after this slice
	Completed bool   `json:"completed"`
}

// Duration is the length of the slice.
func (e Event) Duration() int { return e.End - e.Start }

// Turnaround is the time from arrival to completion. Zero until the job completes.
func (e Event) Turnaround() int {
	if !e.Completed {
		return 0
	}
	return e.End - e.Arrival
}
