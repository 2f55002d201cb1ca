package scheduler

// JobStats is the per-job outcome of a run.
type JobStats struct {
	ID         string `json:"id"`
	Arrival    int    `json:"arrival"`
	Burst      int    `json:"burst"`
	Priority   int    `json:"priority"`
	Start      int    `json:"start"` // first time on the CPU
	Completion int    `json:"completion"`
	Waiting    int    `json:"waiting"`
	Turnaround int    `json:"turnaround"`
	Response   int    `json:"response"`
	Slices     int    `json:"slices"`
}

// Summary aggregates the events of a single run.
type Summary struct {
	Policy          Policy     `json:"-"`
	PolicyName      string     `json:"policy"`
	Quantum         int        `json:"quantum,omitempty"`
	Jobs            []JobStats `json:"jobs"`
	AvgWaiting      float64    `json:"avg_waiting"`
	AvgTurnaround   float64    `json:"avg_turnaround"`
	AvgResponse     float64    `json:"avg_response"`
	Makespan        int        `json:"makespan"`
	IdleTime        int        `json:"idle_time"`
	ContextSwitches int        `json:"context_switches"`
}

// Summarize folds an event sequence into per-job statistics. Jobs appear in
// the order they first ran. quantum is recorded for Round Robin only.
func Summarize(policy Policy, quantum int, events []Event) Summary {
	sum := Summary{Policy: policy, PolicyName: policy.String()}
	if policy == RoundRobin {
		sum.Quantum = quantum
	}

	index := make(map[string]int)
	clock := 0
	prev := ""
	for i, ev := range events {
		if ev.Start > clock {
			sum.IdleTime += ev.Start - clock
		}
		clock = ev.End
		if i > 0 && ev.JobID != prev {
			sum.ContextSwitches++
		}
		prev = ev.JobID

		k, seen := index[ev.JobID]
		if !seen {
			k = len(sum.Jobs)
			index[ev.JobID] = k
			sum.Jobs = append(sum.Jobs, JobStats{
				ID:       ev.JobID,
				Arrival:  ev.Arrival,
				Burst:    ev.Burst,
				Priority: ev.Priority,
				Start:    ev.Start,
				Response: ev.Start - ev.Arrival,
			})
		}
		js := &sum.Jobs[k]
		js.Slices++
		if ev.Completed {
			js.Completion = ev.End
			js.Waiting = ev.Waiting
			js.Turnaround = ev.Turnaround()
		}
	}
	sum.Makespan = clock

	if n := len(sum.Jobs); n > 0 {
		var w, t, r int
		for _, js := range sum.Jobs {
			w += js.Waiting
			t += js.Turnaround
			r += js.Response
		}
		sum.AvgWaiting = float64(w) / float64(n)
		sum.AvgTurnaround = float64(t) / float64(n)
		sum.AvgResponse = float64(r) / float64(n)
	}
	return sum
}

// Compare runs every policy over the same jobs and summarizes each run.
func Compare(jobs []Job, quantum int) ([]Summary, error) {
	out := make([]Summary, 0, len(Policies))
	for _, p := range Policies {
		events, err := Run(jobs, p, quantum)
		if err != nil {
			return nil, err
		}
		out = append(out, Summarize(p, quantum, events))
	}
	return out, nil
}
