package scheduler

// Admission walks a job list sorted by arrival and moves jobs into a ready
// structure once the clock reaches their arrival time.
type Admission struct {
	jobs []*Job
	next int // index of the first job not yet admitted
}

// NewAdmission creates an admission cursor over jobs, which must already be
// in the order the active strategy requires.
func NewAdmission(jobs []*Job) *Admission {
	return &Admission{jobs: jobs}
}

// Admit pushes every unadmitted job with Arrival <= clock into ready and
// returns how many were admitted. Calling it again at the same clock admits
// nothing.
func (a *Admission) Admit(clock int, ready Ready) int {
	n := 0
	for a.next < len(a.jobs) && a.jobs[a.next].Arrival <= clock {
		ready.Push(a.jobs[a.next])
		a.next++
		n++
	}
	return n
}

// Pending returns the number of jobs not yet admitted.
func (a *Admission) Pending() int { return len(a.jobs) - a.next }

// NextArrival returns the arrival time of the next unadmitted job.
// ok is false once every job has been admitted.
func (a *Admission) NextArrival() (at int, ok bool) {
	if a.next >= len(a.jobs) {
		return 0, false
	}
	return a.jobs[a.next].Arrival, true
}
