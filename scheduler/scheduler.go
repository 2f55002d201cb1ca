package scheduler

import "iter"

// Simulation runs one job set to completion under one strategy.
// It is single-use: once Next reports false it stays exhausted.
//
// The loop is a small state machine:
//
//	Idle    -> Select   clock jumps to the next arrival, arrivals are admitted
//	Select  -> Execute  the strategy's preferred job is popped
//	Execute -> Select | Idle | Done
//
// Idle is only entered while unadmitted jobs remain, so the arrival jump
// always has a target.
type Simulation struct {
	strategy  Strategy
	admission *Admission
	ready     Ready

	clock     int
	total     int
	completed int
	seq       int
	state     State
	running   *Job // job popped in Select, consumed by Execute
}

// New validates jobs and prepares a simulation over private copies of them.
// The caller's slice is never modified.
func New(jobs []Job, strategy Strategy) (*Simulation, error) {
	if err := Validate(jobs); err != nil {
		return nil, err
	}

	work := make([]*Job, len(jobs))
	for i := range jobs {
		j := jobs[i]
		j.Remaining = j.Burst
		work[i] = &j
	}
	strategy.Order(work)

	s := &Simulation{
		strategy:  strategy,
		admission: NewAdmission(work),
		ready:     strategy.NewReady(),
		total:     len(work),
	}
	s.admission.Admit(s.clock, s.ready)
	s.state = s.settle()
	return s, nil
}

// Run validates its inputs, then simulates jobs under policy and returns every
// event in emission order. On error no events are returned.
func Run(jobs []Job, policy Policy, quantum int) ([]Event, error) {
	strategy, err := NewStrategy(policy, quantum)
	if err != nil {
		return nil, err
	}
	sim, err := New(jobs, strategy)
	if err != nil {
		return nil, err
	}
	events := make([]Event, 0, len(jobs))
	for ev := range sim.Events() {
		events = append(events, ev)
	}
	return events, nil
}

// Policy returns the policy the simulation runs under.
func (s *Simulation) Policy() Policy { return s.strategy.Policy() }

// Clock returns the current simulated time.
func (s *Simulation) Clock() int { return s.clock }

// State returns the loop's current phase.
func (s *Simulation) State() State { return s.state }

// Next advances the loop until it produces the next event.
// It returns false when every job has completed.
func (s *Simulation) Next() (Event, bool) {
	for {
		switch s.state {
		case Idle:
			at, ok := s.admission.NextArrival()
			if !ok {
				s.state = Done
				continue
			}
			if at > s.clock {
				s.clock = at
			}
			s.admission.Admit(s.clock, s.ready)
			s.state = s.settle()
		case Select:
			s.running = s.ready.Pop()
			s.state = Execute
		case Execute:
			ev := s.execute(s.running)
			s.running = nil
			s.state = s.settle()
			return ev, true
		default:
			return Event{}, false
		}
	}
}

// Events yields the remaining events of the run.
func (s *Simulation) Events() iter.Seq[Event] {
	return func(yield func(Event) bool) {
		for {
			ev, ok := s.Next()
			if !ok || !yield(ev) {
				return
			}
		}
	}
}

// execute runs j for one slice starting at the current clock.
func (s *Simulation) execute(j *Job) Event {
	d := s.strategy.Slice(j)
	start := s.clock
	waited := start - j.Arrival - (j.Burst - j.Remaining)

	s.clock += d
	j.Remaining -= d

	// Jobs that arrived while j ran queue ahead of j when it is preempted.
	s.admission.Admit(s.clock, s.ready)
	if j.Remaining > 0 {
		s.ready.Push(j)
	} else {
		s.completed++
	}

	ev := Event{
		Seq:       s.seq,
		JobID:     j.ID,
		Arrival:   j.Arrival,
		Burst:     j.Burst,
		Priority:  j.Priority,
		Start:     start,
		End:       s.clock,
		Waiting:   waited,
		Remaining: j.Remaining,
		Completed: j.Remaining == 0,
	}
	s.seq++
	return ev
}

// settle picks the phase that follows admission or execution.
func (s *Simulation) settle() State {
	switch {
	case s.completed == s.total:
		return Done
	case s.ready.Len() > 0:
		return Select
	case s.admission.Pending() > 0:
		return Idle
	default:
		return Done
	}
}
