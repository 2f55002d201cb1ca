package scheduler

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

var (
	// ErrInvalidInput is returned when a job record cannot be simulated.
	ErrInvalidInput = errors.New("invalid input")
	// ErrInvalidParameter is returned for a Round Robin quantum that is not positive.
	ErrInvalidParameter = errors.New("invalid parameter")
	// ErrUnknownPolicy is returned for a policy outside the supported set.
	ErrUnknownPolicy = errors.New("unknown policy")
)

// Validate checks every job before a run starts. The first violation aborts the run.
func Validate(jobs []Job) error {
	seen := make(map[string]struct{}, len(jobs))
	for i, j := range jobs {
		if j.ID == "" {
			return errors.Wrapf(ErrInvalidInput, "job at index %d has an empty id", i)
		}
		if _, dup := seen[j.ID]; dup {
			return errors.Wrapf(ErrInvalidInput, "duplicate job id %q", j.ID)
		}
		seen[j.ID] = struct{}{}
		if j.Burst <= 0 {
			return errors.Wrapf(ErrInvalidInput, "job %q: burst time %d must be positive", j.ID, j.Burst)
		}
		if j.Arrival < 0 {
			return errors.Wrapf(ErrInvalidInput, "job %q: arrival time %d must not be negative", j.ID, j.Arrival)
		}
	}
	return nil
}

// ParsePolicy maps a policy name or its menu number (1-4) to a Policy.
func ParsePolicy(s string) (Policy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "fcfs", "fifo":
		return FCFS, nil
	case "sjn", "sjf":
		return SJN, nil
	case "priority", "prio":
		return Priority, nil
	case "rr", "round-robin", "roundrobin":
		return RoundRobin, nil
	}
	if n, err := strconv.Atoi(strings.TrimSpace(s)); err == nil && n >= 1 && n <= len(Policies) {
		return Policies[n-1], nil
	}
	return 0, errors.Wrapf(ErrUnknownPolicy, "%q", s)
}
