// Package trace renders scheduler events for people to read.
package trace

import (
	"fmt"
	"io"
	"strings"

	"github.com/adiu19/schedsim/scheduler"
	"github.com/kr/pretty"
)

// Format selects a renderer.
type Format string

const (
	FormatLog   Format = "log"
	FormatTable Format = "table"
	FormatGantt Format = "gantt"
	FormatDump  Format = "dump"
)

// ParseFormat validates a format name.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case FormatLog, FormatTable, FormatGantt, FormatDump:
		return f, nil
	default:
		return "", fmt.Errorf("unknown format %q (want log, table, gantt or dump)", s)
	}
}

// Write renders one run in format f.
func Write(w io.Writer, f Format, policy scheduler.Policy, quantum int, events []scheduler.Event) error {
	switch f {
	case FormatLog:
		return WriteLog(w, policy, quantum, events)
	case FormatTable:
		return WriteTable(w, scheduler.Summarize(policy, quantum, events))
	case FormatGantt:
		return WriteGantt(w, policy, events)
	case FormatDump:
		return Dump(w, events)
	default:
		return fmt.Errorf("unknown format %q", f)
	}
}

// WriteLog prints the classic per-policy execution log.
func WriteLog(w io.Writer, policy scheduler.Policy, quantum int, events []scheduler.Event) error {
	b := &strings.Builder{}
	switch policy {
	case scheduler.FCFS:
		b.WriteString("FCFS Scheduling Order:\n")
		for _, ev := range events {
			fmt.Fprintf(b, "Job %s starts at time %d, finishes at time %d, Waiting Time: %d, Turnaround Time: %d\n",
				ev.JobID, ev.Start, ev.End, ev.Waiting, ev.Turnaround())
		}
	case scheduler.SJN:
		b.WriteString("SJN Scheduling Order:\n")
		for _, ev := range events {
			fmt.Fprintf(b, "Job %s (Arrival: %d, Burst: %d) executed at time %d\n",
				ev.JobID, ev.Arrival, ev.Burst, ev.End)
		}
	case scheduler.Priority:
		b.WriteString("Priority Scheduling Order:\n")
		for _, ev := range events {
			fmt.Fprintf(b, "Job %s (Priority: %d, Arrival: %d, Burst: %d) executed at time %d\n",
				ev.JobID, ev.Priority, ev.Arrival, ev.Burst, ev.End)
		}
	case scheduler.RoundRobin:
		fmt.Fprintf(b, "Round Robin Scheduling Order (Quantum: %d):\n", quantum)
		for _, ev := range events {
			fmt.Fprintf(b, "Job %s executed for %d units. Remaining burst time: %d at time %d\n",
				ev.JobID, ev.Duration(), ev.Remaining, ev.End)
			if ev.Completed {
				fmt.Fprintf(b, "Job %s finished at time %d\n", ev.JobID, ev.End)
			}
		}
	default:
		return fmt.Errorf("no log format for policy %s", policy)
	}
	_, err := io.WriteString(w, b.String())
	return err
}

// WriteTable prints per-job statistics followed by the run's averages.
func WriteTable(w io.Writer, sum scheduler.Summary) error {
	b := &strings.Builder{}
	fmt.Fprintf(b, "\n=== %s ===\n", title(sum.Policy, sum.Quantum))
	fmt.Fprintf(b, "%-6s %-8s %-6s %-8s %-6s %-10s %-8s %-10s %-8s\n",
		"Job", "Arrival", "Burst", "Priority", "Start", "Complete", "Waiting", "Turnaround", "Response")
	b.WriteString(strings.Repeat("-", 80) + "\n")
	for _, js := range sum.Jobs {
		fmt.Fprintf(b, "%-6s %-8d %-6d %-8d %-6d %-10d %-8d %-10d %-8d\n",
			js.ID, js.Arrival, js.Burst, js.Priority, js.Start, js.Completion,
			js.Waiting, js.Turnaround, js.Response)
	}
	fmt.Fprintf(b, "\nAverage Waiting Time: %.2f\n", sum.AvgWaiting)
	fmt.Fprintf(b, "Average Turnaround Time: %.2f\n", sum.AvgTurnaround)
	fmt.Fprintf(b, "Average Response Time: %.2f\n", sum.AvgResponse)
	fmt.Fprintf(b, "Makespan: %d (idle %d)\n", sum.Makespan, sum.IdleTime)
	fmt.Fprintf(b, "Context Switches: %d\n", sum.ContextSwitches)
	_, err := io.WriteString(w, b.String())
	return err
}

// WriteGantt draws one cell per slice, each at least as wide as its label,
// with end times underneath. Idle gaps are drawn as "--".
func WriteGantt(w io.Writer, policy scheduler.Policy, events []scheduler.Event) error {
	bar := &strings.Builder{}
	ticks := &strings.Builder{}
	bar.WriteString("|")
	ticks.WriteString("0")

	cell := func(label string, width, end int) {
		if width < len(label) {
			width = len(label)
		}
		pad := width - len(label)
		bar.WriteString(strings.Repeat(" ", pad/2) + label + strings.Repeat(" ", pad-pad/2) + "|")
		endStr := fmt.Sprint(end)
		ticks.WriteString(strings.Repeat(" ", max(width+1-len(endStr), 0)) + endStr)
	}

	clock := 0
	for _, ev := range events {
		if ev.Start > clock {
			cell("--", ev.Start-clock, ev.Start)
		}
		cell("J"+ev.JobID, ev.Duration(), ev.End)
		clock = ev.End
	}

	_, err := fmt.Fprintf(w, "\nGantt Chart for %s:\n%s\n%s\n", policy.Title(), bar.String(), ticks.String())
	return err
}

// WriteComparison prints one row of averages per policy.
func WriteComparison(w io.Writer, sums []scheduler.Summary) error {
	b := &strings.Builder{}
	b.WriteString("\nPolicy Comparison\n")
	fmt.Fprintf(b, "%-28s %-10s %-10s %-12s %-10s\n", "Policy", "Avg Wait", "Avg TAT", "Avg Response", "Switches")
	b.WriteString(strings.Repeat("-", 74) + "\n")
	for _, s := range sums {
		fmt.Fprintf(b, "%-28s %-10.2f %-10.2f %-12.2f %-10d\n",
			title(s.Policy, s.Quantum), s.AvgWaiting, s.AvgTurnaround, s.AvgResponse, s.ContextSwitches)
	}
	_, err := io.WriteString(w, b.String())
	return err
}

// Dump pretty-prints any value, typically an event slice or a summary.
func Dump(w io.Writer, v any) error {
	_, err := pretty.Fprintf(w, "%# v\n", v)
	return err
}

func title(p scheduler.Policy, quantum int) string {
	if p == scheduler.RoundRobin {
		return fmt.Sprintf("%s (Quantum=%d)", p.Title(), quantum)
	}
	return p.Title()
}
