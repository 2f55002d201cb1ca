// Command schedsim runs a scheduling simulation locally or against a schedsim server.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"time"

	"github.com/adiu19/schedsim/config"
	"github.com/adiu19/schedsim/scheduler"
	"github.com/adiu19/schedsim/simrpc"
	"github.com/adiu19/schedsim/trace"
)

type options struct {
	configPath string
	policy     string
	quantum    int
	format     string
	remote     string
}

func main() {
	var opts options
	flag.StringVar(&opts.configPath, "config", "", "Path to YAML config file (optional)")
	flag.StringVar(&opts.policy, "policy", "", "Policy: fcfs, sjn, priority, rr, 1-4, or all")
	flag.IntVar(&opts.quantum, "quantum", 0, "Round Robin time quantum")
	flag.StringVar(&opts.format, "format", "log", "Output: log, table, gantt or dump")
	flag.StringVar(&opts.remote, "remote", "", "Run on a schedsim server at this gRPC address")
	flag.Parse()

	if err := run(opts, os.Stdin, os.Stdout); err != nil {
		log.Fatalf("schedsim: %v", err)
	}
}

func run(opts options, in io.Reader, out io.Writer) error {
	cfg := config.Default()
	if opts.configPath != "" {
		var err error
		cfg, err = config.Load(opts.configPath)
		if err != nil {
			return err
		}
	}
	format, err := trace.ParseFormat(opts.format)
	if err != nil {
		return err
	}

	policyName := opts.policy
	if policyName == "" {
		policyName = cfg.Policy
	}
	quantum := opts.quantum
	if quantum == 0 {
		quantum = cfg.Quantum
	}
	jobs := cfg.SchedulerJobs()
	m := newMenu(in, out)

	if strings.EqualFold(policyName, "all") {
		if quantum == 0 {
			if quantum, err = m.chooseQuantum(); err != nil {
				return err
			}
		}
		sums, err := scheduler.Compare(jobs, quantum)
		if err != nil {
			return err
		}
		for _, s := range sums {
			if err := trace.WriteTable(out, s); err != nil {
				return err
			}
		}
		return trace.WriteComparison(out, sums)
	}

	var policy scheduler.Policy
	if policyName == "" {
		policy, err = m.choosePolicy()
	} else {
		policy, err = scheduler.ParsePolicy(policyName)
	}
	if err != nil {
		return err
	}
	if policy == scheduler.RoundRobin && quantum == 0 {
		if quantum, err = m.chooseQuantum(); err != nil {
			return err
		}
	}

	var events []scheduler.Event
	if opts.remote != "" {
		events, err = simulateRemote(opts.remote, policy, quantum, cfg.Jobs)
	} else {
		events, err = scheduler.Run(jobs, policy, quantum)
	}
	if err != nil {
		return err
	}
	return trace.Write(out, format, policy, quantum, events)
}

func simulateRemote(addr string, policy scheduler.Policy, quantum int, jobs []config.JobSpec) ([]scheduler.Event, error) {
	client, err := simrpc.Dial(addr)
	if err != nil {
		return nil, fmt.Errorf("dial %s: %w", addr, err)
	}
	defer client.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	runID, events, err := client.Simulate(ctx, &simrpc.SimulateRequest{
		Policy:  policy.String(),
		Quantum: quantum,
		Jobs:    jobs,
	})
	if err != nil {
		return nil, err
	}
	log.Printf("[schedsim] remote run %s: %d events", runID, len(events))
	return events, nil
}
