package simrpc

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/adiu19/schedsim/config"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"
)

// startServer serves the Simulator over an in-memory listener and returns a client for it.
func startServer(t *testing.T) *Client {
	t.Helper()
	lis := bufconn.Listen(1 << 20)
	s := grpc.NewServer()
	Register(s, NewServer())
	go s.Serve(lis)
	t.Cleanup(s.Stop)

	client, err := Dial("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}))
	if err != nil {
		t.Fatalf("Dial: %v", err)
	}
	t.Cleanup(func() { client.Close() })
	return client
}

func TestSimulate_StreamsRoundRobinSlices(t *testing.T) {
	client := startServer(t)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	runID, events, err := client.Simulate(ctx, &SimulateRequest{
		Policy:  "rr",
		Quantum: 2,
		Jobs: []config.JobSpec{
			{ID: "1", Arrival: 0, Burst: 4},
			{ID: "2", Arrival: 1, Burst: 3},
		},
	})
	if err != nil {
		t.Fatalf("Simulate: %v", err)
	}
	if runID == "" {
		t.Error("expected a run id header")
	}

	want := []struct {
		id         string
		start, end int
		completed  bool
	}{
		{"1", 0, 2, false},
		{"2", 2, 4, false},
		{"1", 4, 6, true},
		{"2", 6, 7, true},
	}
	if len(events) != len(want) {
		t.Fatalf("expected %d events, got %d", len(want), len(events))
	}
	for i, w := range want {
		ev := events[i]
		if ev.JobID != w.id || ev.Start != w.start || ev.End != w.end || ev.Completed != w.completed {
			t.Errorf("event %d: expected %+v, got %+v", i, w, ev)
		}
	}
}

func TestSimulate_DefaultJobs(t *testing.T) {
	client := startServer(t)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	_, events, err := client.Simulate(ctx, &SimulateRequest{Policy: "fcfs"})
	if err != nil {
		t.Fatalf("Simulate: %v", err)
	}
	if len(events) != len(config.DefaultJobs()) {
		t.Errorf("expected one event per default job, got %d", len(events))
	}
}

func TestSimulate_InvalidArgument(t *testing.T) {
	client := startServer(t)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	cases := map[string]*SimulateRequest{
		"zero quantum":   {Policy: "rr", Quantum: 0},
		"unknown policy": {Policy: "lottery"},
		"zero burst":     {Policy: "sjn", Jobs: []config.JobSpec{{ID: "a", Burst: 0}}},
	}
	for name, req := range cases {
		_, events, err := client.Simulate(ctx, req)
		if status.Code(err) != codes.InvalidArgument {
			t.Errorf("%s: expected InvalidArgument, got %v", name, err)
		}
		if len(events) != 0 {
			t.Errorf("%s: expected no events, got %d", name, len(events))
		}
	}
}
