// Package simrpc exposes the scheduler over a server-streaming gRPC method.
//
// The service is declared by hand instead of through protoc: requests and
// events are JSON-encoded Go structs, carried by the codec in codec.go.
package simrpc

import (
	"errors"
	"log"

	"github.com/adiu19/schedsim/config"
	"github.com/adiu19/schedsim/scheduler"
	"github.com/google/uuid"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

const (
	serviceName    = "schedsim.Simulator"
	simulateMethod = "/" + serviceName + "/Simulate"

	// RunIDHeader carries the server-assigned run id in the response header.
	RunIDHeader = "x-run-id"
)

// SimulateRequest selects a policy and the jobs to run it over.
// An empty job list runs the default sample workload.
type SimulateRequest struct {
	Policy  string           `json:"policy"`
	Quantum int              `json:"quantum,omitempty"`
	Jobs    []config.JobSpec `json:"jobs,omitempty"`
}

// SimulatorServer is the server-side contract of the Simulator service.
type SimulatorServer interface {
	Simulate(req *SimulateRequest, stream grpc.ServerStream) error
}

var serviceDesc = grpc.ServiceDesc{
	ServiceName: serviceName,
	HandlerType: (*SimulatorServer)(nil),
	Methods:     []grpc.MethodDesc{},
	Streams: []grpc.StreamDesc{
		{
			StreamName:    "Simulate",
			Handler:       simulateHandler,
			ServerStreams: true,
		},
	},
	Metadata: "simrpc",
}

func simulateHandler(srv any, stream grpc.ServerStream) error {
	req := new(SimulateRequest)
	if err := stream.RecvMsg(req); err != nil {
		return err
	}
	return srv.(SimulatorServer).Simulate(req, stream)
}

// Register attaches the Simulator service to a gRPC server.
func Register(s *grpc.Server, srv SimulatorServer) {
	s.RegisterService(&serviceDesc, srv)
}

// Server runs one simulation per Simulate call and streams its events.
type Server struct{}

// NewServer creates a Simulator service implementation.
func NewServer() *Server {
	return &Server{}
}

// Simulate validates the request, then sends every event of the run in order.
// Invalid requests fail with InvalidArgument before any event is sent.
func (s *Server) Simulate(req *SimulateRequest, stream grpc.ServerStream) error {
	runID := uuid.NewString()

	sim, policy, err := prepare(req)
	if err != nil {
		log.Printf("[simrpc] run=%s rejected: %v", runID, err)
		return toStatus(err)
	}
	if err := stream.SendHeader(metadata.Pairs(RunIDHeader, runID)); err != nil {
		return err
	}
	log.Printf("[simrpc] run=%s policy=%s quantum=%d jobs=%d", runID, policy, req.Quantum, len(req.Jobs))

	sent := 0
	for ev := range sim.Events() {
		if err := stream.Context().Err(); err != nil {
			return status.FromContextError(err).Err()
		}
		if err := stream.SendMsg(&ev); err != nil {
			log.Printf("[simrpc] run=%s send failed after %d events: %v", runID, sent, err)
			return err
		}
		sent++
	}
	log.Printf("[simrpc] run=%s done events=%d clock=%d", runID, sent, sim.Clock())
	return nil
}

func prepare(req *SimulateRequest) (*scheduler.Simulation, scheduler.Policy, error) {
	policy, err := scheduler.ParsePolicy(req.Policy)
	if err != nil {
		return nil, 0, err
	}
	strategy, err := scheduler.NewStrategy(policy, req.Quantum)
	if err != nil {
		return nil, 0, err
	}
	specs := req.Jobs
	if len(specs) == 0 {
		specs = config.DefaultJobs()
	}
	sim, err := scheduler.New(config.ToJobs(specs), strategy)
	if err != nil {
		return nil, 0, err
	}
	return sim, policy, nil
}

// toStatus maps scheduler errors onto gRPC status codes.
func toStatus(err error) error {
	switch {
	case errors.Is(err, scheduler.ErrInvalidInput),
		errors.Is(err, scheduler.ErrInvalidParameter),
		errors.Is(err, scheduler.ErrUnknownPolicy):
		return status.Error(codes.InvalidArgument, err.Error())
	default:
		return status.Error(codes.Internal, err.Error())
	}
}
