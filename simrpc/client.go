package simrpc

import (
	"context"
	"io"

	"github.com/adiu19/schedsim/scheduler"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
)

// Client calls a remote Simulator service.
type Client struct {
	conn *grpc.ClientConn
}

// Dial creates a client for target. The connection is plaintext unless opts
// supply transport credentials of their own.
func Dial(target string, opts ...grpc.DialOption) (*Client, error) {
	opts = append([]grpc.DialOption{grpc.WithTransportCredentials(insecure.NewCredentials())}, opts...)
	conn, err := grpc.NewClient(target, opts...)
	if err != nil {
		return nil, err
	}
	return &Client{conn: conn}, nil
}

// Simulate runs req remotely and collects the streamed events.
// runID is the id the server assigned to the run.
func (c *Client) Simulate(ctx context.Context, req *SimulateRequest) (runID string, events []scheduler.Event, err error) {
	stream, err := c.conn.NewStream(ctx, &serviceDesc.Streams[0], simulateMethod, grpc.CallContentSubtype(codecName))
	if err != nil {
		return "", nil, err
	}
	if err := stream.SendMsg(req); err != nil {
		return "", nil, err
	}
	if err := stream.CloseSend(); err != nil {
		return "", nil, err
	}

	for {
		var ev scheduler.Event
		err := stream.RecvMsg(&ev)
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", nil, err
		}
		events = append(events, ev)
	}

	if md, err := stream.Header(); err == nil {
		if ids := md.Get(RunIDHeader); len(ids) > 0 {
			runID = ids[0]
		}
	}
	return runID, events, nil
}

// Close releases the underlying connection.
func (c *Client) Close() error {
	return c.conn.Close()
}
