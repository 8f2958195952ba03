// Package scraper talks to the page-scraper sidecar over gRPC.
package scraper

import (
	"context"
	"log/slog"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/protobuf/types/known/structpb"
)

// GetPostsMethod is the full gRPC method name served by the scraper sidecar.
// Request and response are google.protobuf.Struct messages.
const GetPostsMethod = "/scraper.v1.PageScraper/GetPosts"

// Client wraps the gRPC connection to the scraper.
type Client struct {
	conn          *grpc.ClientConn
	serverAddress string
	timeout       time.Duration
}

// NewClient creates a client for serverAddress. Extra dial options are
// appended after the insecure transport credentials.
func NewClient(serverAddress string, timeout time.Duration, dialOpts ...grpc.DialOption) (*Client, error) {
	opts := append([]grpc.DialOption{grpc.WithTransportCredentials(insecure.NewCredentials())}, dialOpts...)
	conn, err := grpc.NewClient(serverAddress, opts...)
	if err != nil {
		return nil, err
	}

	return &Client{
		conn:          conn,
		serverAddress: serverAddress,
		timeout:       timeout,
	}, nil
}

// Close closes the gRPC connection.
func (c *Client) Close() error {
	if c.conn != nil {
		return c.conn.Close()
	}
	return nil
}

func (c *Client) ServerAddress() string {
	return c.serverAddress
}

// GetPosts performs one raw GetPosts call.
func (c *Client) GetPosts(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	slog.DebugContext(ctx, "Querying scraper", "address", c.serverAddress, "page", req.GetFields()["page"].GetStringValue())

	resp := &structpb.Struct{}
	if err := c.conn.Invoke(ctx, GetPostsMethod, req, resp); err != nil {
		slog.WarnContext(ctx, "Scraper call failed", "address", c.serverAddress, "error", err)
		return nil, err
	}
	return resp, nil
}
