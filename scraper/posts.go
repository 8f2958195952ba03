package scraper

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"

	"vibes-bot/models"
)

// ErrMalformedResponse is returned when the scraper answers with data that
// cannot be read as a list of posts.
var ErrMalformedResponse = errors.New("malformed scraper response")

// FetchRequest holds the parameters sent with every GetPosts call.
type FetchRequest struct {
	Page         string
	Credentials  string
	Pages        int
	PostsPerPage int
}

// FetchOption mutates a FetchRequest.
type FetchOption func(*FetchRequest)

func WithCredentials(blob string) FetchOption {
	return func(r *FetchRequest) {
		r.Credentials = blob
	}
}

func WithPages(pages int) FetchOption {
	return func(r *FetchRequest) {
		r.Pages = pages
	}
}

func WithPostsPerPage(n int) FetchOption {
	return func(r *FetchRequest) {
		r.PostsPerPage = n
	}
}

// PostClient fetches the posts of one page.
type PostClient struct {
	*Client
	request FetchRequest
}

// NewPostClient creates a client fetching page. By default it asks for one
// page of 50 posts.
func NewPostClient(serverAddress string, timeout time.Duration, page string, opts []FetchOption, dialOpts ...grpc.DialOption) (*PostClient, error) {
	client, err := NewClient(serverAddress, timeout, dialOpts...)
	if err != nil {
		return nil, err
	}

	req := FetchRequest{Page: page, Pages: 1, PostsPerPage: 50}
	for _, opt := range opts {
		opt(&req)
	}

	return &PostClient{Client: client, request: req}, nil
}

// FetchPosts asks the scraper for the configured page with full comment
// threads and without reactors.
func (pc *PostClient) FetchPosts(ctx context.Context) ([]models.RawPost, error) {
	req, err := pc.request.toStruct()
	if err != nil {
		return nil, fmt.Errorf("build scraper request: %w", err)
	}

	resp, err := pc.GetPosts(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("query scraper at %s: %w", pc.ServerAddress(), err)
	}

	posts, err := DecodePosts(resp)
	if err != nil {
		return nil, err
	}
	slog.InfoContext(ctx, "Fetched posts", "page", pc.request.Page, "posts", len(posts))
	return posts, nil
}

func (r FetchRequest) toStruct() (*structpb.Struct, error) {
	return structpb.NewStruct(map[string]any{
		"page":           r.Page,
		"credentials":    r.Credentials,
		"pages":          r.Pages,
		"posts_per_page": r.PostsPerPage,
		"options": map[string]any{
			"comments":             true,
			"allow_extra_requests": true,
			"reactors":             false,
			"progress":             false,
		},
	})
}

// DecodePosts reads the posts list out of a GetPosts response.
func DecodePosts(resp *structpb.Struct) ([]models.RawPost, error) {
	field, ok := resp.GetFields()["posts"]
	if !ok {
		return nil, fmt.Errorf("%w: no posts field", ErrMalformedResponse)
	}
	if _, isList := field.GetKind().(*structpb.Value_ListValue); !isList {
		return nil, fmt.Errorf("%w: posts is not a list", ErrMalformedResponse)
	}

	raw, err := protojson.Marshal(resp)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}

	var payload struct {
		Posts []models.RawPost `json:"posts"`
	}
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	return payload.Posts, nil
}

// LoadCredentials reads the opaque credential blob handed to the scraper.
// An empty path means no credentials.
func LoadCredentials(path string) (string, error) {
	if path == "" {
		return "", nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read credentials file %s: %w", path, err)
	}
	return strings.TrimSpace(string(data)), nil
}
