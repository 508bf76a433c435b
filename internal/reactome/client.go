package reactome

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

var (
	// ErrNotFound means the web service has no object with the requested id.
	ErrNotFound = errors.New("reactome: entity not found")
	// ErrUnavailable covers transport failures and unusable responses.
	ErrUnavailable = errors.New("reactome: service unavailable")
)

const (
	DefaultBaseURL      = "http://reactome.org/ReactomeRESTfulAPI/RESTfulWS"
	DefaultBrowserURL   = "http://www.reactome.org/PathwayBrowser/#"
	defaultFetchTimeout = 60 * time.Second
)

// Fetcher supplies the raw record for an entity id.
type Fetcher interface {
	Fetch(ctx context.Context, id string) (*Record, error)
}

// HierarchySource supplies the pathway hierarchy XML document of a species.
type HierarchySource interface {
	Hierarchy(ctx context.Context, species string) ([]byte, error)
}

// Source is everything a conversion run needs from the pathway database.
type Source interface {
	Fetcher
	HierarchySource
}

type ClientOptions struct {
	BaseURL string
	Timeout time.Duration
}

// Client talks to the Reactome RESTful web service.
type Client struct {
	client  *http.Client
	baseURL string
}

func NewClient(opts ClientOptions) *Client {
	base := strings.TrimRight(strings.TrimSpace(opts.BaseURL), "/")
	if base == "" {
		base = DefaultBaseURL
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = defaultFetchTimeout
	}
	return &Client{
		client:  &http.Client{Timeout: timeout},
		baseURL: base,
	}
}

// Fetch retrieves one database object by id.
func (c *Client) Fetch(ctx context.Context, id string) (*Record, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, fmt.Errorf("%w: empty id", ErrNotFound)
	}
	raw, err := c.get(ctx, c.baseURL+"/queryById/DatabaseObject/"+url.PathEscape(id))
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", id, err)
	}
	if len(strings.TrimSpace(string(raw))) == 0 {
		return nil, fmt.Errorf("fetch %s: %w", id, ErrNotFound)
	}

	rec, err := DecodeRecord(raw)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w: %v", id, ErrUnavailable, err)
	}
	if rec.ID == "" {
		return nil, fmt.Errorf("fetch %s: %w", id, ErrNotFound)
	}
	return rec, nil
}

// Hierarchy retrieves the pathway hierarchy of a species as XML.
func (c *Client) Hierarchy(ctx context.Context, species string) ([]byte, error) {
	species = strings.ToLower(strings.TrimSpace(species))
	if species == "" {
		return nil, fmt.Errorf("hierarchy: species is required")
	}
	raw, err := c.get(ctx, c.baseURL+"/pathwayHierarchy/"+url.PathEscape(species))
	if err != nil {
		return nil, fmt.Errorf("hierarchy %q: %w", species, err)
	}
	return raw, nil
}

func (c *Client) get(ctx context.Context, endpoint string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json, application/xml;q=0.9")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	if resp.StatusCode == http.StatusNotFound {
		return nil, ErrNotFound
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%w: status %d: %s", ErrUnavailable, resp.StatusCode, strings.TrimSpace(string(raw)))
	}
	return raw, nil
}
