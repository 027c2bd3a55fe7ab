package dataset

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/huangsam/motionchart/internal/contract"
	"github.com/huangsam/motionchart/schema"
)

// maxBodyBytes caps how much of a remote dataset is read.
const maxBodyBytes = 64 << 20

// StaticProvider hands out a dataset that is already in memory.
type StaticProvider struct {
	Dataset *schema.Dataset
	Name    string
}

var _ contract.DatasetProvider = &StaticProvider{} // Compile-time check

// Load implements the DatasetProvider interface.
func (p *StaticProvider) Load(ctx context.Context) (*schema.Dataset, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if p.Dataset.Len() == 0 {
		return nil, contract.ErrNoSlices
	}
	return p.Dataset, nil
}

// Source implements the DatasetProvider interface.
func (p *StaticProvider) Source() string {
	if p.Name == "" {
		return "static"
	}
	return p.Name
}

// FileProvider reads a dataset from disk. Files ending in .yaml or .yml are
// decoded as YAML, everything else as JSON.
type FileProvider struct {
	Path string
}

var _ contract.DatasetProvider = &FileProvider{} // Compile-time check

// Load implements the DatasetProvider interface.
func (p *FileProvider) Load(ctx context.Context) (*schema.Dataset, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f, err := os.Open(p.Path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	switch strings.ToLower(filepath.Ext(p.Path)) {
	case ".yaml", ".yml":
		return DecodeYAML(f)
	default:
		return DecodeJSON(f)
	}
}

// Source implements the DatasetProvider interface.
func (p *FileProvider) Source() string {
	return p.Path
}

// HTTPProvider fetches a dataset with a single GET request.
type HTTPProvider struct {
	URL     string
	Client  *http.Client
	Timeout time.Duration // Applied on top of ctx when positive
}

var _ contract.DatasetProvider = &HTTPProvider{} // Compile-time check

// NewHTTPProvider resolves the default data path against baseURL.
func NewHTTPProvider(baseURL string, timeout time.Duration) (*HTTPProvider, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}
	if !strings.HasSuffix(base.Path, "/") {
		base.Path += "/"
	}
	ref, _ := url.Parse(contract.DefaultDataPath)
	return &HTTPProvider{URL: base.ResolveReference(ref).String(), Timeout: timeout}, nil
}

// Load implements the DatasetProvider interface.
func (p *HTTPProvider) Load(ctx context.Context) (*schema.Dataset, error) {
	if p.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.Timeout)
		defer cancel()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.URL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	client := p.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %s", resp.Status)
	}
	return DecodeJSON(io.LimitReader(resp.Body, maxBodyBytes))
}

// Source implements the DatasetProvider interface.
func (p *HTTPProvider) Source() string {
	return p.URL
}

// NewProvider picks the provider for a validated config:
// an explicit URL or file path first, then the default data path under the
// base URL or the base directory.
func NewProvider(cfg *contract.Config) (contract.DatasetProvider, error) {
	switch {
	case contract.IsRemotePath(cfg.DatasetPath):
		return &HTTPProvider{URL: cfg.DatasetPath, Timeout: cfg.FetchTimeout}, nil
	case cfg.DatasetPath != "":
		return &FileProvider{Path: cfg.DatasetPath}, nil
	case cfg.BaseURL != "":
		return NewHTTPProvider(cfg.BaseURL, cfg.FetchTimeout)
	default:
		return &FileProvider{Path: filepath.Join(cfg.BaseDir, filepath.FromSlash(contract.DefaultDataPath))}, nil
	}
}
