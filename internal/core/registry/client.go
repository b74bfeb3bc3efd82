package registry

import (
	"context"
	"fmt"
	"net/http"

	"github.com/distribution/reference"
	ocispec "github.com/opencontainers/image-spec/specs-go/v1"
	"oras.land/oras-go/v2/registry/remote"
	"oras.land/oras-go/v2/registry/remote/auth"
	"oras.land/oras-go/v2/registry/remote/retry"
)

const (
	dockerHubDomain   = "docker.io"
	dockerHubRegistry = "registry-1.docker.io"

	mediaTypeDockerManifest     = "application/vnd.docker.distribution.manifest.v2+json"
	mediaTypeDockerManifestList = "application/vnd.docker.distribution.manifest.list.v2+json"
)

// Client resolves references anonymously; no credentials are ever read.
type Client struct {
	plainHTTP  bool
	httpClient *http.Client
}

type Option func(*Client)

// WithPlainHTTP talks to the registry over HTTP instead of HTTPS.
func WithPlainHTTP(plain bool) Option {
	return func(c *Client) {
		c.plainHTTP = plain
	}
}

func NewClient(opts ...Option) *Client {
	c := &Client{
		httpClient: retry.DefaultClient,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Image is a resolved image reference.
type Image struct {
	Reference  string
	Descriptor ocispec.Descriptor
}

// Kind names the manifest flavour behind the descriptor's media type.
func (i Image) Kind() string {
	switch i.Descriptor.MediaType {
	case ocispec.MediaTypeImageIndex:
		return "OCI image index"
	case ocispec.MediaTypeImageManifest:
		return "OCI image manifest"
	case mediaTypeDockerManifestList:
		return "Docker manifest list"
	case mediaTypeDockerManifest:
		return "Docker image manifest"
	default:
		return "unknown"
	}
}

// Resolve looks up the manifest descriptor for ref without downloading any
// layers. Short Docker Hub names such as "nginx" are normalised first.
func (c *Client) Resolve(ctx context.Context, ref string) (*Image, error) {
	named, err := NormalizeReference(ref)
	if err != nil {
		return nil, err
	}

	repo, err := c.createRepository(named)
	if err != nil {
		return nil, err
	}

	desc, err := repo.Resolve(ctx, repo.Reference.Reference)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %s: %w", named, err)
	}

	return &Image{
		Reference:  named,
		Descriptor: desc,
	}, nil
}

// NormalizeReference expands ref to its fully qualified form with a tag or
// digest, e.g. "nginx" becomes "docker.io/library/nginx:latest".
func NormalizeReference(ref string) (string, error) {
	named, err := reference.ParseDockerRef(ref)
	if err != nil {
		return "", fmt.Errorf("invalid image reference %q: %w", ref, err)
	}
	return named.String(), nil
}

func (c *Client) createRepository(ref string) (*remote.Repository, error) {
	repo, err := remote.NewRepository(ref)
	if err != nil {
		return nil, fmt.Errorf("failed to create repository: %w", err)
	}

	if repo.Reference.Registry == dockerHubDomain {
		repo.Reference.Registry = dockerHubRegistry
	}

	repo.PlainHTTP = c.plainHTTP
	repo.Client = &auth.Client{
		Client: c.httpClient,
		Cache:  auth.NewCache(),
	}
	return repo, nil
}
