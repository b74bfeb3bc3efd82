package cli

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/opencontainers/go-digest"
	ocispec "github.com/opencontainers/image-spec/specs-go/v1"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LoriKarikari/devops/internal/config"
	"github.com/LoriKarikari/devops/internal/core/tool"
)

func TestDockerBuild(t *testing.T) {
	runner := &fakeRunner{result: tool.Result{Stdout: "Successfully built 1a2b3c\nSuccessfully tagged test-image:latest\n"}}

	res := executeWith(t, runner, "docker", "build", "-n", "test-image")
	require.NoError(t, res.err)

	assert.Contains(t, res.stdout, "✓ Built image: test-image")
	assert.Contains(t, res.stdout, "Successfully tagged test-image:latest")

	require.Len(t, runner.calls, 1)
	assert.Equal(t, "docker", runner.calls[0].tool.Command)
	assert.Equal(t, []string{"build", "-t", "test-image", "."}, runner.calls[0].args)
}

func TestDockerBuildWithPath(t *testing.T) {
	runner := &fakeRunner{}

	res := executeWith(t, runner, "docker", "build", "--name", "api:1.2.0", "--path", "./services/api")
	require.NoError(t, res.err)

	require.Len(t, runner.calls, 1)
	assert.Equal(t, []string{"build", "-t", "api:1.2.0", "./services/api"}, runner.calls[0].args)
	assert.Equal(t, "✓ Built image: api:1.2.0\n", res.stdout)
}

func TestDockerBuildRequiresName(t *testing.T) {
	runner := &fakeRunner{}

	res := executeWith(t, runner, "docker", "build")
	require.Error(t, res.err)

	assert.Contains(t, res.err.Error(), `required flag(s) "name" not set`)
	assert.Empty(t, runner.calls, "no process may be launched")
}

func TestDockerBuildRejectsInvalidName(t *testing.T) {
	tests := []struct {
		name  string
		image string
	}{
		{name: "upper case", image: "MyImage"},
		{name: "shell metacharacters", image: "app; rm -rf /"},
		{name: "blank", image: "  "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			runner := &fakeRunner{}

			res := executeWith(t, runner, "docker", "build", "-n", tt.image)
			require.Error(t, res.err)
			assert.Empty(t, runner.calls)
		})
	}
}

func TestDockerBuildFailure(t *testing.T) {
	runner := &fakeRunner{err: &tool.ExitError{Tool: "docker", Code: 1, Stderr: "unable to prepare context: path \"nope\" not found"}}

	res := executeWith(t, runner, "docker", "build", "-n", "test-image", "-p", "nope")
	require.NoError(t, res.err, "external failures must not change the exit status")

	assert.Equal(t, "✗ Error: docker exited with code 1: unable to prepare context: path \"nope\" not found\n", res.stdout)
	assert.NotContains(t, res.stdout, "Built image")
	assert.NotContains(t, res.stdout, "goroutine")
}

func TestDockerDeploy(t *testing.T) {
	runner := &fakeRunner{result: tool.Result{Stdout: "4f1c2e9a8b7d\n"}}

	res := executeWith(t, runner, "docker", "deploy", "-i", "test-image:latest")
	require.NoError(t, res.err)

	assert.Equal(t, "✓ Deployed container: 4f1c2e9a8b7d\n", res.stdout)
	require.Len(t, runner.calls, 1)
	assert.Equal(t, []string{"run", "-d", "test-image:latest"}, runner.calls[0].args)
}

func TestDockerDeployAcceptsImageID(t *testing.T) {
	id := strings.Repeat("ab", 32)

	tests := []struct {
		name  string
		image string
	}{
		{"full image id", id},
		{"digest", "sha256:" + id},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			runner := &fakeRunner{}

			res := executeWith(t, runner, "docker", "deploy", "-i", tt.image)
			require.NoError(t, res.err)

			require.Len(t, runner.calls, 1)
			assert.Equal(t, []string{"run", "-d", tt.image}, runner.calls[0].args)
		})
	}
}

func TestDockerDeployRejectsInvalidImage(t *testing.T) {
	runner := &fakeRunner{}

	res := executeWith(t, runner, "docker", "deploy", "-i", "Web App")
	require.Error(t, res.err)
	assert.Contains(t, res.err.Error(), "invalid image name")
	assert.Empty(t, runner.calls)
}

func TestDockerDeployRequiresImage(t *testing.T) {
	runner := &fakeRunner{}

	res := executeWith(t, runner, "docker", "deploy")
	require.Error(t, res.err)
	assert.Contains(t, res.err.Error(), `required flag(s) "image" not set`)
	assert.Empty(t, runner.calls)
}

func TestDockerDeployLaunchFailure(t *testing.T) {
	runner := &fakeRunner{err: errors.New("docker: executable not found in PATH")}

	res := executeWith(t, runner, "docker", "deploy", "--image", "nginx")
	require.NoError(t, res.err)
	assert.Equal(t, "✗ Error: docker: executable not found in PATH\n", res.stdout)
}

func TestDockerUsesConfiguredBinary(t *testing.T) {
	runner := &fakeRunner{}
	cfg := config.Default()
	cfg.DockerBin = "sudo podman"

	res := execute(t, []Option{WithRunner(runner), WithConfig(cfg)}, "docker", "deploy", "-i", "nginx")
	require.NoError(t, res.err)

	require.Len(t, runner.calls, 1)
	assert.Equal(t, tool.Tool{Command: "sudo", Args: []string{"podman"}}, runner.calls[0].tool)
}

func TestDockerWithRealRunnerMissingBinary(t *testing.T) {
	cfg := config.Default()
	cfg.DockerBin = "nonexistentcommand12345"

	res := execute(t, []Option{WithConfig(cfg)}, "--debug", "docker", "build", "-n", "test-image")
	require.NoError(t, res.err)

	assert.True(t, strings.HasPrefix(res.stdout, "✗ Error: "), "got %q", res.stdout)
	assert.Contains(t, res.stdout, "nonexistentcommand12345")
	assert.Contains(t, res.stderr, "+ nonexistentcommand12345 build -t test-image .")
	assert.Contains(t, res.stderr, "not found on PATH")
	assert.Contains(t, res.stderr, "tool=nonexistentcommand12345")
}

func TestDockerMissingBinaryQuietWithoutDebug(t *testing.T) {
	cfg := config.Default()
	cfg.DockerBin = "nonexistentcommand12345"

	res := execute(t, []Option{WithConfig(cfg)}, "docker", "build", "-n", "test-image")
	require.NoError(t, res.err)
	assert.NotContains(t, res.stderr, "not found on PATH")
}

func TestDockerGroupRejectsUnknownSubcommand(t *testing.T) {
	res := executeWith(t, &fakeRunner{}, "docker", "push")
	require.Error(t, res.err)
	assert.Contains(t, res.err.Error(), `unknown command "push"`)
}

func TestDockerGroupPrintsHelp(t *testing.T) {
	res := executeWith(t, &fakeRunner{}, "docker")
	require.NoError(t, res.err)

	for _, sub := range []string{"build", "deploy", "inspect"} {
		assert.Contains(t, res.stdout, sub)
	}
}

const inspectManifest = `{"schemaVersion":2,"mediaType":"application/vnd.oci.image.index.v1+json","manifests":[]}`

var inspectDigest = digest.FromString(inspectManifest).String()

func newInspectRegistry(t *testing.T) string {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("/v2/team/web/manifests/1.0", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", ocispec.MediaTypeImageIndex)
		w.Header().Set("Docker-Content-Digest", inspectDigest)
		w.Header().Set("Content-Length", strconv.Itoa(len(inspectManifest)))
		if r.Method == http.MethodGet {
			_, _ = w.Write([]byte(inspectManifest))
		}
	})

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	return strings.TrimPrefix(server.URL, "http://")
}

func TestDockerInspect(t *testing.T) {
	host := newInspectRegistry(t)
	runner := &fakeRunner{}

	res := executeWith(t, runner, "docker", "inspect", "-i", host+"/team/web:1.0", "--plain-http")
	require.NoError(t, res.err)

	assert.Contains(t, res.stdout, "✓ Resolved "+host+"/team/web:1.0")
	assert.Contains(t, res.stdout, "Digest:     "+inspectDigest)
	assert.Contains(t, res.stdout, "OCI image index")
	assert.Contains(t, res.stdout, "Size:       "+strconv.Itoa(len(inspectManifest))+" bytes")
	assert.Empty(t, runner.calls, "inspect talks to the registry directly")
}

func TestDockerInspectNotFound(t *testing.T) {
	host := newInspectRegistry(t)

	res := executeWith(t, &fakeRunner{}, "docker", "inspect", "-i", host+"/team/web:2.0", "--plain-http")
	require.NoError(t, res.err)

	assert.True(t, strings.HasPrefix(res.stdout, "✗ Error: "), "got %q", res.stdout)
	assert.Contains(t, res.stdout, "not found")
}
