//go:build remote

package integration

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

// startDatasetServer serves the sample dataset from an nginx container and
// returns the base URL it is reachable at.
func startDatasetServer(ctx context.Context, t *testing.T) string {
	t.Helper()
	hostPath, err := filepath.Abs(sampleDataset)
	require.NoError(t, err)

	req := testcontainers.ContainerRequest{
		Image:        "nginx:alpine",
		ExposedPorts: []string{"80/tcp"},
		Files: []testcontainers.ContainerFile{{
			HostFilePath:      hostPath,
			ContainerFilePath: "/usr/share/nginx/html/data/motion-chart.json",
			FileMode:          0o644,
		}},
		WaitingFor: wait.ForHTTP("/data/motion-chart.json").WithStartupTimeout(30 * time.Second),
	}
	nginxC, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = nginxC.Terminate(ctx) })

	host, err := nginxC.Host(ctx)
	require.NoError(t, err)
	port, err := nginxC.MappedPort(ctx, "80")
	require.NoError(t, err)
	return fmt.Sprintf("http://%s:%s", host, port.Port())
}

// TestRenderFromBaseURL fetches the default dataset path below a base URL.
func TestRenderFromBaseURL(t *testing.T) {
	ctx := context.Background()
	baseURL := startDatasetServer(ctx, t)

	out, err := runCommand(t, "render", "--base-url", baseURL, "--time", "2010", "--output", "json")
	require.NoError(t, err)

	var report struct {
		Frame struct {
			TimeKey string `json:"timeKey"`
		} `json:"frame"`
		SliceCount int `json:"sliceCount"`
	}
	require.NoError(t, json.Unmarshal(out, &report))
	assert.Equal(t, "2010", report.Frame.TimeKey)
	assert.Equal(t, 4, report.SliceCount)
}

// TestInspectFromURLArgument passes the dataset URL as the positional argument.
func TestInspectFromURLArgument(t *testing.T) {
	ctx := context.Background()
	baseURL := startDatasetServer(ctx, t)

	out, err := runCommand(t, "inspect", baseURL+"/data/motion-chart.json", "--output", "json")
	require.NoError(t, err)

	var summary struct {
		Source     string `json:"source"`
		SliceCount int    `json:"sliceCount"`
	}
	require.NoError(t, json.Unmarshal(out, &summary))
	assert.Equal(t, 4, summary.SliceCount)
	assert.Contains(t, summary.Source, baseURL)
}

// TestRenderMissingRemoteDataset reports the HTTP failure.
func TestRenderMissingRemoteDataset(t *testing.T) {
	ctx := context.Background()
	baseURL := startDatasetServer(ctx, t)

	_, err := runCommand(t, "render", baseURL+"/data/missing.json")
	assert.Error(t, err)
}
