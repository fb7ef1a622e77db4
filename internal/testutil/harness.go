package testutil

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vk/stepforge/internal/app"
	"github.com/vk/stepforge/internal/registry"
)

// SafeBuffer is a thread-safe buffer for capturing log output in tests.
type SafeBuffer struct {
	b  bytes.Buffer
	mu sync.Mutex
}

// Write implements the io.Writer interface for SafeBuffer.
func (b *SafeBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.Write(p)
}

// String implements the fmt.Stringer interface for SafeBuffer.
func (b *SafeBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.String()
}

// HarnessResult holds the outcomes of a harness run.
type HarnessResult struct {
	LogOutput string
	Err       error
	App       *app.App
}

// LoadPipelineTest writes the given pipeline HCL to a temporary file,
// builds an app around it and loads it through the full parse/translate
// path. Modules defaults to the built-in connector set when empty.
func LoadPipelineTest(t *testing.T, pipelineHCL string, modules ...registry.Module) *HarnessResult {
	t.Helper()

	tmpDir, err := os.MkdirTemp("", ".tmp-stepforge-test-*")
	require.NoError(t, err)
	t.Cleanup(func() { os.RemoveAll(tmpDir) })

	pipelinePath := filepath.Join(tmpDir, "pipeline.hcl")
	require.NoError(t, os.WriteFile(pipelinePath, []byte(pipelineHCL), 0o644))

	appConfig := &app.Config{
		PipelinePath: pipelinePath,
		LogLevel:     "debug",
		LogFormat:    "text",
	}

	logBuffer := &SafeBuffer{}
	testApp := app.NewApp(context.Background(), logBuffer, appConfig, modules...)

	runErr := testApp.LoadPipeline()

	return &HarnessResult{
		LogOutput: logBuffer.String(),
		Err:       runErr,
		App:       testApp,
	}
}

// CompilePipelineTest drives the full compile path: parse, compile every
// step, emit one source unit per step into a temporary output directory.
// The returned directory holds the emitted files.
func CompilePipelineTest(t *testing.T, pipelineHCL string, modules ...registry.Module) (*HarnessResult, string) {
	t.Helper()

	tmpDir, err := os.MkdirTemp("", ".tmp-stepforge-test-*")
	require.NoError(t, err)
	t.Cleanup(func() { os.RemoveAll(tmpDir) })

	pipelinePath := filepath.Join(tmpDir, "pipeline.hcl")
	require.NoError(t, os.WriteFile(pipelinePath, []byte(pipelineHCL), 0o644))
	outputDir := filepath.Join(tmpDir, "out")

	appConfig := &app.Config{
		PipelinePath: pipelinePath,
		OutputDir:    outputDir,
		LogLevel:     "debug",
		LogFormat:    "text",
	}

	logBuffer := &SafeBuffer{}
	testApp := app.NewApp(context.Background(), logBuffer, appConfig, modules...)

	runErr := testApp.Run()

	return &HarnessResult{
		LogOutput: logBuffer.String(),
		Err:       runErr,
		App:       testApp,
	}, outputDir
}
