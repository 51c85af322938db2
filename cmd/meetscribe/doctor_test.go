package main

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/nguyentantai21042004/meetscribe/internal/config"
)

type fakeExecutor struct {
	out  string
	err  error
	args []string
}

func (f *fakeExecutor) Execute(ctx context.Context, name string, args ...string) (string, error) {
	f.args = append([]string{name}, args...)
	return f.out, f.err
}

func doctorConfig(t *testing.T) *config.Config {
	dir := t.TempDir()
	return &config.Config{
		Browser: config.BrowserConfig{Bin: "/opt/chrome"},
		Paths: config.PathsConfig{
			Transcripts: filepath.Join(dir, "transcripts"),
			Screenshots: filepath.Join(dir, "shots"),
		},
	}
}

func TestRunDoctorPasses(t *testing.T) {
	cfg := doctorConfig(t)
	cfg.Gemini.APIKeys = []string{"k1", "k2"}
	exec := &fakeExecutor{out: "Chromium 131.0\n"}

	var out bytes.Buffer
	assert.True(t, runDoctor(context.Background(), &out, cfg, exec))
	assert.Equal(t, []string{"/opt/chrome", "--version"}, exec.args)
	assert.Contains(t, out.String(), "Chromium 131.0")
	assert.Contains(t, out.String(), "2 configured")
	assert.Contains(t, out.String(), "All prerequisites met.")
}

func TestRunDoctorBrowserFailure(t *testing.T) {
	cfg := doctorConfig(t)
	exec := &fakeExecutor{err: errors.New("exit status 1")}

	var out bytes.Buffer
	assert.False(t, runDoctor(context.Background(), &out, cfg, exec))
	assert.True(t, strings.HasPrefix(out.String(), "[!!] Browser"))
	assert.Contains(t, out.String(), "summaries disabled")
}

func TestVersionCommand(t *testing.T) {
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"version"})

	assert.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "meetscribe dev")
}
