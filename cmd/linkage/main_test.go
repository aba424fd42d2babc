package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(args ...string) (string, error) {
	cmd := newRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestScenarioCommand(t *testing.T) {
	out, err := execute("scenario", "../../scenario/testdata/drag.yaml")
	require.NoError(t, err)
	assert.Equal(t, "wire#0 -> box (port 0)\n", out)
}

func TestScenarioCommandWithConfig(t *testing.T) {
	dir := t.TempDir()
	cfg := filepath.Join(dir, "linkage.yaml")
	require.NoError(t, os.WriteFile(cfg, []byte("glue_distance: 1\n"), 0o644))

	out, err := execute("--config", cfg, "scenario", "../../scenario/testdata/drag.yaml")
	require.NoError(t, err)
	assert.Empty(t, out, "the wire stops too far from the box to glue")
}

func TestScenarioCommandErrors(t *testing.T) {
	_, err := execute("scenario")
	assert.Error(t, err)

	_, err = execute("scenario", "missing.yaml")
	assert.Error(t, err)

	_, err = execute("--config", "missing.yaml", "scenario", "../../scenario/testdata/drag.yaml")
	assert.Error(t, err)
}
