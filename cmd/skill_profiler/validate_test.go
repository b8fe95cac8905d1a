package main

import (
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateCommand_ValidCandidates(t *testing.T) {
	binaryPath := getBinaryPath(t)

	jsonPath := filepath.Join(t.TempDir(), "candidates.json")
	require.NoError(t, os.WriteFile(jsonPath, []byte(`[
		{"name": "Python", "category": "programming_language",
		 "proficiency": "advanced", "confidence": 0.9}
	]`), 0o600))

	cmd := exec.Command(binaryPath, "validate", "--schema", "candidates", jsonPath)
	output, err := cmd.CombinedOutput()

	require.NoError(t, err, string(output))
	assert.Contains(t, string(output), "is valid")
}

func TestValidateCommand_InvalidCandidates(t *testing.T) {
	binaryPath := getBinaryPath(t)

	jsonPath := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(jsonPath,
		[]byte(`[{"name": "Python", "category": "wizardry", "proficiency": "advanced", "confidence": 0.9}]`), 0o600))

	cmd := exec.Command(binaryPath, "validate", "--schema", "candidates", jsonPath)
	output, err := cmd.CombinedOutput()

	assert.Error(t, err)
	assert.Contains(t, string(output), "Validation failed")
}

func TestValidateCommand_UnknownSchema(t *testing.T) {
	binaryPath := getBinaryPath(t)

	cmd := exec.Command(binaryPath, "validate", "--schema", "nope", "whatever.json")
	output, err := cmd.CombinedOutput()

	assert.Error(t, err)
	assert.Contains(t, string(output), "unknown schema")
}
