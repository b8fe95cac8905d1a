package main

import (
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractCommand_MissingFlags(t *testing.T) {
	binaryPath := getBinaryPath(t)

	cmd := exec.Command(binaryPath, "extract")
	output, err := cmd.CombinedOutput()

	assert.Error(t, err)
	assert.Contains(t, string(output), "--user is required")
}

func TestExtractCommand_MultipleSources(t *testing.T) {
	binaryPath := getBinaryPath(t)

	cmd := exec.Command(binaryPath, "extract",
		"--user", "u1",
		"--github", "octocat",
		"--linkedin", "https://www.linkedin.com/in/someone")
	output, err := cmd.CombinedOutput()

	assert.Error(t, err)
	assert.Contains(t, string(output), "exactly one of --cv, --github, or --linkedin")
}

func TestExtractCommand_CVMockMode(t *testing.T) {
	binaryPath := getBinaryPath(t)

	cvPath := filepath.Join(t.TempDir(), "cv.txt")
	require.NoError(t, os.WriteFile(cvPath,
		[]byte("Engineer with Python, Docker and Leadership experience."), 0o600))

	cmd := exec.Command(binaryPath, "extract", "--user", "u1", "--cv", cvPath)
	// No API key or database: mock extraction into in-memory stores.
	cmd.Env = envWithout("GEMINI_API_KEY", "DATABASE_URL")

	output, err := cmd.CombinedOutput()
	require.NoError(t, err, string(output))

	assert.Contains(t, string(output), "Python")
	assert.Contains(t, string(output), "Docker")
	assert.Contains(t, string(output), `"user_id": "u1"`)
}

func TestMimeTypeForFile(t *testing.T) {
	assert.Equal(t, "text/plain", mimeTypeForFile("cv.txt"))
	assert.Equal(t, "application/pdf", mimeTypeForFile("cv.pdf"))
	assert.Equal(t, "application/pdf", mimeTypeForFile("cv"))
	assert.Equal(t,
		"application/vnd.openxmlformats-officedocument.wordprocessingml.document",
		mimeTypeForFile("cv.docx"))
}
