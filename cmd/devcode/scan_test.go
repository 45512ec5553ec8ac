package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScanCmd(t *testing.T) {
	files := devcodeProject()
	files["docs/guide.md"] = "Install my-devcode first.\n"
	files["node_modules/dep/index.js"] = "my-devcode\n"
	dir := writeProject(t, files)

	stdout, _, err := execute(t, "scan", "my-devcode", "--dir", dir)
	require.NoError(t, err)

	assert.Contains(t, stdout, `Remaining occurrences of "my-devcode" (2, left unmodified)`)
	assert.Contains(t, stdout, "docs/guide.md:1: Install my-devcode first.")
	assert.Contains(t, stdout, "src/index.ts:1:")
	assert.NotContains(t, stdout, "package.json")
	assert.NotContains(t, stdout, "node_modules")
}

func TestScanCmd_Exclusions(t *testing.T) {
	files := map[string]string{
		"fixtures/a.txt":  "my-devcode\n",
		"generated/b.txt": "my-devcode\n",
		"src/c.txt":       "my-devcode\n",
		".devcodeignore":  "# local build output\ngenerated\n",
	}
	dir := writeProject(t, files)
	t.Setenv("DEVCODE_SCAN_EXCLUDE_DIRS", "fixtures")

	stdout, _, err := execute(t, "scan", "my-devcode", "--dir", dir)
	require.NoError(t, err)

	assert.Contains(t, stdout, "src/c.txt:1:")
	assert.NotContains(t, stdout, "fixtures/a.txt")
	assert.NotContains(t, stdout, "generated/b.txt")
}

func TestScanCmd_RedactsSecrets(t *testing.T) {
	pat := "ghp_" + "8fK2pQ9xLm4vT7bN1cR6wZ3yH5jD0sAeUuIo"
	dir := writeProject(t, map[string]string{
		"deploy.sh": "TOKEN=" + pat + " # my-devcode\n",
	})

	stdout, _, err := execute(t, "scan", "my-devcode", "--dir", dir)
	require.NoError(t, err)
	assert.Contains(t, stdout, "deploy.sh:1:")
	assert.NotContains(t, stdout, pat)
	assert.Contains(t, stdout, "[REDACTED:")
}

func TestScanCmd_None(t *testing.T) {
	dir := writeProject(t, devcodeProject())

	stdout, _, err := execute(t, "scan", "unrelated-name", "--dir", dir)
	require.NoError(t, err)
	assert.Contains(t, stdout, `No remaining occurrences of "unrelated-name"`)
}
