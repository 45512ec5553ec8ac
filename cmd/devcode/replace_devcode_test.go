package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fyrsmithlabs/devcode/internal/manifest"
)

const (
	testManifest = `{
  "name": "my-devcode",
  "private": true,
  "version": "0.0.0"
}
`
	testCodeQL   = "name: \"CodeQL config for my-devcode\"\n"
	testWorkflow = `name: tagpr
jobs:
  tagpr:
    runs-on: ubuntu-latest
    steps:
      - uses: actions/checkout@v4
        # TODO: After replace-devcode, add token: ${{ secrets.PAT_FOR_TAGPR }}
      - uses: Songmu/tagpr@v1
        env:
          GITHUB_TOKEN: ${{ secrets.GITHUB_TOKEN }}
`
)

func devcodeProject() map[string]string {
	return map[string]string{
		"package.json":                     testManifest,
		".github/codeql/codeql-config.yml": testCodeQL,
		".github/workflows/tagpr.yml":      testWorkflow,
		"src/index.ts":                     "export const name = 'my-devcode';\n",
	}
}

func TestReplaceDevcodeCmd(t *testing.T) {
	dir := writeProject(t, devcodeProject())

	stdout, _, err := execute(t, "replace-devcode", "@scope/pkg", "--dir", dir)
	require.NoError(t, err)

	assert.Contains(t, stdout, "my-devcode -> @scope/pkg")
	assert.Contains(t, stdout, "src/index.ts:1: export const name = 'my-devcode';")
	assert.Contains(t, stdout, "PAT_FOR_TAGPR")

	pkg, err := os.ReadFile(filepath.Join(dir, "package.json"))
	require.NoError(t, err)
	assert.Equal(t, "{\n  \"name\": \"@scope/pkg\",\n  \"version\": \"0.0.0\"\n}\n", string(pkg))

	src, err := os.ReadFile(filepath.Join(dir, "src", "index.ts"))
	require.NoError(t, err)
	assert.Equal(t, "export const name = 'my-devcode';\n", string(src))
}

func TestReplaceDevcodeCmd_NotDevcode(t *testing.T) {
	files := devcodeProject()
	files["package.json"] = `{"name": "my-devcode"}`
	dir := writeProject(t, files)

	stdout, _, err := execute(t, "replace-devcode", "@scope/pkg", "--dir", dir)
	require.ErrorIs(t, err, manifest.ErrNotDevcode)
	assert.Empty(t, stdout)

	workflow, err := os.ReadFile(filepath.Join(dir, ".github", "workflows", "tagpr.yml"))
	require.NoError(t, err)
	assert.Equal(t, testWorkflow, string(workflow))
}

func TestReplaceDevcodeCmd_DryRun(t *testing.T) {
	dir := writeProject(t, devcodeProject())

	stdout, _, err := execute(t, "replace-devcode", "@scope/pkg", "--dir", dir, "--dry-run")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Dry run")
	assert.Contains(t, stdout, "would update")

	pkg, err := os.ReadFile(filepath.Join(dir, "package.json"))
	require.NoError(t, err)
	assert.Equal(t, testManifest, string(pkg))
}

func TestReplaceDevcodeCmd_VerifySecretWithoutToken(t *testing.T) {
	dir := writeProject(t, devcodeProject())
	t.Setenv("DEVCODE_GITHUB_TOKEN", "")

	stdout, _, err := execute(t, "replace-devcode", "@scope/pkg", "--dir", dir, "--verify-secret")
	require.NoError(t, err, "secret check is advisory")
	assert.Contains(t, stdout, "Secret PAT_FOR_TAGPR: unknown")
}

func TestReplaceDevcodeCmd_RequiresPublishName(t *testing.T) {
	_, _, err := execute(t, "replace-devcode")
	assert.Error(t, err)
}

func TestReplaceDevcodeCmd_MalformedAllowlist(t *testing.T) {
	files := devcodeProject()
	files[".gitleaks.toml"] = "[allowlist\nbroken"
	dir := writeProject(t, files)

	stdout, stderr, err := execute(t, "replace-devcode", "@scope/pkg", "--dir", dir)
	require.NoError(t, err)
	assert.Contains(t, stderr, "secret allowlist not loaded")
	assert.Contains(t, stdout, "my-devcode -> @scope/pkg")

	data, err := os.ReadFile(filepath.Join(dir, "package.json"))
	require.NoError(t, err)
	assert.Contains(t, string(data), `"name": "@scope/pkg"`)
}

func TestReplaceDevcodeCmd_MalformedAllowlistNotDevcode(t *testing.T) {
	dir := writeProject(t, map[string]string{
		"package.json":   `{"name":"my-devcode"}`,
		".gitleaks.toml": "[allowlist\nbroken",
	})

	_, _, err := execute(t, "replace-devcode", "@scope/pkg", "--dir", dir)
	assert.ErrorIs(t, err, manifest.ErrNotDevcode)
}

func TestReplaceDevcodeCmd_PublishNameInsideIdentifier(t *testing.T) {
	files := devcodeProject()
	files["package.json"] = `{"name":"widgets-dev","private":true}`
	files[".github/codeql/codeql-config.yml"] = "name: \"CodeQL config for widgets-dev\"\n"
	dir := writeProject(t, files)

	_, _, err := execute(t, "replace-devcode", "widgets", "--dir", dir)
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(dir, ".github", "codeql", "codeql-config.yml"))
	require.NoError(t, err)
	assert.Equal(t, "name: \"CodeQL config for widgets\"\n", string(data))
}
