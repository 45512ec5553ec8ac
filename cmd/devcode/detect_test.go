package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fyrsmithlabs/devcode/internal/manifest"
)

func TestDetectCmd(t *testing.T) {
	dir := writeProject(t, devcodeProject())

	stdout, _, err := execute(t, "detect", "--dir", dir)
	require.NoError(t, err)
	assert.Equal(t, "my-devcode\n", stdout)
}

func TestDetectCmd_Errors(t *testing.T) {
	t.Run("missing manifest", func(t *testing.T) {
		_, _, err := execute(t, "detect", "--dir", t.TempDir())
		assert.ErrorIs(t, err, manifest.ErrManifestNotFound)
	})

	t.Run("not private", func(t *testing.T) {
		dir := writeProject(t, map[string]string{"package.json": `{"name":"pkg","private":false}`})
		_, _, err := execute(t, "detect", "--dir", dir)
		assert.ErrorIs(t, err, manifest.ErrNotDevcode)
	})
}
