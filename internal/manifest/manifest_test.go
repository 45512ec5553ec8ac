package manifest

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
)

func writeManifest(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, FileName), []byte(content), 0644))
	return dir
}

func TestDetect(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
		wantErr error
	}{
		{
			name:    "private devcode project",
			content: `{"name": "my-devcode", "private": true}`,
			want:    "my-devcode",
		},
		{
			name:    "private missing",
			content: `{"name": "my-devcode"}`,
			wantErr: ErrNotDevcode,
		},
		{
			name:    "private false",
			content: `{"name": "my-devcode", "private": false}`,
			wantErr: ErrNotDevcode,
		},
		{
			name:    "private as string is not devcode",
			content: `{"name": "my-devcode", "private": "true"}`,
			wantErr: ErrNotDevcode,
		},
		{
			name:    "invalid JSON",
			content: `{"name": "my-devcode", "private": true`,
			wantErr: ErrMalformedManifest,
		},
		{
			name:    "array manifest",
			content: `[1, 2]`,
			wantErr: ErrMalformedManifest,
		},
		{
			name:    "name not a string",
			content: `{"name": 42, "private": true}`,
			wantErr: ErrMalformedManifest,
		},
		{
			name:    "empty name",
			content: `{"name": "", "private": true}`,
			wantErr: ErrMalformedManifest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := writeManifest(t, tt.content)
			got, err := Detect(dir)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDetect_NotFound(t *testing.T) {
	_, err := Detect(t.TempDir())
	require.ErrorIs(t, err, ErrManifestNotFound)
}

func TestSetPublishName(t *testing.T) {
	input := `{
    "name": "my-devcode",
    "version": "0.0.0",
    "private": true,
    "type": "module",
    "scripts": {
        "test": "vitest"
    },
    "files": [],
    "keywords": ["a", "b"]
}`
	want := `{
  "name": "@scope/pkg",
  "version": "0.0.0",
  "type": "module",
  "scripts": {
    "test": "vitest"
  },
  "files": [],
  "keywords": [
    "a",
    "b"
  ]
}
`
	got, err := SetPublishName([]byte(input), "@scope/pkg")
	require.NoError(t, err)
	assert.Equal(t, want, string(got))
}

func TestSetPublishName_PrivateLast(t *testing.T) {
	got, err := SetPublishName([]byte(`{"name":"x","private":true}`), "y")
	require.NoError(t, err)
	assert.Equal(t, "{\n  \"name\": \"y\"\n}\n", string(got))
}

func TestSetPublishName_FixedPoint(t *testing.T) {
	inputs := []string{
		`{"name": "my-devcode", "private": true, "license": "MIT"}`,
		`{"private": true, "name": "my-devcode"}`,
		`{"name": "already-public", "private": false}`,
		`{"name": "no-private"}`,
	}

	for _, input := range inputs {
		first, err := SetPublishName([]byte(input), "@scope/pkg")
		require.NoError(t, err)

		assert.Equal(t, "@scope/pkg", gjson.GetBytes(first, "name").String())
		assert.False(t, gjson.GetBytes(first, "private").Exists(), "private must be removed: %s", first)

		second, err := SetPublishName(first, "@scope/pkg")
		require.NoError(t, err)
		assert.Equal(t, string(first), string(second))
	}
}

func TestSetPublishName_Malformed(t *testing.T) {
	_, err := SetPublishName([]byte(`{"name": `), "x")
	require.ErrorIs(t, err, ErrMalformedManifest)

	_, err = SetPublishName([]byte(`"just a string"`), "x")
	require.ErrorIs(t, err, ErrMalformedManifest)
}
