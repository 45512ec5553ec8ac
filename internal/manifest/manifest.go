// Package manifest reads and edits a project's package.json.
//
// Edits go through gjson/sjson so that fields this package does not own keep
// their values and key order.
package manifest

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// FileName is the manifest's name relative to the project root.
const FileName = "package.json"

var (
	// ErrManifestNotFound indicates the project root has no manifest.
	ErrManifestNotFound = errors.New("package.json not found")

	// ErrNotDevcode indicates the manifest is not flagged "private": true.
	ErrNotDevcode = errors.New("not a devcode project (package.json is not private)")

	// ErrMalformedManifest indicates the manifest is not a JSON object with a
	// string name.
	ErrMalformedManifest = errors.New("malformed package.json")
)

// Path returns the manifest path for a project directory.
func Path(dir string) string {
	return filepath.Join(dir, FileName)
}

// Detect reads the manifest in dir and returns the devcode identifier, which
// is the manifest name. It fails unless "private" is the JSON literal true.
func Detect(dir string) (string, error) {
	path := Path(dir)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("%w: %s", ErrManifestNotFound, path)
		}
		return "", fmt.Errorf("reading %s: %w", path, err)
	}
	return DetectBytes(data)
}

// DetectBytes applies the Detect rules to manifest content.
func DetectBytes(data []byte) (string, error) {
	if err := validate(data); err != nil {
		return "", err
	}

	if gjson.GetBytes(data, "private").Type != gjson.True {
		return "", ErrNotDevcode
	}

	name := gjson.GetBytes(data, "name")
	if name.Type != gjson.String || name.Str == "" {
		return "", fmt.Errorf("%w: name must be a non-empty string", ErrMalformedManifest)
	}
	return name.Str, nil
}

// SetPublishName returns data with "name" set to publishName and the
// "private" key removed, formatted with two-space indentation and a trailing
// newline. Applying it to its own output with the same name is a fixed point.
func SetPublishName(data []byte, publishName string) ([]byte, error) {
	if err := validate(data); err != nil {
		return nil, err
	}

	out, err := sjson.SetBytes(data, "name", publishName)
	if err != nil {
		return nil, fmt.Errorf("setting name: %w", err)
	}

	if gjson.GetBytes(out, "private").Exists() {
		out, err = sjson.DeleteBytes(out, "private")
		if err != nil {
			return nil, fmt.Errorf("removing private: %w", err)
		}
	}

	return format(out)
}

// format re-indents JSON with two spaces and ensures one trailing newline.
func format(data []byte) ([]byte, error) {
	var buf bytes.Buffer
	if err := json.Indent(&buf, bytes.TrimSpace(data), "", "  "); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedManifest, err)
	}
	buf.WriteByte('\n')
	return buf.Bytes(), nil
}

func validate(data []byte) error {
	if !gjson.ValidBytes(data) {
		return fmt.Errorf("%w: invalid JSON", ErrMalformedManifest)
	}
	if !gjson.ParseBytes(data).IsObject() {
		return fmt.Errorf("%w: top-level value must be an object", ErrMalformedManifest)
	}
	return nil
}
