package scan

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/fyrsmithlabs/devcode/internal/ignore"
	"github.com/fyrsmithlabs/devcode/internal/logging"
)

// Walk returns the path of every regular file under root, depth-first.
//
// Entries are visited in the order os.ReadDir returns them (sorted by name).
// Subdirectories whose name is in exclude are not entered; root itself is
// always read. Symlinks are neither followed nor returned. A directory that
// cannot be read contributes whatever entries were listed before the error.
//
// The only error returned is ctx's.
func Walk(ctx context.Context, root string, exclude ignore.DirSet) ([]string, error) {
	var files []string
	if err := walkDir(ctx, root, exclude, &files); err != nil {
		return nil, err
	}
	return files, nil
}

func walkDir(ctx context.Context, dir string, exclude ignore.DirSet, files *[]string) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("walking %s: %w", dir, err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		logging.FromContext(ctx).Debug(ctx, "directory partially unreadable",
			zap.String("dir", dir),
			zap.Int("entries", len(entries)),
			zap.Error(err))
	}

	for _, entry := range entries {
		path := filepath.Join(dir, entry.Name())
		switch {
		case entry.IsDir():
			if exclude.Contains(entry.Name()) {
				logging.FromContext(ctx).Trace(ctx, "excluded directory", zap.String("dir", path))
				continue
			}
			if err := walkDir(ctx, path, exclude, files); err != nil {
				return err
			}
		case entry.Type().IsRegular():
			*files = append(*files, path)
		}
	}
	return nil
}
