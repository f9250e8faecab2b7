// Package relocate moves documents whose identifier changed and renames
// directories that embed the old database or schema name.
package relocate

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/ekaya-inc/ekaya-rekey/pkg/changelog"
	"github.com/ekaya-inc/ekaya-rekey/pkg/document"
	"github.com/ekaya-inc/ekaya-rekey/pkg/models"
)

// Relocator renames files and directories inside one output tree.
type Relocator struct {
	root    string
	renames models.RenamePair
	log     changelog.Recorder
	logger  *zap.Logger
}

// New creates a Relocator for the tree at root.
func New(root string, renames models.RenamePair, log changelog.Recorder, logger *zap.Logger) *Relocator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Relocator{
		root:    root,
		renames: renames,
		log:     log,
		logger:  logger,
	}
}

// RelocateFile moves the file at path when the document's top-level entity_id
// differs from the file name stem. The stem is replaced by the new identifier
// everywhere in the path below the root, missing directories are created and
// the rename is recorded as stem -> identifier.
// It returns the file's final path and whether it moved.
func (r *Relocator) RelocateFile(path string, doc *yaml.Node) (string, bool, error) {
	oldStem := document.Stem(path)
	newID, ok := document.EntityID(doc)
	if !ok || newID == "" || newID == oldStem {
		return path, false, nil
	}

	rel, err := filepath.Rel(r.root, path)
	if err != nil || !filepath.IsLocal(rel) {
		return "", false, fmt.Errorf("%s is outside %s", path, r.root)
	}
	target := filepath.Join(r.root, strings.ReplaceAll(rel, oldStem, newID))

	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return "", false, fmt.Errorf("failed to create directory for %s: %w", target, err)
	}

	r.logger.Info("Renaming file",
		zap.String("from", path),
		zap.String("to", target))
	if err := os.Rename(path, target); err != nil {
		return "", false, fmt.Errorf("failed to move %s: %w", path, err)
	}

	if err := r.log.Record(models.Change{Path: path, Original: oldStem, Updated: newID}); err != nil {
		return "", false, err
	}
	return target, true, nil
}

// RenameDirectories renames every directory below dir whose name contains the
// old database or schema name. Directories are handled children first, so a
// renamed parent never invalidates a pending child path. dir itself is not
// renamed, and a missing dir is not an error.
// It returns the number of directories renamed.
func (r *Relocator) RenameDirectories(dir string) (int, error) {
	var dirs []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() && path != dir {
			dirs = append(dirs, path)
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) && len(dirs) == 0 {
			return 0, nil
		}
		return 0, fmt.Errorf("failed to list directories under %s: %w", dir, err)
	}

	renamed := 0
	// WalkDir yields parents before children; reverse for bottom-up.
	for i := len(dirs) - 1; i >= 0; i-- {
		path := dirs[i]
		name := filepath.Base(path)
		newName := r.renames.Apply(name)
		if newName == name {
			continue
		}

		target := filepath.Join(filepath.Dir(path), newName)
		r.logger.Info("Renaming directory",
			zap.String("from", path),
			zap.String("to", target))
		if err := os.Rename(path, target); err != nil {
			return renamed, fmt.Errorf("failed to rename directory %s: %w", path, err)
		}
		renamed++
	}
	return renamed, nil
}
