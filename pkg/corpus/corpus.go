// Package corpus copies document trees and enumerates the documents in them.
package corpus

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/ekaya-inc/ekaya-rekey/pkg/apperrors"
	"github.com/ekaya-inc/ekaya-rekey/pkg/document"
)

// CopyTree copies every directory and regular file under src into dst.
// dst may already exist; existing files are overwritten and files that exist
// only in dst are left alone.
func CopyTree(src, dst string) error {
	info, err := os.Stat(src)
	if err != nil {
		return fmt.Errorf("failed to stat input root: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%s: %w", src, apperrors.ErrNotDirectory)
	}

	return filepath.WalkDir(src, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		target := filepath.Join(dst, rel)

		info, err := d.Info()
		if err != nil {
			return err
		}

		switch {
		case d.IsDir():
			if err := os.MkdirAll(target, info.Mode().Perm()|0o700); err != nil {
				return fmt.Errorf("failed to create %s: %w", target, err)
			}
			return nil
		case info.Mode().IsRegular():
			return copyFile(path, target, info.Mode().Perm())
		default:
			// Symlinks, sockets and devices are not part of a document tree.
			return nil
		}
	})
}

func copyFile(src, dst string, perm fs.FileMode) error {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", src, err)
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, perm)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", dst, err)
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return fmt.Errorf("failed to copy %s: %w", src, err)
	}
	return out.Close()
}

// ListDocuments returns the paths of all document files under root in lexical
// walk order. The list is taken up front so that files moved while processing
// are not visited twice.
func ListDocuments(root string, extensions []string) ([]string, error) {
	var paths []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.Type().IsRegular() && document.IsDocumentFile(d.Name(), extensions) {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list documents under %s: %w", root, err)
	}
	return paths, nil
}
