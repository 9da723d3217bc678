package convert

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/ironsheep/picart/internal/apperr"
)

// outputPerm is applied to written files; temp files start out as 0600.
const outputPerm = 0o644

// writeFile renders into the file at path.
//
// Symlinks are followed, so the file a link points to is written and the
// link itself is kept. Regular files and paths that do not exist yet are
// replaced atomically through writeFileAtomic. Anything else, such as
// /dev/null, a FIFO or a dangling link, is opened and written in place.
func writeFile(path string, render func(io.Writer) error) error {
	target, atomic, err := resolveOutput(path)
	if err != nil {
		return err
	}
	if atomic {
		return writeFileAtomic(target, render)
	}
	return writeFileInPlace(target, render)
}

// resolveOutput returns the path to write and whether it can be replaced
// by rename.
func resolveOutput(path string) (string, bool, error) {
	resolved, err := filepath.EvalSymlinks(path)
	if err == nil {
		info, err := os.Stat(resolved)
		if err != nil {
			return "", false, fmt.Errorf("failed to stat output: %w: %w", apperr.ErrIO, err)
		}
		return resolved, info.Mode().IsRegular(), nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return "", false, fmt.Errorf("failed to resolve output: %w: %w", apperr.ErrIO, err)
	}

	info, err := os.Lstat(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return path, true, nil
	case err != nil:
		return "", false, fmt.Errorf("failed to stat output: %w: %w", apperr.ErrIO, err)
	default:
		// Dangling link: create the file it names.
		return path, info.Mode().IsRegular(), nil
	}
}

// writeFileAtomic calls render with a temp file next to path and renames it
// over path once render and close both succeed. On any failure the temp
// file is removed and path is left untouched.
func writeFileAtomic(path string, render func(io.Writer) error) (err error) {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create output: %w: %w", apperr.ErrIO, err)
	}
	tmpPath := tmp.Name()

	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmpPath)
		}
	}()

	if err = render(tmp); err != nil {
		return fmt.Errorf("failed to write output: %w: %w", apperr.ErrIO, err)
	}
	if err = tmp.Chmod(outputPerm); err != nil {
		return fmt.Errorf("failed to set output permissions: %w: %w", apperr.ErrIO, err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("failed to close output: %w: %w", apperr.ErrIO, err)
	}
	if err = os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("failed to move output into place: %w: %w", apperr.ErrIO, err)
	}
	return nil
}

// writeFileInPlace opens path for writing, truncating it, and renders into it.
func writeFileInPlace(path string, render func(io.Writer) error) (err error) {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, outputPerm)
	if err != nil {
		return fmt.Errorf("failed to open output: %w: %w", apperr.ErrIO, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to close output: %w: %w", apperr.ErrIO, cerr)
		}
	}()

	if err = render(f); err != nil {
		return fmt.Errorf("failed to write output: %w: %w", apperr.ErrIO, err)
	}
	return nil
}
