// Package filesystem implements the file operations used by the environment
// synchronization workflow on top of the operating system.
package filesystem

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
)

const (
	temporaryFilePatternTemplateConstant = ".%s.tmp-*"
	openSourceErrorTemplateConstant      = "open %s: %w"
	createTemporaryErrorTemplateConstant = "create temporary file for %s: %w"
	copyContentErrorTemplateConstant     = "copy %s to %s: %w"
	syncTemporaryErrorTemplateConstant   = "sync %s: %w"
	chmodTemporaryErrorTemplateConstant  = "set permissions on %s: %w"
	renameTemporaryErrorTemplateConstant = "replace %s: %w"
	resolveLinkErrorTemplateConstant     = "resolve %s: %w"
)

// OSFileSystem implements FileSystem using the operating system primitives.
type OSFileSystem struct{}

// Open opens a file for reading.
func (OSFileSystem) Open(path string) (io.ReadCloser, error) {
	return os.Open(path)
}

// Abs resolves an absolute path.
func (OSFileSystem) Abs(path string) (string, error) {
	return filepath.Abs(path)
}

// CopyFile replaces destinationPath with the bytes of sourcePath.
//
// The content is written to a temporary sibling first and renamed over the
// destination, so an interrupted copy never leaves a truncated file behind.
// The destination receives the permission bits of the source. A destination
// that is a symbolic link is written through: the link target is replaced and
// the link itself is preserved.
func (OSFileSystem) CopyFile(sourcePath string, destinationPath string) (copyError error) {
	sourceFile, openError := os.Open(sourcePath)
	if openError != nil {
		return fmt.Errorf(openSourceErrorTemplateConstant, sourcePath, openError)
	}
	defer sourceFile.Close()

	sourceInfo, statError := sourceFile.Stat()
	if statError != nil {
		return fmt.Errorf(openSourceErrorTemplateConstant, sourcePath, statError)
	}

	destinationPath, resolveError := resolveDestination(destinationPath)
	if resolveError != nil {
		return resolveError
	}

	destinationDirectory := filepath.Dir(destinationPath)
	temporaryPattern := fmt.Sprintf(temporaryFilePatternTemplateConstant, filepath.Base(destinationPath))
	temporaryFile, createError := os.CreateTemp(destinationDirectory, temporaryPattern)
	if createError != nil {
		return fmt.Errorf(createTemporaryErrorTemplateConstant, destinationPath, createError)
	}
	temporaryPath := temporaryFile.Name()

	defer func() {
		if copyError != nil {
			_ = temporaryFile.Close()
			_ = os.Remove(temporaryPath)
		}
	}()

	if _, writeError := io.Copy(temporaryFile, sourceFile); writeError != nil {
		return fmt.Errorf(copyContentErrorTemplateConstant, sourcePath, destinationPath, writeError)
	}

	if syncError := temporaryFile.Sync(); syncError != nil {
		return fmt.Errorf(syncTemporaryErrorTemplateConstant, temporaryPath, syncError)
	}

	if chmodError := temporaryFile.Chmod(sourceInfo.Mode().Perm()); chmodError != nil {
		return fmt.Errorf(chmodTemporaryErrorTemplateConstant, temporaryPath, chmodError)
	}

	if closeError := temporaryFile.Close(); closeError != nil {
		return fmt.Errorf(syncTemporaryErrorTemplateConstant, temporaryPath, closeError)
	}

	if renameError := os.Rename(temporaryPath, destinationPath); renameError != nil {
		return fmt.Errorf(renameTemporaryErrorTemplateConstant, destinationPath, renameError)
	}

	return nil
}

func resolveDestination(destinationPath string) (string, error) {
	resolvedPath, evaluateError := filepath.EvalSymlinks(destinationPath)
	if evaluateError == nil {
		return resolvedPath, nil
	}
	if errors.Is(evaluateError, fs.ErrNotExist) {
		return destinationPath, nil
	}
	return "", fmt.Errorf(resolveLinkErrorTemplateConstant, destinationPath, evaluateError)
}
