package envsync

import (
	"io"

	"github.com/temirov/envsync/internal/workspace"
)

// ManifestLoader reads the package patterns of a workspace.
type ManifestLoader interface {
	LoadManifest(root string, manifestPath string) (workspace.Manifest, error)
}

// PackageDiscoverer expands package patterns beneath the workspace root.
type PackageDiscoverer interface {
	DiscoverPackages(root string, patterns []string) ([]string, error)
}

// FileSystem provides the file operations required by the resolver.
type FileSystem interface {
	Open(path string) (io.ReadCloser, error)
	Abs(path string) (string, error)
	CopyFile(sourcePath string, destinationPath string) error
}

// AnswerPrompter asks the operator a question until the answer validates.
type AnswerPrompter interface {
	Ask(prompt string, validate func(answer string) error) (string, error)
}
