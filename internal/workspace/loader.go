package workspace

// FileManifestLoader loads manifests from disk.
type FileManifestLoader struct{}

// LoadManifest delegates to the package-level LoadManifest.
func (FileManifestLoader) LoadManifest(root string, manifestPath string) (Manifest, error) {
	return LoadManifest(root, manifestPath)
}
