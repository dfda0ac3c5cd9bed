package workspace

import (
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

const (
	exclusionPrefixConstant            = "!"
	currentDirectoryPrefixConstant     = "./"
	invalidPatternErrorTemplate        = "%w: invalid package pattern %q: %v"
	patternEscapesRootErrorTemplate    = "%w: package pattern %q escapes the workspace root"
	parentDirectoryReferenceConstant   = ".."
	parentDirectoryPrefixConstant      = "../"
	workspaceRootDirectoryNameConstant = "."
)

// PackageDiscoverer expands manifest patterns into package directories.
type PackageDiscoverer struct {
	fileSystemProvider func(root string) fs.FS
}

// NewPackageDiscoverer constructs a discoverer backed by the operating system.
func NewPackageDiscoverer() *PackageDiscoverer {
	return &PackageDiscoverer{fileSystemProvider: os.DirFS}
}

// NewPackageDiscovererWithFileSystem constructs a discoverer reading from the provided file system.
func NewPackageDiscovererWithFileSystem(fileSystem fs.FS) *PackageDiscoverer {
	return &PackageDiscoverer{fileSystemProvider: func(string) fs.FS { return fileSystem }}
}

// DiscoverPackages returns the sorted, deduplicated directories matched by patterns beneath root.
//
// Patterns are doublestar globs relative to root; a leading "!" excludes
// directories matched by the rest of the pattern.
func (discoverer *PackageDiscoverer) DiscoverPackages(root string, patterns []string) ([]string, error) {
	fileSystem := discoverer.fileSystemProvider(root)

	includePatterns, excludePatterns, splitError := splitPatterns(patterns)
	if splitError != nil {
		return nil, splitError
	}

	seen := make(map[string]struct{})
	var packages []string

	for _, includePattern := range includePatterns {
		matches, globError := doublestar.Glob(fileSystem, includePattern)
		if globError != nil {
			return nil, fmt.Errorf(invalidPatternErrorTemplate, ErrManifestMalformed, includePattern, globError)
		}

		for _, match := range matches {
			if isExcluded(match, excludePatterns) {
				continue
			}

			info, statError := fs.Stat(fileSystem, match)
			if statError != nil || !info.IsDir() {
				continue
			}

			packagePath := filepath.Join(root, filepath.FromSlash(match))
			if _, alreadySeen := seen[packagePath]; alreadySeen {
				continue
			}
			seen[packagePath] = struct{}{}
			packages = append(packages, packagePath)
		}
	}

	sort.Strings(packages)
	return packages, nil
}

func splitPatterns(patterns []string) ([]string, []string, error) {
	var includePatterns []string
	var excludePatterns []string

	for _, rawPattern := range patterns {
		trimmedPattern := strings.TrimSpace(rawPattern)
		excluded := strings.HasPrefix(trimmedPattern, exclusionPrefixConstant)
		if excluded {
			trimmedPattern = strings.TrimPrefix(trimmedPattern, exclusionPrefixConstant)
		}

		normalizedPattern, normalizeError := normalizePattern(trimmedPattern)
		if normalizeError != nil {
			return nil, nil, normalizeError
		}
		if len(normalizedPattern) == 0 {
			continue
		}

		if !doublestar.ValidatePattern(normalizedPattern) {
			return nil, nil, fmt.Errorf(invalidPatternErrorTemplate, ErrManifestMalformed, rawPattern, doublestar.ErrBadPattern)
		}

		if excluded {
			excludePatterns = append(excludePatterns, normalizedPattern)
			continue
		}
		includePatterns = append(includePatterns, normalizedPattern)
	}

	return includePatterns, excludePatterns, nil
}

func normalizePattern(pattern string) (string, error) {
	if len(pattern) == 0 {
		return "", nil
	}

	slashPattern := filepath.ToSlash(pattern)
	for strings.HasPrefix(slashPattern, currentDirectoryPrefixConstant) {
		slashPattern = strings.TrimPrefix(slashPattern, currentDirectoryPrefixConstant)
	}
	if len(slashPattern) == 0 {
		return workspaceRootDirectoryNameConstant, nil
	}

	cleanedPattern := path.Clean(slashPattern)
	if path.IsAbs(cleanedPattern) || cleanedPattern == parentDirectoryReferenceConstant || strings.HasPrefix(cleanedPattern, parentDirectoryPrefixConstant) {
		return "", fmt.Errorf(patternEscapesRootErrorTemplate, ErrManifestMalformed, pattern)
	}

	return cleanedPattern, nil
}

func isExcluded(match string, excludePatterns []string) bool {
	for _, excludePattern := range excludePatterns {
		if matched, matchError := doublestar.Match(excludePattern, match); matchError == nil && matched {
			return true
		}
	}
	return false
}
