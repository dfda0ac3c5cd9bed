package workspace

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	mapstructure "github.com/go-viper/mapstructure/v2"
	"gopkg.in/yaml.v3"
)

const (
	// PackageJSONFileName is the npm/yarn manifest file name.
	PackageJSONFileName = "package.json"
	// PnpmWorkspaceFileName is the pnpm manifest file name.
	PnpmWorkspaceFileName = "pnpm-workspace.yaml"

	workspacesFieldNameConstant        = "workspaces"
	jsonExtensionConstant              = ".json"
	yamlExtensionConstant              = ".yaml"
	ymlExtensionConstant               = ".yml"
	manifestNotFoundMessageConstant    = "workspace manifest not found"
	manifestMalformedMessageConstant   = "workspace manifest is malformed"
	manifestNotFoundTemplateConstant   = "%w: %s"
	manifestReadErrorTemplateConstant  = "read workspace manifest %s: %w"
	manifestMalformedTemplateConstant  = "%w: %s: %v"
	manifestMissingFieldTemplate       = "%w: %s: missing %q"
	manifestUnsupportedFormatTemplate  = "%w: %s: unsupported manifest format"
	manifestSearchedLocationsSeparator = ", "
)

// ErrManifestNotFound indicates no manifest file exists at the workspace root.
var ErrManifestNotFound = errors.New(manifestNotFoundMessageConstant)

// ErrManifestMalformed indicates the manifest exists but does not list package patterns.
var ErrManifestMalformed = errors.New(manifestMalformedMessageConstant)

// ManifestFormat identifies the manifest dialect.
type ManifestFormat string

// Supported manifest formats.
const (
	ManifestFormatPackageJSON   ManifestFormat = "package-json"
	ManifestFormatPnpmWorkspace ManifestFormat = "pnpm-workspace"
)

// Manifest lists the package path patterns declared by a workspace.
type Manifest struct {
	Path     string
	Format   ManifestFormat
	Patterns []string
}

type yarnWorkspaces struct {
	Packages []string `mapstructure:"packages"`
}

type pnpmWorkspace struct {
	Packages []string `yaml:"packages"`
}

// LoadManifest reads the workspace manifest.
//
// An empty manifestPath searches the root for package.json and then
// pnpm-workspace.yaml. A relative manifestPath is resolved against root.
func LoadManifest(root string, manifestPath string) (Manifest, error) {
	trimmedManifestPath := strings.TrimSpace(manifestPath)
	if len(trimmedManifestPath) > 0 {
		if !filepath.IsAbs(trimmedManifestPath) {
			trimmedManifestPath = filepath.Join(root, trimmedManifestPath)
		}
		return loadManifestFile(trimmedManifestPath)
	}

	candidatePaths := []string{
		filepath.Join(root, PackageJSONFileName),
		filepath.Join(root, PnpmWorkspaceFileName),
	}
	for _, candidatePath := range candidatePaths {
		manifest, loadError := loadManifestFile(candidatePath)
		if errors.Is(loadError, ErrManifestNotFound) {
			continue
		}
		return manifest, loadError
	}

	return Manifest{}, fmt.Errorf(manifestNotFoundTemplateConstant, ErrManifestNotFound, strings.Join(candidatePaths, manifestSearchedLocationsSeparator))
}

func loadManifestFile(manifestPath string) (Manifest, error) {
	format, formatKnown := detectFormat(manifestPath)
	if !formatKnown {
		return Manifest{}, fmt.Errorf(manifestUnsupportedFormatTemplate, ErrManifestMalformed, manifestPath)
	}

	content, readError := os.ReadFile(manifestPath)
	if readError != nil {
		if errors.Is(readError, fs.ErrNotExist) {
			return Manifest{}, fmt.Errorf(manifestNotFoundTemplateConstant, ErrManifestNotFound, manifestPath)
		}
		return Manifest{}, fmt.Errorf(manifestReadErrorTemplateConstant, manifestPath, readError)
	}

	var patterns []string
	var parseError error
	switch format {
	case ManifestFormatPackageJSON:
		patterns, parseError = parsePackageJSON(manifestPath, content)
	default:
		patterns, parseError = parsePnpmWorkspace(manifestPath, content)
	}
	if parseError != nil {
		return Manifest{}, parseError
	}

	return Manifest{Path: manifestPath, Format: format, Patterns: sanitizePatterns(patterns)}, nil
}

func detectFormat(manifestPath string) (ManifestFormat, bool) {
	switch strings.ToLower(filepath.Ext(manifestPath)) {
	case jsonExtensionConstant:
		return ManifestFormatPackageJSON, true
	case yamlExtensionConstant, ymlExtensionConstant:
		return ManifestFormatPnpmWorkspace, true
	default:
		return "", false
	}
}

// parsePackageJSON accepts both "workspaces": [...] and "workspaces": {"packages": [...]}.
func parsePackageJSON(manifestPath string, content []byte) ([]string, error) {
	var document map[string]any
	if unmarshalError := json.Unmarshal(content, &document); unmarshalError != nil {
		return nil, fmt.Errorf(manifestMalformedTemplateConstant, ErrManifestMalformed, manifestPath, unmarshalError)
	}

	workspacesValue, workspacesDefined := document[workspacesFieldNameConstant]
	if !workspacesDefined || workspacesValue == nil {
		return nil, fmt.Errorf(manifestMissingFieldTemplate, ErrManifestMalformed, manifestPath, workspacesFieldNameConstant)
	}

	var patterns []string
	switch typedWorkspaces := workspacesValue.(type) {
	case []any:
		if decodeError := decodeStrict(typedWorkspaces, &patterns); decodeError != nil {
			return nil, fmt.Errorf(manifestMalformedTemplateConstant, ErrManifestMalformed, manifestPath, decodeError)
		}
	case map[string]any:
		var workspaces yarnWorkspaces
		if decodeError := decodeStrict(typedWorkspaces, &workspaces); decodeError != nil {
			return nil, fmt.Errorf(manifestMalformedTemplateConstant, ErrManifestMalformed, manifestPath, decodeError)
		}
		if workspaces.Packages == nil {
			return nil, fmt.Errorf(manifestMissingFieldTemplate, ErrManifestMalformed, manifestPath, workspacesFieldNameConstant+".packages")
		}
		patterns = workspaces.Packages
	default:
		return nil, fmt.Errorf(manifestMissingFieldTemplate, ErrManifestMalformed, manifestPath, workspacesFieldNameConstant)
	}

	return patterns, nil
}

func decodeStrict(input any, target any) error {
	decoder, decoderError := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          "mapstructure",
		WeaklyTypedInput: false,
		Result:           target,
	})
	if decoderError != nil {
		return decoderError
	}
	return decoder.Decode(input)
}

func parsePnpmWorkspace(manifestPath string, content []byte) ([]string, error) {
	var document pnpmWorkspace
	if unmarshalError := yaml.Unmarshal(content, &document); unmarshalError != nil {
		return nil, fmt.Errorf(manifestMalformedTemplateConstant, ErrManifestMalformed, manifestPath, unmarshalError)
	}
	if document.Packages == nil {
		return nil, fmt.Errorf(manifestMissingFieldTemplate, ErrManifestMalformed, manifestPath, "packages")
	}
	return document.Packages, nil
}

func sanitizePatterns(rawPatterns []string) []string {
	sanitized := make([]string, 0, len(rawPatterns))
	for _, rawPattern := range rawPatterns {
		trimmedPattern := strings.TrimSpace(rawPattern)
		if len(trimmedPattern) == 0 {
			continue
		}
		sanitized = append(sanitized, trimmedPattern)
	}
	return sanitized
}
