package envsync

import (
	"strings"

	pathutils "github.com/temirov/envsync/internal/utils/path"
)

var configurationHomeDirectoryExpander = pathutils.NewHomeExpander()

const (
	configurationRootKeyConstant         = "root"
	configurationManifestKeyConstant     = "manifest"
	configurationTemplateFileKeyConstant = "template_file"
	configurationEnvFileKeyConstant      = "env_file"
	configurationColorKeyConstant        = "color"
	configurationFailFastKeyConstant     = "fail_fast"
	configurationDryRunKeyConstant       = "dry_run"
	configurationAssumeYesKeyConstant    = "assume_yes"
	configurationKeySeparatorConstant    = "."
)

// CommandConfiguration captures persistent settings for the sync and check commands.
type CommandConfiguration struct {
	Root         string `mapstructure:"root"`
	Manifest     string `mapstructure:"manifest"`
	TemplateFile string `mapstructure:"template_file"`
	EnvFile      string `mapstructure:"env_file"`
	Color        string `mapstructure:"color"`
	FailFast     bool   `mapstructure:"fail_fast"`
	DryRun       bool   `mapstructure:"dry_run"`
	AssumeYes    bool   `mapstructure:"assume_yes"`
}

// DefaultCommandConfiguration returns baseline configuration values.
func DefaultCommandConfiguration() CommandConfiguration {
	return CommandConfiguration{
		Root:         defaultRootPathConstant,
		Manifest:     "",
		TemplateFile: defaultTemplateFileNameConstant,
		EnvFile:      defaultEnvironmentFileNameConstant,
		Color:        string(ColorModeAuto),
		FailFast:     false,
		DryRun:       false,
		AssumeYes:    false,
	}
}

// DefaultConfigurationValues returns the defaults keyed for the configuration loader under prefix.
func DefaultConfigurationValues(prefix string) map[string]any {
	defaults := DefaultCommandConfiguration()
	keyPrefix := ""
	if trimmedPrefix := strings.TrimSpace(prefix); len(trimmedPrefix) > 0 {
		keyPrefix = trimmedPrefix + configurationKeySeparatorConstant
	}

	return map[string]any{
		keyPrefix + configurationRootKeyConstant:         defaults.Root,
		keyPrefix + configurationManifestKeyConstant:     defaults.Manifest,
		keyPrefix + configurationTemplateFileKeyConstant: defaults.TemplateFile,
		keyPrefix + configurationEnvFileKeyConstant:      defaults.EnvFile,
		keyPrefix + configurationColorKeyConstant:        defaults.Color,
		keyPrefix + configurationFailFastKeyConstant:     defaults.FailFast,
		keyPrefix + configurationDryRunKeyConstant:       defaults.DryRun,
		keyPrefix + configurationAssumeYesKeyConstant:    defaults.AssumeYes,
	}
}

// Sanitize trims values, expands a leading ~ in the root, and restores defaults for blank file names.
func (configuration CommandConfiguration) Sanitize() CommandConfiguration {
	defaults := DefaultCommandConfiguration()
	sanitized := configuration

	sanitized.Root = strings.TrimSpace(configuration.Root)
	if len(sanitized.Root) == 0 {
		sanitized.Root = defaults.Root
	}
	sanitized.Root = configurationHomeDirectoryExpander.Expand(sanitized.Root)

	sanitized.Manifest = configurationHomeDirectoryExpander.Expand(strings.TrimSpace(configuration.Manifest))

	sanitized.TemplateFile = strings.TrimSpace(configuration.TemplateFile)
	if len(sanitized.TemplateFile) == 0 {
		sanitized.TemplateFile = defaults.TemplateFile
	}

	sanitized.EnvFile = strings.TrimSpace(configuration.EnvFile)
	if len(sanitized.EnvFile) == 0 {
		sanitized.EnvFile = defaults.EnvFile
	}

	sanitized.Color = strings.ToLower(strings.TrimSpace(configuration.Color))
	if len(sanitized.Color) == 0 {
		sanitized.Color = defaults.Color
	}

	return sanitized
}
