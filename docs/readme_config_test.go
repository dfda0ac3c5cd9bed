package docs_test

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/temirov/envsync/cmd/cli"
	"github.com/temirov/envsync/internal/envsync"
	"github.com/temirov/envsync/internal/utils"
)

const (
	readmeFileNameConstant           = "README.md"
	yamlFenceStartConstant           = "```yaml"
	yamlFenceEndConstant             = "```"
	configHeaderMarkerConstant       = "# config.yaml"
	readmeSnippetFileNameConstant    = "config.yaml"
	parentDirectoryReferenceConstant = ".."
	missingHeaderMessageConstant     = "README example missing config header marker"
	missingStartFenceMessageConstant = "README example missing yaml fence start"
	missingEndFenceMessageConstant   = "README example missing yaml fence end"
)

type readmeConfiguration struct {
	Common struct {
		LogLevel  string `yaml:"log_level"`
		LogFormat string `yaml:"log_format"`
	} `yaml:"common"`
	Tools struct {
		Sync struct {
			Root         string `yaml:"root"`
			Manifest     string `yaml:"manifest"`
			TemplateFile string `yaml:"template_file"`
			EnvFile      string `yaml:"env_file"`
			Color        string `yaml:"color"`
			FailFast     bool   `yaml:"fail_fast"`
			DryRun       bool   `yaml:"dry_run"`
			AssumeYes    bool   `yaml:"assume_yes"`
		} `yaml:"sync"`
	} `yaml:"tools"`
}

func readReadmeConfigurationSnippet(testInstance *testing.T) string {
	testInstance.Helper()
	workingDirectory, workingDirectoryError := os.Getwd()
	require.NoError(testInstance, workingDirectoryError)

	contentBytes, readError := os.ReadFile(filepath.Join(workingDirectory, parentDirectoryReferenceConstant, readmeFileNameConstant))
	require.NoError(testInstance, readError)

	contentText := string(contentBytes)
	headerIndex := strings.Index(contentText, configHeaderMarkerConstant)
	require.NotEqual(testInstance, -1, headerIndex, missingHeaderMessageConstant)

	fenceStartIndex := strings.LastIndex(contentText[:headerIndex], yamlFenceStartConstant)
	require.NotEqual(testInstance, -1, fenceStartIndex, missingStartFenceMessageConstant)

	fenceEndRelativeIndex := strings.Index(contentText[headerIndex:], yamlFenceEndConstant)
	require.NotEqual(testInstance, -1, fenceEndRelativeIndex, missingEndFenceMessageConstant)

	return strings.TrimSpace(contentText[fenceStartIndex+len(yamlFenceStartConstant) : headerIndex+fenceEndRelativeIndex])
}

func TestReadmeConfigurationUsesKnownKeys(testInstance *testing.T) {
	snippet := readReadmeConfigurationSnippet(testInstance)

	decoder := yaml.NewDecoder(bytes.NewReader([]byte(snippet)))
	decoder.KnownFields(true)

	var configuration readmeConfiguration
	require.NoError(testInstance, decoder.Decode(&configuration))

	_, colorError := envsync.ParseColorMode(configuration.Tools.Sync.Color)
	require.NoError(testInstance, colorError)
	require.Equal(testInstance, envsync.DefaultCommandConfiguration().TemplateFile, configuration.Tools.Sync.TemplateFile)
}

func TestReadmeConfigurationLoads(testInstance *testing.T) {
	snippetPath := filepath.Join(testInstance.TempDir(), readmeSnippetFileNameConstant)
	require.NoError(testInstance, os.WriteFile(snippetPath, []byte(readReadmeConfigurationSnippet(testInstance)), 0o600))

	loader := utils.NewConfigurationLoader("config", "yaml", "ENVSYNCDOCS", nil)
	loader.SetEmbeddedConfiguration(cli.EmbeddedDefaultConfiguration())

	var configuration cli.ApplicationConfiguration
	metadata, loadError := loader.LoadConfiguration(snippetPath, envsync.DefaultConfigurationValues("tools.sync"), &configuration)
	require.NoError(testInstance, loadError)
	require.Equal(testInstance, snippetPath, metadata.ConfigFileUsed)

	sanitized := configuration.Tools.Sync.Sanitize()
	require.True(testInstance, filepath.IsAbs(sanitized.Root))
	require.Equal(testInstance, ".env", sanitized.EnvFile)
}
