package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/envsync/internal/envsync"
)

const (
	testTemplateFileNameConstant    = ".env.example"
	testEnvironmentFileNameConstant = ".env"
	testConfigurationFileConstant   = "config.yaml"
	testPackageJSONContentConstant  = `{"workspaces": {"packages": ["apps/*"]}}`
)

func newApplicationWorkspace(testInstance *testing.T) (string, string) {
	testInstance.Helper()
	return newApplicationWorkspaceAt(testInstance, testInstance.TempDir())
}

func newApplicationWorkspaceAt(testInstance *testing.T, root string) (string, string) {
	testInstance.Helper()
	packagePath := filepath.Join(root, "apps", "web")
	require.NoError(testInstance, os.MkdirAll(packagePath, 0o755))
	require.NoError(testInstance, os.WriteFile(filepath.Join(root, "package.json"), []byte(testPackageJSONContentConstant), 0o644))
	require.NoError(testInstance, os.WriteFile(filepath.Join(packagePath, testTemplateFileNameConstant), []byte("A=1\nB=2\n"), 0o644))
	require.NoError(testInstance, os.WriteFile(filepath.Join(packagePath, testEnvironmentFileNameConstant), []byte("A=1\nC=3\n"), 0o644))
	return root, packagePath
}

func executeApplication(testInstance *testing.T, input string, arguments ...string) (*Application, string, error) {
	testInstance.Helper()
	return executeApplicationIn(testInstance, testInstance.TempDir(), input, arguments...)
}

func executeApplicationIn(testInstance *testing.T, workingDirectory string, input string, arguments ...string) (*Application, string, error) {
	testInstance.Helper()
	testInstance.Chdir(workingDirectory)
	testInstance.Setenv("HOME", testInstance.TempDir())
	testInstance.Setenv("XDG_CONFIG_HOME", testInstance.TempDir())

	application := NewApplication()
	output := &bytes.Buffer{}
	application.rootCommand.SetIn(strings.NewReader(input))
	application.rootCommand.SetOut(output)
	application.rootCommand.SetErr(output)
	application.rootCommand.SetArgs(arguments)

	executionError := application.Execute()
	return application, output.String(), executionError
}

func TestApplicationRegistersCommands(testInstance *testing.T) {
	application := NewApplication()

	for _, commandName := range []string{"sync", "check"} {
		command, _, findError := application.rootCommand.Find([]string{commandName})
		require.NoError(testInstance, findError)
		require.Equal(testInstance, commandName, command.Name())
	}

	for _, flagName := range []string{"manifest", "template-file", "env-file", "color", "fail-fast", "dry-run", "yes"} {
		require.NotNil(testInstance, application.rootCommand.Flags().Lookup(flagName), flagName)
	}
	for _, flagName := range []string{configFileFlagNameConstant, logLevelFlagNameConstant, logFormatFlagNameConstant} {
		require.NotNil(testInstance, application.rootCommand.PersistentFlags().Lookup(flagName), flagName)
	}
}

func TestApplicationCommands(testInstance *testing.T) {
	testCases := []struct {
		name                string
		input               string
		argumentsFor        func(root string) []string
		expectedError       error
		expectedEnvironment string
		expectedOutput      string
	}{
		{
			name:  "BareRootRunsSync",
			input: "r\n",
			argumentsFor: func(root string) []string {
				return []string{root, "--color", "never"}
			},
			expectedEnvironment: "A=1\nB=2\n",
			expectedOutput:      ".env updated !\n",
		},
		{
			name:  "SyncSubcommandKeeps",
			input: "n\n",
			argumentsFor: func(root string) []string {
				return []string{"sync", root}
			},
			expectedEnvironment: "A=1\nC=3\n",
			expectedOutput:      "What do you want to do ? (r/n)\n",
		},
		{
			name: "CheckReportsDrift",
			argumentsFor: func(root string) []string {
				return []string{"check", root, "--log-level", "debug"}
			},
			expectedError:       envsync.ErrDriftDetected,
			expectedEnvironment: "A=1\nC=3\n",
			expectedOutput:      "dry run: .env differs from .env.example\n",
		},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(subtest *testing.T) {
			root, packagePath := newApplicationWorkspace(subtest)

			_, output, executionError := executeApplication(subtest, testCase.input, testCase.argumentsFor(root)...)
			if testCase.expectedError != nil {
				require.ErrorIs(subtest, executionError, testCase.expectedError)
			} else {
				require.NoError(subtest, executionError)
			}
			require.Contains(subtest, output, testCase.expectedOutput)

			environmentContent, readError := os.ReadFile(filepath.Join(packagePath, testEnvironmentFileNameConstant))
			require.NoError(subtest, readError)
			require.Equal(subtest, testCase.expectedEnvironment, string(environmentContent))
		})
	}
}

func TestApplicationSyncAcceptsRootNamedAfterCommand(testInstance *testing.T) {
	workingDirectory := testInstance.TempDir()
	_, packagePath := newApplicationWorkspaceAt(testInstance, filepath.Join(workingDirectory, "sync"))

	_, output, executionError := executeApplicationIn(testInstance, workingDirectory, "r\n", "sync", "sync", "--color", "never")
	require.NoError(testInstance, executionError)
	require.Contains(testInstance, output, ".env updated !\n")

	environmentContent, readError := os.ReadFile(filepath.Join(packagePath, testEnvironmentFileNameConstant))
	require.NoError(testInstance, readError)
	require.Equal(testInstance, "A=1\nB=2\n", string(environmentContent))
}

func TestApplicationConfigurationSources(testInstance *testing.T) {
	root, packagePath := newApplicationWorkspace(testInstance)
	require.NoError(testInstance, os.Rename(
		filepath.Join(packagePath, testTemplateFileNameConstant),
		filepath.Join(packagePath, ".env.sample"),
	))

	configurationPath := filepath.Join(testInstance.TempDir(), testConfigurationFileConstant)
	configurationContent := "tools:\n  sync:\n    root: " + root + "\n    template_file: .env.sample\n    color: never\n"
	require.NoError(testInstance, os.WriteFile(configurationPath, []byte(configurationContent), 0o600))

	testInstance.Setenv("ENVSYNC_TOOLS_SYNC_ASSUME_YES", "true")

	application, output, executionError := executeApplication(testInstance, "", "sync", "--config", configurationPath)
	require.NoError(testInstance, executionError)
	require.Equal(testInstance, configurationPath, application.configurationMetadata.ConfigFileUsed)
	require.Equal(testInstance, ".env.sample", application.configuration.Tools.Sync.TemplateFile)
	require.True(testInstance, application.configuration.Tools.Sync.AssumeYes)
	require.Contains(testInstance, output, "> r (assumed)\n")

	environmentContent, readError := os.ReadFile(filepath.Join(packagePath, testEnvironmentFileNameConstant))
	require.NoError(testInstance, readError)
	require.Equal(testInstance, "A=1\nB=2\n", string(environmentContent))
}

func TestApplicationEmbeddedDefaults(testInstance *testing.T) {
	application, _, executionError := executeApplication(testInstance, "", "check", testInstance.TempDir())
	require.Error(testInstance, executionError)
	require.Equal(testInstance, "error", application.configuration.Common.LogLevel)
	require.Equal(testInstance, "console", application.configuration.Common.LogFormat)
	require.Equal(testInstance, envsync.DefaultCommandConfiguration(), application.configuration.Tools.Sync)
}

func TestApplicationRejectsUnknownLogLevel(testInstance *testing.T) {
	_, _, executionError := executeApplication(testInstance, "", "check", "--log-level", "verbose")
	require.Error(testInstance, executionError)
	require.Contains(testInstance, executionError.Error(), "unable to create logger")
}
