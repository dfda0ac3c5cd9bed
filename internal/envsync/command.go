package envsync

import (
	"errors"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/temirov/envsync/internal/filesystem"
	flagutils "github.com/temirov/envsync/internal/utils/flags"
	"github.com/temirov/envsync/internal/workspace"
)

const (
	syncCommandUseConstant               = "sync [workspace-root]"
	syncCommandShortDescriptionConstant  = "Reconcile package environment files with their templates"
	syncCommandLongDescriptionConstant   = "sync reads the workspace manifest, visits every package it lists, reports variables missing from or unknown to each package's environment file, and offers to create or replace the file from its template."
	syncCommandExampleConstant           = "envsync sync ~/Development/monorepo --template-file .env.sample"
	checkCommandUseConstant              = "check [workspace-root]"
	checkCommandShortDescriptionConstant = "Report environment files that drift from their templates"
	checkCommandLongDescriptionConstant  = "check reports the same differences as sync without prompting or writing files, and exits with an error when any package drifts from its template."
	checkCommandExampleConstant          = "envsync check --manifest pnpm-workspace.yaml"
	manifestFlagNameConstant             = "manifest"
	manifestFlagUsageConstant            = "Workspace manifest path (defaults to package.json, then pnpm-workspace.yaml)"
	templateFileFlagNameConstant         = "template-file"
	templateFileFlagUsageConstant        = "Template file name inside each package"
	envFileFlagNameConstant              = "env-file"
	envFileFlagUsageConstant             = "Environment file name inside each package"
	colorFlagNameConstant                = "color"
	colorFlagUsageConstant               = "Colorize the report."
	failFastFlagNameConstant             = "fail-fast"
	failFastFlagUsageConstant            = "Stop at the first package that fails"
	driftDetectedMessageConstant         = "environment files drift from their templates"
)

// ErrDriftDetected indicates the check command found packages that differ from their templates.
var ErrDriftDetected = errors.New(driftDetectedMessageConstant)

// LoggerProvider supplies a zap logger for command execution.
type LoggerProvider func() *zap.Logger

// CommandMode selects between the interactive sync command and the read-only check command.
type CommandMode string

// Supported command modes.
const (
	CommandModeSync  CommandMode = "sync"
	CommandModeCheck CommandMode = "check"
)

// CommandBuilder assembles the sync and check cobra commands with configurable dependencies.
type CommandBuilder struct {
	Mode                  CommandMode
	LoggerProvider        LoggerProvider
	ConfigurationProvider func() CommandConfiguration
	ManifestLoader        ManifestLoader
	Discoverer            PackageDiscoverer
	FileSystem            FileSystem
	Prompter              AnswerPrompter
	TerminalDetector      TerminalDetector
}

// Build constructs the cobra command for the configured mode.
func (builder *CommandBuilder) Build() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:     syncCommandUseConstant,
		Short:   syncCommandShortDescriptionConstant,
		Long:    syncCommandLongDescriptionConstant,
		Example: syncCommandExampleConstant,
		Args:    cobra.MaximumNArgs(1),
		RunE:    builder.Run,
	}
	if builder.Mode == CommandModeCheck {
		command.Use = checkCommandUseConstant
		command.Short = checkCommandShortDescriptionConstant
		command.Long = checkCommandLongDescriptionConstant
		command.Example = checkCommandExampleConstant
	}

	builder.BindFlags(command)

	return command, nil
}

// BindFlags attaches the command flags to command, which lets the root command accept them too.
func (builder *CommandBuilder) BindFlags(command *cobra.Command) {
	defaults := DefaultCommandConfiguration()

	command.Flags().String(manifestFlagNameConstant, "", manifestFlagUsageConstant)
	command.Flags().String(templateFileFlagNameConstant, defaults.TemplateFile, templateFileFlagUsageConstant)
	command.Flags().String(envFileFlagNameConstant, defaults.EnvFile, envFileFlagUsageConstant)
	command.Flags().String(colorFlagNameConstant, defaults.Color, flagutils.FormatChoiceUsage(defaults.Color, ColorModeChoices, colorFlagUsageConstant))
	command.Flags().Bool(failFastFlagNameConstant, defaults.FailFast, failFastFlagUsageConstant)

	if builder.Mode == CommandModeCheck {
		return
	}

	flagutils.BindExecutionFlags(
		command,
		flagutils.ExecutionDefaults{},
		flagutils.ExecutionFlagDefinitions{
			DryRun:    flagutils.ExecutionFlagDefinition{Name: flagutils.DryRunFlagName, Usage: flagutils.DryRunFlagUsage, Enabled: true},
			AssumeYes: flagutils.ExecutionFlagDefinition{Name: flagutils.AssumeYesFlagName, Usage: flagutils.AssumeYesFlagUsage, Shorthand: flagutils.AssumeYesFlagShorthand, Enabled: true},
		},
	)
}

// Run executes the workspace reconciliation for command.
func (builder *CommandBuilder) Run(command *cobra.Command, arguments []string) error {
	options, colorMode, optionsError := builder.parseOptions(command, arguments)
	if optionsError != nil {
		return optionsError
	}

	output := command.OutOrStdout()
	reporter := NewReporter(output, NewRenderer(output, colorMode, builder.TerminalDetector))

	service, serviceError := builder.buildService(command.InOrStdin(), output, reporter)
	if serviceError != nil {
		return serviceError
	}

	summary, runError := service.Run(command.Context(), options)
	if builder.Mode == CommandModeCheck && summary.DriftDetected() {
		runError = multierr.Append(runError, ErrDriftDetected)
	}
	return runError
}

func (builder *CommandBuilder) buildService(input io.Reader, output io.Writer, reporter *Reporter) (*Service, error) {
	fileSystem := builder.FileSystem
	if fileSystem == nil {
		fileSystem = filesystem.OSFileSystem{}
	}

	prompter := builder.Prompter
	if prompter == nil {
		prompter = NewIOAnswerPrompter(input, output)
	}

	manifestLoader := builder.ManifestLoader
	if manifestLoader == nil {
		manifestLoader = workspace.FileManifestLoader{}
	}

	discoverer := builder.Discoverer
	if discoverer == nil {
		discoverer = workspace.NewPackageDiscoverer()
	}

	resolver, resolverError := NewResolver(fileSystem, prompter, reporter)
	if resolverError != nil {
		return nil, resolverError
	}

	return NewService(ServiceDependencies{
		ManifestLoader: manifestLoader,
		Discoverer:     discoverer,
		FileSystem:     fileSystem,
		Resolver:       resolver,
		Reporter:       reporter,
		Logger:         builder.resolveLogger(),
	})
}

func (builder *CommandBuilder) parseOptions(command *cobra.Command, arguments []string) (Options, ColorMode, error) {
	configuration := builder.resolveConfiguration()

	if len(arguments) > 0 {
		configuration.Root = arguments[0]
	}
	configuration.Manifest = stringFlagOverride(command, manifestFlagNameConstant, configuration.Manifest)
	configuration.TemplateFile = stringFlagOverride(command, templateFileFlagNameConstant, configuration.TemplateFile)
	configuration.EnvFile = stringFlagOverride(command, envFileFlagNameConstant, configuration.EnvFile)
	configuration.Color = stringFlagOverride(command, colorFlagNameConstant, configuration.Color)
	configuration.FailFast = boolFlagOverride(command, failFastFlagNameConstant, configuration.FailFast)
	configuration.DryRun = boolFlagOverride(command, flagutils.DryRunFlagName, configuration.DryRun)
	configuration.AssumeYes = boolFlagOverride(command, flagutils.AssumeYesFlagName, configuration.AssumeYes)
	configuration = configuration.Sanitize()

	colorMode, colorError := ParseColorMode(configuration.Color)
	if colorError != nil {
		return Options{}, "", colorError
	}

	options := Options{
		Root:                configuration.Root,
		ManifestPath:        configuration.Manifest,
		TemplateFileName:    configuration.TemplateFile,
		EnvironmentFileName: configuration.EnvFile,
		DryRun:              configuration.DryRun,
		AssumeYes:           configuration.AssumeYes,
		FailFast:            configuration.FailFast,
	}
	if builder.Mode == CommandModeCheck {
		options.DryRun = true
		options.AssumeYes = false
	}

	return options, colorMode, nil
}

func (builder *CommandBuilder) resolveConfiguration() CommandConfiguration {
	if builder.ConfigurationProvider == nil {
		return DefaultCommandConfiguration()
	}
	return builder.ConfigurationProvider()
}

func (builder *CommandBuilder) resolveLogger() *zap.Logger {
	if builder.LoggerProvider == nil {
		return zap.NewNop()
	}
	logger := builder.LoggerProvider()
	if logger == nil {
		return zap.NewNop()
	}
	return logger
}

func stringFlagOverride(command *cobra.Command, flagName string, configuredValue string) string {
	if command == nil || command.Flags().Lookup(flagName) == nil || !command.Flags().Changed(flagName) {
		return configuredValue
	}
	flagValue, flagError := command.Flags().GetString(flagName)
	if flagError != nil {
		return configuredValue
	}
	return flagValue
}

func boolFlagOverride(command *cobra.Command, flagName string, configuredValue bool) bool {
	if command == nil || command.Flags().Lookup(flagName) == nil || !command.Flags().Changed(flagName) {
		return configuredValue
	}
	flagValue, flagError := command.Flags().GetBool(flagName)
	if flagError != nil {
		return configuredValue
	}
	return flagValue
}
