package envsync

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/temirov/envsync/internal/envfile"
)

const (
	createAnswerYesConstant      = "y"
	createAnswerNoConstant       = "n"
	replaceAnswerReplaceConstant = "r"
	replaceAnswerNothingConstant = "n"
	fileCopyFailedMessage        = "environment file could not be written"
	fileCopyErrorTemplate        = "%w: %w"
	packageErrorTemplate         = "%s: %w"
	resolverDependencyMessage    = "resolver requires a file system, a prompter, and a reporter"
)

// ErrFileCopyFailed indicates the template could not be copied over the environment file.
var ErrFileCopyFailed = errors.New(fileCopyFailedMessage)

// ErrResolverNotConfigured indicates a resolver dependency was missing.
var ErrResolverNotConfigured = errors.New(resolverDependencyMessage)

// Resolver reconciles one package's environment file with its template.
type Resolver struct {
	fileSystem FileSystem
	prompter   AnswerPrompter
	reporter   *Reporter
}

// NewResolver constructs a Resolver from its collaborators.
func NewResolver(fileSystem FileSystem, prompter AnswerPrompter, reporter *Reporter) (*Resolver, error) {
	if fileSystem == nil || prompter == nil || reporter == nil {
		return nil, ErrResolverNotConfigured
	}
	return &Resolver{fileSystem: fileSystem, prompter: prompter, reporter: reporter}, nil
}

// Resolve loads the template and environment files of a package, reports how
// they differ, and applies the operator's decision.
//
// A package without a template is skipped. A package without an environment
// file is offered a copy of the template. Otherwise the missing and stale
// entries are listed and, when any exist, the operator may replace the
// environment file with the template. The returned error is non-nil only for
// read, write, or input failures, in which case the report outcome is failed.
func (resolver *Resolver) Resolve(options PackageOptions) (PackageReport, error) {
	report := PackageReport{Path: options.PackagePath}
	templatePath := filepath.Join(options.PackagePath, options.TemplateFileName)
	environmentPath := filepath.Join(options.PackagePath, options.EnvironmentFileName)

	resolver.reporter.PackageHeader(options.PackagePath)

	template, templateError := envfile.LoadWith(resolver.fileSystem, templatePath)
	if templateError != nil {
		if errors.Is(templateError, envfile.ErrFileNotFound) {
			resolver.reporter.NothingToDo()
			report.Outcome = OutcomeSkipped
			return report, nil
		}
		return resolver.fail(report, templateError)
	}

	actual, actualError := envfile.LoadWith(resolver.fileSystem, environmentPath)
	if actualError != nil {
		if errors.Is(actualError, envfile.ErrFileNotFound) {
			report.ActualMissing = true
			return resolver.resolveMissingActual(report, options, templatePath, environmentPath)
		}
		return resolver.fail(report, actualError)
	}

	report.Diff = envfile.Diff(template, actual)
	return resolver.resolvePresentActual(report, options, templatePath, environmentPath)
}

func (resolver *Resolver) resolveMissingActual(report PackageReport, options PackageOptions, templatePath string, environmentPath string) (PackageReport, error) {
	resolver.reporter.ActualNotFound(options.EnvironmentFileName)

	if options.DryRun {
		resolver.reporter.DryRunCreate(options.EnvironmentFileName, options.TemplateFileName)
		report.Outcome = OutcomeDrifted
		return report, nil
	}

	prompt := resolver.reporter.CreatePrompt(options.EnvironmentFileName, options.TemplateFileName)
	answer, answerError := resolver.answer(prompt, options.AssumeYes, createAnswerYesConstant, createAnswerNoConstant)
	if answerError != nil {
		return resolver.fail(report, answerError)
	}

	if answer != createAnswerYesConstant {
		report.Outcome = OutcomeDeclined
		return report, nil
	}

	if copyError := resolver.copyTemplate(templatePath, environmentPath); copyError != nil {
		return resolver.fail(report, copyError)
	}
	resolver.reporter.Created(options.EnvironmentFileName)
	report.Outcome = OutcomeCreated
	return report, nil
}

func (resolver *Resolver) resolvePresentActual(report PackageReport, options PackageOptions, templatePath string, environmentPath string) (PackageReport, error) {
	resolver.reporter.Diff(report.Diff)

	if report.Diff.Empty() {
		report.Outcome = OutcomeInSync
		return report, nil
	}

	if options.DryRun {
		resolver.reporter.DryRunReplace(options.EnvironmentFileName, options.TemplateFileName)
		report.Outcome = OutcomeDrifted
		return report, nil
	}

	prompt := resolver.reporter.ReplaceMenu(options.EnvironmentFileName)
	answer, answerError := resolver.answer(prompt, options.AssumeYes, replaceAnswerReplaceConstant, replaceAnswerNothingConstant)
	if answerError != nil {
		return resolver.fail(report, answerError)
	}

	if answer != replaceAnswerReplaceConstant {
		report.Outcome = OutcomeKept
		return report, nil
	}

	if copyError := resolver.copyTemplate(templatePath, environmentPath); copyError != nil {
		return resolver.fail(report, copyError)
	}
	resolver.reporter.Updated(options.EnvironmentFileName)
	report.Outcome = OutcomeReplaced
	return report, nil
}

// answer returns affirmativeAnswer without reading input when assumeYes is set.
func (resolver *Resolver) answer(prompt string, assumeYes bool, affirmativeAnswer string, negativeAnswer string) (string, error) {
	if assumeYes {
		resolver.reporter.AssumedAnswer(prompt, affirmativeAnswer)
		return affirmativeAnswer, nil
	}
	return resolver.prompter.Ask(prompt, ExactAnswer(affirmativeAnswer, negativeAnswer))
}

func (resolver *Resolver) copyTemplate(templatePath string, environmentPath string) error {
	if copyError := resolver.fileSystem.CopyFile(templatePath, environmentPath); copyError != nil {
		return fmt.Errorf(fileCopyErrorTemplate, ErrFileCopyFailed, copyError)
	}
	return nil
}

func (resolver *Resolver) fail(report PackageReport, failure error) (PackageReport, error) {
	report.Outcome = OutcomeFailed
	report.Error = fmt.Errorf(packageErrorTemplate, report.Path, failure)
	resolver.reporter.Failure(failure)
	return report, report.Error
}
