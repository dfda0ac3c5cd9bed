package envsync

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/temirov/envsync/internal/envfile"
)

const (
	workspacesLineTemplateConstant   = "Workspaces: [%s]\n"
	workspacesSeparatorConstant      = ", "
	workspacePatternTemplateConstant = "%q"
	nothingToDoMessageConstant       = "Nothing to do here"
	actualNotFoundTemplateConstant   = "%s not found\n"
	createPromptTemplateConstant     = "Do you want to create a %s from %s ? (y/n): "
	createdTemplateConstant          = "%s created !\n"
	updatedTemplateConstant          = "%s updated !\n"
	missingLinesHeadingConstant      = "These lines are missing"
	uselessLinesHeadingConstant      = "These lines are useless"
	replaceHeadingConstant           = "What do you want to do ? (r/n)"
	replaceOptionTemplateConstant    = "- replace %s (r)\n"
	noopOptionMessageConstant        = "- do nothing (n)"
	replacePromptConstant            = "> "
	assumedAnswerTemplateConstant    = "%s%s (assumed)\n"
	dryRunCreateTemplateConstant     = "dry run: %s would be created from %s\n"
	dryRunReplaceTemplateConstant    = "dry run: %s differs from %s\n"
	failureTemplateConstant          = "error: %v"
	summaryTemplateConstant          = "%d package(s) checked: %d in sync, %d created, %d replaced, %d drifted, %d skipped, %d failed\n"
	lineTemplateConstant             = "%s\n"
	greenColorConstant               = "2"
	redColorConstant                 = "1"
	yellowColorConstant              = "3"
	cyanColorConstant                = "6"
)

// Reporter renders the operator-facing conversation.
type Reporter struct {
	writer       io.Writer
	headingStyle lipgloss.Style
	packageStyle lipgloss.Style
	fileStyle    lipgloss.Style
	missingStyle lipgloss.Style
	staleStyle   lipgloss.Style
	errorStyle   lipgloss.Style
}

// NewReporter constructs a Reporter writing to writer with styles bound to renderer.
func NewReporter(writer io.Writer, renderer *lipgloss.Renderer) *Reporter {
	if renderer == nil {
		renderer = NewRenderer(writer, ColorModeNever, nil)
	}
	return &Reporter{
		writer:       writer,
		headingStyle: renderer.NewStyle().Bold(true),
		packageStyle: renderer.NewStyle().Bold(true).Foreground(lipgloss.Color(yellowColorConstant)),
		fileStyle:    renderer.NewStyle().Foreground(lipgloss.Color(cyanColorConstant)),
		missingStyle: renderer.NewStyle().Foreground(lipgloss.Color(greenColorConstant)),
		staleStyle:   renderer.NewStyle().Foreground(lipgloss.Color(redColorConstant)),
		errorStyle:   renderer.NewStyle().Foreground(lipgloss.Color(redColorConstant)),
	}
}

// Workspaces lists the manifest patterns before the scan starts.
func (reporter *Reporter) Workspaces(patterns []string) {
	quotedPatterns := make([]string, 0, len(patterns))
	for _, pattern := range patterns {
		quotedPatterns = append(quotedPatterns, fmt.Sprintf(workspacePatternTemplateConstant, pattern))
	}
	reporter.printf(workspacesLineTemplateConstant, strings.Join(quotedPatterns, workspacesSeparatorConstant))
}

// PackageHeader announces the package being reconciled.
func (reporter *Reporter) PackageHeader(packagePath string) {
	reporter.printf(lineTemplateConstant, reporter.packageStyle.Render(packagePath))
}

// NothingToDo reports a package without a template file.
func (reporter *Reporter) NothingToDo() {
	reporter.printf(lineTemplateConstant, nothingToDoMessageConstant)
}

// ActualNotFound reports a package whose environment file does not exist.
func (reporter *Reporter) ActualNotFound(environmentFileName string) {
	reporter.printf(actualNotFoundTemplateConstant, reporter.file(environmentFileName))
}

// CreatePrompt returns the question asked before creating the environment file.
func (reporter *Reporter) CreatePrompt(environmentFileName string, templateFileName string) string {
	return fmt.Sprintf(createPromptTemplateConstant, reporter.file(environmentFileName), reporter.file(templateFileName))
}

// Created confirms the environment file was created.
func (reporter *Reporter) Created(environmentFileName string) {
	reporter.printf(createdTemplateConstant, reporter.file(environmentFileName))
}

// Updated confirms the environment file was replaced.
func (reporter *Reporter) Updated(environmentFileName string) {
	reporter.printf(updatedTemplateConstant, reporter.file(environmentFileName))
}

// Diff prints the missing and stale sections; empty sections are omitted.
func (reporter *Reporter) Diff(result envfile.DiffResult) {
	reporter.section(missingLinesHeadingConstant, result.Missing, reporter.missingStyle)
	reporter.section(uselessLinesHeadingConstant, result.Stale, reporter.staleStyle)
}

// ReplaceMenu prints the choices offered when the files differ and returns the prompt.
func (reporter *Reporter) ReplaceMenu(environmentFileName string) string {
	reporter.printf(lineTemplateConstant, reporter.headingStyle.Render(replaceHeadingConstant))
	reporter.printf(replaceOptionTemplateConstant, reporter.file(environmentFileName))
	reporter.printf(lineTemplateConstant, noopOptionMessageConstant)
	return replacePromptConstant
}

// AssumedAnswer echoes a prompt answered without reading input.
func (reporter *Reporter) AssumedAnswer(prompt string, answer string) {
	reporter.printf(assumedAnswerTemplateConstant, prompt, answer)
}

// DryRunCreate reports the environment file that would be created.
func (reporter *Reporter) DryRunCreate(environmentFileName string, templateFileName string) {
	reporter.printf(dryRunCreateTemplateConstant, reporter.file(environmentFileName), reporter.file(templateFileName))
}

// DryRunReplace reports an environment file that differs from its template.
func (reporter *Reporter) DryRunReplace(environmentFileName string, templateFileName string) {
	reporter.printf(dryRunReplaceTemplateConstant, reporter.file(environmentFileName), reporter.file(templateFileName))
}

// Failure reports a package-level error.
func (reporter *Reporter) Failure(failure error) {
	reporter.printf(lineTemplateConstant, reporter.errorStyle.Render(fmt.Sprintf(failureTemplateConstant, failure)))
}

// Summary prints the per-outcome package counts.
func (reporter *Reporter) Summary(summary Summary) {
	reporter.printf(
		summaryTemplateConstant,
		len(summary.Reports),
		summary.Count(OutcomeInSync),
		summary.Count(OutcomeCreated),
		summary.Count(OutcomeReplaced),
		summary.Count(OutcomeDrifted),
		summary.Count(OutcomeSkipped),
		summary.Count(OutcomeFailed),
	)
}

func (reporter *Reporter) section(heading string, entries envfile.EnvMap, style lipgloss.Style) {
	if len(entries) == 0 {
		return
	}
	reporter.printf(lineTemplateConstant, reporter.headingStyle.Render(heading))
	for _, line := range entries.Lines() {
		reporter.printf(lineTemplateConstant, style.Render(line))
	}
}

func (reporter *Reporter) file(fileName string) string {
	return reporter.fileStyle.Render(fileName)
}

func (reporter *Reporter) printf(format string, arguments ...any) {
	if reporter == nil || reporter.writer == nil {
		return
	}
	fmt.Fprintf(reporter.writer, format, arguments...)
}
