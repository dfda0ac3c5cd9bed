package envsync

import "github.com/temirov/envsync/internal/envfile"

// Outcome describes what happened to a single package.
type Outcome string

// Package outcomes.
const (
	OutcomeSkipped  Outcome = "skipped"
	OutcomeCreated  Outcome = "created"
	OutcomeDeclined Outcome = "declined"
	OutcomeInSync   Outcome = "in-sync"
	OutcomeReplaced Outcome = "replaced"
	OutcomeKept     Outcome = "kept"
	OutcomeDrifted  Outcome = "drifted"
	OutcomeFailed   Outcome = "failed"
)

// Options configure a workspace run.
type Options struct {
	Root                string
	ManifestPath        string
	TemplateFileName    string
	EnvironmentFileName string
	DryRun              bool
	AssumeYes           bool
	FailFast            bool
}

// PackageOptions configure the reconciliation of one package.
type PackageOptions struct {
	PackagePath         string
	TemplateFileName    string
	EnvironmentFileName string
	DryRun              bool
	AssumeYes           bool
}

// PackageReport records the result of reconciling one package.
//
// ActualMissing is set when the environment file did not exist before the run.
type PackageReport struct {
	Path          string
	Outcome       Outcome
	ActualMissing bool
	Diff          envfile.DiffResult
	Error         error
}

// Summary collects the package reports of a run in processing order.
type Summary struct {
	Reports []PackageReport
}

// Failures returns the reports of packages that failed.
func (summary Summary) Failures() []PackageReport {
	var failures []PackageReport
	for _, report := range summary.Reports {
		if report.Outcome == OutcomeFailed {
			failures = append(failures, report)
		}
	}
	return failures
}

// DriftDetected reports whether any package differs from its template.
func (summary Summary) DriftDetected() bool {
	for _, report := range summary.Reports {
		if report.Outcome == OutcomeDrifted {
			return true
		}
	}
	return false
}

// Count returns how many packages ended with the outcome.
func (summary Summary) Count(outcome Outcome) int {
	count := 0
	for _, report := range summary.Reports {
		if report.Outcome == outcome {
			count++
		}
	}
	return count
}
