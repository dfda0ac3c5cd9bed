package envsync

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/multierr"
	"go.uber.org/zap"
)

const (
	defaultRootPathConstant            = "."
	defaultTemplateFileNameConstant    = ".env.example"
	defaultEnvironmentFileNameConstant = ".env"
	serviceDependencyMessageConstant   = "service requires a manifest loader, a package discoverer, a file system, and a resolver"
	resolveRootErrorTemplateConstant   = "resolve workspace root %s: %w"
	manifestLoadedLogMessageConstant   = "workspace manifest loaded"
	packagesDiscoveredLogMessage       = "workspace packages discovered"
	packageResolvedLogMessageConstant  = "package reconciled"
	packageFailedLogMessageConstant    = "package reconciliation failed"
	runCompletedLogMessageConstant     = "workspace reconciliation completed"
	logFieldRootConstant               = "workspace_root"
	logFieldManifestConstant           = "manifest_path"
	logFieldPatternsConstant           = "patterns"
	logFieldPackageCountConstant       = "package_count"
	logFieldPackagePathConstant        = "package_path"
	logFieldOutcomeConstant            = "outcome"
	logFieldMissingCountConstant       = "missing_count"
	logFieldStaleCountConstant         = "stale_count"
	logFieldFailureCountConstant       = "failure_count"
	logFieldDriftConstant              = "drift_detected"
)

// ErrServiceNotConfigured indicates a service dependency was missing.
var ErrServiceNotConfigured = errors.New(serviceDependencyMessageConstant)

// ServiceDependencies enumerates collaborators required by the service.
type ServiceDependencies struct {
	ManifestLoader ManifestLoader
	Discoverer     PackageDiscoverer
	FileSystem     FileSystem
	Resolver       *Resolver
	Reporter       *Reporter
	Logger         *zap.Logger
}

// Service reconciles every package of a workspace, one after another.
type Service struct {
	manifestLoader ManifestLoader
	discoverer     PackageDiscoverer
	fileSystem     FileSystem
	resolver       *Resolver
	reporter       *Reporter
	logger         *zap.Logger
}

// NewService constructs a Service from the provided dependencies.
func NewService(dependencies ServiceDependencies) (*Service, error) {
	if dependencies.ManifestLoader == nil || dependencies.Discoverer == nil || dependencies.FileSystem == nil || dependencies.Resolver == nil {
		return nil, ErrServiceNotConfigured
	}

	logger := dependencies.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Service{
		manifestLoader: dependencies.ManifestLoader,
		discoverer:     dependencies.Discoverer,
		fileSystem:     dependencies.FileSystem,
		resolver:       dependencies.Resolver,
		reporter:       dependencies.Reporter,
		logger:         logger,
	}, nil
}

// Run loads the workspace manifest, discovers its packages, and resolves each
// package in order.
//
// Manifest and discovery errors abort before any package is touched. A
// package failure is recorded and the scan continues unless FailFast is set;
// the failures are combined into the returned error. ErrInputClosed always
// aborts because no further answers can be read.
func (service *Service) Run(executionContext context.Context, options Options) (Summary, error) {
	options = normalizeOptions(options)
	summary := Summary{}

	root, rootError := service.fileSystem.Abs(options.Root)
	if rootError != nil {
		return summary, fmt.Errorf(resolveRootErrorTemplateConstant, options.Root, rootError)
	}

	manifest, manifestError := service.manifestLoader.LoadManifest(root, options.ManifestPath)
	if manifestError != nil {
		return summary, manifestError
	}
	service.logger.Info(
		manifestLoadedLogMessageConstant,
		zap.String(logFieldRootConstant, root),
		zap.String(logFieldManifestConstant, manifest.Path),
		zap.Strings(logFieldPatternsConstant, manifest.Patterns),
	)
	service.reporter.Workspaces(manifest.Patterns)

	packagePaths, discoveryError := service.discoverer.DiscoverPackages(root, manifest.Patterns)
	if discoveryError != nil {
		return summary, discoveryError
	}
	service.logger.Debug(packagesDiscoveredLogMessage, zap.Int(logFieldPackageCountConstant, len(packagePaths)))

	var combinedError error
	for _, packagePath := range packagePaths {
		if contextError := executionContext.Err(); contextError != nil {
			return summary, multierr.Append(combinedError, contextError)
		}

		report, resolveError := service.resolver.Resolve(PackageOptions{
			PackagePath:         packagePath,
			TemplateFileName:    options.TemplateFileName,
			EnvironmentFileName: options.EnvironmentFileName,
			DryRun:              options.DryRun,
			AssumeYes:           options.AssumeYes,
		})
		summary.Reports = append(summary.Reports, report)

		if resolveError != nil {
			service.logger.Warn(
				packageFailedLogMessageConstant,
				zap.String(logFieldPackagePathConstant, packagePath),
				zap.Error(resolveError),
			)
			if options.FailFast || errors.Is(resolveError, ErrInputClosed) {
				return summary, multierr.Append(combinedError, resolveError)
			}
			combinedError = multierr.Append(combinedError, resolveError)
			continue
		}

		service.logger.Info(
			packageResolvedLogMessageConstant,
			zap.String(logFieldPackagePathConstant, packagePath),
			zap.String(logFieldOutcomeConstant, string(report.Outcome)),
			zap.Int(logFieldMissingCountConstant, len(report.Diff.Missing)),
			zap.Int(logFieldStaleCountConstant, len(report.Diff.Stale)),
		)
	}

	service.reporter.Summary(summary)
	service.logger.Info(
		runCompletedLogMessageConstant,
		zap.Int(logFieldPackageCountConstant, len(summary.Reports)),
		zap.Int(logFieldFailureCountConstant, len(summary.Failures())),
		zap.Bool(logFieldDriftConstant, summary.DriftDetected()),
	)

	return summary, combinedError
}

func normalizeOptions(options Options) Options {
	normalized := options
	normalized.Root = strings.TrimSpace(options.Root)
	if len(normalized.Root) == 0 {
		normalized.Root = defaultRootPathConstant
	}
	normalized.ManifestPath = strings.TrimSpace(options.ManifestPath)
	normalized.TemplateFileName = strings.TrimSpace(options.TemplateFileName)
	if len(normalized.TemplateFileName) == 0 {
		normalized.TemplateFileName = defaultTemplateFileNameConstant
	}
	normalized.EnvironmentFileName = strings.TrimSpace(options.EnvironmentFileName)
	if len(normalized.EnvironmentFileName) == 0 {
		normalized.EnvironmentFileName = defaultEnvironmentFileNameConstant
	}
	return normalized
}
