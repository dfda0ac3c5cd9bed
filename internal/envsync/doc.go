// Package envsync reconciles each workspace package's environment file with
// its template.
//
// Service walks the packages listed by the workspace manifest one at a time.
// Resolver loads both files, reports the missing and stale variables, and
// asks the operator whether to create or replace the environment file from
// the template. CommandBuilder exposes the workflow as the sync and check
// Cobra commands.
package envsync
