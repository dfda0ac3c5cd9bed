// Package cli constructs the envsync command-line interface, wiring the Cobra
// command hierarchy, the layered configuration loader, and zap logging around
// the sync and check commands.
package cli
