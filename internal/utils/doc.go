// Package utils holds the configuration loader, logger factory, and writer
// helpers shared by the envsync commands.
package utils
