// Package envfile reads KEY=VALUE environment files into EnvMap values and
// computes the missing and stale entries between a template and an actual file.
package envfile
