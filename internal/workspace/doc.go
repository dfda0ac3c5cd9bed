// Package workspace resolves the package directories of a JavaScript-style
// monorepo.
//
// LoadManifest reads the list of package path patterns from package.json
// (npm and yarn "workspaces" shapes) or pnpm-workspace.yaml, and
// PackageDiscoverer expands those patterns beneath an explicit workspace root.
package workspace
