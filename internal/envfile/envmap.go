package envfile

import (
	"fmt"
	"sort"
)

const (
	entryLineTemplateConstant = "%s=%s"
)

// EnvMap maps variable names to their raw values.
type EnvMap map[string]string

// Keys returns the variable names sorted lexicographically.
func (envMap EnvMap) Keys() []string {
	keys := make([]string, 0, len(envMap))
	for key := range envMap {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// Lines renders the entries as KEY=VALUE lines ordered by key.
func (envMap EnvMap) Lines() []string {
	lines := make([]string, 0, len(envMap))
	for _, key := range envMap.Keys() {
		lines = append(lines, fmt.Sprintf(entryLineTemplateConstant, key, envMap[key]))
	}
	return lines
}

// Has reports whether the variable is defined.
func (envMap EnvMap) Has(key string) bool {
	_, exists := envMap[key]
	return exists
}
