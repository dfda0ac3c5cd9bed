package envfile

// DiffResult holds the entries that differ between a template and an actual file.
type DiffResult struct {
	// Missing holds template entries whose key is absent from the actual file.
	Missing EnvMap
	// Stale holds actual entries whose key is absent from the template.
	Stale EnvMap
}

// Diff compares the template against the actual environment by key.
func Diff(template EnvMap, actual EnvMap) DiffResult {
	result := DiffResult{Missing: EnvMap{}, Stale: EnvMap{}}

	for key, value := range template {
		if !actual.Has(key) {
			result.Missing[key] = value
		}
	}

	for key, value := range actual {
		if !template.Has(key) {
			result.Stale[key] = value
		}
	}

	return result
}

// Empty reports whether both files define the same keys.
func (result DiffResult) Empty() bool {
	return len(result.Missing) == 0 && len(result.Stale) == 0
}
