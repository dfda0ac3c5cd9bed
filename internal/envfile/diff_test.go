package envfile_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/envsync/internal/envfile"
)

func TestDiff(testInstance *testing.T) {
	testCases := []struct {
		name            string
		template        envfile.EnvMap
		actual          envfile.EnvMap
		expectedMissing envfile.EnvMap
		expectedStale   envfile.EnvMap
	}{
		{
			name:            "MissingAndStale",
			template:        envfile.EnvMap{"A": "1", "B": "2"},
			actual:          envfile.EnvMap{"A": "1", "C": "3"},
			expectedMissing: envfile.EnvMap{"B": "2"},
			expectedStale:   envfile.EnvMap{"C": "3"},
		},
		{
			name:            "IdenticalKeysWithDifferentValues",
			template:        envfile.EnvMap{"A": "template", "B": ""},
			actual:          envfile.EnvMap{"A": "local", "B": "secret"},
			expectedMissing: envfile.EnvMap{},
			expectedStale:   envfile.EnvMap{},
		},
		{
			name:            "EmptyActual",
			template:        envfile.EnvMap{"A": "1"},
			actual:          envfile.EnvMap{},
			expectedMissing: envfile.EnvMap{"A": "1"},
			expectedStale:   envfile.EnvMap{},
		},
		{
			name:            "EmptyTemplate",
			template:        envfile.EnvMap{},
			actual:          envfile.EnvMap{"A": "1"},
			expectedMissing: envfile.EnvMap{},
			expectedStale:   envfile.EnvMap{"A": "1"},
		},
	}

	for _, testCase := range testCases {
		testCase := testCase
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			result := envfile.Diff(testCase.template, testCase.actual)
			require.Equal(testInstance, testCase.expectedMissing, result.Missing)
			require.Equal(testInstance, testCase.expectedStale, result.Stale)
			require.Equal(testInstance, len(testCase.expectedMissing) == 0 && len(testCase.expectedStale) == 0, result.Empty())
		})
	}
}

func TestDiffSetsAreDisjointAndSourced(testInstance *testing.T) {
	template := envfile.EnvMap{"SHARED": "t", "ONLY_TEMPLATE": "1", "ALSO_TEMPLATE": ""}
	actual := envfile.EnvMap{"SHARED": "a", "ONLY_ACTUAL": "2"}

	result := envfile.Diff(template, actual)

	for key := range result.Missing {
		require.False(testInstance, result.Stale.Has(key))
		require.True(testInstance, template.Has(key))
		require.False(testInstance, actual.Has(key))
		require.Equal(testInstance, template[key], result.Missing[key])
	}
	for key := range result.Stale {
		require.True(testInstance, actual.Has(key))
		require.False(testInstance, template.Has(key))
		require.Equal(testInstance, actual[key], result.Stale[key])
	}
	require.Len(testInstance, result.Missing, 2)
	require.Len(testInstance, result.Stale, 1)
}
