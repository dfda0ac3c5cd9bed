package flags

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFormatChoiceUsage(testInstance *testing.T) {
	testCases := []struct {
		name           string
		defaultChoice  string
		choices        []string
		description    string
		expectedOutput string
	}{
		{
			name:           "ColorModes",
			defaultChoice:  "auto",
			choices:        []string{"auto", "always", "never"},
			description:    "Colorize the report.",
			expectedOutput: "`<AUTO|always|never>` Colorize the report.",
		},
		{
			name:           "DefaultLastChoice",
			defaultChoice:  "never",
			choices:        []string{"auto", "always", "never"},
			description:    "Colorize the report.",
			expectedOutput: "`<auto|always|NEVER>` Colorize the report.",
		},
		{
			name:           "EmptyDescription",
			defaultChoice:  "alpha",
			choices:        []string{"alpha", "beta"},
			description:    "",
			expectedOutput: "`<ALPHA|beta>`",
		},
		{
			name:           "DuplicateChoicesIgnored",
			defaultChoice:  "beta",
			choices:        []string{"beta", "beta", "alpha", "alpha"},
			description:    "Select between options.",
			expectedOutput: "`<BETA|alpha>` Select between options.",
		},
		{
			name:           "WhitespaceTrimmed",
			defaultChoice:  " Always ",
			choices:        []string{" auto ", " always "},
			description:    "  ",
			expectedOutput: "`<auto|ALWAYS>`",
		},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(subtest *testing.T) {
			actual := FormatChoiceUsage(testCase.defaultChoice, testCase.choices, testCase.description)
			require.Equal(subtest, testCase.expectedOutput, actual)
		})
	}
}

func TestMatchChoice(testInstance *testing.T) {
	choices := []string{"auto", "always", "never"}

	testCases := []struct {
		name           string
		value          string
		expectedChoice string
		expectedMatch  bool
	}{
		{name: "Exact", value: "always", expectedChoice: "always", expectedMatch: true},
		{name: "MixedCaseAndSpaces", value: " NeVer ", expectedChoice: "never", expectedMatch: true},
		{name: "EmptyUsesDefault", value: "  ", expectedChoice: "auto", expectedMatch: true},
		{name: "Unknown", value: "sometimes", expectedMatch: false},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(subtest *testing.T) {
			choice, matched := MatchChoice(testCase.value, "auto", choices)
			require.Equal(subtest, testCase.expectedMatch, matched)
			require.Equal(subtest, testCase.expectedChoice, choice)
		})
	}
}
