package envsync

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/envsync/internal/envfile"
)

func TestReporterPlainOutput(testInstance *testing.T) {
	testCases := []struct {
		name           string
		render         func(reporter *Reporter)
		expectedOutput string
	}{
		{
			name: "Workspaces",
			render: func(reporter *Reporter) {
				reporter.Workspaces([]string{"apps/*", "packages/*"})
			},
			expectedOutput: "Workspaces: [\"apps/*\", \"packages/*\"]\n",
		},
		{
			name: "DiffOmitsEmptySections",
			render: func(reporter *Reporter) {
				reporter.Diff(envfile.DiffResult{Missing: envfile.EnvMap{"B": "2", "A": "1"}, Stale: envfile.EnvMap{}})
			},
			expectedOutput: "These lines are missing\nA=1\nB=2\n",
		},
		{
			name: "ReplaceMenu",
			render: func(reporter *Reporter) {
				reporter.printf("%s", reporter.ReplaceMenu(".env"))
			},
			expectedOutput: "What do you want to do ? (r/n)\n- replace .env (r)\n- do nothing (n)\n> ",
		},
		{
			name: "Failure",
			render: func(reporter *Reporter) {
				reporter.Failure(errors.New("permission denied"))
			},
			expectedOutput: "error: permission denied\n",
		},
		{
			name: "Summary",
			render: func(reporter *Reporter) {
				reporter.Summary(Summary{Reports: []PackageReport{
					{Outcome: OutcomeInSync},
					{Outcome: OutcomeCreated},
					{Outcome: OutcomeFailed},
					{Outcome: OutcomeSkipped},
				}})
			},
			expectedOutput: "4 package(s) checked: 1 in sync, 1 created, 0 replaced, 0 drifted, 1 skipped, 1 failed\n",
		},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(subtest *testing.T) {
			output := &bytes.Buffer{}
			testCase.render(NewReporter(output, NewRenderer(output, ColorModeNever, nil)))
			require.Equal(subtest, testCase.expectedOutput, output.String())
		})
	}
}

func TestReporterColorsWhenForced(testInstance *testing.T) {
	output := &bytes.Buffer{}
	reporter := NewReporter(output, NewRenderer(output, ColorModeAlways, nil))

	reporter.Failure(errors.New("permission denied"))
	require.Contains(testInstance, output.String(), "\x1b[")
	require.Contains(testInstance, output.String(), "error: permission denied")
}

func TestNilReporterIgnoresOutput(testInstance *testing.T) {
	var reporter *Reporter
	require.NotPanics(testInstance, func() {
		reporter.Workspaces([]string{"apps/*"})
		reporter.Summary(Summary{})
	})
}
