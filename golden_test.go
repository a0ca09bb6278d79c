package percent_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/bjaus/percent"
	"github.com/pmezard/go-difflib/difflib"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

type goldenCase struct {
	Name     string `yaml:"name"`
	Template string `yaml:"template"`
	Args     []any  `yaml:"args"`
	Want     string `yaml:"want"`
}

// TestGoldenCases runs the shared case table in testdata/cases.yaml. Each
// case is a template, its arguments, and the exact expected rendering.
func TestGoldenCases(t *testing.T) {
	t.Parallel()
	data, err := os.ReadFile(filepath.Join("testdata", "cases.yaml"))
	require.NoError(t, err)

	var cases []goldenCase
	require.NoError(t, yaml.Unmarshal(data, &cases))
	require.NotEmpty(t, cases)

	for _, tc := range cases {
		tc := tc
		t.Run(tc.Name, func(t *testing.T) {
			t.Parallel()
			got, err := percent.Format(tc.Template, tc.Args...)
			require.NoError(t, err)
			if got != tc.Want {
				diff, derr := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
					A:        difflib.SplitLines(tc.Want),
					B:        difflib.SplitLines(got),
					FromFile: "want",
					ToFile:   "got",
					Context:  2,
				})
				require.NoError(t, derr)
				t.Errorf("output mismatch for %q\n%s", tc.Template, diff)
			}
		})
	}
}
