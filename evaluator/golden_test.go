package evaluator

import (
	"os"
	"path/filepath"
	"testing"

	"gopkg.in/yaml.v3"
)

// goldenCase is one yaml-driven evaluation case. These files are the
// working specification of the prelude surface.
type goldenCase struct {
	Name    string `yaml:"name"`
	Context string `yaml:"context"`
	Input   string `yaml:"input"`
	Want    string `yaml:"want"`
	WantErr bool   `yaml:"wantErr"`
}

func TestGoldenEvalCases(t *testing.T) {
	data, err := os.ReadFile(filepath.Join("testdata", "eval_cases.yaml"))
	if err != nil {
		t.Fatal(err)
	}
	var cases []goldenCase
	if err := yaml.Unmarshal(data, &cases); err != nil {
		t.Fatalf("bad fixture file: %v", err)
	}
	if len(cases) == 0 {
		t.Fatal("no golden cases loaded")
	}

	for _, tc := range cases {
		t.Run(tc.Name, func(t *testing.T) {
			eng := NewEngine()
			if tc.Context != "" {
				if err := eng.LoadContext(tc.Context); err != nil {
					t.Fatalf("load context %q: %v", tc.Context, err)
				}
			}
			v, err := eng.EvalString(tc.Input)
			if tc.WantErr {
				if err == nil {
					t.Fatalf("eval(%q) = %s, want error", tc.Input, v)
				}
				return
			}
			if err != nil {
				t.Fatalf("eval(%q): %v", tc.Input, err)
			}
			if got := v.String(); got != tc.Want {
				t.Errorf("eval(%q) = %q, want %q", tc.Input, got, tc.Want)
			}
		})
	}
}
