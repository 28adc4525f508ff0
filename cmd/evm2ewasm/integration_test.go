package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"
)

// ScenarioSpec is one end-to-end translation scenario: an EVM-dialect
// input and the substrings its Wasm-dialect translation must (or must
// not) contain, plus an optional ordering constraint.
type ScenarioSpec struct {
	Name        string   `yaml:"name"`
	Input       string   `yaml:"input"`
	Expect      []string `yaml:"expect"`
	ExpectOrder []string `yaml:"expect_order"`
	ExpectNot   []string `yaml:"expect_not"`
	Skip        string   `yaml:"skip,omitempty"`
}

// ScenarioFile is the top-level shape of testdata/scenarios.yaml.
type ScenarioFile struct {
	Tests []ScenarioSpec `yaml:"tests"`
}

func TestScenariosYAML(t *testing.T) {
	data, err := os.ReadFile("../../testdata/scenarios.yaml")
	if err != nil {
		t.Fatalf("scenarios.yaml not found: %v", err)
	}

	var file ScenarioFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		t.Fatalf("failed to parse scenarios.yaml: %v", err)
	}

	for _, tc := range file.Tests {
		t.Run(tc.Name, func(t *testing.T) {
			if tc.Skip != "" {
				t.Skip(tc.Skip)
			}

			tmpDir := t.TempDir()
			srcFile := filepath.Join(tmpDir, "test.yul")
			if err := os.WriteFile(srcFile, []byte(tc.Input), 0644); err != nil {
				t.Fatalf("failed to write test input: %v", err)
			}

			resetDebugFlags()
			var out, errOut bytes.Buffer
			cmd := newRootCmd(&out, &errOut)
			cmd.SetArgs([]string{srcFile})
			if err := cmd.Execute(); err != nil {
				t.Fatalf("evm2ewasm failed: %v\nStderr: %s", err, errOut.String())
			}

			output := out.String()

			for _, exp := range tc.Expect {
				if !strings.Contains(output, exp) {
					t.Errorf("expected output to contain %q\nGot:\n%s", exp, output)
				}
			}

			for _, exp := range tc.ExpectNot {
				if strings.Contains(output, exp) {
					t.Errorf("expected output NOT to contain %q\nGot:\n%s", exp, output)
				}
			}

			if len(tc.ExpectOrder) > 0 {
				lastIdx := -1
				for _, exp := range tc.ExpectOrder {
					idx := strings.Index(output, exp)
					if idx == -1 {
						t.Errorf("expected output to contain %q for order check\nGot:\n%s", exp, output)
						continue
					}
					if idx <= lastIdx {
						t.Errorf("expected %q to appear after previous pattern (position %d vs %d)", exp, idx, lastIdx)
					}
					lastIdx = idx
				}
			}
		})
	}
}
