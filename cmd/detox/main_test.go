package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	cfgPath := filepath.Join(t.TempDir(), "none.toml")
	cmd := newRootCmd()

	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append(args, "--config", cfgPath))

	err := cmd.Execute()
	return out.String(), err
}

func TestPatterns(t *testing.T) {
	out, err := execute(t, "patterns")
	if err != nil {
		t.Fatalf("patterns: %v", err)
	}

	for _, want := range []string{"REFERENCE USAGE PATTERNS", "light:", "moderate:", "heavy:"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestRunModes(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want []string
	}{
		{
			name: "quick samples",
			args: []string{"run", "--seed", "3"},
			want: []string{"QUICK MODE", "--- User: [120, 10, 15, 5] ---", "Classification: LIGHT", "Top Recommendations:"},
		},
		{
			name: "detailed samples",
			args: []string{"run", "--mode", "detailed", "--seed", "3"},
			want: []string{"DETAILED MODE", "DIGITAL WELLBEING REPORT", "PERSONALIZED GOALS"},
		},
		{
			name: "custom report",
			args: []string{"run", "--user", "400,35,60,50", "--mode", "report", "--seed", "3"},
			want: []string{"CUSTOM USER INPUT", "# Custom user", "# Input: [400, 35, 60, 50]", "Overall Score: 224/500"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := execute(t, tt.args...)
			if err != nil {
				t.Fatalf("run: %v", err)
			}
			for _, want := range tt.want {
				if !strings.Contains(out, want) {
					t.Errorf("output missing %q", want)
				}
			}
		})
	}
}

func TestRunQuickCoversEverySample(t *testing.T) {
	out, err := execute(t, "run")
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if n := strings.Count(out, "--- User:"); n != 4 {
		t.Errorf("users rendered: got %d, want 4", n)
	}
}

func TestRunJSON(t *testing.T) {
	out, err := execute(t, "run", "--user", "400,35,60,50", "--format", "json")
	if err != nil {
		t.Fatalf("run: %v", err)
	}

	var b struct {
		Input struct {
			ScreenTime float64 `json:"screen_time"`
		} `json:"input"`
		Suggestions []string `json:"suggestions"`
	}
	if err := json.Unmarshal([]byte(out), &b); err != nil {
		t.Fatalf("decode: %v\n%s", err, out)
	}
	if b.Input.ScreenTime != 400 || len(b.Suggestions) != 3 {
		t.Errorf("bundle: got %+v", b)
	}
}

func TestRunErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"zero usage", []string{"run", "--user", "0,0,0,0"}, "Suggestion:"},
		{"arity", []string{"run", "--user", "1,2,3"}, "Suggestion:"},
		{"unknown mode", []string{"run", "--mode", "verbose"}, "unknown mode"},
		{"unknown format", []string{"run", "--format", "xml"}, "unknown format"},
		{"positional args", []string{"run", "400"}, "unknown command"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := execute(t, tt.args...)
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error: got %q, want containing %q", err.Error(), tt.want)
			}
		})
	}
}

func TestOpenAPI(t *testing.T) {
	path := filepath.Join(t.TempDir(), "openapi.json")
	if _, err := execute(t, "openapi", "--out", path); err != nil {
		t.Fatalf("openapi: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}

	var doc struct {
		Paths map[string]any `json:"paths"`
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatalf("decode: %v", err)
	}
	for _, p := range []string{"/analyze", "/analyze/samples", "/summary"} {
		if _, ok := doc.Paths[p]; !ok {
			t.Errorf("missing path %s", p)
		}
	}
}
