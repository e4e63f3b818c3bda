package gate

import (
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0644); err != nil {
		t.Fatalf("failed to write %s: %v", name, err)
	}
}

func TestDetectTestCommand(t *testing.T) {
	tests := []struct {
		name  string
		setup func(t *testing.T, dir string)
		want  string
	}{
		{
			name: "npm with test script",
			setup: func(t *testing.T, dir string) {
				writeFile(t, dir, "package.json", `{"scripts": {"test": "jest"}}`)
			},
			want: "npm",
		},
		{
			name: "npm without test script falls through",
			setup: func(t *testing.T, dir string) {
				writeFile(t, dir, "package.json", `{"scripts": {"build": "tsc"}}`)
				writeFile(t, dir, "go.mod", "module example\n")
			},
			want: "go",
		},
		{
			name: "malformed package.json falls through",
			setup: func(t *testing.T, dir string) {
				writeFile(t, dir, "package.json", "{oops")
				writeFile(t, dir, "Cargo.toml", "[package]\n")
			},
			want: "cargo",
		},
		{
			name: "pyproject",
			setup: func(t *testing.T, dir string) {
				writeFile(t, dir, "pyproject.toml", "[project]\n")
			},
			want: "pytest",
		},
		{
			name: "setup.py",
			setup: func(t *testing.T, dir string) {
				writeFile(t, dir, "setup.py", "")
			},
			want: "pytest",
		},
		{
			name: "cargo",
			setup: func(t *testing.T, dir string) {
				writeFile(t, dir, "Cargo.toml", "[package]\n")
			},
			want: "cargo",
		},
		{
			name: "go module",
			setup: func(t *testing.T, dir string) {
				writeFile(t, dir, "go.mod", "module example\n")
			},
			want: "go",
		},
		{
			name: "npm script wins over go module",
			setup: func(t *testing.T, dir string) {
				writeFile(t, dir, "package.json", `{"scripts": {"test": "jest"}}`)
				writeFile(t, dir, "go.mod", "module example\n")
			},
			want: "npm",
		},
		{
			name:  "empty directory",
			setup: func(t *testing.T, dir string) {},
			want:  "",
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			dir := t.TempDir()
			test.setup(t, dir)

			command := DetectTestCommand(dir)
			if test.want == "" {
				if command != nil {
					t.Errorf("expected no command, got %v", command)
				}
				return
			}
			if command == nil {
				t.Fatalf("expected %s command, got nil", test.want)
			}
			if command[0] != test.want {
				t.Errorf("got %v, want command starting with %q", command, test.want)
			}
		})
	}
}
