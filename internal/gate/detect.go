package gate

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// packageManifest is the slice of package.json this package cares about.
type packageManifest struct {
	Scripts map[string]string `json:"scripts"`
}

// DetectTestCommand inspects marker files in dir and returns the project's
// test command, or nil when no ecosystem is recognized. Detection order is
// fixed: package-manifest test script first, then interpreter project
// markers, then compiled-language manifests. First match wins.
func DetectTestCommand(dir string) []string {
	if scripts := packageScripts(dir); scripts != nil {
		if _, ok := scripts["test"]; ok {
			return []string{"npm", "test", "--", "--passWithNoTests"}
		}
	}

	if fileExists(filepath.Join(dir, "pyproject.toml")) || fileExists(filepath.Join(dir, "setup.py")) {
		return []string{"pytest", "-x", "--tb=short", "-q"}
	}

	if fileExists(filepath.Join(dir, "Cargo.toml")) {
		return []string{"cargo", "test", "--", "--test-threads=1"}
	}

	if fileExists(filepath.Join(dir, "go.mod")) {
		return []string{"go", "test", "./...", "-v"}
	}

	return nil
}

// packageScripts returns the scripts map from package.json, or nil when the
// manifest is absent or malformed.
func packageScripts(dir string) map[string]string {
	data, err := os.ReadFile(filepath.Join(dir, "package.json"))
	if err != nil {
		return nil
	}
	var manifest packageManifest
	if err := json.Unmarshal(data, &manifest); err != nil {
		return nil
	}
	return manifest.Scripts
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
