// Package configfiles provides embedded configuration files for reportng.
// These files are used as templates for initializing user configuration.
package configfiles

import (
	"embed"
	"os"
	"path"
	"path/filepath"
	"sort"
)

// definitionsDir is the embedded directory of example report definitions
const definitionsDir = "definitions"

//go:embed reportng.example.yaml
//go:embed all:definitions
var configFS embed.FS

// GetConfigExample returns the example application configuration
func GetConfigExample() ([]byte, error) {
	return configFS.ReadFile("reportng.example.yaml")
}

// GetDefinition returns the named example report definition
func GetDefinition(name string) ([]byte, error) {
	return configFS.ReadFile(path.Join(definitionsDir, name))
}

// ListDefinitions returns the names of the example report definitions, sorted
func ListDefinitions() []string {
	entries, err := configFS.ReadDir(definitionsDir)
	if err != nil {
		return nil
	}
	var names []string
	for _, entry := range entries {
		if !entry.IsDir() && isYAML(entry.Name()) {
			names = append(names, entry.Name())
		}
	}
	sort.Strings(names)
	return names
}

// InitDefinitions copies the example definitions into targetDir, skipping
// files that already exist. It returns the number of files written.
func InitDefinitions(targetDir string) (int, error) {
	if err := os.MkdirAll(targetDir, 0755); err != nil {
		return 0, err
	}

	created := 0
	for _, name := range ListDefinitions() {
		targetPath := filepath.Join(targetDir, name)
		if _, err := os.Stat(targetPath); err == nil {
			continue
		}

		data, err := GetDefinition(name)
		if err != nil {
			return created, err
		}
		if err := os.WriteFile(targetPath, data, 0644); err != nil {
			return created, err
		}
		created++
	}
	return created, nil
}

// DefinitionsExist reports whether targetDir holds at least one YAML file
func DefinitionsExist(targetDir string) bool {
	entries, err := os.ReadDir(targetDir)
	if err != nil {
		return false
	}
	for _, entry := range entries {
		if !entry.IsDir() && isYAML(entry.Name()) {
			return true
		}
	}
	return false
}

func isYAML(name string) bool {
	ext := filepath.Ext(name)
	return ext == ".yaml" || ext == ".yml"
}
