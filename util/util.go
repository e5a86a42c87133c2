package util

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v2"
)

// FileMode is the default FileMode used when creating files.
const FileMode = 0664

// BuildFileName is the default name of the file declaring the build configuration.
const BuildFileName = "BUILD.yaml"

// FileExists checks whether some file exists.
func FileExists(file string) bool {
	stat, err := os.Stat(file)
	return err == nil && !stat.IsDir()
}

// DirExists checks whether some directory exists.
func DirExists(dir string) bool {
	stat, err := os.Stat(dir)
	return err == nil && stat.IsDir()
}

// FindProjectRoot walks up from `p` and returns the first directory containing `buildFileName`.
func FindProjectRoot(p string, buildFileName string) (string, error) {
	p = filepath.Clean(p)
	for {
		if FileExists(filepath.Join(p, buildFileName)) {
			return p, nil
		}
		parent := filepath.Dir(p)
		if parent == p {
			return "", fmt.Errorf("not inside a project: no %s found", buildFileName)
		}
		p = parent
	}
}

// GetProjectRoot returns the root directory of the project containing the working directory.
func GetProjectRoot(buildFileName string) (string, error) {
	workingDir, err := os.Getwd()
	if err != nil {
		return "", err
	}
	return FindProjectRoot(workingDir, buildFileName)
}

// ReadYaml reads `filePath` and decodes its content into `out`.
func ReadYaml(filePath string, out interface{}) error {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return err
	}
	if err := yaml.UnmarshalStrict(data, out); err != nil {
		return fmt.Errorf("failed to parse %s: %w", filePath, err)
	}
	return nil
}

// WriteYaml encodes `in` and writes it to `filePath`.
func WriteYaml(filePath string, in interface{}) error {
	data, err := yaml.Marshal(in)
	if err != nil {
		return err
	}
	return os.WriteFile(filePath, data, FileMode)
}
