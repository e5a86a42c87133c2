// Package project describes the subprojects of a multi-project build and where their outputs go.
package project

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Subproject is an independently buildable module of the host project.
type Subproject struct {
	Name    string   `yaml:"name"`
	Path    string   `yaml:"path,omitempty"`
	Plugins []string `yaml:"plugins,omitempty"`
	// EvaluationDependsOn lists the paths of subprojects that must be evaluated before this one.
	EvaluationDependsOn []string `yaml:"evaluationDependsOn,omitempty"`
}

// ProjectPath returns the `:name` style path of the subproject.
func (s Subproject) ProjectPath() string {
	if s.Path != "" {
		return s.Path
	}
	return ":" + s.Name
}

// HasPlugin reports whether `id` is applied to the subproject, either directly or through a
// plugin that applies it.
func (s Subproject) HasPlugin(id string) bool {
	for _, p := range s.Plugins {
		if p == id {
			return true
		}
		for _, implied := range impliedPlugins[p] {
			if implied == id {
				return true
			}
		}
	}
	return false
}

// impliedPlugins lists the plugins each plugin applies on its own. The Android plugins and
// `kotlin-android` are built on the Android toolchain and apply neither `java` nor `kotlin`.
var impliedPlugins = map[string][]string{
	"java-library":             {"java"},
	"application":              {"java"},
	"kotlin":                   {"org.jetbrains.kotlin.jvm", "java"},
	"org.jetbrains.kotlin.jvm": {"kotlin", "java"},
}

// Validate checks a list of subprojects for missing or duplicate names and paths.
func Validate(subprojects []Subproject) error {
	names := map[string]bool{}
	paths := map[string]bool{}
	for _, s := range subprojects {
		if s.Name == "" {
			return fmt.Errorf("subproject without a name")
		}
		if strings.ContainsAny(s.Name, `/\:`) || s.Name == "." || s.Name == ".." {
			return fmt.Errorf("invalid subproject name %q", s.Name)
		}
		if names[s.Name] {
			return fmt.Errorf("duplicate subproject name %q", s.Name)
		}
		names[s.Name] = true

		p := s.ProjectPath()
		if !strings.HasPrefix(p, ":") {
			return fmt.Errorf("subproject %q: path %q must start with ':'", s.Name, p)
		}
		if paths[p] {
			return fmt.Errorf("duplicate subproject path %q", p)
		}
		paths[p] = true
	}
	return nil
}

// Layout holds the directories a build writes to. The zero value has not been relocated yet and
// cannot be used to derive subproject directories.
type Layout struct {
	ProjectRoot string
	OutputRoot  string
}

// RelocateOutputDirectory moves the output root away from `projectRoot/buildDir`. A relative
// `relocation` is resolved against that default location, an absolute one is used as is.
func RelocateOutputDirectory(projectRoot, buildDir, relocation string) (Layout, error) {
	if projectRoot == "" {
		return Layout{}, fmt.Errorf("missing project root")
	}
	projectRoot, err := filepath.Abs(projectRoot)
	if err != nil {
		return Layout{}, err
	}

	defaultDir := buildDir
	if !filepath.IsAbs(defaultDir) {
		defaultDir = filepath.Join(projectRoot, buildDir)
	}

	outputRoot := defaultDir
	if relocation != "" {
		if filepath.IsAbs(relocation) {
			outputRoot = filepath.Clean(relocation)
		} else {
			outputRoot = filepath.Join(defaultDir, relocation)
		}
	}
	return Layout{ProjectRoot: projectRoot, OutputRoot: outputRoot}, nil
}

// SubprojectDir returns the output directory of the subproject named `name`.
func (l Layout) SubprojectDir(name string) (string, error) {
	if l.OutputRoot == "" {
		return "", fmt.Errorf("output directory has not been relocated yet")
	}
	if name == "" {
		return "", fmt.Errorf("missing subproject name")
	}
	return filepath.Join(l.OutputRoot, name), nil
}
