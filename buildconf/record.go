// Package buildconf loads and validates the declaration of the host project build.
package buildconf

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v2"

	"github.com/daedaleanai/hbc/log"
	"github.com/daedaleanai/hbc/project"
	"github.com/daedaleanai/hbc/util"
)

// Plugin names that compiler targets can be declared for.
const (
	JavaPlugin   = "java"
	KotlinPlugin = "kotlin"
)

const (
	defaultBuildDir  = "build"
	defaultCleanTask = "clean"
)

// Record is the build configuration of a single invocation. It is read once and not modified
// afterwards.
type Record struct {
	PluginDependencies  []PluginDependency     `yaml:"classpath"`
	Repositories        []Repository           `yaml:"repositories"`
	CompilerTargets     map[string]JavaVersion `yaml:"compilerTargets"`
	BuildDir            string                 `yaml:"buildDir"`
	OutputDir           string                 `yaml:"outputDir,omitempty"`
	EvaluationDependsOn string                 `yaml:"evaluationDependsOn,omitempty"`
	CleanTask           string                 `yaml:"cleanTask"`
	// MinimumVersion is the oldest hbc release able to apply the declaration, e.g. `v1.2.0`.
	MinimumVersion      string                 `yaml:"minimumVersion,omitempty"`
	Subprojects         []project.Subproject   `yaml:"subprojects,omitempty"`
}

// Default returns the declaration of the mobile application's native host project.
func Default() Record {
	return Record{
		PluginDependencies: []PluginDependency{
			{Coordinate: "com.android.tools.build:gradle", Version: "8.10.1"},
			{Coordinate: "com.google.gms:google-services", Version: "4.4.2"},
		},
		Repositories: []Repository{
			{Name: "google", URL: knownRepositories["google"]},
			{Name: "mavenCentral", URL: knownRepositories["mavenCentral"]},
		},
		CompilerTargets: map[string]JavaVersion{
			JavaPlugin:   17,
			KotlinPlugin: 17,
		},
		BuildDir:            defaultBuildDir,
		OutputDir:           "../../build",
		EvaluationDependsOn: ":app",
		CleanTask:           defaultCleanTask,
		Subprojects: []project.Subproject{
			{Name: "app", Plugins: []string{"com.android.application", "kotlin-android"}},
		},
	}
}

// Load decodes a YAML declaration. Omitted build directory and clean task names fall back to
// their defaults.
func Load(data []byte) (Record, error) {
	var record Record
	if err := yaml.UnmarshalStrict(data, &record); err != nil {
		return Record{}, fmt.Errorf("malformed build declaration: %w", err)
	}
	return complete(record)
}

// LoadFile reads and decodes the declaration stored in `filePath`.
func LoadFile(filePath string) (Record, error) {
	log.Debug("Loading build declaration '%s'.\n", filePath)
	var record Record
	if err := util.ReadYaml(filePath, &record); err != nil {
		return Record{}, err
	}
	record, err := complete(record)
	if err != nil {
		return Record{}, fmt.Errorf("%s: %w", filePath, err)
	}
	return record, nil
}

func complete(record Record) (Record, error) {
	if record.BuildDir == "" {
		record.BuildDir = defaultBuildDir
	}
	if record.CleanTask == "" {
		record.CleanTask = defaultCleanTask
	}
	if record.CompilerTargets == nil {
		record.CompilerTargets = map[string]JavaVersion{}
	}

	var err error
	if record.PluginDependencies, err = dedupDependencies(record.PluginDependencies); err != nil {
		return Record{}, err
	}
	record.Repositories = dedupRepositories(record.Repositories)

	if err := record.Validate(); err != nil {
		return Record{}, err
	}
	return record, nil
}

// Save writes the record to `filePath` in the format read by LoadFile.
func Save(filePath string, record Record) error {
	if err := record.Validate(); err != nil {
		return err
	}
	return util.WriteYaml(filePath, record)
}

// The first declaration of a coordinate wins. Declaring it again with the same version is
// harmless, a different version is a conflict.
func dedupDependencies(deps []PluginDependency) ([]PluginDependency, error) {
	seen := map[string]string{}
	result := make([]PluginDependency, 0, len(deps))
	for _, dep := range deps {
		if version, ok := seen[dep.Coordinate]; ok {
			if version != dep.Version {
				return nil, fmt.Errorf("classpath dependency %q declared with conflicting versions %q and %q", dep.Coordinate, version, dep.Version)
			}
			log.Debug("Ignoring duplicate classpath dependency '%s'.\n", dep)
			continue
		}
		seen[dep.Coordinate] = dep.Version
		result = append(result, dep)
	}
	return result, nil
}

func dedupRepositories(repos []Repository) []Repository {
	seen := map[string]bool{}
	result := make([]Repository, 0, len(repos))
	for _, repo := range repos {
		if seen[repo.URL] {
			continue
		}
		seen[repo.URL] = true
		result = append(result, repo)
	}
	return result
}

// Validate checks all invariants of the record.
func (r Record) Validate() error {
	coordinates := map[string]bool{}
	for _, dep := range r.PluginDependencies {
		if err := dep.Validate(); err != nil {
			return err
		}
		if coordinates[dep.Coordinate] {
			return fmt.Errorf("classpath dependency %q declared more than once", dep.Coordinate)
		}
		coordinates[dep.Coordinate] = true
	}

	if len(r.PluginDependencies) > 0 && len(r.Repositories) == 0 {
		return fmt.Errorf("classpath dependencies declared without any repository to resolve them from")
	}
	for _, repo := range r.Repositories {
		if repo.URL == "" {
			return fmt.Errorf("repository %q has no URL", repo.Name)
		}
	}

	for _, plugin := range util.OrderedKeys(r.CompilerTargets) {
		if plugin != JavaPlugin && plugin != KotlinPlugin {
			return fmt.Errorf("compiler targets can only be declared for %q and %q, got %q", JavaPlugin, KotlinPlugin, plugin)
		}
		if _, err := ParseJavaVersion(r.CompilerTargets[plugin].String()); err != nil {
			return fmt.Errorf("compiler target for %q: %w", plugin, err)
		}
	}

	if r.BuildDir == "" {
		return fmt.Errorf("missing build directory")
	}
	if strings.TrimSpace(r.CleanTask) == "" {
		return fmt.Errorf("missing clean task name")
	}

	if r.MinimumVersion != "" {
		required, err := util.ParseVersion(r.MinimumVersion)
		if err != nil {
			return fmt.Errorf("minimum version: %w", err)
		}
		if util.HbcVersion.Less(required) {
			return fmt.Errorf("declaration requires hbc %s or newer, this is %s", required, util.HbcVersion)
		}
	}

	if err := project.Validate(r.Subprojects); err != nil {
		return err
	}
	if r.EvaluationDependsOn != "" && !strings.HasPrefix(r.EvaluationDependsOn, ":") {
		return fmt.Errorf("evaluation order constraint %q must be a project path starting with ':'", r.EvaluationDependsOn)
	}
	return nil
}

// SearchOrder returns the repositories in the order they are searched. A non-empty `mirror` is
// searched before all declared repositories.
func (r Record) SearchOrder(mirror string) ([]Repository, error) {
	if mirror == "" {
		return r.Repositories, nil
	}
	m, err := ParseRepository(mirror)
	if err != nil {
		return nil, fmt.Errorf("mirror: %w", err)
	}
	return dedupRepositories(append([]Repository{m}, r.Repositories...)), nil
}

// Effective holds the compiler settings applied to one subproject. Unset fields are zero.
type Effective struct {
	SourceCompatibility JavaVersion
	TargetCompatibility JavaVersion
	KotlinJvmTarget     JavaVersion
}

// ApplyCompilerTargets computes the compiler settings for a subproject with the given plugins.
// The java and kotlin settings are independent of each other.
func (r Record) ApplyCompilerTargets(sub project.Subproject) Effective {
	var effective Effective
	if v, ok := r.CompilerTargets[JavaPlugin]; ok && sub.HasPlugin(JavaPlugin) {
		effective.SourceCompatibility = v
		effective.TargetCompatibility = v
	}
	if v, ok := r.CompilerTargets[KotlinPlugin]; ok && sub.HasPlugin(KotlinPlugin) {
		effective.KotlinJvmTarget = v
	}
	return effective
}
