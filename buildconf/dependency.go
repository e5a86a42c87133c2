package buildconf

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
)

var coordinatePartRegexp = regexp.MustCompile(`^[A-Za-z0-9._-]+$`)

// PluginDependency is an artifact placed on the build tool's own classpath.
type PluginDependency struct {
	Coordinate string
	Version    string
}

// ParsePluginDependency parses the `group:artifact:version` notation.
func ParsePluginDependency(notation string) (PluginDependency, error) {
	parts := strings.Split(strings.TrimSpace(notation), ":")
	if len(parts) != 3 {
		return PluginDependency{}, fmt.Errorf("invalid classpath dependency %q: expected group:artifact:version", notation)
	}
	dep := PluginDependency{
		Coordinate: parts[0] + ":" + parts[1],
		Version:    parts[2],
	}
	return dep, dep.Validate()
}

func (d PluginDependency) String() string {
	return d.Coordinate + ":" + d.Version
}

// Validate checks that the coordinate is well-formed and the version is pinned.
func (d PluginDependency) Validate() error {
	parts := strings.Split(d.Coordinate, ":")
	if len(parts) != 2 || !coordinatePartRegexp.MatchString(parts[0]) || !coordinatePartRegexp.MatchString(parts[1]) {
		return fmt.Errorf("invalid classpath coordinate %q: expected group:artifact", d.Coordinate)
	}
	if err := checkPinned(d.Version); err != nil {
		return fmt.Errorf("classpath dependency %q: %w", d.Coordinate, err)
	}
	return nil
}

func checkPinned(version string) error {
	switch {
	case version == "":
		return fmt.Errorf("missing version")
	case strings.ContainsAny(version, "+[]() ,"):
		return fmt.Errorf("version %q is not pinned: dynamic versions and ranges are not allowed", version)
	case strings.HasPrefix(version, "latest."):
		return fmt.Errorf("version %q is not pinned: dynamic versions and ranges are not allowed", version)
	case strings.HasSuffix(version, "-SNAPSHOT"):
		return fmt.Errorf("version %q is not pinned: snapshots are mutable", version)
	}
	return nil
}

func (d PluginDependency) MarshalYAML() (interface{}, error) {
	return d.String(), nil
}

func (d *PluginDependency) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var notation string
	if err := unmarshal(&notation); err != nil {
		return err
	}
	parsed, err := ParsePluginDependency(notation)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

var knownRepositories = map[string]string{
	"google":             "https://dl.google.com/dl/android/maven2/",
	"mavenCentral":       "https://repo.maven.apache.org/maven2/",
	"gradlePluginPortal": "https://plugins.gradle.org/m2/",
}

// Repository is an artifact repository searched for classpath dependencies.
type Repository struct {
	// Name is the alias the repository was declared with, empty for plain URLs.
	Name string
	URL  string
}

// ParseRepository accepts a known repository alias or an absolute http(s) or file URL.
func ParseRepository(s string) (Repository, error) {
	s = strings.TrimSpace(s)
	if u, ok := knownRepositories[s]; ok {
		return Repository{Name: s, URL: u}, nil
	}

	u, err := url.Parse(s)
	if err != nil {
		return Repository{}, fmt.Errorf("invalid repository %q: %w", s, err)
	}
	switch u.Scheme {
	case "http", "https":
		if u.Host == "" {
			return Repository{}, fmt.Errorf("invalid repository %q: missing host", s)
		}
	case "file":
		if u.Path == "" {
			return Repository{}, fmt.Errorf("invalid repository %q: missing path", s)
		}
	default:
		return Repository{}, fmt.Errorf("unknown repository %q: expected one of google, mavenCentral, gradlePluginPortal or a URL", s)
	}
	return Repository{URL: s}, nil
}

func (r Repository) String() string {
	if r.Name != "" {
		return r.Name
	}
	return r.URL
}

func (r Repository) MarshalYAML() (interface{}, error) {
	return r.String(), nil
}

func (r *Repository) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var raw string
	if err := unmarshal(&raw); err != nil {
		return err
	}
	parsed, err := ParseRepository(raw)
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}
