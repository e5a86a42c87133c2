package buildconf

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	minJavaVersion = 8
	maxJavaVersion = 25
)

// JavaVersion is a language level as understood by javac (`--release`) and kotlinc (`-jvm-target`).
// The zero value means "not set".
type JavaVersion uint

// ParseJavaVersion accepts the spellings used by build scripts: `17`, `1.8`, `VERSION_17`,
// `VERSION_1_8` and `JVM_17`.
func ParseJavaVersion(s string) (JavaVersion, error) {
	v := strings.TrimSpace(s)
	v = strings.TrimPrefix(v, "VERSION_")
	v = strings.TrimPrefix(v, "JVM_")
	v = strings.ReplaceAll(v, "_", ".")
	if strings.HasPrefix(v, "1.") {
		v = strings.TrimPrefix(v, "1.")
		if n, err := strconv.ParseUint(v, 10, 8); err != nil || n > 8 {
			return 0, fmt.Errorf("invalid compiler target %q", s)
		}
	}

	n, err := strconv.ParseUint(v, 10, 8)
	if err != nil {
		return 0, fmt.Errorf("invalid compiler target %q", s)
	}
	if n < minJavaVersion || n > maxJavaVersion {
		return 0, fmt.Errorf("unsupported compiler target %q: must be between %d and %d", s, minJavaVersion, maxJavaVersion)
	}
	return JavaVersion(n), nil
}

func (v JavaVersion) String() string {
	if v == 0 {
		return ""
	}
	if v <= 8 {
		return fmt.Sprintf("1.%d", v)
	}
	return strconv.FormatUint(uint64(v), 10)
}

// JvmTarget returns the name of the matching kotlinc JvmTarget constant.
func (v JavaVersion) JvmTarget() string {
	if v <= 8 {
		return fmt.Sprintf("JVM_1_%d", v)
	}
	return fmt.Sprintf("JVM_%d", v)
}

func (v JavaVersion) MarshalYAML() (interface{}, error) {
	return v.String(), nil
}

func (v *JavaVersion) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var raw string
	if err := unmarshal(&raw); err != nil {
		return err
	}
	parsed, err := ParseJavaVersion(raw)
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}
