package buildconf

import "testing"

func TestParsePluginDependency(t *testing.T) {
	dep, err := ParsePluginDependency("com.android.tools.build:gradle:8.10.1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if dep.Coordinate != "com.android.tools.build:gradle" || dep.Version != "8.10.1" {
		t.Fatalf("unexpected dependency %+v", dep)
	}
	if dep.String() != "com.android.tools.build:gradle:8.10.1" {
		t.Fatalf("unexpected string %q", dep.String())
	}
}

func TestPluginDependencyMustBePinned(t *testing.T) {
	for _, notation := range []string{
		"com.google.gms:google-services:4.+",
		"com.google.gms:google-services:+",
		"com.google.gms:google-services:[4.0,5.0)",
		"com.google.gms:google-services:latest.release",
		"com.google.gms:google-services:4.5-SNAPSHOT",
		"com.google.gms:google-services:",
		"com.google.gms:google-services",
		"google-services:4.4.2:extra:x",
		"com google:services:1.0",
	} {
		if _, err := ParsePluginDependency(notation); err == nil {
			t.Fatalf("expected %q to be rejected", notation)
		}
	}
}

func TestParseRepository(t *testing.T) {
	repo, err := ParseRepository("mavenCentral")
	if err != nil {
		t.Fatal(err)
	}
	if repo.Name != "mavenCentral" || repo.URL != "https://repo.maven.apache.org/maven2/" {
		t.Fatalf("unexpected repository %+v", repo)
	}

	repo, err = ParseRepository("https://maven.example.com/releases")
	if err != nil {
		t.Fatal(err)
	}
	if repo.Name != "" || repo.String() != "https://maven.example.com/releases" {
		t.Fatalf("unexpected repository %+v", repo)
	}

	if _, err := ParseRepository("file:///opt/m2"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, s := range []string{"jcenterish", "ftp://example.com/m2", "https://", ""} {
		if _, err := ParseRepository(s); err == nil {
			t.Fatalf("expected %q to be rejected", s)
		}
	}
}
