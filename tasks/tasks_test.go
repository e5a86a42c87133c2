package tasks

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/daedaleanai/hbc/project"
	"github.com/daedaleanai/hbc/util"
)

func hostLayout(t *testing.T) project.Layout {
	root := filepath.Join(t.TempDir(), "host", "android")
	if err := os.MkdirAll(root, 0755); err != nil {
		t.Fatal(err)
	}
	layout, err := project.RelocateOutputDirectory(root, "build", "../../build")
	if err != nil {
		t.Fatal(err)
	}
	return layout
}

func populate(t *testing.T, layout project.Layout) {
	for _, name := range []string{"app", "shared"} {
		dir, err := layout.SubprojectDir(name)
		if err != nil {
			t.Fatal(err)
		}
		if err := os.MkdirAll(filepath.Join(dir, "intermediates"), 0755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(filepath.Join(dir, "intermediates", "classes.jar"), []byte("jar"), util.FileMode); err != nil {
			t.Fatal(err)
		}
	}
}

func TestRegistry(t *testing.T) {
	r := NewRegistry()
	ran := []string{}
	for _, name := range []string{"lint", "assemble"} {
		name := name
		err := r.Register(name, "does "+name, func(ctx context.Context) error {
			ran = append(ran, name)
			return nil
		})
		if err != nil {
			t.Fatal(err)
		}
	}

	if err := r.Register("lint", "again", func(ctx context.Context) error { return nil }); err == nil {
		t.Fatal("expected duplicate task to be rejected")
	}
	if err := r.Register("", "nameless", func(ctx context.Context) error { return nil }); err == nil {
		t.Fatal("expected nameless task to be rejected")
	}
	if err := r.Register("noop", "no action", nil); err == nil {
		t.Fatal("expected task without action to be rejected")
	}

	all := r.Tasks()
	if len(all) != 2 || all[0].Name != "assemble" || all[1].Name != "lint" {
		t.Fatalf("unexpected tasks %v", all)
	}

	if err := r.Run(context.Background(), "lint"); err != nil {
		t.Fatal(err)
	}
	if len(ran) != 1 || ran[0] != "lint" {
		t.Fatalf("unexpected runs %v", ran)
	}
	if err := r.Run(context.Background(), "deploy"); err == nil {
		t.Fatal("expected unknown task to fail")
	}
}

func TestRunWrapsErrors(t *testing.T) {
	r := NewRegistry()
	failure := errors.New("broken")
	if err := r.Register("fail", "", func(ctx context.Context) error { return failure }); err != nil {
		t.Fatal(err)
	}
	if err := r.Run(context.Background(), "fail"); !errors.Is(err, failure) {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestCleanupIsIdempotent(t *testing.T) {
	layout := hostLayout(t)
	populate(t, layout)

	r := NewRegistry()
	if err := RegisterCleanup(r, layout, "clean"); err != nil {
		t.Fatal(err)
	}
	if _, ok := r.Lookup("clean"); !ok {
		t.Fatal("clean task not registered")
	}

	if err := r.Run(context.Background(), "clean"); err != nil {
		t.Fatalf("first clean failed: %v", err)
	}
	if util.DirExists(layout.OutputRoot) {
		t.Fatal("output directory still exists after clean")
	}
	if !util.DirExists(layout.ProjectRoot) {
		t.Fatal("project root was removed")
	}

	if err := r.Run(context.Background(), "clean"); err != nil {
		t.Fatalf("second clean failed: %v", err)
	}
	if util.DirExists(layout.OutputRoot) || !util.DirExists(layout.ProjectRoot) {
		t.Fatal("second clean changed the end state")
	}
}

func TestCleanupRefusesToDeleteProject(t *testing.T) {
	root := t.TempDir()
	r := NewRegistry()

	layout := project.Layout{ProjectRoot: filepath.Join(root, "android"), OutputRoot: root}
	if err := RegisterCleanup(r, layout, "clean"); err != nil {
		t.Fatal(err)
	}
	if err := r.Run(context.Background(), "clean"); err == nil {
		t.Fatal("expected cleanup of an ancestor of the project to be refused")
	}
	if !util.DirExists(root) {
		t.Fatal("directory was removed")
	}

	r = NewRegistry()
	if err := RegisterCleanup(r, project.Layout{}, "clean"); err != nil {
		t.Fatal(err)
	}
	if err := r.Run(context.Background(), "clean"); err == nil {
		t.Fatal("expected cleanup without relocation to fail")
	}
}

func TestCleanupKeepsSiblings(t *testing.T) {
	layout := hostLayout(t)
	populate(t, layout)

	sibling := filepath.Join(filepath.Dir(layout.OutputRoot), "build-cache")
	if err := os.MkdirAll(sibling, 0755); err != nil {
		t.Fatal(err)
	}

	r := NewRegistry()
	if err := RegisterCleanup(r, layout, "clean"); err != nil {
		t.Fatal(err)
	}
	if err := r.Run(context.Background(), "clean"); err != nil {
		t.Fatal(err)
	}
	if !util.DirExists(sibling) {
		t.Fatal("sibling directory was removed")
	}
}

func TestCleanupComparesRelativeOutputRoot(t *testing.T) {
	base, err := filepath.EvalSymlinks(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	projectRoot := filepath.Join(base, "host", "android")
	if err := os.MkdirAll(projectRoot, 0755); err != nil {
		t.Fatal(err)
	}

	workingDir, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(base); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { os.Chdir(workingDir) })

	r := NewRegistry()
	layout := project.Layout{ProjectRoot: projectRoot, OutputRoot: "host"}
	if err := RegisterCleanup(r, layout, "clean"); err != nil {
		t.Fatal(err)
	}
	if err := r.Run(context.Background(), "clean"); err == nil {
		t.Fatal("expected cleanup of a relative ancestor of the project to be refused")
	}
	if !util.DirExists(projectRoot) {
		t.Fatal("project root was removed")
	}
}
