package cmd

import (
	"context"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/daedaleanai/hbc/buildconf"
	"github.com/daedaleanai/hbc/config"
	"github.com/daedaleanai/hbc/log"
	"github.com/daedaleanai/hbc/project"
	"github.com/daedaleanai/hbc/tasks"
	"github.com/daedaleanai/hbc/util"
)

var rootCmd = &cobra.Command{
	Use:   "hbc",
	Short: "The host build configuration tool (hbc)",
	Long: `The host build configuration tool (hbc) loads the build declaration of a mobile
application's native host project, validates it and applies it to the project's
subprojects: compiler targets, output directories, evaluation order and tasks.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	rootCmd.PersistentFlags().BoolVarP(&log.Verbose, "verbose", "v", false, "Print debug output")
	if rootCmd.ExecuteContext(context.Background()) != nil {
		os.Exit(1)
	}
}

// hostProject is everything a command needs to know about the project it runs in.
type hostProject struct {
	root   string
	record buildconf.Record
	layout project.Layout
}

// loadHostProject loads the project containing the working directory and aborts on failure.
func loadHostProject() hostProject {
	p, err := tryLoadHostProject()
	if err != nil {
		log.Fatal("%s.\n", err)
	}
	return p
}

func tryLoadHostProject() (hostProject, error) {
	buildFile := config.GetConfig().BuildFile
	root, err := util.GetProjectRoot(buildFile)
	if err != nil {
		return hostProject{}, err
	}
	log.Debug("Project root: '%s'.\n", root)

	record, err := buildconf.LoadFile(filepath.Join(root, buildFile))
	if err != nil {
		return hostProject{}, err
	}

	layout, err := project.RelocateOutputDirectory(root, record.BuildDir, record.OutputDir)
	if err != nil {
		return hostProject{}, err
	}
	log.Debug("Output directory: '%s'.\n", layout.OutputRoot)

	return hostProject{root: root, record: record, layout: layout}, nil
}

func (p hostProject) taskRegistry() *tasks.Registry {
	registry, err := p.tryTaskRegistry()
	if err != nil {
		log.Fatal("%s.\n", err)
	}
	return registry
}

func (p hostProject) tryTaskRegistry() (*tasks.Registry, error) {
	registry := tasks.NewRegistry()
	if err := tasks.RegisterCleanup(registry, p.layout, p.record.CleanTask); err != nil {
		return nil, err
	}
	return registry, nil
}
