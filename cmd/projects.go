package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/daedaleanai/hbc/engine"
	"github.com/daedaleanai/hbc/log"
	"github.com/daedaleanai/hbc/util"
)

var projectsCmd = &cobra.Command{
	Use:   "projects",
	Args:  cobra.NoArgs,
	Short: "Evaluates and lists all subprojects",
	Long: `Evaluates all subprojects in evaluation order and prints, for each of them,
its output directory and the compiler targets applied to it.`,
	Run: runProjects,
}

func init() {
	rootCmd.AddCommand(projectsCmd)
}

func runProjects(cmd *cobra.Command, args []string) {
	p := loadHostProject()

	e, err := engine.New(p.record, p.layout)
	if err != nil {
		log.Fatal("%s.\n", err)
	}

	results, err := e.Evaluate(cmd.Context(), nil)
	if err != nil {
		log.Fatal("%s.\n", err)
	}

	log.Log("Output directory root: %s\n", e.Layout().OutputRoot)
	for _, result := range results {
		log.IndentationLevel = 0
		log.Log("Project '%s':\n", result.Subproject.ProjectPath())
		log.IndentationLevel = 1
		log.Log("Plugins: %s\n", strings.Join(util.MappedSlice(result.Subproject.Plugins, quote), ", "))
		log.Log("Output directory: %s\n", result.OutputDir)
		if c := result.Compiler; c.SourceCompatibility != 0 {
			log.Log("Java source/target compatibility: %s/%s\n", c.SourceCompatibility, c.TargetCompatibility)
		}
		if c := result.Compiler; c.KotlinJvmTarget != 0 {
			log.Log("Kotlin JVM target: %s\n", c.KotlinJvmTarget.JvmTarget())
		}
	}
	log.IndentationLevel = 0
}

func quote(s string) string {
	return fmt.Sprintf("'%s'", s)
}
