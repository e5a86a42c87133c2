package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/briandowns/spinner"
	"github.com/spf13/cobra"

	"github.com/daedaleanai/hbc/log"
)

var tasksCmd = &cobra.Command{
	Use:   "tasks",
	Args:  cobra.NoArgs,
	Short: "Lists all tasks",
	Long:  `Lists all tasks that can be run with 'hbc run'.`,
	Run:   runTasks,
}

var runCmd = &cobra.Command{
	Use:               "run <task>",
	Args:              cobra.ExactArgs(1),
	Short:             "Runs a task",
	Long:              `Runs the task with the given name.`,
	Run:               runRun,
	ValidArgsFunction: completeTaskNames,
}

func init() {
	rootCmd.AddCommand(tasksCmd)
	rootCmd.AddCommand(runCmd)
}

func runTasks(cmd *cobra.Command, args []string) {
	p := loadHostProject()
	for _, task := range p.taskRegistry().Tasks() {
		fmt.Printf("%-20s %s\n", task.Name, task.Description)
	}
}

func runRun(cmd *cobra.Command, args []string) {
	runTask(cmd.Context(), loadHostProject(), args[0])
}

func runTask(ctx context.Context, p hostProject, name string) {
	if ctx == nil {
		ctx = context.Background()
	}

	registry := p.taskRegistry()
	if _, ok := registry.Lookup(name); !ok {
		log.Fatal("Task '%s' not found. Run 'hbc tasks' to list all tasks.\n", name)
	}

	s := spinner.New(spinner.CharSets[11], 100*time.Millisecond, spinner.WithWriter(os.Stderr))
	s.Suffix = fmt.Sprintf(" Running task '%s'", name)
	if !log.Verbose {
		s.Start()
	}
	err := registry.Run(ctx, name)
	s.Stop()

	if err != nil {
		log.Fatal("%s.\n", err)
	}
	log.Success("Task '%s' completed.\n", name)
}
