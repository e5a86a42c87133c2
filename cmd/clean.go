package cmd

import (
	"github.com/spf13/cobra"
)

var cleanCmd = &cobra.Command{
	Use:   "clean",
	Args:  cobra.NoArgs,
	Short: "Removes the build output directory",
	Long:  `Removes the build output directory of all subprojects by running the clean task.`,
	Run:   runClean,
}

func init() {
	rootCmd.AddCommand(cleanCmd)
}

func runClean(cmd *cobra.Command, args []string) {
	p := loadHostProject()
	runTask(cmd.Context(), p, p.record.CleanTask)
}
