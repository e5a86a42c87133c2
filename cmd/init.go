package cmd

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/daedaleanai/hbc/buildconf"
	"github.com/daedaleanai/hbc/config"
	"github.com/daedaleanai/hbc/log"
	"github.com/daedaleanai/hbc/util"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Args:  cobra.NoArgs,
	Short: "Creates a build declaration in the current directory",
	Long:  `Creates a build declaration with the default host project configuration in the current directory.`,
	Run:   runInit,
}

var forceInit bool

func init() {
	rootCmd.AddCommand(initCmd)
	initCmd.Flags().BoolVarP(&forceInit, "force", "f", false, "Overwrite an existing build declaration")
}

func runInit(cmd *cobra.Command, args []string) {
	workingDir, err := os.Getwd()
	if err != nil {
		log.Fatal("%s.\n", err)
	}

	buildFilePath := filepath.Join(workingDir, config.GetConfig().BuildFile)
	if util.FileExists(buildFilePath) && !forceInit {
		log.Fatal("'%s' already exists. Use --force to overwrite it.\n", buildFilePath)
	}

	if err := buildconf.Save(buildFilePath, buildconf.Default()); err != nil {
		log.Fatal("Failed to write '%s': %s.\n", buildFilePath, err)
	}
	log.Success("Created '%s'.\n", buildFilePath)
}
