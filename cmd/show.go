package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v2"

	"github.com/daedaleanai/hbc/config"
	"github.com/daedaleanai/hbc/log"
)

var showCmd = &cobra.Command{
	Use:   "show",
	Args:  cobra.NoArgs,
	Short: "Prints the build configuration",
	Long: `Prints the validated build configuration, followed by the repository search
order and the resolved output directory.`,
	Run: runShow,
}

func init() {
	rootCmd.AddCommand(showCmd)
}

func runShow(cmd *cobra.Command, args []string) {
	p := loadHostProject()

	out, err := yaml.Marshal(p.record)
	if err != nil {
		log.Fatal("Failed to encode build configuration: %s.\n", err)
	}
	fmt.Print(string(out))

	repos, err := p.record.SearchOrder(config.GetConfig().Mirror)
	if err != nil {
		log.Fatal("%s.\n", err)
	}
	fmt.Println()
	fmt.Println("# Repository search order:")
	for idx, repo := range repos {
		fmt.Printf("#   %d. %s\n", idx+1, repo.URL)
	}
	fmt.Printf("# Output directory: %s\n", p.layout.OutputRoot)
}
