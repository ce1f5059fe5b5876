package main

import (
	"fmt"

	"github.com/spf13/cobra"
	yaml "gopkg.in/yaml.v3"
)

// showCmd represents the show command
var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Output current config",
	Long: `
Is something not working for you?  Have a look whether your config is as you expect.
`,
	RunE: func(cmd *cobra.Command, args []string) error {
		// Note, you can only talk about persistent flags here.  Command-specific ones won't be
		// visible.
		fmt.Printf("Dump current config state:\n\n")

		fmt.Printf("  Config file: %s\n", Config)
		fmt.Printf("  Debug: %v\n", Debug)
		fmt.Println()

		parsed, err := yaml.Marshal(ParsedConfig)
		if err != nil {
			return fmt.Errorf("cmd: Couldn't marshal parsed config: %w", err)
		}
		fmt.Printf("  Parsed YAML:\n%s\n", parsed)

		fmt.Printf("  SourceBase: %s\n", SourceBase)
		fmt.Printf("  SourcePostsPath: %s\n", SourcePostsPath)
		fmt.Printf("  DestBase: %s\n", DestBase)
		fmt.Printf("  UploadPath: %s\n", UploadPath)
		fmt.Printf("  PostsPath: %s\n", PostsPath)
		fmt.Printf("  DestTokenCmd: %v\n", DestTokenCmd)
		fmt.Printf("  Workers: %d\n", Workers)

		return nil
	},
}

func init() {
	configCmd.AddCommand(showCmd)
}
