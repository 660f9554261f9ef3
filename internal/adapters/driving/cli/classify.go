package cli

import (
	"github.com/spf13/cobra"
)

var classifyCmd = &cobra.Command{
	Use:   "classify <filename>...",
	Short: "Show the chunking strategy chosen for file names",
	Long: `Print the chunking strategy each file name would be ingested with.
Nothing is read or indexed.`,
	Args: cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		for _, name := range args {
			tag := classify(name)
			cmd.Printf("%s: %s (%s)\n", name, tag, tag.ChunkType())
			cmd.Printf("  %s\n", tag.Description())
		}
	},
}

func init() {
	rootCmd.AddCommand(classifyCmd)
}
