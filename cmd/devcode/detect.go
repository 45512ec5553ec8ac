package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fyrsmithlabs/devcode/internal/manifest"
)

var detectDir string

func init() {
	rootCmd.AddCommand(detectCmd)
	detectCmd.Flags().StringVarP(&detectDir, "dir", "d", ".", "project directory")
}

// detectCmd prints the devcode identifier
var detectCmd = &cobra.Command{
	Use:   "detect",
	Short: "Print the devcode name of a project",
	Long: `Print the devcode name from package.json. Fails unless the manifest exists
and has "private": true.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		identifier, err := manifest.Detect(detectDir)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(cmd.OutOrStdout(), identifier)
		return err
	},
}
