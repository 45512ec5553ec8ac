package main

import (
	"github.com/spf13/cobra"

	"github.com/fyrsmithlabs/devcode/internal/report"
	"github.com/fyrsmithlabs/devcode/internal/rewrite"
)

var scanDir string

func init() {
	rootCmd.AddCommand(scanCmd)
	scanCmd.Flags().StringVarP(&scanDir, "dir", "d", ".", "project directory")
}

// scanCmd lists occurrences without rewriting anything
var scanCmd = &cobra.Command{
	Use:   "scan <identifier>",
	Short: "List occurrences of a name outside the managed files",
	Long: `List every line containing identifier, skipping the managed files and the
excluded directories. Nothing is modified.

Examples:
  devcode scan my-devcode
  devcode scan my-devcode --dir ../widgets`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		finder, err := newFinder(ctx, scanDir, rewrite.DefaultRegistry())
		if err != nil {
			return err
		}
		res, err := finder.Find(ctx, scanDir, args[0])
		if err != nil {
			return err
		}
		return report.NewRenderer(cmd.OutOrStdout()).Occurrences(args[0], res)
	},
}
