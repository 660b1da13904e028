package main

import (
	"fmt"
	"runtime"

	"github.com/aretw0/quill"
	"github.com/aretw0/quill/pkg/schema"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the quill version and the schema formats it reads",
	RunE: func(cmd *cobra.Command, args []string) error {
		w := cmd.OutOrStdout()
		if short, _ := cmd.Flags().GetBool("short"); short {
			_, err := fmt.Fprintln(w, quill.Version)
			return err
		}
		fmt.Fprintf(w, "quill version %s\n", quill.Version)
		fmt.Fprintf(w, "schema format: %d (yaml, json)\n", schema.FormatVersion)
		fmt.Fprintf(w, "go: %s %s/%s\n", runtime.Version(), runtime.GOOS, runtime.GOARCH)
		return nil
	},
}

func init() {
	versionCmd.Flags().Bool("short", false, "Print only the version number")
	rootCmd.AddCommand(versionCmd)
}
