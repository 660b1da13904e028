package main

import (
	"os"

	"github.com/aretw0/quill/internal/cli"
	"github.com/spf13/cobra"
)

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Display a value file as a transcript",
	RunE: func(cmd *cobra.Command, args []string) error {
		flags := cmd.Flags()
		var opts cli.ShowOptions
		opts.SchemaPath, _ = flags.GetString("schema")
		opts.TypeName, _ = flags.GetString("type")
		opts.ValuePath, _ = flags.GetString("value")
		opts.JSON, _ = flags.GetBool("json")
		return cli.RunShow(opts, os.Stdout)
	},
}

func init() {
	rootCmd.AddCommand(showCmd)

	showCmd.Flags().StringP("schema", "s", "", "Schema document (YAML or JSON)")
	showCmd.Flags().StringP("type", "t", "", "Type name or expression (default: the document root)")
	showCmd.Flags().String("value", "", "Value file (YAML or JSON)")
	showCmd.Flags().Bool("json", false, "Emit JSON lines instead of text")
	_ = showCmd.MarkFlagRequired("schema")
	_ = showCmd.MarkFlagRequired("value")
}
