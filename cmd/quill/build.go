package main

import (
	"os"

	"github.com/aretw0/quill/internal/cli"
	"github.com/spf13/cobra"
)

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Build a value interactively",
	Long: `Asks for a value of a schema type and prints it. With --session the answers
are saved as they are given, so an interrupted build resumes where it stopped.`,
	Example: `  quill build --schema order.yaml
  quill build --schema order.yaml --type "[Fruit]" --format yaml
  quill build --schema order.yaml --session order-42 --store redis`,
	RunE: func(cmd *cobra.Command, args []string) error {
		flags := cmd.Flags()
		opts := cli.BuildOptions{Store: storeOptions(cmd)}
		opts.SchemaPath, _ = flags.GetString("schema")
		opts.TypeName, _ = flags.GetString("type")
		opts.Format, _ = flags.GetString("format")
		opts.OutputPath, _ = flags.GetString("output")
		opts.AnswersPath, _ = flags.GetString("answers")
		opts.SessionID, _ = flags.GetString("session")
		opts.Fresh, _ = flags.GetBool("fresh")
		opts.LineEditor, _ = flags.GetBool("line-editor")
		opts.JSON, _ = flags.GetBool("json")
		opts.Debug, _ = flags.GetBool("debug")
		opts.Quiet, _ = flags.GetBool("quiet")
		opts.MetricsAddr, _ = flags.GetString("metrics-addr")
		opts.Timeout, _ = flags.GetDuration("timeout")

		return cli.RunBuild(cmd.Context(), opts, os.Stdin, os.Stdout, os.Stderr)
	},
}

func init() {
	rootCmd.AddCommand(buildCmd)

	buildCmd.Flags().StringP("schema", "s", "", "Schema document (YAML or JSON)")
	buildCmd.Flags().StringP("type", "t", "", "Type name or expression to build (default: the document root)")
	buildCmd.Flags().StringP("format", "f", "json", "Output format: json or yaml")
	buildCmd.Flags().StringP("output", "o", "", "Write the value to a file instead of stdout")
	buildCmd.Flags().String("answers", "", "Read answers from a file, one per line, instead of asking")
	buildCmd.Flags().String("session", "", "Persist answers under this session id and resume it")
	buildCmd.Flags().Bool("fresh", false, "Discard the stored answers of --session before starting")
	buildCmd.Flags().Bool("line-editor", false, "Use a line editor with history and tab completion")
	buildCmd.Flags().Bool("json", false, "Speak JSON lines on stdin/stdout")
	buildCmd.Flags().BoolP("quiet", "q", false, "Do not print the banner and system messages")
	buildCmd.Flags().String("metrics-addr", "", "Serve Prometheus metrics on this address (e.g. :2112)")
	buildCmd.Flags().Duration("timeout", 0, "Abort the session after this long")
	_ = buildCmd.MarkFlagRequired("schema")
}
