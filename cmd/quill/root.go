package main

import (
	"context"
	"fmt"
	"os"

	"github.com/aretw0/quill/internal/cli"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "quill",
	Short: "Quill builds typed values by asking for them",
	Long: `Quill asks an operator, one prompt at a time, for a value described by a
schema document, and prints the result as JSON or YAML. Answers starting with
'!' are commands: !undo, !restart, !cancel and !help.`,
	SilenceUsage: true,
}

// Execute runs the root command with a context cancelled on SIGINT/SIGTERM.
func Execute() {
	ctx := cli.NewSignalContext(context.Background())
	defer ctx.Stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().String("store", "file", "Session store: file, redis or memory")
	rootCmd.PersistentFlags().String("store-dir", "", "Directory of the file store (default .quill/sessions)")
	rootCmd.PersistentFlags().String("redis-url", "redis://localhost:6379/0", "Redis URL for the redis store")
	rootCmd.PersistentFlags().Duration("session-ttl", 0, "Expiry of stored sessions in the redis store (0 keeps them)")
	rootCmd.PersistentFlags().Bool("debug", false, "Log debug output to stderr")
}

func storeOptions(cmd *cobra.Command) cli.StoreOptions {
	flags := cmd.Flags()
	kind, _ := flags.GetString("store")
	dir, _ := flags.GetString("store-dir")
	url, _ := flags.GetString("redis-url")
	ttl, _ := flags.GetDuration("session-ttl")
	return cli.StoreOptions{Kind: kind, Dir: dir, RedisURL: url, TTL: ttl}
}
