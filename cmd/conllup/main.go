// Command conllup converts CONLLUP corpora to CONLLU and prepares
// train/dev/test splits from them.
package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	if err := fang.Execute(context.Background(), newRootCmd(), fang.WithVersion(version)); err != nil {
		os.Exit(1)
	}
}

// app carries state shared by all subcommands.
type app struct {
	verbose bool
	logger  *slog.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{logger: slog.Default()}

	root := &cobra.Command{
		Use:   "conllup",
		Short: "Convert and split CONLLUP corpora",
		Long: `conllup turns CONLLUP files (CoNLL-U Plus with 15 columns and status
comments) into plain 10-column CONLLU, optionally keeping only the
documents or sentences that belong to given datasets or carry given
annotation levels.`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			level := slog.LevelInfo
			if a.verbose {
				level = slog.LevelDebug
			}
			a.logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
		},
	}
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "log every keep/drop decision")

	root.AddCommand(
		newGenerateCmd(a),
		newSplitCmd(a),
		newValidateCmd(a),
		newParsemeCmd(a),
	)
	return root
}
