package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jamesainslie/go-conllup/parseme"
)

func newParsemeCmd(a *app) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "parseme SOURCE ANNOTATIONS",
		Short: "Add PARSEME:MWE annotations to a .conllup file",
		Long: `Parseme fills the PARSEME:MWE column of SOURCE from the JSON file
ANNOTATIONS, keyed by sentence id. Tokens of an annotated sentence
without an entry get "*"; other sentences are copied unchanged.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			source, annPath := args[0], args[1]
			if output == "" {
				output = strings.TrimSuffix(source, filepath.Ext(source)) + ".parseme.conllup"
			}

			ann, err := parseme.Load(annPath)
			if err != nil {
				return err
			}

			in, err := openSource(source)
			if err != nil {
				return err
			}
			defer func() { _ = in.Close() }()

			out, err := os.Create(output)
			if err != nil {
				return err
			}
			if err := parseme.Merge(in, out, ann); err != nil {
				_ = out.Close()
				return fmt.Errorf("%s: %w", source, err)
			}
			if err := out.Close(); err != nil {
				return err
			}

			a.logger.Info("merged annotations", "source", source, "sentences", len(ann), "output", output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: SOURCE with .parseme.conllup)")
	return cmd
}
