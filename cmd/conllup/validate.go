package main

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/jamesainslie/go-conllup/validate"
)

func newValidateCmd(a *app) *cobra.Command {
	var (
		opts      validate.Options
		validator string
	)

	cmd := &cobra.Command{
		Use:   "validate SOURCE",
		Short: "Validate a .conllup corpus with the UD validator",
		Long: `Validate converts SOURCE without filtering and pipes the CONLLU output
into the Universal Dependencies validator. The command fails when the
validator reports errors or does not finish within --timeout.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in, err := openSource(args[0])
			if err != nil {
				return err
			}
			defer func() { _ = in.Close() }()

			opts.Command = strings.Fields(validator)
			opts.Stdout = cmd.OutOrStdout()
			opts.Stderr = cmd.ErrOrStderr()
			opts.Logger = a.logger
			_, err = validate.Run(cmd.Context(), in, opts)
			return err
		},
	}

	fl := cmd.Flags()
	fl.StringVar(&validator, "validator", strings.Join(validate.DefaultCommand, " "), "validator command line")
	fl.DurationVar(&opts.Timeout, "timeout", validate.DefaultTimeout, "give up after this long")
	fl.BoolVar(&opts.Quiet, "quiet", false, "only report pass or fail through the exit status")
	fl.IntVar(&opts.MaxErr, "max-err", 20, "errors to print before stopping (0 for all)")
	fl.StringVar(&opts.Lang, "lang", "", "two-letter language code for tag set checks")
	fl.IntVar(&opts.Level, "level", 5, "validation level 1-5")
	fl.BoolVar(&opts.MultipleRoots, "multiple-roots", false, "allow trees with several root words")
	fl.BoolVar(&opts.NoTreeText, "no-tree-text", false, "do not test tree text")
	fl.BoolVar(&opts.NoSpaceAfter, "no-space-after", false, "do not test presence of SpaceAfter=No")
	fl.BoolVar(&opts.Coref, "coref", false, "test coreference and entity annotation in MISC")
	_ = cmd.MarkFlagRequired("lang")

	return cmd
}
