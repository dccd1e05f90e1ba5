package main

import (
	"context"
	"errors"
	"fmt"
	"runtime"

	"github.com/gosuri/uiprogress"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/jamesainslie/go-conllup"
)

type generateFlags struct {
	filter   filterFlags
	output   string
	include  string
	jobs     int
	progress bool
}

func newGenerateCmd(a *app) *cobra.Command {
	f := &generateFlags{}

	cmd := &cobra.Command{
		Use:   "generate SOURCE...",
		Short: "Generate .conllu files from .conllup sources",
		Long: `Generate converts each SOURCE to CONLLU next to it, replacing the
extension with .conllu. Directory sources are searched recursively for
files matching --include.`,
		Example: `  conllup generate corpus.conllup -d train -m NE,RMISC
  conllup generate data/ --include '*.conllup' -n srl -j 4 --progress`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(cmd.Context(), a, f, args)
		},
	}

	f.filter.register(cmd, true)
	fl := cmd.Flags()
	fl.StringVarP(&f.output, "output", "o", "", "output file (single source only)")
	fl.StringVar(&f.include, "include", "*.conllup", "glob for files inside directory sources")
	fl.IntVarP(&f.jobs, "jobs", "j", runtime.NumCPU(), "sources converted concurrently")
	fl.BoolVar(&f.progress, "progress", false, "show a progress bar")
	return cmd
}

func runGenerate(ctx context.Context, a *app, f *generateFlags, args []string) error {
	sources, err := expandSources(args, f.include)
	if err != nil {
		return err
	}
	if f.output != "" && len(sources) > 1 {
		return errors.New("--output needs exactly one source")
	}

	opts, err := f.filter.options(a)
	if err != nil {
		return err
	}
	gen := conllup.New(opts...)

	var bar *uiprogress.Bar
	if f.progress {
		uiprogress.Start()
		defer uiprogress.Stop()
		bar = uiprogress.AddBar(len(sources))
		bar.AppendCompleted()
		bar.PrependElapsed()
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(max(f.jobs, 1))
	for _, src := range sources {
		g.Go(func() error {
			dst, err := outputPath(src, f.output)
			if err != nil {
				return err
			}

			stats, err := convertFile(ctx, gen, src, dst)
			if err != nil {
				return fmt.Errorf("%s: %w", src, err)
			}
			a.logger.Info("generated",
				"source", src,
				"output", dst,
				"documents", stats.Documents,
				"kept", stats.DocumentsKept,
				"sentences_dropped", stats.SentencesDropped,
				"tokens", stats.Tokens,
			)
			if bar != nil {
				bar.Incr()
			}
			return nil
		})
	}
	return g.Wait()
}
