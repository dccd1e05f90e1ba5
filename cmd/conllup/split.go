package main

import (
	"context"
	"fmt"
	"math/rand/v2"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jamesainslie/go-conllup"
	"github.com/jamesainslie/go-conllup/split"
)

type splitFlags struct {
	filter          filterFlags
	outDir          string
	name            string
	keepConllu      bool
	test            float64
	dev             float64
	seed            int64
	crossValidation bool
}

func newSplitCmd(a *app) *cobra.Command {
	f := &splitFlags{}

	cmd := &cobra.Command{
		Use:   "split SOURCE",
		Short: "Generate .conllu from a .conllup source and split it into train, dev and test",
		Long: `Split converts SOURCE to CONLLU and partitions its documents into
<name>-train.conllu, <name>-dev.conllu and <name>-test.conllu. The shuffle
is reproducible with --seed; the seed actually used is recorded in
<name>.manifest.pb together with the document ids of every set.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("seed") {
				f.seed = rand.Int64()
			}
			return runSplit(cmd.Context(), a, f, args[0])
		},
	}

	f.filter.register(cmd, false)
	fl := cmd.Flags()
	fl.StringVarP(&f.outDir, "output-dir", "o", ".", "directory for the split files")
	fl.StringVarP(&f.name, "output-filename", "f", "", "base name of the split files (default: source name)")
	fl.BoolVar(&f.keepConllu, "keep-conllu", false, "keep the intermediate .conllu file next to the source")
	fl.Float64VarP(&f.test, "test", "t", 0.3, "test set share")
	fl.Float64VarP(&f.dev, "dev", "d", 0, "dev set share")
	fl.Int64VarP(&f.seed, "seed", "s", 0, "shuffle seed (default: random)")
	fl.BoolVar(&f.crossValidation, "cross-validation", false, "write round(1/test) cross-validation folds")
	return cmd
}

func runSplit(ctx context.Context, a *app, f *splitFlags, source string) error {
	opts, err := f.filter.options(a)
	if err != nil {
		return err
	}

	intermediate, cleanup, err := intermediateFile(source, f.keepConllu)
	if err != nil {
		return err
	}
	defer cleanup()

	if _, err := convertFile(ctx, conllup.New(opts...), source, intermediate); err != nil {
		return fmt.Errorf("%s: %w", source, err)
	}

	in, err := os.Open(intermediate)
	if err != nil {
		return err
	}
	docs, err := split.Documents(in)
	_ = in.Close()
	if err != nil {
		return err
	}

	splitOpts := split.Options{Test: f.test, Dev: f.dev, Seed: f.seed}
	var parts []split.Partition
	if f.crossValidation {
		parts, err = split.CrossValidation(docs, split.Folds(f.test), f.seed)
	} else {
		var p split.Partition
		p, err = split.Split(docs, splitOpts)
		parts = []split.Partition{p}
	}
	if err != nil {
		return err
	}

	name := f.name
	if name == "" {
		name = strings.TrimSuffix(filepath.Base(source), filepath.Ext(source))
	}
	paths, err := split.WriteFiles(f.outDir, name, parts)
	if err != nil {
		return err
	}
	manifest := filepath.Join(f.outDir, split.ManifestName(name))
	if err := split.WriteManifest(manifest, split.NewManifest(splitOpts, parts)); err != nil {
		return err
	}

	a.logger.Info("split",
		"source", source,
		"documents", len(docs),
		"folds", len(parts),
		"files", len(paths),
		"manifest", manifest,
		"seed", f.seed,
	)
	return nil
}

// intermediateFile picks where the generated CONLLU goes before splitting.
func intermediateFile(source string, keep bool) (path string, cleanup func(), err error) {
	if keep {
		path, err = outputPath(source, "")
		return path, func() {}, err
	}

	tmp, err := os.CreateTemp("", "conllup-*.conllu")
	if err != nil {
		return "", nil, err
	}
	_ = tmp.Close()
	return tmp.Name(), func() { _ = os.Remove(tmp.Name()) }, nil
}
