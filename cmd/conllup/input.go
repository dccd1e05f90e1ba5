package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/gobwas/glob"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/jamesainslie/go-conllup"
	"github.com/jamesainslie/go-conllup/token"
)

var errNoSources = errors.New("no source files found")

// filterFlags are the conversion flags shared by generate and split.
type filterFlags struct {
	datasets        []string
	omitDatasets    []string
	annotations     []string
	omitAnnotations []string
	misc            []string
	keepStatus      bool
}

// register adds the flags to cmd. Dataset flags are only offered when
// datasets is true, since split uses -d and -t for its own shares.
func (f *filterFlags) register(cmd *cobra.Command, datasets bool) {
	fl := cmd.Flags()
	if datasets {
		fl.StringSliceVarP(&f.datasets, "datasets", "d", nil, "keep documents contained in any of these datasets")
		fl.StringSliceVarP(&f.omitDatasets, "omit-datasets", "t", nil, "drop documents contained in any of these datasets")
	}
	fl.StringSliceVarP(&f.annotations, "annotations", "a", nil, "keep documents having all of these annotation levels")
	fl.StringSliceVarP(&f.omitAnnotations, "omit-annotations", "n", nil, "drop documents having any of these annotation levels")
	fl.StringSliceVarP(&f.misc, "misc", "m", nil, "transfer these columns to MISC (NE, DP, SRL, PARSEME, RMISC)")
	fl.BoolVar(&f.keepStatus, "keep-status-metadata", false, "write status comments to the output")
}

func (f *filterFlags) options(a *app) ([]conllup.Option, error) {
	transfers, err := token.ParseTransfers(f.misc...)
	if err != nil {
		return nil, err
	}
	return []conllup.Option{
		conllup.WithDatasets(f.datasets...),
		conllup.WithOmitDatasets(f.omitDatasets...),
		conllup.WithAnnotations(f.annotations...),
		conllup.WithOmitAnnotations(f.omitAnnotations...),
		conllup.WithTransfers(transfers...),
		conllup.WithKeepStatus(f.keepStatus),
		conllup.WithLogger(a.logger),
	}, nil
}

// expandSources resolves file and directory arguments. Directories are
// walked recursively for files whose base name matches include.
func expandSources(args []string, include string) ([]string, error) {
	g, err := glob.Compile(include)
	if err != nil {
		return nil, fmt.Errorf("invalid --include pattern %q: %w", include, err)
	}

	var sources []string
	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			sources = append(sources, arg)
			continue
		}

		err = filepath.WalkDir(arg, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if !d.IsDir() && g.Match(d.Name()) {
				sources = append(sources, path)
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("walking %s: %w", arg, err)
		}
	}

	sources = lo.Uniq(sources)
	if len(sources) == 0 {
		return nil, errNoSources
	}
	return sources, nil
}

// outputPath returns output if set, else source with its extension
// replaced by .conllu.
func outputPath(source, output string) (string, error) {
	if output == "" {
		output = strings.TrimSuffix(source, filepath.Ext(source)) + ".conllu"
	}
	if filepath.Clean(output) == filepath.Clean(source) {
		return "", fmt.Errorf("output %s would overwrite its source", output)
	}
	return output, nil
}

type readCloser struct {
	io.Reader
	io.Closer
}

// openSource opens path for reading with any leading UTF-8 BOM removed.
func openSource(path string) (io.ReadCloser, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	return readCloser{
		Reader: transform.NewReader(f, unicode.UTF8BOM.NewDecoder()),
		Closer: f,
	}, nil
}

// convertFile runs gen over src and writes the result to dst.
func convertFile(ctx context.Context, gen *conllup.Generator, src, dst string) (conllup.Stats, error) {
	in, err := openSource(src)
	if err != nil {
		return conllup.Stats{}, err
	}
	defer func() { _ = in.Close() }()

	out, err := os.Create(dst)
	if err != nil {
		return conllup.Stats{}, err
	}

	stats, err := gen.Generate(ctx, in, out)
	if cerr := out.Close(); cerr != nil && err == nil {
		err = cerr
	}
	return stats, err
}
