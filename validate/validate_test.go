package validate

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os/exec"
	"slices"
	"strings"
	"testing"
	"time"

	"github.com/jamesainslie/go-conllup"
	"github.com/jamesainslie/go-conllup/internal/fixture"
)

func skipWithoutShell(t *testing.T) {
	t.Helper()
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("Skipping: sh not available")
	}
}

func quiet() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// shell runs script, ignoring the validator flags passed as positional args.
func shell(script string) []string {
	return []string{"sh", "-c", script, "validator"}
}

func TestOptions_Args(t *testing.T) {
	tests := []struct {
		name string
		opts Options
		want []string
	}{
		{
			name: "defaults",
			opts: Options{Lang: "ro"},
			want: []string{"--lang", "ro", "--level", "5"},
		},
		{
			name: "everything",
			opts: Options{
				Quiet:         true,
				MaxErr:        20,
				Lang:          "ro",
				Level:         2,
				MultipleRoots: true,
				NoTreeText:    true,
				NoSpaceAfter:  true,
				Coref:         true,
			},
			want: []string{
				"--quiet", "--max-err", "20", "--lang", "ro", "--level", "2",
				"--multiple-roots", "--no-tree-text", "--no-space-after", "--coref",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.opts.Args(); !slices.Equal(got, tt.want) {
				t.Errorf("Args() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRun_RequiresLanguage(t *testing.T) {
	if _, err := Run(context.Background(), strings.NewReader(""), Options{}); !errors.Is(err, ErrNoLanguage) {
		t.Errorf("error = %v, want ErrNoLanguage", err)
	}
}

func TestRun_PipesUnfilteredOutput(t *testing.T) {
	skipWithoutShell(t)

	in := fixture.Corpus{Columns: true, Documents: []fixture.Document{
		{ID: "d1", Datasets: "test", Sentences: []fixture.Sentence{{ID: "d1.1", Text: "Hello world"}}},
	}}.String()

	var want strings.Builder
	if _, err := conllup.New(conllup.WithLogger(quiet())).Generate(context.Background(), strings.NewReader(in), &want); err != nil {
		t.Fatal(err)
	}

	var got strings.Builder
	stats, err := Run(context.Background(), strings.NewReader(in), Options{
		Command: shell("cat"),
		Lang:    "ro",
		Stdout:  &got,
		Logger:  quiet(),
	})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if got.String() != want.String() {
		t.Errorf("validator stdin =\n%s\nwant\n%s", got.String(), want.String())
	}
	if stats.DocumentsKept != 1 {
		t.Errorf("DocumentsKept = %d, want 1", stats.DocumentsKept)
	}
}

func TestRun_ValidatorFails(t *testing.T) {
	skipWithoutShell(t)

	var stderr strings.Builder
	_, err := Run(context.Background(), strings.NewReader(fixture.Filler("d", "", "", 256<<10).String()), Options{
		Command: shell("echo invalid >&2; exit 3"),
		Lang:    "ro",
		Stdout:  io.Discard,
		Stderr:  &stderr,
		Logger:  quiet(),
	})
	if !errors.Is(err, ErrValidatorFailed) {
		t.Fatalf("error = %v, want ErrValidatorFailed", err)
	}
	var exitErr *exec.ExitError
	if !errors.As(err, &exitErr) || exitErr.ExitCode() != 3 {
		t.Errorf("expected exit status 3 in chain, got %v", err)
	}
	if !strings.Contains(stderr.String(), "invalid") {
		t.Errorf("stderr = %q", stderr.String())
	}
}

func TestRun_Timeout(t *testing.T) {
	skipWithoutShell(t)
	if _, err := exec.LookPath("sleep"); err != nil {
		t.Skip("Skipping: sleep not available")
	}

	start := time.Now()
	_, err := Run(context.Background(), strings.NewReader("# newdoc id = d\n"), Options{
		Command: shell("exec sleep 10"),
		Lang:    "ro",
		Timeout: 100 * time.Millisecond,
		Stdout:  io.Discard,
		Logger:  quiet(),
	})
	if !errors.Is(err, ErrValidatorTimeout) {
		t.Fatalf("error = %v, want ErrValidatorTimeout", err)
	}
	if elapsed := time.Since(start); elapsed > 5*time.Second {
		t.Errorf("Run took %s after timeout", elapsed)
	}
}

func TestRun_MalformedInput(t *testing.T) {
	skipWithoutShell(t)

	_, err := Run(context.Background(), strings.NewReader("# newdoc id = d\n1\tbad\n"), Options{
		Command: shell("cat >/dev/null"),
		Lang:    "ro",
		Stdout:  io.Discard,
		Logger:  quiet(),
	})
	if !errors.Is(err, conllup.ErrMalformedToken) {
		t.Errorf("error = %v, want ErrMalformedToken", err)
	}
}
