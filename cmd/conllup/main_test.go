package main

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/jamesainslie/go-conllup/internal/fixture"
	"github.com/jamesainslie/go-conllup/split"
)

func run(t *testing.T, args ...string) error {
	t.Helper()
	root := newRootCmd()
	root.SetArgs(args)
	root.SetOut(io.Discard)
	root.SetErr(io.Discard)
	return root.ExecuteContext(context.Background())
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	return string(data)
}

func sampleCorpus(n int) string {
	c := fixture.Corpus{Columns: true}
	for i := range n {
		id := "doc" + string(rune('a'+i))
		ds := "train"
		if i%2 == 1 {
			ds = "test"
		}
		c.Documents = append(c.Documents, fixture.Document{
			ID:       id,
			Datasets: ds,
			Sentences: []fixture.Sentence{
				{ID: id + ".1", Text: "Hello world"},
			},
		})
	}
	return c.String()
}

func TestOutputPath(t *testing.T) {
	tests := []struct {
		source, output, want string
		wantErr              bool
	}{
		{source: "a/corpus.conllup", want: "a/corpus.conllu"},
		{source: "corpus", want: "corpus.conllu"},
		{source: "corpus.conllup", output: "x.txt", want: "x.txt"},
		{source: "corpus.conllu", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.source, func(t *testing.T) {
			got, err := outputPath(tt.source, tt.output)
			if (err != nil) != tt.wantErr {
				t.Fatalf("outputPath() error = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("outputPath() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestExpandSources(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.conllup"), "")
	writeFile(t, filepath.Join(dir, "nested", "b.conllup"), "")
	writeFile(t, filepath.Join(dir, "notes.txt"), "")
	single := filepath.Join(dir, "notes.txt")

	got, err := expandSources([]string{dir, single, filepath.Join(dir, "a.conllup")}, "*.conllup")
	if err != nil {
		t.Fatalf("expandSources() error = %v", err)
	}
	want := []string{
		filepath.Join(dir, "a.conllup"),
		filepath.Join(dir, "nested", "b.conllup"),
		single,
	}
	if !slices.Equal(got, want) {
		t.Errorf("expandSources() = %v, want %v", got, want)
	}

	if _, err := expandSources([]string{filepath.Join(dir, "nested")}, "*.txt"); err == nil {
		t.Error("expected error when nothing matches")
	}
	if _, err := expandSources([]string{dir}, "[a"); err == nil {
		t.Error("expected error for bad glob")
	}
}

func TestOpenSource_StripsBOM(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bom.conllup")
	writeFile(t, path, "\ufeff# newdoc id = d1\n")

	rc, err := openSource(path)
	if err != nil {
		t.Fatal(err)
	}
	defer func() { _ = rc.Close() }()

	data, err := io.ReadAll(rc)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "# newdoc id = d1\n" {
		t.Errorf("read %q", data)
	}
}

func TestGenerateCommand(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "one.conllup"), sampleCorpus(2))
	writeFile(t, filepath.Join(dir, "sub", "two.conllup"), sampleCorpus(4))

	if err := run(t, "generate", dir, "-d", "train", "-j", "2"); err != nil {
		t.Fatalf("generate: %v", err)
	}

	one := readFile(t, filepath.Join(dir, "one.conllu"))
	if !strings.Contains(one, "# newdoc id = doca\n") || strings.Contains(one, "docb") {
		t.Errorf("one.conllu =\n%s", one)
	}
	two := readFile(t, filepath.Join(dir, "sub", "two.conllu"))
	if strings.Count(two, "# newdoc") != 2 {
		t.Errorf("two.conllu kept %d documents, want 2", strings.Count(two, "# newdoc"))
	}
}

func TestGenerateCommand_Output(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "in.conllup")
	writeFile(t, src, sampleCorpus(1))
	dst := filepath.Join(dir, "custom.txt")

	if err := run(t, "generate", src, "-o", dst, "--keep-status-metadata"); err != nil {
		t.Fatalf("generate: %v", err)
	}
	if !strings.Contains(readFile(t, dst), "# contained_in_datasets = train\n") {
		t.Error("status comment missing with --keep-status-metadata")
	}

	other := filepath.Join(dir, "other.conllup")
	writeFile(t, other, sampleCorpus(1))
	if err := run(t, "generate", src, other, "-o", dst); err == nil {
		t.Error("expected error for -o with two sources")
	}
}

func TestGenerateCommand_BadTransfer(t *testing.T) {
	src := filepath.Join(t.TempDir(), "in.conllup")
	writeFile(t, src, sampleCorpus(1))

	if err := run(t, "generate", src, "-m", "FOO"); err == nil {
		t.Error("expected error for unknown transfer column")
	}
}

func TestSplitCommand(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "corpus.conllup")
	writeFile(t, src, sampleCorpus(10))
	out := filepath.Join(dir, "out")

	if err := run(t, "split", src, "-o", out, "-t", "0.2", "-d", "0.1", "-s", "5", "--keep-conllu"); err != nil {
		t.Fatalf("split: %v", err)
	}

	for _, name := range []string{"corpus-train.conllu", "corpus-dev.conllu", "corpus-test.conllu"} {
		if _, err := os.Stat(filepath.Join(out, name)); err != nil {
			t.Errorf("missing %s: %v", name, err)
		}
	}
	if _, err := os.Stat(filepath.Join(dir, "corpus.conllu")); err != nil {
		t.Errorf("--keep-conllu did not keep the intermediate file: %v", err)
	}

	m, err := split.ReadManifest(filepath.Join(out, split.ManifestName("corpus")))
	if err != nil {
		t.Fatalf("ReadManifest() error = %v", err)
	}
	if m.Seed != 5 || len(m.Partitions) != 1 {
		t.Fatalf("manifest = %+v", m)
	}
	p := m.Partitions[0]
	if len(p.Train) != 7 || len(p.Dev) != 1 || len(p.Test) != 2 {
		t.Errorf("sizes = %d/%d/%d, want 7/1/2", len(p.Train), len(p.Dev), len(p.Test))
	}
	if test := readFile(t, filepath.Join(out, "corpus-test.conllu")); strings.Contains(test, "global.columns") {
		t.Error("split output contains global.columns")
	}
}

func TestSplitCommand_CrossValidation(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "corpus.conllup")
	writeFile(t, src, sampleCorpus(6))

	if err := run(t, "split", src, "-o", dir, "-t", "0.5", "--cross-validation", "-f", "cv"); err != nil {
		t.Fatalf("split: %v", err)
	}
	for _, name := range []string{"cv-fold1-train.conllu", "cv-fold1-test.conllu", "cv-fold2-train.conllu", "cv-fold2-test.conllu"} {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			t.Errorf("missing %s: %v", name, err)
		}
	}
	if _, err := os.Stat(filepath.Join(dir, "corpus.conllu")); err == nil {
		t.Error("intermediate file kept without --keep-conllu")
	}
}

func TestParsemeCommand(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "corpus.conllup")
	writeFile(t, src, sampleCorpus(1))
	ann := filepath.Join(dir, "mwe.json")
	writeFile(t, ann, `{"doca.1": {"annotations": [["2", "world", "1:LVC"]]}}`)

	if err := run(t, "parseme", src, ann); err != nil {
		t.Fatalf("parseme: %v", err)
	}
	out := readFile(t, filepath.Join(dir, "corpus.parseme.conllup"))
	if !strings.Contains(out, "\t1:LVC\t_\n") {
		t.Errorf("annotation not merged:\n%s", out)
	}
}

func TestValidateCommand_RequiresLang(t *testing.T) {
	src := filepath.Join(t.TempDir(), "in.conllup")
	writeFile(t, src, sampleCorpus(1))

	if err := run(t, "validate", src); err == nil {
		t.Error("expected error without --lang")
	}
}
