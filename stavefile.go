//go:build stave

package main

import (
	"fmt"
	"os"
	"runtime"
	"strings"

	"github.com/yaklabco/stave/pkg/sh"
	"github.com/yaklabco/stave/pkg/st"
	"github.com/yaklabco/stave/pkg/target"
)

// Default target when running `stave` with no arguments.
var Default = All

// Aliases for common targets.
var Aliases = map[string]interface{}{
	"b": Build,
	"t": Test,
	"l": Lint,
	"c": Clean,
}

// All runs the complete build pipeline: lint, test, and build.
func All() error {
	st.Deps(Init)
	st.Deps(Lint, Test)
	st.Deps(Build)
	return nil
}

// Init ensures the module dependencies are up to date.
func Init() error {
	return sh.Run("go", "mod", "tidy")
}

// Build compiles the conllup binary with version information.
func Build() error {
	st.Deps(Init)

	rebuild, err := target.Glob("bin/conllup", "**/*.go", "go.mod", "go.sum")
	if err != nil {
		return fmt.Errorf("checking rebuild: %w", err)
	}
	if !rebuild {
		if st.Verbose() {
			fmt.Println("conllup is up to date")
		}
		return nil
	}

	return sh.RunV("go", "build", "-ldflags", buildLdflags(), "-o", "bin/conllup", "./cmd/conllup")
}

// buildLdflags returns ldflags for version injection.
func buildLdflags() string {
	version, _ := sh.Output("git", "describe", "--tags", "--always", "--dirty")
	return "-X main.version=" + strings.TrimSpace(version)
}

// Test runs all tests with race detection and coverage.
func Test() error {
	st.Deps(Init)
	return sh.RunV("go", "test", "-race", "-cover", "./...")
}

// TestShort runs tests in short mode (skips long-running tests).
func TestShort() error {
	st.Deps(Init)
	return sh.RunV("go", "test", "-short", "-race", "./...")
}

// TestVerbose runs tests with verbose output.
func TestVerbose() error {
	st.Deps(Init)
	return sh.RunV("go", "test", "-race", "-cover", "-v", "./...")
}

// Lint runs golangci-lint on the codebase.
func Lint() error {
	return sh.RunV("golangci-lint", "run", "./...")
}

// LintFix runs golangci-lint with auto-fix enabled.
func LintFix() error {
	return sh.RunV("golangci-lint", "run", "--fix", "./...")
}

// Fmt formats all Go code using gofmt and goimports.
func Fmt() error {
	if err := sh.Run("gofmt", "-w", "."); err != nil {
		return fmt.Errorf("gofmt: %w", err)
	}
	if err := sh.Run("goimports", "-w", "."); err != nil {
		return fmt.Errorf("goimports: %w", err)
	}
	return nil
}

// Vet runs go vet on all packages.
func Vet() error {
	return sh.RunV("go", "vet", "./...")
}

// Clean removes build artifacts and generated corpora.
func Clean() error {
	artifacts := []string{
		"bin/",
		"conllup",
		"coverage.out",
		"coverage.html",
		syntheticCorpus,
	}
	for _, a := range artifacts {
		if err := sh.Rm(a); err != nil {
			return fmt.Errorf("removing %s: %w", a, err)
		}
	}
	return nil
}

// Install builds and installs the binary to GOBIN.
func Install() error {
	st.Deps(Build)

	gocmd := st.GoCmd()
	bin, err := sh.Output(gocmd, "env", "GOBIN")
	if err != nil {
		return fmt.Errorf("determining GOBIN: %w", err)
	}
	if bin == "" {
		gopath, err := sh.Output(gocmd, "env", "GOPATH")
		if err != nil {
			return fmt.Errorf("determining GOPATH: %w", err)
		}
		bin = gopath + "/bin"
	}

	dst := bin + "/conllup"
	if runtime.GOOS == "windows" {
		dst += ".exe"
	}
	if err := sh.Copy(dst, "bin/conllup"); err != nil {
		return fmt.Errorf("installing conllup: %w", err)
	}
	if st.Verbose() {
		fmt.Printf("Installed conllup to %s\n", dst)
	}
	return nil
}

const syntheticCorpus = "testdata/synthetic.conllup"

// Corpus namespace for test corpus targets.
type Corpus st.Namespace

// Synthetic writes a synthetic CONLLUP corpus with a large undeclared
// document at the end. CORPUS_DOCS overrides the document count.
func (Corpus) Synthetic() error {
	docs := os.Getenv("CORPUS_DOCS")
	if docs == "" {
		docs = "5000"
	}
	if err := os.MkdirAll("testdata", 0o755); err != nil {
		return err
	}
	return sh.RunV("go", "run", "./scripts/gen-corpus.go", "-docs", docs, "-filler", "64", "-out", syntheticCorpus)
}

// UD converts the UD English Web Treebank in testdata/ud-ewt to CONLLUP.
func (Corpus) UD() error {
	if _, err := os.Stat("testdata/ud-ewt/en_ewt-ud-train.conllu"); os.IsNotExist(err) {
		return fmt.Errorf("UD EWT files not found in testdata/ud-ewt")
	}
	return sh.RunV("go", "run", "./scripts/ud-to-conllup.go")
}

// Generate runs the built binary over the synthetic corpus, keeping the
// train set with NE transferred to MISC.
func (Corpus) Generate() error {
	st.Deps(Build)
	if _, err := os.Stat(syntheticCorpus); os.IsNotExist(err) {
		if err := (Corpus{}).Synthetic(); err != nil {
			return err
		}
	}
	return sh.RunV("./bin/conllup", "generate", syntheticCorpus, "-d", "train", "-m", "NE", "-v")
}

// Bench runs the Go benchmarks for the conversion path.
func (Corpus) Bench() error {
	return sh.RunV("go", "test", "-run", "^$", "-bench", ".", "-benchmem", ".")
}

// CI runs the full CI pipeline (lint, test, build).
func CI() error {
	st.Deps(Init)
	st.SerialDeps(Lint, Test, Build)
	return nil
}

// Check runs quick validation (vet, lint, short tests).
func Check() error {
	st.Deps(Vet, Lint, TestShort)
	return nil
}

// Coverage generates a coverage report.
func Coverage() error {
	st.Deps(Init)
	if err := sh.RunV("go", "test", "-race", "-coverprofile=coverage.out", "./..."); err != nil {
		return err
	}
	return sh.RunV("go", "tool", "cover", "-html=coverage.out", "-o", "coverage.html")
}

// Tidy runs go mod tidy and verifies the go.sum is clean.
func Tidy() error {
	if err := sh.Run("go", "mod", "tidy"); err != nil {
		return err
	}
	// Verify no changes to go.sum (useful for CI)
	output, err := sh.Output("git", "diff", "--exit-code", "go.sum")
	if err != nil {
		if output != "" {
			return fmt.Errorf("go.sum is not clean:\n%s", output)
		}
	}
	return nil
}
