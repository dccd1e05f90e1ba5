// Package conllup converts CONLLUP corpora (15 columns plus status
// comments) into CONLLU (10 columns), filtering documents or sentences by
// declared dataset membership and annotation level on the way.
//
// # Quick Start
//
//	gen := conllup.New(
//	    conllup.WithDatasets("train"),
//	    conllup.WithTransfers(token.TransferNE),
//	)
//	stats, err := gen.Generate(ctx, in, out)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Printf("kept %d of %d documents\n", stats.DocumentsKept, stats.Documents)
//
// # Streaming
//
// Generate makes a single pass over its input. Text is held back only
// while the keep/discard decision for the current document (or, for
// partially included documents, the current sentence) is still open, so
// memory is bounded by the largest document rather than the corpus.
//
// # Errors
//
// A token line without exactly 15 columns aborts the run with a
// *LineError wrapping ErrMalformedToken. Malformed status comments are
// logged and otherwise ignored.
package conllup
