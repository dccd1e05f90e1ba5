// Package token parses CONLLUP token lines and projects them to CONLLU.
package token

import (
	"errors"
	"fmt"
	"strings"
)

const (
	// NumFields is the column count of a CONLLUP token line.
	NumFields = 15

	// NumOutputFields is the column count of a CONLLU token line.
	NumOutputFields = 10

	fieldSeparator = "\t"
)

// Column indexes of a CONLLUP token line.
const (
	ColID = iota
	ColForm
	ColLemma
	ColUPOS
	ColXPOS
	ColFeats
	ColHead
	ColDepRel
	ColDeps
	ColMisc
	ColNE
	ColDP
	ColSRL
	ColMWE
	ColRMisc
)

// ErrMalformedToken indicates a token line without exactly NumFields columns.
var ErrMalformedToken = errors.New("token: malformed token line")

// nullValues are the corpus markers for "no value".
var nullValues = [...]string{"_", "*"}

// IsNull reports whether v is a corpus null marker.
func IsNull(v string) bool {
	for _, n := range nullValues {
		if v == n {
			return true
		}
	}
	return false
}

// Record is one parsed CONLLUP token line. Records are values; nothing
// in this package mutates a Record after Parse returns it.
type Record struct {
	ID     string // may be a range such as "3-4"
	Form   string
	Lemma  string
	UPOS   string
	XPOS   string
	Feats  string
	Head   string
	DepRel string
	Deps   string
	Misc   Bag

	NE    string
	DP    string
	SRL   string
	MWE   string
	RMisc Bag
}

// Fields splits a token line into its raw columns. Only the line
// terminator is removed before splitting.
func Fields(line string) ([]string, error) {
	line = trimEOL(line)
	fields := strings.Split(line, fieldSeparator)
	if len(fields) != NumFields {
		return nil, fmt.Errorf("%w: expected %d columns, got %d", ErrMalformedToken, NumFields, len(fields))
	}
	return fields, nil
}

// Parse decodes a CONLLUP token line.
func Parse(line string) (Record, error) {
	f, err := Fields(line)
	if err != nil {
		return Record{}, err
	}

	return Record{
		ID:     f[ColID],
		Form:   f[ColForm],
		Lemma:  f[ColLemma],
		UPOS:   f[ColUPOS],
		XPOS:   f[ColXPOS],
		Feats:  f[ColFeats],
		Head:   f[ColHead],
		DepRel: f[ColDepRel],
		Deps:   f[ColDeps],
		Misc:   ParseBag(f[ColMisc]),
		NE:     f[ColNE],
		DP:     f[ColDP],
		SRL:    f[ColSRL],
		MWE:    f[ColMWE],
		RMisc:  ParseBag(f[ColRMisc]),
	}, nil
}

func trimEOL(line string) string {
	line = strings.TrimSuffix(line, "\n")
	return strings.TrimSuffix(line, "\r")
}
