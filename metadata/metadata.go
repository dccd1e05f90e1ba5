// Package metadata classifies CONLLUP lines and extracts the structured
// values carried by status comments.
package metadata

import (
	"strings"

	"github.com/samber/lo"
)

// Kind is the dispatch category of an input line.
type Kind int

const (
	KindToken Kind = iota
	KindBlank
	KindComment
	KindNewDoc
	KindSentID
	KindDatasets
	KindAnnotations
	KindColumns

	// NumKinds is the number of categories, for dispatch tables.
	NumKinds
)

var kindNames = [NumKinds]string{"token", "blank", "comment", "newdoc", "sent_id", "contained_in_datasets", "annotation_levels", "global.columns"}

func (k Kind) String() string {
	if k < 0 || k >= NumKinds {
		return "unknown"
	}
	return kindNames[k]
}

// Comment prefixes recognised by Classify.
const (
	PrefixNewDoc      = "# newdoc"
	PrefixSentID      = "# sent_id"
	PrefixDatasets    = "# contained_in_datasets"
	PrefixAnnotations = "# annotation_levels"
	PrefixColumns     = "# global.columns"

	commentPrefix  = "# "
	valueSeparator = " = "
	entrySeparator = ";"
	partialMarker  = "*"
)

// prefixes is checked in order; the first match wins.
var prefixes = []struct {
	prefix string
	kind   Kind
}{
	{PrefixNewDoc, KindNewDoc},
	{PrefixSentID, KindSentID},
	{PrefixDatasets, KindDatasets},
	{PrefixAnnotations, KindAnnotations},
	{PrefixColumns, KindColumns},
}

// Classify returns the category of line. Whitespace-only lines are blank.
func Classify(line string) Kind {
	if strings.TrimSpace(line) == "" {
		return KindBlank
	}
	if !strings.HasPrefix(line, commentPrefix) {
		return KindToken
	}
	for _, p := range prefixes {
		if strings.HasPrefix(line, p.prefix) {
			return p.kind
		}
	}
	return KindComment
}

// Value returns the text after "<prefix> = " on a comment line, without
// the line terminator. ok is false when the line does not have that shape
// or the value is empty.
func Value(line, prefix string) (value string, ok bool) {
	rest, found := strings.CutPrefix(line, prefix+valueSeparator)
	if !found {
		return "", false
	}
	rest = strings.TrimRight(rest, "\r\n")
	if strings.TrimSpace(rest) == "" {
		return "", false
	}
	return rest, true
}

// Dataset is one entry of a contained_in_datasets declaration.
type Dataset struct {
	Name    string
	Partial bool // the entry carried a trailing "*"
}

// ExtractDatasets parses a "# contained_in_datasets = a;b*" line.
// ok is false when the line is malformed or declares no names.
func ExtractDatasets(line string) ([]Dataset, bool) {
	entries, ok := list(line, PrefixDatasets)
	if !ok {
		return nil, false
	}

	var out []Dataset
	for _, e := range entries {
		name := strings.Trim(e, partialMarker)
		if name == "" {
			continue
		}
		out = append(out, Dataset{Name: name, Partial: strings.HasSuffix(e, partialMarker)})
	}
	return out, len(out) > 0
}

// ExtractAnnotationLevels parses a "# annotation_levels = a;b" line.
func ExtractAnnotationLevels(line string) ([]string, bool) {
	return list(line, PrefixAnnotations)
}

// Names returns the marker-free dataset names.
func Names(ds []Dataset) []string {
	return lo.Map(ds, func(d Dataset, _ int) string { return d.Name })
}

// AnyPartial reports whether any entry carries the partial marker.
func AnyPartial(ds []Dataset) bool {
	return lo.SomeBy(ds, func(d Dataset) bool { return d.Partial })
}

func list(line, prefix string) ([]string, bool) {
	v, ok := Value(line, prefix)
	if !ok {
		return nil, false
	}

	var out []string
	for _, e := range strings.Split(v, entrySeparator) {
		if e = strings.TrimSpace(e); e != "" {
			out = append(out, e)
		}
	}
	return out, len(out) > 0
}
