package conllup

import (
	"github.com/samber/lo"

	"github.com/jamesainslie/go-conllup/metadata"
)

// decision is the outcome of checking one declaration against the policy.
type decision int

const (
	pass decision = iota
	discard
	demote // continue the document at sentence granularity
)

func (d decision) String() string {
	switch d {
	case pass:
		return "pass"
	case discard:
		return "discard"
	case demote:
		return "demote"
	}
	return "unknown"
}

// policy holds the requested allow/deny lists. An empty list places no
// constraint on its dimension.
type policy struct {
	datasets        []string
	omitDatasets    []string
	annotations     []string
	omitAnnotations []string
}

func (p policy) constrainsDatasets() bool {
	return len(p.datasets) > 0 || len(p.omitDatasets) > 0
}

func (p policy) constrainsAnnotations() bool {
	return len(p.annotations) > 0 || len(p.omitAnnotations) > 0
}

func (p policy) constrained() bool {
	return p.constrainsDatasets() || p.constrainsAnnotations()
}

// membership applies the deny-then-allow dataset rules shared by
// documents and sentences.
func (p policy) membership(names []string) decision {
	if len(p.omitDatasets) > 0 && lo.Some(names, p.omitDatasets) {
		return discard
	}
	if len(p.datasets) > 0 && !lo.Some(names, p.datasets) {
		return discard
	}
	return pass
}

// documentDatasets decides on a document-level contained_in_datasets
// declaration. A nil declaration stands for one that never arrived.
func (p policy) documentDatasets(declared []metadata.Dataset) decision {
	if d := p.membership(metadata.Names(declared)); d != pass {
		return d
	}
	if len(p.datasets) > 0 && metadata.AnyPartial(declared) {
		return demote
	}
	return pass
}

// sentenceDatasets decides on a sentence-level declaration. Partial
// markers carry no meaning at this level.
func (p policy) sentenceDatasets(declared []metadata.Dataset) decision {
	return p.membership(metadata.Names(declared))
}

// annotationLevels decides on an annotation_levels declaration: any
// denied level discards, and every allowed level must be present.
func (p policy) annotationLevels(declared []string) decision {
	if len(p.omitAnnotations) > 0 && lo.Some(declared, p.omitAnnotations) {
		return discard
	}
	if len(p.annotations) > 0 && !lo.Every(declared, p.annotations) {
		return discard
	}
	return pass
}
