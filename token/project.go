package token

import (
	"fmt"
	"strings"

	"github.com/samber/lo"
)

// Transfer names an auxiliary column that can be folded into MISC.
type Transfer string

const (
	TransferNE      Transfer = "NE"
	TransferDP      Transfer = "DP"
	TransferSRL     Transfer = "SRL"
	TransferPARSEME Transfer = "PARSEME"
	TransferRMisc   Transfer = "RMISC"
)

// AllTransfers lists the accepted transfer names in column order.
var AllTransfers = []Transfer{TransferNE, TransferDP, TransferSRL, TransferPARSEME, TransferRMisc}

// Transfers is the set of columns selected for transfer.
type Transfers []Transfer

// ParseTransfers validates names against AllTransfers and drops duplicates.
func ParseTransfers(names ...string) (Transfers, error) {
	ts := make(Transfers, 0, len(names))
	for _, n := range names {
		t := Transfer(strings.ToUpper(strings.TrimSpace(n)))
		if !lo.Contains(AllTransfers, t) {
			return nil, fmt.Errorf("unknown transfer column %q (allowed: %s)", n, strings.Join(lo.Map(AllTransfers, func(t Transfer, _ int) string { return string(t) }), ", "))
		}
		ts = append(ts, t)
	}
	return lo.Uniq(ts), nil
}

// Has reports whether t is selected.
func (ts Transfers) Has(t Transfer) bool {
	return lo.Contains(ts, t)
}

// auxColumns maps each auxiliary column to its MISC label, in insertion order.
var auxColumns = []struct {
	transfer Transfer
	label    string
	value    func(Record) string
}{
	{TransferNE, "NER", func(r Record) string { return r.NE }},
	{TransferDP, "DP", func(r Record) string { return r.DP }},
	{TransferSRL, "SRL", func(r Record) string { return r.SRL }},
	{TransferPARSEME, "PARSEME", func(r Record) string { return r.MWE }},
}

// Projected is the reduced CONLLU form of a Record.
type Projected struct {
	ID     string
	Form   string
	Lemma  string
	UPOS   string
	XPOS   string
	Feats  string
	Head   string
	DepRel string
	Deps   string
	Misc   Bag
}

// Project derives the CONLLU record for r. Selected auxiliary columns are
// appended to a copy of r's MISC bag unless they hold a null marker; the
// RMISC bag, when selected, is merged last and wins on key collisions.
func Project(r Record, ts Transfers) Projected {
	misc := r.Misc.Clone()

	for _, col := range auxColumns {
		if !ts.Has(col.transfer) {
			continue
		}
		if v := col.value(r); !IsNull(v) {
			misc.Set(col.label, v)
		}
	}

	if ts.Has(TransferRMisc) {
		misc.Merge(r.RMisc)
	}

	return Projected{
		ID:     r.ID,
		Form:   r.Form,
		Lemma:  r.Lemma,
		UPOS:   r.UPOS,
		XPOS:   r.XPOS,
		Feats:  r.Feats,
		Head:   r.Head,
		DepRel: r.DepRel,
		Deps:   r.Deps,
		Misc:   misc,
	}
}

// Fields returns the ten output columns.
func (p Projected) Fields() []string {
	return []string{p.ID, p.Form, p.Lemma, p.UPOS, p.XPOS, p.Feats, p.Head, p.DepRel, p.Deps, p.Misc.String()}
}

// String renders the CONLLU token line without a trailing newline.
func (p Projected) String() string {
	return strings.Join(p.Fields(), fieldSeparator)
}
