package token

import (
	"strings"
	"testing"
)

func mustParse(t *testing.T, s string) Record {
	t.Helper()
	rec, err := Parse(s)
	if err != nil {
		t.Fatalf("Parse(%q) error = %v", s, err)
	}
	return rec
}

func TestProject_NoTransfers(t *testing.T) {
	in := line("1", "Casa", "casa", "NOUN", "Ncfsn", "Gender=Fem", "0", "root", "_", "_", "B-LOC", "x", "y", "1", "K=V")
	p := Project(mustParse(t, in), nil)

	want := line("1", "Casa", "casa", "NOUN", "Ncfsn", "Gender=Fem", "0", "root", "_", "_")
	if got := p.String(); got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
	if n := len(p.Fields()); n != NumOutputFields {
		t.Errorf("got %d fields, want %d", n, NumOutputFields)
	}
}

func TestProject_Transfers(t *testing.T) {
	tests := []struct {
		name      string
		misc      string
		ne        string
		dp        string
		srl       string
		mwe       string
		rmisc     string
		transfers Transfers
		want      string
	}{
		{
			name:      "all columns in fixed order",
			misc:      "SpaceAfter=No",
			ne:        "B-PER",
			dp:        "nsubj",
			srl:       "A0",
			mwe:       "1:LVC",
			rmisc:     "_",
			transfers: Transfers{TransferPARSEME, TransferSRL, TransferDP, TransferNE},
			want:      "SpaceAfter=No|NER=B-PER|DP=nsubj|SRL=A0|PARSEME=1:LVC",
		},
		{
			name:      "null markers skipped",
			misc:      "_",
			ne:        "_",
			dp:        "*",
			srl:       "A1",
			mwe:       "*",
			rmisc:     "_",
			transfers: AllTransfers,
			want:      "SRL=A1",
		},
		{
			name:      "unselected column ignored",
			misc:      "_",
			ne:        "B-ORG",
			dp:        "obj",
			srl:       "_",
			mwe:       "_",
			rmisc:     "_",
			transfers: Transfers{TransferDP},
			want:      "DP=obj",
		},
		{
			name:      "ne before rmisc and rmisc wins collisions",
			misc:      "A=1",
			ne:        "B-LOC",
			dp:        "_",
			srl:       "_",
			mwe:       "_",
			rmisc:     "Z=2|NER=I-LOC|A=3",
			transfers: Transfers{TransferRMisc, TransferNE},
			want:      "A=3|NER=I-LOC|Z=2",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := line("1", "w", "w", "X", "_", "_", "0", "root", "_", tt.misc, tt.ne, tt.dp, tt.srl, tt.mwe, tt.rmisc)
			p := Project(mustParse(t, in), tt.transfers)
			if got := p.Misc.String(); got != tt.want {
				t.Errorf("Misc = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestProject_DoesNotMutateRecord(t *testing.T) {
	rec := mustParse(t, line("1", "w", "w", "X", "_", "_", "0", "root", "_", "A=1", "B-LOC", "_", "_", "_", "R=1"))
	_ = Project(rec, AllTransfers)

	if got := rec.Misc.String(); got != "A=1" {
		t.Errorf("record MISC mutated: %q", got)
	}
}

func TestParseTransfers(t *testing.T) {
	ts, err := ParseTransfers("ne", "RMISC", "NE")
	if err != nil {
		t.Fatalf("ParseTransfers() error = %v", err)
	}
	if len(ts) != 2 || !ts.Has(TransferNE) || !ts.Has(TransferRMisc) {
		t.Errorf("unexpected transfers %v", ts)
	}

	_, err = ParseTransfers("LEMMA")
	if err == nil || !strings.Contains(err.Error(), "LEMMA") {
		t.Errorf("expected error naming LEMMA, got %v", err)
	}
}
