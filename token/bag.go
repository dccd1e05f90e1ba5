package token

import "strings"

const (
	bagSeparator   = "|"
	valueSeparator = "="
	empty          = "_"
)

// Pair is one entry of a Bag. Entries that carried no "=" in the source
// keep that shape when the bag is rendered again.
type Pair struct {
	Key   string
	Value string
	bare  bool
}

// Bag is an ordered key/value attribute map (the MISC column).
// Insertion order is preserved; overwriting a key keeps its position.
type Bag struct {
	pairs []Pair
}

// ParseBag decodes a "k=v|k=v" column. "_" and "" decode to an empty bag.
func ParseBag(s string) Bag {
	if s == "" || s == empty {
		return Bag{}
	}

	parts := strings.Split(s, bagSeparator)
	b := Bag{pairs: make([]Pair, 0, len(parts))}
	for _, part := range parts {
		key, value, ok := strings.Cut(part, valueSeparator)
		if !ok {
			b.set(Pair{Key: part, bare: true})
			continue
		}
		b.set(Pair{Key: key, Value: value})
	}
	return b
}

// Len returns the number of entries.
func (b Bag) Len() int { return len(b.pairs) }

// Pairs returns a copy of the entries in order.
func (b Bag) Pairs() []Pair {
	out := make([]Pair, len(b.pairs))
	copy(out, b.pairs)
	return out
}

// Get returns the value stored under key.
func (b Bag) Get(key string) (string, bool) {
	for _, p := range b.pairs {
		if p.Key == key {
			return p.Value, true
		}
	}
	return "", false
}

// Clone returns an independent copy.
func (b Bag) Clone() Bag {
	if len(b.pairs) == 0 {
		return Bag{}
	}
	return Bag{pairs: b.Pairs()}
}

// Set stores value under key, overwriting in place when key exists.
func (b *Bag) Set(key, value string) {
	b.set(Pair{Key: key, Value: value})
}

// Merge copies every entry of other into b, in other's order.
// Colliding keys take other's value.
func (b *Bag) Merge(other Bag) {
	for _, p := range other.pairs {
		b.set(p)
	}
}

func (b *Bag) set(p Pair) {
	for i := range b.pairs {
		if b.pairs[i].Key == p.Key {
			b.pairs[i] = p
			return
		}
	}
	b.pairs = append(b.pairs, p)
}

// String renders the bag as "k=v|k=v", or "_" when empty.
func (b Bag) String() string {
	if len(b.pairs) == 0 {
		return empty
	}

	var sb strings.Builder
	for i, p := range b.pairs {
		if i > 0 {
			sb.WriteString(bagSeparator)
		}
		sb.WriteString(p.Key)
		if !p.bare {
			sb.WriteString(valueSeparator)
			sb.WriteString(p.Value)
		}
	}
	return sb.String()
}
