package split

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/samber/lo"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/structpb"
)

// ErrBadManifest indicates a manifest file that does not have the expected shape.
var ErrBadManifest = errors.New("split: malformed manifest")

// ManifestName returns the manifest file name for a split called name.
func ManifestName(name string) string {
	return name + ".manifest.pb"
}

// Manifest records how a split was made so it can be reproduced or audited.
type Manifest struct {
	Seed       int64
	Test       float64
	Dev        float64
	Partitions []PartitionIDs
}

// PartitionIDs lists the document ids assigned to each set of a partition.
type PartitionIDs struct {
	Fold  int
	Train []string
	Dev   []string
	Test  []string
}

// NewManifest summarises parts.
func NewManifest(opts Options, parts []Partition) Manifest {
	return Manifest{
		Seed: opts.Seed,
		Test: opts.Test,
		Dev:  opts.Dev,
		Partitions: lo.Map(parts, func(p Partition, _ int) PartitionIDs {
			return PartitionIDs{Fold: p.Fold, Train: IDs(p.Train), Dev: IDs(p.Dev), Test: IDs(p.Test)}
		}),
	}
}

// Struct converts m to a protobuf Struct. The seed is stored as a string
// because Struct numbers are doubles.
func (m Manifest) Struct() (*structpb.Struct, error) {
	parts := lo.Map(m.Partitions, func(p PartitionIDs, _ int) any {
		return map[string]any{
			"fold":  p.Fold,
			"train": lo.ToAnySlice(p.Train),
			"dev":   lo.ToAnySlice(p.Dev),
			"test":  lo.ToAnySlice(p.Test),
		}
	})

	s, err := structpb.NewStruct(map[string]any{
		"seed":       strconv.FormatInt(m.Seed, 10),
		"test":       m.Test,
		"dev":        m.Dev,
		"partitions": parts,
	})
	if err != nil {
		return nil, fmt.Errorf("building manifest: %w", err)
	}
	return s, nil
}

// WriteManifest writes m to path in protobuf wire format.
func WriteManifest(path string, m Manifest) error {
	s, err := m.Struct()
	if err != nil {
		return err
	}

	data, err := proto.Marshal(s)
	if err != nil {
		return fmt.Errorf("encoding manifest: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing manifest: %w", err)
	}
	return nil
}

// ReadManifest loads a manifest written by WriteManifest.
func ReadManifest(path string) (Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Manifest{}, fmt.Errorf("reading manifest: %w", err)
	}

	var s structpb.Struct
	if err := proto.Unmarshal(data, &s); err != nil {
		return Manifest{}, fmt.Errorf("parsing protobuf: %w", err)
	}
	return manifestFromStruct(&s)
}

func manifestFromStruct(s *structpb.Struct) (Manifest, error) {
	fields := s.GetFields()

	seed, err := strconv.ParseInt(fields["seed"].GetStringValue(), 10, 64)
	if err != nil {
		return Manifest{}, fmt.Errorf("%w: seed: %w", ErrBadManifest, err)
	}

	m := Manifest{
		Seed: seed,
		Test: fields["test"].GetNumberValue(),
		Dev:  fields["dev"].GetNumberValue(),
	}

	list := fields["partitions"].GetListValue()
	if list == nil {
		return Manifest{}, fmt.Errorf("%w: missing partitions", ErrBadManifest)
	}
	for i, v := range list.GetValues() {
		p := v.GetStructValue()
		if p == nil {
			return Manifest{}, fmt.Errorf("%w: partition %d is not an object", ErrBadManifest, i)
		}
		pf := p.GetFields()
		m.Partitions = append(m.Partitions, PartitionIDs{
			Fold:  int(pf["fold"].GetNumberValue()),
			Train: stringList(pf["train"]),
			Dev:   stringList(pf["dev"]),
			Test:  stringList(pf["test"]),
		})
	}
	return m, nil
}

func stringList(v *structpb.Value) []string {
	return lo.Map(v.GetListValue().GetValues(), func(e *structpb.Value, _ int) string {
		return e.GetStringValue()
	})
}
