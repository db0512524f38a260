package viola

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"math"
)

// cascadeMagic identifies a packed cascade blob. The format is our own
// and deliberately not compatible with any existing cascade file
// format.
var cascadeMagic = [4]byte{'V', 'J', 'C', '1'}

// packedClassifier is the fixed-width wire form of a weak classifier.
type packedClassifier struct {
	Kind      int32
	X         int32
	Y         int32
	Width     int32
	Height    int32
	Threshold float64
	Polarity  int32
}

// Pack serializes the cascade into a little-endian binary blob:
// a 4-byte magic header, the stage count, then per stage its vote
// threshold, classifier count and fixed-width classifier records.
func (c *Cascade) Pack() []byte {
	var buf bytes.Buffer
	buf.Write(cascadeMagic[:])
	binary.Write(&buf, binary.LittleEndian, uint32(len(c.stages)))

	for _, st := range c.stages {
		binary.Write(&buf, binary.LittleEndian, math.Float64bits(st.Threshold))
		binary.Write(&buf, binary.LittleEndian, uint32(len(st.Classifiers)))
		for _, wc := range st.Classifiers {
			binary.Write(&buf, binary.LittleEndian, packedClassifier{
				Kind:      int32(wc.Feature.Kind),
				X:         int32(wc.Feature.X),
				Y:         int32(wc.Feature.Y),
				Width:     int32(wc.Feature.Width),
				Height:    int32(wc.Feature.Height),
				Threshold: wc.Threshold,
				Polarity:  int32(wc.Polarity),
			})
		}
	}
	return buf.Bytes()
}

// UnpackCascade parses a blob produced by Pack back into a cascade.
func UnpackCascade(packet []byte) (*Cascade, error) {
	r := bytes.NewReader(packet)

	var magic [4]byte
	if _, err := r.Read(magic[:]); err != nil {
		return nil, fmt.Errorf("viola: unpack: %w", err)
	}
	if magic != cascadeMagic {
		return nil, fmt.Errorf("viola: unpack: not a packed cascade")
	}

	var numStages uint32
	if err := binary.Read(r, binary.LittleEndian, &numStages); err != nil {
		return nil, fmt.Errorf("viola: unpack: %w", err)
	}

	stages := make([]Stage, 0, numStages)
	for s := uint32(0); s < numStages; s++ {
		var thresholdBits uint64
		if err := binary.Read(r, binary.LittleEndian, &thresholdBits); err != nil {
			return nil, fmt.Errorf("viola: unpack stage %d: %w", s, err)
		}
		var numClassifiers uint32
		if err := binary.Read(r, binary.LittleEndian, &numClassifiers); err != nil {
			return nil, fmt.Errorf("viola: unpack stage %d: %w", s, err)
		}

		classifiers := make([]WeakClassifier, 0, numClassifiers)
		for i := uint32(0); i < numClassifiers; i++ {
			var pc packedClassifier
			if err := binary.Read(r, binary.LittleEndian, &pc); err != nil {
				return nil, fmt.Errorf("viola: unpack stage %d classifier %d: %w", s, i, err)
			}
			classifiers = append(classifiers, WeakClassifier{
				Feature: Feature{
					Kind:   FeatureKind(pc.Kind),
					X:      int(pc.X),
					Y:      int(pc.Y),
					Width:  int(pc.Width),
					Height: int(pc.Height),
				},
				Threshold: pc.Threshold,
				Polarity:  int(pc.Polarity),
			})
		}
		stages = append(stages, Stage{
			Classifiers: classifiers,
			Threshold:   math.Float64frombits(thresholdBits),
		})
	}
	return NewCascade(stages)
}
