package depot

import "github.com/TheBitDrifter/mask"

// MaxComponents is the number of distinct component names one schema can index, one bit
// of mask.Mask each. It follows the mask build tag: 64 by default, 256/512/1024 with
// -tags m256, m512 or m1024.
const MaxComponents = mask.MaxBits

// schema assigns every component name a stable bit so that a component set has exactly
// one mask.Mask signature regardless of declaration order
type schema struct {
	bits map[Component]uint32
}

func newSchema() *schema {
	return &schema{bits: make(map[Component]uint32)}
}

func (s *schema) register(c Component) (uint32, error) {
	if bit, ok := s.bits[c]; ok {
		return bit, nil
	}
	if len(s.bits) >= MaxComponents {
		return 0, ComponentLimitError{Component: c}
	}
	bit := uint32(len(s.bits))
	s.bits[c] = bit
	return bit, nil
}

// signature registers every component and returns the mask of the set
func (s *schema) signature(components ...Component) (mask.Mask, error) {
	var m mask.Mask
	for _, c := range components {
		bit, err := s.register(c)
		if err != nil {
			return mask.Mask{}, err
		}
		m.Mark(bit)
	}
	return m, nil
}

// knownSignature builds a mask from already registered components only. The boolean
// reports whether every component was known.
func (s *schema) knownSignature(components []Component) (mask.Mask, bool) {
	var m mask.Mask
	known := true
	for _, c := range components {
		bit, ok := s.bits[c]
		if !ok {
			known = false
			continue
		}
		m.Mark(bit)
	}
	return m, known
}
