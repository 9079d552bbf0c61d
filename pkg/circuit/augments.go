package circuit

import (
	"slices"
	"strconv"

	"github.com/matzehuels/cmlayout/pkg/errors"
)

// Augments is the kind-specific parameter payload of a component. Each
// payload shape is its own struct; Values returns the positional numeric
// coding used by the save format, with variants coded by ordinal.
type Augments interface {
	Values() []float64
	augments()
}

// WaveType selects the waveform of a SOUND component.
type WaveType uint8

const (
	WaveSine WaveType = iota
	WaveSquare
	WaveTriangle
	WaveSawtooth
)

// AntennaScope selects whether an antenna broadcasts locally or globally.
type AntennaScope uint8

const (
	ScopeLocal AntennaScope = iota
	ScopeGlobal
)

// Material is the surface material of a TILE. Codes start at 1.
type Material uint8

const (
	MaterialStud Material = iota + 1
	MaterialSmoothPlastic
	MaterialMarble
	MaterialNeon
	MaterialGlassTransparent
	MaterialGlassOpaque
	MaterialGrass
	MaterialWood
	MaterialRock
	MaterialSnow
	MaterialPebble
	MaterialPlastic
	MaterialDiamondPlate
)

// Collision selects whether a TILE is solid.
type Collision uint8

const (
	CollisionSolid Collision = iota
	CollisionCollider
)

// LEDAugments configures an LED's colour and opacities.
type LEDAugments struct {
	R, G, B    int
	OnOpacity  int
	OffOpacity int
	Analog     int
}

// SoundAugments configures a SOUND component.
type SoundAugments struct {
	Frequency float64
	Wave      WaveType
}

// RandomAugments holds the ON probability of a RANDOM component.
type RandomAugments struct {
	Probability float64
}

// TextAugments holds the character code shown by a TEXT component.
type TextAugments struct {
	Char int
}

// TileAugments configures a TILE's colour, material and collision.
type TileAugments struct {
	R, G, B   int
	Material  Material
	Collision Collision
}

// DelayAugments holds a DELAY's tick count.
type DelayAugments struct {
	Ticks int
}

// AntennaAugments holds an ANTENNA's channel and scope.
type AntennaAugments struct {
	Channel int
	Scope   AntennaScope
}

// MixerAugments holds the single parameter of an LED_MIXER.
type MixerAugments struct {
	Blend float64
}

// RawAugments is the payload of kinds without a defined parameter set. Any
// values present are preserved verbatim.
type RawAugments []float64

func (a LEDAugments) Values() []float64 {
	return []float64{float64(a.R), float64(a.G), float64(a.B), float64(a.OnOpacity), float64(a.OffOpacity), float64(a.Analog)}
}

func (a SoundAugments) Values() []float64 { return []float64{a.Frequency, float64(a.Wave)} }
func (a RandomAugments) Values() []float64 { return []float64{a.Probability} }
func (a TextAugments) Values() []float64   { return []float64{float64(a.Char)} }

func (a TileAugments) Values() []float64 {
	return []float64{float64(a.R), float64(a.G), float64(a.B), float64(a.Material), float64(a.Collision)}
}

func (a DelayAugments) Values() []float64   { return []float64{float64(a.Ticks)} }
func (a AntennaAugments) Values() []float64 { return []float64{float64(a.Channel), float64(a.Scope)} }
func (a MixerAugments) Values() []float64   { return []float64{a.Blend} }
func (a RawAugments) Values() []float64     { return slices.Clone([]float64(a)) }

func (LEDAugments) augments()     {}
func (SoundAugments) augments()   {}
func (RandomAugments) augments()  {}
func (TextAugments) augments()    {}
func (TileAugments) augments()    {}
func (DelayAugments) augments()   {}
func (AntennaAugments) augments() {}
func (MixerAugments) augments()   {}
func (RawAugments) augments()     {}

type augmentCodec struct {
	def    func() Augments
	decode func(r *fieldReader) Augments
}

var augmentCodecs = map[Kind]augmentCodec{
	KindLED: {
		def: func() Augments { return LEDAugments{R: 175, G: 175, B: 175, OnOpacity: 100, OffOpacity: 25} },
		decode: func(r *fieldReader) Augments {
			return LEDAugments{
				R: r.integer(175), G: r.integer(175), B: r.integer(175),
				OnOpacity: r.integer(100), OffOpacity: r.integer(25), Analog: r.integer(0),
			}
		},
	},
	KindSound: {
		def: func() Augments { return SoundAugments{Frequency: 1567.98, Wave: WaveSine} },
		decode: func(r *fieldReader) Augments {
			return SoundAugments{Frequency: r.number(1567.98), Wave: WaveType(r.variant(int(WaveSine), 0, int(WaveSawtooth)))}
		},
	},
	KindRandom: {
		def:    func() Augments { return RandomAugments{Probability: 0.5} },
		decode: func(r *fieldReader) Augments { return RandomAugments{Probability: r.number(0.5)} },
	},
	KindText: {
		def:    func() Augments { return TextAugments{Char: 65} },
		decode: func(r *fieldReader) Augments { return TextAugments{Char: r.integer(65)} },
	},
	KindTile: {
		def: func() Augments { return TileAugments{R: 75, G: 75, B: 75, Material: MaterialStud, Collision: CollisionSolid} },
		decode: func(r *fieldReader) Augments {
			return TileAugments{
				R: r.integer(75), G: r.integer(75), B: r.integer(75),
				Material:  Material(r.variant(int(MaterialStud), int(MaterialStud), int(MaterialDiamondPlate))),
				Collision: Collision(r.variant(int(CollisionSolid), 0, int(CollisionCollider))),
			}
		},
	},
	KindDelay: {
		def:    func() Augments { return DelayAugments{Ticks: 20} },
		decode: func(r *fieldReader) Augments { return DelayAugments{Ticks: r.integer(20)} },
	},
	KindAntenna: {
		def: func() Augments { return AntennaAugments{Channel: 0, Scope: ScopeLocal} },
		decode: func(r *fieldReader) Augments {
			return AntennaAugments{Channel: r.integer(0), Scope: AntennaScope(r.variant(int(ScopeLocal), 0, int(ScopeGlobal)))}
		},
	},
	KindLEDMixer: {
		def:    func() Augments { return MixerAugments{} },
		decode: func(r *fieldReader) Augments { return MixerAugments{Blend: r.number(0)} },
	},
}

// DefaultAugments returns a fresh copy of the default payload for kind.
// Kinds without a parameter set get an empty RawAugments.
func DefaultAugments(kind Kind) Augments {
	if c, ok := augmentCodecs[kind]; ok {
		return c.def()
	}
	return RawAugments{}
}

// IsDefaultAugments reports whether a equals the default payload of kind.
// A nil payload counts as the default.
func IsDefaultAugments(kind Kind, a Augments) bool {
	if a == nil {
		return true
	}
	return EqualAugments(a, DefaultAugments(kind))
}

// EqualAugments compares two payloads by their positional coding.
func EqualAugments(a, b Augments) bool {
	var av, bv []float64
	if a != nil {
		av = a.Values()
	}
	if b != nil {
		bv = b.Values()
	}
	return slices.Equal(av, bv)
}

// DecodeAugments builds the payload of kind from its positional tokens.
// Empty tokens and missing trailing tokens take the slot default. Surplus
// tokens, unparsable numbers and out-of-range variants are MALFORMED_RECORD.
func DecodeAugments(kind Kind, tokens []string) (Augments, error) {
	c, ok := augmentCodecs[kind]
	if !ok {
		raw := make(RawAugments, 0, len(tokens))
		for i, tok := range tokens {
			if tok == "" {
				raw = append(raw, 0)
				continue
			}
			v, err := strconv.ParseFloat(tok, 64)
			if err != nil {
				return nil, errors.Wrap(errors.ErrCodeMalformedRecord, err, "augment %d of %s", i+1, kind)
			}
			raw = append(raw, v)
		}
		return raw, nil
	}

	r := &fieldReader{kind: kind, tokens: tokens}
	a := c.decode(r)
	if r.err != nil {
		return nil, r.err
	}
	if r.pos < len(tokens) {
		return nil, errors.New(errors.ErrCodeMalformedRecord, "%s takes %d augments, got %d", kind, r.pos, len(tokens))
	}
	return a, nil
}

// fieldReader consumes augment tokens positionally and records the first error.
type fieldReader struct {
	kind   Kind
	tokens []string
	pos    int
	err    error
}

func (r *fieldReader) next() (string, bool) {
	if r.pos >= len(r.tokens) {
		r.pos++
		return "", false
	}
	tok := r.tokens[r.pos]
	r.pos++
	return tok, tok != "" && r.err == nil
}

func (r *fieldReader) number(def float64) float64 {
	tok, ok := r.next()
	if !ok {
		return def
	}
	v, err := strconv.ParseFloat(tok, 64)
	if err != nil {
		r.err = errors.Wrap(errors.ErrCodeMalformedRecord, err, "augment %d of %s", r.pos, r.kind)
		return def
	}
	return v
}

func (r *fieldReader) integer(def int) int {
	tok, ok := r.next()
	if !ok {
		return def
	}
	v, err := strconv.Atoi(tok)
	if err != nil {
		r.err = errors.Wrap(errors.ErrCodeMalformedRecord, err, "augment %d of %s", r.pos, r.kind)
		return def
	}
	return v
}

func (r *fieldReader) variant(def, lo, hi int) int {
	tok, ok := r.next()
	if !ok {
		return def
	}
	v, err := strconv.Atoi(tok)
	if err != nil {
		r.err = errors.Wrap(errors.ErrCodeMalformedRecord, err, "augment %d of %s", r.pos, r.kind)
		return def
	}
	if v < lo || v > hi {
		r.err = errors.New(errors.ErrCodeMalformedRecord, "augment %d of %s: variant %d out of range [%d, %d]", r.pos, r.kind, v, lo, hi)
		return def
	}
	return v
}
