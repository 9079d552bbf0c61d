package circuit

import (
	"strconv"
	"strings"
)

// Kind identifies a component's logical role. The numeric values are part of
// the save format and must never be renumbered.
type Kind uint8

const (
	KindNOR Kind = iota
	KindAND
	KindOR
	KindXOR
	KindButton
	KindFlipFlop
	KindLED
	KindSound
	KindConductor
	KindCustomIO
	KindNAND
	KindXNOR
	KindRandom
	KindText
	KindTile
	KindNode
	KindDelay
	KindAntenna
	KindImprovedConductor
	KindLEDMixer

	kindCount
)

var kindNames = [kindCount]string{
	KindNOR:               "NOR",
	KindAND:               "AND",
	KindOR:                "OR",
	KindXOR:               "XOR",
	KindButton:            "BUTTON",
	KindFlipFlop:          "FLIPFLOP",
	KindLED:               "LED",
	KindSound:             "SOUND",
	KindConductor:         "CONDUCTOR",
	KindCustomIO:          "CUSTOM_IO",
	KindNAND:              "NAND",
	KindXNOR:              "XNOR",
	KindRandom:            "RANDOM",
	KindText:              "TEXT",
	KindTile:              "TILE",
	KindNode:              "NODE",
	KindDelay:             "DELAY",
	KindAntenna:           "ANTENNA",
	KindImprovedConductor: "IMPROVED_CONDUCTOR",
	KindLEDMixer:          "LED_MIXER",
}

// Valid reports whether k is one of the defined kinds.
func (k Kind) Valid() bool { return k < kindCount }

// String returns the upper-case kind name, or "Kind(n)" for unknown values.
func (k Kind) String() string {
	if !k.Valid() {
		return "Kind(" + strconv.Itoa(int(k)) + ")"
	}
	return kindNames[k]
}

// Kinds returns every defined kind in code order.
func Kinds() []Kind {
	kinds := make([]Kind, kindCount)
	for i := range kinds {
		kinds[i] = Kind(i)
	}
	return kinds
}

// ParseKind accepts a kind name (case-insensitive, with or without a "GATE_"
// prefix) or its numeric code.
func ParseKind(s string) (Kind, bool) {
	if n, err := strconv.Atoi(s); err == nil {
		return Kind(n), n >= 0 && n < int(kindCount)
	}
	name := strings.TrimPrefix(strings.ToUpper(strings.TrimSpace(s)), "GATE_")
	for i, kn := range kindNames {
		if kn == name {
			return Kind(i), true
		}
	}
	return 0, false
}

// State is a component's binary logic state.
type State uint8

const (
	Off State = iota
	On
)

// Valid reports whether s is Off or On.
func (s State) Valid() bool { return s <= On }

func (s State) String() string {
	switch s {
	case Off:
		return "OFF"
	case On:
		return "ON"
	default:
		return "State(" + strconv.Itoa(int(s)) + ")"
	}
}
