package codec

import (
	"strconv"
	"strings"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/matzehuels/cmlayout/pkg/circuit"
	"github.com/matzehuels/cmlayout/pkg/errors"
)

const componentFields = 6

// Deserialize parses a save into a new graph. Wires are appended to both
// endpoints exactly as listed; the result is not bridged.
func Deserialize(text string) (*circuit.Graph, error) {
	sections := strings.Split(text, "?")
	if len(sections) < 3 {
		return nil, errors.New(errors.ErrCodeMalformedRecord,
			"expected component, wire and custom sections, got %d section(s)", len(sections))
	}

	g := circuit.New()
	var handles []circuit.Handle
	if sections[0] != "" {
		for i, rec := range strings.Split(sections[0], ";") {
			c, err := parseComponent(rec)
			if err != nil {
				return nil, errors.Wrap(errors.ErrCodeMalformedRecord, err, "component %d", i+1)
			}
			handles = append(handles, g.Add(c))
		}
	}

	for i, rec := range strings.Split(sections[1], ";") {
		if rec == "" {
			continue
		}
		src, dst, err := parseWire(rec, len(handles))
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeMalformedRecord, err, "wire %d", i+1)
		}
		s, _ := g.Component(handles[src])
		d, _ := g.Component(handles[dst])
		s.Outputs = append(s.Outputs, handles[dst])
		d.Inputs = append(d.Inputs, handles[src])
	}
	return g, nil
}

func parseComponent(rec string) (*circuit.Component, error) {
	fields := strings.Split(rec, ",")
	if len(fields) != componentFields {
		return nil, errors.New(errors.ErrCodeMalformedRecord,
			"expected %d fields, got %d in %q", componentFields, len(fields), rec)
	}

	code, err := parseInt(fields[0])
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeMalformedRecord, err, "kind %q", fields[0])
	}
	if code < 0 || code >= len(circuit.Kinds()) {
		return nil, errors.New(errors.ErrCodeMalformedRecord, "unknown kind %d", code)
	}
	kind := circuit.Kind(code)

	st, err := parseInt(fields[1])
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeMalformedRecord, err, "state %q", fields[1])
	}
	if st < int(circuit.Off) || st > int(circuit.On) {
		return nil, errors.New(errors.ErrCodeMalformedRecord, "unknown state %d", st)
	}
	state := circuit.State(st)

	var xyz [3]float64
	for j := range xyz {
		if xyz[j], err = parseFloat(fields[2+j]); err != nil {
			return nil, errors.Wrap(errors.ErrCodeMalformedRecord, err, "coordinate %q", fields[2+j])
		}
	}

	var tokens []string
	if fields[5] != "" {
		tokens = strings.Split(fields[5], "+")
	}
	aug, err := circuit.DecodeAugments(kind, tokens)
	if err != nil {
		return nil, err
	}

	c := circuit.NewComponent(kind, r3.Vec{X: xyz[0], Y: xyz[1], Z: xyz[2]})
	c.State = state
	c.Augments = aug
	return c, nil
}

// parseWire returns the 0-based endpoints of a 1-based wire record.
func parseWire(rec string, n int) (int, int, error) {
	fields := strings.Split(rec, ",")
	if len(fields) != 2 {
		return 0, 0, errors.New(errors.ErrCodeMalformedRecord, "expected source,target, got %q", rec)
	}
	var idx [2]int
	for j, f := range fields {
		v, err := strconv.Atoi(f)
		if err != nil {
			return 0, 0, errors.Wrap(errors.ErrCodeMalformedRecord, err, "index %q", f)
		}
		if v < 1 || v > n {
			return 0, 0, errors.New(errors.ErrCodeMalformedRecord, "index %d out of range [1, %d]", v, n)
		}
		idx[j] = v - 1
	}
	return idx[0], idx[1], nil
}

func parseInt(s string) (int, error) {
	if s == "" {
		return 0, nil
	}
	return strconv.Atoi(s)
}

func parseFloat(s string) (float64, error) {
	if s == "" {
		return 0, nil
	}
	return strconv.ParseFloat(s, 64)
}
