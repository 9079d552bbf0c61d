package codec

import (
	"math"
	"strconv"
	"strings"

	"github.com/RoaringBitmap/roaring/roaring64"

	"github.com/matzehuels/cmlayout/pkg/circuit"
	"github.com/matzehuels/cmlayout/pkg/errors"
)

// Serialize writes g in the save format.
//
// g is deduplicated first, so Serialize modifies it. A component whose
// adjacency references a component g no longer owns fails with
// NOT_IN_GRAPH.
func Serialize(g *circuit.Graph, opts Options) (string, error) {
	g.Deduplicate()
	index := g.IndexMap()

	w := wireWriter{opts: opts}
	if opts.OptimizeWires {
		w.seen = roaring64.New()
	}

	var comps strings.Builder
	i := 0
	for h, c := range g.All() {
		if i > 0 {
			comps.WriteByte(';')
		}
		writeComponent(&comps, c, opts)

		for _, in := range c.Inputs {
			src, ok := index[in]
			if !ok {
				return "", errors.New(errors.ErrCodeNotInGraph, "component %d (%s): input %s not in graph", i+1, h, in)
			}
			w.write(src, i)
		}
		for _, out := range c.Outputs {
			dst, ok := index[out]
			if !ok {
				return "", errors.New(errors.ErrCodeNotInGraph, "component %d (%s): output %s not in graph", i+1, h, out)
			}
			w.write(i, dst)
		}
		i++
	}

	var sb strings.Builder
	sb.Grow(comps.Len() + w.buf.Len() + 3)
	sb.WriteString(comps.String())
	sb.WriteByte('?')
	sb.WriteString(w.buf.String())
	sb.WriteString("??")
	return sb.String(), nil
}

type wireWriter struct {
	opts Options
	seen *roaring64.Bitmap
	buf  strings.Builder
}

// write emits the 0-based pair src->dst as a 1-based wire record.
func (w *wireWriter) write(src, dst int) {
	if w.seen != nil && !w.seen.CheckedAdd(WireKey(src, dst)) {
		return
	}
	if w.buf.Len() > 0 {
		w.buf.WriteByte(';')
	}
	w.buf.WriteString(strconv.Itoa(src + 1))
	w.buf.WriteByte(',')
	w.buf.WriteString(strconv.Itoa(dst + 1))
}

// WireKey packs a 0-based source,target pair into the 64-bit key used to
// deduplicate wires: (target+1)<<32 | (source+1).
func WireKey(src, dst int) uint64 {
	return uint64(dst+1)<<32 | uint64(src+1)
}

func writeComponent(sb *strings.Builder, c *circuit.Component, opts Options) {
	sb.WriteString(strconv.Itoa(int(c.Kind)))
	sb.WriteByte(',')
	writeNumber(sb, float64(c.State), opts.Compact)
	for _, v := range []float64{c.Position.X, c.Position.Y, c.Position.Z} {
		sb.WriteByte(',')
		writeNumber(sb, RoundCoordinate(v, opts.Rounding), opts.Compact)
	}
	sb.WriteByte(',')
	if circuit.IsDefaultAugments(c.Kind, c.Augments) {
		return
	}
	for j, v := range c.Augments.Values() {
		if j > 0 {
			sb.WriteByte('+')
		}
		sb.WriteString(formatNumber(v))
	}
}

func writeNumber(sb *strings.Builder, v float64, compact bool) {
	if v == 0 {
		if !compact {
			sb.WriteByte('0')
		}
		return
	}
	sb.WriteString(formatNumber(v))
}

// formatNumber writes integral values without a fractional part and
// everything else as its shortest round-tripping decimal.
func formatNumber(v float64) string {
	if v == 0 {
		return "0"
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// RoundCoordinate applies the rounding policy to one coordinate. Integral
// values are returned unchanged.
func RoundCoordinate(v float64, rounding int) float64 {
	switch {
	case math.Trunc(v) == v:
		return v
	case rounding == 1:
		return math.RoundToEven(v)
	case rounding > 1:
		n := float64(rounding)
		return math.RoundToEven(v*n) / n
	default:
		return v
	}
}
