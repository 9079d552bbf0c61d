package circuit

import "slices"

// BridgeAntennas wires every ANTENNA to every other ANTENNA on the same
// channel by appending to its Outputs. Only outputs are touched; run
// [Graph.Bridge] afterwards to mirror the new wires into Inputs. It returns
// the number of references appended and is idempotent.
func (g *Graph) BridgeAntennas() int {
	channels := make(map[int][]Handle)
	var order []int
	for h, c := range g.All() {
		if c.Kind != KindAntenna {
			continue
		}
		ch := antennaChannel(c)
		if _, ok := channels[ch]; !ok {
			order = append(order, ch)
		}
		if !slices.Contains(channels[ch], h) {
			channels[ch] = append(channels[ch], h)
		}
	}

	added := 0
	for _, ch := range order {
		members := channels[ch]
		for _, h := range members {
			c := g.slots[h.slot].c
			for _, other := range members {
				if other == h || slices.Contains(c.Outputs, other) {
					continue
				}
				c.Outputs = append(c.Outputs, other)
				added++
			}
		}
	}
	return added
}

func antennaChannel(c *Component) int {
	switch a := c.Augments.(type) {
	case AntennaAugments:
		return a.Channel
	case nil:
		return 0
	default:
		if v := a.Values(); len(v) > 0 {
			return int(v[0])
		}
		return 0
	}
}
