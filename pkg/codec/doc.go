// Package codec reads and writes the text save format of a circuit graph.
//
// # Format
//
// A save is a single line with three '?'-terminated sections:
//
//	COMPONENT(;COMPONENT)*?WIRE(;WIRE)*??
//
// A COMPONENT is six comma-separated fields, kind,state,x,y,z,augments.
// The kind is its numeric code; the augments are '+'-joined numbers in the
// kind's positional order, left empty when they equal the kind's defaults.
// A WIRE is a 1-based source,target pair indexing the component section.
// The third section is reserved for custom component definitions and is
// ignored when reading.
//
// # Writing
//
// [Serialize] deduplicates the graph before writing it: this mutates the
// graph, and it is required so that wire indices are unambiguous. With
// [Options.Compact] zero-valued state and coordinate fields are written as
// empty strings. With [Options.OptimizeWires] a wire that appears in both
// endpoints' adjacency lists is written once.
//
// # Reading
//
// [Deserialize] rebuilds the adjacency exactly as written. It does not
// bridge: a save holding only one side of a wire yields a graph with only
// that side until [circuit.Graph.Bridge] runs. Any malformed record fails
// the whole call with a MALFORMED_RECORD error and no graph.
package codec
