// Package io provides JSON import and export for circuit graphs.
//
// # Overview
//
// The save format is compact but opaque. This package writes the same graph
// as node-link JSON that external tools (graph libraries, notebooks, jq) can
// read directly, and reads it back.
//
// # JSON Format
//
//	{
//	  "nodes": [
//	    {"id": 1, "kind": "BUTTON", "position": [0, 0, 0]},
//	    {"id": 2, "kind": "LED", "state": "ON", "position": [1, 0, 0], "augments": [255, 0, 0, 100, 25, 0]}
//	  ],
//	  "edges": [
//	    {"from": 1, "to": 2}
//	  ]
//	}
//
// Node ids are the 1-based positions used by the save format's wire section.
// state is omitted when OFF and augments are omitted when they equal the
// kind's defaults. Each edge is one entry of the source's Outputs list, so a
// bridged graph lists each wire once.
//
// # Import
//
// [ReadJSON] and [ImportJSON] rebuild the graph through
// [circuit.Graph.MakeConnection], so the result is always bridged. Unknown
// kinds, duplicate ids and edges to unknown ids are rejected with context
// about which node or edge caused the problem.
//
// # Export
//
// [WriteJSON] and [ExportJSON] deduplicate the graph first, like the save
// codec, so ids are unambiguous.
package io
