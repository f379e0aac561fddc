// Package netlist implements the client-side ingestion pipeline for netlist
// JSON files: ingest a selected file, decode it, check its top-level shape and
// project it into preview tables.
//
// The stages are independent functions so callers can run them one at a time:
//
//	text, err := netlist.Ingest(ctx, file)
//	doc, err := netlist.Decode(text)
//	valid, err := netlist.ValidateStructure(doc)
//	preview := netlist.BuildPreview(valid, text)
//
// Every error returned by a stage maps to a fixed banner text via Message.
package netlist
