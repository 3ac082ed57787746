// Package io provides JSON import and export for traced path documents.
//
// # Overview
//
// This package defines the interchange format that connects the staged CLI
// commands: trace writes a paths document, refine reads and rewrites it, and
// render turns it into final artifacts. The format is designed for:
//
//   - Splitting a pipeline run across separate invocations without re-tracing
//   - Integration with external tools that produce or consume path data
//   - Round-trip preservation: export, re-import, and refine repeatedly
//
// # JSON Format
//
// A document is a single JSON object:
//
//	{
//	  "width": 400,
//	  "height": 300,
//	  "stroke_width": 2,
//	  "paths": [
//	    [[10, 20], [11, 20], [12, 21]],
//	    [[50, 80], [50, 81]]
//	  ]
//	}
//
// Required fields:
//   - width, height: canvas dimensions in pixels, both positive
//   - paths: one array per path, each an array of [x, y] pairs
//
// Optional:
//   - stroke_width: stroke width in pixels carried through to render
//
// Coordinates are pixel positions in screen orientation (origin top-left,
// y growing downward), exactly as traced. Sinks that need a different
// orientation flip during serialization, never here.
//
// # Import
//
// Use [ImportFile] to read a document from a file path, or [ReadJSON] to
// read from any io.Reader:
//
//	doc, err := io.ImportFile("paths.json")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	paths := doc.Collection()
//
// Both functions validate the decoded document: positive dimensions, at
// least one point per path, finite coordinates. Validation errors name the
// offending path by index.
//
// # Export
//
// Use [New] to build a document from a path collection, then [ExportFile]
// to write it to a file or [WriteJSON] to write to any io.Writer:
//
//	doc := io.New(paths, width, height, 2.0)
//	if err := io.ExportFile(doc, "paths.json"); err != nil {
//	    log.Fatal(err)
//	}
//
// The JSON render sink in [render] emits this same payload, so a rendered
// JSON artifact can be fed straight back into refine.
//
// [render]: github.com/matzehuels/linetrace/pkg/render
package io
