// Package pkg provides the libraries behind snapshoot, a hierarchy
// snapshot exporter for live scene graphs.
//
// # Overview
//
// The pkg directory is organized into four areas:
//
//  1. [scene] - The read-only host graph model and scene dump loader
//  2. [snapshot] - The export engine (resolver, traversal, encoder, assembler)
//  3. [document] - The ordered element tree and its XML, JSON and DOT forms
//  4. [pipeline] - Orchestration (load → build → render → write) with
//     [cache], [export], [settings], [metrics] and [observability] support
//
// # Architecture
//
// The typical data flow through snapshoot:
//
//	Scene dump (.yaml / .json)
//	         ↓
//	    [scene] package (MemoryRegistry of nodes and partitions)
//	         ↓
//	    [snapshot] package (Engine.Build for a Selection)
//	         ↓
//	    [document] package (Hierarchy element tree)
//	         ↓
//	    XML/JSON/DOT/SVG output via [export]
//
// # Quick Start
//
// Export the active scene graph of a dump as XML:
//
//	import (
//	    "os"
//
//	    "github.com/matzehuels/snapshoot/pkg/document"
//	    "github.com/matzehuels/snapshoot/pkg/scene"
//	    "github.com/matzehuels/snapshoot/pkg/snapshot"
//	)
//
//	reg, _ := scene.LoadFile("dump.yaml")
//	engine := snapshot.NewEngine(reg, nil)
//	doc, ok, err := engine.Build(snapshot.AllScenes(), snapshot.DefaultOptions())
//	if err == nil && ok {
//	    document.WriteXML(os.Stdout, doc)
//	}
//
// For file output with digest caching, use [pipeline.Runner].
package pkg
