// Package pipeline runs a complete export: load a scene dump, build the
// hierarchy document, render it and write it to the export directory.
//
// The CLI and tests share this package so that caching, naming and logging
// behave the same everywhere.
//
// # Stages
//
//  1. Load: read the scene dump into a [scene.MemoryRegistry]
//  2. Build: run the [snapshot.Engine] for the requested selection
//  3. Render: serialize the document as xml, json, dot or svg
//  4. Write: place the file in the export directory, unless the digest of
//     the document matches the last export and that file still exists
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	defer runner.Close()
//
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    Source:    "dump.yaml",
//	    Selection: snapshot.SceneNamed("Main"),
//	    Format:    document.FormatXML,
//	    Snapshot:  snapshot.DefaultOptions(),
//	    OutDir:    "SnapShoot_Exports",
//	})
package pipeline

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/snapshoot/pkg/cache"
	"github.com/matzehuels/snapshoot/pkg/document"
	"github.com/matzehuels/snapshoot/pkg/errors"
	"github.com/matzehuels/snapshoot/pkg/scene"
	"github.com/matzehuels/snapshoot/pkg/settings"
	"github.com/matzehuels/snapshoot/pkg/snapshot"
)

// DefaultFormat is the output format used when none is given.
const DefaultFormat = document.FormatXML

// Options configures one export.
type Options struct {
	// Source is the scene dump path. It also identifies the export in the
	// digest cache.
	Source string

	// Registry, when set, is exported instead of loading Source.
	Registry scene.Registry

	Selection snapshot.Selection
	Format    string
	Snapshot  snapshot.Options

	// Detailed adds layer, tag and component types to dot and svg labels.
	Detailed bool

	OutDir        string
	AutoTimestamp bool

	// Stdout skips the writer and the digest cache; the rendered bytes are
	// only returned in Result.Data.
	Stdout bool

	// Refresh writes the file even when the digest is unchanged.
	Refresh bool

	Logger *log.Logger `json:"-"`

	validated bool
}

// FromSettings returns options for source initialized from persisted
// settings.
func FromSettings(source string, s settings.Settings) Options {
	return Options{
		Source:        source,
		Format:        s.Format,
		Snapshot:      s.Options(),
		OutDir:        s.ExportPath,
		AutoTimestamp: s.AutoTimestamp,
	}
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Document is the built hierarchy document.
	Document *document.Document

	// Data is the rendered document in the requested format.
	Data []byte

	// Path is the written file, or the previous file when Unchanged.
	// Empty when Stdout is set.
	Path string

	// Digest identifies the document content, ignoring the export time.
	Digest string

	// Unchanged reports that the document matched the last export and
	// no file was written.
	Unchanged bool

	// Scene is the partition name used for the file name. Empty for an
	// all-scenes export.
	Scene string

	// Walk contains the traversal counters.
	Walk snapshot.WalkStats

	// Stats contains timing information.
	Stats Stats
}

// Stats contains pipeline execution timings.
type Stats struct {
	LoadTime   time.Duration
	BuildTime  time.Duration
	RenderTime time.Duration
	WriteTime  time.Duration
}

// ValidateAndSetDefaults checks required fields and applies defaults.
// Calling it more than once has no further effect.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if o.Source == "" && o.Registry == nil {
		return errors.New(errors.ErrCodeInvalidInput, "scene dump path is required")
	}
	if o.Format == "" {
		o.Format = DefaultFormat
	}
	if err := errors.ValidateFormat(o.Format, document.Formats...); err != nil {
		return err
	}
	if !o.Stdout {
		if o.OutDir == "" {
			o.OutDir = settings.DefaultExportPath
		}
		if err := errors.ValidatePath(o.OutDir); err != nil {
			return err
		}
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	o.validated = true
	return nil
}

// DigestKeyOpts returns the cache key options for the export.
func (o *Options) DigestKeyOpts() cache.DigestKeyOpts {
	return cache.DigestKeyOpts{
		Format:            o.Format,
		IncludeTransform:  o.Snapshot.IncludeTransform,
		IncludeComponents: o.Snapshot.IncludeComponents,
		IncludeMaterials:  o.Snapshot.IncludeMaterials,
		IncludeInactive:   o.Snapshot.IncludeInactiveObjects,
		IncludeChildren:   o.Snapshot.IncludeChildObjects,
		MaxDepth:          o.Snapshot.MaxDepth,
	}
}
