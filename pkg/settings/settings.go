// Package settings persists user preferences for exports.
//
// Settings are stored as TOML in $XDG_CONFIG_HOME/snapshoot/settings.toml
// (falling back to ~/.config/snapshoot). A missing file yields [Defaults];
// keys absent from the file keep their default values.
package settings

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/matzehuels/snapshoot/pkg/document"
	"github.com/matzehuels/snapshoot/pkg/errors"
	"github.com/matzehuels/snapshoot/pkg/snapshot"
)

// Settings are the persisted export preferences.
type Settings struct {
	ExportPath        string `toml:"export_path"`
	AutoTimestamp     bool   `toml:"auto_timestamp"`
	Format            string `toml:"format"`
	IncludeTransform  bool   `toml:"include_transform"`
	IncludeComponents bool   `toml:"include_components"`
	IncludeMaterials  bool   `toml:"include_materials"`
	IncludeInactive   bool   `toml:"include_inactive"`
	IncludeChildren   bool   `toml:"include_children"`
	MaxDepth          int    `toml:"max_depth"`
	CacheURL          string `toml:"cache_url,omitempty"`
}

// DefaultExportPath is the export directory used when none is configured.
// Relative paths are resolved against the working directory.
const DefaultExportPath = "SnapShoot_Exports"

// Defaults returns the settings used when nothing has been saved.
func Defaults() Settings {
	opts := snapshot.DefaultOptions()
	return Settings{
		ExportPath:        DefaultExportPath,
		AutoTimestamp:     true,
		Format:            document.FormatXML,
		IncludeTransform:  opts.IncludeTransform,
		IncludeComponents: opts.IncludeComponents,
		IncludeMaterials:  opts.IncludeMaterials,
		IncludeInactive:   opts.IncludeInactiveObjects,
		IncludeChildren:   opts.IncludeChildObjects,
		MaxDepth:          opts.MaxDepth,
	}
}

// Options converts the settings to an export policy.
func (s Settings) Options() snapshot.Options {
	return snapshot.Options{
		IncludeTransform:       s.IncludeTransform,
		IncludeComponents:      s.IncludeComponents,
		IncludeMaterials:       s.IncludeMaterials,
		IncludeInactiveObjects: s.IncludeInactive,
		IncludeChildObjects:    s.IncludeChildren,
		MaxDepth:               s.MaxDepth,
	}
}

// Validate checks the export path and format.
func (s Settings) Validate() error {
	if err := errors.ValidatePath(s.ExportPath); err != nil {
		return err
	}
	return errors.ValidateFormat(s.Format, document.Formats...)
}

// field binds a settings key to its accessors.
type field struct {
	get func(*Settings) string
	set func(*Settings, string) error
}

var fields = map[string]field{
	"export_path": {
		get: func(s *Settings) string { return s.ExportPath },
		set: func(s *Settings, v string) error {
			if err := errors.ValidatePath(v); err != nil {
				return err
			}
			s.ExportPath = v
			return nil
		},
	},
	"auto_timestamp":     boolField(func(s *Settings) *bool { return &s.AutoTimestamp }),
	"include_transform":  boolField(func(s *Settings) *bool { return &s.IncludeTransform }),
	"include_components": boolField(func(s *Settings) *bool { return &s.IncludeComponents }),
	"include_materials":  boolField(func(s *Settings) *bool { return &s.IncludeMaterials }),
	"include_inactive":   boolField(func(s *Settings) *bool { return &s.IncludeInactive }),
	"include_children":   boolField(func(s *Settings) *bool { return &s.IncludeChildren }),
	"format": {
		get: func(s *Settings) string { return s.Format },
		set: func(s *Settings, v string) error {
			v = strings.ToLower(v)
			if err := errors.ValidateFormat(v, document.Formats...); err != nil {
				return err
			}
			s.Format = v
			return nil
		},
	},
	"max_depth": {
		get: func(s *Settings) string { return strconv.Itoa(s.MaxDepth) },
		set: func(s *Settings, v string) error {
			n, err := strconv.Atoi(v)
			if err != nil {
				return errors.New(errors.ErrCodeInvalidInput, "max_depth must be an integer, got %q", v)
			}
			s.MaxDepth = n
			return nil
		},
	},
	"cache_url": {
		get: func(s *Settings) string { return s.CacheURL },
		set: func(s *Settings, v string) error {
			s.CacheURL = v
			return nil
		},
	},
}

func boolField(ptr func(*Settings) *bool) field {
	return field{
		get: func(s *Settings) string { return strconv.FormatBool(*ptr(s)) },
		set: func(s *Settings, v string) error {
			b, err := strconv.ParseBool(v)
			if err != nil {
				return errors.New(errors.ErrCodeInvalidInput, "expected true or false, got %q", v)
			}
			*ptr(s) = b
			return nil
		},
	}
}

// Keys returns every settable key in sorted order.
func Keys() []string {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// Get returns the string form of the value stored under key.
func (s *Settings) Get(key string) (string, error) {
	f, ok := fields[key]
	if !ok {
		return "", unknownKey(key)
	}
	return f.get(s), nil
}

// Set parses value and stores it under key.
func (s *Settings) Set(key, value string) error {
	f, ok := fields[key]
	if !ok {
		return unknownKey(key)
	}
	if err := f.set(s, value); err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	return nil
}

func unknownKey(key string) error {
	return errors.New(errors.ErrCodeInvalidInput, "unknown setting %q (valid: %s)", key, strings.Join(Keys(), ", "))
}
