// Package config decodes a pgdiff TOML configuration file: the default
// comparator options, output format, and DSN template for a recurring
// pair of environments (SPEC_FULL.md §2.2). This repurposes the
// teacher's TOML decoding idiom for a different document shape — our
// schema source is always DDL text or introspection, never TOML.
package config

import (
	"fmt"
	"io"
	"os"

	"github.com/BurntSushi/toml"

	"pgschemadiff/internal/compare"
)

// compareConfig mirrors compare.Options field-for-field as TOML keys.
type compareConfig struct {
	CaseSensitive         bool `toml:"case_sensitive"`
	NormalizeTypes        bool `toml:"normalize_types"`
	IgnoreWhitespace      bool `toml:"ignore_whitespace"`
	IgnoreConstraintNames bool `toml:"ignore_constraint_names"`
	CompareTablespaces    bool `toml:"compare_tablespaces"`
	CompareStorageParams  bool `toml:"compare_storage_params"`
	CompareConstraints    bool `toml:"compare_constraints"`
}

// file is the top-level TOML document shape.
type file struct {
	OutputFormat string        `toml:"output_format"`
	SourceDSN    string        `toml:"source_dsn"`
	TargetDSN    string        `toml:"target_dsn"`
	Compare      compareConfig `toml:"compare"`
}

// Config is the decoded configuration a pgdiff invocation reads its
// defaults from. Values are taken as written; none is validated here.
type Config struct {
	OutputFormat string
	SourceDSN    string
	TargetDSN    string
	Compare      compare.Options
}

// Default returns a Config seeded with compare.DefaultOptions and the
// human output format — the same values pgdiff uses with no config file
// at all.
func Default() Config {
	return Config{
		OutputFormat: "human",
		Compare:      compare.DefaultOptions(),
	}
}

// ParseFile opens path and decodes it as a pgdiff config file.
func ParseFile(path string) (Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: open file %q: %w", path, err)
	}
	defer f.Close()
	return Parse(f)
}

// Parse decodes TOML content from r into a Config, falling back to
// compare.DefaultOptions() for any [compare] table omitted entirely.
func Parse(r io.Reader) (Config, error) {
	var raw file
	raw.Compare = compareConfig(asCompareConfig(compare.DefaultOptions()))
	if _, err := toml.NewDecoder(r).Decode(&raw); err != nil {
		return Config{}, fmt.Errorf("config: decode error: %w", err)
	}

	cfg := Config{
		OutputFormat: raw.OutputFormat,
		SourceDSN:    raw.SourceDSN,
		TargetDSN:    raw.TargetDSN,
		Compare:      raw.Compare.toOptions(),
	}
	if cfg.OutputFormat == "" {
		cfg.OutputFormat = "human"
	}
	return cfg, nil
}

func asCompareConfig(o compare.Options) compareConfig {
	return compareConfig{
		CaseSensitive:         o.CaseSensitive,
		NormalizeTypes:        o.NormalizeTypes,
		IgnoreWhitespace:      o.IgnoreWhitespace,
		IgnoreConstraintNames: o.IgnoreConstraintNames,
		CompareTablespaces:    o.CompareTablespaces,
		CompareStorageParams:  o.CompareStorageParams,
		CompareConstraints:    o.CompareConstraints,
	}
}

func (c compareConfig) toOptions() compare.Options {
	return compare.Options{
		CaseSensitive:         c.CaseSensitive,
		NormalizeTypes:        c.NormalizeTypes,
		IgnoreWhitespace:      c.IgnoreWhitespace,
		IgnoreConstraintNames: c.IgnoreConstraintNames,
		CompareTablespaces:    c.CompareTablespaces,
		CompareStorageParams:  c.CompareStorageParams,
		CompareConstraints:    c.CompareConstraints,
	}
}
