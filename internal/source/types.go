// Package source builds dbt source manifests, either from static
// declarations or by introspecting a live database.
package source

import "fmt"

// manifestVersion is the dbt sources schema version literal.
const manifestVersion = 2

// Freshness periods accepted by dbt.
const (
	PeriodHour = "hour"
	PeriodDay  = "day"
)

// FreshnessRule is a single staleness threshold.
type FreshnessRule struct {
	Count  int    `yaml:"count"`
	Period string `yaml:"period"`
}

// Freshness holds the warn/error staleness thresholds for a source table.
type Freshness struct {
	WarnAfter  FreshnessRule `yaml:"warn_after"`
	ErrorAfter FreshnessRule `yaml:"error_after"`
}

// DefaultFreshness returns the policy applied when a table declares none:
// warn after 24 hours, error after 48.
func DefaultFreshness() *Freshness {
	return &Freshness{
		WarnAfter:  FreshnessRule{Count: 24, Period: PeriodHour},
		ErrorAfter: FreshnessRule{Count: 48, Period: PeriodHour},
	}
}

// Validate checks the freshness rule periods against the closed enum.
func (f *Freshness) Validate() error {
	for _, rule := range []FreshnessRule{f.WarnAfter, f.ErrorAfter} {
		if rule.Period != PeriodHour && rule.Period != PeriodDay {
			return fmt.Errorf("invalid freshness period %q (must be %q or %q)", rule.Period, PeriodHour, PeriodDay)
		}
	}
	return nil
}

// Column is a single column entry in a source table.
type Column struct {
	Name        string   `yaml:"name"`
	Description string   `yaml:"description,omitempty"`
	Tests       []string `yaml:"tests,omitempty"`
}

// Table is a single table entry in a source.
// Field order fixes the emitted key order.
type Table struct {
	Name          string     `yaml:"name"`
	Description   string     `yaml:"description,omitempty"`
	Columns       []Column   `yaml:"columns,omitempty"`
	Freshness     *Freshness `yaml:"freshness"`
	LoadedAtField string     `yaml:"loaded_at_field,omitempty"`
}

// Source is a logical grouping of raw tables, typically one schema.
type Source struct {
	Name        string  `yaml:"name"`
	Description string  `yaml:"description,omitempty"`
	Database    string  `yaml:"database,omitempty"`
	Schema      string  `yaml:"schema"`
	Tables      []Table `yaml:"tables"`
}

// Manifest is the full source manifest document. Source and table order is
// preserved from the input; nothing is sorted.
type Manifest struct {
	Version int      `yaml:"version"`
	Sources []Source `yaml:"sources"`
}

// NewManifest wraps sources in a manifest with the current schema version.
func NewManifest(sources []Source) *Manifest {
	return &Manifest{Version: manifestVersion, Sources: sources}
}

// Normalize fills in defaults the manifest invariants require: every table
// carries a freshness policy, even when the declaration omitted one.
func (m *Manifest) Normalize() {
	for si := range m.Sources {
		for ti := range m.Sources[si].Tables {
			if m.Sources[si].Tables[ti].Freshness == nil {
				m.Sources[si].Tables[ti].Freshness = DefaultFreshness()
			}
		}
	}
}
