// Package levels holds the ordered level catalog: grid sizes, pair counts
// and time-bonus thresholds for each level of the game.
package levels

import (
	_ "embed"
	"fmt"
	"os"

	"go-pairs/internal/gameerrors"

	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var defaultCatalogYAML []byte

// Definition describes a single level. Definitions are immutable once loaded.
type Definition struct {
	Level            int    `yaml:"level"`
	Name             string `yaml:"name"`
	GridCols         int    `yaml:"grid_cols"`
	GridRows         int    `yaml:"grid_rows"`
	Pairs            int    `yaml:"pairs"`
	TimeBonusSeconds int    `yaml:"time_bonus_seconds"`
}

// Cells returns the number of grid cells the level lays cards out in.
func (d Definition) Cells() int {
	return d.GridCols * d.GridRows
}

// Cards returns the number of cards dealt for the level.
func (d Definition) Cards() int {
	return d.Pairs * 2
}

// Check reports a ConfigError if the grid cannot hold exactly the level's cards.
func (d Definition) Check() error {
	if d.Cells() != d.Cards() {
		return gameerrors.ErrConfigInvalid(fmt.Sprintf(
			"level %d: grid %dx%d holds %d cells, want %d for %d pairs",
			d.Level, d.GridCols, d.GridRows, d.Cells(), d.Cards(), d.Pairs))
	}
	return nil
}

// Catalog is the ordered list of level definitions, indexed by level-1.
type Catalog struct {
	defs []Definition
}

type catalogFile struct {
	Levels []Definition `yaml:"levels"`
}

// Default returns the embedded catalog.
func Default() *Catalog {
	c, err := Parse(defaultCatalogYAML)
	if err != nil {
		// The embedded catalog is covered by tests.
		panic(fmt.Sprintf("levels: embedded catalog is invalid: %v", err))
	}
	return c
}

// Load reads a catalog from path, or returns the embedded one when path is empty.
func Load(path string) (*Catalog, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read level catalog %s: %w", path, err)
	}
	c, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to load level catalog %s: %w", path, err)
	}
	return c, nil
}

// Parse decodes a YAML catalog. Structural problems (no levels, levels out of
// order, non-positive sizes) are rejected; grid/pair mismatches are left for
// Validate, because the deck can still be dealt from the pair count.
func Parse(data []byte) (*Catalog, error) {
	var f catalogFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse level catalog: %w", err)
	}
	if len(f.Levels) == 0 {
		return nil, gameerrors.ErrConfigInvalid("level catalog is empty")
	}
	for i, d := range f.Levels {
		if d.Level != i+1 {
			return nil, gameerrors.ErrConfigInvalid(fmt.Sprintf("entry %d has level %d, want %d", i, d.Level, i+1))
		}
		if d.GridCols <= 0 || d.GridRows <= 0 || d.Pairs <= 0 {
			return nil, gameerrors.ErrConfigInvalid(fmt.Sprintf("level %d: grid and pairs must be positive", d.Level))
		}
		if d.TimeBonusSeconds < 0 {
			return nil, gameerrors.ErrConfigInvalid(fmt.Sprintf("level %d: negative time bonus", d.Level))
		}
	}
	return &Catalog{defs: f.Levels}, nil
}

// New builds a catalog directly from definitions. Used by tests and tools.
func New(defs []Definition) *Catalog {
	out := make([]Definition, len(defs))
	copy(out, defs)
	return &Catalog{defs: out}
}

// Size returns the number of levels.
func (c *Catalog) Size() int {
	return len(c.defs)
}

// DefinitionFor returns the definition of level, or an OutOfRange error.
func (c *Catalog) DefinitionFor(level int) (Definition, error) {
	if level < 1 || level > len(c.defs) {
		return Definition{}, gameerrors.ErrLevelOutOfRange(level, len(c.defs))
	}
	return c.defs[level-1], nil
}

// HasNext reports whether a level follows level.
func (c *Catalog) HasNext(level int) bool {
	return level < len(c.defs)
}

// All returns a copy of every definition in order.
func (c *Catalog) All() []Definition {
	out := make([]Definition, len(c.defs))
	copy(out, c.defs)
	return out
}

// Validate returns one ConfigError per level whose grid does not fit its pairs.
func (c *Catalog) Validate() []error {
	var errs []error
	for _, d := range c.defs {
		if err := d.Check(); err != nil {
			errs = append(errs, err)
		}
	}
	return errs
}
