package catalog

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
)

//go:embed exercises.toml
var defaultExercisesToml []byte

var (
	ErrDuplicateExercise = errors.New("duplicate exercise id")
	ErrNoInputs          = errors.New("exercise has no inputs")
)

// Catalog is the read-only table of exercise definitions. It is built once and
// handed to whoever needs it; lookups return copies.
type Catalog struct {
	byID   map[int]Exercise
	byName map[string]int
	ids    []int
}

func New(defs []Exercise) (*Catalog, error) {
	c := &Catalog{
		byID:   make(map[int]Exercise, len(defs)),
		byName: make(map[string]int, len(defs)),
		ids:    make([]int, 0, len(defs)),
	}
	for _, def := range defs {
		if _, ok := c.byID[def.ID]; ok {
			return nil, fmt.Errorf("%w: %d", ErrDuplicateExercise, def.ID)
		}
		if len(def.Inputs) == 0 {
			return nil, fmt.Errorf("%w: %d", ErrNoInputs, def.ID)
		}
		c.byID[def.ID] = def.clone()
		c.ids = append(c.ids, def.ID)
		for _, name := range append([]string{def.Name}, def.Aliases...) {
			if key := nameKey(name); key != "" {
				if _, taken := c.byName[key]; !taken {
					c.byName[key] = def.ID
				}
			}
		}
	}
	sort.Ints(c.ids)
	return c, nil
}

type catalogFile struct {
	Exercises []Exercise `toml:"exercise"`
}

// Load reads exercise definitions from a TOML document with one
// [[exercise]] table per definition.
func Load(r io.Reader) (*Catalog, error) {
	var file catalogFile
	if _, err := toml.NewDecoder(r).Decode(&file); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	return New(file.Exercises)
}

// Default returns the catalog bundled with the binary.
func Default() (*Catalog, error) {
	return Load(bytes.NewReader(defaultExercisesToml))
}

func (c *Catalog) Get(id int) (Exercise, bool) {
	e, ok := c.byID[id]
	if !ok {
		return Exercise{}, false
	}
	return e.clone(), true
}

// Lookup finds a definition by its name or one of its aliases, ignoring case
// and surrounding spaces.
func (c *Catalog) Lookup(name string) (Exercise, bool) {
	id, ok := c.byName[nameKey(name)]
	if !ok {
		return Exercise{}, false
	}
	return c.Get(id)
}

func nameKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// All returns every definition ordered by id.
func (c *Catalog) All() []Exercise {
	all := make([]Exercise, 0, len(c.ids))
	for _, id := range c.ids {
		all = append(all, c.byID[id].clone())
	}
	return all
}

func (c *Catalog) Len() int {
	return len(c.ids)
}
