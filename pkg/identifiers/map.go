// Package identifiers collects entity identifiers across a corpus and assigns
// each one a pseudo-random replacement.
package identifiers

import (
	"math/rand"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/ekaya-inc/ekaya-rekey/pkg/document"
)

// Pair is one old -> new identifier assignment.
type Pair struct {
	Old string
	New string
}

// Map is the identifier assignment for one run. It is built once, before any
// document is rewritten, and never modified afterwards. Iteration follows the
// order in which identifiers were first found.
type Map struct {
	pairs []Pair
	index map[string]int
}

// NewMap builds a Map from explicit pairs. Later duplicates of an old
// identifier are ignored.
func NewMap(pairs []Pair) *Map {
	m := &Map{index: make(map[string]int, len(pairs))}
	for _, p := range pairs {
		if _, ok := m.index[p.Old]; ok {
			continue
		}
		m.index[p.Old] = len(m.pairs)
		m.pairs = append(m.pairs, p)
	}
	return m
}

// Len returns the number of identifiers.
func (m *Map) Len() int {
	if m == nil {
		return 0
	}
	return len(m.pairs)
}

// Lookup returns the replacement for old.
func (m *Map) Lookup(old string) (string, bool) {
	if m == nil {
		return "", false
	}
	i, ok := m.index[old]
	if !ok {
		return "", false
	}
	return m.pairs[i].New, true
}

// Pairs returns a copy of the assignments in iteration order.
func (m *Map) Pairs() []Pair {
	if m == nil {
		return nil
	}
	out := make([]Pair, len(m.pairs))
	copy(out, m.pairs)
	return out
}

// Each calls fn for every assignment in iteration order.
func (m *Map) Each(fn func(old, new string)) {
	if m == nil {
		return
	}
	for _, p := range m.pairs {
		fn(p.Old, p.New)
	}
}

// Collector accumulates distinct identifiers from documents.
type Collector struct {
	seen  map[string]struct{}
	order []string
}

// NewCollector returns an empty Collector.
func NewCollector() *Collector {
	return &Collector{seen: make(map[string]struct{})}
}

// Collect records the string value of every key named entity_id (compared
// case-insensitively) anywhere in doc. Identifier values are not searched for
// nested identifiers. Empty and non-string values are ignored.
func (c *Collector) Collect(doc *yaml.Node) error {
	return document.Walk(doc, func(e *document.Entry) (document.Step, error) {
		if e.Container != document.MappingValue || strings.ToLower(e.KeyString()) != document.EntityIDKey {
			return document.Descend, nil
		}
		if document.IsString(e.Value) && e.Value.Value != "" {
			c.add(e.Value.Value)
		}
		return document.SkipChildren, nil
	})
}

func (c *Collector) add(id string) {
	if _, ok := c.seen[id]; ok {
		return
	}
	c.seen[id] = struct{}{}
	c.order = append(c.order, id)
}

// Identifiers returns the collected identifiers in discovery order.
func (c *Collector) Identifiers() []string {
	out := make([]string, len(c.order))
	copy(out, c.order)
	return out
}

// Assign permutes every collected identifier and returns the resulting Map.
func (c *Collector) Assign(rng *rand.Rand) *Map {
	pairs := make([]Pair, 0, len(c.order))
	for _, id := range c.order {
		pairs = append(pairs, Pair{Old: id, New: Permute(id, rng)})
	}
	return NewMap(pairs)
}

// Permute returns a uniformly random rearrangement of the characters of id.
// The result has the same length and character multiset as id and may equal it.
func Permute(id string, rng *rand.Rand) string {
	runes := []rune(id)
	rng.Shuffle(len(runes), func(i, j int) {
		runes[i], runes[j] = runes[j], runes[i]
	})
	return string(runes)
}
