package identifiers

import (
	"math/rand"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ekaya-inc/ekaya-rekey/pkg/document"
)

func sortedRunes(s string) string {
	r := []rune(s)
	sort.Slice(r, func(i, j int) bool { return r[i] < r[j] })
	return string(r)
}

func TestPermute_PreservesLengthAndCharacters(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	ids := []string{"abc123", "aaaa", "x", "", "ünïcödé-42", "a1b2c3d4e5f6"}

	for _, id := range ids {
		for i := 0; i < 20; i++ {
			got := Permute(id, rng)
			assert.Equal(t, len([]rune(id)), len([]rune(got)), "length of %q", id)
			assert.Equal(t, sortedRunes(id), sortedRunes(got), "characters of %q", id)
		}
	}
}

func TestPermute_ProducesDifferentOrders(t *testing.T) {
	rng := rand.New(rand.NewSource(7))

	seen := map[string]bool{}
	for i := 0; i < 50; i++ {
		seen[Permute("abcdef", rng)] = true
	}
	assert.Greater(t, len(seen), 1)
}

func TestCollector_Collect(t *testing.T) {
	docs := []string{`
entity_id: t1
name: orders
columns:
  - entity_id: c1
    ref: t2
  - ENTITY_ID: c2
`, `
Entity_Id: t2
nested:
  deeper:
    entity_id: t1
`, `
entity_id:
  entity_id: hidden
other: [entity_id]
`, `
entity_id: 42
empty:
  entity_id: ""
`}

	c := NewCollector()
	for _, src := range docs {
		doc, err := document.Decode([]byte(src))
		require.NoError(t, err)
		require.NoError(t, c.Collect(doc))
	}

	assert.Equal(t, []string{"t1", "c1", "c2", "t2"}, c.Identifiers())
}

func TestCollector_Assign(t *testing.T) {
	c := NewCollector()
	doc, err := document.Decode([]byte("entity_id: abc123\nchild:\n  entity_id: zz9\n"))
	require.NoError(t, err)
	require.NoError(t, c.Collect(doc))

	m := c.Assign(rand.New(rand.NewSource(3)))
	require.Equal(t, 2, m.Len())

	pairs := m.Pairs()
	assert.Equal(t, "abc123", pairs[0].Old)
	assert.Equal(t, "zz9", pairs[1].Old)
	for _, p := range pairs {
		assert.Equal(t, sortedRunes(p.Old), sortedRunes(p.New))

		got, ok := m.Lookup(p.Old)
		assert.True(t, ok)
		assert.Equal(t, p.New, got)
	}
}

func TestMap_PairsIsACopy(t *testing.T) {
	m := NewMap([]Pair{{Old: "a", New: "b"}})
	pairs := m.Pairs()
	pairs[0].New = "mutated"

	got, _ := m.Lookup("a")
	assert.Equal(t, "b", got)
}

func TestNewMap_IgnoresDuplicates(t *testing.T) {
	m := NewMap([]Pair{{Old: "a", New: "b"}, {Old: "a", New: "c"}})

	assert.Equal(t, 1, m.Len())
	got, _ := m.Lookup("a")
	assert.Equal(t, "b", got)
}

func TestMap_Nil(t *testing.T) {
	var m *Map
	assert.Equal(t, 0, m.Len())
	_, ok := m.Lookup("a")
	assert.False(t, ok)
	m.Each(func(old, new string) { t.Fatal("unexpected pair") })
}
