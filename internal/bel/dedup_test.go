package bel

import (
	"testing"

	"reactome2bel/internal/reactome"

	"github.com/stretchr/testify/assert"
)

func TestDedupRefs(t *testing.T) {
	in := []reactome.Ref{{ID: "1", DisplayName: "first"}, {ID: "2"}, {ID: "1", DisplayName: "second"}, {ID: "3"}}

	got := DedupRefs(in)
	assert.Equal(t, []reactome.Ref{{ID: "1", DisplayName: "first"}, {ID: "2"}, {ID: "3"}}, got)
	assert.Equal(t, got, DedupRefs(got), "dedup must be idempotent")
	assert.Nil(t, DedupRefs(nil))
}

func TestDedupStatements(t *testing.T) {
	in := []string{"b", "a", "b", "c", "a"}

	got := DedupStatements(in)
	assert.Equal(t, []string{"b", "a", "c"}, got)
	assert.Equal(t, got, DedupStatements(got))
	assert.Empty(t, DedupStatements(nil))
}
