package bel

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestAssembler_Assemble(t *testing.T) {
	a := NewAssembler(nil)

	tests := []struct {
		name      string
		catalysts []Result
		inputs    []Result
		outputs   []Result
		want      []string
	}{
		{
			name:      "Single catalyst",
			catalysts: []Result{leaf("p(HGNC:X)")},
			inputs:    []Result{leaf("a(CHEBIID:1)")},
			outputs:   []Result{leaf("a(CHEBIID:2)")},
			want:      []string{"cat(p(HGNC:X)) => rxn(reactants(a(CHEBIID:1)), products(a(CHEBIID:2)))"},
		},
		{
			name:    "No catalyst falls back to reaction",
			inputs:  []Result{leaf("a(CHEBIID:1)"), leaf("a(CHEBIID:3)")},
			outputs: []Result{leaf("a(CHEBIID:2)")},
			want:    []string{"rxn(reactants(a(CHEBIID:1), a(CHEBIID:3)), products(a(CHEBIID:2)))"},
		},
		{
			name:    "Outputs only",
			outputs: []Result{leaf("a(CHEBIID:2)")},
			want:    []string{"rxn(reactants(), products(a(CHEBIID:2)))"},
		},
		{
			name: "Child statements follow in role order",
			catalysts: []Result{
				{{Text: "complex(p(HGNC:A), p(HGNC:B))", Children: []string{"cat-child-1", "cat-child-2"}}},
				leaf("p(HGNC:C)"),
			},
			inputs:  []Result{{{Text: `a("in")`, Children: []string{"in-child"}}}},
			outputs: []Result{{{Text: `a("out")`, Children: []string{"out-child"}}}},
			want: []string{
				`cat(complex(p(HGNC:A), p(HGNC:B))) => rxn(reactants(a("in")), products(a("out")))`,
				`cat(p(HGNC:C)) => rxn(reactants(a("in")), products(a("out")))`,
				"cat-child-1",
				"cat-child-2",
				"in-child",
				"out-child",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := a.Assemble(tt.catalysts, tt.inputs, tt.outputs)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Assemble() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestAssembler_EmptyParticipantsAreLoggedAndSkipped(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	a := NewAssembler(zap.New(core))

	got := a.Assemble(
		[]Result{nil},
		[]Result{leaf("a(CHEBIID:1)"), nil},
		[]Result{leaf("a(CHEBIID:2)")},
	)

	assert.Equal(t, []string{"rxn(reactants(a(CHEBIID:1)), products(a(CHEBIID:2)))"}, got)
	assert.Equal(t, 2, logs.FilterMessage(EventEmptyParticipant).Len())
}

func TestAssembler_NeverEmptyWithParticipants(t *testing.T) {
	a := NewAssembler(nil)
	for _, groups := range [][3][]Result{
		{{leaf("p(HGNC:X)")}, nil, nil},
		{nil, {leaf("a(CHEBIID:1)")}, nil},
		{nil, nil, {leaf("a(CHEBIID:2)")}},
	} {
		assert.NotEmpty(t, a.Assemble(groups[0], groups[1], groups[2]))
	}
}
