package bel

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
)

const EventEmptyParticipant = "participant produced no BEL"

// Assembler turns a reaction's converted participants into BEL statements.
type Assembler struct {
	logger *zap.Logger
}

// NewAssembler creates an assembler logging to logger.
func NewAssembler(logger *zap.Logger) *Assembler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Assembler{logger: logger}
}

// Assemble emits one cat(...) => rxn(...) statement per catalyst term, or the
// bare rxn(...) when there is none, followed by every child statement of the
// catalysts, inputs and outputs in that order.
func (a *Assembler) Assemble(catalysts, inputs, outputs []Result) []string {
	rxn := fmt.Sprintf("rxn(reactants(%s), products(%s))", joinTerms(inputs), joinTerms(outputs))

	var statements []string
	for _, catalyst := range catalysts {
		if catalyst.Empty() {
			a.logger.Error(EventEmptyParticipant, zap.String("role", "catalyst"))
			continue
		}
		for _, t := range catalyst {
			statements = append(statements, fmt.Sprintf("cat(%s) => %s", t.Text, rxn))
		}
	}
	if len(statements) == 0 {
		statements = append(statements, rxn)
	}

	groups := []struct {
		role    string
		results []Result
	}{
		{"catalyst", catalysts},
		{"input", inputs},
		{"output", outputs},
	}
	for _, g := range groups {
		for _, res := range g.results {
			if res.Empty() {
				if g.role != "catalyst" {
					a.logger.Error(EventEmptyParticipant, zap.String("role", g.role))
				}
				continue
			}
			for _, t := range res {
				statements = append(statements, t.Children...)
			}
		}
	}
	return statements
}

func joinTerms(results []Result) string {
	var terms []string
	for _, r := range results {
		terms = append(terms, r.Texts()...)
	}
	return strings.Join(terms, ", ")
}
