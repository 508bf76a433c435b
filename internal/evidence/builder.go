package evidence

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"reactome2bel/internal/bel"
	"reactome2bel/internal/reactome"

	"go.uber.org/zap"
)

// Evidence is one reaction's citation-annotated statement bundle.
type Evidence struct {
	Name         string   `json:"name"`
	ReactionID   string   `json:"rxnId"`
	ReactionType string   `json:"rxnType"`
	Compartment  string   `json:"compartment"`
	Species      string   `json:"species"`
	SpeciesTaxID int      `json:"species_tax_id"`
	SummaryText  string   `json:"summary_text"`
	Citation     string   `json:"citation"`
	Statements   []string `json:"statements"`
}

// Collection partitions evidences by namespace routing. Every built evidence
// lands in exactly one of Accepted or Flagged.
type Collection struct {
	Accepted []Evidence
	Flagged  []Evidence
	Skipped  []string
	Failed   []string
}

type Options struct {
	// BrowserURL is prefixed to stable identifiers to link the reaction.
	BrowserURL string
}

// Builder turns reaction ids into Evidence.
type Builder struct {
	store      reactome.Fetcher
	converter  *bel.Converter
	assembler  *bel.Assembler
	browserURL string
	logger     *zap.Logger
}

func NewBuilder(store reactome.Fetcher, converter *bel.Converter, logger *zap.Logger, opts Options) *Builder {
	if logger == nil {
		logger = zap.NewNop()
	}
	url := opts.BrowserURL
	if url == "" {
		url = reactome.DefaultBrowserURL
	}
	return &Builder{
		store:      store,
		converter:  converter,
		assembler:  bel.NewAssembler(logger),
		browserURL: url,
		logger:     logger,
	}
}

// Build converts one reaction. A nil Evidence with a nil error means the
// record is not a usable reaction and was skipped. The boolean reports
// whether the statements reference a disallowed namespace.
func (b *Builder) Build(ctx context.Context, reactionID string) (*Evidence, bool, error) {
	rec, err := b.store.Fetch(ctx, reactionID)
	if err != nil {
		b.logger.Warn("reaction fetch failed", zap.String("rxnId", reactionID), zap.Error(err))
		return nil, false, nil
	}
	if rec.StableIdentifier == nil {
		b.logger.Info("reaction has no stable identifier", zap.String("rxnId", reactionID))
		return nil, false, nil
	}

	taxID, err := TaxonomyID(rec.SpeciesName)
	if err != nil {
		return nil, false, fmt.Errorf("reaction %s: %w", reactionID, err)
	}

	name := bel.EscapeString(rec.DisplayName)
	compartment := rec.CompartmentName()
	if compartment == "" {
		compartment = "Unknown"
	}
	if _, _, ok := parseCreated(rec.Created); !ok {
		b.logger.Debug("reaction has no creation date and author", zap.String("rxnId", reactionID))
	}

	ev := &Evidence{
		Name:         name,
		ReactionID:   reactionID,
		ReactionType: rec.SchemaClass,
		Compartment:  compartment,
		Species:      rec.SpeciesName,
		SpeciesTaxID: taxID,
		SummaryText:  name,
		Citation:     Citation(name, b.browserURL+rec.StableIdentifier.DisplayName, rec.Created),
	}

	catalysts := b.convertAll(ctx, rec.CatalystActivity)
	inputs := b.convertAll(ctx, rec.Input)
	outputs := b.convertAll(ctx, rec.Output)

	ev.Statements = bel.DedupStatements(b.assembler.Assemble(catalysts, inputs, outputs))

	b.logger.Debug("reaction converted",
		zap.String("rxnId", reactionID),
		zap.Int("catalysts", len(catalysts)),
		zap.Int("inputs", len(inputs)),
		zap.Int("outputs", len(outputs)),
		zap.Int("statements", len(ev.Statements)))

	return ev, HasDisallowedNamespace(ev.Statements), nil
}

func (b *Builder) convertAll(ctx context.Context, refs []reactome.Ref) []bel.Result {
	deduped := bel.DedupRefs(refs)
	out := make([]bel.Result, 0, len(deduped))
	for _, ref := range deduped {
		res, _ := b.converter.Convert(ctx, ref.ID)
		out = append(out, res)
	}
	return out
}

// HasDisallowedNamespace reports whether any statement carries a marker of a
// namespace the downstream tools reject.
func HasDisallowedNamespace(statements []string) bool {
	for _, s := range statements {
		for _, marker := range bel.DisallowedMarkers {
			if strings.Contains(s, marker) {
				return true
			}
		}
	}
	return false
}

// BuildAll builds every reaction in order. A reaction that fails is logged and
// recorded; the rest of the batch still runs. The returned error joins the
// per-reaction failures.
func (b *Builder) BuildAll(ctx context.Context, reactions []reactome.ReactionRef) (*Collection, error) {
	col := &Collection{}
	var errs []error
	for i, rxn := range reactions {
		if err := ctx.Err(); err != nil {
			return col, errors.Join(append(errs, err)...)
		}

		ev, flagged, err := b.Build(ctx, rxn.ID)
		switch {
		case err != nil:
			b.logger.Error("reaction conversion failed", zap.String("rxnId", rxn.ID), zap.Error(err))
			col.Failed = append(col.Failed, rxn.ID)
			errs = append(errs, err)
		case ev == nil:
			col.Skipped = append(col.Skipped, rxn.ID)
		case flagged:
			col.Flagged = append(col.Flagged, *ev)
		default:
			col.Accepted = append(col.Accepted, *ev)
		}

		if (i+1)%100 == 0 {
			b.logger.Info("reactions processed", zap.Int("done", i+1), zap.Int("total", len(reactions)))
		}
	}
	return col, errors.Join(errs...)
}
