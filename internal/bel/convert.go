package bel

import (
	"context"
	"fmt"

	"reactome2bel/internal/reactome"

	"go.uber.org/zap"
)

// Diagnostic event messages emitted on the converter's logger.
const (
	EventFetchFailed     = "entity fetch failed"
	EventMissingField    = "entity missing field"
	EventUnknownSchema   = "no conversion rule for schema class"
	EventCycle           = "entity cycle detected"
	EventNoMembers       = "set has no members"
	EventUnknownNS       = "unknown namespace"
	EventConverted       = "entity converted"
	EventComponentFailed = "component conversion failed"
	EventAnnotationOnly  = "annotation entity has no term"
)

// Options are fixed for the lifetime of a Converter.
type Options struct {
	Version Version
	// Memoize reuses conversions of ids already completed within one walk.
	Memoize bool
}

// Converter resolves entity ids into BEL terms, recursing through complexes,
// sets and catalyst activities.
type Converter struct {
	store  reactome.Fetcher
	opts   Options
	logger *zap.Logger
}

// NewConverter creates a converter reading entities from store.
func NewConverter(store reactome.Fetcher, opts Options, logger *zap.Logger) *Converter {
	if !opts.Version.Valid() {
		opts.Version = V1
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Converter{store: store, opts: opts, logger: logger}
}

// Version reports the BEL dialect the converter renders.
func (c *Converter) Version() Version {
	return c.opts.Version
}

// Convert resolves one entity. The boolean is false when no term could be
// produced; the reason has been logged. Failures of nested entities never
// fail their container.
func (c *Converter) Convert(ctx context.Context, id string) (Result, bool) {
	w := &walk{
		conv:     c,
		inFlight: make(map[string]bool),
	}
	if c.opts.Memoize {
		w.memo = make(map[string]memoEntry)
	}
	return w.convert(ctx, id)
}

type memoEntry struct {
	result Result
	ok     bool
}

// walk is the state of one top-level conversion.
type walk struct {
	conv     *Converter
	inFlight map[string]bool
	memo     map[string]memoEntry
	// cycles counts cycle leaves emitted so far in this walk.
	cycles int
}

func (w *walk) log() *zap.Logger {
	return w.conv.logger
}

func (w *walk) version() Version {
	return w.conv.opts.Version
}

func (w *walk) convert(ctx context.Context, id string) (Result, bool) {
	if w.inFlight[id] {
		w.log().Warn(EventCycle, zap.String("dbId", id))
		w.cycles++
		return leaf(cycleTerm(id)), true
	}
	if w.memo != nil {
		if m, ok := w.memo[id]; ok {
			return m.result, m.ok
		}
	}

	rec, err := w.conv.store.Fetch(ctx, id)
	if err != nil {
		w.log().Warn(EventFetchFailed, zap.String("dbId", id), zap.Error(err))
		return nil, false
	}

	cyclesBefore := w.cycles
	w.inFlight[id] = true
	res, ok := kindFor(rec.SchemaClass).convert(ctx, w, rec)
	delete(w.inFlight, id)

	if ok {
		w.log().Debug(EventConverted,
			zap.String("dbId", id),
			zap.String("schemaClass", rec.SchemaClass),
			zap.Strings("terms", res.Texts()))
	}
	// A result truncated by a cycle depends on the path that reached it.
	if w.memo != nil && w.cycles == cyclesBefore {
		w.memo[id] = memoEntry{result: res, ok: ok}
	}
	return res, ok
}

// aggregate converts children and collects the distinct child terms in
// discovery order together with each one's own statements.
func (w *walk) aggregate(ctx context.Context, parent *reactome.Record, refs []reactome.Ref) []Term {
	var children []Term
	texts := newOrderedSet(len(refs))
	for _, ref := range DedupRefs(refs) {
		res, ok := w.convert(ctx, ref.ID)
		if !ok {
			w.log().Info(EventComponentFailed,
				zap.String("dbId", parent.ID),
				zap.String("component", ref.ID))
			continue
		}
		for _, t := range res {
			if texts.add(t.Text) {
				children = append(children, t)
			}
		}
	}
	return children
}

func childStatements(parent string, children []Term) []string {
	var out []string
	for _, child := range children {
		out = append(out, hasComponent(parent, child.Text))
		out = append(out, child.Children...)
	}
	return out
}

func cycleTerm(id string) string {
	return fmt.Sprintf(`a("cycle:%s")`, id)
}
