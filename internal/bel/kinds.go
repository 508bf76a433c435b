package bel

import (
	"context"
	"regexp"
	"strings"

	"reactome2bel/internal/reactome"

	"go.uber.org/zap"
)

// kind is the conversion rule for one family of schema classes.
type kind interface {
	convert(ctx context.Context, w *walk, rec *reactome.Record) (Result, bool)
}

var kinds = map[string]kind{
	"SimpleEntity":                  referenceKind{},
	"EntityWithAccessionedSequence": referenceKind{accessioned: true},
	"OtherEntity":                   namedKind{},
	"GenomeEncodedEntity":           namedKind{},
	"Polymer":                       polymerKind{},
	"Complex":                       complexKind{},
	"CatalystActivity":              catalystKind{},
	"Compartment":                   annotationKind{},
	"EntityCompartment":             annotationKind{},
}

func kindFor(schemaClass string) kind {
	if k, ok := kinds[schemaClass]; ok {
		return k
	}
	switch {
	case strings.Contains(schemaClass, "Set"):
		return setKind{}
	case strings.Contains(schemaClass, "GenomeEncodedEntity"):
		return namedKind{}
	case strings.Contains(schemaClass, "CatalystActivity"):
		return catalystKind{}
	}
	return unrecognizedKind{}
}

func missing(w *walk, rec *reactome.Record, field string) (Result, bool) {
	w.log().Info(EventMissingField,
		zap.String("dbId", rec.ID),
		zap.String("schemaClass", rec.SchemaClass),
		zap.String("field", field))
	return nil, false
}

var (
	chebiDisplayName     = regexp.MustCompile(`(.*?)\s+\[ChEBI:(\d+)\]`)
	namespacedIdentifier = regexp.MustCompile(`(\w+):(\w+)`)
)

// referenceKind renders molecules and sequences from their reference entity.
type referenceKind struct {
	accessioned bool
}

func (k referenceKind) convert(ctx context.Context, w *walk, rec *reactome.Record) (Result, bool) {
	if rec.ReferenceEntity == nil {
		if k.accessioned && rec.PhysicalEntity != nil {
			return w.convert(ctx, rec.PhysicalEntity.ID)
		}
		return missing(w, rec, "referenceEntity")
	}

	compartment := rec.CompartmentName()
	displayName := rec.ReferenceEntity.DisplayName

	if m := chebiDisplayName.FindStringSubmatch(displayName); m != nil {
		return leaf(render(w.version(), "a", "CHEBIID:"+m[2], compartment)), true
	}

	if m := namespacedIdentifier.FindStringSubmatch(displayName); m != nil {
		ns := m[1]
		if k.accessioned && ns == "UniProt" {
			ns = "SPID"
		}
		if !KnownNamespace(ns) {
			w.log().Debug(EventUnknownNS, zap.String("dbId", rec.ID), zap.String("namespace", ns))
		}
		return leaf(render(w.version(), "p", ns+":"+m[2], compartment)), true
	}

	name, ok := rec.FirstName()
	if !ok {
		return missing(w, rec, "name")
	}
	return leaf(render(w.version(), "p", name, compartment)), true
}

// namedKind renders an abundance keyed by the entity's own name.
type namedKind struct{}

func (namedKind) convert(_ context.Context, w *walk, rec *reactome.Record) (Result, bool) {
	if len(rec.Name) == 0 {
		return missing(w, rec, "name")
	}
	return leaf(render(w.version(), "a", quoted(rec.Name[0]), rec.CompartmentName())), true
}

// polymerKind prefers a ChEBI cross-reference over the polymer's name.
type polymerKind struct{}

func (polymerKind) convert(_ context.Context, w *walk, rec *reactome.Record) (Result, bool) {
	compartment := rec.CompartmentName()
	for _, cross := range rec.CrossReference {
		if strings.Contains(cross.DisplayName, "ChEBI") {
			chebi := strings.ReplaceAll(cross.DisplayName, "ChEBI", "CHEBIID")
			return leaf(render(w.version(), "a", chebi, compartment)), true
		}
	}
	if len(rec.Name) == 0 {
		return missing(w, rec, "name")
	}
	return leaf(render(w.version(), "a", quoted(rec.Name[0]), compartment)), true
}

// complexKind renders a complex from the terms of its components.
type complexKind struct{}

func (complexKind) convert(ctx context.Context, w *walk, rec *reactome.Record) (Result, bool) {
	if rec.HasComponent == nil {
		return missing(w, rec, "hasComponent")
	}

	children := w.aggregate(ctx, rec, rec.HasComponent)
	args := make([]string, 0, len(children))
	for _, c := range children {
		args = append(args, c.Text)
	}
	text := render(w.version(), "complex", strings.Join(args, ", "), rec.CompartmentName())
	return Result{{Text: text, Children: childStatements(text, children)}}, true
}

// setKind renders a named abundance for defined, candidate and open sets.
type setKind struct{}

func (setKind) convert(ctx context.Context, w *walk, rec *reactome.Record) (Result, bool) {
	if len(rec.Name) == 0 {
		return missing(w, rec, "name")
	}
	text := render(w.version(), "a", quoted(rec.Name[0]), rec.CompartmentName())

	var members []reactome.Ref
	switch {
	case rec.HasMember != nil:
		members = rec.HasMember
	case rec.HasCandidate != nil:
		members = rec.HasCandidate
	default:
		w.log().Error(EventNoMembers, zap.String("dbId", rec.ID), zap.String("schemaClass", rec.SchemaClass))
	}

	children := w.aggregate(ctx, rec, members)
	return Result{{Text: text, Children: childStatements(text, children)}}, true
}

// catalystKind stands in for the physical entity doing the catalysis.
type catalystKind struct{}

func (catalystKind) convert(ctx context.Context, w *walk, rec *reactome.Record) (Result, bool) {
	if rec.PhysicalEntity == nil {
		return missing(w, rec, "physicalEntity")
	}
	return w.convert(ctx, rec.PhysicalEntity.ID)
}

// annotationKind covers classes that only annotate other entities.
type annotationKind struct{}

func (annotationKind) convert(_ context.Context, w *walk, rec *reactome.Record) (Result, bool) {
	w.log().Debug(EventAnnotationOnly, zap.String("dbId", rec.ID), zap.String("schemaClass", rec.SchemaClass))
	return nil, false
}

type unrecognizedKind struct{}

func (unrecognizedKind) convert(_ context.Context, w *walk, rec *reactome.Record) (Result, bool) {
	w.log().Info(EventUnknownSchema, zap.String("dbId", rec.ID), zap.String("schemaClass", rec.SchemaClass))
	return nil, false
}
