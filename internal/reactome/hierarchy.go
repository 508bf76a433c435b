package reactome

import (
	"bytes"
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/sync/errgroup"
)

// ReactionTypes lists the hierarchy element names that denote a reaction-like
// event, in the order reactions are reported.
var ReactionTypes = []string{"Reaction", "BlackBoxEvent", "Polymerisation", "Depolymerisation", "FailedReaction"}

// ReactionRef identifies one reaction found in a pathway hierarchy.
type ReactionRef struct {
	ID   string `json:"dbId"`
	Name string `json:"displayName"`
}

type hierarchyHit struct {
	ref      ReactionRef
	kind     string
	topLevel string
}

// ParseHierarchy extracts reactions from a pathway hierarchy document.
//
// Without pathway filters every reaction-like element is returned. With
// filters, only elements below a top-level Pathway whose displayName contains
// one of the filters are returned, once per matching filter. Results are
// grouped by reaction type, then by filter, then in document order.
func ParseHierarchy(r io.Reader, pathways []string) ([]ReactionRef, error) {
	decoder := xml.NewDecoder(r)

	isReaction := make(map[string]bool, len(ReactionTypes))
	for _, t := range ReactionTypes {
		isReaction[t] = true
	}

	var hits []hierarchyHit
	depth := 0
	topLevel := ""
	for {
		tok, err := decoder.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("parse hierarchy: %w", err)
		}

		switch el := tok.(type) {
		case xml.StartElement:
			depth++
			if depth == 2 && el.Name.Local == "Pathway" {
				topLevel = attr(el, "displayName")
			}
			if isReaction[el.Name.Local] {
				hits = append(hits, hierarchyHit{
					ref:      ReactionRef{ID: attr(el, "dbId"), Name: attr(el, "displayName")},
					kind:     el.Name.Local,
					topLevel: topLevel,
				})
			}
		case xml.EndElement:
			if depth == 2 {
				topLevel = ""
			}
			depth--
		}
	}

	var out []ReactionRef
	for _, kind := range ReactionTypes {
		if len(pathways) == 0 {
			for _, h := range hits {
				if h.kind == kind && h.ref.ID != "" {
					out = append(out, h.ref)
				}
			}
			continue
		}
		for _, p := range pathways {
			for _, h := range hits {
				if h.kind != kind || h.ref.ID == "" || h.topLevel == "" {
					continue
				}
				if strings.Contains(h.topLevel, p) {
					out = append(out, h.ref)
				}
			}
		}
	}
	return out, nil
}

func attr(el xml.StartElement, name string) string {
	for _, a := range el.Attr {
		if a.Name.Local == name {
			return a.Value
		}
	}
	return ""
}

// CollectReactions gathers the reactions of every species, keeping species
// order, and drops repeated reaction ids. Human, mouse and rat hierarchies
// share reaction ids, so only the first occurrence of an id survives.
func CollectReactions(ctx context.Context, src HierarchySource, species []string, pathways []string) ([]ReactionRef, error) {
	perSpecies := make([][]ReactionRef, len(species))

	eg, egCtx := errgroup.WithContext(ctx)
	for i, s := range species {
		i, s := i, s
		eg.Go(func() error {
			doc, err := src.Hierarchy(egCtx, s)
			if err != nil {
				return err
			}
			refs, err := ParseHierarchy(bytes.NewReader(doc), pathways)
			if err != nil {
				return fmt.Errorf("species %q: %w", s, err)
			}
			perSpecies[i] = refs
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	seen := make(map[string]bool)
	var out []ReactionRef
	for _, refs := range perSpecies {
		for _, ref := range refs {
			if seen[ref.ID] {
				continue
			}
			seen[ref.ID] = true
			out = append(out, ref)
		}
	}
	return out, nil
}
