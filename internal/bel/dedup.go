package bel

import "reactome2bel/internal/reactome"

// orderedSet is an insertion-ordered set of strings.
type orderedSet struct {
	items []string
	seen  map[string]struct{}
}

func newOrderedSet(capacity int) *orderedSet {
	return &orderedSet{
		items: make([]string, 0, capacity),
		seen:  make(map[string]struct{}, capacity),
	}
}

// add reports whether s was not yet present.
func (o *orderedSet) add(s string) bool {
	if _, ok := o.seen[s]; ok {
		return false
	}
	o.seen[s] = struct{}{}
	o.items = append(o.items, s)
	return true
}

// DedupRefs drops references whose id was already seen, keeping the first.
func DedupRefs(refs []reactome.Ref) []reactome.Ref {
	if refs == nil {
		return nil
	}
	ids := newOrderedSet(len(refs))
	out := make([]reactome.Ref, 0, len(refs))
	for _, r := range refs {
		if ids.add(r.ID) {
			out = append(out, r)
		}
	}
	return out
}

// DedupStatements drops repeated statements, keeping first-occurrence order.
func DedupStatements(statements []string) []string {
	set := newOrderedSet(len(statements))
	for _, s := range statements {
		set.add(s)
	}
	return set.items
}
