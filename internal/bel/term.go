package bel

import (
	"fmt"
	"strings"
)

// Version selects the BEL dialect terms are rendered in.
type Version int

const (
	V1 Version = 1
	// V2 attaches loc(REACTCOMP:"...") qualifiers to terms with a known compartment.
	V2 Version = 2
)

// ParseVersion reads "1" or "2".
func ParseVersion(s string) (Version, error) {
	switch strings.TrimSpace(s) {
	case "1":
		return V1, nil
	case "2":
		return V2, nil
	default:
		return 0, fmt.Errorf("unsupported BEL version %q (want 1 or 2)", s)
	}
}

// Valid reports whether v is a supported dialect.
func (v Version) Valid() bool {
	return v == V1 || v == V2
}

// Term is a rendered BEL term together with the statements produced while
// resolving its nested structure. Children only describe relationships rooted
// at this term.
type Term struct {
	Text     string
	Children []string
}

// Result is the ordered set of terms one entity converts to.
type Result []Term

// Empty reports a conversion that produced no term.
func (r Result) Empty() bool {
	return len(r) == 0
}

// Texts returns the term texts in order.
func (r Result) Texts() []string {
	out := make([]string, 0, len(r))
	for _, t := range r {
		out = append(out, t.Text)
	}
	return out
}

func leaf(text string) Result {
	return Result{{Text: text}}
}

// render builds fn(arg) or, under V2 with a compartment, fn(arg, loc(...)).
func render(v Version, fn, arg, compartment string) string {
	if v == V2 && compartment != "" {
		return fmt.Sprintf(`%s(%s, loc(REACTCOMP:"%s"))`, fn, arg, compartment)
	}
	return fmt.Sprintf("%s(%s)", fn, arg)
}

// EscapeString escapes double quotes for use inside a quoted BEL string.
func EscapeString(s string) string {
	return strings.ReplaceAll(s, `"`, `\"`)
}

func quoted(s string) string {
	return `"` + EscapeString(s) + `"`
}

func hasComponent(parent, child string) string {
	return parent + " hasComponent " + child
}
