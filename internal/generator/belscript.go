package generator

import (
	"bytes"
	_ "embed"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"text/template"
	"time"

	"reactome2bel/internal/bel"
	"reactome2bel/internal/evidence"
)

//go:embed templates/belscript.tmpl
var belScriptTemplate string

const resourceBase = "http://resource.belframework.org/belframework/20150611/"

// namespaceURLs maps namespace keywords to their published resource files.
var namespaceURLs = map[string]string{
	"AFFX":    resourceBase + "namespace/affy-probeset-ids.belns",
	"CHEBI":   resourceBase + "namespace/chebi.belns",
	"CHEBIID": resourceBase + "namespace/chebi-ids.belns",
	"DO":      resourceBase + "namespace/disease-ontology.belns",
	"DOID":    resourceBase + "namespace/disease-ontology-ids.belns",
	"EGID":    resourceBase + "namespace/entrez-gene-ids.belns",
	"GOBP":    resourceBase + "namespace/go-biological-process.belns",
	"GOBPID":  resourceBase + "namespace/go-biological-process-ids.belns",
	"GOCC":    resourceBase + "namespace/go-cellular-component.belns",
	"GOCCID":  resourceBase + "namespace/go-cellular-component-ids.belns",
	"HGNC":    resourceBase + "namespace/hgnc-human-genes.belns",
	"MESHC":   resourceBase + "namespace/mesh-chemicals.belns",
	"MESHCS":  resourceBase + "namespace/mesh-cellular-structures.belns",
	"MESHD":   resourceBase + "namespace/mesh-diseases.belns",
	"MESHPP":  resourceBase + "namespace/mesh-processes.belns",
	"MGI":     resourceBase + "namespace/mgi-mouse-genes.belns",
	"RGD":     resourceBase + "namespace/rgd-rat-genes.belns",
	"SCHEM":   resourceBase + "namespace/selventa-legacy-chemicals.belns",
	"SCOMP":   resourceBase + "namespace/selventa-named-complexes.belns",
	"SDIS":    resourceBase + "namespace/selventa-legacy-diseases.belns",
	"SFAM":    resourceBase + "namespace/selventa-protein-families.belns",
	"SP":      resourceBase + "namespace/swissprot.belns",
	"SPID":    resourceBase + "namespace/swissprot-ids.belns",
}

const speciesAnnotationURL = resourceBase + "annotation/species-taxonomy-id.belanno"

var (
	namespacePattern = regexp.MustCompile(`\(([A-Za-z]\w*):`)
	locationPattern  = regexp.MustCompile(`loc\(REACTCOMP:"((?:[^"\\]|\\.)*)"\)`)
)

// DocumentInfo carries the document properties written in the script header.
type DocumentInfo struct {
	Authors      string
	ContactEmail string
	Version      string
}

// NamespaceDef is one DEFINE NAMESPACE line. An empty URL defines the
// namespace by pattern.
type NamespaceDef struct {
	Keyword string
	URL     string
}

// Document is everything the BEL script template renders.
type Document struct {
	Name                 string
	Description          string
	Authors              string
	ContactEmail         string
	Version              string
	Date                 string
	BELVersion           bel.Version
	Namespaces           []NamespaceDef
	LocationValues       []string
	Compartments         []string
	SpeciesAnnotationURL string
	Evidences            []evidence.Evidence
}

// DocumentName names the script after the pathway filters, if any.
func DocumentName(pathways []string) string {
	if len(pathways) == 0 {
		return "All Reactome Reactions"
	}
	return fmt.Sprintf("%s Pathway Reactome Reactions", strings.Join(pathways, " and "))
}

// NewDocument assembles the template data for a set of evidences, collecting
// the namespaces and compartments their statements and annotations use.
func NewDocument(info DocumentInfo, version bel.Version, pathways []string, evidences []evidence.Evidence) *Document {
	name := DocumentName(pathways)
	doc := &Document{
		Name:                 name,
		Description:          fmt.Sprintf("%s converted to BEL %d.0", name, int(version)),
		Authors:              info.Authors,
		ContactEmail:         info.ContactEmail,
		Version:              info.Version,
		Date:                 time.Now().Format("2006-01-02"),
		BELVersion:           version,
		SpeciesAnnotationURL: speciesAnnotationURL,
		Evidences:            evidences,
	}

	namespaces := map[string]bool{}
	locations := map[string]bool{}
	compartments := map[string]bool{}
	for _, ev := range evidences {
		compartments[ev.Compartment] = true
		for _, s := range ev.Statements {
			for _, m := range namespacePattern.FindAllStringSubmatch(s, -1) {
				namespaces[m[1]] = true
			}
			for _, m := range locationPattern.FindAllStringSubmatch(s, -1) {
				locations[strings.ReplaceAll(m[1], `\"`, `"`)] = true
			}
		}
	}

	for _, kw := range sortedKeys(namespaces) {
		if kw == "REACTCOMP" {
			continue
		}
		doc.Namespaces = append(doc.Namespaces, NamespaceDef{Keyword: kw, URL: namespaceURLs[kw]})
	}
	doc.LocationValues = sortedKeys(locations)
	doc.Compartments = sortedKeys(compartments)
	return doc
}

// ScriptFilename is reactome.bels, or reactome.bels2 for BEL 2.
func ScriptFilename(version bel.Version) string {
	if version == bel.V2 {
		return "reactome.bels2"
	}
	return "reactome.bels"
}

// BELScriptWriter renders documents with the embedded BEL script template.
type BELScriptWriter struct {
	tmpl *template.Template
}

func NewBELScriptWriter() (*BELScriptWriter, error) {
	tmpl, err := template.New("belscript").Funcs(template.FuncMap{
		"quote": bel.EscapeString,
		"inc":   func(i int) int { return i + 1 },
		"list":  listLiteral,
	}).Parse(belScriptTemplate)
	if err != nil {
		return nil, fmt.Errorf("parse BEL script template: %w", err)
	}
	return &BELScriptWriter{tmpl: tmpl}, nil
}

func (w *BELScriptWriter) Write(out io.Writer, doc *Document) error {
	return w.tmpl.Execute(out, doc)
}

// Save renders the document into dir under the version's filename and
// returns the path written.
func (w *BELScriptWriter) Save(dir string, doc *Document) (string, error) {
	var buf bytes.Buffer
	if err := w.Write(&buf, doc); err != nil {
		return "", fmt.Errorf("render BEL script: %w", err)
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", err
	}
	path := filepath.Join(dir, ScriptFilename(doc.BELVersion))
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return "", err
	}
	return path, nil
}

func listLiteral(values []string) string {
	quoted := make([]string, 0, len(values))
	for _, v := range values {
		quoted = append(quoted, `"`+bel.EscapeString(v)+`"`)
	}
	return "{" + strings.Join(quoted, ", ") + "}"
}

func sortedKeys(m map[string]bool) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
