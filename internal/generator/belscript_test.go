package generator

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"reactome2bel/internal/bel"
	"reactome2bel/internal/evidence"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleEvidences() []evidence.Evidence {
	return []evidence.Evidence{
		{
			Name:         "Glucose import",
			ReactionID:   "100",
			ReactionType: "Reaction",
			Compartment:  "cytosol",
			Species:      "Homo sapiens",
			SpeciesTaxID: 9606,
			SummaryText:  "Glucose import",
			Citation:     `{"Online Resource", "Glucose import", "http://www.reactome.org/PathwayBrowser/#R-HSA-100"}`,
			Statements: []string{
				"cat(p(SPID:P19367)) => rxn(reactants(a(CHEBIID:4167)), products(a(CHEBIID:4170)))",
			},
		},
		{
			Name:         "ATP binding",
			ReactionID:   "200",
			ReactionType: "BlackBoxEvent",
			Compartment:  "Unknown",
			Species:      "Mus musculus",
			SpeciesTaxID: 10090,
			SummaryText:  "ATP binding",
			Citation:     `{"Online Resource", "ATP binding", "http://www.reactome.org/PathwayBrowser/#R-MMU-200"}`,
			Statements: []string{
				`rxn(reactants(a("ATP", loc(REACTCOMP:"plasma membrane"))), products(complex(a("ATP"), p(HGNC:AKT1))))`,
				`complex(a("ATP"), p(HGNC:AKT1)) hasComponent p(HGNC:AKT1)`,
			},
		},
	}
}

func TestDocumentName(t *testing.T) {
	assert.Equal(t, "All Reactome Reactions", DocumentName(nil))
	assert.Equal(t, "Metabolism and Transport Pathway Reactome Reactions",
		DocumentName([]string{"Metabolism", "Transport"}))
}

func TestNewDocument_CollectsDefinitions(t *testing.T) {
	doc := NewDocument(DocumentInfo{Version: "0.1"}, bel.V2, []string{"Metabolism"}, sampleEvidences())

	assert.Equal(t, "Metabolism Pathway Reactome Reactions converted to BEL 2.0", doc.Description)
	assert.Equal(t, []NamespaceDef{
		{Keyword: "CHEBIID", URL: namespaceURLs["CHEBIID"]},
		{Keyword: "HGNC", URL: namespaceURLs["HGNC"]},
		{Keyword: "SPID", URL: namespaceURLs["SPID"]},
	}, doc.Namespaces)
	assert.Equal(t, []string{"plasma membrane"}, doc.LocationValues)
	assert.Equal(t, []string{"Unknown", "cytosol"}, doc.Compartments)
}

func TestBELScriptWriter_Write(t *testing.T) {
	w, err := NewBELScriptWriter()
	require.NoError(t, err)

	info := DocumentInfo{Authors: "Selventa", ContactEmail: "bel@example.org", Version: "0.1"}
	doc := NewDocument(info, bel.V1, nil, sampleEvidences())

	var buf bytes.Buffer
	require.NoError(t, w.Write(&buf, doc))
	script := buf.String()

	t.Run("Header", func(t *testing.T) {
		assert.Contains(t, script, `SET DOCUMENT Name = "All Reactome Reactions"`)
		assert.Contains(t, script, `SET DOCUMENT Description = "All Reactome Reactions converted to BEL 1.0"`)
		assert.Contains(t, script, `SET DOCUMENT Authors = "Selventa"`)
		assert.Contains(t, script, `SET DOCUMENT ContactInfo = "bel@example.org"`)
	})

	t.Run("Definitions", func(t *testing.T) {
		assert.Contains(t, script, `DEFINE NAMESPACE CHEBIID AS URL "`+namespaceURLs["CHEBIID"]+`"`)
		assert.Contains(t, script, `DEFINE NAMESPACE REACTCOMP AS LIST {"plasma membrane"}`)
		assert.Contains(t, script, `DEFINE ANNOTATION Compartment AS LIST {"Unknown", "cytosol"}`)
		assert.Contains(t, script, `DEFINE ANNOTATION Species AS URL "`+speciesAnnotationURL+`"`)
	})

	t.Run("Statement groups", func(t *testing.T) {
		first := strings.Index(script, `SET STATEMENT_GROUP = "Group-1"`)
		second := strings.Index(script, `SET STATEMENT_GROUP = "Group-2"`)
		require.NotEqual(t, -1, first)
		require.Greater(t, second, first)

		group := script[first:second]
		assert.Contains(t, group, "SET Citation = {\"Online Resource\", \"Glucose import\", \"http://www.reactome.org/PathwayBrowser/#R-HSA-100\"}\n")
		assert.Contains(t, group, "SET Evidence = \"Glucose import\"\n")
		assert.Contains(t, group, "SET Species = 9606\n")
		assert.Contains(t, group, "SET Compartment = \"cytosol\"\n")
		assert.Contains(t, group, "\ncat(p(SPID:P19367)) => rxn(reactants(a(CHEBIID:4167)), products(a(CHEBIID:4170)))\n")
		assert.Contains(t, group, "UNSET STATEMENT_GROUP\n")
		assert.Equal(t, 2, strings.Count(script, "UNSET STATEMENT_GROUP"))
	})
}

func TestBELScriptWriter_SaveUsesVersionFilename(t *testing.T) {
	w, err := NewBELScriptWriter()
	require.NoError(t, err)
	dir := t.TempDir()

	path, err := w.Save(dir, NewDocument(DocumentInfo{}, bel.V1, nil, nil))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "reactome.bels"), path)

	path, err = w.Save(dir, NewDocument(DocumentInfo{}, bel.V2, nil, nil))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "reactome.bels2"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "STATEMENT_GROUP")
}

func TestSaveBadEvidences(t *testing.T) {
	dir := t.TempDir()

	empty := filepath.Join(dir, "empty.json")
	require.NoError(t, SaveBadEvidences(empty, nil))
	data, err := os.ReadFile(empty)
	require.NoError(t, err)
	assert.Equal(t, "[]", string(data))

	path := filepath.Join(dir, "bad_evidences.json")
	require.NoError(t, SaveBadEvidences(path, sampleEvidences()[:1]))
	data, err = os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "\n    {\n        \"name\": \"Glucose import\"")

	var decoded []evidence.Evidence
	require.NoError(t, json.Unmarshal(data, &decoded))
	require.Len(t, decoded, 1)
	assert.Equal(t, "100", decoded[0].ReactionID)
	assert.Equal(t, 9606, decoded[0].SpeciesTaxID)
}
