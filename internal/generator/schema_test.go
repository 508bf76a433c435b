package generator

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveBadEvidences_ValidatesAgainstJSONSchema(t *testing.T) {
	tmp := t.TempDir()

	t.Run("Missing taxonomy id", func(t *testing.T) {
		ev := sampleEvidences()[:1]
		ev[0].SpeciesTaxID = 0
		path := filepath.Join(tmp, "no_tax.json")

		err := SaveBadEvidences(path, ev)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "schema validation")
		_, statErr := os.Stat(path)
		assert.True(t, os.IsNotExist(statErr), "invalid evidences are not written")
	})

	t.Run("Malformed citation", func(t *testing.T) {
		ev := sampleEvidences()[:1]
		ev[0].Citation = "Jassal, B"
		err := SaveBadEvidences(filepath.Join(tmp, "bad_citation.json"), ev)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "schema validation")
	})

	t.Run("No statements", func(t *testing.T) {
		ev := sampleEvidences()[:1]
		ev[0].Statements = nil
		err := SaveBadEvidences(filepath.Join(tmp, "no_statements.json"), ev)
		assert.Error(t, err)
	})

	t.Run("Valid partition", func(t *testing.T) {
		assert.NoError(t, SaveBadEvidences(filepath.Join(tmp, "ok.json"), sampleEvidences()))
	})
}

func TestRunReport_SaveValidatesAgainstJSONSchema(t *testing.T) {
	tmp := t.TempDir()

	r := NewRunReport(1, nil, nil, tmp)
	h := r.BeginStage("render_bel_script")
	r.EndStage(h, "skipped", nil, nil, nil)

	path := filepath.Join(tmp, "run_report.json")
	err := r.Save(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "schema validation")
	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr))

	r = NewRunReport(3, []string{"Homo sapiens"}, nil, tmp)
	assert.Error(t, r.Save(path), "unsupported BEL version")

	r = NewRunReport(1, nil, nil, tmp)
	require.NoError(t, r.Save(path), "nil species is written as an empty list")
}

func TestLoadCompiledSchema_Caches(t *testing.T) {
	first, err := loadCompiledSchema(evidencesSchema)
	require.NoError(t, err)
	second, err := loadCompiledSchema(evidencesSchema)
	require.NoError(t, err)
	assert.Same(t, first, second)

	_, err = loadCompiledSchema("missing.schema.json")
	assert.Error(t, err)
}
