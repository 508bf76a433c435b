package reactome

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeRecord(t *testing.T) {
	payload := `{
		"dbId": 5672950,
		"schemaClass": "Reaction",
		"displayName": "BRAF binds MAP2K1",
		"speciesName": "Homo sapiens",
		"stableIdentifier": {"dbId": 5672951, "displayName": "R-HSA-5672950.2", "schemaClass": "StableIdentifier"},
		"created": {"dbId": 1, "displayName": "Rothfels, K, 2015-02-11"},
		"compartment": [{"dbId": 70101, "displayName": "cytosol"}, {"dbId": 876, "displayName": "plasma membrane"}],
		"input": [5672949, "5672948"],
		"hasMember": [],
		"name": ["BRAF:MAP2K1"]
	}`

	rec, err := DecodeRecord([]byte(payload))
	require.NoError(t, err)

	assert.Equal(t, "5672950", rec.ID)
	assert.Equal(t, "Reaction", rec.SchemaClass)
	assert.Equal(t, "R-HSA-5672950.2", rec.StableIdentifier.DisplayName)
	assert.Equal(t, "5672951", rec.StableIdentifier.ID)
	assert.Equal(t, []Ref{{ID: "5672949"}, {ID: "5672948"}}, rec.Input)
	assert.Equal(t, "cytosol", rec.CompartmentName(), "only the first compartment is used")

	t.Run("Absent and empty lists differ", func(t *testing.T) {
		assert.NotNil(t, rec.HasMember)
		assert.Empty(t, rec.HasMember)
		assert.Nil(t, rec.HasCandidate)
		assert.Nil(t, rec.HasComponent)
	})

	t.Run("Payload is preserved", func(t *testing.T) {
		raw, err := rec.Payload()
		require.NoError(t, err)
		assert.Equal(t, payload, string(raw))
	})

	t.Run("Names", func(t *testing.T) {
		name, ok := rec.FirstName()
		assert.True(t, ok)
		assert.Equal(t, "BRAF:MAP2K1", name)

		name, ok = (&Record{DisplayName: "fallback"}).FirstName()
		assert.True(t, ok)
		assert.Equal(t, "fallback", name)

		_, ok = (&Record{}).FirstName()
		assert.False(t, ok)
	})
}

func TestRecordPayload_InMemoryRoundTrip(t *testing.T) {
	rec := &Record{
		ID:           "9",
		SchemaClass:  "CandidateSet",
		Name:         []string{"cands"},
		HasCandidate: []Ref{{ID: "1"}},
	}
	raw, err := rec.Payload()
	require.NoError(t, err)

	var back Record
	require.NoError(t, json.Unmarshal(raw, &back))
	assert.Equal(t, "9", back.ID)
	assert.Equal(t, []Ref{{ID: "1"}}, back.HasCandidate)
	assert.Nil(t, back.HasMember)
}

func TestDecodeRecord_InvalidID(t *testing.T) {
	_, err := DecodeRecord([]byte(`{"dbId": {"nested": true}}`))
	assert.Error(t, err)
}
