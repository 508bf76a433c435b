package generator

import (
	"encoding/json"
	"os"
	"path/filepath"

	"reactome2bel/internal/evidence"
)

// SaveBadEvidences validates the flagged partition and writes it as an
// indented JSON array. An empty partition still produces "[]".
func SaveBadEvidences(path string, evidences []evidence.Evidence) error {
	if evidences == nil {
		evidences = []evidence.Evidence{}
	}
	if err := validateWithSchema(evidencesSchema, evidences); err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(evidences, "", "    ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
