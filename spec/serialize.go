package spec

import (
	"bytes"
	"encoding/json"

	"go.yaml.in/yaml/v4"
)

// ToJSON serializes the document to compact JSON. Map keys serialize in
// sorted order, so identical documents always produce identical bytes.
func ToJSON(doc *Document) ([]byte, error) {
	return json.Marshal(doc)
}

// ToJSONIndent serializes the document to indented JSON for human consumption.
func ToJSONIndent(doc *Document) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ToYAML serializes the document to YAML.
func ToYAML(doc *Document) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
