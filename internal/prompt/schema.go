package prompt

import (
	"encoding/json"

	"github.com/invopop/jsonschema"
)

// SchemaJSON returns the JSON Schema for the prompt document, used by
// external tooling that consumes the HTTP API.
func SchemaJSON() ([]byte, error) {
	r := &jsonschema.Reflector{DoNotReference: true}
	s := r.Reflect(&Prompt{})
	s.Title = "Prompt"
	s.Description = "A stored prompt with metadata and markdown content."
	return json.MarshalIndent(s, "", "  ")
}
