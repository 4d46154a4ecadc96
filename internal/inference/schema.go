package inference

import (
	"encoding/json"
	"errors"
	"strings"

	"github.com/invopop/jsonschema"
)

// PatternFindings is the structured output shape for TaskPatternDetection.
type PatternFindings struct {
	Themes       []string `json:"themes" jsonschema_description:"Recurring emotional themes across the entries"`
	Triggers     []string `json:"triggers" jsonschema_description:"Likely triggers observed in the entries"`
	TrendSummary string   `json:"trend_summary" jsonschema_description:"One short paragraph on how the emotional state changed over time"`
}

// EntryFindings is the structured output shape for TaskEntryInsights.
type EntryFindings struct {
	Themes      []string `json:"themes" jsonschema_description:"Key themes of the entry"`
	Emotions    []string `json:"emotions" jsonschema_description:"Emotions present in the entry"`
	Observation string   `json:"observation" jsonschema_description:"One gentle, non-judgmental observation"`
}

type boundSchema struct {
	name   string
	schema map[string]interface{}
}

var taskSchemas = map[Task]boundSchema{
	TaskPatternDetection: {name: "PatternFindings", schema: generateSchema[PatternFindings]()},
	TaskEntryInsights:    {name: "EntryFindings", schema: generateSchema[EntryFindings]()},
}

func generateSchema[T any]() map[string]interface{} {
	reflector := jsonschema.Reflector{
		AllowAdditionalProperties:  false,
		DoNotReference:             true,
		RequiredFromJSONSchemaTags: true,
	}
	var v T
	schema := reflector.Reflect(v)
	b, err := schema.MarshalJSON()
	if err != nil {
		panic(err)
	}
	var m map[string]interface{}
	if err := json.Unmarshal(b, &m); err != nil {
		panic(err)
	}
	ensureStrictCompliance(m)
	return m
}

// ensureStrictCompliance massages a reflected schema into the shape the
// Responses API accepts in strict mode: every object closes additional
// properties and requires all of its fields.
func ensureStrictCompliance(schema map[string]interface{}) {
	if t, ok := schema["type"].(string); ok && t == "object" {
		schema["additionalProperties"] = false
		if props, ok := schema["properties"].(map[string]interface{}); ok {
			required := make([]string, 0, len(props))
			for name := range props {
				required = append(required, name)
			}
			if len(required) > 0 {
				schema["required"] = required
			}
		}
	}
	if props, ok := schema["properties"].(map[string]interface{}); ok {
		for _, p := range props {
			if pm, ok := p.(map[string]interface{}); ok {
				ensureStrictCompliance(pm)
			}
		}
	}
	if items, ok := schema["items"].(map[string]interface{}); ok {
		ensureStrictCompliance(items)
	}
}

// DecodeModelJSON unmarshals JSON from model output, tolerating surrounding
// whitespace and markdown code fences.
func DecodeModelJSON(outputText string, v any) error {
	s := strings.TrimSpace(outputText)
	if s == "" {
		return errors.New("empty model output")
	}
	if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```json")
		s = strings.TrimPrefix(s, "```")
		if i := strings.LastIndex(s, "```"); i >= 0 {
			s = s[:i]
		}
		s = strings.TrimSpace(s)
	}
	if !strings.HasPrefix(s, "{") && !strings.HasPrefix(s, "[") {
		if i := strings.IndexAny(s, "{["); i >= 0 {
			s = s[i:]
		}
	}
	return json.Unmarshal([]byte(s), v)
}
