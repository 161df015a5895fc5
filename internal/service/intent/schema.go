package intent

import (
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// intentSchema схема ответа модели. Необязательные поля могут быть null или пустыми.
const intentSchema = `{
  "type": "object",
  "required": ["action"],
  "properties": {
    "action":        {"type": "string", "enum": ["create", "update", "delete", "query"]},
    "date":          {"type": ["string", "null"], "pattern": "^(\\d{4}-\\d{2}-\\d{2})?$"},
    "hour":          {"type": ["integer", "null"], "minimum": 0, "maximum": 23},
    "type":          {"type": ["string", "null"], "enum": ["live", "drop", "", null]},
    "tracking_code": {"type": ["string", "null"], "pattern": "^(\\d{8})?$"},
    "query_type":    {"type": ["string", "null"], "enum": ["my_appointments", "availability", "", null]},
    "vendor_name":   {"type": ["string", "null"]},
    "vendor_email":  {"type": ["string", "null"]},
    "carrier_name":  {"type": ["string", "null"]}
  }
}`

var compiledSchema = mustCompileSchema()

func mustCompileSchema() *gojsonschema.Schema {
	schema, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(intentSchema))
	if err != nil {
		panic(fmt.Sprintf("intent: invalid intent schema: %v", err))
	}
	return schema
}

// validateIntentJSON проверяет ответ модели по схеме намерения
func validateIntentJSON(raw []byte) error {
	result, err := compiledSchema.Validate(gojsonschema.NewBytesLoader(raw))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrIntentParse, err)
	}

	if !result.Valid() {
		problems := make([]string, 0, len(result.Errors()))
		for _, e := range result.Errors() {
			problems = append(problems, e.String())
		}
		return fmt.Errorf("%w: %s", ErrIntentParse, strings.Join(problems, "; "))
	}

	return nil
}
