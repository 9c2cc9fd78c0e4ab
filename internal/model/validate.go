package model

import (
	_ "embed"
	"fmt"

	"github.com/xeipuuv/gojsonschema"
)

//go:embed rubric.schema.json
var rubricSchema string

//go:embed evaluation.schema.json
var evaluationSchema string

// ValidateRubric validates a rubric payload against rubric.schema.json.
func ValidateRubric(m map[string]interface{}) error {
	return validate(rubricSchema, m)
}

// ValidateEvaluation validates an evaluation payload against
// evaluation.schema.json. Partial category maps are valid; unknown keys
// and non-numeric score values are not.
func ValidateEvaluation(m map[string]interface{}) error {
	return validate(evaluationSchema, m)
}

func validate(schema string, m map[string]interface{}) error {
	schemaLoader := gojsonschema.NewStringLoader(schema)
	docLoader := gojsonschema.NewGoLoader(m)

	res, err := gojsonschema.Validate(schemaLoader, docLoader)
	if err != nil {
		return err
	}
	if res.Valid() {
		return nil
	}
	// collect errors
	msgs := ""
	for _, e := range res.Errors() {
		msgs += fmt.Sprintf("%s; ", e.String())
	}
	return fmt.Errorf("schema validation failed: %s", msgs)
}
