package tuning

import (
	_ "embed"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed config.schema.json
var configSchemaJSON string

var (
	configSchemaOnce sync.Once
	configSchema     *jsonschema.Schema
	configSchemaErr  error
)

func compiledSchema() (*jsonschema.Schema, error) {
	configSchemaOnce.Do(func() {
		configSchema, configSchemaErr = jsonschema.CompileString("config.schema.json", configSchemaJSON)
	})
	return configSchema, configSchemaErr
}

func validateSchema(c Config) error {
	s, err := compiledSchema()
	if err != nil {
		return fmt.Errorf("compile config schema: %w", err)
	}
	doc, err := jsonDoc(c)
	if err != nil {
		return err
	}
	if err := s.Validate(doc); err != nil {
		return fmt.Errorf("schema: %w", err)
	}
	return nil
}
