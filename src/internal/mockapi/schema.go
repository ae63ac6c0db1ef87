// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package mockapi

import (
	"embed"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

//go:embed schemas/*.json
var schemaFS embed.FS

// bodySchemas holds the compiled write-body schemas.
type bodySchemas struct {
	create *gojsonschema.Schema
	update *gojsonschema.Schema
}

func loadSchemas() (*bodySchemas, error) {
	create, err := compileSchema("schemas/create.json")
	if err != nil {
		return nil, err
	}
	update, err := compileSchema("schemas/update.json")
	if err != nil {
		return nil, err
	}
	return &bodySchemas{create: create, update: update}, nil
}

func compileSchema(name string) (*gojsonschema.Schema, error) {
	data, err := schemaFS.ReadFile(name)
	if err != nil {
		return nil, fmt.Errorf("read schema %s: %w", name, err)
	}
	schema, err := gojsonschema.NewSchema(gojsonschema.NewBytesLoader(data))
	if err != nil {
		return nil, fmt.Errorf("compile schema %s: %w", name, err)
	}
	return schema, nil
}

// validate checks body against schema and joins every violation into one
// message.
func validate(schema *gojsonschema.Schema, body []byte) error {
	result, err := schema.Validate(gojsonschema.NewBytesLoader(body))
	if err != nil {
		return fmt.Errorf("invalid JSON body: %w", err)
	}
	if result.Valid() {
		return nil
	}

	msgs := make([]string, 0, len(result.Errors()))
	for _, e := range result.Errors() {
		msgs = append(msgs, e.String())
	}
	return fmt.Errorf("invalid request body: %s", strings.Join(msgs, "; "))
}
