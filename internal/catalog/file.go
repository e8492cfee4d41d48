package catalog

import (
	"context"
	_ "embed"
	"fmt"

	"github.com/spf13/viper"
	"github.com/xeipuuv/gojsonschema"
)

//go:embed schema.json
var schemaJSON string

// FileLoader reads a YAML (or JSON) catalog file and validates it against the catalog schema.
type FileLoader struct {
	Path string
}

func NewFileLoader(path string) *FileLoader {
	return &FileLoader{Path: path}
}

func (l *FileLoader) Load(_ context.Context) (Snapshot, error) {
	v := viper.New()
	v.SetConfigFile(l.Path)
	if err := v.ReadInConfig(); err != nil {
		return Snapshot{}, newLoadFailed(l.Path, err)
	}

	raw := v.AllSettings()
	if err := validateSchema(raw); err != nil {
		return Snapshot{}, err
	}

	var snap Snapshot
	if err := v.Unmarshal(&snap); err != nil {
		return Snapshot{}, newLoadFailed(l.Path, fmt.Errorf("decode catalog: %w", err))
	}
	return snap, nil
}

func validateSchema(doc map[string]interface{}) error {
	result, err := gojsonschema.Validate(
		gojsonschema.NewStringLoader(schemaJSON),
		gojsonschema.NewGoLoader(doc),
	)
	if err != nil {
		return newLoadFailed("schema", err)
	}
	if !result.Valid() {
		errs := make([]string, len(result.Errors()))
		for i, desc := range result.Errors() {
			errs[i] = desc.String()
		}
		return newInvalid(errs)
	}
	return nil
}
