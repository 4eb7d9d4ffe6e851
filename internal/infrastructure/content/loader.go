package content

import (
	"bytes"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"skrillax-agent/internal/worlddata"
	"skrillax-agent/pkg/logger"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"github.com/sirupsen/logrus"
)

//go:embed schemas/*.schema.json
var schemaFS embed.FS

// Файлы архива контента. Отсутствующий необязательный файл дает пустую таблицу.
var archiveFiles = []struct {
	name     string
	required bool
}{
	{"levels", true},
	{"gold", false},
	{"characters", false},
	{"items", false},
	{"skills", false},
	{"masteries", false},
	{"teleports", false},
}

// DirLoader читает распакованный архив контента из каталога
type DirLoader struct {
	Dir string
}

func NewDirLoader(dir string) *DirLoader {
	return &DirLoader{Dir: dir}
}

// LoadTables реализует worlddata.Loader. Каждый файл проверяется по встроенной схеме.
func (l *DirLoader) LoadTables() (*worlddata.Tables, error) {
	schemas, err := compileSchemas()
	if err != nil {
		return nil, err
	}

	var static worlddata.StaticLoader
	targets := map[string]any{
		"levels":     &static.Levels,
		"gold":       &static.Gold,
		"characters": &static.Characters,
		"items":      &static.Items,
		"skills":     &static.Skills,
		"masteries":  &static.Masteries,
		"teleports":  &static.Teleports,
	}

	log := logger.Component("content_loader")
	for _, f := range archiveFiles {
		path := filepath.Join(l.Dir, f.name+".json")
		data, err := os.ReadFile(path)
		if errors.Is(err, os.ErrNotExist) && !f.required {
			log.WithField("file", path).Warn("Content file missing, table stays empty")
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", path, err)
		}
		if err := decodeValidated(schemas[f.name], data, targets[f.name]); err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
	}

	tables, err := static.LoadTables()
	if err != nil {
		return nil, err
	}
	log.WithFields(logrus.Fields{
		"dir":        l.Dir,
		"characters": tables.Characters.Len(),
		"skills":     tables.Skills.Len(),
		"levels":     tables.Levels.Len(),
	}).Info("Content archive loaded")
	return tables, nil
}

func decodeValidated(schema *jsonschema.Schema, data []byte, dst any) error {
	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("parse: %w", err)
	}
	if err := schema.Validate(doc); err != nil {
		return fmt.Errorf("schema: %w", err)
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return fmt.Errorf("decode: %w", err)
	}
	return nil
}

func compileSchemas() (map[string]*jsonschema.Schema, error) {
	compiler := jsonschema.NewCompiler()
	out := make(map[string]*jsonschema.Schema, len(archiveFiles))
	for _, f := range archiveFiles {
		name := f.name + ".schema.json"
		raw, err := schemaFS.ReadFile("schemas/" + name)
		if err != nil {
			return nil, fmt.Errorf("embedded schema %s: %w", name, err)
		}
		if err := compiler.AddResource(name, bytes.NewReader(raw)); err != nil {
			return nil, fmt.Errorf("add schema %s: %w", name, err)
		}
		s, err := compiler.Compile(name)
		if err != nil {
			return nil, fmt.Errorf("compile schema %s: %w", name, err)
		}
		out[f.name] = s
	}
	return out, nil
}
