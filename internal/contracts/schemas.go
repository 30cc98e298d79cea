package contracts

import (
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"log"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const (
	ListingSearchPerformedEvent = "ListingSearchPerformedEvent"
	ApplyFiltersRequest         = "ApplyFiltersRequest"
	Version1                    = "1.0.0"
)

//go:embed schemas
var schemasFS embed.FS

// kindSuffixes - корневые папки схем и суффикс ключа для каждой
var kindSuffixes = map[string]string{
	"events":   "Event",
	"requests": "Request",
}

var compiledSchemas map[string]*jsonschema.Schema

func init() {
	var err error
	compiledSchemas, err = compileSchemas(schemasFS, "schemas")
	if err != nil {
		log.Fatalf("failed to compile embedded json schemas: %v", err)
	}
}

func compileSchemas(fsys fs.FS, root string) (map[string]*jsonschema.Schema, error) {
	compiler := jsonschema.NewCompiler()
	compiler.AssertFormat = true

	var paths []string
	err := fs.WalkDir(fsys, root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(path, ".json") {
			return nil
		}
		file, err := fsys.Open(path)
		if err != nil {
			return err
		}
		defer file.Close()
		if err := compiler.AddResource(path, file); err != nil {
			return fmt.Errorf("add schema resource %s: %w", path, err)
		}
		paths = append(paths, path)
		return nil
	})
	if err != nil {
		return nil, err
	}

	out := make(map[string]*jsonschema.Schema, len(paths))
	for _, path := range paths {
		key := generateKeyFromPath(strings.TrimPrefix(path, root+"/"))
		if key == "" {
			return nil, fmt.Errorf("schema path %s does not match <kind>/<name>/v<N>.json", path)
		}
		schema, err := compiler.Compile(path)
		if err != nil {
			return nil, fmt.Errorf("compile schema %s: %w", path, err)
		}
		out[key] = schema
	}
	return out, nil
}

// generateKeyFromPath: "events/listing-search-performed/v1.json" -> "ListingSearchPerformedEvent/1.0.0"
func generateKeyFromPath(path string) string {
	parts := strings.Split(strings.TrimSuffix(path, ".json"), "/")
	if len(parts) != 3 {
		return ""
	}
	suffix, ok := kindSuffixes[parts[0]]
	if !ok || !strings.HasPrefix(parts[2], "v") {
		return ""
	}

	caser := cases.Title(language.English)
	var name strings.Builder
	for _, p := range strings.Split(parts[1], "-") {
		name.WriteString(caser.String(p))
	}
	name.WriteString(suffix)

	version := strings.TrimPrefix(parts[2], "v") + ".0.0"
	return name.String() + "/" + version
}

// Validate проверяет JSON по схеме name/version
func Validate(name, version string, body []byte) error {
	schema, ok := compiledSchemas[name+"/"+version]
	if !ok {
		return fmt.Errorf("schema '%s' version '%s' not found", name, version)
	}

	var v interface{}
	if err := json.Unmarshal(body, &v); err != nil {
		return fmt.Errorf("body is not a valid JSON: %w", err)
	}
	if err := schema.Validate(v); err != nil {
		return fmt.Errorf("JSON schema validation failed: %w", err)
	}
	return nil
}

// ValidateEvent - проверка тела события перед публикацией
func ValidateEvent(eventType, eventVersion string, body []byte) error {
	return Validate(eventType, eventVersion, body)
}
