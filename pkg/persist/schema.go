package persist

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed tasks.schema.json
var schemaJSON []byte

const schemaURL = "tasks.schema.json"

// Issue is one problem found in the task file
type Issue struct {
	Path    string
	Message string
}

func (i Issue) String() string {
	if i.Path == "" {
		return i.Message
	}
	return i.Path + ": " + i.Message
}

// Checker is implemented by persistors that can inspect their stored state
// without repairing it.
type Checker interface {
	Check() ([]Issue, error)
}

var _ Checker = &JSON{}

// Check validates the task file against the embedded schema and looks for
// duplicate ids. Unlike Load it never modifies anything; a missing file
// has no issues.
func (j JSON) Check() ([]Issue, error) {
	bs, err := os.ReadFile(j.file)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, &StorageError{Op: "read", Path: j.file, Err: err}
	}
	return CheckBytes(bs)
}

// CheckBytes is Check for an in-memory task file
func CheckBytes(bs []byte) ([]Issue, error) {
	dec := json.NewDecoder(bytes.NewReader(bs))
	dec.UseNumber()
	var doc interface{}
	if err := dec.Decode(&doc); err != nil {
		return []Issue{{Message: fmt.Sprintf("malformed JSON: %s", err)}}, nil
	}

	schema, err := compileSchema()
	if err != nil {
		return nil, err
	}
	var issues []Issue
	if err := schema.Validate(doc); err != nil {
		issues = appendSchemaIssues(issues, err)
	}
	return append(issues, duplicateIDs(doc)...), nil
}

func compileSchema() (*jsonschema.Schema, error) {
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(schemaURL, bytes.NewReader(schemaJSON)); err != nil {
		return nil, fmt.Errorf("load task schema: %w", err)
	}
	schema, err := compiler.Compile(schemaURL)
	if err != nil {
		return nil, fmt.Errorf("compile task schema: %w", err)
	}
	return schema, nil
}

func appendSchemaIssues(issues []Issue, err error) []Issue {
	ve, ok := err.(*jsonschema.ValidationError)
	if !ok {
		return append(issues, Issue{Message: err.Error()})
	}
	return collectSchemaIssues(issues, ve)
}

func collectSchemaIssues(issues []Issue, ve *jsonschema.ValidationError) []Issue {
	if len(ve.Causes) == 0 {
		return append(issues, Issue{
			Path:    jsonPointerToPath(ve.InstanceLocation),
			Message: ve.Message,
		})
	}
	for _, cause := range ve.Causes {
		issues = collectSchemaIssues(issues, cause)
	}
	return issues
}

// duplicateIDs reports every id used by more than one task
func duplicateIDs(doc interface{}) []Issue {
	items, ok := doc.([]interface{})
	if !ok {
		return nil
	}
	first := map[string]int{}
	var issues []Issue
	for i, item := range items {
		obj, ok := item.(map[string]interface{})
		if !ok {
			continue
		}
		id, ok := obj["id"].(json.Number)
		if !ok {
			continue
		}
		if j, dup := first[id.String()]; dup {
			issues = append(issues, Issue{
				Path:    fmt.Sprintf("[%d].id", i),
				Message: fmt.Sprintf("duplicate id %s, first used at [%d]", id, j),
			})
			continue
		}
		first[id.String()] = i
	}
	return issues
}

func jsonPointerToPath(ptr string) string {
	ptr = strings.TrimPrefix(ptr, "#")
	ptr = strings.TrimPrefix(ptr, "/")
	if ptr == "" {
		return ""
	}
	path := ""
	for _, part := range strings.Split(ptr, "/") {
		part = strings.ReplaceAll(part, "~1", "/")
		part = strings.ReplaceAll(part, "~0", "~")
		if part == "" {
			continue
		}
		if idx, err := strconv.Atoi(part); err == nil {
			path += fmt.Sprintf("[%d]", idx)
			continue
		}
		if path == "" {
			path = part
		} else {
			path += "." + part
		}
	}
	return path
}
