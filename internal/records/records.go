// Package records loads the data rows used to fill a template.
package records

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"

	godocx "github.com/Navl-bm/go-docx-tables"
)

//go:embed schema.json
var schemaSource string

var schema = jsonschema.MustCompileString("records.json", schemaSource)

// Dataset is a list of records together with the placeholder tokens they
// fill. Placeholders come from the data file when it names them, otherwise
// from the record keys in order of first appearance.
type Dataset struct {
	Placeholders []string
	Records      []godocx.Record
}

// Options tune how a data file is read.
type Options struct {
	// Sheet selects the worksheet of an .xlsx file. Empty means the first.
	Sheet string
}

// Load reads a dataset from a .yaml, .yml, .json or .xlsx file.
func Load(path string, opts Options) (*Dataset, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml", ".json":
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read data file: %w", err)
		}
		ds, err := Parse(data)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		return ds, nil
	case ".xlsx":
		return LoadXLSX(path, opts.Sheet)
	default:
		return nil, fmt.Errorf("unsupported data file %q", path)
	}
}

// Parse reads a YAML or JSON document holding either a list of records or an
// object with "records" and optional "placeholders".
func Parse(data []byte) (*Dataset, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("parse data: %w", err)
	}
	if len(root.Content) == 0 {
		return nil, errors.New("data file is empty")
	}

	var raw any
	if err := root.Decode(&raw); err != nil {
		return nil, fmt.Errorf("decode data: %w", err)
	}
	if err := validate(raw); err != nil {
		return nil, err
	}

	top := resolve(root.Content[0])
	recordsNode := top
	var placeholders []string
	if top.Kind == yaml.MappingNode {
		recordsNode = nil
		for i := 0; i+1 < len(top.Content); i += 2 {
			value := resolve(top.Content[i+1])
			switch top.Content[i].Value {
			case "records":
				recordsNode = value
			case "placeholders":
				for _, item := range value.Content {
					placeholders = append(placeholders, resolve(item).Value)
				}
			}
		}
	}

	ds := &Dataset{Placeholders: placeholders}
	var keys []string
	for i, item := range recordsNode.Content {
		record, order, err := decodeRecord(resolve(item))
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
		ds.Records = append(ds.Records, record)
		keys = appendNew(keys, order...)
	}
	if len(ds.Placeholders) == 0 {
		ds.Placeholders = keys
	}
	return ds, nil
}

// decodeRecord converts a mapping node into a record, returning its keys in
// document order. Scalars keep their literal text; null becomes empty.
func decodeRecord(node *yaml.Node) (godocx.Record, []string, error) {
	record := make(godocx.Record, len(node.Content)/2)
	order := make([]string, 0, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		key := node.Content[i].Value
		value := resolve(node.Content[i+1])
		if value.Kind != yaml.ScalarNode {
			return nil, nil, fmt.Errorf("value of %q is not a scalar", key)
		}
		if value.Tag == "!!null" {
			record[key] = ""
		} else {
			record[key] = value.Value
		}
		order = append(order, key)
	}
	return record, order, nil
}

func resolve(node *yaml.Node) *yaml.Node {
	for node.Kind == yaml.AliasNode && node.Alias != nil {
		node = node.Alias
	}
	return node
}

// validate checks a decoded document against the records schema. The value is
// round-tripped through JSON so that only JSON types reach the validator.
func validate(raw any) error {
	data, err := json.Marshal(raw)
	if err != nil {
		return fmt.Errorf("encode data: %w", err)
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var doc any
	if err := dec.Decode(&doc); err != nil {
		return fmt.Errorf("decode data: %w", err)
	}
	if err := schema.Validate(doc); err != nil {
		return fmt.Errorf("data does not match schema: %w", err)
	}
	return nil
}

func appendNew(list []string, items ...string) []string {
	for _, item := range items {
		seen := false
		for _, existing := range list {
			if existing == item {
				seen = true
				break
			}
		}
		if !seen {
			list = append(list, item)
		}
	}
	return list
}
