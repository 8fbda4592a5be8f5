// SPDX-License-Identifier: MPL-2.0

package output

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Render writes doc to w in format f.
func Render(w io.Writer, doc Document, f Format) error {
	var (
		data []byte
		err  error
	)
	switch f {
	case FormatJSON, "":
		data, err = renderJSON(doc)
	case FormatYAML:
		data, err = renderYAML(doc)
	case FormatTOML:
		data, err = renderTOML(doc)
	default:
		return &InvalidFormatError{Value: f}
	}
	if err != nil {
		return fmt.Errorf("render %s: %w", f, err)
	}
	_, err = w.Write(data)
	return err
}

// renderJSON writes the object key by key so the document order survives.
func renderJSON(doc Document) ([]byte, error) {
	if len(doc) == 0 {
		return []byte("{}\n"), nil
	}

	var buf bytes.Buffer
	buf.WriteString("{\n")
	for i, e := range doc {
		key, err := json.Marshal(e.Key)
		if err != nil {
			return nil, err
		}
		value, err := json.MarshalIndent(e.Value, "  ", "  ")
		if err != nil {
			return nil, fmt.Errorf("key %s: %w", e.Key, err)
		}
		buf.WriteString("  ")
		buf.Write(key)
		buf.WriteString(": ")
		buf.Write(value)
		if i < len(doc)-1 {
			buf.WriteByte(',')
		}
		buf.WriteByte('\n')
	}
	buf.WriteString("}\n")
	return buf.Bytes(), nil
}

// renderYAML builds a mapping node so the document order survives.
func renderYAML(doc Document) ([]byte, error) {
	root := &yaml.Node{Kind: yaml.MappingNode}
	for _, e := range doc {
		var value yaml.Node
		if err := value.Encode(e.Value); err != nil {
			return nil, fmt.Errorf("key %s: %w", e.Key, err)
		}
		root.Content = append(root.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: e.Key},
			&value,
		)
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(root); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// renderTOML encodes doc as a table. TOML has no null, so nil values are skipped.
func renderTOML(doc Document) ([]byte, error) {
	table := make(map[string]any, len(doc))
	for _, e := range doc {
		if e.Value == nil {
			continue
		}
		table[e.Key] = e.Value
	}
	return toml.Marshal(table)
}
