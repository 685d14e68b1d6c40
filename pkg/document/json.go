package document

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
)

type jsonElement struct {
	Name     string         `json:"name"`
	Attrs    []Attr         `json:"attrs,omitempty"`
	Children []*jsonElement `json:"children,omitempty"`
}

func toJSON(e *Element) *jsonElement {
	out := &jsonElement{Name: e.Name, Attrs: e.Attrs}
	for _, c := range e.Children {
		out.Children = append(out.Children, toJSON(c))
	}
	return out
}

func fromJSON(j *jsonElement) *Element {
	e := &Element{Name: j.Name, Attrs: j.Attrs}
	for _, c := range j.Children {
		e.Children = append(e.Children, fromJSON(c))
	}
	return e
}

// WriteJSON encodes d as nested JSON objects and writes it to w.
// Attributes are kept as an ordered list so the output mirrors the XML form.
func WriteJSON(w io.Writer, d *Document) error {
	var root *jsonElement
	if d.Root != nil {
		root = toJSON(d.Root)
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(root); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ReadJSON decodes a document previously written with [WriteJSON].
func ReadJSON(r io.Reader) (*Document, error) {
	var root *jsonElement
	if err := json.NewDecoder(r).Decode(&root); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	if root == nil {
		return &Document{}, nil
	}
	return &Document{Root: fromJSON(root)}, nil
}

// WriteJSONFile writes d to path as JSON.
func WriteJSONFile(d *Document, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return WriteJSON(f, d)
}
