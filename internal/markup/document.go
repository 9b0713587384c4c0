package markup

import (
	"encoding/json"
	"fmt"
)

// Document is an ordered sequence of markups, the unit of serialization for
// the interchange format.
type Document struct {
	Markups []*Markup `json:"markups"`
}

// wireFile is the serialized document shape. The "@schema" key is injected
// by the encoder on every serialization and ignored on decode; it is not
// part of the in-memory model.
type wireFile struct {
	Schema  string    `json:"@schema"`
	Markups []*Markup `json:"markups"`
}

// Encode serializes the document with 2-space indentation and the schema
// identifier injected at the top level.
func (d *Document) Encode() ([]byte, error) {
	markups := d.Markups
	if markups == nil {
		markups = []*Markup{}
	}
	out, err := json.MarshalIndent(wireFile{Schema: SchemaURL, Markups: markups}, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode markup document: %w", err)
	}
	return out, nil
}

// Replace swaps the markup list wholesale. Rebuilds are idempotent: callers
// replace rather than append across calls.
func (d *Document) Replace(markups []*Markup) {
	d.Markups = markups
}
