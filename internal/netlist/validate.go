package netlist

import "encoding/json"

// Valid is a document that passed ValidateStructure. Components and Nets are
// the decoded arrays; their elements are never inspected or modified.
type Valid struct {
	doc        *Document
	Components []any
	Nets       []any
}

// ValidateStructure checks the minimum netlist shape. The checks run in a
// fixed order and stop at the first failure:
//
//  1. the document is present and not null (ErrMissingDocument)
//  2. components is an array (ErrMissingComponentsArray)
//  3. nets is an array (ErrMissingNetsArray)
//
// A document missing both arrays always reports ErrMissingComponentsArray.
func ValidateStructure(doc *Document) (*Valid, error) {
	if doc.IsNull() {
		return nil, ErrMissingDocument
	}

	v, _ := doc.Field("components")
	components, ok := v.([]any)
	if !ok {
		return nil, ErrMissingComponentsArray
	}

	v, _ = doc.Field("nets")
	nets, ok := v.([]any)
	if !ok {
		return nil, ErrMissingNetsArray
	}

	return &Valid{doc: doc, Components: components, Nets: nets}, nil
}

// Payload is the create-request body for a netlist record.
type Payload struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Components  json.RawMessage `json:"components"`
	Nets        json.RawMessage `json:"nets"`
}

// Payload combines user metadata with the components and nets exactly as they
// appeared in the uploaded text.
func (v *Valid) Payload(name, description string) Payload {
	return Payload{
		Name:        name,
		Description: description,
		Components:  v.doc.Raw("components"),
		Nets:        v.doc.Raw("nets"),
	}
}
