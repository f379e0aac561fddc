package netlist

// ComponentRow is one line of the components preview table.
type ComponentRow struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Type     string `json:"type"`
	PinCount int    `json:"pinCount"`
}

// NetRow is one line of the nets preview table.
type NetRow struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	ConnectionCount int    `json:"connectionCount"`
}

// Preview is a read-only projection of a validated netlist for display. It is
// never fed back into validation.
type Preview struct {
	ComponentRows  []ComponentRow `json:"componentRows"`
	NetRows        []NetRow       `json:"netRows"`
	ComponentCount int            `json:"componentCount"`
	NetCount       int            `json:"netCount"`
	Raw            string         `json:"raw"`
}

// BuildPreview projects v into preview tables. raw is the uploaded text and is
// carried through unchanged. Elements that are not objects, or lack fields,
// produce rows with empty cells and zero counts.
func BuildPreview(v *Valid, raw string) Preview {
	p := Preview{
		ComponentRows:  make([]ComponentRow, 0, len(v.Components)),
		NetRows:        make([]NetRow, 0, len(v.Nets)),
		ComponentCount: len(v.Components),
		NetCount:       len(v.Nets),
		Raw:            raw,
	}

	for _, c := range v.Components {
		obj, _ := c.(map[string]any)
		p.ComponentRows = append(p.ComponentRows, ComponentRow{
			ID:       displayValue(obj["id"]),
			Name:     displayValue(obj["name"]),
			Type:     displayValue(obj["type"]),
			PinCount: LengthOrZero(obj["pins"]),
		})
	}

	for _, n := range v.Nets {
		obj, _ := n.(map[string]any)
		p.NetRows = append(p.NetRows, NetRow{
			ID:              displayValue(obj["id"]),
			Name:            displayValue(obj["name"]),
			ConnectionCount: LengthOrZero(obj["connections"]),
		})
	}

	return p
}
