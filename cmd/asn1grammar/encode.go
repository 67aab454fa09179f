package main

import "github.com/asn1msg/asn1grammar/model"

// encodeType renders a target-model [model.Type] into a JSON-friendly
// generic value. It exists in the CLI rather than the model package because
// the target model is a minimal stand-in for a real downstream
// proof/validation engine, not a wire format of its own.
func encodeType(t model.Type) map[string]any {
	switch v := t.(type) {
	case model.Opaque:
		return map[string]any{"kind": "opaque"}
	case model.RangeInteger:
		return map[string]any{
			"kind": "range-integer", "id": v.ID,
			"first": v.First, "last": v.Last, "sizeBits": v.SizeBits,
		}
	case model.Enumeration:
		literals := make([]map[string]any, len(v.Literals))
		for i, l := range v.Literals {
			literals[i] = map[string]any{"name": l.Name, "value": l.Value}
		}
		return map[string]any{
			"kind": "enumeration", "id": v.ID,
			"literals": literals, "sizeBits": v.SizeBits, "alwaysValid": v.AlwaysValid,
		}
	case model.SequenceType:
		return map[string]any{"kind": "sequence-type", "id": v.ID, "element": encodeType(v.Element)}
	case *model.Message:
		fields := make([]map[string]any, len(v.Fields))
		for i, f := range v.Fields {
			entry := map[string]any{"name": f.Name, "type": encodeType(f.Type)}
			if f.Size != nil {
				entry["size"] = f.Size.String()
			}
			fields[i] = entry
		}
		links := make([]map[string]any, len(v.Links))
		for i, l := range v.Links {
			entry := map[string]any{"from": l.From, "to": l.To}
			if l.Condition != nil {
				entry["condition"] = l.Condition.String()
			}
			links[i] = entry
		}
		return map[string]any{"kind": "message", "id": v.ID, "fields": fields, "links": links}
	default:
		return map[string]any{"kind": "unknown", "name": t.TypeName()}
	}
}
