package asn1grammar

import "github.com/asn1msg/asn1grammar/model"

// FieldSpec names a record field together with the BerType whose TLV
// materialization becomes that field's target-model type.
type FieldSpec struct {
	Name string
	Type BerType
}

// FlatVariant is a single flattened CHOICE alternative: a name (composite
// when the alternative came from a nested CHOICE), the BER tag that selects
// it, and its LV-materialized body.
type FlatVariant struct {
	Name string
	Tag  Tag
	Body model.Type
}

// SimpleMessage builds the straight-line target-model message Initial -> f1
// -> f2 -> ... -> fn -> Final, where each field's type is fields[i].Type's
// TLV materialization, then runs it through the finalizer.
func SimpleMessage(id string, fields []FieldSpec, skipProof bool) (model.Type, error) {
	modelFields := make([]model.Field, len(fields))
	links := make([]model.Link, 0, len(fields)+1)
	prev := model.Initial
	for i, f := range fields {
		tlv, err := f.Type.TlvTy(skipProof)
		if err != nil {
			return nil, err
		}
		modelFields[i] = model.Field{Name: f.Name, Type: tlv}
		links = append(links, model.Link{From: prev, To: f.Name})
		prev = f.Name
	}
	links = append(links, model.Link{From: prev, To: model.Final})
	return finalizeMessage(model.NewMessage(id, modelFields, links), id, skipProof)
}

// TaggedUnionMessage builds the target-model message for a flattened CHOICE:
// a leading Tag field, one guarded link per variant selecting its body, and
// a fallback link straight to Final when no variant's tag matches.
func TaggedUnionMessage(id string, variants []FlatVariant, skipProof bool) (model.Type, error) {
	fields := make([]model.Field, 0, len(variants)+1)
	links := make([]model.Link, 0, 2*len(variants)+2)
	fields = append(fields, model.Field{Name: "Tag", Type: preludeTag})
	links = append(links, model.Link{From: model.Initial, To: "Tag"})

	guards := make([]model.Guard, 0, len(variants))
	for _, v := range variants {
		fields = append(fields, model.Field{Name: v.Name, Type: v.Body})
		g := v.Tag.Matches("Tag")
		guards = append(guards, g)
		links = append(links, model.Link{From: "Tag", To: v.Name, Condition: g})
		links = append(links, model.Link{From: v.Name, To: model.Final})
	}
	links = append(links, model.Link{From: "Tag", To: model.Final, Condition: model.NotAll(guards...)})

	return finalizeMessage(model.NewMessage(id, fields, links), id, skipProof)
}
