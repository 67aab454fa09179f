package asnast

import (
	"encoding/json"
	"fmt"
)

// wireNode is the over-the-wire JSON shape of a [Node]: a discriminated
// union keyed by Kind. It exists because Node is a closed interface with no
// Go-native JSON representation of its own; callers that need to read a
// spec from disk (see cmd/asn1grammar) go through [DecodeSpec] instead of
// unmarshaling into Node directly.
type wireNode struct {
	Kind    string      `json:"kind"`
	Tag     []byte      `json:"tag,omitempty"`
	Name    string      `json:"name,omitempty"`
	Members []wireMember `json:"members,omitempty"`
	Element *wireNode   `json:"element,omitempty"`
	Inner   *wireNode   `json:"inner,omitempty"`
}

type wireMember struct {
	Name string   `json:"name"`
	Type wireNode `json:"type"`
}

type wireTypeDecl struct {
	Type wireNode `json:"type"`
}

type wireModule struct {
	Types map[string]wireTypeDecl `json:"types"`
}

type wireSpec struct {
	Modules map[string]wireModule `json:"modules"`
}

func (n wireNode) tagged() taggable {
	if len(n.Tag) == 0 {
		return taggable{}
	}
	return taggable{Tag: n.Tag, TagLen: len(n.Tag)}
}

func (n wireNode) toNode() (Node, error) {
	switch n.Kind {
	case "boolean":
		return Boolean{taggable: n.tagged()}, nil
	case "null":
		return Null{taggable: n.tagged()}, nil
	case "integer":
		return Integer{taggable: n.tagged()}, nil
	case "object-identifier":
		return ObjectIdentifier{taggable: n.tagged()}, nil
	case "bit-string":
		return BitString{taggable: n.tagged()}, nil
	case "octet-string":
		return OctetString{taggable: n.tagged()}, nil
	case "printable-string":
		return PrintableString{taggable: n.tagged()}, nil
	case "ia5-string":
		return IA5String{taggable: n.tagged()}, nil
	case "sequence":
		members, err := n.members()
		if err != nil {
			return nil, err
		}
		return Sequence{taggable: n.tagged(), Name: n.Name, RootMembers: members}, nil
	case "choice":
		members, err := n.members()
		if err != nil {
			return nil, err
		}
		return Choice{taggable: n.tagged(), Name: n.Name, Members: members}, nil
	case "sequence-of":
		if n.Element == nil {
			return nil, fmt.Errorf("asnast: sequence-of node %q missing element", n.Name)
		}
		elem, err := n.Element.toNode()
		if err != nil {
			return nil, err
		}
		return SequenceOf{taggable: n.tagged(), Name: n.Name, ElementType: elem}, nil
	case "explicit-tag":
		if n.Inner == nil {
			return nil, fmt.Errorf("asnast: explicit-tag node missing inner")
		}
		if len(n.Tag) != 1 {
			return nil, fmt.Errorf("asnast: explicit-tag node needs exactly one tag octet, got %d", len(n.Tag))
		}
		inner, err := n.Inner.toNode()
		if err != nil {
			return nil, err
		}
		return ExplicitTag{Inner: inner, Tag: n.Tag[0]}, nil
	default:
		return nil, fmt.Errorf("asnast: unknown node kind %q", n.Kind)
	}
}

func (n wireNode) members() ([]Member, error) {
	out := make([]Member, len(n.Members))
	for i, m := range n.Members {
		t, err := m.Type.toNode()
		if err != nil {
			return nil, err
		}
		out[i] = Member{Name: m.Name, Type: t}
	}
	return out, nil
}

// DecodeSpec parses data as the JSON wire format accepted by the
// asn1grammar CLI and returns the corresponding Spec.
func DecodeSpec(data []byte) (Spec, error) {
	var ws wireSpec
	if err := json.Unmarshal(data, &ws); err != nil {
		return Spec{}, fmt.Errorf("asnast: decoding spec: %w", err)
	}
	spec := Spec{Modules: make(map[string]Module, len(ws.Modules))}
	for modName, wm := range ws.Modules {
		mod := Module{Types: make(map[string]TypeDecl, len(wm.Types))}
		for typeName, wt := range wm.Types {
			node, err := wt.Type.toNode()
			if err != nil {
				return Spec{}, fmt.Errorf("asnast: module %s, type %s: %w", modName, typeName, err)
			}
			mod.Types[typeName] = TypeDecl{Type: node}
		}
		spec.Modules[modName] = mod
	}
	return spec, nil
}
