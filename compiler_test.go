package asn1grammar

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/asn1msg/asn1grammar/asnast"
	"github.com/asn1msg/asn1grammar/model"
)

// snmpPDUFields builds the common body shared by every SNMPv1 PDU kind:
// request-id INTEGER, error-status INTEGER, error-index INTEGER,
// variable-bindings SEQUENCE OF VarBind, VarBind ::= SEQUENCE { name OBJECT
// IDENTIFIER, value INTEGER }.
func snmpPDUFields() []asnast.Member {
	varBind := asnast.Sequence{
		Name: "VarBind",
		RootMembers: []asnast.Member{
			{Name: "name", Type: asnast.ObjectIdentifier{}},
			{Name: "value", Type: asnast.Integer{}},
		},
	}
	return []asnast.Member{
		{Name: "request-id", Type: asnast.Integer{}},
		{Name: "error-status", Type: asnast.Integer{}},
		{Name: "error-index", Type: asnast.Integer{}},
		{Name: "variable-bindings", Type: asnast.SequenceOf{Name: "variable-bindings", ElementType: varBind}},
	}
}

// buildSNMPv1GetResponseSpec builds a trimmed RFC 1157 Message fixture:
// Message ::= SEQUENCE { version INTEGER, community OCTET STRING, data
// PDUs }, PDUs ::= CHOICE { get-request [0] IMPLICIT PDU, get-response [2]
// IMPLICIT PDU }, PDU ::= SEQUENCE { request-id INTEGER, error-status
// INTEGER, error-index INTEGER, variable-bindings SEQUENCE OF VarBind }.
func buildSNMPv1GetResponseSpec() asnast.Spec {
	// context-specific tag numbers 0 and 2, both implicit. The form bit in
	// each octet is irrelevant: Implicit always inherits form from the
	// base type (SEQUENCE is always constructed), not from the encoded
	// override octet.
	getRequest := asnast.Tagged(asnast.Sequence{Name: "GetRequest-PDU", RootMembers: snmpPDUFields()}, 0xA0)
	getResponse := asnast.Tagged(asnast.Sequence{Name: "GetResponse-PDU", RootMembers: snmpPDUFields()}, 0xA2)

	data := asnast.Choice{
		Name: "PDUs",
		Members: []asnast.Member{
			{Name: "get-request", Type: getRequest},
			{Name: "get-response", Type: getResponse},
		},
	}

	message := asnast.Sequence{
		Name: "Message",
		RootMembers: []asnast.Member{
			{Name: "version", Type: asnast.Integer{}},
			{Name: "community", Type: asnast.OctetString{}},
			{Name: "data", Type: data},
		},
	}

	return asnast.Spec{Modules: map[string]asnast.Module{
		"RFC1157": {Types: map[string]asnast.TypeDecl{
			"Message": {Type: message},
		}},
	}}
}

func fieldByName(msg *model.Message, name string) (model.Field, bool) {
	for _, f := range msg.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return model.Field{}, false
}

func guardsFrom(msg *model.Message, from string) []string {
	var out []string
	for _, l := range msg.Links {
		if l.From == from && l.Condition != nil {
			out = append(out, l.Condition.String())
		}
	}
	return out
}

func containsSubstring(haystack []string, substr string) bool {
	for _, s := range haystack {
		if strings.Contains(s, substr) {
			return true
		}
	}
	return false
}

// TestConvertSpecCompilesSNMPv1GetResponse proves out spec.md §8 scenario
// 6: it walks the compiled Message graph rather than just checking that
// compilation succeeded, confirming that the CHOICE over PDU kinds is
// flattened with a tag-selecting guard per alternative and that
// get-response's own fields are reachable underneath it.
func TestConvertSpecCompilesSNMPv1GetResponse(t *testing.T) {
	compiler := NewCompiler(Options{})
	types, err := compiler.ConvertSpec(buildSNMPv1GetResponseSpec())
	require.NoError(t, err)
	require.Len(t, types, 1)

	var qid string
	var top *model.Message
	for k, v := range types {
		qid = k
		msg, ok := v.(*model.Message)
		require.True(t, ok, "expected the compiled Message type to be a *model.Message")
		top = msg
	}
	require.Contains(t, qid, "RFC1157")
	require.Contains(t, qid, "Message")

	// top = Tag/Untagged TLV wrapper; Untagged.Value = the raw Message
	// record (version/community/data).
	untagged, ok := fieldByName(top, "Untagged")
	require.True(t, ok)
	lv, ok := untagged.Type.(*model.Message)
	require.True(t, ok)
	value, ok := fieldByName(lv, "Value")
	require.True(t, ok)
	raw, ok := value.Type.(*model.Message)
	require.True(t, ok)

	dataField, ok := fieldByName(raw, "data")
	require.True(t, ok)
	choiceMsg, ok := dataField.Type.(*model.Message)
	require.True(t, ok, "a tagless CHOICE's tlv_ty must degrade to its v_ty, the tagged-union message itself")

	require.True(t, containsSubstring(guardsFrom(choiceMsg, "Tag"), "Tag_Num = 0"), "expected a guard selecting tag number 0 for get-request")
	require.True(t, containsSubstring(guardsFrom(choiceMsg, "Tag"), "Tag_Num = 2"), "expected a guard selecting tag number 2 for get-response")

	getResponseField, ok := fieldByName(choiceMsg, "get-response")
	require.True(t, ok)
	getResponseLV, ok := getResponseField.Type.(*model.Message)
	require.True(t, ok)
	getResponseValue, ok := fieldByName(getResponseLV, "Value")
	require.True(t, ok)
	pduRaw, ok := getResponseValue.Type.(*model.Message)
	require.True(t, ok)

	for _, name := range []string{"request-id", "error-status", "error-index", "variable-bindings"} {
		_, ok := fieldByName(pduRaw, name)
		require.True(t, ok, "expected field %q in the compiled GetResponse PDU", name)
	}
}

func TestConvertSpecRejectsPreludeModuleName(t *testing.T) {
	compiler := NewCompiler(Options{})
	_, err := compiler.ConvertSpec(asnast.Spec{Modules: map[string]asnast.Module{
		"Prelude": {Types: map[string]asnast.TypeDecl{"X": {Type: asnast.Integer{}}}},
	}})
	require.Error(t, err)
}

func TestConvertRejectsUnsupportedKind(t *testing.T) {
	compiler := NewCompiler(Options{})
	_, err := compiler.Convert(unsupportedNode{}, NewPath("Test"), "X")
	var kindErr *UnsupportedAsnKindError
	require.ErrorAs(t, err, &kindErr)
}

type unsupportedNode struct{}

func (unsupportedNode) TagOverride() ([]byte, int, bool) { return nil, 0, false }
