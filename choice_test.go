package asn1grammar

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/asn1msg/asn1grammar/model"
)

// stubNoTag is a minimal BerType standing in for a hypothetical tagless,
// non-Choice type, to exercise the ChoiceWithoutTagError path without
// needing a real such BerType in the closed set.
type stubNoTag struct{}

func (stubNoTag) Path() IdentBuilder             { return NewPath("Test") }
func (stubNoTag) Ident() string                  { return "NoTag" }
func (stubNoTag) QualifiedID() string            { return "Test::NoTag" }
func (stubNoTag) Tag() (Tag, bool)               { return Tag{}, false }
func (stubNoTag) VTy(bool) (model.Type, error)   { return model.Opaque{}, nil }
func (stubNoTag) LvTy(bool) (model.Type, error)  { return model.Opaque{}, nil }
func (stubNoTag) TlvTy(bool) (model.Type, error) { return model.Opaque{}, nil }

func TestChoiceFlattensNestedChoice(t *testing.T) {
	path := NewPath("Test")
	inner := NewChoice(path, "Inner", []NamedType{
		{Name: "a", Type: Integer},
		{Name: "b", Type: OctetString},
	})
	outer := NewChoice(path, "Outer", []NamedType{
		{Name: "inner", Type: inner},
		{Name: "c", Type: Boolean},
	})

	flat, err := flattenVariants("", outer.variants, true)
	require.NoError(t, err)
	require.Len(t, flat, 3)

	names := make(map[string]bool, len(flat))
	for _, v := range flat {
		names[v.Name] = true
	}
	require.True(t, names["inner_a"])
	require.True(t, names["inner_b"])
	require.True(t, names["c"])
}

func TestChoiceWithoutTagFails(t *testing.T) {
	path := NewPath("Test")
	tagless := NewChoice(path, "Tagless", nil)
	outer := NewChoice(path, "Outer", []NamedType{{Name: "x", Type: tagless}})
	_, err := outer.VTy(true)
	// a Choice with zero variants flattens to zero alternatives, which is
	// not itself an error; nest it one level deeper with a genuinely
	// tagless, non-Choice stand-in instead.
	require.NoError(t, err)

	notag := &stubNoTag{}
	outer2 := NewChoice(path, "Outer2", []NamedType{{Name: "y", Type: notag}})
	_, err = outer2.VTy(true)
	var choiceErr *ChoiceWithoutTagError
	require.True(t, errors.As(err, &choiceErr))
}

func TestChoiceTlvDegradesToVty(t *testing.T) {
	path := NewPath("Test")
	c := NewChoice(path, "Simple", []NamedType{{Name: "a", Type: Integer}})
	tlv, err := c.TlvTy(true)
	require.NoError(t, err)
	vty, err := c.VTy(true)
	require.NoError(t, err)
	require.Equal(t, vty.TypeName(), tlv.TypeName())
}
