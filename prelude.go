package asn1grammar

import "github.com/asn1msg/asn1grammar/model"

// preludePath is the reserved namespace for the built-in grammar primitives
// defined in this file. User specs must not declare a top-level module
// named "Prelude"; the Compiler rejects one (see compiler.go).
var preludePath = NewPath("Prelude")

// preludeLength is the target-model type of a BER short-form length octet:
// an unsigned range 0..127 occupying one byte. Long-form lengths are out of
// scope.
var preludeLength = model.RangeInteger{ID: preludePath.Qualified("Length"), First: 0, Last: 127, SizeBits: 8}

// preludeTag is the target-model type of a one-octet BER identifier,
// decomposed into the Class/Form/Num subfields that [Tag.Matches]
// addresses by the "<field>_Class" / "<field>_Form" / "<field>_Num"
// naming convention.
var preludeTag = model.NewMessage(preludePath.Qualified("Tag"), []model.Field{
	{Name: "Class", Type: model.RangeInteger{ID: preludePath.Qualified("Tag_Class"), First: 0, Last: 3, SizeBits: 2}},
	{Name: "Form", Type: model.RangeInteger{ID: preludePath.Qualified("Tag_Form"), First: 0, Last: 1, SizeBits: 1}},
	{Name: "Num", Type: model.RangeInteger{ID: preludePath.Qualified("Tag_Num"), First: 0, Last: 30, SizeBits: 5}},
}, []model.Link{
	{From: model.Initial, To: "Class"},
	{From: "Class", To: "Form"},
	{From: "Form", To: "Num"},
	{From: "Num", To: model.Final},
})

// preludeRawBoolean is BOOLEAN's value-layer type: the two BER-canonical
// octet encodings, 0x00 (FALSE) and 0xFF (TRUE).
var preludeRawBoolean = model.Enumeration{
	ID: preludePath.Qualified("Raw_Boolean"),
	Literals: []model.Literal{
		{Name: "FALSE", Value: 0x00},
		{Name: "TRUE", Value: 0xFF},
	},
	SizeBits: 8,
}

// preludeRawNull is NULL's value-layer type: zero-width, since a NULL
// value always has an empty content octet string.
var preludeRawNull = model.RangeInteger{ID: preludePath.Qualified("Raw_Null"), First: 0, Last: 0, SizeBits: 0}

func init() {
	mustFinalizePrelude(preludeTag)
}

func mustFinalizePrelude(msg *model.Message) {
	if err := msg.Finalize(false); err != nil {
		panic("asn1grammar: prelude grammar is malformed: " + err.Error())
	}
}

// The eight universal BER primitives named in X.680: BOOLEAN=1, INTEGER=2,
// BIT STRING=3, OCTET STRING=4, NULL=5, OBJECT IDENTIFIER=6,
// PrintableString=19, IA5String=22.
var (
	Boolean = NewDefinite(preludePath, "BOOLEAN",
		Tag{Class: ClassUniversal, Form: FormPrimitive, Number: 1}, preludeRawBoolean)
	Integer = NewSimple(preludePath, "INTEGER",
		Tag{Class: ClassUniversal, Form: FormPrimitive, Number: 2})
	BitString = NewSimple(preludePath, "BIT_STRING",
		Tag{Class: ClassUniversal, Form: FormPrimitive, Number: 3})
	OctetString = NewSimple(preludePath, "OCTET_STRING",
		Tag{Class: ClassUniversal, Form: FormPrimitive, Number: 4})
	Null = NewDefinite(preludePath, "NULL",
		Tag{Class: ClassUniversal, Form: FormPrimitive, Number: 5}, preludeRawNull)
	ObjectIdentifier = NewSimple(preludePath, "OBJECT_IDENTIFIER",
		Tag{Class: ClassUniversal, Form: FormPrimitive, Number: 6})
	PrintableString = NewSimple(preludePath, "PrintableString",
		Tag{Class: ClassUniversal, Form: FormPrimitive, Number: 19})
	IA5String = NewSimple(preludePath, "IA5String",
		Tag{Class: ClassUniversal, Form: FormPrimitive, Number: 22})
)
