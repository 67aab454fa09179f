package asn1grammar

import (
	"testing"

	"github.com/asn1msg/asn1grammar/model"
)

func TestPreludeTagNumbersMatchX680(t *testing.T) {
	cases := []struct {
		name string
		got  *Simple
		num  uint8
	}{
		{"INTEGER", Integer, 2},
		{"BIT_STRING", BitString, 3},
		{"OCTET_STRING", OctetString, 4},
		{"OBJECT_IDENTIFIER", ObjectIdentifier, 6},
		{"PrintableString", PrintableString, 19},
		{"IA5String", IA5String, 22},
	}
	for _, c := range cases {
		tag, ok := c.got.Tag()
		if !ok {
			t.Fatalf("%s: expected a tag", c.name)
		}
		if tag.Class != ClassUniversal || tag.Form != FormPrimitive || tag.Number != c.num {
			t.Fatalf("%s: got %v, want UNIVERSAL/PRIMITIVE/%d", c.name, tag, c.num)
		}
	}

	boolTag, _ := Boolean.Tag()
	if boolTag.Number != 1 {
		t.Fatalf("BOOLEAN: got tag number %d, want 1", boolTag.Number)
	}
	nullTag, _ := Null.Tag()
	if nullTag.Number != 5 {
		t.Fatalf("NULL: got tag number %d, want 5", nullTag.Number)
	}
}

func TestPreludeBooleanPinsLengthToOne(t *testing.T) {
	lv, err := Boolean.LvTy(true)
	if err != nil {
		t.Fatalf("LvTy: %v", err)
	}
	bits, ok := lv.StaticSizeBits()
	if ok {
		t.Fatalf("expected lv_ty to be dynamically sized (guarded), got static %d bits", bits)
	}
	msg, ok := lv.(*model.Message)
	if !ok {
		t.Fatalf("got %T, want *model.Message", lv)
	}
	var guard string
	for _, l := range msg.Links {
		if l.From == "Length" && l.To == "Value" && l.Condition != nil {
			guard = l.Condition.String()
		}
	}
	if guard != "Length = 1" {
		t.Fatalf("got Length->Value guard %q, want %q", guard, "Length = 1")
	}
}

func TestPreludeNullElidesValueField(t *testing.T) {
	lv, err := Null.LvTy(true)
	if err != nil {
		t.Fatalf("LvTy: %v", err)
	}
	bits, ok := lv.StaticSizeBits()
	if !ok || bits != 8 {
		t.Fatalf("expected a static 8-bit (Length-only) lv_ty, got (%d, %v)", bits, ok)
	}
}
