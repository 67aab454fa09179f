package asn1grammar

import (
	"fmt"

	"github.com/asn1msg/asn1grammar/model"
)

// Class is the BER tag class. The zero value is [ClassUniversal].
//
//go:generate stringer -type=Class
type Class uint8

// The four BER tag classes.
const (
	ClassUniversal Class = iota
	ClassApplication
	ClassContextSpecific
	ClassPrivate
)

// Form is the BER tag form: whether a data value is primitive or
// constructed. The zero value is [FormPrimitive].
//
//go:generate stringer -type=Form
type Form uint8

// The two BER tag forms.
const (
	FormPrimitive Form = iota
	FormConstructed
)

// longTagMarker is the reserved low-5-bit pattern (0b11111) that signals a
// multi-octet BER tag. Long tags (tag numbers >= 31) are unsupported.
const longTagMarker = 0x1F

// Tag is an immutable ASN.1/BER tag: a (class, form, number) triple that
// fits in exactly one octet. Supported tag numbers are 0..30; a number of 31
// is the reserved long-form marker and is rejected by [TagFromByte].
type Tag struct {
	Class  Class
	Form   Form
	Number uint8
}

// ToByte returns the one-octet BER identifier encoding of t:
// (class<<6)|(form<<5)|number. The caller is responsible for only
// constructing Tag values with Number <= 30; ToByte does not validate this.
func (t Tag) ToByte() byte {
	return byte(t.Class)<<6 | byte(t.Form)<<5 | t.Number
}

// TagFromByte decodes a one-octet BER identifier into a Tag. It fails with
// [LongTagUnsupportedError] if the lower five bits equal the long-tag marker
// 0b11111 (tag number 31), since multi-octet tag numbers are not supported.
func TagFromByte(b byte) (Tag, error) {
	num := b & 0x1F
	if num == longTagMarker {
		return Tag{}, &LongTagUnsupportedError{Detail: fmt.Sprintf("identifier octet %#02x uses the long-tag form", b)}
	}
	return Tag{
		Class:  Class(b >> 6),
		Form:   Form((b >> 5) & 1),
		Number: num,
	}, nil
}

// Matches returns the target-model [model.Guard] equivalent to the
// conjunction `<prefix>_Class = class AND <prefix>_Form = form AND
// <prefix>_Num = number`, i.e. the test that a materialized Tag field named
// prefix carries exactly this tag.
func (t Tag) Matches(prefix string) model.Guard {
	return model.And{Terms: []model.Guard{
		model.Eq{Field: prefix + "_Class", Value: int64(t.Class)},
		model.Eq{Field: prefix + "_Form", Value: int64(t.Form)},
		model.Eq{Field: prefix + "_Num", Value: int64(t.Number)},
	}}
}

// String renders t in a compact debug form, e.g.
// "[ClassContextSpecific/FormConstructed]21".
func (t Tag) String() string {
	return fmt.Sprintf("[%s/%s]%d", t.Class, t.Form, t.Number)
}
