package asn1grammar

import (
	"github.com/pkg/errors"

	"github.com/asn1msg/asn1grammar/internal/memo"
	"github.com/asn1msg/asn1grammar/model"
)

// BerType is the polymorphic descriptor of a compiled ASN.1 type. It
// produces the three layered target-model materializations described in the
// package documentation: [BerType.VTy], [BerType.LvTy], and [BerType.TlvTy].
// BerType values are immutable once constructed; materializations are
// memoized so that structural sharing between callers produces the same
// (cached) target-model value.
//
// The closed set of implementations is: the [Simple] and [Definite]
// primitive cases, [Sequence], [SequenceOf], [Choice], and the
// [ImplicitlyTagged] wrapper.
type BerType interface {
	// Path returns the namespace path this type is declared under.
	Path() IdentBuilder
	// Ident returns this type's local (unqualified) identifier.
	Ident() string
	// QualifiedID returns Path().Qualified(Ident()).
	QualifiedID() string
	// Tag returns this type's effective BER tag, and whether it has one.
	// Only a bare (unwrapped) Choice has no tag; see the package
	// documentation's discussion of CHOICE tag propagation.
	Tag() (Tag, bool)

	// VTy returns the raw value-layer target-model type.
	VTy(skipProof bool) (model.Type, error)
	// LvTy returns the length-value target-model type.
	LvTy(skipProof bool) (model.Type, error)
	// TlvTy returns the tag-length-value target-model type. If this type has
	// no tag, TlvTy degrades to VTy.
	TlvTy(skipProof bool) (model.Type, error)
}

// materializeCache backs the write-once memoization of a BerType's three
// materializations, keyed by the skip_proof flag in effect when each was
// computed.
type materializeCache struct {
	v   memo.Keyed[bool, model.Type]
	lv  memo.Keyed[bool, model.Type]
	tlv memo.Keyed[bool, model.Type]
}

func rawName(path IdentBuilder, ident string) string    { return path.Qualified("RAW_" + ident) }
func untaggedName(path IdentBuilder, ident string) string { return path.Qualified("UNTAGGED_" + ident) }

// finalizeMessage runs msg through the target model's proof pipeline and
// translates failure into an [InvalidGrammarError] carrying qid and the
// finalizer's diagnostic as its cause.
func finalizeMessage(msg *model.Message, qid string, skipProof bool) (model.Type, error) {
	if err := msg.Finalize(skipProof); err != nil {
		return nil, &InvalidGrammarError{QualifiedID: qid, Cause: errors.Wrap(err, "finalize")}
	}
	return msg, nil
}

// defaultLV builds the generic Length/Value message shared by every BerType
// whose value layer does not have a statically known size: `Value`'s
// bit-size is `Length * 8`.
func defaultLV(id string, vty model.Type) *model.Message {
	return model.NewMessage(id, []model.Field{
		{Name: "Length", Type: preludeLength},
		{Name: "Value", Type: vty, Size: model.FieldBits{Field: "Length", Multiplier: 8}},
	}, []model.Link{
		{From: model.Initial, To: "Length"},
		{From: "Length", To: "Value"},
		{From: "Value", To: model.Final},
	})
}

// defaultTLV builds the generic Tag/Untagged message: a leading Tag field
// guarding entry into the embedded lv_ty (named Untagged), with a fallback
// link straight to Final when the tag does not match.
func defaultTLV(id string, tag Tag, untagged model.Type) *model.Message {
	guard := tag.Matches("Tag")
	return model.NewMessage(id, []model.Field{
		{Name: "Tag", Type: preludeTag},
		{Name: "Untagged", Type: untagged},
	}, []model.Link{
		{From: model.Initial, To: "Tag"},
		{From: "Tag", To: "Untagged", Condition: guard},
		{From: "Tag", To: model.Final, Condition: model.Not{Inner: guard}},
		{From: "Untagged", To: model.Final},
	})
}

// defaultTlvTy implements the generic TlvTy behavior shared by every
// BerType: build Tag/Untagged around LvTy, or degrade to VTy if b has no
// tag.
func defaultTlvTy(b BerType, skipProof bool) (model.Type, error) {
	tag, ok := b.Tag()
	if !ok {
		return b.VTy(skipProof)
	}
	lv, err := b.LvTy(skipProof)
	if err != nil {
		return nil, err
	}
	msg := defaultTLV(b.QualifiedID(), tag, lv)
	return finalizeMessage(msg, b.QualifiedID(), skipProof)
}

// Simple is a BerType for an ASN.1 primitive whose value layer is an opaque
// byte string: INTEGER, OCTET STRING, BIT STRING, PrintableString,
// IA5String, and OBJECT IDENTIFIER.
type Simple struct {
	path  IdentBuilder
	ident string
	tag   Tag
	cache materializeCache
}

// NewSimple constructs a Simple BerType.
func NewSimple(path IdentBuilder, ident string, tag Tag) *Simple {
	return &Simple{path: path, ident: Normalize(ident), tag: tag}
}

func (s *Simple) Path() IdentBuilder  { return s.path }
func (s *Simple) Ident() string       { return s.ident }
func (s *Simple) QualifiedID() string { return s.path.Qualified(s.ident) }
func (s *Simple) Tag() (Tag, bool)    { return s.tag, true }

func (s *Simple) VTy(bool) (model.Type, error) {
	return s.cache.v.Get(true, func() (model.Type, error) { return model.Opaque{}, nil })
}

func (s *Simple) LvTy(skipProof bool) (model.Type, error) {
	return s.cache.lv.Get(skipProof, func() (model.Type, error) {
		vty, err := s.VTy(skipProof)
		if err != nil {
			return nil, err
		}
		msg := defaultLV(untaggedName(s.path, s.ident), vty)
		return finalizeMessage(msg, s.QualifiedID(), skipProof)
	})
}

func (s *Simple) TlvTy(skipProof bool) (model.Type, error) {
	return s.cache.tlv.Get(skipProof, func() (model.Type, error) { return defaultTlvTy(s, skipProof) })
}

// Definite is a BerType for a primitive with a statically known value-layer
// type: BOOLEAN (an enumeration {FALSE=0x00, TRUE=0xFF}) or NULL (a
// zero-length value).
type Definite struct {
	path      IdentBuilder
	ident     string
	tag       Tag
	valueType model.Type // always non-nil; NULL uses a zero-size RangeInteger
	cache     materializeCache
}

// NewDefinite constructs a Definite BerType.
func NewDefinite(path IdentBuilder, ident string, tag Tag, valueType model.Type) *Definite {
	return &Definite{path: path, ident: Normalize(ident), tag: tag, valueType: valueType}
}

func (d *Definite) Path() IdentBuilder  { return d.path }
func (d *Definite) Ident() string       { return d.ident }
func (d *Definite) QualifiedID() string { return d.path.Qualified(d.ident) }
func (d *Definite) Tag() (Tag, bool)    { return d.tag, true }

func (d *Definite) VTy(bool) (model.Type, error) {
	return d.cache.v.Get(true, func() (model.Type, error) { return d.valueType, nil })
}

// LvTy overrides the default: a statically-sized value layer lets lv_ty
// guard on Length matching the declared size instead of trusting it. A
// zero-size value type (NULL) elides the Value field entirely.
func (d *Definite) LvTy(skipProof bool) (model.Type, error) {
	return d.cache.lv.Get(skipProof, func() (model.Type, error) {
		bits, ok := d.valueType.StaticSizeBits()
		id := untaggedName(d.path, d.ident)
		if !ok {
			// Not expected for the closed Definite set, but fall back to the
			// generic construction rather than panicking.
			return finalizeMessage(defaultLV(id, d.valueType), d.QualifiedID(), skipProof)
		}
		if bits == 0 {
			msg := model.NewMessage(id, []model.Field{
				{Name: "Length", Type: preludeLength},
			}, []model.Link{
				{From: model.Initial, To: "Length"},
				{From: "Length", To: model.Final},
			})
			return finalizeMessage(msg, d.QualifiedID(), skipProof)
		}
		sizeOctets := int64(bits / 8)
		guard := model.Eq{Field: "Length", Value: sizeOctets}
		msg := model.NewMessage(id, []model.Field{
			{Name: "Length", Type: preludeLength},
			{Name: "Value", Type: d.valueType},
		}, []model.Link{
			{From: model.Initial, To: "Length"},
			{From: "Length", To: "Value", Condition: guard},
			{From: "Length", To: model.Final, Condition: model.Not{Inner: guard}},
			{From: "Value", To: model.Final},
		})
		return finalizeMessage(msg, d.QualifiedID(), skipProof)
	})
}

func (d *Definite) TlvTy(skipProof bool) (model.Type, error) {
	return d.cache.tlv.Get(skipProof, func() (model.Type, error) { return defaultTlvTy(d, skipProof) })
}

// NamedType pairs a field (or CHOICE alternative) name with its BerType,
// preserving declaration order the way an order-preserving map would.
type NamedType struct {
	Name string
	Type BerType
}

// Sequence is a BerType for an ASN.1 SEQUENCE: an ordered, fixed-shape
// record. Its tag is always (UNIVERSAL, CONSTRUCTED, 16).
type Sequence struct {
	path   IdentBuilder
	ident  string
	fields []NamedType
	cache  materializeCache
}

// NewSequence constructs a Sequence BerType. fields must be in declaration
// order.
func NewSequence(path IdentBuilder, ident string, fields []NamedType) *Sequence {
	return &Sequence{path: path, ident: Normalize(ident), fields: fields}
}

func (s *Sequence) Path() IdentBuilder  { return s.path }
func (s *Sequence) Ident() string       { return s.ident }
func (s *Sequence) QualifiedID() string { return s.path.Qualified(s.ident) }
func (s *Sequence) Tag() (Tag, bool) {
	return Tag{Class: ClassUniversal, Form: FormConstructed, Number: 16}, true
}

func (s *Sequence) VTy(skipProof bool) (model.Type, error) {
	return s.cache.v.Get(skipProof, func() (model.Type, error) {
		fields := make([]FieldSpec, len(s.fields))
		for i, f := range s.fields {
			fields[i] = FieldSpec{Name: f.Name, Type: f.Type}
		}
		return SimpleMessage(rawName(s.path, s.ident), fields, skipProof)
	})
}

func (s *Sequence) LvTy(skipProof bool) (model.Type, error) {
	return s.cache.lv.Get(skipProof, func() (model.Type, error) {
		vty, err := s.VTy(skipProof)
		if err != nil {
			return nil, err
		}
		msg := defaultLV(untaggedName(s.path, s.ident), vty)
		return finalizeMessage(msg, s.QualifiedID(), skipProof)
	})
}

func (s *Sequence) TlvTy(skipProof bool) (model.Type, error) {
	return s.cache.tlv.Get(skipProof, func() (model.Type, error) { return defaultTlvTy(s, skipProof) })
}

// SequenceOf is a BerType for an ASN.1 SEQUENCE OF: an unbounded homogeneous
// repetition of a single, already-materialized element TLV type. Its tag is
// always (UNIVERSAL, CONSTRUCTED, 16).
type SequenceOf struct {
	path    IdentBuilder
	elemTLV model.Type
	cache   materializeCache
}

// NewSequenceOf constructs a SequenceOf BerType from the already-TLV
// materialized element type. Its identifier is derived as
// "SEQUENCE_OF_"+elemTLV.TypeName(), per spec.
func NewSequenceOf(path IdentBuilder, elemTLV model.Type) *SequenceOf {
	return &SequenceOf{path: path, elemTLV: elemTLV}
}

func (s *SequenceOf) Path() IdentBuilder  { return s.path }
func (s *SequenceOf) Ident() string       { return "SEQUENCE_OF_" + s.elemTLV.TypeName() }
func (s *SequenceOf) QualifiedID() string { return s.path.Qualified(s.Ident()) }
func (s *SequenceOf) Tag() (Tag, bool) {
	return Tag{Class: ClassUniversal, Form: FormConstructed, Number: 16}, true
}

func (s *SequenceOf) VTy(bool) (model.Type, error) {
	return s.cache.v.Get(true, func() (model.Type, error) {
		return model.SequenceType{ID: rawName(s.path, s.Ident()), Element: s.elemTLV}, nil
	})
}

func (s *SequenceOf) LvTy(skipProof bool) (model.Type, error) {
	return s.cache.lv.Get(skipProof, func() (model.Type, error) {
		vty, err := s.VTy(skipProof)
		if err != nil {
			return nil, err
		}
		msg := defaultLV(untaggedName(s.path, s.Ident()), vty)
		return finalizeMessage(msg, s.QualifiedID(), skipProof)
	})
}

func (s *SequenceOf) TlvTy(skipProof bool) (model.Type, error) {
	return s.cache.tlv.Get(skipProof, func() (model.Type, error) { return defaultTlvTy(s, skipProof) })
}
