package asn1grammar

import (
	"fmt"

	"github.com/asn1msg/asn1grammar/model"
)

// ImplicitlyTagged is the BerType wrapper produced by [Implicit]: it
// replaces base's tag, reusing base's raw and length-value layers
// unchanged (invariant: only the Tag field of the TLV layer differs).
type ImplicitlyTagged struct {
	base  BerType
	tag   Tag
	path  IdentBuilder
	ident string
	cache materializeCache
}

func (w *ImplicitlyTagged) Path() IdentBuilder  { return w.path }
func (w *ImplicitlyTagged) Ident() string       { return w.ident }
func (w *ImplicitlyTagged) QualifiedID() string { return w.path.Qualified(w.ident) }
func (w *ImplicitlyTagged) Tag() (Tag, bool)    { return w.tag, true }

func (w *ImplicitlyTagged) VTy(skipProof bool) (model.Type, error)  { return w.base.VTy(skipProof) }
func (w *ImplicitlyTagged) LvTy(skipProof bool) (model.Type, error) { return w.base.LvTy(skipProof) }

func (w *ImplicitlyTagged) TlvTy(skipProof bool) (model.Type, error) {
	return w.cache.tlv.Get(skipProof, func() (model.Type, error) { return defaultTlvTy(w, skipProof) })
}

// tagLabel renders t as a short disambiguating suffix for a wrapper
// identifier, e.g. "CTX0" or "APP5". Sibling fields of a Sequence share the
// same path, so the tag itself — not just the path — has to contribute to
// the wrapper's identifier for invariant 1 (qualified-identifier
// uniqueness) to hold.
func tagLabel(t Tag) string {
	var class string
	switch t.Class {
	case ClassUniversal:
		class = "U"
	case ClassApplication:
		class = "APP"
	case ClassContextSpecific:
		class = "CTX"
	case ClassPrivate:
		class = "PRIV"
	}
	return fmt.Sprintf("%s%d", class, t.Number)
}

// Implicit returns the BerType for base with its tag replaced by override,
// under the given path. Per the closed-sum invariants:
//   - if override.Class is UNIVERSAL, the wrapper collapses: base is
//     returned unchanged;
//   - if base already carries exactly override as its tag, base is
//     returned unchanged (idempotence);
//   - otherwise a new [ImplicitlyTagged] is built whose form is inherited
//     from base's own tag (or FormConstructed, if base has none — a bare
//     CHOICE has no intrinsic form to inherit).
func Implicit(base BerType, override Tag, path IdentBuilder) BerType {
	baseTag, ok := base.Tag()
	if ok && baseTag == override {
		return base
	}
	if override.Class == ClassUniversal {
		return base
	}
	form := FormConstructed
	if ok {
		form = baseTag.Form
	}
	effective := Tag{Class: override.Class, Form: form, Number: override.Number}
	ident := base.Ident() + "_" + tagLabel(effective)
	return &ImplicitlyTagged{base: base, tag: effective, path: path, ident: ident}
}

// Explicit returns the BerType for base wrapped in an anonymous
// Sequence{Inner: base} and then implicitly tagged with override, per the
// ASN.1 definition of explicit tagging.
func Explicit(base BerType, override Tag, path IdentBuilder) BerType {
	wrapper := NewSequence(path, "Explicit_"+base.Ident(), []NamedType{{Name: "Inner", Type: base}})
	return Implicit(wrapper, override, path)
}
