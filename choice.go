package asn1grammar

import "github.com/asn1msg/asn1grammar/model"

// Choice is a BerType for an ASN.1 CHOICE: a tagged union over a set of
// named alternatives. A bare Choice has no BER tag of its own — the tag
// that selects between alternatives lives one layer down, as the leading
// field of its value layer — so [Choice.Tag] always reports "no tag" and
// [Choice.TlvTy] degrades to [Choice.VTy].
type Choice struct {
	path     IdentBuilder
	ident    string
	variants []NamedType
	cache    materializeCache
}

// NewChoice constructs a Choice BerType. variants must be in declaration
// order.
func NewChoice(path IdentBuilder, ident string, variants []NamedType) *Choice {
	return &Choice{path: path, ident: Normalize(ident), variants: variants}
}

func (c *Choice) Path() IdentBuilder  { return c.path }
func (c *Choice) Ident() string       { return c.ident }
func (c *Choice) QualifiedID() string { return c.path.Qualified(c.ident) }

// Tag always reports false: a CHOICE carries no tag of its own.
func (c *Choice) Tag() (Tag, bool) { return Tag{}, false }

// flattenVariants walks c's alternatives, inlining any nested Choice
// variant under a composite "outer_inner" name so that every flattened
// alternative is a genuinely tagged leaf. A non-Choice variant whose
// BerType has no tag is a [ChoiceWithoutTagError].
func flattenVariants(prefix string, variants []NamedType, skipProof bool) ([]FlatVariant, error) {
	out := make([]FlatVariant, 0, len(variants))
	for _, v := range variants {
		name := v.Name
		if prefix != "" {
			name = prefix + "_" + v.Name
		}
		if inner, ok := v.Type.(*Choice); ok {
			nested, err := flattenVariants(name, inner.variants, skipProof)
			if err != nil {
				return nil, err
			}
			out = append(out, nested...)
			continue
		}
		tag, ok := v.Type.Tag()
		if !ok {
			return nil, &ChoiceWithoutTagError{Variant: name}
		}
		body, err := v.Type.LvTy(skipProof)
		if err != nil {
			return nil, err
		}
		out = append(out, FlatVariant{Name: name, Tag: tag, Body: body})
	}
	return out, nil
}

func (c *Choice) VTy(skipProof bool) (model.Type, error) {
	return c.cache.v.Get(skipProof, func() (model.Type, error) {
		flat, err := flattenVariants("", c.variants, skipProof)
		if err != nil {
			return nil, err
		}
		return TaggedUnionMessage(rawName(c.path, c.ident), flat, skipProof)
	})
}

func (c *Choice) LvTy(skipProof bool) (model.Type, error) {
	return c.cache.lv.Get(skipProof, func() (model.Type, error) {
		vty, err := c.VTy(skipProof)
		if err != nil {
			return nil, err
		}
		msg := defaultLV(untaggedName(c.path, c.ident), vty)
		return finalizeMessage(msg, c.QualifiedID(), skipProof)
	})
}

// TlvTy degrades to VTy, since a bare Choice has no tag to build a
// Tag/Untagged wrapper around.
func (c *Choice) TlvTy(skipProof bool) (model.Type, error) {
	return c.cache.tlv.Get(skipProof, func() (model.Type, error) { return defaultTlvTy(c, skipProof) })
}
