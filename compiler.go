package asn1grammar

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"

	"github.com/asn1msg/asn1grammar/asnast"
	"github.com/asn1msg/asn1grammar/model"
)

// Options configures a [Compiler].
type Options struct {
	// BasePath is prepended to every module's namespace path, e.g. for
	// compiling several independently-sourced specs into one shared
	// identifier space without collisions.
	BasePath []string
	// FullProof, when true, additionally runs the target model's
	// determinism proof on top of its structural well-formedness check.
	// The zero value (FullProof: false) matches the spec's documented
	// default of skip_proof = true: a bare Options{} skips the
	// (expensive) determinism proof, running only structural checks. Set
	// FullProof to opt into the full proof.
	FullProof bool
}

// skipProof is the skip_proof flag threaded through BerType materializations:
// the logical negation of FullProof, so that the zero value of Options
// reproduces the spec's skip_proof = true default.
func (o Options) skipProof() bool { return !o.FullProof }

// Compiler translates a compiled ASN.1 [asnast.Spec] into the target
// model, dispatching on the closed set of [asnast.Node] implementations.
type Compiler struct {
	opts Options
}

// NewCompiler constructs a Compiler.
func NewCompiler(opts Options) *Compiler {
	return &Compiler{opts: opts}
}

// Convert translates a single ASN.1 AST node into a BerType. path is the
// namespace this node is declared under; localName is the identifier this
// node should be known by (the declared type name at module scope, or the
// member name within an enclosing Sequence/Choice). A composite node's own
// Name field is not consulted for identity — localName is the single
// source of truth, so that a field's identifier never diverges from the
// name its enclosing declaration gave it.
func (c *Compiler) Convert(node asnast.Node, path IdentBuilder, localName string) (BerType, error) {
	switch n := node.(type) {
	case asnast.ExplicitTag:
		inner, err := c.Convert(n.Inner, path, localName)
		if err != nil {
			return nil, err
		}
		tagBytes, _, _ := n.TagOverride()
		tag, err := TagFromByte(tagBytes[0])
		if err != nil {
			return nil, err
		}
		return Explicit(inner, tag, path), nil
	case asnast.Boolean:
		return c.applyImplicit(Boolean, n, path)
	case asnast.Null:
		return c.applyImplicit(Null, n, path)
	case asnast.Integer:
		return c.applyImplicit(Integer, n, path)
	case asnast.ObjectIdentifier:
		return c.applyImplicit(ObjectIdentifier, n, path)
	case asnast.BitString:
		return c.applyImplicit(BitString, n, path)
	case asnast.OctetString:
		return c.applyImplicit(OctetString, n, path)
	case asnast.PrintableString:
		return c.applyImplicit(PrintableString, n, path)
	case asnast.IA5String:
		return c.applyImplicit(IA5String, n, path)
	case asnast.Sequence:
		return c.convertSequence(n, path, localName)
	case asnast.SequenceOf:
		return c.convertSequenceOf(n, path, localName)
	case asnast.Choice:
		return c.convertChoice(n, path, localName)
	default:
		return nil, &UnsupportedAsnKindError{Kind: fmt.Sprintf("%T", node), Path: path.String()}
	}
}

// applyImplicit wraps base with node's IMPLICIT tag override, if it carries
// one; otherwise base is returned unchanged.
func (c *Compiler) applyImplicit(base BerType, node asnast.Node, path IdentBuilder) (BerType, error) {
	tagBytes, tagLen, ok := node.TagOverride()
	if !ok {
		return base, nil
	}
	if tagLen != 1 {
		return nil, &LongTagUnsupportedError{Detail: fmt.Sprintf("%s: %d-octet tag", path.String(), tagLen)}
	}
	tag, err := TagFromByte(tagBytes[0])
	if err != nil {
		return nil, err
	}
	return Implicit(base, tag, path), nil
}

func (c *Compiler) convertSequence(n asnast.Sequence, path IdentBuilder, localName string) (BerType, error) {
	membersPath := path.Push(localName)
	fields := make([]NamedType, len(n.RootMembers))
	for i, m := range n.RootMembers {
		ber, err := c.Convert(m.Type, membersPath, m.Name)
		if err != nil {
			return nil, err
		}
		fields[i] = NamedType{Name: m.Name, Type: ber}
	}
	return c.applyImplicit(NewSequence(path, localName, fields), n, path)
}

func (c *Compiler) convertSequenceOf(n asnast.SequenceOf, path IdentBuilder, localName string) (BerType, error) {
	elemPath := path.Push(localName)
	elem, err := c.Convert(n.ElementType, elemPath, localName+"_Elem")
	if err != nil {
		return nil, err
	}
	elemTLV, err := elem.TlvTy(c.opts.skipProof())
	if err != nil {
		return nil, err
	}
	return c.applyImplicit(NewSequenceOf(path, elemTLV), n, path)
}

func (c *Compiler) convertChoice(n asnast.Choice, path IdentBuilder, localName string) (BerType, error) {
	membersPath := path.Push(localName)
	variants := make([]NamedType, len(n.Members))
	for i, m := range n.Members {
		ber, err := c.Convert(m.Type, membersPath, m.Name)
		if err != nil {
			return nil, err
		}
		variants[i] = NamedType{Name: m.Name, Type: ber}
	}
	return c.applyImplicit(NewChoice(path, localName, variants), n, path)
}

// ConvertSpec translates every top-level type declaration of every module
// in spec into the target model, returning a map from each type's qualified
// identifier to its materialized TLV type. Identifiers under the "Prelude"
// namespace are left out of the map: a declaration that is a bare, untagged
// universal primitive resolves to the shared prelude descriptor and so
// contributes no entry. "Prelude" is also a reserved module name.
func (c *Compiler) ConvertSpec(spec asnast.Spec) (map[string]model.Type, error) {
	out := make(map[string]model.Type)
	for moduleName, module := range spec.Modules {
		if Normalize(moduleName) == "Prelude" {
			return nil, &InvalidGrammarError{QualifiedID: moduleName, Cause: errors.New(`module name "Prelude" is reserved`)}
		}
		modulePath := NewPath(append(append([]string{}, c.opts.BasePath...), moduleName)...)
		for typeName, decl := range module.Types {
			ber, err := c.Convert(decl.Type, modulePath, typeName)
			if err != nil {
				return nil, err
			}
			if qid := ber.QualifiedID(); qid == preludePath.String() || strings.HasPrefix(qid, preludePath.String()+"::") {
				continue
			}
			tlv, err := ber.TlvTy(c.opts.skipProof())
			if err != nil {
				return nil, err
			}
			out[ber.QualifiedID()] = tlv
		}
	}
	return out, nil
}
