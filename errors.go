package asn1grammar

import "fmt"

// LongTagUnsupportedError reports an ASN.1 tag whose BER identifier encoding
// would require more than one octet. Long tag numbers (>= 31) are not
// supported; this error is fatal to the whole compilation.
type LongTagUnsupportedError struct {
	Detail string
}

func (e *LongTagUnsupportedError) Error() string {
	return "long tag form unsupported: " + e.Detail
}

// UnsupportedAsnKindError reports an ASN.1 abstract syntax node the
// Compiler's dispatch table has no case for (e.g. SET, REAL, ENUMERATED).
// It is fatal to the whole compilation.
type UnsupportedAsnKindError struct {
	Kind string
	Path string
}

func (e *UnsupportedAsnKindError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("unsupported ASN.1 construct: %s", e.Kind)
	}
	return fmt.Sprintf("unsupported ASN.1 construct at %s: %s", e.Path, e.Kind)
}

// ChoiceWithoutTagError reports a CHOICE alternative whose materialized
// BerType has no discoverable [Tag], so it cannot contribute a guarded
// branch to the enclosing tagged union. It is fatal to the whole
// compilation.
type ChoiceWithoutTagError struct {
	Variant string
}

func (e *ChoiceWithoutTagError) Error() string {
	return fmt.Sprintf("choice variant %q has no discoverable tag", e.Variant)
}

// InvalidGrammarError reports that the downstream target-model finalizer
// rejected a materialized message. It carries the offending qualified
// identifier and the finalizer's diagnostic as its cause.
type InvalidGrammarError struct {
	QualifiedID string
	Cause       error
}

func (e *InvalidGrammarError) Error() string {
	return fmt.Sprintf("invalid grammar for %s: %v", e.QualifiedID, e.Cause)
}

func (e *InvalidGrammarError) Unwrap() error { return e.Cause }
