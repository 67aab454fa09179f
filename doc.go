// Package asn1grammar translates ASN.1 type definitions, as understood
// through the Basic Encoding Rules (BER), into a target message grammar: a
// directed graph of fields, links, and boolean guards suitable for a
// downstream parser/validator generator.
//
// The translation is one-way and synchronous. An upstream ASN.1
// specification (package [asn1grammar/asnast]) is walked by a [Compiler]
// which produces [BerType] values. Each BerType lazily materializes three
// layered grammar encodings — V (raw value), LV (length-value), and TLV
// (tag-length-value) — against the downstream target model (package
// [asn1grammar/model]). [Compiler.ConvertSpec] assembles a full specification into a
// map from qualified identifier to target type.
//
// This package supports only the BER subset described by its specification:
// one-octet tags (tag numbers 0..30) and one-octet short-form lengths
// (0x00..0x7F). SET, SET OF, ENUMERATED, REAL, date/time types, and
// extensibility markers are not supported. Encoding or decoding of ASN.1
// data at runtime is out of scope; this package only emits a grammar.
package asn1grammar
