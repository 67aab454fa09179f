package asn1grammar

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/asn1msg/asn1grammar/asnast"
)

func TestConvertSpecsCompilesDisjointSpecsConcurrently(t *testing.T) {
	specs := map[string]asnast.Spec{
		"good-a": {Modules: map[string]asnast.Module{
			"ModA": {Types: map[string]asnast.TypeDecl{"X": {Type: asnast.Integer{}}}},
		}},
		"good-b": {Modules: map[string]asnast.Module{
			"ModB": {Types: map[string]asnast.TypeDecl{"Y": {Type: asnast.OctetString{}}}},
		}},
	}

	results, err := ConvertSpecs(context.Background(), Options{}, specs)
	require.NoError(t, err)
	require.Len(t, results, 2)
	// X and Y are bare universal primitives: they resolve to prelude
	// descriptors, whose identifiers ConvertSpec leaves out of its map.
	for _, r := range results {
		require.NoError(t, r.Err)
		require.Len(t, r.Types, 0)
	}
}

func TestConvertSpecsAggregatesFailures(t *testing.T) {
	specs := map[string]asnast.Spec{
		"bad": {Modules: map[string]asnast.Module{
			"Prelude": {Types: map[string]asnast.TypeDecl{"X": {Type: asnast.Integer{}}}},
		}},
		"good": {Modules: map[string]asnast.Module{
			"ModC": {Types: map[string]asnast.TypeDecl{"Z": {Type: asnast.BitString{}}}},
		}},
	}

	results, err := ConvertSpecs(context.Background(), Options{}, specs)
	require.Error(t, err)
	require.Len(t, results, 2)
}
