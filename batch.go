package asn1grammar

import (
	"context"

	"github.com/hashicorp/go-multierror"
	"golang.org/x/sync/errgroup"

	"github.com/asn1msg/asn1grammar/asnast"
	"github.com/asn1msg/asn1grammar/model"
)

// BatchResult is the outcome of compiling a single named spec within a
// [ConvertSpecs] batch.
type BatchResult struct {
	Name  string
	Types map[string]model.Type
	Err   error
}

// ConvertSpecs compiles each of specs concurrently, one goroutine per
// entry, under a shared [Options]. Every BerType materialization is pure
// and operates over an immutable prelude, so concurrent compilation of
// disjoint specs is safe.
//
// ConvertSpecs returns one [BatchResult] per entry of specs, in no
// particular order (specs is a map), and a combined [*multierror.Error]
// aggregating every entry's failure (nil if every entry succeeded). An
// entry that has not started compiling when ctx is cancelled is skipped and
// reports ctx's error in its BatchResult; entries already in flight are not
// aborted, since the underlying Compiler has no cancellation points of its
// own.
func ConvertSpecs(ctx context.Context, opts Options, specs map[string]asnast.Spec) ([]BatchResult, error) {
	names := make([]string, 0, len(specs))
	for name := range specs {
		names = append(names, name)
	}

	results := make([]BatchResult, len(names))
	g, gctx := errgroup.WithContext(ctx)
	for i, name := range names {
		i, name := i, name
		g.Go(func() error {
			select {
			case <-gctx.Done():
				results[i] = BatchResult{Name: name, Err: gctx.Err()}
				return nil
			default:
			}
			compiler := NewCompiler(opts)
			types, err := compiler.ConvertSpec(specs[name])
			results[i] = BatchResult{Name: name, Types: types, Err: err}
			return nil // per-entry errors are carried in BatchResult, not propagated to the group
		})
	}
	// g.Wait never reports an error, since entry goroutines always return
	// nil; a skipped entry's cancellation is carried in its BatchResult.
	_ = g.Wait()

	var combined *multierror.Error
	for _, r := range results {
		if r.Err != nil {
			combined = multierror.Append(combined, errorf(r.Name, r.Err))
		}
	}
	if combined == nil {
		return results, nil
	}
	return results, combined
}

func errorf(name string, err error) error {
	return &namedError{name: name, err: err}
}

type namedError struct {
	name string
	err  error
}

func (e *namedError) Error() string { return e.name + ": " + e.err.Error() }
func (e *namedError) Unwrap() error { return e.err }
