package executor

import "context"

// Runtime is the host integration surface for field resolution and leaf
// serialization used by the Executor.
//
// Identifiers:
//   - objectType is the GraphQL type name (e.g. "User").
//   - field is the GraphQL field name on that type (e.g. "posts").
//   - For root fields, objectType is the root type name (e.g. "Query").
//   - source is the parent object value (nil for root fields).
//   - args maps argument names to already-coerced Go values.
//
// Contract:
//   - Implementations must be safe for concurrent use; the Executor may run
//     for many requests at once over the same Runtime.
//   - Implementations must not mutate source or args.
//   - Returning (nil, nil) produces a GraphQL null for nullable fields.
//   - Errors are converted into located GraphQL errors by the Executor; a
//     Non-Null field error propagates null to the nearest nullable ancestor.
type Runtime interface {
	// ResolveField resolves one field value. The returned value is raw: the
	// Executor completes it against the schema (including nested selection
	// sets) afterwards.
	ResolveField(ctx context.Context, objectType, field string, source any, args map[string]any) (any, error)

	// SerializeLeafValue serializes a scalar or enum value to a JSON-safe Go
	// value (string for String/ID and enum names, int for Int, float64 for
	// Float, bool for Boolean).
	SerializeLeafValue(ctx context.Context, scalarOrEnumTypeName string, value any) (any, error)
}
