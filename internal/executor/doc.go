// Package executor implements a synchronous GraphQL executor over a static
// schema and a pluggable Runtime for field resolution and leaf serialization.
//
// Execution happens in three stages:
//
//  1. Validation. The requested operation is checked against the schema
//     before anything is resolved: every selected field must exist on its
//     parent type, leaf fields must not carry selection sets, composite
//     fields must, and every Non-Null argument without a default must be
//     provided. A validation failure yields a located error list and a null
//     data value; no Runtime method is called for an invalid operation.
//
//  2. Variable coercion. Variable values are coerced against the operation's
//     variable definitions. Coercion failures also stop execution.
//
//  3. Resolution. The selection set is walked depth-first: fields are
//     collected per the GraphQL field-collection rules (aliases, fragment
//     spreads, inline fragments, @skip/@include), each field value is
//     obtained from Runtime.ResolveField, and the result is completed
//     against its schema type (lists element-wise, leafs through
//     Runtime.SerializeLeafValue, objects recursively). Null results for
//     Non-Null fields propagate to the nearest nullable ancestor and are
//     recorded as located errors; resolution elsewhere continues, so partial
//     results are possible.
//
// The response tree preserves the field order of the query document,
// including through JSON marshaling.
//
// Resolver errors never abort the whole request: each becomes a located
// error and the affected field resolves to null (or propagates, if Non-Null).
// A failed lookup that resolves to nil is NOT an error; it completes as
// GraphQL null.
package executor
