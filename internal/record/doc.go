// Package record implements the normalization core: an insertion-ordered
// JSON object model, ordered-candidate field resolution with dotted paths,
// dotted-key promotion, and exception-block extraction.
//
// # Extraction Semantics
//
// All extraction is destructive. Resolving a canonical field, promoting a
// dotted key, or matching an exception key removes the entry from the object,
// which is what guarantees that no key ever renders in two places. Whatever
// survives extraction is the residual, rendered as generic key: value lines
// in the producer's original key order.
//
// # Dotted Paths
//
// A path like "server.hostname" traverses nested objects one segment at a
// time. Traversal never partially succeeds: if a segment is missing, or an
// intermediate value is not an object, the whole lookup misses and the data
// stays where it was. A top-level key that literally contains dots matches
// before traversal is attempted.
//
// # Values
//
// Value is a tagged variant (string, number, bool, null, object, array)
// rather than interface{}, so the exception formatter's branches (string vs
// structured payload, list vs string traceback) are explicit. Numbers keep
// their original textual form end to end.
package record
