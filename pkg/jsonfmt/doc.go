// Package jsonfmt re-renders JSON text the way browsers do for
// JSON.stringify(JSON.parse(text), null, 2). Object keys keep their insertion
// order, numbers follow ECMAScript number-to-string rules and strings use the
// JSON.stringify escape set, so a value formatted here matches the one the
// admin page produces client-side byte for byte.
//
// Failures are reported as values, never logged: callers branch on
// Result.OK and leave the original text alone when parsing fails.
package jsonfmt
