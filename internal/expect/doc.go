// Package expect implements the expectation registry and verification
// runner.
//
// Build definitions register expectations — (subject, description,
// assertion block) triples — against a per-unit Registry. Registration is
// pure: nothing is evaluated until the build pipeline's check hook fires,
// strictly after packaging. At that point a Runner evaluates every
// registered expectation in registration order, collects every failure
// without short-circuiting, and either passes silently or raises a single
// consolidated VerificationError enumerating all failing expectations.
//
// Assertion blocks receive their subject as an explicit parameter and
// return an error to signal failure; matcher predicates from
// internal/matcher are the usual building blocks, but any error-returning
// assertion participates in aggregation the same way.
package expect
