// Package problem models RFC 7807 style error bodies.
//
// A Problem always serializes type, title and status; anything attached
// with Set (detail, errors) is emitted alongside them. ProblemError and
// HTTPError are the two error values handlers return when they want to
// control the response themselves.
package problem
