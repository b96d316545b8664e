// Package service contains the application-specific use cases: creating,
// reading and deleting users and groups, managing group membership, and
// exchanging credentials for a token.
//
// Services receive their stores and auth primitives through constructors,
// run every mutation in a single database transaction, and report failures
// as the sentinel and typed errors declared in domain, store and this
// package. The API layer translates those errors into HTTP problems.
package service
