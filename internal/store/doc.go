// Package store declares the persistence contracts for users, groups and
// memberships, the sentinel errors implementations must return, and
// RunInTransaction.
package store
