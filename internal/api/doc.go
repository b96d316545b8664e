// Package api holds the HTTP handlers for users, groups and login.
//
// Handlers return errors instead of writing failure responses. ErrorHandler
// turns each error into an application/problem+json body, and bindForm
// turns request bodies into validated forms.
package api
