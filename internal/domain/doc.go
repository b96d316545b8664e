// Package domain holds users, groups, roles and the membership rules between them.
package domain
