// policy.go - Authorization decisions for mutating operations

// Package policy holds the access-control rules as pure functions. Every
// mutating store operation consults these before touching the database, so
// the owner-or-admin rule lives in exactly one place.
package policy

import (
	"go-tree-catalog/models"
	"go-tree-catalog/session"
)

// CanModify reports whether actor may edit or delete a resource owned by
// ownerID. Admins may modify anything; everyone else only their own rows.
// A nil ownerID means the resource is orphaned and only admins may touch it.
func CanModify(actor session.Identity, ownerID *uint) bool {
	if actor.Role == models.RoleAdmin {
		return true
	}
	return ownerID != nil && actor.UserID == *ownerID
}

// CanDeleteUser reports whether actor may delete the account targetID.
// Only admins delete accounts, and never their own.
func CanDeleteUser(actor session.Identity, targetID uint) bool {
	return actor.Role == models.RoleAdmin && actor.UserID != targetID
}
