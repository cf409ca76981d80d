package auth

import (
	"strings"

	"andhara-backend/internal/models"
)

// Policy decides which users may perform privileged operations (user
// management, follow-up administration). Injecting it keeps the transport
// layer free of the concrete rule, so a role system can replace the single
// admin email later.
type Policy interface {
	CanManageUsers(user *models.User) bool
}

// AdminEmailPolicy allows exactly one configured super-admin email. This is
// the production rule; it is an allow-list of size one, not a role system.
type AdminEmailPolicy struct {
	AdminEmail string
}

func NewAdminEmailPolicy(email string) *AdminEmailPolicy {
	return &AdminEmailPolicy{AdminEmail: email}
}

func (p *AdminEmailPolicy) CanManageUsers(user *models.User) bool {
	if user == nil || p.AdminEmail == "" {
		return false
	}
	return strings.EqualFold(user.Email, p.AdminEmail)
}

// RolePolicy allows any active user whose role matches. Used in tests and
// available as a drop-in richer rule.
type RolePolicy struct {
	Role string
}

func (p *RolePolicy) CanManageUsers(user *models.User) bool {
	return user != nil && user.IsActive && user.Role == p.Role
}
