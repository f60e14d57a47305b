package util

import "skillpath_backend/internal/model"

// Principal is the authenticated caller as seen by access checks.
type Principal struct {
	UserID     uint
	Role       model.UserRole
	EmployeeID *uint
}

func PrincipalFromClaims(c *Claims) *Principal {
	if c == nil {
		return nil
	}
	return &Principal{UserID: c.UserID, Role: c.Role, EmployeeID: c.EmployeeID}
}

// CanAccessEmployee reports whether p may act on employeeID: admins on any
// employee, employees only on their linked record.
func (p *Principal) CanAccessEmployee(employeeID uint) bool {
	if p == nil {
		return false
	}
	switch p.Role {
	case model.RoleAdmin:
		return true
	case model.RoleEmployee:
		return p.EmployeeID != nil && *p.EmployeeID == employeeID
	default:
		return false
	}
}

func (p *Principal) IsAdmin() bool {
	return p != nil && p.Role == model.RoleAdmin
}
