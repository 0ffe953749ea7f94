package model

import "github.com/google/uuid"

// Principal is the authenticated caller decoded from the access token.
// CompanyID is uuid.Nil for users without a company binding (admins).
type Principal struct {
	UserID    uuid.UUID
	CompanyID uuid.UUID
	Role      UserRole
}

func (p Principal) IsAdmin() bool {
	return p.Role == UserRoleAdmin
}

func (p Principal) IsCustomer() bool {
	return p.Role == UserRoleCustomer
}

func (p Principal) IsManufacturer() bool {
	return p.Role == UserRoleManufacturer
}

func (p Principal) HasCompany() bool {
	return p.CompanyID != uuid.Nil
}
