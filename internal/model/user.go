package model

import (
	"time"

	"github.com/google/uuid"
)

type UserRole string

const (
	UserRoleAdmin        UserRole = "ADMIN"
	UserRoleCustomer     UserRole = "CUSTOMER"
	UserRoleManufacturer UserRole = "MANUFACTURER"
)

type User struct {
	ID        uuid.UUID  `json:"id"`
	Email     string     `json:"email"`
	FullName  string     `json:"fullName"`
	Role      UserRole   `json:"role"`
	CompanyID *uuid.UUID `json:"companyId,omitempty"`
	CreatedAt time.Time  `json:"createdAt"`
}
