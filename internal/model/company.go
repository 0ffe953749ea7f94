package model

import (
	"time"

	"github.com/google/uuid"
)

type CompanyRole string

const (
	CompanyRoleCustomer     CompanyRole = "CUSTOMER"
	CompanyRoleManufacturer CompanyRole = "MANUFACTURER"
)

type Company struct {
	ID        uuid.UUID   `json:"id"`
	Name      string      `json:"name"`
	Role      CompanyRole `json:"role"`
	Address   string      `json:"address"`
	CreatedAt time.Time   `json:"createdAt"`
}
