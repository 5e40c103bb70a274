package domain

import "time"

type Role string

const (
	RoleTenant   Role = "tenant"
	RoleLandlord Role = "landlord"
	RoleBank     Role = "bank"
	RoleMinistry Role = "ministry"
)

func (r Role) Valid() bool {
	switch r {
	case RoleTenant, RoleLandlord, RoleBank, RoleMinistry:
		return true
	}
	return false
}

type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	PasswordHash string    `json:"password_hash"`
	Role         Role      `json:"role"`
	CreatedOn    time.Time `json:"created_on"`
	UpdatedOn    time.Time `json:"updated_on"`
}

func (u User) GetID() string { return u.ID }
