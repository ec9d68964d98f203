package models

import "gorm.io/gorm"

type User struct {
	gorm.Model
	Name     string `json:"name"`
	Email    string `json:"email" gorm:"unique"`
	Password string `json:"password"`
	Phone    string `json:"phone"`
	Role     string `json:"role"` // "coordinator", "ngo_staff", "admin"

	// Optional link to the staff record an ngo_staff account acts as
	StaffID *uint `json:"staff_id,omitempty"`
}
