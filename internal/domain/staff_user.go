package domain

import "time"

// Designation enumerates internal staff roles.
type Designation string

const (
	DesignationAdmin     Designation = "ADMIN"
	DesignationManager   Designation = "MANAGER"
	DesignationMentor    Designation = "MENTOR"
	DesignationRecruiter Designation = "RECRUITER"
	DesignationFinance   Designation = "FINANCE"
)

// StaffUser models an internal operator. ReporterID points at the staff
// member this user reports to, forming a shallow forest.
type StaffUser struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	Designation  Designation
	ReporterID   *string
	Active       bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
