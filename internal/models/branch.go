package models

// Tier is a branch performance class that sets baseline targets and activity rates
type Tier string

const (
	TierA Tier = "A"
	TierB Tier = "B"
	TierC Tier = "C"
)

// OfficerRole is the job role of branch staff
type OfficerRole string

const (
	RoleLoanOfficer OfficerRole = "LoanOfficer"
)

// Branch represents a microfinance branch office
type Branch struct {
	// Branch code (BR001, BR002, ...)
	ID   string `db:"branch_id" json:"branch_id"`
	Name string `db:"branch_name" json:"branch_name"`

	Region     string `db:"region" json:"region"`
	UrbanRural string `db:"urban_rural" json:"urban_rural"` // Urban, Rural or Peri-Urban
	StaffCount int    `db:"staff_count" json:"staff_count"`
	Tier       Tier   `db:"avg_target_tier" json:"avg_target_tier"`

	// Location
	Latitude  float64 `db:"latitude" json:"latitude"`
	Longitude float64 `db:"longitude" json:"longitude"`
}

// Officer represents a loan officer attached to one branch
type Officer struct {
	ID       string      `db:"officer_id" json:"officer_id"`
	Name     string      `db:"name" json:"name"`
	BranchID string      `db:"branch_id" json:"branch_id"`
	Role     OfficerRole `db:"role" json:"role"`
}
