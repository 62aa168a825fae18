package models

// Role is the platform-wide role carried on a profile.
type Role string

const (
	RoleStudent  Role = "student"
	RoleClubHead Role = "club_head"
	RoleAdmin    Role = "admin"
)

// Valid reports whether r is one of the known platform roles.
func (r Role) Valid() bool {
	switch r {
	case RoleStudent, RoleClubHead, RoleAdmin:
		return true
	}
	return false
}

// ClubRole is the role a member holds inside a single club. It is distinct
// from the platform Role: a student can be head of one club and a plain
// member of another.
type ClubRole string

const (
	ClubRoleMember ClubRole = "member"
	ClubRoleHead   ClubRole = "head"
)

// Category is the fixed set of club categories.
type Category string

const (
	CategoryCultural  Category = "Cultural"
	CategoryTechnical Category = "Technical"
	CategoryLiterary  Category = "Literary"
	CategorySports    Category = "Sports"
)

// Valid reports whether c is one of the known categories.
func (c Category) Valid() bool {
	switch c {
	case CategoryCultural, CategoryTechnical, CategoryLiterary, CategorySports:
		return true
	}
	return false
}
