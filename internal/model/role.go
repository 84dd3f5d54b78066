package model

// Role represents user roles in the system
type Role struct {
	ID          uint        `gorm:"primaryKey" json:"id"`
	Code        string      `gorm:"type:varchar(50);uniqueIndex;not null" json:"code"`
	Name        string      `gorm:"type:varchar(100)" json:"name"`
	Description string      `gorm:"type:text" json:"description"`
	Privileges  []Privilege `gorm:"many2many:role_privileges;" json:"privileges,omitempty"`
}

const (
	RoleSuperuser = "SUPERUSER"
	RoleStaff     = "STAFF"
)

var DefaultRoles = []Role{
	{
		Code:        RoleSuperuser,
		Name:        "Superuser",
		Description: "All privileges, including updating and deleting items, purchases and deliveries",
	},
	{
		Code:        RoleStaff,
		Name:        "Staff",
		Description: "Day to day recording of purchases, sales and deliveries",
	},
}

// PrivilegesFor picks the default privilege set of a role code.
func PrivilegesFor(roleCode string, all []Privilege) []Privilege {
	if roleCode == RoleSuperuser {
		return all
	}
	out := make([]Privilege, 0, len(all))
	for _, p := range all {
		if !p.Elevated {
			out = append(out, p)
		}
	}
	return out
}
