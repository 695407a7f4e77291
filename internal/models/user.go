package models

type UserRole string

const (
	UserRoleUser    UserRole = "User"
	UserRoleManager UserRole = "Manager"
)

type User struct {
	Base
	Name  string   `gorm:"type:varchar(200);not null" json:"name"`
	Email string   `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	Role  UserRole `gorm:"type:varchar(20);not null;default:'User'" json:"role"`

	// Relations
	Projects []Project     `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Comments []TaskComment `gorm:"foreignKey:UserID;constraint:OnDelete:RESTRICT" json:"-"`
	History  []TaskHistory `gorm:"foreignKey:UserID;constraint:OnDelete:RESTRICT" json:"-"`
}

// IsManager reports whether the user may read performance reports.
func (u *User) IsManager() bool {
	return u.Role == UserRoleManager
}
