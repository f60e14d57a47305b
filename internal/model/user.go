package model

type UserRole string

const (
	RoleAdmin    UserRole = "admin"
	RoleEmployee UserRole = "employee"
)

func (r UserRole) Valid() bool {
	return r == RoleAdmin || r == RoleEmployee
}

// swagger:model User
type User struct {
	BaseModel
	Username   string    `gorm:"size:150;uniqueIndex;not null" json:"username"`
	Email      string    `gorm:"size:254;uniqueIndex;not null" json:"email"`
	Password   string    `gorm:"size:100;not null" json:"-"`
	Role       UserRole  `gorm:"size:20;not null;default:'employee'" json:"role"`
	EmployeeID *uint     `gorm:"uniqueIndex" json:"employeeId"`
	Employee   *Employee `gorm:"foreignKey:EmployeeID" json:"employee,omitempty"`
}

func (User) TableName() string {
	return "users"
}
