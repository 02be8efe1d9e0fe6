package domain

// User is an account that can join teams and write posts
type User struct {
	BaseModel
	Username     string `gorm:"type:varchar(50);not null;uniqueIndex:idx_users_username" json:"username"`
	Nickname     string `gorm:"type:varchar(50);not null" json:"nickname"`
	PasswordHash string `gorm:"type:varchar(255);not null" json:"-"`
	ProfileImage string `gorm:"type:text" json:"profileImage,omitempty"`
}

// TableName specifies the table name for User
func (User) TableName() string {
	return "users"
}
