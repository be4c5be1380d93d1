package models

type User struct {
	ID       uint64 `gorm:"primarykey" json:"id"`
	Username string `gorm:"type:varchar(255);uniqueIndex;not null" json:"username"`
	// Password is kept exactly as registered.
	Password string `gorm:"not null" json:"-"`
}
