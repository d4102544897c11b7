package models

import "time"

const UserTable = "itam_users"

// User is a login account. ResetToken is single-use: it is cleared on the
// first successful password reset.
type User struct {
	ID           uint    `gorm:"primaryKey" json:"id"`
	Username     string  `gorm:"uniqueIndex;size:80;not null" json:"username"`
	Email        *string `gorm:"uniqueIndex;size:120" json:"email,omitempty"`
	PasswordHash string  `gorm:"size:255;not null" json:"-"`
	IsAdmin      bool    `gorm:"not null;default:false" json:"isAdmin"`
	IsActive     bool    `gorm:"not null;default:true" json:"isActive"`

	ResetToken       *string    `gorm:"size:100;index" json:"-"`
	ResetTokenExpiry *time.Time `json:"-"`

	LastLogin *time.Time `gorm:"index" json:"lastLogin,omitempty"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
}

func (User) TableName() string { return UserTable }

// VerifyResetToken checks exact token match and expiry.
func (u *User) VerifyResetToken(token string, now time.Time) bool {
	if u.ResetToken == nil || u.ResetTokenExpiry == nil {
		return false
	}
	if now.After(*u.ResetTokenExpiry) {
		return false
	}
	return *u.ResetToken == token
}

func (u *User) ClearResetToken() {
	u.ResetToken = nil
	u.ResetTokenExpiry = nil
}
