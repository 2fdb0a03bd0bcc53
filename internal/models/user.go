package models

import "time"

// Credential is the auth provider's record for an account. It is owned by the
// auth service; the task UI never touches it directly.
type Credential struct {
	ID           string `gorm:"primarykey"`
	Email        string `gorm:"uniqueIndex;not null"`
	PasswordHash string `gorm:"not null"`
	VerifyCode   string
	ConfirmedAt  *time.Time
	CreatedAt    time.Time
}

// Profile is the user-facing account record, written separately from the
// credential at sign-up.
type Profile struct {
	ID        string `gorm:"primarykey" json:"id"`
	Email     string `gorm:"uniqueIndex;not null" json:"email"`
	FullName  string `json:"full_name"`
	CreatedAt time.Time
}
