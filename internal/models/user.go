package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User represents a registered customer account.
//
// OTPCode and OTPExpiresAt are set together while a mobile verification
// attempt is outstanding and cleared together once it resolves.
type User struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Username     string             `bson:"username" json:"username"`
	PasswordHash string             `bson:"password" json:"-"`
	Mobile       string             `bson:"mobile,omitempty" json:"mobile,omitempty"`
	OTPCode      string             `bson:"otp,omitempty" json:"-"`
	OTPExpiresAt *time.Time         `bson:"otp_expires,omitempty" json:"-"`
	IsVerified   bool               `bson:"is_verified" json:"is_verified"`
	CreatedAt    time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt    time.Time          `bson:"updated_at" json:"updated_at"`
}

// HasPendingOTP reports whether a verification code is currently stored.
func (u *User) HasPendingOTP() bool {
	return u.OTPCode != "" && u.OTPExpiresAt != nil
}

// ClearOTP removes any outstanding verification code.
func (u *User) ClearOTP() {
	u.OTPCode = ""
	u.OTPExpiresAt = nil
}
