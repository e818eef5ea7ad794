package types

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// UserCredential is the identity anchor for phone number based authentication.
// There is exactly one record per phone number; the document ID is the stable
// user id, assigned when the record is first created and never regenerated.
//
// OTP and OTPExpiresAt are set and cleared together: both present while a
// verification attempt is outstanding, both absent in the idle state.
type UserCredential struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	PhoneNumber string             `bson:"phoneNumber" json:"phoneNumber"`

	OTP          string    `bson:"otp,omitempty" json:"-"`
	OTPExpiresAt time.Time `bson:"otpExpiresAt,omitempty" json:"-"`

	CreatedAt      time.Time `bson:"createdAt" json:"createdAt"`
	LastVerifiedAt time.Time `bson:"lastVerifiedAt,omitempty" json:"lastVerifiedAt,omitempty"`
}

// HasPendingOTP reports whether a verification attempt is outstanding.
func (c UserCredential) HasPendingOTP() bool {
	return c.OTP != "" && !c.OTPExpiresAt.IsZero()
}
