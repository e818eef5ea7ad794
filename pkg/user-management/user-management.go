package usermanagement

import (
	"crypto/subtle"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"

	userTypes "github.com/quiz-framework/quiz-backend/pkg/user-management/types"
	umUtils "github.com/quiz-framework/quiz-backend/pkg/user-management/utils"
)

const DEFAULT_OTP_TTL = 5 * time.Minute

// CredentialStore is the persistence collaborator holding one record per
// phone number. Implemented by pkg/db/user; tests use an in-memory fake.
type CredentialStore interface {
	FindCredentialByPhone(phoneNumber string) (userTypes.UserCredential, error)
	UpsertOTP(phoneNumber string, code string, expiresAt time.Time) (userTypes.UserCredential, error)
	ClearOTP(phoneNumber string, code string) (cleared bool, err error)
}

var (
	credentialStore CredentialStore
	otpTTL          time.Duration
)

func Init(
	store CredentialStore,
	otpLifetime time.Duration,
) {
	credentialStore = store
	otpTTL = otpLifetime
	if otpTTL <= 0 {
		otpTTL = DEFAULT_OTP_TTL
	}
}

// RequestOTP generates and stores a fresh OTP for the phone number, then
// hands it to sendCode for delivery. The store happens first, in one atomic
// upsert: an existing credential keeps its stable user id and only the OTP
// fields are overwritten, which permanently invalidates any previously
// pending code. When delivery fails the stored OTP stays valid and the error
// wraps ErrDeliveryFailed so the caller can report the partial success.
func RequestOTP(
	phoneNumber string,
	sendCode func(phoneNumber string, code string, expiresAt time.Time) error,
) (userTypes.UserCredential, error) {
	phoneNumber = umUtils.SanitizePhoneNumber(phoneNumber)
	if !umUtils.CheckPhoneNumberFormat(phoneNumber) {
		return userTypes.UserCredential{}, ErrInvalidPhoneNumber
	}

	code, err := umUtils.GenerateOTPCode(umUtils.OTP_CODE_LENGTH)
	if err != nil {
		return userTypes.UserCredential{}, err
	}
	expiresAt := time.Now().Add(otpTTL)

	credential, err := credentialStore.UpsertOTP(phoneNumber, code, expiresAt)
	if err != nil {
		return userTypes.UserCredential{}, fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}

	if err := sendCode(phoneNumber, code, expiresAt); err != nil {
		return credential, fmt.Errorf("%w: %v", ErrDeliveryFailed, err)
	}
	return credential, nil
}

// VerifyOTP checks the submitted code against the outstanding one and, on
// success, durably clears the OTP fields before returning. A failed attempt
// leaves the outstanding code untouched; expiry is only enforced here, there
// is no background sweep.
func VerifyOTP(phoneNumber string, code string) (userTypes.UserCredential, error) {
	phoneNumber = umUtils.SanitizePhoneNumber(phoneNumber)
	if !umUtils.CheckPhoneNumberFormat(phoneNumber) {
		return userTypes.UserCredential{}, ErrInvalidPhoneNumber
	}

	credential, err := credentialStore.FindCredentialByPhone(phoneNumber)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return userTypes.UserCredential{}, ErrUnknownPrincipal
		}
		return userTypes.UserCredential{}, fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}

	if !credential.HasPendingOTP() {
		return userTypes.UserCredential{}, ErrNoPendingVerification
	}

	if !codesMatch(code, credential.OTP) {
		return userTypes.UserCredential{}, ErrCodeMismatch
	}

	if !time.Now().Before(credential.OTPExpiresAt) {
		return userTypes.UserCredential{}, ErrCodeExpired
	}

	cleared, err := credentialStore.ClearOTP(phoneNumber, credential.OTP)
	if err != nil {
		return userTypes.UserCredential{}, fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}
	if !cleared {
		// lost a race: either a concurrent verify already consumed the code
		// or a fresh request replaced it in between; re-read to report the
		// state that actually won
		current, err := credentialStore.FindCredentialByPhone(phoneNumber)
		if err != nil && !errors.Is(err, mongo.ErrNoDocuments) {
			return userTypes.UserCredential{}, fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
		}
		if !current.HasPendingOTP() {
			return userTypes.UserCredential{}, ErrNoPendingVerification
		}
		return userTypes.UserCredential{}, ErrCodeMismatch
	}

	credential.OTP = ""
	credential.OTPExpiresAt = time.Time{}
	credential.LastVerifiedAt = time.Now()
	return credential, nil
}

// constant time comparison so the submitted code cannot be probed digit by
// digit through response timing
func codesMatch(submitted string, stored string) bool {
	if len(submitted) != len(stored) {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(submitted), []byte(stored)) == 1
}
