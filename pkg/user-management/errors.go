package usermanagement

import "errors"

// Error taxonomy of the OTP request/verify state machine. Handlers translate
// these into status codes; raw storage or gateway errors never reach the
// caller directly.
var (
	// ErrInvalidPhoneNumber: input rejected before touching storage.
	ErrInvalidPhoneNumber = errors.New("invalid phone number")

	// ErrUnknownPrincipal: no credential was ever created for this phone
	// number, an OTP has to be requested first.
	ErrUnknownPrincipal = errors.New("unknown phone number")

	// ErrNoPendingVerification: the credential is in the idle state, there is
	// nothing to verify.
	ErrNoPendingVerification = errors.New("no pending verification")

	// ErrCodeMismatch: submitted code does not match the outstanding one. The
	// outstanding OTP stays valid until expiry.
	ErrCodeMismatch = errors.New("otp code mismatch")

	// ErrCodeExpired: the outstanding code's lifetime has passed.
	ErrCodeExpired = errors.New("otp code expired")

	// ErrDeliveryFailed: the OTP was stored but could not be delivered. The
	// stored code remains valid; the caller reports the partial success.
	ErrDeliveryFailed = errors.New("otp delivery failed")

	// ErrStorageUnavailable: the persistence layer failed. Never retried
	// internally, the caller may repeat the whole operation.
	ErrStorageUnavailable = errors.New("storage unavailable")
)
