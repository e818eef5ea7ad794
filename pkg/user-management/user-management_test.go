package usermanagement

import (
	"errors"
	"sync"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	userTypes "github.com/quiz-framework/quiz-backend/pkg/user-management/types"
)

// in-memory credential store with the same atomicity guarantees as the Mongo
// implementation: upsert keyed by phone number, conditional clear on the code
type memoryCredentialStore struct {
	mu          sync.Mutex
	credentials map[string]userTypes.UserCredential

	failUpsert bool
	failFind   bool
}

func newMemoryCredentialStore() *memoryCredentialStore {
	return &memoryCredentialStore{
		credentials: map[string]userTypes.UserCredential{},
	}
}

func (s *memoryCredentialStore) FindCredentialByPhone(phoneNumber string) (userTypes.UserCredential, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failFind {
		return userTypes.UserCredential{}, errors.New("find failed")
	}
	credential, ok := s.credentials[phoneNumber]
	if !ok {
		return userTypes.UserCredential{}, mongo.ErrNoDocuments
	}
	return credential, nil
}

func (s *memoryCredentialStore) UpsertOTP(phoneNumber string, code string, expiresAt time.Time) (userTypes.UserCredential, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failUpsert {
		return userTypes.UserCredential{}, errors.New("upsert failed")
	}
	credential, ok := s.credentials[phoneNumber]
	if !ok {
		credential = userTypes.UserCredential{
			ID:          primitive.NewObjectID(),
			PhoneNumber: phoneNumber,
			CreatedAt:   time.Now(),
		}
	}
	credential.OTP = code
	credential.OTPExpiresAt = expiresAt
	s.credentials[phoneNumber] = credential
	return credential, nil
}

func (s *memoryCredentialStore) ClearOTP(phoneNumber string, code string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	credential, ok := s.credentials[phoneNumber]
	if !ok || credential.OTP != code {
		return false, nil
	}
	credential.OTP = ""
	credential.OTPExpiresAt = time.Time{}
	credential.LastVerifiedAt = time.Now()
	s.credentials[phoneNumber] = credential
	return true, nil
}

func (s *memoryCredentialStore) setExpiry(phoneNumber string, expiresAt time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	credential := s.credentials[phoneNumber]
	credential.OTPExpiresAt = expiresAt
	s.credentials[phoneNumber] = credential
}

func noDelivery(phoneNumber string, code string, expiresAt time.Time) error {
	return nil
}

func TestRequestOTPInvalidPhoneNumber(t *testing.T) {
	Init(newMemoryCredentialStore(), 5*time.Minute)

	for _, phone := range []string{"", "12345", "abc1234", "+49151123456"} {
		_, err := RequestOTP(phone, noDelivery)
		if !errors.Is(err, ErrInvalidPhoneNumber) {
			t.Errorf("expected ErrInvalidPhoneNumber for %q, got %v", phone, err)
		}
	}
}

func TestRequestOTPStoresCodeAndAssignsStableID(t *testing.T) {
	store := newMemoryCredentialStore()
	Init(store, 5*time.Minute)

	var deliveredCode string
	credential, err := RequestOTP("5551234", func(phone string, code string, expiresAt time.Time) error {
		deliveredCode = code
		return nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if credential.ID.IsZero() {
		t.Error("expected a stable user id to be assigned")
	}
	if len(deliveredCode) != 4 {
		t.Errorf("expected a 4 digit code, got %q", deliveredCode)
	}

	stored, err := store.FindCredentialByPhone("5551234")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stored.OTP != deliveredCode {
		t.Error("stored code differs from delivered code")
	}
	remaining := time.Until(stored.OTPExpiresAt)
	if remaining <= 4*time.Minute || remaining > 5*time.Minute {
		t.Errorf("expected roughly 5m expiry, got %s", remaining)
	}

	// the stable id never changes across further requests
	credential2, err := RequestOTP("5551234", noDelivery)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if credential2.ID != credential.ID {
		t.Error("stable user id changed between requests")
	}
}

func TestRequestOTPDeliveryFailureKeepsStoredCode(t *testing.T) {
	store := newMemoryCredentialStore()
	Init(store, 5*time.Minute)

	credential, err := RequestOTP("5551234", func(phone string, code string, expiresAt time.Time) error {
		return errors.New("gateway unreachable")
	})
	if !errors.Is(err, ErrDeliveryFailed) {
		t.Fatalf("expected ErrDeliveryFailed, got %v", err)
	}
	if credential.ID.IsZero() {
		t.Error("expected the credential from the partial success")
	}

	// the stored code is still valid and verifiable
	stored, _ := store.FindCredentialByPhone("5551234")
	verified, err := VerifyOTP("5551234", stored.OTP)
	if err != nil {
		t.Fatalf("expected verification to succeed after delivery failure, got %v", err)
	}
	if verified.ID != credential.ID {
		t.Error("verified id differs from request-time id")
	}
}

func TestRequestOTPStorageFailure(t *testing.T) {
	store := newMemoryCredentialStore()
	store.failUpsert = true
	Init(store, 5*time.Minute)

	_, err := RequestOTP("5551234", noDelivery)
	if !errors.Is(err, ErrStorageUnavailable) {
		t.Fatalf("expected ErrStorageUnavailable, got %v", err)
	}
}

func TestVerifyOTPUnknownPrincipal(t *testing.T) {
	Init(newMemoryCredentialStore(), 5*time.Minute)

	_, err := VerifyOTP("9998887776", "1234")
	if !errors.Is(err, ErrUnknownPrincipal) {
		t.Fatalf("expected ErrUnknownPrincipal, got %v", err)
	}
}

func TestVerifyOTPRoundTrip(t *testing.T) {
	store := newMemoryCredentialStore()
	Init(store, 5*time.Minute)

	var code string
	requested, err := RequestOTP("9998887776", func(phone string, c string, expiresAt time.Time) error {
		code = c
		return nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	verified, err := VerifyOTP("9998887776", code)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if verified.ID != requested.ID {
		t.Error("verified stable id differs from request-time id")
	}
	if verified.HasPendingOTP() {
		t.Error("expected OTP fields to be cleared after success")
	}

	// a second attempt with the same code hits the idle state
	_, err = VerifyOTP("9998887776", code)
	if !errors.Is(err, ErrNoPendingVerification) {
		t.Fatalf("expected ErrNoPendingVerification on reuse, got %v", err)
	}
}

func TestVerifyOTPMismatchKeepsCodeValid(t *testing.T) {
	store := newMemoryCredentialStore()
	Init(store, 5*time.Minute)

	var code string
	_, err := RequestOTP("5551234", func(phone string, c string, expiresAt time.Time) error {
		code = c
		return nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	wrong := "0000"
	if wrong == code {
		wrong = "0001"
	}
	_, err = VerifyOTP("5551234", wrong)
	if !errors.Is(err, ErrCodeMismatch) {
		t.Fatalf("expected ErrCodeMismatch, got %v", err)
	}

	// no single-use burn on a failed attempt, the right code still works
	if _, err := VerifyOTP("5551234", code); err != nil {
		t.Fatalf("expected retry with correct code to succeed, got %v", err)
	}
}

func TestNewRequestInvalidatesPreviousCode(t *testing.T) {
	store := newMemoryCredentialStore()
	Init(store, 5*time.Minute)

	var firstCode string
	_, err := RequestOTP("5551234", func(phone string, c string, expiresAt time.Time) error {
		firstCode = c
		return nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var secondCode string
	for {
		_, err = RequestOTP("5551234", func(phone string, c string, expiresAt time.Time) error {
			secondCode = c
			return nil
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if secondCode != firstCode {
			break
		}
	}

	_, err = VerifyOTP("5551234", firstCode)
	if !errors.Is(err, ErrCodeMismatch) {
		t.Fatalf("expected first code to be invalid after second request, got %v", err)
	}

	if _, err := VerifyOTP("5551234", secondCode); err != nil {
		t.Fatalf("expected second code to verify, got %v", err)
	}
}

func TestVerifyOTPExpiryBoundary(t *testing.T) {
	store := newMemoryCredentialStore()
	Init(store, 5*time.Minute)

	var code string
	_, err := RequestOTP("5551234", func(phone string, c string, expiresAt time.Time) error {
		code = c
		return nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// at exactly expiresAt (and later) the code is expired, distinct from a
	// mismatch
	store.setExpiry("5551234", time.Now())
	_, err = VerifyOTP("5551234", code)
	if !errors.Is(err, ErrCodeExpired) {
		t.Fatalf("expected ErrCodeExpired at the boundary, got %v", err)
	}

	// strictly before the boundary the code still verifies
	store.setExpiry("5551234", time.Now().Add(time.Minute))
	if _, err := VerifyOTP("5551234", code); err != nil {
		t.Fatalf("expected verification before expiry to succeed, got %v", err)
	}
}

func TestVerifyOTPStorageFailure(t *testing.T) {
	store := newMemoryCredentialStore()
	Init(store, 5*time.Minute)

	if _, err := RequestOTP("5551234", noDelivery); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	store.failFind = true
	_, err := VerifyOTP("5551234", "1234")
	if !errors.Is(err, ErrStorageUnavailable) {
		t.Fatalf("expected ErrStorageUnavailable, got %v", err)
	}
}

func TestConcurrentRequestsKeepSingleIdentity(t *testing.T) {
	store := newMemoryCredentialStore()
	Init(store, 5*time.Minute)

	const workers = 16
	ids := make([]primitive.ObjectID, workers)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			credential, err := RequestOTP("7775551234", noDelivery)
			if err != nil {
				t.Errorf("unexpected error: %v", err)
				return
			}
			ids[i] = credential.ID
		}(i)
	}
	wg.Wait()

	for i := 1; i < workers; i++ {
		if ids[i] != ids[0] {
			t.Fatal("concurrent requests produced more than one stable user id")
		}
	}
}
