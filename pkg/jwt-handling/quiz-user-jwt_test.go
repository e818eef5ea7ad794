package jwthandling

import (
	"testing"
	"time"
)

func TestQuizUserTokenRoundTrip(t *testing.T) {
	secret := "test-sign-key"

	token, err := GenerateNewQuizUserToken(time.Hour, "6631a9f1c1d2b30012ab34cd", "5551234", secret)
	if err != nil {
		t.Fatalf("unexpected error when generating token: %v", err)
	}

	claims, valid, err := ValidateQuizUserToken(token, secret)
	if err != nil {
		t.Fatalf("unexpected error when validating token: %v", err)
	}
	if !valid {
		t.Fatal("expected token to be valid")
	}
	if claims.Subject != "6631a9f1c1d2b30012ab34cd" {
		t.Errorf("unexpected subject: %s", claims.Subject)
	}
	if claims.PhoneNumber != "5551234" {
		t.Errorf("unexpected phone number: %s", claims.PhoneNumber)
	}
	if claims.ExpiresAt.Time.Before(time.Now().Add(59 * time.Minute)) {
		t.Errorf("expiry earlier than expected: %s", claims.ExpiresAt.Time)
	}
}

func TestQuizUserTokenWrongKey(t *testing.T) {
	token, err := GenerateNewQuizUserToken(time.Hour, "userid", "5551234", "correct-key")
	if err != nil {
		t.Fatalf("unexpected error when generating token: %v", err)
	}

	_, valid, err := ValidateQuizUserToken(token, "wrong-key")
	if valid {
		t.Error("expected token to be invalid with wrong key")
	}
	if err == nil {
		t.Error("expected validation error with wrong key")
	}
}

func TestQuizUserTokenExpired(t *testing.T) {
	token, err := GenerateNewQuizUserToken(-time.Minute, "userid", "5551234", "key")
	if err != nil {
		t.Fatalf("unexpected error when generating token: %v", err)
	}

	_, valid, err := ValidateQuizUserToken(token, "key")
	if valid {
		t.Error("expected expired token to be invalid")
	}
	if err == nil {
		t.Error("expected validation error for expired token")
	}
}
