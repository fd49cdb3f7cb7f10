package password_test

import (
	"errors"
	"strings"
	"testing"

	"lunabay/shared/password"
)

func TestHashAndVerify(t *testing.T) {
	codes := []string{
		"483920",
		"000001",
		"Complex!P@ssw0rd#123",
	}

	for _, code := range codes {
		t.Run(code, func(t *testing.T) {
			hash, err := password.Hash(code)
			if err != nil {
				t.Fatalf("failed to hash: %v", err)
			}

			if !strings.HasPrefix(hash, "$2a$") && !strings.HasPrefix(hash, "$2b$") && !strings.HasPrefix(hash, "$2y$") {
				t.Errorf("expected bcrypt hash format, got %s", hash)
			}

			if err := password.Verify(code, hash); err != nil {
				t.Errorf("expected verification to succeed, got error: %v", err)
			}

			if err := password.Verify("999999", hash); !errors.Is(err, password.ErrInvalidPassword) {
				t.Errorf("expected ErrInvalidPassword for wrong value, got %v", err)
			}
		})
	}
}

func TestHashEmpty(t *testing.T) {
	if _, err := password.Hash(""); err == nil {
		t.Error("expected error for empty value")
	}
}

func TestVerifyEmptyInputs(t *testing.T) {
	hash, err := password.Hash("483920")
	if err != nil {
		t.Fatalf("failed to hash: %v", err)
	}

	if err := password.Verify("", hash); !errors.Is(err, password.ErrInvalidPassword) {
		t.Errorf("expected ErrInvalidPassword for empty value, got %v", err)
	}
	if err := password.Verify("483920", ""); !errors.Is(err, password.ErrInvalidPassword) {
		t.Errorf("expected ErrInvalidPassword for empty hash, got %v", err)
	}
}

func TestHashUsesSalt(t *testing.T) {
	first, err := password.Hash("483920")
	if err != nil {
		t.Fatalf("failed to hash: %v", err)
	}

	second, err := password.Hash("483920")
	if err != nil {
		t.Fatalf("failed to hash: %v", err)
	}

	if first == second {
		t.Error("expected different hashes for the same value")
	}
}
