package crypt

import (
	"bytes"
	"errors"
	"testing"

	"github.com/mtlynch/friz/errs"
)

func TestAES128SHA512RoundTrip(t *testing.T) {
	enc := AES128SHA512{}
	plaintext := []byte("the quick brown fox jumps over the lazy dog")
	password := []byte("correct horse battery staple")

	sealed, err := enc.Seal(password, plaintext)
	if err != nil {
		t.Fatalf("Seal: %v", err)
	}
	if bytes.Equal(sealed, plaintext) {
		t.Fatal("sealed output must not equal plaintext")
	}

	opened, err := enc.Open(password, sealed)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if !bytes.Equal(opened, plaintext) {
		t.Errorf("round trip mismatch: got %q, want %q", opened, plaintext)
	}
}

func TestAES128SHA512WrongPasswordFails(t *testing.T) {
	enc := AES128SHA512{}
	plaintext := []byte("sensitive payload")

	sealed, err := enc.Seal([]byte("correct password"), plaintext)
	if err != nil {
		t.Fatalf("Seal: %v", err)
	}

	_, err = enc.Open([]byte("wrong password"), sealed)
	if err == nil {
		t.Fatal("expected Open to fail with the wrong password")
	}
	if !errors.Is(err, errs.ErrCryptoFailure) {
		t.Errorf("expected errs.ErrCryptoFailure, got %v", err)
	}
}

func TestAES128SHA512TamperedCiphertextFails(t *testing.T) {
	enc := AES128SHA512{}
	password := []byte("password")

	sealed, err := enc.Seal(password, []byte("payload"))
	if err != nil {
		t.Fatalf("Seal: %v", err)
	}

	tampered := make([]byte, len(sealed))
	copy(tampered, sealed)
	tampered[len(tampered)-1] ^= 0xFF

	if _, err := enc.Open(password, tampered); err == nil {
		t.Fatal("expected Open to fail authentication on tampered ciphertext")
	}
}

func TestAES128SHA512EmptyPasswordRejected(t *testing.T) {
	enc := AES128SHA512{}

	if _, err := enc.Seal(nil, []byte("x")); !errors.Is(err, errs.ErrPasswordRequired) {
		t.Errorf("Seal with empty password: got %v, want errs.ErrPasswordRequired", err)
	}
	if _, err := enc.Open(nil, []byte("x")); !errors.Is(err, errs.ErrPasswordRequired) {
		t.Errorf("Open with empty password: got %v, want errs.ErrPasswordRequired", err)
	}
}

func TestAES128SHA512DistinctSaltsPerSeal(t *testing.T) {
	enc := AES128SHA512{}
	password := []byte("password")
	plaintext := []byte("same plaintext every time")

	a, err := enc.Seal(password, plaintext)
	if err != nil {
		t.Fatalf("Seal: %v", err)
	}
	b, err := enc.Seal(password, plaintext)
	if err != nil {
		t.Fatalf("Seal: %v", err)
	}
	if bytes.Equal(a, b) {
		t.Error("two Seal calls with identical input produced identical output; salt/nonce are not being randomized")
	}
}

func TestAES128SHA512OpenRejectsTruncatedInput(t *testing.T) {
	enc := AES128SHA512{}
	if _, err := enc.Open([]byte("password"), []byte{1, 2, 3}); err == nil {
		t.Fatal("expected Open to reject ciphertext shorter than the salt")
	}
}
