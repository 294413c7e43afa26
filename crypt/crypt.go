// Package crypt implements the codec's one standard encryptor,
// AES-128 + SHA-512 password-based authenticated encryption (spec.md
// §6.1, §6.2 "the standard AES-128 + SHA-512 encryptor"). Concrete
// symmetric encryption is an external collaborator per spec.md §1; this
// is the codec's own reference implementation of that collaborator,
// structured the way compress.Codec structures its own external
// collaborator (a Seal/Open pair keyed by a stable identifier) so the
// stream-framing pipeline in friz.go can treat compression and encryption
// uniformly.
package crypt

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha512"
	"fmt"
	"io"

	"github.com/mtlynch/friz/errs"
	"golang.org/x/crypto/pbkdf2"
)

const (
	keyLength  = 16 // AES-128
	saltLength = 16
	iterations = 100_000
)

// Encryptor seals and opens a byte payload using password-derived key
// material (spec.md §4.7 steps 4, §6.2 "password").
type Encryptor interface {
	Seal(password, plaintext []byte) ([]byte, error)
	Open(password, ciphertext []byte) ([]byte, error)
}

// AES128SHA512 implements Encryptor using PBKDF2-HMAC-SHA512 key
// derivation and AES-128-GCM for authenticated encryption. The derivation
// salt and the GCM nonce are both stored alongside the ciphertext, since
// neither is secret: `[salt(16)][nonce(12)][ciphertext+tag]`.
type AES128SHA512 struct{}

var _ Encryptor = AES128SHA512{}

// Seal derives a key from password and a fresh random salt, then
// encrypts plaintext under AES-128-GCM.
func (AES128SHA512) Seal(password, plaintext []byte) ([]byte, error) {
	if len(password) == 0 {
		return nil, errs.ErrPasswordRequired
	}

	salt := make([]byte, saltLength)
	if _, err := io.ReadFull(rand.Reader, salt); err != nil {
		return nil, fmt.Errorf("crypt: generating salt: %w", err)
	}

	gcm, err := newGCM(password, salt)
	if err != nil {
		return nil, err
	}

	nonce := make([]byte, gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, fmt.Errorf("crypt: generating nonce: %w", err)
	}

	out := make([]byte, 0, saltLength+len(nonce)+len(plaintext)+gcm.Overhead())
	out = append(out, salt...)
	out = append(out, nonce...)
	out = gcm.Seal(out, nonce, plaintext, nil)

	return out, nil
}

// Open reverses Seal, authenticating the ciphertext before returning
// plaintext. A wrong password produces a GCM authentication failure,
// which the caller wraps as errs.ErrCryptoFailure (spec.md §7
// CryptoFailure, §8 property 6).
func (AES128SHA512) Open(password, ciphertext []byte) ([]byte, error) {
	if len(password) == 0 {
		return nil, errs.ErrPasswordRequired
	}
	if len(ciphertext) < saltLength {
		return nil, fmt.Errorf("%w: ciphertext shorter than salt", errs.ErrCryptoFailure)
	}

	salt, rest := ciphertext[:saltLength], ciphertext[saltLength:]

	gcm, err := newGCM(password, salt)
	if err != nil {
		return nil, err
	}
	if len(rest) < gcm.NonceSize() {
		return nil, fmt.Errorf("%w: ciphertext shorter than nonce", errs.ErrCryptoFailure)
	}

	nonce, sealed := rest[:gcm.NonceSize()], rest[gcm.NonceSize():]

	plaintext, err := gcm.Open(nil, nonce, sealed, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errs.ErrCryptoFailure, err) //nolint:errorlint
	}

	return plaintext, nil
}

func newGCM(password, salt []byte) (cipher.AEAD, error) {
	key := pbkdf2.Key(password, salt, iterations, keyLength, sha512.New)

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("crypt: constructing AES cipher: %w", err)
	}

	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("crypt: constructing GCM mode: %w", err)
	}

	return gcm, nil
}
