// Package cryptox seals small secrets stored on the analyst's machine.
//
// The console keeps the authentication service's cookies in a local SQLite
// file. Cookie values are sealed with XChaCha20-Poly1305 under a random
// per-install key, so copying the database alone does not hand over a
// live session.
package cryptox

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/securelogx/console/internal/common"
	"github.com/securelogx/console/internal/filex"
	"golang.org/x/crypto/chacha20poly1305"
)

// KeySize is the length of the store key in bytes.
const KeySize = chacha20poly1305.KeySize

// Seal encrypts plaintext under key and returns the ciphertext and the random
// nonce used. additionalData is authenticated but not encrypted; callers bind
// the ciphertext to its row identity with it.
func Seal(plaintext, key, additionalData []byte) (ciphertext, nonce []byte, err error) {
	aead, err := chacha20poly1305.NewX(key)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", common.ErrInvalidKey, err)
	}

	nonce = common.GenerateRandByteArray(aead.NonceSize())
	ciphertext = aead.Seal(nil, nonce, plaintext, additionalData)
	return ciphertext, nonce, nil
}

// Open reverses Seal. It fails if the key, nonce, ciphertext or
// additionalData do not match what was sealed.
func Open(ciphertext, nonce, key, additionalData []byte) ([]byte, error) {
	aead, err := chacha20poly1305.NewX(key)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrInvalidKey, err)
	}
	if len(nonce) != aead.NonceSize() {
		return nil, fmt.Errorf("open: bad nonce length %d", len(nonce))
	}
	return aead.Open(nil, nonce, ciphertext, additionalData)
}

// LoadOrCreateKey reads the key stored at path. When the file does not exist
// a fresh random key is written there with 0600 permissions.
func LoadOrCreateKey(path string) ([]byte, error) {
	key, err := os.ReadFile(path)
	if err == nil {
		if len(key) != KeySize {
			return nil, fmt.Errorf("%w: %s holds %d bytes, want %d", common.ErrInvalidKey, path, len(key), KeySize)
		}
		return key, nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("read key: %w", err)
	}

	if _, err := filex.EnsureParentDir(path); err != nil {
		return nil, err
	}

	key = common.GenerateRandByteArray(KeySize)
	if err := os.WriteFile(path, key, 0o600); err != nil {
		return nil, fmt.Errorf("write key: %w", err)
	}
	return key, nil
}
