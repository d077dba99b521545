package auth

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"errors"
	"fmt"
)

// sealBox encrypts session records at rest with AES-256-GCM. The key is
// derived from SESSION_CRYPT_KEY so the Redis contents are opaque without it.
type sealBox struct {
	aead cipher.AEAD
}

func newSealBox(cryptKey string) (*sealBox, error) {
	key := sha256.Sum256([]byte(cryptKey))
	block, err := aes.NewCipher(key[:])
	if err != nil {
		return nil, fmt.Errorf("seal box: %w", err)
	}
	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("seal box: %w", err)
	}
	return &sealBox{aead: aead}, nil
}

// seal returns nonce||ciphertext.
func (b *sealBox) seal(plain []byte) ([]byte, error) {
	nonce := make([]byte, b.aead.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return nil, fmt.Errorf("seal nonce: %w", err)
	}
	return b.aead.Seal(nonce, nonce, plain, nil), nil
}

var errSealCorrupt = errors.New("sealed record corrupt")

func (b *sealBox) open(sealed []byte) ([]byte, error) {
	ns := b.aead.NonceSize()
	if len(sealed) < ns {
		return nil, errSealCorrupt
	}
	plain, err := b.aead.Open(nil, sealed[:ns], sealed[ns:], nil)
	if err != nil {
		return nil, errSealCorrupt
	}
	return plain, nil
}
