package store

import (
	"context"
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/json"
	"fmt"

	"golang.org/x/crypto/argon2"
)

// SealedStore wraps another Store and encrypts the record before it reaches
// disk. The key is derived from a passphrase with argon2id; a fresh salt and
// nonce are generated on every Save and stored inside the envelope, so no
// key material persists outside the passphrase.
type SealedStore struct {
	inner      Store
	passphrase []byte
}

// sealedEnvelope is the JSON shape actually handed to the inner store.
type sealedEnvelope struct {
	Salt       []byte `json:"salt"`
	Nonce      []byte `json:"nonce"`
	Ciphertext []byte `json:"ciphertext"`
}

func NewSealedStore(inner Store, passphrase []byte) *SealedStore {
	return &SealedStore{inner: inner, passphrase: passphrase}
}

func deriveKey(passphrase, salt []byte) []byte {
	return argon2.IDKey(passphrase, salt, 1, 64*1024, 4, 32)
}

func newGCM(key []byte) (cipher.AEAD, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	return cipher.NewGCM(block)
}

func (s *SealedStore) Save(ctx context.Context, data []byte) error {
	salt := make([]byte, 16)
	if _, err := rand.Read(salt); err != nil {
		return fmt.Errorf("generate salt: %w", err)
	}

	aead, err := newGCM(deriveKey(s.passphrase, salt))
	if err != nil {
		return fmt.Errorf("init cipher: %w", err)
	}

	nonce := make([]byte, aead.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return fmt.Errorf("generate nonce: %w", err)
	}

	env := sealedEnvelope{
		Salt:       salt,
		Nonce:      nonce,
		Ciphertext: aead.Seal(nil, nonce, data, nil),
	}
	blob, err := json.Marshal(env)
	if err != nil {
		return fmt.Errorf("encode sealed record: %w", err)
	}
	return s.inner.Save(ctx, blob)
}

func (s *SealedStore) Load(ctx context.Context) ([]byte, error) {
	blob, err := s.inner.Load(ctx)
	if err != nil {
		return nil, err
	}

	var env sealedEnvelope
	if err := json.Unmarshal(blob, &env); err != nil {
		return nil, fmt.Errorf("decode sealed record: %w", err)
	}

	aead, err := newGCM(deriveKey(s.passphrase, env.Salt))
	if err != nil {
		return nil, fmt.Errorf("init cipher: %w", err)
	}

	plaintext, err := aead.Open(nil, env.Nonce, env.Ciphertext, nil)
	if err != nil {
		return nil, fmt.Errorf("open sealed record: %w", err)
	}
	return plaintext, nil
}

func (s *SealedStore) Delete(ctx context.Context) error { return s.inner.Delete(ctx) }

func (s *SealedStore) Close() error { return s.inner.Close() }
