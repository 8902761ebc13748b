// Package vault seals shop bank details with XChaCha20-Poly1305.
//
// Envelopes look like "v1.<keyId>.<base64url(nonce||ciphertext)>". The key id
// is bound as associated data, so an envelope cannot be replayed under a
// different key id. Rotation adds a key and switches the active id; older
// envelopes keep decrypting as long as their key stays in the ring.
package vault

import (
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/drovo/drovo-service/internal/domain"
	"golang.org/x/crypto/chacha20poly1305"
)

const envelopeVersion = "v1"

var keyIDPattern = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

type Keyring struct {
	active string
	aeads  map[string]cipher.AEAD
}

// ParseKeys reads "id:hexkey,id:hexkey" into raw 32-byte keys.
func ParseKeys(spec string) (map[string][]byte, error) {
	keys := make(map[string][]byte)
	for _, pair := range strings.Split(spec, ",") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}
		id, hexKey, ok := strings.Cut(pair, ":")
		if !ok {
			return nil, fmt.Errorf("%w: key entry %q has no id", domain.ErrEncryptionConfig, pair)
		}
		raw, err := hex.DecodeString(hexKey)
		if err != nil {
			return nil, fmt.Errorf("%w: key %q is not hex", domain.ErrEncryptionConfig, id)
		}
		keys[id] = raw
	}
	return keys, nil
}

func NewKeyring(keys map[string][]byte, activeKeyID string) (*Keyring, error) {
	if len(keys) == 0 {
		return nil, fmt.Errorf("%w: no keys configured", domain.ErrEncryptionConfig)
	}
	aeads := make(map[string]cipher.AEAD, len(keys))
	for id, key := range keys {
		if !keyIDPattern.MatchString(id) {
			return nil, fmt.Errorf("%w: bad key id %q", domain.ErrEncryptionConfig, id)
		}
		if len(key) != chacha20poly1305.KeySize {
			return nil, fmt.Errorf("%w: key %q must be %d bytes", domain.ErrEncryptionConfig, id, chacha20poly1305.KeySize)
		}
		aead, err := chacha20poly1305.NewX(key)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrEncryptionConfig, err)
		}
		aeads[id] = aead
	}
	if _, ok := aeads[activeKeyID]; !ok {
		return nil, fmt.Errorf("%w: active key %q not in keyring", domain.ErrEncryptionConfig, activeKeyID)
	}
	return &Keyring{active: activeKeyID, aeads: aeads}, nil
}

func NewKeyringFromSpec(spec, activeKeyID string) (*Keyring, error) {
	keys, err := ParseKeys(spec)
	if err != nil {
		return nil, err
	}
	return NewKeyring(keys, activeKeyID)
}

func (k *Keyring) Encrypt(details domain.BankDetails) (string, error) {
	plaintext, err := json.Marshal(details)
	if err != nil {
		return "", err
	}
	aead := k.aeads[k.active]

	nonce := make([]byte, aead.NonceSize(), aead.NonceSize()+len(plaintext)+aead.Overhead())
	if _, err := rand.Read(nonce); err != nil {
		return "", fmt.Errorf("read nonce: %w", err)
	}
	sealed := aead.Seal(nonce, nonce, plaintext, []byte(k.active))

	return strings.Join([]string{
		envelopeVersion,
		k.active,
		base64.RawURLEncoding.EncodeToString(sealed),
	}, "."), nil
}

func (k *Keyring) Decrypt(envelope string) (domain.BankDetails, error) {
	var details domain.BankDetails

	parts := strings.Split(envelope, ".")
	if len(parts) != 3 || parts[0] != envelopeVersion {
		return details, fmt.Errorf("%w: malformed envelope", domain.ErrDecryption)
	}
	keyID := parts[1]
	aead, ok := k.aeads[keyID]
	if !ok {
		return details, fmt.Errorf("%w: unknown key id %q", domain.ErrDecryption, keyID)
	}
	sealed, err := base64.RawURLEncoding.DecodeString(parts[2])
	if err != nil || len(sealed) < aead.NonceSize()+aead.Overhead() {
		return details, fmt.Errorf("%w: malformed payload", domain.ErrDecryption)
	}

	nonce, ciphertext := sealed[:aead.NonceSize()], sealed[aead.NonceSize():]
	plaintext, err := aead.Open(nil, nonce, ciphertext, []byte(keyID))
	if err != nil {
		return details, fmt.Errorf("%w: authentication failed", domain.ErrDecryption)
	}
	if err := json.Unmarshal(plaintext, &details); err != nil {
		return details, fmt.Errorf("%w: %v", domain.ErrDecryption, err)
	}
	return details, nil
}
