package vault

import (
	"bytes"
	"strings"
	"testing"

	"github.com/drovo/drovo-service/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var sampleDetails = domain.BankDetails{
	AccountHolderName: "Asha Rao",
	AccountNumber:     "000123456789",
	IFSCCode:          "HDFC0001234",
	BankName:          "HDFC Bank",
}

func key(b byte) []byte { return bytes.Repeat([]byte{b}, 32) }

func TestEncryptDecrypt(t *testing.T) {
	ring, err := NewKeyring(map[string][]byte{"k1": key(1)}, "k1")
	require.NoError(t, err)

	env, err := ring.Encrypt(sampleDetails)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(env, "v1.k1."))
	assert.NotContains(t, env, sampleDetails.AccountNumber)

	got, err := ring.Decrypt(env)
	require.NoError(t, err)
	assert.Equal(t, sampleDetails, got)

	again, err := ring.Encrypt(sampleDetails)
	require.NoError(t, err)
	assert.NotEqual(t, env, again, "nonces must differ")
}

func TestRotationKeepsOldEnvelopesReadable(t *testing.T) {
	old, err := NewKeyring(map[string][]byte{"k1": key(1)}, "k1")
	require.NoError(t, err)
	env, err := old.Encrypt(sampleDetails)
	require.NoError(t, err)

	rotated, err := NewKeyring(map[string][]byte{"k1": key(1), "k2": key(2)}, "k2")
	require.NoError(t, err)

	got, err := rotated.Decrypt(env)
	require.NoError(t, err)
	assert.Equal(t, sampleDetails, got)

	fresh, err := rotated.Encrypt(sampleDetails)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(fresh, "v1.k2."))
}

func TestDecryptRejectsTampering(t *testing.T) {
	ring, err := NewKeyring(map[string][]byte{"k1": key(1), "k2": key(1)}, "k1")
	require.NoError(t, err)
	env, err := ring.Encrypt(sampleDetails)
	require.NoError(t, err)

	// Same key material under another id still fails: the id is authenticated.
	relabeled := strings.Replace(env, "v1.k1.", "v1.k2.", 1)
	_, err = ring.Decrypt(relabeled)
	assert.ErrorIs(t, err, domain.ErrDecryption)

	parts := strings.Split(env, ".")
	payload := []byte(parts[2])
	if payload[10] == 'A' {
		payload[10] = 'B'
	} else {
		payload[10] = 'A'
	}
	_, err = ring.Decrypt("v1.k1." + string(payload))
	assert.ErrorIs(t, err, domain.ErrDecryption)

	for _, bad := range []string{"", "v2.k1.abc", "v1.k9.abc", "v1.k1.!!!"} {
		_, err = ring.Decrypt(bad)
		assert.ErrorIs(t, err, domain.ErrDecryption, bad)
	}
}

func TestNewKeyringValidation(t *testing.T) {
	_, err := NewKeyring(nil, "k1")
	assert.ErrorIs(t, err, domain.ErrEncryptionConfig)

	_, err = NewKeyring(map[string][]byte{"k1": key(1)}, "k2")
	assert.ErrorIs(t, err, domain.ErrEncryptionConfig)

	_, err = NewKeyring(map[string][]byte{"k1": []byte("short")}, "k1")
	assert.ErrorIs(t, err, domain.ErrEncryptionConfig)

	_, err = NewKeyring(map[string][]byte{"k.1": key(1)}, "k.1")
	assert.ErrorIs(t, err, domain.ErrEncryptionConfig)
}

func TestNewKeyringFromSpec(t *testing.T) {
	spec := "k1:" + strings.Repeat("01", 32) + ", k2:" + strings.Repeat("02", 32)
	ring, err := NewKeyringFromSpec(spec, "k2")
	require.NoError(t, err)
	assert.Len(t, ring.aeads, 2)

	_, err = NewKeyringFromSpec("k1:zz", "k1")
	assert.ErrorIs(t, err, domain.ErrEncryptionConfig)
	_, err = NewKeyringFromSpec("nocolon", "k1")
	assert.ErrorIs(t, err, domain.ErrEncryptionConfig)
}
