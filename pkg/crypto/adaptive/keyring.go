package adaptive

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"io"
	"strconv"

	"golang.org/x/crypto/hkdf"
)

// MaxDerivedKeySize bounds the size of a derived key.
const MaxDerivedKeySize = 64

// keyring caches derived keys by master-key fingerprint and label.
var keyring = make(map[string][]byte)

// DeriveKey derives a size-byte sub-key of master for label using
// HKDF-SHA256. Results are cached, so repeated derivations of the same
// key are cheap.
func DeriveKey(master []byte, label string, size int) ([]byte, error) {
	if len(master) == 0 {
		err := errors.New("derive key: empty master key")
		pushError(err)
		return nil, err
	}
	if size <= 0 || size > MaxDerivedKeySize {
		err := errors.New("derive key: invalid key size")
		pushError(err)
		return nil, err
	}

	fp := sha256.Sum256(master)
	id := hex.EncodeToString(fp[:8]) + "/" + label + "/" + strconv.Itoa(size)

	release := acquire(LockKeyring, LockWrite)
	defer release()

	if key, ok := keyring[id]; ok {
		return append([]byte(nil), key...), nil
	}

	key := make([]byte, size)
	if _, err := io.ReadFull(hkdf.New(sha256.New, master, nil, []byte(label)), key); err != nil {
		pushError(err)
		return nil, err
	}
	keyring[id] = key
	return append([]byte(nil), key...), nil
}

// KeyringLen returns the number of cached keys.
func KeyringLen() int {
	release := acquire(LockKeyring, LockRead)
	defer release()
	return len(keyring)
}

// FlushKeyring drops every cached key.
func FlushKeyring() {
	release := acquire(LockKeyring, LockWrite)
	defer release()

	for id, key := range keyring {
		for i := range key {
			key[i] = 0
		}
		delete(keyring, id)
	}
}
