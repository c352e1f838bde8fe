package auth

import (
	"errors"
	"os"

	"golang.org/x/crypto/bcrypt"
)

// ErrNoPassphrase is returned by Check when the database has no sidecar
// passphrase file yet, meaning access is ungated.
var ErrNoPassphrase = errors.New("no passphrase set for this database")

// ErrWrongPassphrase is returned by Check when the supplied passphrase
// does not match the stored hash.
var ErrWrongPassphrase = errors.New("wrong passphrase")

// sidecarPath returns the path of dbPath's companion passphrase file. It
// lives next to the database file rather than inside it, since the
// on-disk table format has no spare header bytes to store a hash in.
func sidecarPath(dbPath string) string {
	return dbPath + ".auth"
}

// HashPassphrase hashes plain with bcrypt at bcrypt.DefaultCost.
func HashPassphrase(plain string) ([]byte, error) {
	return bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
}

// SetPassphrase writes a bcrypt hash of plain to dbPath's sidecar file,
// gating future opens of that database.
func SetPassphrase(dbPath, plain string) error {
	hash, err := HashPassphrase(plain)
	if err != nil {
		return err
	}
	return os.WriteFile(sidecarPath(dbPath), hash, 0600)
}

// HasPassphrase reports whether dbPath has a sidecar passphrase file.
func HasPassphrase(dbPath string) bool {
	_, err := os.Stat(sidecarPath(dbPath))
	return err == nil
}

// Check verifies plain against dbPath's stored passphrase hash.
func Check(dbPath, plain string) error {
	hash, err := os.ReadFile(sidecarPath(dbPath))
	if os.IsNotExist(err) {
		return ErrNoPassphrase
	}
	if err != nil {
		return err
	}
	if bcrypt.CompareHashAndPassword(hash, []byte(plain)) != nil {
		return ErrWrongPassphrase
	}
	return nil
}
