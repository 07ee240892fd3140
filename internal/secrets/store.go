package secrets

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
)

// Per-user key file (0600). Values are sealed with AES-GCM under a key
// derived from the OS user, which keeps them out of plain-text config but is
// not a keychain.

const fileName = "keys.json"

// ErrNotFound is returned by Fetch for an unknown name.
var ErrNotFound = errors.New("secrets: key not found")

type keyFile struct {
	Keys map[string]string `json:"keys"` // name -> base64(nonce|ciphertext)
}

// Store reads and writes sealed keys in dir.
type Store struct {
	dir string
	mu  sync.Mutex
}

// NewStore returns a store rooted at dir. An empty dir uses
// <UserConfigDir>/jaskweather.
func NewStore(dir string) (*Store, error) {
	if dir == "" {
		base, err := os.UserConfigDir()
		if err != nil {
			return nil, err
		}
		dir = filepath.Join(base, "jaskweather")
	}
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, err
	}
	return &Store{dir: dir}, nil
}

func (s *Store) Put(name, value string) error {
	if name = norm(name); name == "" {
		return fmt.Errorf("secrets: name required")
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	kf, err := s.load()
	if err != nil {
		return err
	}
	sealed, err := seal([]byte(value))
	if err != nil {
		return err
	}
	kf.Keys[name] = base64.StdEncoding.EncodeToString(sealed)
	return s.save(kf)
}

func (s *Store) Fetch(name string) (string, error) {
	if name = norm(name); name == "" {
		return "", fmt.Errorf("secrets: name required")
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	kf, err := s.load()
	if err != nil {
		return "", err
	}
	enc, ok := kf.Keys[name]
	if !ok {
		return "", ErrNotFound
	}
	raw, err := base64.StdEncoding.DecodeString(enc)
	if err != nil {
		return "", fmt.Errorf("secrets: decode %s: %w", name, err)
	}
	plain, err := open(raw)
	if err != nil {
		return "", fmt.Errorf("secrets: open %s: %w", name, err)
	}
	return string(plain), nil
}

// Delete removes name. Deleting an unknown name is not an error.
func (s *Store) Delete(name string) error {
	if name = norm(name); name == "" {
		return fmt.Errorf("secrets: name required")
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	kf, err := s.load()
	if err != nil {
		return err
	}
	if _, ok := kf.Keys[name]; !ok {
		return nil
	}
	delete(kf.Keys, name)
	return s.save(kf)
}

func (s *Store) path() string { return filepath.Join(s.dir, fileName) }

func (s *Store) load() (keyFile, error) {
	kf := keyFile{Keys: map[string]string{}}
	data, err := os.ReadFile(s.path())
	if err != nil {
		if os.IsNotExist(err) {
			return kf, nil
		}
		return kf, err
	}
	if err := json.Unmarshal(data, &kf); err != nil {
		return kf, fmt.Errorf("secrets: decode key file: %w", err)
	}
	if kf.Keys == nil {
		kf.Keys = map[string]string{}
	}
	return kf, nil
}

func (s *Store) save(kf keyFile) error {
	data, err := json.MarshalIndent(kf, "", "  ")
	if err != nil {
		return err
	}
	tmp := s.path() + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return err
	}
	return os.Rename(tmp, s.path())
}

func norm(s string) string {
	return strings.TrimSpace(strings.ToLower(s))
}

func aead() (cipher.AEAD, error) {
	sum := sha256.Sum256([]byte(fmt.Sprintf("jaskweather-%s-%s", runtime.GOOS, os.Getenv("USER"))))
	block, err := aes.NewCipher(sum[:])
	if err != nil {
		return nil, err
	}
	return cipher.NewGCM(block)
}

func seal(plain []byte) ([]byte, error) {
	gcm, err := aead()
	if err != nil {
		return nil, err
	}
	nonce := make([]byte, gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, err
	}
	return gcm.Seal(nonce, nonce, plain, nil), nil
}

func open(sealed []byte) ([]byte, error) {
	gcm, err := aead()
	if err != nil {
		return nil, err
	}
	if len(sealed) < gcm.NonceSize() {
		return nil, fmt.Errorf("ciphertext too short")
	}
	nonce, body := sealed[:gcm.NonceSize()], sealed[gcm.NonceSize():]
	return gcm.Open(nil, nonce, body, nil)
}
