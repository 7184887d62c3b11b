package session

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
)

// lightweight per-user session store (file, 0600) with AES-GCM obfuscation.
// Not a replacement for OS keychains but avoids a plain-text bearer token
// sitting in the config dir.

const fileName = "session.json"

// Session is the client's current authentication state: the bearer token
// issued at login, its scheme, and the username it belongs to. The zero
// value means "not logged in".
type Session struct {
	Token     string `json:"token"`
	TokenType string `json:"token_type"`
	Username  string `json:"username"`
}

// Authenticated reports whether a token is present.
func (s Session) Authenticated() bool {
	return strings.TrimSpace(s.Token) != ""
}

// AuthHeader renders the Authorization header value. The scheme defaults
// to Bearer when the server did not name one.
func (s Session) AuthHeader() string {
	typ := s.TokenType
	if strings.TrimSpace(typ) == "" {
		typ = "Bearer"
	}
	return typ + " " + s.Token
}

// Store persists the session to a single file and caches it in memory.
// Load never fails: a missing or unreadable file yields the zero session.
type Store struct {
	path string

	mu     sync.Mutex
	cached *Session
}

// NewStore creates a store at path. An empty path places the file under
// the user config dir (~/.config/netbank on Linux).
func NewStore(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		dir, err := os.UserConfigDir()
		if err != nil {
			return nil, fmt.Errorf("resolve config dir: %w", err)
		}
		dir = filepath.Join(dir, "netbank")
		if err := os.MkdirAll(dir, 0o700); err != nil { // restrict directory
			return nil, err
		}
		path = filepath.Join(dir, fileName)
	}
	return &Store{path: path}, nil
}

// Load returns the persisted session, or the zero session when nothing
// usable is on disk.
func (s *Store) Load() Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cached != nil {
		return *s.cached
	}
	sess := s.read()
	s.cached = &sess
	return sess
}

// Current is Load under the name the api client capability expects.
func (s *Store) Current() Session {
	return s.Load()
}

// Save persists the session and updates the in-memory copy.
func (s *Store) Save(sess Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	plain, err := json.Marshal(sess)
	if err != nil {
		return err
	}
	ct, err := encrypt(plain)
	if err != nil {
		return err
	}
	if err := writeAtomic(s.path, ct); err != nil {
		return err
	}
	s.cached = &sess
	return nil
}

// Clear removes the persisted session and resets the in-memory copy.
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cached = &Session{}
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

func (s *Store) read() Session {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return Session{}
	}
	plain, err := decrypt(data)
	if err != nil {
		return Session{}
	}
	var sess Session
	if err := json.Unmarshal(plain, &sess); err != nil {
		return Session{}
	}
	return sess
}

func writeAtomic(path string, data []byte) error {
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}

func masterKey() []byte {
	user := os.Getenv("USER")
	if user == "" {
		user = os.Getenv("USERNAME") // windows
	}
	base := fmt.Sprintf("netbank-%s-%s", runtime.GOOS, user)
	hash := sha256.Sum256([]byte(base))
	return hash[:]
}

func encrypt(plain []byte) ([]byte, error) {
	block, err := aes.NewCipher(masterKey())
	if err != nil {
		return nil, err
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}
	nonce := make([]byte, gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, err
	}
	return gcm.Seal(nonce, nonce, plain, nil), nil
}

func decrypt(ciphertext []byte) ([]byte, error) {
	block, err := aes.NewCipher(masterKey())
	if err != nil {
		return nil, err
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}
	if len(ciphertext) < gcm.NonceSize() {
		return nil, fmt.Errorf("ciphertext too short")
	}
	nonce := ciphertext[:gcm.NonceSize()]
	body := ciphertext[gcm.NonceSize():]
	return gcm.Open(nil, nonce, body, nil)
}
