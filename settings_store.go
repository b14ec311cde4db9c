package passcrypt

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/absfs/absfs"
	"github.com/google/uuid"
)

const (
	// storeMagic identifies a settings store file (ASCII: "PCSS")
	storeMagic = uint32(0x50435353)

	// storeFormatVersion is the current store file format version
	storeFormatVersion = uint8(1)
)

// settingsDefinition pairs an opaque key ID with the passphrase used to
// derive keys for it
type settingsDefinition struct {
	id         []byte
	passphrase []byte
}

// SettingsStore is an in-process registry of encryption settings
// definitions: the named passphrases that encoded passwords refer to
// through their key IDs. One definition is marked preferred and is used
// for new encodings; decryption looks up whichever definition the blob
// names, so older definitions keep working after a rotation.
//
// Unlike EncodedPassword values, a store is shared mutable state and is
// safe for concurrent use.
type SettingsStore struct {
	mu          sync.RWMutex
	definitions map[string]*settingsDefinition
	preferred   string
}

// NewSettingsStore creates an empty settings store
func NewSettingsStore() *SettingsStore {
	return &SettingsStore{
		definitions: make(map[string]*settingsDefinition),
	}
}

// AddDefinition registers a definition with the given key ID and
// passphrase. The first definition added becomes the preferred one. Adding
// an ID that is already registered is an error.
func (s *SettingsStore) AddDefinition(id, passphrase []byte) error {
	if err := ValidateKeyID(id); err != nil {
		return err
	}
	if err := ValidatePassphrase(passphrase); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.definitions[string(id)]; exists {
		return NewValidationError("id", nil,
			fmt.Sprintf("a definition with ID %x is already registered", id))
	}

	def := &settingsDefinition{
		id:         cloneBytes(id),
		passphrase: cloneBytes(passphrase),
	}
	s.definitions[string(id)] = def
	if s.preferred == "" {
		s.preferred = string(id)
	}
	return nil
}

// GenerateDefinition registers a definition with a fresh random 16-byte
// key ID and returns the ID
func (s *SettingsStore) GenerateDefinition(passphrase []byte) ([]byte, error) {
	u := uuid.New()
	id := u[:]
	if err := s.AddDefinition(id, passphrase); err != nil {
		return nil, err
	}
	return cloneBytes(id), nil
}

// SetPreferred marks the definition with the given ID as the one used for
// new encodings
func (s *SettingsStore) SetPreferred(id []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.definitions[string(id)]; !exists {
		return NewValidationError("id", nil,
			fmt.Sprintf("no definition with ID %x", id))
	}
	s.preferred = string(id)
	return nil
}

// PreferredID returns the key ID of the preferred definition, or nil if
// the store is empty
func (s *SettingsStore) PreferredID() []byte {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.preferred == "" {
		return nil
	}
	return cloneBytes(s.definitions[s.preferred].id)
}

// Len returns the number of registered definitions
func (s *SettingsStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.definitions)
}

// EncodePassword encodes a clear-text password under the preferred
// definition with a fresh random salt and IV
func (s *SettingsStore) EncodePassword(clearText []byte) (*EncodedPassword, error) {
	s.mu.RLock()
	def, ok := s.definitions[s.preferred]
	s.mu.RUnlock()

	if !ok {
		return nil, NewValidationError("store", nil, "store has no preferred definition")
	}
	return Encode(def.id, def.passphrase, clearText)
}

// DecryptPassword decrypts an encoded password using the definition its
// key ID names. A blob whose key ID is not registered fails with
// ErrUnknownKeyID.
func (s *SettingsStore) DecryptPassword(p *EncodedPassword) ([]byte, error) {
	s.mu.RLock()
	def, ok := s.definitions[string(p.keyID)]
	s.mu.RUnlock()

	if !ok {
		return nil, &ValidationError{
			Field:   "keyID",
			Value:   p.KeyIDHex(),
			Message: fmt.Sprintf("no definition with ID %s", p.KeyIDHex()),
			Err:     ErrUnknownKeyID,
		}
	}
	return p.Decrypt(def.passphrase)
}

// Destroy wipes every passphrase held by the store and empties it
func (s *SettingsStore) Destroy() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for key, def := range s.definitions {
		Wipe(def.passphrase)
		delete(s.definitions, key)
	}
	s.preferred = ""
}

// Save writes the store to a file on the given filesystem. The file is
// created with mode 0600; protecting the passphrases at rest beyond that
// is the host's concern.
func (s *SettingsStore) Save(fsys absfs.FileSystem, path string) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	buf := new(bytes.Buffer)
	if err := binary.Write(buf, binary.LittleEndian, storeMagic); err != nil {
		return fmt.Errorf("failed to write magic bytes: %w", err)
	}
	if err := binary.Write(buf, binary.LittleEndian, storeFormatVersion); err != nil {
		return fmt.Errorf("failed to write format version: %w", err)
	}
	if err := binary.Write(buf, binary.LittleEndian, uint16(len(s.definitions))); err != nil {
		return fmt.Errorf("failed to write definition count: %w", err)
	}

	for _, def := range s.definitions {
		preferred := uint8(0)
		if string(def.id) == s.preferred {
			preferred = 1
		}
		buf.WriteByte(uint8(len(def.id)))
		buf.Write(def.id)
		buf.WriteByte(preferred)
		if err := binary.Write(buf, binary.LittleEndian, uint16(len(def.passphrase))); err != nil {
			return fmt.Errorf("failed to write passphrase length: %w", err)
		}
		buf.Write(def.passphrase)
	}

	f, err := fsys.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Errorf("failed to create settings store file: %w", err)
	}

	if _, err := f.Write(buf.Bytes()); err != nil {
		f.Close()
		return fmt.Errorf("failed to write settings store: %w", err)
	}
	return f.Close()
}

// LoadSettingsStore reads a settings store from a file on the given
// filesystem
func LoadSettingsStore(fsys absfs.FileSystem, path string) (*SettingsStore, error) {
	f, err := fsys.OpenFile(path, os.O_RDONLY, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to open settings store file: %w", err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("failed to read settings store: %w", err)
	}

	r := bytes.NewReader(data)

	var magic uint32
	if err := binary.Read(r, binary.LittleEndian, &magic); err != nil {
		return nil, NewParseError(0, "settings store file is truncated", err)
	}
	if magic != storeMagic {
		return nil, NewParseError(0, "not a settings store file", nil)
	}

	var formatVersion uint8
	if err := binary.Read(r, binary.LittleEndian, &formatVersion); err != nil {
		return nil, NewParseError(4, "settings store file is truncated", err)
	}
	if formatVersion > storeFormatVersion {
		return nil, NewParseError(4,
			fmt.Sprintf("unsupported settings store format version %d", formatVersion),
			ErrUnsupportedVersion)
	}

	var count uint16
	if err := binary.Read(r, binary.LittleEndian, &count); err != nil {
		return nil, NewParseError(5, "settings store file is truncated", err)
	}

	store := NewSettingsStore()
	for i := 0; i < int(count); i++ {
		offset := int(r.Size()) - r.Len()

		header := make([]byte, 1)
		if _, err := io.ReadFull(r, header); err != nil {
			return nil, NewParseError(offset, "settings store file is truncated", err)
		}
		id := make([]byte, header[0])
		if _, err := io.ReadFull(r, id); err != nil {
			return nil, NewParseError(offset, "settings store file is truncated", err)
		}

		var preferred uint8
		if err := binary.Read(r, binary.LittleEndian, &preferred); err != nil {
			return nil, NewParseError(offset, "settings store file is truncated", err)
		}

		var ppLen uint16
		if err := binary.Read(r, binary.LittleEndian, &ppLen); err != nil {
			return nil, NewParseError(offset, "settings store file is truncated", err)
		}
		passphrase := make([]byte, ppLen)
		if _, err := io.ReadFull(r, passphrase); err != nil {
			return nil, NewParseError(offset, "settings store file is truncated", err)
		}

		if err := store.AddDefinition(id, passphrase); err != nil {
			Wipe(passphrase)
			return nil, err
		}
		if preferred == 1 {
			if err := store.SetPreferred(id); err != nil {
				return nil, err
			}
		}
		Wipe(passphrase)
	}

	return store, nil
}
