package config

import (
	"errors"
	"fmt"
	"maps"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/cpucat/cpucat/internal/models"
)

// Setting keys.
const (
	KeyIcon       = "icon"
	KeyTheme      = "theme"
	KeyRunOnStart = "run_on_start" // backed by the OS login item, not the file
)

// KnownKeys lists the keys accepted by Validate, in display order.
var KnownKeys = []string{KeyIcon, KeyTheme}

// ErrUnknownKey is returned for keys that are not settings.
var ErrUnknownKey = errors.New("unknown setting")

// Validate checks value for key before it is persisted.
func Validate(key, value string) error {
	switch key {
	case KeyIcon:
		if strings.TrimSpace(value) == "" {
			return fmt.Errorf("%s must not be empty", key)
		}
		return nil
	case KeyTheme:
		_, err := models.ParseTheme(value)
		return err
	default:
		return fmt.Errorf("%w: %q", ErrUnknownKey, key)
	}
}

// Store is a key/value view over the settings file.
//
// Every write is persisted immediately. Store is safe for concurrent use.
type Store struct {
	path string

	mu       sync.Mutex
	settings *models.Settings
}

// OpenDefault opens the global settings store at ~/.cpucat/settings.yaml.
// If the file doesn't exist, the store starts empty.
func OpenDefault() (*Store, error) {
	path, err := GlobalSettingsFile()
	if err != nil {
		return nil, err
	}
	return Open(path)
}

// Open opens the settings store at path.
func Open(path string) (*Store, error) {
	settings, err := readSettings(path)
	if err != nil {
		return nil, err
	}
	return &Store{path: path, settings: settings}, nil
}

func readSettings(path string) (*models.Settings, error) {
	settings, err := LoadYAMLOrDefault(path, models.NewSettings)
	if err != nil {
		return nil, err
	}
	if settings.Values == nil {
		settings.Values = map[string]string{}
	}
	return settings, nil
}

// Path returns the settings file location.
func (s *Store) Path() string {
	return s.path
}

// GetString returns the value stored under key.
func (s *Store) GetString(key string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.settings.Values[key]
	return v, ok
}

// SetString stores value under key and saves the file.
func (s *Store) SetString(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if cur, ok := s.settings.Values[key]; ok && cur == value {
		return nil
	}
	s.settings.Values[key] = value
	return s.saveLocked()
}

// GetBool returns the boolean stored under key. Unparseable values are
// reported as absent.
func (s *Store) GetBool(key string) (bool, bool) {
	v, ok := s.GetString(key)
	if !ok {
		return false, false
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, false
	}
	return b, true
}

// SetBool stores a boolean under key and saves the file.
func (s *Store) SetBool(key string, value bool) error {
	return s.SetString(key, strconv.FormatBool(value))
}

// Unset removes key and saves the file.
func (s *Store) Unset(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.settings.Values[key]; !ok {
		return nil
	}
	delete(s.settings.Values, key)
	return s.saveLocked()
}

// Keys returns the stored keys, sorted.
func (s *Store) Keys() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	keys := make([]string, 0, len(s.settings.Values))
	for k := range s.settings.Values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Reload re-reads the file and reports whether any value changed.
func (s *Store) Reload() (bool, error) {
	settings, err := readSettings(s.path)
	if err != nil {
		return false, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	changed := !maps.Equal(s.settings.Values, settings.Values)
	s.settings = settings
	return changed, nil
}

// legacyIconID returns the packed legacy preference, if present.
func (s *Store) legacyIconID() (uint32, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.settings.IconID == nil {
		return 0, false
	}
	return *s.settings.IconID, true
}

// completeMigration stores the translated values, drops the legacy field
// and saves once. Existing values win over translated ones.
func (s *Store) completeMigration(values map[string]string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for k, v := range values {
		if _, ok := s.settings.Values[k]; !ok {
			s.settings.Values[k] = v
		}
	}
	s.settings.IconID = nil
	return s.saveLocked()
}

func (s *Store) saveLocked() error {
	s.settings.Version = models.SettingsVersion
	return SaveYAML(s.path, s.settings)
}
