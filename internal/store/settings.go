package store

import (
	"bytes"
	"encoding/json"
	"time"

	"Wardrobe/internal/model"
)

// GetSetting decodes the JSON value stored under key. An unset key or an undecodable
// value yields def, as does a stored JSON null; only engine failures are returned as errors.
func GetSetting[T any](s *Store, key string, def T) (T, error) {
	raw, found, err := s.settings.Get(key)
	if err != nil {
		return def, wrap("get setting", err)
	}
	if !found || bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
		return def, nil
	}
	var v T
	if err := json.Unmarshal(raw, &v); err != nil {
		s.log.Debugw("setting not decodable, using default", "key", key, "error", err)
		return def, nil
	}
	return v, nil
}

// SetSetting stores value under key as JSON.
func (s *Store) SetSetting(key string, value any) error {
	if key == "" {
		return invalidf("setting key is required")
	}
	b, err := json.Marshal(value)
	if err != nil {
		return invalidf("setting %q: %v", key, err)
	}
	return wrap("set setting", s.settings.Set(key, b))
}

// RawSetting returns the stored JSON for key, or nil when unset.
func (s *Store) RawSetting(key string) (json.RawMessage, error) {
	raw, found, err := s.settings.Get(key)
	if err != nil || !found {
		return nil, wrap("get setting", err)
	}
	return raw, nil
}

// DeleteSetting unsets key.
func (s *Store) DeleteSetting(key string) error {
	return wrap("delete setting", s.settings.Delete(key))
}

// SettingKeys lists every key currently set.
func (s *Store) SettingKeys() ([]string, error) {
	keys, err := s.settings.Keys()
	return keys, wrap("list settings", err)
}

// IsFirstRun reports whether onboarding has not been completed yet.
func (s *Store) IsFirstRun() (bool, error) {
	migrated, err := GetSetting(s, model.SettingMigrated, false)
	return !migrated, err
}

// SetMigrated marks onboarding complete and stamps migratedAt.
func (s *Store) SetMigrated() error {
	now, err := json.Marshal(s.now().UTC().Format(time.RFC3339))
	if err != nil {
		return err
	}
	return wrap("set migrated", s.settings.SetMany(map[string][]byte{
		model.SettingMigrated:   []byte("true"),
		model.SettingMigratedAt: now,
	}))
}
