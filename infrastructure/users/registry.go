// Package users implements the user registry: users.json enumerates
// every user and their database names; each user owns a directory
// holding one file per database. The registry file itself is
// load-mutate-save-under-lock, the same shape infrastructure/storage
// uses for a single database file, applied here to one shared file.
package users

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"golang.org/x/crypto/bcrypt"

	apperrors "sarychdb/pkg/errors"
)

// Entry is one user's registry record: their password hash and the
// names of the databases they own.
type Entry struct {
	PasswordHash string   `json:"password_hash"`
	Databases    []string `json:"databases"`
}

// Registry is the process-wide, file-backed user directory. Writes
// serialize under regMu, the registry lock spec §5 requires.
type Registry struct {
	regMu   sync.Mutex
	dataDir string
}

// NewRegistry creates a Registry rooted at dataDir, the directory
// holding users.json and the per-user subdirectories.
func NewRegistry(dataDir string) *Registry {
	return &Registry{dataDir: dataDir}
}

func (r *Registry) registryPath() string {
	return filepath.Join(r.dataDir, "users.json")
}

// UserDir returns the directory owning username's database files.
func (r *Registry) UserDir(username string) string {
	return filepath.Join(r.dataDir, "users", username)
}

// DatabasePath returns the file path for username's database dbName.
func (r *Registry) DatabasePath(username, dbName string) string {
	return filepath.Join(r.UserDir(username), dbName+".json")
}

func (r *Registry) load() (map[string]Entry, error) {
	data, err := os.ReadFile(r.registryPath())
	if err != nil {
		if os.IsNotExist(err) {
			return make(map[string]Entry), nil
		}
		return nil, apperrors.NewIO("failed to read user registry", err)
	}

	var entries map[string]Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, apperrors.NewCorrupt("user registry does not parse as a JSON object")
	}
	return entries, nil
}

func (r *Registry) save(entries map[string]Entry) error {
	data, err := json.Marshal(entries)
	if err != nil {
		return apperrors.NewIO("failed to serialize user registry", err)
	}

	if err := os.MkdirAll(r.dataDir, 0o755); err != nil {
		return apperrors.NewIO("failed to create data directory", err)
	}

	tmp, err := os.CreateTemp(r.dataDir, ".tmp-users-*")
	if err != nil {
		return apperrors.NewIO("failed to create temp registry file", err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return apperrors.NewIO("failed to write temp registry file", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return apperrors.NewIO("failed to close temp registry file", err)
	}
	if err := os.Rename(tmpPath, r.registryPath()); err != nil {
		os.Remove(tmpPath)
		return apperrors.NewIO("failed to rename temp registry file into place", err)
	}
	return nil
}

// CreateUser registers username with password, hashed via bcrypt, and
// creates their database directory. Returns Conflict if username
// already exists.
func (r *Registry) CreateUser(username, password string) error {
	r.regMu.Lock()
	defer r.regMu.Unlock()

	entries, err := r.load()
	if err != nil {
		return err
	}

	if _, exists := entries[username]; exists {
		return apperrors.NewConflict("username already exists")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return apperrors.NewIO("failed to hash password", err)
	}

	entries[username] = Entry{PasswordHash: string(hash), Databases: []string{}}

	if err := os.MkdirAll(r.UserDir(username), 0o755); err != nil {
		return apperrors.NewIO("failed to create user directory", err)
	}

	return r.save(entries)
}

// Authenticate reports AuthFailed if username doesn't exist or
// password doesn't match its stored hash.
func (r *Registry) Authenticate(username, password string) error {
	r.regMu.Lock()
	entries, err := r.load()
	r.regMu.Unlock()
	if err != nil {
		return err
	}

	entry, ok := entries[username]
	if !ok {
		return apperrors.NewAuthFailed("")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(entry.PasswordHash), []byte(password)); err != nil {
		return apperrors.NewAuthFailed("")
	}
	return nil
}

// CreateDatabase registers dbName under username and creates an empty
// database file. Returns Conflict if the database already exists for
// this user, NotFound if the user doesn't exist.
func (r *Registry) CreateDatabase(username, dbName string) error {
	r.regMu.Lock()
	defer r.regMu.Unlock()

	entries, err := r.load()
	if err != nil {
		return err
	}

	entry, ok := entries[username]
	if !ok {
		return apperrors.NewNotFound("user does not exist")
	}

	for _, existing := range entry.Databases {
		if existing == dbName {
			return apperrors.NewConflict("database already exists")
		}
	}

	entry.Databases = append(entry.Databases, dbName)
	entries[username] = entry

	if err := os.MkdirAll(r.UserDir(username), 0o755); err != nil {
		return apperrors.NewIO("failed to create user directory", err)
	}
	if err := os.WriteFile(r.DatabasePath(username, dbName), []byte("[]"), 0o644); err != nil {
		return apperrors.NewIO("failed to create database file", err)
	}

	return r.save(entries)
}

// ListDatabases returns the database names owned by username, or
// NotFound if the user doesn't exist.
func (r *Registry) ListDatabases(username string) ([]string, error) {
	r.regMu.Lock()
	entries, err := r.load()
	r.regMu.Unlock()
	if err != nil {
		return nil, err
	}

	entry, ok := entries[username]
	if !ok {
		return nil, apperrors.NewNotFound("user does not exist")
	}
	return entry.Databases, nil
}

// OwnsDatabase reports whether username owns a database named dbName.
// The /sarych handler calls this before any CRUD or list/browse
// operation touches a file path, to enforce spec
// invariant 5 (a user cannot observe another user's database).
func (r *Registry) OwnsDatabase(username, dbName string) (bool, error) {
	dbs, err := r.ListDatabases(username)
	if err != nil {
		return false, err
	}
	for _, existing := range dbs {
		if existing == dbName {
			return true, nil
		}
	}
	return false, nil
}
