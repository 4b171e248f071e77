package config

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/charmbracelet/keygen"
)

var (
	// ErrNilConfig is returned when a nil config is passed to a function.
	ErrNilConfig = errors.New("nil config")

	// ErrEmptySSHKeyPath is returned when the SSH key path is empty.
	ErrEmptySSHKeyPath = errors.New("empty SSH key path")

	// ErrInvalidSources is returned when the content sources are invalid.
	ErrInvalidSources = errors.New("invalid content sources")
)

// KeyPair returns the server's SSH key pair.
func (c SSHConfig) KeyPair() (*keygen.SSHKeyPair, error) {
	return keygen.New(c.KeyPath, keygen.WithKeyType(keygen.Ed25519))
}

// KeyPair returns the server's SSH key pair.
func KeyPair(cfg *Config) (*keygen.SSHKeyPair, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}

	if cfg.SSH.KeyPath == "" {
		return nil, ErrEmptySSHKeyPath
	}

	return keygen.New(cfg.SSH.KeyPath, keygen.WithKeyType(keygen.Ed25519))
}

// EnsureKeyPair makes sure the server's SSH host key exists on disk.
func EnsureKeyPair(cfg *Config) error {
	if cfg == nil {
		return ErrNilConfig
	}

	if cfg.SSH.KeyPath == "" {
		return ErrEmptySSHKeyPath
	}

	if exist(cfg.SSH.KeyPath) {
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(cfg.SSH.KeyPath), 0o700); err != nil {
		return err
	}

	_, err := keygen.New(cfg.SSH.KeyPath, keygen.WithKeyType(keygen.Ed25519), keygen.WithWrite())
	return err //nolint:wrapcheck
}
