// Package auth holds the operator directory. Accounts live in the config
// file, not the shared document, so credentials never transit the sync
// store.
package auth

import (
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"toolcrib/config"
)

var ErrInvalidCredentials = errors.New("invalid username or password")

type Operator struct {
	Username    string `json:"username"`
	DisplayName string `json:"display_name"`
	Admin       bool   `json:"admin"`
}

type Directory struct {
	operators map[string]config.Operator
}

func NewDirectory(operators []config.Operator) *Directory {
	d := &Directory{operators: make(map[string]config.Operator, len(operators))}
	for _, op := range operators {
		d.operators[strings.ToLower(op.Username)] = op
	}
	return d
}

// Authenticate checks a password against the stored bcrypt hash. The
// returned operator never carries the hash.
func (d *Directory) Authenticate(username, password string) (*Operator, error) {
	op, ok := d.operators[strings.ToLower(username)]
	if !ok {
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(op.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return &Operator{Username: op.Username, DisplayName: op.DisplayName, Admin: op.Admin}, nil
}

// Lookup returns the operator record without a credential check, for
// session restoration.
func (d *Directory) Lookup(username string) (*Operator, bool) {
	op, ok := d.operators[strings.ToLower(username)]
	if !ok {
		return nil, false
	}
	return &Operator{Username: op.Username, DisplayName: op.DisplayName, Admin: op.Admin}, true
}

// HashPassword generates a bcrypt hash for config files, see cmd/cribpass.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
