// Package operators loads the roster of human operators allowed to manage
// visitor records through the admin API: usernames, bcrypt password hashes,
// and a super-admin flag. The roster lives in a YAML file the way the
// donegeon config loader reads its settings file, since there is no
// database-backed user table in this system.
package operators

import (
	"os"

	"golang.org/x/crypto/bcrypt"
	"gopkg.in/yaml.v3"
)

type Operator struct {
	Username     string `yaml:"username"`
	PasswordHash string `yaml:"password_hash"`
	SuperAdmin   bool   `yaml:"super_admin"`
}

type Roster struct {
	Operators []Operator `yaml:"operators"`
}

// Load reads and parses a roster file. A missing file is not an error: it
// yields an empty roster, so a deployment with no admin API enabled doesn't
// need one.
func Load(path string) (Roster, error) {
	if path == "" {
		return Roster{}, nil
	}

	b, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return Roster{}, nil
	}
	if err != nil {
		return Roster{}, err
	}

	var r Roster
	if err := yaml.Unmarshal(b, &r); err != nil {
		return Roster{}, err
	}
	return r, nil
}

// Authenticate checks a username/password pair against the roster and
// returns the matching Operator on success.
func (r Roster) Authenticate(username, password string) (Operator, bool) {
	for _, op := range r.Operators {
		if op.Username != username {
			continue
		}
		if bcrypt.CompareHashAndPassword([]byte(op.PasswordHash), []byte(password)) != nil {
			return Operator{}, false
		}
		return op, true
	}
	return Operator{}, false
}

// HashPassword is a helper for provisioning a roster file: it produces the
// bcrypt hash to put in an operator's password_hash field.
func HashPassword(password string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
