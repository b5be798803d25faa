// Package auth keeps the CreaTV access token and user id in the system keyring.
package auth

import (
	"errors"
	"fmt"
	"strings"

	"github.com/zalando/go-keyring"
)

const (
	service   = "creatv"
	tokenUser = "access-token"
	idUser    = "user-id"
	uidUser   = "uid"
)

// Credentials identify the viewer to the REST APIs. Any field may be empty.
type Credentials struct {
	Token string
	// UserID is the numeric backend id sent as user_id.
	UserID string
	// UID is the auth provider id used to look the profile up.
	UID string
}

// LoggedIn reports whether a token is present.
func (c Credentials) LoggedIn() bool {
	return c.Token != ""
}

// Load reads stored credentials. Missing entries are not an error.
func Load() (Credentials, error) {
	token, err := get(tokenUser)
	if err != nil {
		return Credentials{}, err
	}

	id, err := get(idUser)
	if err != nil {
		return Credentials{}, err
	}

	uid, err := get(uidUser)
	if err != nil {
		return Credentials{}, err
	}

	return Credentials{Token: token, UserID: id, UID: uid}, nil
}

func get(user string) (string, error) {
	value, err := keyring.Get(service, user)
	if errors.Is(err, keyring.ErrNotFound) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("read %s from keyring: %w", user, err)
	}

	return value, nil
}

// Save stores credentials, trimming whitespace. Empty ids remove the stored ones.
func Save(c Credentials) error {
	token := strings.TrimSpace(c.Token)
	if token == "" {
		return errors.New("access token is empty")
	}

	if err := keyring.Set(service, tokenUser, token); err != nil {
		return fmt.Errorf("save access token: %w", err)
	}

	if err := setOrRemove(idUser, c.UserID); err != nil {
		return err
	}

	return setOrRemove(uidUser, c.UID)
}

func setOrRemove(user, value string) error {
	value = strings.TrimSpace(value)
	if value == "" {
		return remove(user)
	}

	if err := keyring.Set(service, user, value); err != nil {
		return fmt.Errorf("save %s: %w", user, err)
	}

	return nil
}

// Delete forgets every entry.
func Delete() error {
	for _, user := range []string{tokenUser, idUser, uidUser} {
		if err := remove(user); err != nil {
			return err
		}
	}

	return nil
}

func remove(user string) error {
	err := keyring.Delete(service, user)
	if err == nil || errors.Is(err, keyring.ErrNotFound) {
		return nil
	}

	return fmt.Errorf("delete %s from keyring: %w", user, err)
}
