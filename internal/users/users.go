// Package users resolves usernames to numeric uids and enforces which
// account a publishing run may execute as.
package users

import (
	"errors"
	"fmt"
	"os/user"
	"strconv"
)

var ErrWrongUser = errors.New("not running as expected user")

type lookupProvider interface {
	Lookup(username string) (*user.User, error)
	Current() (*user.User, error)
}

type OSLookup struct{}

func (*OSLookup) Lookup(username string) (*user.User, error) {
	return user.Lookup(username)
}

func (*OSLookup) Current() (*user.User, error) {
	return user.Current()
}

type Handler struct {
	lookupHandler lookupProvider
}

func NewHandler(lookupHandler lookupProvider) *Handler {
	return &Handler{
		lookupHandler: lookupHandler,
	}
}

// UID resolves username to its numeric uid. An unknown username is a
// terminal condition for the whole run, not a per-file one.
func (h *Handler) UID(username string) (uint32, error) {
	u, err := h.lookupHandler.Lookup(username)
	if err != nil {
		return 0, fmt.Errorf("(users) user '%s' not found: %w", username, err)
	}

	uid, err := strconv.ParseUint(u.Uid, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("(users) failed to parse uid '%s': %w", u.Uid, err)
	}

	return uint32(uid), nil
}

// EnsureRunningAs errors unless the current process user is username.
func (h *Handler) EnsureRunningAs(username string) error {
	current, err := h.lookupHandler.Current()
	if err != nil {
		return fmt.Errorf("(users) failed to get current user: %w", err)
	}

	if current.Username != username {
		return fmt.Errorf("(users) %w: running as '%s', expected '%s'", ErrWrongUser, current.Username, username)
	}

	return nil
}
