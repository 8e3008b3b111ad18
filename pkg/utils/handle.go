package utils

import (
	"regexp"
	"strings"

	"courier/pkg/errors"
)

// Handle is a parsed "username" or "username@host" address.
type Handle struct {
	Username string
	Host     string
}

var (
	usernameRegex = regexp.MustCompile(`^[a-z0-9_.-]{1,64}$`)
	hostRegex     = regexp.MustCompile(`^[a-z0-9.-]+(:[0-9]{1,5})?$`)
)

// ParseHandle splits and validates a handle. The host part is lowercased;
// a missing host means a local user.
func ParseHandle(raw string) (Handle, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Handle{}, errors.ErrInvalidHandle
	}

	parts := strings.Split(raw, "@")
	switch len(parts) {
	case 1:
		username := strings.ToLower(parts[0])
		if !usernameRegex.MatchString(username) {
			return Handle{}, errors.ErrInvalidHandle
		}
		return Handle{Username: username}, nil
	case 2:
		username := strings.ToLower(parts[0])
		host := NormalizeHost(parts[1])
		if !usernameRegex.MatchString(username) || !hostRegex.MatchString(host) {
			return Handle{}, errors.ErrInvalidHandle
		}
		return Handle{Username: username, Host: host}, nil
	default:
		return Handle{}, errors.ErrInvalidHandle
	}
}

// IsLocal reports whether the handle addresses a user on localHost.
func (h Handle) IsLocal(localHost string) bool {
	return h.Host == "" || h.Host == NormalizeHost(localHost)
}

// String renders the handle with an explicit host.
func (h Handle) String() string {
	if h.Host == "" {
		return h.Username
	}
	return h.Username + "@" + h.Host
}

// NormalizeHost lowercases and trims a hostname for use as a map key.
func NormalizeHost(host string) string {
	return strings.ToLower(strings.TrimSpace(host))
}
