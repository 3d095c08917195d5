package compose

import (
	"errors"
	"fmt"
	"os/user"
)

// PlaceholderUserDirective is emitted when the host account cannot be resolved.
const PlaceholderUserDirective = `# user: "<uid>:<gid>" # Set manually if needed`

// Account is the numeric identity a container should run as.
type Account struct {
	UID string
	GID string
}

// AccountResolver maps a host user name to its numeric identity.
type AccountResolver interface {
	Lookup(name string) (Account, error)
}

// SystemAccounts resolves names against the host user and group databases.
// The gid comes from the group that shares the user's name.
type SystemAccounts struct{}

func (SystemAccounts) Lookup(name string) (Account, error) {
	u, err := user.Lookup(name)
	if err != nil {
		return Account{}, &AccountLookupError{Name: name, Err: err}
	}
	g, err := user.LookupGroup(name)
	if err != nil {
		return Account{}, &AccountLookupError{Name: name, Err: err}
	}
	return Account{UID: u.Uid, GID: g.Gid}, nil
}

// AccountLookupError reports a missing host user or group. It is never fatal.
type AccountLookupError struct {
	Name string
	Err  error
}

func (e *AccountLookupError) Error() string {
	return fmt.Sprintf("User '%s' not found locally when generating compose. "+
		"Container might run as default user. Ensure '%s' exists on the host.", e.Name, e.Name)
}

func (e *AccountLookupError) Unwrap() error { return e.Err }

// ResolveUserDirective returns the compose "user:" line for name. When the
// lookup fails the placeholder comment is returned together with the error,
// so callers can warn and keep going.
func ResolveUserDirective(resolver AccountResolver, name string) (string, error) {
	acct, err := resolver.Lookup(name)
	if err != nil {
		var lookupErr *AccountLookupError
		if !errors.As(err, &lookupErr) {
			lookupErr = &AccountLookupError{Name: name, Err: err}
		}
		return PlaceholderUserDirective, lookupErr
	}
	return fmt.Sprintf("user: \"%s:%s\"", acct.UID, acct.GID), nil
}
