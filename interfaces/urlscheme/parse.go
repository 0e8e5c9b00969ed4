// Package urlscheme parses the target of /sarych?url=<target> (spec
// §6): either a bare "/database/operation[?query=...]" path, or the
// custom "sarychdb://user@pass/database/operation[?query=...]" scheme.
// Embedded credentials are parsed only for shape validation — header
// credentials always win at the HTTP boundary (spec §9 Q2).
package urlscheme

import (
	"net/url"
	"strings"

	apperrors "sarychdb/pkg/errors"
)

// Target is a parsed /sarych URL: the database/operation path plus any
// embedded credentials and query parameters.
type Target struct {
	Username     string // embedded credential, "" if using the bare path form
	Password     string // embedded credential, "" if using the bare path form
	DatabaseName string
	Operation    string
	Query        url.Values
}

// Parse interprets raw as either scheme form spec §6 describes.
func Parse(raw string) (Target, error) {
	if raw == "" {
		return Target{}, apperrors.NewBadRequest("missing url parameter")
	}

	if strings.HasPrefix(raw, "sarychdb://") {
		return parseSchemeForm(raw)
	}
	return parsePathForm(raw)
}

func parseSchemeForm(raw string) (Target, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return Target{}, apperrors.NewBadRequest("malformed sarychdb:// url")
	}

	var username, password string
	if u.User != nil {
		username = u.User.Username()
		password, _ = u.User.Password()
		if password == "" {
			// In the user@pass form the password sits where a host would.
			password = u.Host
		}
	}
	if username == "" {
		return Target{}, apperrors.NewBadRequest("sarychdb:// url must embed user@pass credentials")
	}

	dbName, operation, err := splitDatabaseOperation(u.Path)
	if err != nil {
		return Target{}, err
	}

	return Target{
		Username:     username,
		Password:     password,
		DatabaseName: dbName,
		Operation:    operation,
		Query:        u.Query(),
	}, nil
}

func parsePathForm(raw string) (Target, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return Target{}, apperrors.NewBadRequest("malformed url")
	}

	dbName, operation, err := splitDatabaseOperation(u.Path)
	if err != nil {
		return Target{}, err
	}

	return Target{
		DatabaseName: dbName,
		Operation:    operation,
		Query:        u.Query(),
	}, nil
}

func splitDatabaseOperation(path string) (dbName, operation string, err error) {
	trimmed := strings.Trim(path, "/")
	parts := strings.Split(trimmed, "/")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", apperrors.NewBadRequest("url must name /database/operation")
	}
	return parts[0], parts[1], nil
}

// ValidOperations enumerates the operations the core and HTTP layer
// recognize (spec §6).
var ValidOperations = map[string]bool{
	"get":    true,
	"post":   true,
	"put":    true,
	"delete": true,
	"stats":  true,
	"browse": true,
	"list":   true,
}
