package store

import (
	"regexp"
	"strings"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/mongo"
)

var (
	// ErrNotFound means no document matched the identifier.
	ErrNotFound = errors.New("document not found")
	// ErrDuplicate means a write collided with a unique index.
	ErrDuplicate = errors.New("duplicate key")
)

// DuplicateError reports which unique field a write collided on.
// errors.Is(err, ErrDuplicate) holds for it.
type DuplicateError struct {
	Op    string
	Field string // empty when the server message names no index
}

func (e *DuplicateError) Error() string {
	if e.Field == "" {
		return e.Op + ": " + ErrDuplicate.Error()
	}
	return e.Op + ": " + ErrDuplicate.Error() + " on " + e.Field
}

func (e *DuplicateError) Is(target error) bool { return target == ErrDuplicate }

// E11000 messages look like
// "E11000 duplicate key error collection: db.usuarios index: correo_unique dup key: { correo: \"a@b.cl\" }".
var (
	dupIndex = regexp.MustCompile(`index: (\S+)`)
	dupKey   = regexp.MustCompile(`dup key: \{ ?"?(\w+)"?\s*:`)
)

// duplicateField names the field behind a duplicate key error.
func duplicateField(err error) string {
	msg := err.Error()
	if m := dupIndex.FindStringSubmatch(msg); m != nil {
		name := m[1]
		for _, suffix := range []string{"_unique", "_1", "_-1"} {
			name = strings.TrimSuffix(name, suffix)
		}
		return name
	}
	if m := dupKey.FindStringSubmatch(msg); m != nil {
		return m[1]
	}
	return ""
}

// translate maps driver errors onto the package sentinels and annotates the rest.
func translate(err error, op string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, mongo.ErrNoDocuments):
		return ErrNotFound
	case mongo.IsDuplicateKeyError(err):
		return &DuplicateError{Op: op, Field: duplicateField(err)}
	}
	return errors.Wrap(err, op)
}
