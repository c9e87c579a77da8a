package repository

import (
	"errors"
	"fmt"
	"strings"

	"github.com/lib/pq"

	"socialhub/internal/apperror"
)

// postgres SQLSTATE codes the repositories translate
const (
	codeUniqueViolation     = "23505"
	codeForeignKeyViolation = "23503"
	codeCheckViolation      = "23514"
	codeInvalidTextRepr     = "22P02"
)

// errOwnerGone reports a write on behalf of a user deleted after the token was issued.
var errOwnerGone = fmt.Errorf("user no longer exists: %w", apperror.ErrUnauthorized)

func pqCode(err error) (string, string) {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code), pqErr.Constraint
	}
	return "", ""
}

func isUniqueViolation(err error, constraint string) bool {
	code, name := pqCode(err)
	return code == codeUniqueViolation && (constraint == "" || name == constraint)
}

func isForeignKeyViolation(err error) bool {
	code, _ := pqCode(err)
	return code == codeForeignKeyViolation
}

func isCheckViolation(err error, constraint string) bool {
	code, name := pqCode(err)
	return code == codeCheckViolation && (constraint == "" || name == constraint)
}

// isInvalidID reports a malformed uuid literal, which postgres rejects before lookup.
func isInvalidID(err error) bool {
	code, _ := pqCode(err)
	return code == codeInvalidTextRepr
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// containsPattern builds an ILIKE pattern matching value as a plain substring.
func containsPattern(value string) string {
	return "%" + likeEscaper.Replace(value) + "%"
}
