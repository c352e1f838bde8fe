package cli

import (
	"fmt"
	"strconv"
	"strings"

	"go.store/internal/storage"
)

type statementKind int

const (
	stmtInsert statementKind = iota
	stmtSelect
	stmtDelete
)

type statement struct {
	kind statementKind
	key  uint32
	row  storage.Row
}

// parseStatementError is returned for a malformed statement whose message
// is already the exact user-facing text spec'd for the REPL.
type parseStatementError struct{ msg string }

func (e *parseStatementError) Error() string { return e.msg }

// parseStatement recognizes insert/select/delete, validating id/string
// bounds the way the REPL is required to report them.
func parseStatement(input string) (*statement, error) {
	fields := strings.Fields(input)
	if len(fields) == 0 {
		return nil, &parseStatementError{"Syntax error. Could not parse statement."}
	}

	switch fields[0] {
	case "insert":
		return parseInsert(input, fields)
	case "select":
		return &statement{kind: stmtSelect}, nil
	case "delete":
		return parseDelete(fields)
	default:
		return nil, &parseStatementError{fmt.Sprintf("Unrecognized keyword at start of '%s'.", input)}
	}
}

func parseInsert(input string, fields []string) (*statement, error) {
	if len(fields) != 4 {
		return nil, &parseStatementError{"Syntax error. Could not parse statement."}
	}

	id, err := strconv.ParseInt(fields[1], 10, 64)
	if err != nil {
		return nil, &parseStatementError{"Syntax error. Could not parse statement."}
	}
	if id < 0 {
		return nil, &parseStatementError{"ID must be positive."}
	}

	username, email := fields[2], fields[3]
	if len(username) > storage.UsernameColumnSize || len(email) > storage.EmailColumnSize {
		return nil, &parseStatementError{"String is too long."}
	}

	return &statement{
		kind: stmtInsert,
		key:  uint32(id),
		row:  storage.Row{ID: uint32(id), Username: username, Email: email},
	}, nil
}

func parseDelete(fields []string) (*statement, error) {
	if len(fields) != 2 {
		return nil, &parseStatementError{"Syntax error. Could not parse statement."}
	}
	id, err := strconv.ParseInt(fields[1], 10, 64)
	if err != nil {
		return nil, &parseStatementError{"Syntax error. Could not parse statement."}
	}
	if id < 0 {
		return nil, &parseStatementError{"ID must be positive."}
	}
	return &statement{kind: stmtDelete, key: uint32(id)}, nil
}
