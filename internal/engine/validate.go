package engine

import (
	"strconv"
)

// InsertRequest is a caller-supplied history entry before validation.
type InsertRequest struct {
	SessionID  int64
	StatusCode int
	PPID       int
	Username   string
	Directory  string

	// Field is "<history_id> <command text>": a positive decimal history id,
	// whitespace, then the command.
	Field string
}

// ValidatedRecord is an InsertRequest that passed ParseAndValidate.
// Only the session's existence remains to be checked, at commit.
type ValidatedRecord struct {
	SessionID  int64
	HistoryID  int64
	Raw        string // Trimmed, non-empty
	StatusCode int
	PPID       int
	Username   string
	Directory  string
}

// ParseAndValidate splits req.Field into its history id and command and
// validates the request. It does not access the store.
//
// Checks run in order and the first failure is returned:
//   - SessionID must be positive (InvalidSessionId)
//   - the history id token must be a positive decimal integer with no sign
//     and no leading zero (InvalidHistoryId)
//   - the command, trimmed of ASCII whitespace, must be non-empty (EmptyCommand)
func ParseAndValidate(req InsertRequest) (ValidatedRecord, error) {
	if req.SessionID <= 0 {
		return ValidatedRecord{}, newError(KindInvalidSessionID,
			"non-positive session id: %d", req.SessionID)
	}

	token, rest := splitField(req.Field)

	historyID, err := parseHistoryID(token)
	if err != nil {
		return ValidatedRecord{}, err
	}

	raw := trimASCIISpace(rest)
	if raw == "" {
		return ValidatedRecord{}, newError(KindEmptyCommand,
			"empty command after history id %d", historyID)
	}

	return ValidatedRecord{
		SessionID:  req.SessionID,
		HistoryID:  historyID,
		Raw:        raw,
		StatusCode: req.StatusCode,
		PPID:       req.PPID,
		Username:   req.Username,
		Directory:  req.Directory,
	}, nil
}

// splitField returns the leading run of non-whitespace bytes and the
// remainder after the whitespace that separates them.
func splitField(field string) (token, rest string) {
	i := 0
	for i < len(field) && !isASCIISpace(field[i]) {
		i++
	}
	token = field[:i]
	for i < len(field) && isASCIISpace(field[i]) {
		i++
	}
	return token, field[i:]
}

// parseHistoryID accepts only canonical positive decimal integers.
func parseHistoryID(token string) (int64, error) {
	if token == "" {
		return 0, newError(KindInvalidHistoryID, "missing history id")
	}
	for i := 0; i < len(token); i++ {
		if token[i] < '0' || token[i] > '9' {
			return 0, newError(KindInvalidHistoryID,
				"invalid history id %q: must contain only decimal digits", token)
		}
	}
	if token[0] == '0' {
		return 0, newError(KindInvalidHistoryID,
			"invalid history id %q: must be a positive integer without leading zeros", token)
	}

	id, err := strconv.ParseInt(token, 10, 64)
	if err != nil {
		return 0, &Error{
			Kind:    KindInvalidHistoryID,
			Message: "invalid history id " + strconv.Quote(token) + ": out of range",
			Err:     err,
		}
	}
	return id, nil
}

// isASCIISpace matches the C locale's isspace: \t \n \v \f \r and space.
func isASCIISpace(c byte) bool {
	switch c {
	case '\t', '\n', '\v', '\f', '\r', ' ':
		return true
	}
	return false
}

func trimASCIISpace(s string) string {
	start, end := 0, len(s)
	for start < end && isASCIISpace(s[start]) {
		start++
	}
	for end > start && isASCIISpace(s[end-1]) {
		end--
	}
	return s[start:end]
}
