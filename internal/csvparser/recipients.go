package csvparser

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
)

var (
	ErrNotFound      = errors.New("recipients file not found")
	ErrNoEmailColumn = errors.New("could not find an email column in the CSV")
	ErrNoRecipients  = errors.New("no valid email addresses were found in the CSV")
)

// emailColumns are tried in order before falling back to a substring match.
var emailColumns = []string{"email", "Email", "EMAIL", "e-mail", "E-mail", "mail", "Mail"}

// missing holds cell values that spreadsheet exports use for "no value".
var missing = map[string]struct{}{
	"nan": {}, "NaN": {}, "None": {}, "null": {}, "NULL": {},
	"NA": {}, "N/A": {}, "n/a": {}, "<NA>": {}, "#N/A": {},
}

// FindEmailColumn returns the index of the header holding email addresses.
func FindEmailColumn(headers []string) (int, bool) {
	for _, c := range emailColumns {
		for i, h := range headers {
			if h == c {
				return i, true
			}
		}
	}
	for i, h := range headers {
		if strings.Contains(strings.ToLower(h), "email") {
			return i, true
		}
	}
	return -1, false
}

// ParseRecipients reads a CSV with a header row and returns the cleaned,
// de-duplicated addresses of its email column in first-seen order.
func ParseRecipients(r io.Reader) ([]string, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	headers, err := reader.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("%w: the file is empty", ErrNoEmailColumn)
	}
	if err != nil {
		return nil, fmt.Errorf("reading csv header: %w", err)
	}
	if len(headers) > 0 {
		headers[0] = strings.TrimPrefix(headers[0], "\uFEFF")
	}

	emailIdx, ok := FindEmailColumn(headers)
	if !ok {
		return nil, fmt.Errorf("%w: please ensure it has a column named 'email'", ErrNoEmailColumn)
	}

	seen := make(map[string]struct{})
	emails := make([]string, 0)
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading csv row: %w", err)
		}
		if emailIdx >= len(record) {
			continue
		}

		email := clean(record[emailIdx])
		if email == "" || !strings.Contains(email, "@") {
			continue
		}
		if _, dup := seen[email]; dup {
			continue
		}
		seen[email] = struct{}{}
		emails = append(emails, email)
	}

	if len(emails) == 0 {
		return nil, ErrNoRecipients
	}

	return emails, nil
}

func clean(cell string) string {
	cell = strings.TrimSpace(cell)
	if _, ok := missing[cell]; ok {
		return ""
	}
	return cell
}
