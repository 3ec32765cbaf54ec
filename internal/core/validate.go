package core

// validate.go checks raw rows before normalization.
//
// Validation collects every violation rather than stopping at the first,
// so a row missing several required fields reports all of them at once.
// The messages are user-facing and surface verbatim in import reports.

import "regexp"

var (
	// phonePattern is an E.164-style check: optional leading +, first digit
	// 1-9, then 7 to 14 more digits, nothing else. The lower bound rejects
	// fragments like "123" that are digits but not a dialable number.
	phonePattern = regexp.MustCompile(`^\+?[1-9]\d{7,14}$`)

	// emailPattern is the simplified local@domain.tld shape: no whitespace
	// or @ inside the parts, and the domain must contain a dot.
	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
)

// requiredFields lists the fields every lead must carry, with the message
// reported when one is missing or empty.
var requiredFields = []struct {
	field   Field
	message string
}{
	{FieldAddress, "Address is required"},
	{FieldCity, "City is required"},
	{FieldState, "State is required"},
	{FieldZipCode, "Zip code is required"},
}

// Validate checks one raw row and returns a fresh verdict. It is a pure
// function of its input: no side effects, deterministic, and later rows are
// never affected by an earlier row's outcome.
func Validate(row RawRow) Verdict {
	var errs []string

	for _, req := range requiredFields {
		if _, ok := row.Lookup(req.field); !ok {
			errs = append(errs, req.message)
		}
	}

	if phone, ok := row.Lookup(FieldOwnerPhone); ok && !phonePattern.MatchString(phone) {
		errs = append(errs, "Invalid phone number format")
	}
	if email, ok := row.Lookup(FieldOwnerEmail); ok && !emailPattern.MatchString(email) {
		errs = append(errs, "Invalid email format")
	}

	return Verdict{Valid: len(errs) == 0, Errors: errs}
}
