package email

import (
	"fmt"

	"github.com/dalemusser/emailaddr/errors"
)

// Reasons attached to invalid_format errors. They refine the error kind but
// all of them match errors.ErrInvalidFormat.
const (
	ReasonEmptyLocal          = "empty_local"
	ReasonEmptyDomain         = "empty_domain"
	ReasonMissingSeparator    = "missing_separator"
	ReasonMultipleSeparators  = "multiple_separators"
	ReasonInvalidCharacter    = "invalid_character"
	ReasonLocalStartsNonAlpha = "local_must_start_with_letter"
	ReasonInvalidDomain       = "invalid_domain"
	ReasonStrictLocal         = "strict_local"
	ReasonStrictDomain        = "strict_domain"
)

var reasonText = map[string]string{
	ReasonEmptyLocal:          "empty local part",
	ReasonEmptyDomain:         "empty domain part",
	ReasonMissingSeparator:    `missing "@" separator`,
	ReasonMultipleSeparators:  `more than one "@" separator`,
	ReasonInvalidCharacter:    "invalid character",
	ReasonLocalStartsNonAlpha: "local part must start with a letter",
	ReasonInvalidDomain:       "invalid domain part",
	ReasonStrictLocal:         "local part is not a dot-separated sequence of atoms",
	ReasonStrictDomain:        "domain part is not a dot-separated sequence of labels",
}

// invalidFormat builds the error returned for every rejected input.
func invalidFormat(input, reason string) error {
	msg := fmt.Sprintf("invalid input syntax for email address: %q", input)
	if text, ok := reasonText[reason]; ok {
		msg += ": " + text
	}
	return errors.InvalidFormat(input, reason, msg)
}
