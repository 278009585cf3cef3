package whatsapp

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
)

// WhatsApp Web addresses chats with suffixed identifiers: individual
// contacts use <number>@c.us, groups use <creator>-<timestamp>@g.us.
const (
	ContactTypeIndividual = "individual"
	ContactTypeGroup      = "group"
)

var (
	phoneNumberRe = regexp.MustCompile(`^\+?[0-9]{7,14}@c\.us$`)
	groupIDRe     = regexp.MustCompile(`^[0-9]+-[0-9]+@g\.us$`)
	sessionIDRe   = regexp.MustCompile(`^[A-Za-z0-9._-]{1,100}$`)
	bareNumberRe  = regexp.MustCompile(`^[0-9]{7,14}$`)
	bareGroupRe   = regexp.MustCompile(`^[0-9]+-[0-9]+$`)
)

// ValidatePhoneNumber reports whether id is a well-formed individual contact
// ID such as 1234567890@c.us.
func ValidatePhoneNumber(id string) bool {
	return phoneNumberRe.MatchString(id)
}

// ValidateGroupID reports whether id is a well-formed group chat ID such as
// 123456789-987654321@g.us.
func ValidateGroupID(id string) bool {
	return groupIDRe.MatchString(id)
}

// ValidateSessionID reports whether id is a bridge-addressable session name:
// 1 to 100 characters of letters, digits, '.', '_' or '-'.
func ValidateSessionID(id string) bool {
	return sessionIDRe.MatchString(id)
}

// IsGroupID reports whether id addresses a group chat.
func IsGroupID(id string) bool {
	return ValidateGroupID(id)
}

// IsIndividualID reports whether id addresses an individual contact.
func IsIndividualID(id string) bool {
	return ValidatePhoneNumber(id)
}

// FormatPhoneNumber normalizes a raw phone number into a contact ID,
// stripping a leading '+'. Input that already carries the @c.us suffix is
// validated and returned unchanged.
func FormatPhoneNumber(number string) (string, error) {
	if strings.HasSuffix(number, "@c.us") {
		if !ValidatePhoneNumber(number) {
			return "", fmt.Errorf("invalid phone number %q", number)
		}
		return number, nil
	}

	digits := strings.TrimPrefix(number, "+")
	if !bareNumberRe.MatchString(digits) {
		return "", fmt.Errorf("invalid phone number %q", number)
	}
	return digits + "@c.us", nil
}

// FormatGroupID normalizes a raw group identifier into a group chat ID.
// Input that already carries the @g.us suffix is validated and returned
// unchanged.
func FormatGroupID(id string) (string, error) {
	if strings.HasSuffix(id, "@g.us") {
		if !ValidateGroupID(id) {
			return "", fmt.Errorf("invalid group ID %q", id)
		}
		return id, nil
	}

	if !bareGroupRe.MatchString(id) {
		return "", fmt.Errorf("invalid group ID %q", id)
	}
	return id + "@g.us", nil
}

// ContactID is the decomposed form of a chat identifier.
type ContactID struct {
	Type    string // ContactTypeIndividual or ContactTypeGroup
	Number  string // phone number, set for individual IDs
	GroupID string // creator-timestamp pair, set for group IDs
	Domain  string // "c.us" or "g.us"
}

// ParseContactID decomposes a chat identifier into its parts.
func ParseContactID(id string) (*ContactID, error) {
	local, domain, ok := strings.Cut(id, "@")
	if !ok || local == "" || domain == "" {
		return nil, fmt.Errorf("invalid contact ID %q", id)
	}

	switch domain {
	case "c.us":
		if !phoneNumberRe.MatchString(id) {
			return nil, fmt.Errorf("invalid contact ID %q", id)
		}
		return &ContactID{Type: ContactTypeIndividual, Number: local, Domain: domain}, nil
	case "g.us":
		if !groupIDRe.MatchString(id) {
			return nil, fmt.Errorf("invalid contact ID %q", id)
		}
		return &ContactID{Type: ContactTypeGroup, GroupID: local, Domain: domain}, nil
	default:
		return nil, fmt.Errorf("invalid contact ID %q: unknown domain %q", id, domain)
	}
}

// ExtractPhoneNumber returns the phone number portion of an individual
// contact ID. Group IDs are rejected.
func ExtractPhoneNumber(contactID string) (string, error) {
	parsed, err := ParseContactID(contactID)
	if err != nil {
		return "", err
	}
	if parsed.Type != ContactTypeIndividual {
		return "", fmt.Errorf("contact ID %q is a group, not an individual", contactID)
	}
	return parsed.Number, nil
}

// CleanPhoneNumber strips common formatting characters (spaces, parentheses,
// dashes, dots and a leading '+') from a phone number. It returns the empty
// string when the input contains anything other than digits and formatting.
func CleanPhoneNumber(raw string) string {
	cleaned := strings.Map(func(r rune) rune {
		switch r {
		case ' ', '(', ')', '-', '.', '+':
			return -1
		}
		return r
	}, raw)

	if cleaned == "" || !bareDigits(cleaned) {
		return ""
	}
	return cleaned
}

func bareDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// SanitizeMessageText collapses runs of whitespace into single spaces and
// trims the result. When preserveNewlines is true, line breaks survive and
// only intra-line whitespace is collapsed.
func SanitizeMessageText(text string, preserveNewlines bool) string {
	if !preserveNewlines {
		return strings.Join(strings.Fields(text), " ")
	}

	lines := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
	for i, line := range lines {
		lines[i] = strings.Join(strings.Fields(line), " ")
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}

// GenerateMessageID creates a unique client-side message identifier.
func GenerateMessageID() string {
	return "msg_" + uuid.NewString()
}

// Timestamp returns the current time as Unix seconds, the representation
// the bridge uses for chat timestamps.
func Timestamp() int64 {
	return time.Now().Unix()
}

// FormatTimestamp renders a Unix-seconds timestamp as RFC 3339 UTC.
func FormatTimestamp(ts int64) string {
	return time.Unix(ts, 0).UTC().Format(time.RFC3339)
}

// ValidateURL reports whether raw is an absolute http or https URL with a
// host.
func ValidateURL(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}
