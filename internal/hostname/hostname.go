// Package hostname validates DNS host names against the RFC 1034/1035
// label rules, with the final label restricted to letters.
package hostname

import "fmt"

const (
	// MaxNameLen is the maximum total length of a host name
	MaxNameLen = 253
	// MaxLabelLen is the maximum length of a single dot-separated label
	MaxLabelLen = 63
)

// Valid reports whether name is a well-formed host name
func Valid(name string) bool {
	return Validate(name) == nil
}

// Validate checks name against the host name rules:
// total length 1-253 bytes; labels of 1-63 bytes separated by dots;
// label characters a-z, A-Z, 0-9 and hyphen, with no hyphen at a label
// boundary; the final label is letters only and at least 2 bytes.
func Validate(name string) error {
	if name == "" {
		return fmt.Errorf("host name is empty")
	}
	if len(name) > MaxNameLen {
		return fmt.Errorf("host name exceeds %d bytes", MaxNameLen)
	}

	labelStart := 0
	for i := 0; i <= len(name); i++ {
		if i < len(name) && name[i] != '.' {
			c := name[i]
			switch {
			case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9', c == '-':
			default:
				return fmt.Errorf("invalid character %q at position %d", c, i)
			}
			continue
		}

		// Label boundary: either a dot or the end of the name.
		label := name[labelStart:i]
		if len(label) == 0 {
			return fmt.Errorf("empty label at position %d", i)
		}
		if len(label) > MaxLabelLen {
			return fmt.Errorf("label %q exceeds %d bytes", label, MaxLabelLen)
		}
		if label[0] == '-' || label[len(label)-1] == '-' {
			return fmt.Errorf("label %q starts or ends with a hyphen", label)
		}
		labelStart = i + 1
	}

	return validateTLD(lastLabel(name))
}

// validateTLD checks the final label: at least 2 bytes, letters only
func validateTLD(tld string) error {
	if len(tld) < 2 {
		return fmt.Errorf("top-level label %q is shorter than 2 bytes", tld)
	}
	for i := 0; i < len(tld); i++ {
		c := tld[i]
		if (c < 'a' || c > 'z') && (c < 'A' || c > 'Z') {
			return fmt.Errorf("top-level label %q contains a non-letter", tld)
		}
	}
	return nil
}

func lastLabel(name string) string {
	for i := len(name) - 1; i >= 0; i-- {
		if name[i] == '.' {
			return name[i+1:]
		}
	}
	return name
}
