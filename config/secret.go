package config

import "fmt"

const redacted = "[REDACTED]"

// Secret is a string that does not print its value. Use Reveal where the
// raw value is really needed.
type Secret string

// Reveal returns the raw value.
func (s Secret) Reveal() string { return string(s) }

func (s Secret) String() string { return redacted }

func (s Secret) GoString() string { return redacted }

// Format keeps %v, %s, %q and %#v redacted as well.
func (s Secret) Format(f fmt.State, verb rune) {
	switch verb {
	case 'q':
		fmt.Fprintf(f, "%q", redacted)
	default:
		fmt.Fprint(f, redacted)
	}
}

func (s Secret) MarshalText() ([]byte, error) {
	return []byte(redacted), nil
}
