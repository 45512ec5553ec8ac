package config

// redacted is what a set Secret prints as.
const redacted = "[REDACTED]"

// Secret is a credential read from config or the environment. Printing,
// JSON and YAML encoding all yield a placeholder; only Value exposes it.
type Secret string

func (s Secret) mask() string {
	if s == "" {
		return ""
	}
	return redacted
}

func (s Secret) String() string { return s.mask() }

// GoString keeps %#v from leaking the value.
func (s Secret) GoString() string { return "Secret(" + redacted + ")" }

// Value returns the raw credential.
func (s Secret) Value() string { return string(s) }

// IsSet reports whether a credential was configured.
func (s Secret) IsSet() bool { return s != "" }

// MarshalText also covers encoding/json, which quotes the result.
func (s Secret) MarshalText() ([]byte, error) { return []byte(s.mask()), nil }

// UnmarshalText stores the raw value, which lets koanf decode it from a
// config file or DEVCODE_GITHUB_TOKEN.
func (s *Secret) UnmarshalText(text []byte) error {
	*s = Secret(text)
	return nil
}
