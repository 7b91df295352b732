package auth

// Secret is a string type for the signing secret that prevents
// accidental logging. String, GoString, and MarshalText return a
// redacted placeholder; only [Secret.Value] yields the real value.
type Secret string

const redacted = "[REDACTED]"

// String returns "[REDACTED]" so the secret never reaches log output.
func (s Secret) String() string {
	return redacted
}

// GoString returns "[REDACTED]" for %#v formatting safety.
func (s Secret) GoString() string {
	return redacted
}

// Value returns the actual secret. Do not log or serialize the result.
func (s Secret) Value() string {
	return string(s)
}

// MarshalText implements encoding.TextMarshaler, keeping the secret out
// of JSON and YAML output.
func (s Secret) MarshalText() ([]byte, error) {
	return []byte(redacted), nil
}
