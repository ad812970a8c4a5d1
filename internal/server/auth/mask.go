package auth

import "encoding/base64"

// MaskEmail encodes the raw email with base64. The masked form is the
// uniqueness key for user records. This is an encoding, not a security
// control: it is trivially reversible and must never be treated as
// confidentiality for the address.
func MaskEmail(email string) string {
	return base64.StdEncoding.EncodeToString([]byte(email))
}

// UnmaskEmail decodes a masked email back to the raw address.
func UnmaskEmail(masked string) (string, error) {
	raw, err := base64.StdEncoding.DecodeString(masked)
	if err != nil {
		return "", err
	}
	return string(raw), nil
}
