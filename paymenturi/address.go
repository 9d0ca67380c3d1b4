package paymenturi

import "regexp"

var stellarAccountRegex = regexp.MustCompile(`^G[A-Z2-7]{55}$`)

// IsValidStellarAddress reports whether address has the shape of a Stellar
// public account id. The strkey checksum is not verified here.
func IsValidStellarAddress(address string) bool {
	return stellarAccountRegex.MatchString(address)
}
