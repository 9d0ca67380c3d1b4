package paymenturi

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

const destination = "GDQP2KPQGKIHYJGXNUIYOMHARUARCA6NSWVE2YQYCVY75HL7P5G4U2DI"

func TestIsValidStellarAddress(t *testing.T) {
	assert := assert.New(t)

	assert.True(IsValidStellarAddress(destination))
	assert.True(IsValidStellarAddress("G" + strings.Repeat("A", 55)))
	assert.True(IsValidStellarAddress("G" + strings.Repeat("7", 55)))
	assert.True(IsValidStellarAddress("G" + strings.Repeat("ABCDEFGHIJKLMNOPQRSTUVWXYZ234567", 2)[:55]))

	invalid := map[string]string{
		"empty":         "",
		"too short":     destination[:55],
		"too long":      destination + "A",
		"lowercase":     strings.ToLower(destination),
		"digit one":     "G" + strings.Repeat("1", 55),
		"digit eight":   "G" + strings.Repeat("A", 54) + "8",
		"digit zero":    "G" + strings.Repeat("0", 55),
		"secret seed":   "S" + destination[1:],
		"muxed account": "M" + destination[1:],
		"padded":        " " + destination,
		"trailing nl":   destination + "\n",
		"base32 pad":    "G" + strings.Repeat("A", 54) + "=",
	}
	for name, address := range invalid {
		assert.False(IsValidStellarAddress(address), name)
	}
}
