package paymenturi

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"stellarsplit.app/payment-uri/models"
)

func TestExtractFromSearch(t *testing.T) {
	uri, err := Build(models.PaymentRequest{
		Destination: destination,
		Amount:      amount("1.23"),
		Message:     models.String("100% fair + square"),
	})
	require.NoError(t, err)

	assert := assert.New(t)

	got, ok := ExtractFromSearch("?uri=" + url.QueryEscape(uri))
	assert.True(ok)
	assert.Equal(uri, got)

	got, ok = ExtractFromSearch("uri=" + url.QueryEscape(uri))
	assert.True(ok)
	assert.Equal(uri, got)

	got, ok = ExtractFromSearch("?ref=qr&payment_uri=" + url.QueryEscape(uri))
	assert.True(ok)
	assert.Equal(uri, got)
}

func TestExtractFromSearchPrefersURI(t *testing.T) {
	got, ok := ExtractFromSearch("?payment_uri=second&uri=first")
	assert.True(t, ok)
	assert.Equal(t, "first", got)
}

func TestExtractFromSearchAbsent(t *testing.T) {
	for _, search := range []string{"", "?", "?foo=bar", "?uri=", "?payment_uri=", "?uri=&payment_uri=x"} {
		got, ok := ExtractFromSearch(search)
		assert.False(t, ok, search)
		assert.Empty(t, got, search)
	}
}

func TestExtractFromSearchDoesNotValidate(t *testing.T) {
	got, ok := ExtractFromSearch("?uri=https%3A%2F%2Fexample.com")
	assert.True(t, ok)
	assert.Equal(t, "https://example.com", got)
	assert.Nil(t, Parse(got))
}
