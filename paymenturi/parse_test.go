package paymenturi

import (
	"errors"
	"net/url"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"stellarsplit.app/payment-uri/models"
)

func TestParseEndToEnd(t *testing.T) {
	parsed := Parse("web+stellar:pay?destination=" + destination + "&amount=7.5&memo=split_abc&memo_type=text")
	require.NotNil(t, parsed)

	assert := assert.New(t)
	assert.Equal(destination, parsed.Destination)
	assert.True(parsed.Amount.Equal(decimal.RequireFromString("7.5")))
	assert.Equal("split_abc", *parsed.Memo)
	assert.Equal(models.MemoText, *parsed.MemoType)
	assert.Nil(parsed.AssetCode)
	assert.Nil(parsed.AssetIssuer)
	assert.Nil(parsed.Message)
	assert.Nil(parsed.Callback)
	assert.Nil(parsed.SplitID)
}

func TestParseRoundTrip(t *testing.T) {
	requests := []models.PaymentRequest{
		{Destination: destination},
		{Destination: destination, Amount: amount("8.75"), Memo: models.String("split_456"), MemoType: models.Memo(models.MemoText)},
		{Destination: destination, Amount: amount("1.2345677")},
		{Destination: destination, Amount: amount("0.0000001")},
		{Destination: destination, Amount: amount("4")},
		{
			Destination: destination,
			Amount:      amount("123456.789"),
			AssetCode:   models.String("USDC"),
			AssetIssuer: models.String("GA5ZSEJYB37JRC5AVCIA5MOP4RHTM335X2KGX3IHOJAPP5RE34K4KZVN"),
			Memo:        models.String("a&b=c d+e%?#"),
			MemoType:    models.Memo(models.MemoText),
			Message:     models.String("Split for dinner, 50/50 ✓"),
			Callback:    models.String("url:https://example.com/callback?x=1&y=2"),
			SplitID:     models.String("split_01HZX"),
		},
		{Destination: destination, Memo: models.String("18446744073709551615"), MemoType: models.Memo(models.MemoID)},
		{Destination: destination, Memo: models.String("q83vEjRWeJq83vEjRWeJq83vEjRWeJq83vEjRWeJq80="), MemoType: models.Memo(models.MemoHash)},
		{Destination: destination, Memo: models.String(""), Message: models.String("")},
	}

	amountsEqual := cmp.Comparer(func(a, b decimal.Decimal) bool { return a.Equal(b) })
	for _, req := range requests {
		uri, err := Build(req)
		require.NoError(t, err)

		parsed := Parse(uri)
		require.NotNil(t, parsed, uri)
		assert.Equal(t, uri, parsed.URI)
		if diff := cmp.Diff(req, parsed.PaymentRequest, amountsEqual); diff != "" {
			t.Errorf("round trip of %s mismatch (-want +got):\n%s", uri, diff)
		}
	}
}

func TestParseRejects(t *testing.T) {
	cases := []struct {
		input     string
		invariant Invariant
		err       error
	}{
		{"https://example.com", InvariantScheme, ErrNotPaymentURI},
		{"", InvariantScheme, ErrNotPaymentURI},
		{"web+stellar:tx?xdr=AAAA", InvariantScheme, ErrNotPaymentURI},
		{"WEB+STELLAR:PAY?destination=" + destination, InvariantScheme, ErrNotPaymentURI},
		{"web+stellar:pay", InvariantDestination, ErrInvalidDestination},
		{"web+stellar:pay?", InvariantDestination, ErrInvalidDestination},
		{"web+stellar:pay?amount=10", InvariantDestination, ErrInvalidDestination},
		{"web+stellar:pay?destination=BAD&amount=10", InvariantDestination, ErrInvalidDestination},
		{"web+stellar:pay?destination=" + strings.ToLower(destination), InvariantDestination, ErrInvalidDestination},
		{"web+stellar:pay?destination=" + destination + "&amount=0", InvariantAmount, ErrInvalidAmount},
		{"web+stellar:pay?destination=" + destination + "&amount=-1", InvariantAmount, ErrInvalidAmount},
		{"web+stellar:pay?destination=" + destination + "&amount=NaN", InvariantAmount, ErrInvalidAmount},
		{"web+stellar:pay?destination=" + destination + "&amount=Infinity", InvariantAmount, ErrInvalidAmount},
		{"web+stellar:pay?destination=" + destination + "&amount=ten", InvariantAmount, ErrInvalidAmount},
		{"web+stellar:pay?destination=" + destination + "&amount=", InvariantAmount, ErrInvalidAmount},
		{"web+stellar:pay?destination=" + destination + "&amount=0x10", InvariantAmount, ErrInvalidAmount},
		{"web+stellar:pay?destination=" + destination + "&memo_type=MEMO_TEXT", InvariantMemoType, ErrUnsupportedMemoType},
		{"web+stellar:pay?destination=" + destination + "&memo_type=", InvariantMemoType, ErrUnsupportedMemoType},
		{"web+stellar:pay?destination=" + destination + "&asset_code=USDC", InvariantAssetPair, ErrUnpairedAsset},
		{"web+stellar:pay?destination=" + destination + "&asset_issuer=" + destination, InvariantAssetPair, ErrUnpairedAsset},
	}

	for _, tc := range cases {
		assert.Nil(t, Parse(tc.input), tc.input)

		parsed, err := Inspect(tc.input)
		assert.Nil(t, parsed, tc.input)
		assert.True(t, errors.Is(err, tc.err), tc.input)
		inv, ok := ViolatedInvariant(err)
		assert.True(t, ok, tc.input)
		assert.Equal(t, tc.invariant, inv, tc.input)
	}
}

func TestParseCheckOrder(t *testing.T) {
	// memo type is checked before the asset pair when parsing
	_, err := Inspect("web+stellar:pay?destination=" + destination + "&asset_code=USDC&memo_type=blob&amount=-2")
	inv, _ := ViolatedInvariant(err)
	assert.Equal(t, InvariantAmount, inv)

	_, err = Inspect("web+stellar:pay?destination=" + destination + "&asset_code=USDC&memo_type=blob")
	inv, _ = ViolatedInvariant(err)
	assert.Equal(t, InvariantMemoType, inv)
}

func TestParseTrimsWhitespace(t *testing.T) {
	parsed := Parse("  \n\tweb+stellar:pay?destination=" + destination + "&amount=1 \r\n")
	require.NotNil(t, parsed)
	assert.Equal(t, "web+stellar:pay?destination="+destination+"&amount=1", parsed.URI)
}

func TestParseEncodedInput(t *testing.T) {
	uri, err := Build(models.PaymentRequest{
		Destination: destination,
		Amount:      amount("1.23"),
		Memo:        models.String("split_789"),
	})
	require.NoError(t, err)

	parsed := Parse(url.QueryEscape(uri))
	require.NotNil(t, parsed)
	assert.Equal(t, destination, parsed.Destination)
	assert.True(t, parsed.Amount.Equal(decimal.RequireFromString("1.23")))
	assert.Equal(t, "split_789", *parsed.Memo)
	assert.Equal(t, uri, parsed.URI)
}

func TestParsePathEscapedInput(t *testing.T) {
	uri := "web+stellar:pay?destination=" + destination + "&amount=5"
	escaped := url.PathEscape(uri)
	require.Equal(t, "web+stellar:pay%3Fdestination="+destination+"&amount=5", escaped)

	parsed := Parse(escaped)
	require.NotNil(t, parsed)
	assert.Equal(t, uri, parsed.URI)
	assert.True(t, parsed.Amount.Equal(decimal.NewFromInt(5)))
}

func TestParseKeepsEscapesInsideValues(t *testing.T) {
	parsed := Parse("web+stellar:pay?destination=" + destination + "&msg=a%26b%3Dc")
	require.NotNil(t, parsed)
	assert.Equal(t, "a&b=c", *parsed.Message)
}

func TestParseRejectsNonFiniteAmounts(t *testing.T) {
	for _, text := range []string{"1e400", "-1e400", "1e-400", "1e50000000", "1e-50000000", "2e-324"} {
		_, err := Inspect("web+stellar:pay?destination=" + destination + "&amount=" + text)
		require.Error(t, err, text)
		assert.True(t, errors.Is(err, ErrInvalidAmount), text)
	}

	parsed := Parse("web+stellar:pay?destination=" + destination + "&amount=1e300")
	require.NotNil(t, parsed)
	assert.Equal(t, int32(300), parsed.Amount.Exponent())
}

func TestParseUndecodableInputIsKept(t *testing.T) {
	_, err := Inspect("%E0%A4%A web+stellar:pay?destination=" + destination)
	inv, _ := ViolatedInvariant(err)
	assert.Equal(t, InvariantScheme, inv)
}

func TestParseIgnoresUnknownParameters(t *testing.T) {
	parsed := Parse("web+stellar:pay?destination=" + destination + "&network_passphrase=Test&origin_domain=example.com&signature=abc&amount=3")
	require.NotNil(t, parsed)
	assert.True(t, parsed.Amount.Equal(decimal.NewFromInt(3)))
}

func TestParseDistinguishesEmptyFromAbsent(t *testing.T) {
	parsed := Parse("web+stellar:pay?destination=" + destination + "&memo=&msg=hi")
	require.NotNil(t, parsed)
	require.NotNil(t, parsed.Memo)
	assert.Equal(t, "", *parsed.Memo)
	assert.Equal(t, "hi", *parsed.Message)
	assert.Nil(t, parsed.Callback)
	assert.Nil(t, parsed.Amount)
}

func TestParseAmountForms(t *testing.T) {
	for text, want := range map[string]string{
		"7.5":        "7.5",
		"007.50":     "7.5",
		".5":         "0.5",
		"1e2":        "100",
		"0.00000001": "0.00000001",
	} {
		parsed := Parse("web+stellar:pay?destination=" + destination + "&amount=" + text)
		require.NotNil(t, parsed, text)
		assert.True(t, parsed.Amount.Equal(decimal.RequireFromString(want)), text)
	}
}

func TestParseFirstValueWins(t *testing.T) {
	parsed := Parse("web+stellar:pay?destination=" + destination + "&memo=first&memo=second")
	require.NotNil(t, parsed)
	assert.Equal(t, "first", *parsed.Memo)
}
