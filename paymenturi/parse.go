package paymenturi

import (
	"net/url"
	"strings"

	"stellarsplit.app/payment-uri/models"
)

// Parse reads a payment request out of untrusted text such as a scanned code,
// a pasted link or a query parameter. It returns nil for anything that is not
// a valid payment URI.
func Parse(input string) *models.ParsedPaymentURI {
	parsed, err := Inspect(input)
	if err != nil {
		return nil
	}
	return parsed
}

// Inspect parses like Parse but reports the violated invariant on rejection.
func Inspect(input string) (*models.ParsedPaymentURI, error) {
	uri := normalize(strings.TrimSpace(input))
	if !strings.HasPrefix(uri, Scheme) {
		return nil, violation(InvariantScheme, ErrNotPaymentURI)
	}

	// Malformed pairs are dropped by ParseQuery; the well-formed ones are kept.
	params, _ := url.ParseQuery(queryString(uri))

	req := models.PaymentRequest{
		Destination: params.Get(paramDestination),
		AssetCode:   lookup(params, paramAssetCode),
		AssetIssuer: lookup(params, paramAssetIssuer),
		Memo:        lookup(params, paramMemo),
		Message:     lookup(params, paramMessage),
		Callback:    lookup(params, paramCallback),
		SplitID:     lookup(params, paramSplitID),
	}
	if mt := lookup(params, paramMemoType); mt != nil {
		req.MemoType = models.Memo(models.MemoType(*mt))
	}

	c := &candidate{request: &req, amountOK: true}
	if raw := lookup(params, paramAmount); raw != nil {
		if d, ok := parseAmount(*raw); ok {
			c.amount = &d
		} else {
			c.amountOK = false
		}
	}

	if err := checkAll(parseRules, c); err != nil {
		return nil, err
	}

	req.Amount = c.amount
	return &models.ParsedPaymentURI{
		PaymentRequest: req,
		URI:            uri,
	}, nil
}

// normalize unwraps a URI that arrived percent-encoded, for example from a
// query parameter. Text that already carries the scheme and its '?' is left
// alone so escaped '&' or '=' inside values survive.
func normalize(text string) string {
	if strings.HasPrefix(text, Scheme+"?") {
		return text
	}
	decoded, err := url.PathUnescape(text)
	if err != nil {
		return text
	}
	if strings.HasPrefix(decoded, Scheme) {
		return decoded
	}
	return text
}

func queryString(uri string) string {
	i := strings.IndexByte(uri, '?')
	if i == -1 || i == len(uri)-1 {
		return ""
	}
	return uri[i+1:]
}

func lookup(params url.Values, key string) *string {
	values, ok := params[key]
	if !ok || len(values) == 0 {
		return nil
	}
	return models.String(values[0])
}
