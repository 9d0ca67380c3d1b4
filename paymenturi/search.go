package paymenturi

import (
	"net/url"
	"strings"
)

// ExtractFromSearch pulls an embedded payment URI out of a page query string,
// reading "uri" and falling back to "payment_uri". The value is decoded once
// and returned unvalidated; ok is false when no value is present.
func ExtractFromSearch(search string) (uri string, ok bool) {
	params, _ := url.ParseQuery(strings.TrimPrefix(search, "?"))

	values, found := params["uri"]
	if !found {
		values = params["payment_uri"]
	}
	if len(values) == 0 || values[0] == "" {
		return "", false
	}
	return values[0], true
}
