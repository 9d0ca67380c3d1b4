package paymenturi

import (
	"net/url"
	"strings"

	"stellarsplit.app/payment-uri/models"
)

const (
	CustomSchemePrefix     = "stellarsplit://pay?uri="
	DefaultFallbackBaseURL = "https://stellarsplit.app"
)

type linkOptions struct {
	fallbackBaseURL string
}

type LinkOption func(*linkOptions)

// WithFallbackBaseURL sets the origin of the web fallback link, normally the
// origin the caller is being served from. An empty base keeps the default.
func WithFallbackBaseURL(base string) LinkOption {
	return func(o *linkOptions) {
		if base != "" {
			o.fallbackBaseURL = base
		}
	}
}

// DeriveLinks builds the wallet, custom scheme and web fallback links for an
// already canonical payment URI. The URI is not validated.
func DeriveLinks(uri string, opts ...LinkOption) models.DeepLinks {
	o := &linkOptions{fallbackBaseURL: DefaultFallbackBaseURL}
	for _, opt := range opts {
		opt(o)
	}

	encoded := url.QueryEscape(uri)
	return models.DeepLinks{
		StellarURI:           uri,
		WalletDeepLink:       uri,
		CustomSchemeDeepLink: CustomSchemePrefix + encoded,
		WebFallbackLink:      strings.TrimRight(o.fallbackBaseURL, "/") + "/pay?uri=" + encoded,
	}
}
