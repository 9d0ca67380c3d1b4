package models

import "github.com/shopspring/decimal"

// PaymentRequest describes a SEP-0007 pay operation. A nil optional field is
// absent; a pointer to an empty string is present and empty.
type PaymentRequest struct {
	Destination string           `json:"destination"`
	Amount      *decimal.Decimal `json:"amount,omitempty"`
	AssetCode   *string          `json:"assetCode,omitempty"`
	AssetIssuer *string          `json:"assetIssuer,omitempty"`
	Memo        *string          `json:"memo,omitempty"`
	MemoType    *MemoType        `json:"memoType,omitempty"`
	Message     *string          `json:"message,omitempty"`
	Callback    *string          `json:"callback,omitempty"`
	SplitID     *string          `json:"splitId,omitempty"`
}

// ParsedPaymentURI is produced by parsing; URI holds the normalized text the
// fields were read from.
type ParsedPaymentURI struct {
	PaymentRequest
	URI string `json:"uri"`
}

type DeepLinks struct {
	StellarURI           string `json:"stellarUri"`
	WalletDeepLink       string `json:"walletDeepLink"`
	CustomSchemeDeepLink string `json:"customSchemeDeepLink"`
	WebFallbackLink      string `json:"webFallbackLink"`
}

func String(v string) *string {
	return &v
}

func Memo(t MemoType) *MemoType {
	return &t
}

func Amount(d decimal.Decimal) *decimal.Decimal {
	return &d
}
