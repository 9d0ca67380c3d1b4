package paymenturi

import (
	"net/url"
	"strings"

	"stellarsplit.app/payment-uri/models"
)

const (
	Scheme = "web+stellar:pay"

	paramDestination = "destination"
	paramAmount      = "amount"
	paramAssetCode   = "asset_code"
	paramAssetIssuer = "asset_issuer"
	paramMemo        = "memo"
	paramMemoType    = "memo_type"
	paramMessage     = "msg"
	paramCallback    = "callback"
	paramSplitID     = "split_id"
)

// Build encodes req as a web+stellar:pay URI. Parameters are written in a
// fixed order so equal requests always produce identical URIs.
func Build(req models.PaymentRequest) (string, error) {
	c := requestCandidate(&req)
	if err := checkAll(buildRules, c); err != nil {
		return "", err
	}

	q := &queryWriter{}
	q.set(paramDestination, req.Destination)
	if c.rounded != nil {
		q.set(paramAmount, c.rounded.String())
	}
	if req.AssetCode != nil && req.AssetIssuer != nil {
		q.set(paramAssetCode, *req.AssetCode)
		q.set(paramAssetIssuer, *req.AssetIssuer)
	}
	q.setOptional(paramMemo, req.Memo)
	if req.MemoType != nil {
		q.set(paramMemoType, string(*req.MemoType))
	}
	q.setOptional(paramMessage, req.Message)
	q.setOptional(paramCallback, req.Callback)
	q.setOptional(paramSplitID, req.SplitID)

	return Scheme + "?" + q.String(), nil
}

// queryWriter keeps insertion order, unlike url.Values.Encode.
type queryWriter struct {
	sb strings.Builder
}

func (q *queryWriter) set(key, value string) {
	if q.sb.Len() > 0 {
		q.sb.WriteByte('&')
	}
	q.sb.WriteString(url.QueryEscape(key))
	q.sb.WriteByte('=')
	q.sb.WriteString(url.QueryEscape(value))
}

func (q *queryWriter) setOptional(key string, value *string) {
	if value != nil {
		q.set(key, *value)
	}
}

func (q *queryWriter) String() string {
	return q.sb.String()
}
