package handoff

import (
	"encoding/base64"
	"errors"
	"regexp"
	"strconv"

	goerrors "github.com/go-errors/errors"
	stellaramount "github.com/stellar/go/amount"
	"github.com/stellar/go/strkey"
	"github.com/stellar/go/txnbuild"
	"stellarsplit.app/payment-uri/models"
)

const maxTextMemoBytes = 28

var (
	ErrAmountRequired      = errors.New("Payment amount is required.")
	ErrDestinationChecksum = errors.New("destination is not a valid Stellar account id")
	ErrInvalidAmount       = errors.New("amount is not representable on the Stellar network")
	ErrInvalidAsset        = errors.New("invalid asset")
	ErrInvalidMemo         = errors.New("invalid memo")
)

var assetCodeRegex = regexp.MustCompile(`^[a-zA-Z0-9]{1,12}$`)

// Payment is a parsed payment URI expressed as Stellar transaction primitives.
type Payment struct {
	Destination string
	Amount      string
	Asset       txnbuild.Asset
	Memo        txnbuild.Memo
	Message     *string
	Callback    *string
	SplitID     *string
}

// FromParsed converts a parsed URI into a Payment. Unlike the URI codec it
// checks what the network enforces: strkey checksums, amount precision and
// range, asset code shape and memo content.
func FromParsed(p *models.ParsedPaymentURI) (*Payment, error) {
	if p.Amount == nil {
		return nil, ErrAmountRequired
	}
	if !strkey.IsValidEd25519PublicKey(p.Destination) {
		return nil, ErrDestinationChecksum
	}

	stroops, err := stellaramount.ParseInt64(p.Amount.String())
	if err != nil || stroops <= 0 {
		return nil, goerrors.WrapPrefix(ErrInvalidAmount, "amount "+p.Amount.String(), 0)
	}

	asset, err := toAsset(p.AssetCode, p.AssetIssuer)
	if err != nil {
		return nil, err
	}

	memo, err := toMemo(p.Memo, p.MemoType)
	if err != nil {
		return nil, err
	}

	return &Payment{
		Destination: p.Destination,
		Amount:      stellaramount.StringFromInt64(stroops),
		Asset:       asset,
		Memo:        memo,
		Message:     p.Message,
		Callback:    p.Callback,
		SplitID:     p.SplitID,
	}, nil
}

func (p *Payment) Operation() *txnbuild.Payment {
	return &txnbuild.Payment{
		Destination: p.Destination,
		Amount:      p.Amount,
		Asset:       p.Asset,
	}
}

func toAsset(code, issuer *string) (txnbuild.Asset, error) {
	if code == nil && issuer == nil {
		return txnbuild.NativeAsset{}, nil
	}
	if code == nil || issuer == nil {
		return nil, goerrors.WrapPrefix(ErrInvalidAsset, "asset code and issuer must be provided together", 0)
	}
	if !assetCodeRegex.MatchString(*code) {
		return nil, goerrors.WrapPrefix(ErrInvalidAsset, "asset code "+strconv.Quote(*code), 0)
	}
	if !strkey.IsValidEd25519PublicKey(*issuer) {
		return nil, goerrors.WrapPrefix(ErrInvalidAsset, "asset issuer "+*issuer, 0)
	}
	return txnbuild.CreditAsset{Code: *code, Issuer: *issuer}, nil
}

// toMemo follows SEP-0007: a memo without a type is text, hash and return
// memos carry base64 of 32 bytes. A type without a memo yields no memo.
func toMemo(memo *string, memoType *models.MemoType) (txnbuild.Memo, error) {
	if memo == nil {
		return nil, nil
	}
	mt := models.MemoText
	if memoType != nil {
		mt = *memoType
	}

	switch mt {
	case models.MemoText:
		if len(*memo) > maxTextMemoBytes {
			return nil, goerrors.WrapPrefix(ErrInvalidMemo, "text memo longer than 28 bytes", 0)
		}
		return txnbuild.MemoText(*memo), nil
	case models.MemoID:
		id, err := strconv.ParseUint(*memo, 10, 64)
		if err != nil {
			return nil, goerrors.WrapPrefix(ErrInvalidMemo, "memo id "+strconv.Quote(*memo), 0)
		}
		return txnbuild.MemoID(id), nil
	case models.MemoHash, models.MemoReturn:
		raw, err := base64.StdEncoding.DecodeString(*memo)
		if err != nil || len(raw) != 32 {
			return nil, goerrors.WrapPrefix(ErrInvalidMemo, string(mt)+" memo must be base64 of 32 bytes", 0)
		}
		var hash [32]byte
		copy(hash[:], raw)
		if mt == models.MemoHash {
			return txnbuild.MemoHash(hash), nil
		}
		return txnbuild.MemoReturn(hash), nil
	}
	return nil, goerrors.WrapPrefix(ErrInvalidMemo, "memo type "+strconv.Quote(string(mt)), 0)
}
