package paymenturi

import (
	"errors"

	"github.com/shopspring/decimal"
	"stellarsplit.app/payment-uri/common"
	"stellarsplit.app/payment-uri/models"
)

type Invariant string

const (
	InvariantScheme      Invariant = "scheme"
	InvariantDestination Invariant = "destination"
	InvariantAmount      Invariant = "amount"
	InvariantAssetPair   Invariant = "asset_pair"
	InvariantMemoType    Invariant = "memo_type"
)

var (
	ErrNotPaymentURI       = errors.New("Not a Stellar payment URI")
	ErrInvalidDestination  = errors.New("Invalid Stellar destination address")
	ErrInvalidAmount       = errors.New("Amount must be a positive number")
	ErrAmountBelowStroop   = errors.New("Amount is smaller than 0.0000001, the smallest Stellar unit")
	ErrUnpairedAsset       = errors.New("assetCode and assetIssuer must be provided together")
	ErrUnsupportedMemoType = errors.New("Unsupported memo type")
)

// candidate is a payment request on its way through validation. amountOK is
// false when the amount could not be read as a finite number. rounded is the
// amount at StellarPrecision and is only set when building.
type candidate struct {
	request  *models.PaymentRequest
	amount   *decimal.Decimal
	rounded  *decimal.Decimal
	amountOK bool
}

type rule struct {
	invariant Invariant
	err       error
	holds     func(c *candidate) bool
}

func (r rule) check(c *candidate) error {
	if r.holds(c) {
		return nil
	}
	return violation(r.invariant, r.err)
}

func violation(inv Invariant, err error) error {
	return &common.InvariantViolation{Invariant: string(inv), Err: err}
}

var (
	destinationRule = rule{InvariantDestination, ErrInvalidDestination, func(c *candidate) bool {
		return IsValidStellarAddress(c.request.Destination)
	}}
	amountRule = rule{InvariantAmount, ErrInvalidAmount, func(c *candidate) bool {
		if c.amount == nil {
			return c.amountOK
		}
		return c.amountOK && c.amount.Sign() > 0
	}}
	precisionRule = rule{InvariantAmount, ErrAmountBelowStroop, func(c *candidate) bool {
		if c.rounded == nil || c.amount.Sign() <= 0 {
			return true
		}
		return c.rounded.Sign() > 0
	}}
	assetPairRule = rule{InvariantAssetPair, ErrUnpairedAsset, func(c *candidate) bool {
		return (c.request.AssetCode == nil) == (c.request.AssetIssuer == nil)
	}}
	memoTypeRule = rule{InvariantMemoType, ErrUnsupportedMemoType, func(c *candidate) bool {
		return c.request.MemoType == nil || c.request.MemoType.IsValid()
	}}
)

var (
	buildRules = []rule{destinationRule, amountRule, precisionRule, assetPairRule, memoTypeRule}
	parseRules = []rule{destinationRule, amountRule, memoTypeRule, assetPairRule}
)

func checkAll(rules []rule, c *candidate) error {
	for _, r := range rules {
		if err := r.check(c); err != nil {
			return err
		}
	}
	return nil
}

// CheckRequest evaluates every build invariant against req and returns one
// violation per failed invariant, in evaluation order.
func CheckRequest(req models.PaymentRequest) []error {
	c := requestCandidate(&req)
	var violations []error
	for _, r := range buildRules {
		if err := r.check(c); err != nil {
			violations = append(violations, err)
		}
	}
	return violations
}

// ViolatedInvariant returns the invariant named by err, if any.
func ViolatedInvariant(err error) (Invariant, bool) {
	var v *common.InvariantViolation
	if errors.As(err, &v) {
		return Invariant(v.Invariant), true
	}
	return "", false
}

func requestCandidate(req *models.PaymentRequest) *candidate {
	c := &candidate{request: req, amountOK: true}
	if req.Amount == nil {
		return c
	}
	// Rounding rescales the coefficient, so an unbounded exponent is refused first.
	if !isFinite(*req.Amount) {
		c.amountOK = false
		return c
	}
	amount := *req.Amount
	rounded := canonicalAmount(amount)
	c.amount = &amount
	c.rounded = &rounded
	return c
}
