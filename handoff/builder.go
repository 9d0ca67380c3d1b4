package handoff

import (
	"context"
	"errors"
	"time"

	goerrors "github.com/go-errors/errors"
	"github.com/stellar/go/network"
	"github.com/stellar/go/strkey"
	"github.com/stellar/go/txnbuild"
	"stellarsplit.app/payment-uri/config"
	"stellarsplit.app/payment-uri/log"
)

var (
	ErrInvalidSource = errors.New("source is not a valid Stellar account id")
	ErrSelfPayment   = errors.New("source and destination are the same account")
)

// AccountLoader supplies the current sequence number of a source account.
type AccountLoader interface {
	LoadAccount(ctx context.Context, address string) (txnbuild.Account, error)
}

// Envelope is an unsigned transaction ready to be signed by a wallet.
type Envelope struct {
	XDR               string  `json:"xdr"`
	NetworkPassphrase string  `json:"networkPassphrase"`
	Source            string  `json:"source"`
	Destination       string  `json:"destination"`
	Amount            string  `json:"amount"`
	Callback          *string `json:"callback,omitempty"`
	SplitID           *string `json:"splitId,omitempty"`
}

type Builder struct {
	accounts          AccountLoader
	networkPassphrase string
	baseFee           int64
	timeout           time.Duration
}

func NewBuilder(accounts AccountLoader, cfg config.StellarConfig) *Builder {
	passphrase := network.PublicNetworkPassphrase
	if cfg.UseTestApi {
		passphrase = network.TestNetworkPassphrase
	}
	return &Builder{
		accounts:          accounts,
		networkPassphrase: passphrase,
		baseFee:           cfg.BaseFee,
		timeout:           cfg.TransactionTimeout,
	}
}

func (b *Builder) NetworkPassphrase() string {
	return b.networkPassphrase
}

// UnsignedTransaction builds a single payment operation transaction paid
// from source. The result is never signed here.
func (b *Builder) UnsignedTransaction(ctx context.Context, source string, p *Payment) (*Envelope, error) {
	if !strkey.IsValidEd25519PublicKey(source) {
		return nil, ErrInvalidSource
	}
	if source == p.Destination {
		return nil, ErrSelfPayment
	}

	account, err := b.accounts.LoadAccount(ctx, source)
	if err != nil {
		return nil, goerrors.WrapPrefix(err, "loading source account "+source, 0)
	}

	tx, err := txnbuild.NewTransaction(
		txnbuild.TransactionParams{
			SourceAccount:        account,
			IncrementSequenceNum: true,
			Operations:           []txnbuild.Operation{p.Operation()},
			BaseFee:              b.baseFee,
			Memo:                 p.Memo,
			Timebounds:           txnbuild.NewTimeout(int64(b.timeout / time.Second)),
		},
	)
	if err != nil {
		return nil, goerrors.WrapPrefix(err, "building payment transaction", 0)
	}

	xdr, err := tx.Base64()
	if err != nil {
		return nil, goerrors.WrapPrefix(err, "encoding payment transaction", 0)
	}

	log.WithFields(log.Fields{
		"source":      source,
		"destination": p.Destination,
		"amount":      p.Amount,
	}).Debug("handoff: built unsigned payment transaction")

	return &Envelope{
		XDR:               xdr,
		NetworkPassphrase: b.networkPassphrase,
		Source:            source,
		Destination:       p.Destination,
		Amount:            p.Amount,
		Callback:          p.Callback,
		SplitID:           p.SplitID,
	}, nil
}
