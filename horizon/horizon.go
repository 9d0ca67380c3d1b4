package horizon

import (
	"context"
	"net/http"
	"time"

	"github.com/go-errors/errors"
	"github.com/stellar/go/clients/horizonclient"
	hProtocol "github.com/stellar/go/protocols/horizon"
	"github.com/stellar/go/txnbuild"
	"stellarsplit.app/payment-uri/config"
)

const requestTimeout = 10 * time.Second

// Horizon loads source accounts for unsigned payment transactions.
type Horizon struct {
	Client horizonclient.ClientInterface
}

func NewHorizon(cfg config.StellarConfig) *Horizon {
	return &Horizon{
		Client: NewHorizonClient(cfg),
	}
}

func NewHorizonClient(cfg config.StellarConfig) *horizonclient.Client {
	if cfg.HorizonUrl != "" {
		return &horizonclient.Client{
			HorizonURL: cfg.HorizonUrl,
			HTTP:       &http.Client{Timeout: requestTimeout},
		}
	}
	if cfg.UseTestApi {
		return horizonclient.DefaultTestNetClient
	}
	return horizonclient.DefaultPublicNetClient
}

func (horizon *Horizon) GetAccount(address string) (hProtocol.Account, error) {
	return horizon.Client.AccountDetail(
		horizonclient.AccountRequest{
			AccountID: address})
}

func (horizon *Horizon) LoadAccount(ctx context.Context, address string) (txnbuild.Account, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	account, err := horizon.GetAccount(address)
	if err != nil {
		if hErr, ok := err.(*horizonclient.Error); ok && hErr.Problem.Status == http.StatusNotFound {
			return nil, errors.Errorf("account %s does not exist on the network", address)
		}
		return nil, err
	}
	return &account, nil
}
