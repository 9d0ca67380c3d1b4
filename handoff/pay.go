package handoff

import (
	"context"
	"errors"

	goerrors "github.com/go-errors/errors"
	"stellarsplit.app/payment-uri/log"
	"stellarsplit.app/payment-uri/models"
)

var ErrSubmitFailed = errors.New("Could not submit payment.")

// Signer is the external wallet: it signs an envelope and submits it to the
// network, returning the transaction hash.
type Signer interface {
	SignAndSubmit(ctx context.Context, env *Envelope) (string, error)
}

// Pay hands a parsed payment to signer, paid from source.
func Pay(ctx context.Context, b *Builder, signer Signer, source string, parsed *models.ParsedPaymentURI) (string, error) {
	payment, err := FromParsed(parsed)
	if err != nil {
		return "", err
	}

	env, err := b.UnsignedTransaction(ctx, source, payment)
	if err != nil {
		return "", err
	}

	hash, err := signer.SignAndSubmit(ctx, env)
	if err != nil {
		log.WithError(err).WithField("destination", payment.Destination).Warn("handoff: wallet did not submit payment")
		return "", goerrors.Errorf("%w %v", ErrSubmitFailed, err)
	}

	log.WithFields(log.Fields{
		"destination": payment.Destination,
		"amount":      payment.Amount,
		"hash":        hash,
	}).Info("handoff: payment submitted")
	return hash, nil
}
