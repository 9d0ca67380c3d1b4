package server

import (
	"context"
	"net"
	"time"

	"github.com/go-errors/errors"
)

const keepAlivePeriod = 3 * time.Minute

// listen opens addr with TCP keep-alive probes on every accepted connection,
// so wallets that vanish mid-request eventually release their goroutines.
func listen(ctx context.Context, addr string) (net.Listener, error) {
	lc := net.ListenConfig{KeepAlive: keepAlivePeriod}
	ln, err := lc.Listen(ctx, "tcp", addr)
	if err != nil {
		return nil, errors.WrapPrefix(err, "listening on "+addr, 0)
	}
	return ln, nil
}
