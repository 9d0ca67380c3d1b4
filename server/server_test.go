package server

import (
	"context"
	"io/ioutil"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stellar/go/keypair"
	"github.com/stellar/go/txnbuild"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"stellarsplit.app/payment-uri/config"
	"stellarsplit.app/payment-uri/controllers"
	"stellarsplit.app/payment-uri/handoff"
)

type staticAccounts struct{}

func (staticAccounts) LoadAccount(ctx context.Context, address string) (txnbuild.Account, error) {
	account := txnbuild.NewSimpleAccount(address, 1)
	return &account, nil
}

func testServer() *Server {
	cfg := config.DefaultCfg()
	builder := handoff.NewBuilder(staticAccounts{}, cfg.StellarConfig)
	return NewServer(0, controllers.NewPaymentURIController(builder, "", cfg.QrSize))
}

func TestRoutes(t *testing.T) {
	ts := httptest.NewServer(testServer().Handler())
	defer ts.Close()

	kp, err := keypair.Random()
	require.NoError(t, err)

	resp, err := http.Get(ts.URL + "/api/health")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, resp.Header.Get(controllers.RequestIDHeader))

	resp, err = http.Post(ts.URL+"/api/payment-uri", "application/json",
		strings.NewReader(`{"destination":"`+kp.Address()+`","amount":1}`))
	require.NoError(t, err)
	body, err := ioutil.ReadAll(resp.Body)
	resp.Body.Close()
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), `"uri":"web+stellar:pay?destination=`+kp.Address()+`&amount=1"`)
	assert.Contains(t, string(body), ts.URL+"/pay?uri=")

	resp, err = http.Get(ts.URL + "/api/payment-uri")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)

	resp, err = http.Get(ts.URL + "/pay")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestListenRejectsBusyAddress(t *testing.T) {
	ln, err := listen(context.Background(), "127.0.0.1:0")
	require.NoError(t, err)
	defer ln.Close()

	_, err = listen(context.Background(), ln.Addr().String())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "listening on "+ln.Addr().String())
}

func TestStartAndShutdown(t *testing.T) {
	s := testServer()
	ln, err := listen(context.Background(), "127.0.0.1:0")
	require.NoError(t, err)

	done := make(chan error, 1)
	go func() { done <- s.serve(ln) }()

	resp, err := http.Get("http://" + ln.Addr().String() + "/api/health")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	s.Shutdown(ctx)
	assert.NoError(t, <-done)
}
