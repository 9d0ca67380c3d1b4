package server

import (
	"context"
	"fmt"
	"net"
	"net/http"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"stellarsplit.app/payment-uri/config"
	"stellarsplit.app/payment-uri/controllers"
	"stellarsplit.app/payment-uri/handoff"
	"stellarsplit.app/payment-uri/horizon"
	"stellarsplit.app/payment-uri/log"
)

type Server struct {
	server *http.Server
	router *mux.Router
}

// New wires the payment URI controller to a Horizon backed transaction
// builder.
func New(cfg *config.Configuration) *Server {
	builder := handoff.NewBuilder(horizon.NewHorizon(cfg.StellarConfig), cfg.StellarConfig)
	controller := controllers.NewPaymentURIController(builder, cfg.FallbackBaseUrl, cfg.QrSize)
	return NewServer(cfg.Port, controller)
}

func NewServer(port int, controller *controllers.PaymentURIController) *Server {
	router := mux.NewRouter()
	AddHandlers(router, controller)

	s := &Server{
		router: router,
	}
	s.server = &http.Server{
		Addr:    fmt.Sprintf(":%d", port),
		Handler: s.Handler(),
	}
	return s
}

func AddHandlers(router *mux.Router, controller *controllers.PaymentURIController) {
	router.HandleFunc("/api/payment-uri", controller.HttpBuild).Methods("POST")
	router.HandleFunc("/api/payment-uri/parse", controller.HttpParse).Methods("POST")
	router.HandleFunc("/api/payment-uri/qr", controller.HttpQRCode).Methods("GET")
	router.HandleFunc("/api/payment-uri/transaction", controller.HttpTransaction).Methods("POST")
	router.HandleFunc("/api/health", controller.HttpHealth).Methods("GET")
	router.HandleFunc("/pay", controller.HttpPay).Methods("GET")
}

// Handler is the router wrapped in panic recovery, request ids and access
// logging.
func (s *Server) Handler() http.Handler {
	var h http.Handler = s.router
	h = handlers.LoggingHandler(log.Writer(), h)
	h = controllers.RequestID(h)
	h = handlers.CORS(
		handlers.AllowedMethods([]string{"GET", "POST"}),
		handlers.AllowedHeaders([]string{"Content-Type", controllers.RequestIDHeader}),
		handlers.ExposedHeaders([]string{controllers.RequestIDHeader}),
	)(h)
	return handlers.RecoveryHandler(
		handlers.RecoveryLogger(log.New()),
		handlers.PrintRecoveryStack(true),
	)(h)
}

func (s *Server) Addr() string {
	return s.server.Addr
}

// Start serves until Shutdown is called.
func (s *Server) Start() error {
	log.Infof("Start payment uri server %v", s.server.Addr)
	ln, err := listen(context.Background(), s.server.Addr)
	if err != nil {
		return err
	}

	return s.serve(ln)
}

func (s *Server) serve(ln net.Listener) error {
	err := s.server.Serve(ln)
	if err == http.ErrServerClosed {
		return nil
	}
	return err
}

func (s *Server) Shutdown(ctx context.Context) {
	err := s.server.Shutdown(ctx)

	if err != nil {
		log.Errorf("connection shutdown failed %s", err.Error())
	}
}
