package controllers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/skip2/go-qrcode"
	"stellarsplit.app/payment-uri/common"
	"stellarsplit.app/payment-uri/handoff"
	"stellarsplit.app/payment-uri/log"
	"stellarsplit.app/payment-uri/models"
	"stellarsplit.app/payment-uri/paymenturi"
)

const (
	minQrSize = 64
	maxQrSize = 1024
)

// TransactionBuilder turns a payment into an unsigned transaction paid from
// source.
type TransactionBuilder interface {
	UnsignedTransaction(ctx context.Context, source string, p *handoff.Payment) (*handoff.Envelope, error)
}

type PaymentURIController struct {
	transactions    TransactionBuilder
	fallbackBaseUrl string
	qrSize          int
}

func NewPaymentURIController(transactions TransactionBuilder, fallbackBaseUrl string, qrSize int) *PaymentURIController {
	return &PaymentURIController{
		transactions:    transactions,
		fallbackBaseUrl: fallbackBaseUrl,
		qrSize:          qrSize,
	}
}

type BuildResponse struct {
	URI   string           `json:"uri"`
	Links models.DeepLinks `json:"links"`
}

type ParseRequest struct {
	Input string `json:"input"`
}

type ParseResponse struct {
	Payment *models.ParsedPaymentURI `json:"payment"`
	Links   models.DeepLinks         `json:"links"`
}

type TransactionRequest struct {
	Source string `json:"source"`
	URI    string `json:"uri"`
}

// HttpBuild encodes a payment request into a payment URI and its links.
func (c *PaymentURIController) HttpBuild(w http.ResponseWriter, r *http.Request) {
	_, span := spanFromRequest(r, "requesthandler:BuildPaymentURI")
	defer span.End()

	request := &models.PaymentRequest{}
	err := json.NewDecoder(r.Body).Decode(request)
	if err != nil {
		requestLog(r).Errorf("Error decoding payment request: %s", err.Error())
		Respond(w, MessageWithStatus(http.StatusBadRequest, "Invalid request"))
		return
	}

	uri, err := paymenturi.Build(*request)
	if err != nil {
		requestLog(r).Debugf("Rejected payment request: %v", err)
		Respond(w, ViolationMessage(http.StatusBadRequest, err))
		return
	}

	Respond(w, MessageWithData(http.StatusOK, &BuildResponse{
		URI:   uri,
		Links: c.links(r, uri),
	}))
}

// HttpParse decodes free text such as scanned QR content.
func (c *PaymentURIController) HttpParse(w http.ResponseWriter, r *http.Request) {
	_, span := spanFromRequest(r, "requesthandler:ParsePaymentURI")
	defer span.End()

	request := &ParseRequest{}
	err := json.NewDecoder(r.Body).Decode(request)
	if err != nil {
		Respond(w, MessageWithStatus(http.StatusBadRequest, "Invalid request"))
		return
	}

	parsed, err := paymenturi.Inspect(request.Input)
	if err != nil {
		Respond(w, ViolationMessage(http.StatusUnprocessableEntity, err))
		return
	}

	Respond(w, MessageWithData(http.StatusOK, &ParseResponse{
		Payment: parsed,
		Links:   c.links(r, parsed.URI),
	}))
}

// HttpPay serves the data of the payment page a web fallback link opens.
func (c *PaymentURIController) HttpPay(w http.ResponseWriter, r *http.Request) {
	_, span := spanFromRequest(r, "requesthandler:PaymentPage")
	defer span.End()

	uri, ok := paymenturi.ExtractFromSearch(r.URL.RawQuery)
	if !ok {
		Respond(w, MessageWithStatus(http.StatusNotFound, "No payment URI found."))
		return
	}

	parsed, err := paymenturi.Inspect(uri)
	if err != nil {
		msg := ViolationMessage(http.StatusUnprocessableEntity, err)
		msg.Data.(map[string]interface{})["message"] = "Invalid Stellar payment URI."
		Respond(w, msg)
		return
	}

	Respond(w, MessageWithData(http.StatusOK, &ParseResponse{
		Payment: parsed,
		Links:   c.links(r, parsed.URI),
	}))
}

// HttpQRCode renders a valid payment URI as a PNG QR code.
func (c *PaymentURIController) HttpQRCode(w http.ResponseWriter, r *http.Request) {
	_, span := spanFromRequest(r, "requesthandler:PaymentURIQRCode")
	defer span.End()

	query := r.URL.Query()
	uri := query.Get("uri")
	if uri == "" {
		Respond(w, MessageWithStatus(http.StatusBadRequest, "uri query parameter is required"))
		return
	}

	parsed, err := paymenturi.Inspect(uri)
	if err != nil {
		Respond(w, ViolationMessage(http.StatusUnprocessableEntity, err))
		return
	}

	size := c.qrSize
	if s := query.Get("size"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < minQrSize || n > maxQrSize {
			Respond(w, MessageWithStatus(http.StatusBadRequest, "size must be between 64 and 1024"))
			return
		}
		size = n
	}

	png, err := qrcode.Encode(parsed.URI, qrcode.Medium, size)
	if err != nil {
		requestLog(r).Errorf("Error rendering QR code: %s", err.Error())
		Respond(w, common.Error(http.StatusInternalServerError, "Could not render QR code"))
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(png); err != nil {
		requestLog(r).Errorf("Error writing QR code: %s", err.Error())
	}
}

// HttpTransaction prepares the unsigned transaction a wallet signs to pay a
// payment URI.
func (c *PaymentURIController) HttpTransaction(w http.ResponseWriter, r *http.Request) {
	ctx, span := spanFromRequest(r, "requesthandler:PaymentTransaction")
	defer span.End()

	request := &TransactionRequest{}
	err := json.NewDecoder(r.Body).Decode(request)
	if err != nil {
		Respond(w, MessageWithStatus(http.StatusBadRequest, "Invalid request"))
		return
	}

	parsed, err := paymenturi.Inspect(request.URI)
	if err != nil {
		Respond(w, ViolationMessage(http.StatusUnprocessableEntity, err))
		return
	}

	payment, err := handoff.FromParsed(parsed)
	if err != nil {
		Respond(w, MessageWithStatus(http.StatusUnprocessableEntity, err.Error()))
		return
	}

	envelope, err := c.transactions.UnsignedTransaction(ctx, request.Source, payment)
	if err != nil {
		if errors.Is(err, handoff.ErrInvalidSource) || errors.Is(err, handoff.ErrSelfPayment) {
			Respond(w, MessageWithStatus(http.StatusBadRequest, err.Error()))
			return
		}
		requestLog(r).WithError(err).Error("Error preparing payment transaction")
		Respond(w, MessageWithStatus(http.StatusBadGateway, "Could not prepare payment transaction"))
		return
	}

	Respond(w, MessageWithData(http.StatusCreated, envelope))
}

func (c *PaymentURIController) HttpHealth(w http.ResponseWriter, r *http.Request) {
	Respond(w, MessageWithData(http.StatusOK, map[string]string{"status": "ok"}))
}

func (c *PaymentURIController) links(r *http.Request, uri string) models.DeepLinks {
	base := c.fallbackBaseUrl
	if base == "" {
		base = requestOrigin(r)
	}
	return paymenturi.DeriveLinks(uri, paymenturi.WithFallbackBaseURL(base))
}

func requestOrigin(r *http.Request) string {
	if r.Host == "" {
		return ""
	}
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	if proto := r.Header.Get("X-Forwarded-Proto"); proto == "http" || proto == "https" {
		scheme = proto
	}
	return scheme + "://" + r.Host
}

func requestLog(r *http.Request) *log.Entry {
	return log.WithFields(log.Fields{"request": RequestIDFromContext(r.Context())})
}
