// Package scanner sequences repeated payment URI parse attempts over a stream
// of decoded QR texts, such as the frames of a camera preview.
package scanner

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"
	boom "github.com/tylertreat/BoomFilters"
	"stellarsplit.app/payment-uri/log"
	"stellarsplit.app/payment-uri/models"
	"stellarsplit.app/payment-uri/paymenturi"
)

type Status string

const (
	StatusIdle     Status = "idle"
	StatusStarting Status = "starting"
	StatusScanning Status = "scanning"
	StatusDetected Status = "detected"
	StatusError    Status = "error"
)

var (
	ErrNoPaymentData     = errors.New("No QR code detected")
	ErrInvalidPaymentURI = errors.New("QR code found, but it is not a valid Stellar payment URI")
	ErrScanInProgress    = errors.New("scan already in progress")
)

// InvalidCandidateError is returned when a decoded text is not a payment URI.
// It matches ErrInvalidPaymentURI and unwraps to the violated invariant.
type InvalidCandidateError struct {
	Text  string
	Cause error
}

func (e *InvalidCandidateError) Error() string {
	return ErrInvalidPaymentURI.Error() + ": " + e.Cause.Error()
}

func (e *InvalidCandidateError) Is(target error) bool { return target == ErrInvalidPaymentURI }

func (e *InvalidCandidateError) Unwrap() error { return e.Cause }

// Source is a capture device. Start returns decoded texts until ctx is done;
// an empty text is a frame without a readable code.
type Source interface {
	Start(ctx context.Context) (<-chan string, error)
}

type Option func(*Scanner)

// ContinueOnInvalid keeps scanning after a code that is not a payment URI
// instead of stopping in the error state.
func ContinueOnInvalid() Option {
	return func(s *Scanner) {
		s.continueOnInvalid = true
	}
}

// OnStatus registers a callback invoked on every status transition.
func OnStatus(fn func(Status)) Option {
	return func(s *Scanner) {
		s.onStatus = fn
	}
}

const (
	rejectedCapacity = 1024
	rejectedFpRate   = 0.01
)

type Scanner struct {
	mu                sync.Mutex
	status            Status
	err               error
	continueOnInvalid bool
	onStatus          func(Status)

	// rejected remembers invalid texts so a code held in front of the camera
	// is reported once. It never decides whether a text is parsed.
	rejected *boom.BloomFilter
}

func New(opts ...Option) *Scanner {
	s := &Scanner{
		status:   StatusIdle,
		rejected: boom.NewBloomFilter(rejectedCapacity, rejectedFpRate),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Scanner) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

// Err returns the error that moved the scanner into StatusError.
func (s *Scanner) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

// Reset returns the scanner to idle, as when the scanning view is closed.
func (s *Scanner) Reset() {
	s.transition(StatusIdle, nil)
}

// Run starts src and scans what it yields.
func (s *Scanner) Run(ctx context.Context, src Source) (*models.ParsedPaymentURI, error) {
	if !s.begin() {
		return nil, ErrScanInProgress
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	candidates, err := src.Start(ctx)
	if err != nil {
		log.WithError(err).Warn("scanner: capture source failed to start")
		s.transition(StatusError, err)
		return nil, err
	}
	return s.scan(ctx, candidates)
}

// Scan consumes candidates until one parses, the channel closes or ctx ends.
func (s *Scanner) Scan(ctx context.Context, candidates <-chan string) (*models.ParsedPaymentURI, error) {
	if !s.begin() {
		return nil, ErrScanInProgress
	}
	return s.scan(ctx, candidates)
}

func (s *Scanner) scan(ctx context.Context, candidates <-chan string) (*models.ParsedPaymentURI, error) {
	session := uuid.New().String()
	logger := log.WithFields(log.Fields{"scan_session": session})
	logger.Debug("scanner: scanning")

	s.transition(StatusScanning, nil)
	frames := 0
	for {
		select {
		case <-ctx.Done():
			logger.Debugf("scanner: cancelled after %d frames", frames)
			s.transition(StatusIdle, nil)
			return nil, ctx.Err()

		case text, ok := <-candidates:
			if !ok {
				s.transition(StatusError, ErrNoPaymentData)
				return nil, ErrNoPaymentData
			}
			frames++
			if text == "" {
				continue
			}

			parsed, err := paymenturi.Inspect(text)
			if err == nil {
				logger.WithField("destination", parsed.Destination).Infof("scanner: payment detected after %d frames", frames)
				s.transition(StatusDetected, nil)
				return parsed, nil
			}

			invalid := &InvalidCandidateError{Text: text, Cause: err}
			if !s.rejected.TestAndAdd([]byte(text)) {
				logger.WithError(err).Warn("scanner: decoded text is not a payment URI")
			}
			if !s.continueOnInvalid {
				s.transition(StatusError, invalid)
				return nil, invalid
			}
		}
	}
}

// ScanText handles a single decoded text, as produced from an uploaded image.
func (s *Scanner) ScanText(text string) (*models.ParsedPaymentURI, error) {
	if !s.begin() {
		return nil, ErrScanInProgress
	}
	if text == "" {
		s.transition(StatusError, ErrNoPaymentData)
		return nil, ErrNoPaymentData
	}
	parsed, err := paymenturi.Inspect(text)
	if err != nil {
		invalid := &InvalidCandidateError{Text: text, Cause: err}
		s.transition(StatusError, invalid)
		return nil, invalid
	}
	s.transition(StatusDetected, nil)
	return parsed, nil
}

func (s *Scanner) begin() bool {
	s.mu.Lock()
	if s.status == StatusStarting || s.status == StatusScanning {
		s.mu.Unlock()
		return false
	}
	s.status = StatusStarting
	s.err = nil
	s.rejected.Reset()
	fn := s.onStatus
	s.mu.Unlock()

	if fn != nil {
		fn(StatusStarting)
	}
	return true
}

func (s *Scanner) transition(status Status, err error) {
	s.mu.Lock()
	s.status = status
	s.err = err
	fn := s.onStatus
	s.mu.Unlock()

	if fn != nil {
		fn(status)
	}
}
