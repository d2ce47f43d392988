// Package services contains the application services the screens call:
// donation history, payment confirmation, campaign listings. They consume
// the session manager's state and never mutate it.
package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/oklog/ulid/v2"

	"github.com/avezina/givehub/internal/api"
	"github.com/avezina/givehub/internal/logging"
)

// Payment methods supported by the donation flow.
const (
	MethodQR  = "qr"
	MethodNFC = "nfc"
)

var (
	ErrInvalidAmount = errors.New("donation amount must be positive")
	ErrInvalidMethod = errors.New("unsupported payment method")
)

// SessionSource is the slice of the session manager the services need.
type SessionSource interface {
	AuthorizationHeader() (string, error)
}

// DonationService issues the authenticated donation calls.
type DonationService struct {
	api      api.Client
	sessions SessionSource
	log      logging.Logger
}

func NewDonationService(c api.Client, sessions SessionSource, log logging.Logger) *DonationService {
	if log == nil {
		log = logging.Nop()
	}
	return &DonationService{api: c, sessions: sessions, log: log.With("component", "donations")}
}

// History fetches the caller's past donations. Fails fast with
// session.ErrNotAuthenticated when no session is live.
func (s *DonationService) History(ctx context.Context) ([]api.Donation, error) {
	authz, err := s.sessions.AuthorizationHeader()
	if err != nil {
		return nil, err
	}
	return s.api.Donations(ctx, authz)
}

// Donate records a payment confirmation. Each attempt carries a fresh ULID
// idempotency key, so a retried request cannot double-charge while two
// distinct attempts remain distinct.
func (s *DonationService) Donate(ctx context.Context, campaignID string, amountCents int64, method string) (*api.Receipt, error) {
	if amountCents <= 0 {
		return nil, ErrInvalidAmount
	}
	if method != MethodQR && method != MethodNFC {
		return nil, fmt.Errorf("%w: %q", ErrInvalidMethod, method)
	}

	authz, err := s.sessions.AuthorizationHeader()
	if err != nil {
		return nil, err
	}

	req := api.DonationRequest{
		CampaignID:     campaignID,
		AmountCents:    amountCents,
		Method:         method,
		IdempotencyKey: ulid.Make().String(),
	}

	rc, err := s.api.CreateDonation(ctx, authz, req)
	if err != nil {
		return nil, err
	}
	s.log.Info(ctx, "donation recorded", "campaignId", campaignID, "amountCents", amountCents, "reference", rc.Reference)
	return rc, nil
}
