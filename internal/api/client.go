// Package api is the HTTP client for the GiveHub backend. It owns the wire
// formats: divergent response envelopes are normalized here and exactly one
// shape of each model leaves the package.
package api

import (
	"context"
	"time"
)

// Role is the authenticated user's category. Wire values come from the
// backend: donors are plain users.
type Role string

const (
	RoleDonor      Role = "user"
	RoleCampaigner Role = "campaigner"
)

// Account is the normalized result of a login or signup response.
// Token is an opaque bearer credential; the client never inspects it.
type Account struct {
	UserID string
	Name   string
	Email  string
	Token  string
	Role   Role
}

// SignUpParams carries the fields of a registration request.
type SignUpParams struct {
	Name     string
	Email    string
	Password string
	Role     Role
}

// Campaign is a fundraising campaign as listed by the backend.
type Campaign struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	OwnerID     string `json:"ownerId"`
	GoalCents   int64  `json:"goalCents"`
	RaisedCents int64  `json:"raisedCents"`
}

// Donation is one entry of the caller's donation history.
type Donation struct {
	ID          string    `json:"id"`
	CampaignID  string    `json:"campaignId"`
	AmountCents int64     `json:"amountCents"`
	Method      string    `json:"method"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"createdAt"`
}

// DonationRequest is the payment confirmation saved after a donation.
// IdempotencyKey travels as a header, not in the body; the backend uses it
// to de-duplicate double submissions.
type DonationRequest struct {
	CampaignID     string `json:"campaignId"`
	AmountCents    int64  `json:"amountCents"`
	Method         string `json:"method"`
	IdempotencyKey string `json:"-"`
}

// Receipt confirms a recorded donation.
type Receipt struct {
	DonationID string `json:"donationId"`
	Status     string `json:"status"`
	Reference  string `json:"reference"`
}

// Client defines the backend operations the app depends on.
//
// Contract:
//   - Login / SignUp: exchange credentials for a normalized Account.
//   - Donations / CreateDonation: authenticated; authz is the full
//     Authorization header value produced by the session manager.
//   - Campaigns: public listing.
//   - Ping: liveness probe.
//   - Close: release transport resources.
//
// All methods must honor context cancellation/timeouts.
type Client interface {
	Login(ctx context.Context, email, password string) (*Account, error)
	SignUp(ctx context.Context, p SignUpParams) (*Account, error)
	Donations(ctx context.Context, authz string) ([]Donation, error)
	CreateDonation(ctx context.Context, authz string, req DonationRequest) (*Receipt, error)
	Campaigns(ctx context.Context) ([]Campaign, error)
	Ping(ctx context.Context) error
	Close() error
}
