package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avezina/givehub/internal/api"
	"github.com/avezina/givehub/internal/session"
)

// ---- fakes ----

type fakeClient struct {
	DonationsRet []api.Donation
	DonationsErr error
	LastAuthz    string

	ReceiptRet  *api.Receipt
	ReceiptErr  error
	LastRequest api.DonationRequest
	SeenKeys    []string

	CampaignsRet []api.Campaign
	CampaignsErr error
}

func (f *fakeClient) Login(context.Context, string, string) (*api.Account, error) { return nil, nil }
func (f *fakeClient) SignUp(context.Context, api.SignUpParams) (*api.Account, error) {
	return nil, nil
}

func (f *fakeClient) Donations(_ context.Context, authz string) ([]api.Donation, error) {
	f.LastAuthz = authz
	return f.DonationsRet, f.DonationsErr
}

func (f *fakeClient) CreateDonation(_ context.Context, authz string, req api.DonationRequest) (*api.Receipt, error) {
	f.LastAuthz = authz
	f.LastRequest = req
	f.SeenKeys = append(f.SeenKeys, req.IdempotencyKey)
	return f.ReceiptRet, f.ReceiptErr
}

func (f *fakeClient) Campaigns(context.Context) ([]api.Campaign, error) {
	return f.CampaignsRet, f.CampaignsErr
}
func (f *fakeClient) Ping(context.Context) error { return nil }
func (f *fakeClient) Close() error               { return nil }

type fakeSessions struct {
	authz string
	err   error
}

func (f *fakeSessions) AuthorizationHeader() (string, error) { return f.authz, f.err }

// ---- TESTS ----

func TestHistory_AttachesAuthorization(t *testing.T) {
	client := &fakeClient{DonationsRet: []api.Donation{{ID: "d1", AmountCents: 2500}}}
	svc := NewDonationService(client, &fakeSessions{authz: "Bearer tok123"}, nil)

	list, err := svc.History(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Bearer tok123", client.LastAuthz)
}

func TestHistory_FailsFastWhenSignedOut(t *testing.T) {
	client := &fakeClient{}
	svc := NewDonationService(client, &fakeSessions{err: session.ErrNotAuthenticated}, nil)

	_, err := svc.History(context.Background())
	require.ErrorIs(t, err, session.ErrNotAuthenticated)
	assert.Empty(t, client.LastAuthz, "no request must reach the backend")
}

func TestDonate_ValidatesInput(t *testing.T) {
	svc := NewDonationService(&fakeClient{}, &fakeSessions{authz: "Bearer tok123"}, nil)
	ctx := context.Background()

	_, err := svc.Donate(ctx, "c1", 0, MethodQR)
	assert.ErrorIs(t, err, ErrInvalidAmount)

	_, err = svc.Donate(ctx, "c1", -500, MethodQR)
	assert.ErrorIs(t, err, ErrInvalidAmount)

	_, err = svc.Donate(ctx, "c1", 2500, "cash")
	assert.ErrorIs(t, err, ErrInvalidMethod)
}

func TestDonate_SendsRequestWithFreshIdempotencyKey(t *testing.T) {
	client := &fakeClient{ReceiptRet: &api.Receipt{DonationID: "d1", Status: "recorded"}}
	svc := NewDonationService(client, &fakeSessions{authz: "Bearer tok123"}, nil)
	ctx := context.Background()

	_, err := svc.Donate(ctx, "c1", 2500, MethodQR)
	require.NoError(t, err)
	_, err = svc.Donate(ctx, "c1", 2500, MethodNFC)
	require.NoError(t, err)

	assert.Equal(t, "c1", client.LastRequest.CampaignID)
	assert.Equal(t, int64(2500), client.LastRequest.AmountCents)

	require.Len(t, client.SeenKeys, 2)
	assert.NotEmpty(t, client.SeenKeys[0])
	assert.NotEqual(t, client.SeenKeys[0], client.SeenKeys[1], "each attempt needs its own key")
}

func TestCampaigns_ListAndOwnedBy(t *testing.T) {
	client := &fakeClient{CampaignsRet: []api.Campaign{
		{ID: "c1", Title: "Water", OwnerID: "u1"},
		{ID: "c2", Title: "Meals", OwnerID: "u2"},
		{ID: "c3", Title: "Books", OwnerID: "u1"},
	}}
	svc := NewCampaignService(client)

	list, err := svc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 3)

	mine := OwnedBy(list, "u1")
	require.Len(t, mine, 2)
	assert.Equal(t, "c1", mine[0].ID)
	assert.Equal(t, "c3", mine[1].ID)

	assert.Empty(t, OwnedBy(list, "nobody"))
}
