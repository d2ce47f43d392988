package services

import (
	"context"

	"github.com/avezina/givehub/internal/api"
)

// CampaignService lists fundraising campaigns. The listing itself is public;
// role-based filtering is applied client-side for the campaigner screens.
type CampaignService struct {
	api api.Client
}

func NewCampaignService(c api.Client) *CampaignService {
	return &CampaignService{api: c}
}

func (s *CampaignService) List(ctx context.Context) ([]api.Campaign, error) {
	return s.api.Campaigns(ctx)
}

// OwnedBy filters campaigns down to those owned by the given user, for the
// campaigner dashboard.
func OwnedBy(campaigns []api.Campaign, userID string) []api.Campaign {
	out := make([]api.Campaign, 0, len(campaigns))
	for _, c := range campaigns {
		if c.OwnerID == userID {
			out = append(out, c)
		}
	}
	return out
}
