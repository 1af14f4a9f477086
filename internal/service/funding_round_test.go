package service

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"venture_web/internal/models"
	"venture_web/internal/repository"
)

func TestGetRoundDetailComposesReadModel(t *testing.T) {
	closing := time.Date(2026, 10, 15, 0, 0, 0, 0, time.UTC)
	round := &models.FundingRound{
		StartupID:     "startup-1",
		AskAmount:     500000,
		EquityOffered: 8,
		Status:        models.RoundStatusActive,
		ClosingDate:   closing,
	}
	round.ID = "round-1"

	rounds := &repository.MockFundingRoundRepository{
		FindByIDFunc: func(id string) (*models.FundingRound, error) {
			require.Equal(t, "round-1", id)
			return round, nil
		},
	}
	offers := &repository.MockOfferRepository{
		FindByRoundFunc: func(roundID string) ([]models.Offer, error) {
			accepted := models.Offer{
				FundingRoundID:   "round-1",
				InvestorID:       "inv-1",
				Amount:           300000,
				EquityPercentage: 5,
				Status:           models.OfferStatusAccepted,
				Investor:         &models.Investor{Name: "Ada Capital", Company: "Ada Capital LLC"},
			}
			offered := models.Offer{
				FundingRoundID:   "round-1",
				InvestorID:       "inv-2",
				Amount:           200000,
				EquityPercentage: 8,
				Status:           models.OfferStatusOffered,
				Investor:         &models.Investor{Name: "Beta Ventures", Company: "Beta Ventures LP"},
			}
			reviewing := models.Offer{
				FundingRoundID: "round-1",
				InvestorID:     "inv-3",
				Status:         models.OfferStatusReviewing,
				Investor:       &models.Investor{Name: "Gamma Fund", Company: "Gamma Fund Inc"},
			}
			return []models.Offer{accepted, offered, reviewing}, nil
		},
	}
	cache := &stubRoundCache{}

	svc := NewFundingRoundService(rounds, offers, &repository.MockCapTableRepository{}, &repository.MockStartupRepository{}, cache)

	detail, err := svc.GetRoundDetail(context.Background(), "round-1")
	require.NoError(t, err)

	assert.Equal(t, "round-1", detail.ID)
	assert.Equal(t, "startup-1", detail.StartupID)
	assert.Equal(t, 6250000.0, detail.ImpliedValuation, "500000 / 8% implies a 6.25M valuation")
	assert.Equal(t, closing, detail.ClosingDate)

	assert.Equal(t, 300000.0, detail.Progress.Raised)
	assert.Equal(t, 500000.0, detail.Progress.Total)
	assert.Equal(t, 60.0, detail.Progress.Percentage)

	require.Len(t, detail.InterestedInvestors, 3)
	require.NotNil(t, detail.InterestedInvestors[0].Offer)
	assert.Equal(t, 6000000.0, detail.InterestedInvestors[0].Offer.Valuation)
	require.NotNil(t, detail.InterestedInvestors[1].Offer)
	assert.Equal(t, 2500000.0, detail.InterestedInvestors[1].Offer.Valuation)
	assert.Nil(t, detail.InterestedInvestors[2].Offer, "reviewing investors have no terms yet")
	assert.Equal(t, "Gamma Fund", detail.InterestedInvestors[2].Name)

	assert.Equal(t, 1, cache.sets, "a rebuilt view is written back to the cache")
}

func TestGetRoundDetailOverSubscribedIsUnclamped(t *testing.T) {
	round := &models.FundingRound{StartupID: "startup-1", AskAmount: 500000, EquityOffered: 10}
	round.ID = "round-1"

	rounds := &repository.MockFundingRoundRepository{
		FindByIDFunc: func(id string) (*models.FundingRound, error) { return round, nil },
	}
	offers := &repository.MockOfferRepository{
		FindByRoundFunc: func(roundID string) ([]models.Offer, error) {
			a := models.Offer{InvestorID: "inv-1", Amount: 400000, EquityPercentage: 6, Status: models.OfferStatusAccepted}
			b := models.Offer{InvestorID: "inv-2", Amount: 200000, EquityPercentage: 3, Status: models.OfferStatusAccepted}
			return []models.Offer{a, b}, nil
		},
	}

	svc := NewFundingRoundService(rounds, offers, &repository.MockCapTableRepository{}, &repository.MockStartupRepository{}, &stubRoundCache{})

	detail, err := svc.GetRoundDetail(context.Background(), "round-1")
	require.NoError(t, err)
	assert.Equal(t, 600000.0, detail.Progress.Raised)
	assert.Equal(t, 120.0, detail.Progress.Percentage, "over-subscription shows above 100")
}

func TestGetRoundDetailServedFromCache(t *testing.T) {
	cached := RoundDetail{ID: "round-1", StartupID: "startup-1", AskAmount: 500000}
	payload, err := json.Marshal(cached)
	require.NoError(t, err)

	repoCalled := false
	rounds := &repository.MockFundingRoundRepository{
		FindByIDFunc: func(id string) (*models.FundingRound, error) {
			repoCalled = true
			return nil, errNotFound()
		},
	}

	svc := NewFundingRoundService(rounds, &repository.MockOfferRepository{}, &repository.MockCapTableRepository{}, &repository.MockStartupRepository{}, &stubRoundCache{payload: payload})

	detail, err := svc.GetRoundDetail(context.Background(), "round-1")
	require.NoError(t, err)
	assert.Equal(t, cached.ID, detail.ID)
	assert.Equal(t, cached.AskAmount, detail.AskAmount)
	assert.False(t, repoCalled, "a cache hit must not touch the database")
}

func TestGetRoundDetailCorruptCacheEntryRebuilds(t *testing.T) {
	round := &models.FundingRound{StartupID: "startup-1", AskAmount: 100000, EquityOffered: 10}
	round.ID = "round-1"

	rounds := &repository.MockFundingRoundRepository{
		FindByIDFunc: func(id string) (*models.FundingRound, error) { return round, nil },
	}

	svc := NewFundingRoundService(rounds, &repository.MockOfferRepository{}, &repository.MockCapTableRepository{}, &repository.MockStartupRepository{}, &stubRoundCache{payload: []byte("not json")})

	detail, err := svc.GetRoundDetail(context.Background(), "round-1")
	require.NoError(t, err)
	assert.Equal(t, "round-1", detail.ID)
}

func TestGetRoundDetailUnknownRound(t *testing.T) {
	svc := NewFundingRoundService(&repository.MockFundingRoundRepository{}, &repository.MockOfferRepository{}, &repository.MockCapTableRepository{}, &repository.MockStartupRepository{}, &stubRoundCache{})

	_, err := svc.GetRoundDetail(context.Background(), "ghost")
	assert.ErrorIs(t, err, ErrRoundNotFound)
}

func TestCloseRoundInvalidatesCache(t *testing.T) {
	round := &models.FundingRound{StartupID: "startup-1", Status: models.RoundStatusActive}
	round.ID = "round-1"

	var updated *models.FundingRound
	rounds := &repository.MockFundingRoundRepository{
		FindByIDFunc: func(id string) (*models.FundingRound, error) { return round, nil },
		UpdateFunc: func(r *models.FundingRound) error {
			updated = r
			return nil
		},
	}
	cache := &stubRoundCache{}

	svc := NewFundingRoundService(rounds, &repository.MockOfferRepository{}, &repository.MockCapTableRepository{}, &repository.MockStartupRepository{}, cache)

	got, err := svc.CloseRound(context.Background(), "round-1")
	require.NoError(t, err)
	assert.Equal(t, models.RoundStatusClosed, got.Status)
	require.NotNil(t, updated)
	assert.Contains(t, cache.invalidated, "round-1")
}

func TestCreateRoundUnknownStartup(t *testing.T) {
	svc := NewFundingRoundService(&repository.MockFundingRoundRepository{}, &repository.MockOfferRepository{}, &repository.MockCapTableRepository{}, &repository.MockStartupRepository{}, &stubRoundCache{})

	_, err := svc.CreateRound(context.Background(), "ghost", 500000, 8, time.Now())
	assert.ErrorIs(t, err, ErrStartupNotFound)
}

func TestGetActiveRoundResolvesNewestActive(t *testing.T) {
	round := &models.FundingRound{StartupID: "startup-1", AskAmount: 500000, EquityOffered: 8, Status: models.RoundStatusActive}
	round.ID = "round-2"

	rounds := &repository.MockFundingRoundRepository{
		FindActiveByStartupFunc: func(startupID string) (*models.FundingRound, error) {
			require.Equal(t, "startup-1", startupID)
			return round, nil
		},
		FindByIDFunc: func(id string) (*models.FundingRound, error) {
			require.Equal(t, "round-2", id)
			return round, nil
		},
	}

	svc := NewFundingRoundService(rounds, &repository.MockOfferRepository{}, &repository.MockCapTableRepository{}, &repository.MockStartupRepository{}, &stubRoundCache{})

	detail, err := svc.GetActiveRound(context.Background(), "startup-1")
	require.NoError(t, err)
	assert.Equal(t, "round-2", detail.ID)
	assert.Equal(t, 6250000.0, detail.ImpliedValuation)
}

func TestGetActiveRoundNoneActive(t *testing.T) {
	svc := NewFundingRoundService(&repository.MockFundingRoundRepository{}, &repository.MockOfferRepository{}, &repository.MockCapTableRepository{}, &repository.MockStartupRepository{}, &stubRoundCache{})

	_, err := svc.GetActiveRound(context.Background(), "startup-1")
	assert.ErrorIs(t, err, ErrRoundNotFound)
}

func TestProgressPercentageZeroAsk(t *testing.T) {
	assert.Equal(t, 0.0, progressPercentage(100000, 0))
}
