package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"venture_web/internal/models"
	"venture_web/internal/repository"
)

// stubRoundCache records cache traffic and optionally serves a canned payload.
type stubRoundCache struct {
	payload      []byte
	gets         int
	sets         int
	invalidated  []string
	failOnAccess bool
}

func (c *stubRoundCache) Get(ctx context.Context, roundID string) ([]byte, error) {
	c.gets++
	if c.failOnAccess {
		return nil, errors.New("redis unavailable")
	}
	if c.payload != nil {
		return c.payload, nil
	}
	return nil, ErrCacheMiss
}

func (c *stubRoundCache) Set(ctx context.Context, roundID string, payload []byte, ttl time.Duration) error {
	c.sets++
	if c.failOnAccess {
		return errors.New("redis unavailable")
	}
	return nil
}

func (c *stubRoundCache) Invalidate(ctx context.Context, roundID string) error {
	c.invalidated = append(c.invalidated, roundID)
	if c.failOnAccess {
		return errors.New("redis unavailable")
	}
	return nil
}

// stubNotifier records emitted offer events.
type stubNotifier struct {
	events []OfferEvent
}

func (n *stubNotifier) NotifyOfferEvent(ctx context.Context, evt OfferEvent) error {
	n.events = append(n.events, evt)
	return nil
}

type negotiationFixture struct {
	svc       *NegotiationService
	offers    *repository.MockOfferRepository
	rounds    *repository.MockFundingRoundRepository
	investors *repository.MockInvestorRepository
	cache     *stubRoundCache
	notifier  *stubNotifier

	updated    []*models.Offer
	capEntries []*models.CapTableEntry
}

func newNegotiationFixture(offer *models.Offer, round *models.FundingRound) *negotiationFixture {
	f := &negotiationFixture{
		offers:   &repository.MockOfferRepository{},
		rounds:   &repository.MockFundingRoundRepository{},
		cache:    &stubRoundCache{},
		notifier: &stubNotifier{},
	}
	f.investors = &repository.MockInvestorRepository{
		FindByIDFunc: func(id string) (*models.Investor, error) {
			inv := &models.Investor{Name: "Investor " + id}
			inv.ID = id
			return inv, nil
		},
	}
	if offer != nil {
		f.offers.FindByRoundAndInvestorFunc = func(roundID, investorID string) (*models.Offer, error) {
			if roundID == offer.FundingRoundID && investorID == offer.InvestorID {
				return offer, nil
			}
			return nil, errNotFound()
		}
	}
	if round != nil {
		f.rounds.FindByIDFunc = func(id string) (*models.FundingRound, error) {
			if id == round.ID {
				return round, nil
			}
			return nil, errNotFound()
		}
	}
	f.offers.UpdateFunc = func(o *models.Offer) error {
		f.updated = append(f.updated, o)
		return nil
	}
	f.offers.AcceptFunc = func(o *models.Offer, e *models.CapTableEntry) error {
		f.updated = append(f.updated, o)
		f.capEntries = append(f.capEntries, e)
		return nil
	}
	f.svc = NewNegotiationService(f.offers, f.rounds, f.investors, f.cache, f.notifier)
	return f
}

func errNotFound() error {
	return gorm.ErrRecordNotFound
}

func TestAcceptOfferCreatesSingleCapTableEntry(t *testing.T) {
	offer := &models.Offer{
		FundingRoundID:   "round-1",
		InvestorID:       "inv-1",
		Amount:           250000,
		EquityPercentage: 5,
		Status:           models.OfferStatusOffered,
	}
	round := &models.FundingRound{StartupID: "startup-1", AskAmount: 500000}
	round.ID = "round-1"
	f := newNegotiationFixture(offer, round)

	got, err := f.svc.AcceptOffer(context.Background(), "round-1", "inv-1")
	require.NoError(t, err)

	assert.Equal(t, models.OfferStatusAccepted, got.Status)
	require.NotNil(t, got.AcceptedAt)

	require.Len(t, f.capEntries, 1)
	entry := f.capEntries[0]
	assert.Equal(t, "startup-1", entry.StartupID)
	assert.Equal(t, "inv-1", entry.InvestorID)
	assert.Equal(t, 5.0, entry.Equity)
	assert.Equal(t, 250000.0, entry.Investment)
	assert.False(t, entry.Date.IsZero())

	assert.Contains(t, f.cache.invalidated, "round-1")
	require.Len(t, f.notifier.events, 1)
	assert.Equal(t, "accepted", f.notifier.events[0].Action)
	assert.Equal(t, "startup-1", f.notifier.events[0].StartupID)
}

func TestAcceptOfferTwiceIsTerminal(t *testing.T) {
	offer := &models.Offer{
		FundingRoundID:   "round-1",
		InvestorID:       "inv-1",
		Amount:           250000,
		EquityPercentage: 5,
		Status:           models.OfferStatusOffered,
	}
	round := &models.FundingRound{StartupID: "startup-1"}
	round.ID = "round-1"
	f := newNegotiationFixture(offer, round)

	_, err := f.svc.AcceptOffer(context.Background(), "round-1", "inv-1")
	require.NoError(t, err)
	require.Len(t, f.capEntries, 1)

	_, err = f.svc.AcceptOffer(context.Background(), "round-1", "inv-1")
	assert.ErrorIs(t, err, ErrOfferAlreadyAccepted)
	assert.Len(t, f.capEntries, 1, "a second accept must not add a cap-table entry")
}

func TestAcceptOfferRetriesAfterFailedPersist(t *testing.T) {
	offer := &models.Offer{
		FundingRoundID:   "round-1",
		InvestorID:       "inv-1",
		Amount:           250000,
		EquityPercentage: 5,
		Status:           models.OfferStatusOffered,
	}
	round := &models.FundingRound{StartupID: "startup-1"}
	round.ID = "round-1"
	f := newNegotiationFixture(offer, round)

	calls := 0
	f.offers.AcceptFunc = func(o *models.Offer, e *models.CapTableEntry) error {
		calls++
		if calls == 1 {
			return errors.New("database is down")
		}
		f.capEntries = append(f.capEntries, e)
		return nil
	}

	_, err := f.svc.AcceptOffer(context.Background(), "round-1", "inv-1")
	require.Error(t, err)
	assert.Equal(t, models.OfferStatusOffered, offer.Status, "a failed accept leaves the offer open")
	assert.Nil(t, offer.AcceptedAt)
	assert.Empty(t, f.capEntries)

	// The retry completes the acceptance rather than hitting the terminal
	// guard.
	got, err := f.svc.AcceptOffer(context.Background(), "round-1", "inv-1")
	require.NoError(t, err)
	assert.Equal(t, models.OfferStatusAccepted, got.Status)
	require.NotNil(t, got.AcceptedAt)
	require.Len(t, f.capEntries, 1)
	assert.Equal(t, 250000.0, f.capEntries[0].Investment)
}

func TestCounterOfferOverwritesTerms(t *testing.T) {
	offer := &models.Offer{
		FundingRoundID:   "round-1",
		InvestorID:       "inv-1",
		Amount:           250000,
		EquityPercentage: 5,
		Status:           models.OfferStatusOffered,
	}
	round := &models.FundingRound{StartupID: "startup-1"}
	round.ID = "round-1"
	f := newNegotiationFixture(offer, round)

	got, err := f.svc.CounterOffer(context.Background(), "round-1", "inv-1", 200000, 8)
	require.NoError(t, err)

	assert.Equal(t, models.OfferStatusCountered, got.Status)
	assert.Equal(t, 200000.0, got.Amount)
	assert.Equal(t, 8.0, got.EquityPercentage)
	assert.Equal(t, 2500000.0, ImpliedValuation(got.Amount, got.EquityPercentage))

	require.Len(t, f.notifier.events, 1)
	assert.Equal(t, "countered", f.notifier.events[0].Action)
	assert.Contains(t, f.cache.invalidated, "round-1")
}

func TestCounterAcceptedOfferFails(t *testing.T) {
	offer := &models.Offer{
		FundingRoundID: "round-1",
		InvestorID:     "inv-1",
		Status:         models.OfferStatusAccepted,
	}
	f := newNegotiationFixture(offer, nil)

	_, err := f.svc.CounterOffer(context.Background(), "round-1", "inv-1", 100000, 10)
	assert.ErrorIs(t, err, ErrOfferAlreadyAccepted)
	assert.Empty(t, f.updated)
}

func TestActionsOnMissingOffer(t *testing.T) {
	f := newNegotiationFixture(nil, nil)
	ctx := context.Background()

	_, err := f.svc.AcceptOffer(ctx, "round-1", "inv-1")
	assert.ErrorIs(t, err, ErrOfferNotFound)

	_, err = f.svc.CounterOffer(ctx, "round-1", "inv-1", 100000, 10)
	assert.ErrorIs(t, err, ErrOfferNotFound)

	_, err = f.svc.RejectOffer(ctx, "round-1", "inv-1")
	assert.ErrorIs(t, err, ErrOfferNotFound)

	assert.Empty(t, f.updated, "missing offers must not be written")
	assert.Empty(t, f.capEntries)
	assert.Empty(t, f.notifier.events)
}

func TestRejectOfferStampsTime(t *testing.T) {
	offer := &models.Offer{
		FundingRoundID: "round-1",
		InvestorID:     "inv-1",
		Status:         models.OfferStatusOffered,
	}
	round := &models.FundingRound{StartupID: "startup-1"}
	round.ID = "round-1"
	f := newNegotiationFixture(offer, round)

	got, err := f.svc.RejectOffer(context.Background(), "round-1", "inv-1")
	require.NoError(t, err)
	assert.Equal(t, models.OfferStatusRejected, got.Status)
	require.NotNil(t, got.RejectedAt)

	require.Len(t, f.notifier.events, 1)
	assert.Equal(t, "rejected", f.notifier.events[0].Action)
}

func TestExpressInterestIsIdempotent(t *testing.T) {
	round := &models.FundingRound{StartupID: "startup-1"}
	round.ID = "round-1"
	f := newNegotiationFixture(nil, round)

	var created *models.Offer
	f.offers.CreateFunc = func(o *models.Offer) error {
		created = o
		return nil
	}
	f.offers.FindByRoundAndInvestorFunc = func(roundID, investorID string) (*models.Offer, error) {
		if created != nil {
			return created, nil
		}
		return nil, errNotFound()
	}

	ctx := context.Background()
	first, err := f.svc.ExpressInterest(ctx, "round-1", "inv-1")
	require.NoError(t, err)
	assert.Equal(t, models.OfferStatusReviewing, first.Status)
	assert.Equal(t, "round-1", first.FundingRoundID)
	assert.Equal(t, "inv-1", first.InvestorID)

	second, err := f.svc.ExpressInterest(ctx, "round-1", "inv-1")
	require.NoError(t, err)
	assert.Same(t, first, second, "repeat interest returns the existing offer")
}

func TestExpressInterestUnknownRound(t *testing.T) {
	f := newNegotiationFixture(nil, nil)

	_, err := f.svc.ExpressInterest(context.Background(), "ghost", "inv-1")
	assert.ErrorIs(t, err, ErrRoundNotFound)
}

func TestExpressInterestUnknownInvestor(t *testing.T) {
	round := &models.FundingRound{StartupID: "startup-1"}
	round.ID = "round-1"
	f := newNegotiationFixture(nil, round)
	f.investors.FindByIDFunc = nil

	created := false
	f.offers.CreateFunc = func(o *models.Offer) error {
		created = true
		return nil
	}

	_, err := f.svc.ExpressInterest(context.Background(), "round-1", "ghost")
	assert.ErrorIs(t, err, ErrInvestorNotFound)
	assert.False(t, created)
}

func TestSubmitOfferMovesReviewingToOffered(t *testing.T) {
	offer := &models.Offer{
		FundingRoundID: "round-1",
		InvestorID:     "inv-1",
		Status:         models.OfferStatusReviewing,
	}
	round := &models.FundingRound{StartupID: "startup-1"}
	round.ID = "round-1"
	f := newNegotiationFixture(offer, round)

	got, err := f.svc.SubmitOffer(context.Background(), "round-1", "inv-1", 250000, 5)
	require.NoError(t, err)
	assert.Equal(t, models.OfferStatusOffered, got.Status)
	assert.Equal(t, 250000.0, got.Amount)
	assert.Equal(t, 5.0, got.EquityPercentage)

	require.Len(t, f.notifier.events, 1)
	assert.Equal(t, "submitted", f.notifier.events[0].Action)
}

func TestCacheFailureDoesNotFailMutation(t *testing.T) {
	offer := &models.Offer{
		FundingRoundID: "round-1",
		InvestorID:     "inv-1",
		Status:         models.OfferStatusOffered,
	}
	round := &models.FundingRound{StartupID: "startup-1"}
	round.ID = "round-1"
	f := newNegotiationFixture(offer, round)
	f.cache.failOnAccess = true

	got, err := f.svc.CounterOffer(context.Background(), "round-1", "inv-1", 150000, 6)
	require.NoError(t, err)
	assert.Equal(t, models.OfferStatusCountered, got.Status)
}

func TestImpliedValuation(t *testing.T) {
	assert.Equal(t, 5000000.0, ImpliedValuation(250000, 5))
	assert.Equal(t, 2500000.0, ImpliedValuation(200000, 8))
	assert.Equal(t, 0.0, ImpliedValuation(250000, 0), "zero equity must not divide")
	assert.Equal(t, 0.0, ImpliedValuation(250000, -1))
}
