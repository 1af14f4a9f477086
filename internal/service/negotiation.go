package service

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"gorm.io/gorm"

	"venture_web/internal/models"
	"venture_web/internal/repository"
)

// ImpliedValuation is the valuation consistent with an investment-for-equity
// trade. The same formula backs the founder and investor views; zero equity
// yields zero rather than dividing.
func ImpliedValuation(amount, equity float64) float64 {
	if equity <= 0 {
		return 0
	}
	return amount / equity * 100
}

// keyedMutex hands out one mutex per negotiation key so that concurrent
// mutations of the same (funding round, investor) offer cannot interleave
// their read-modify-write cycles. Entries are never released: the map is
// bounded by the number of negotiated pairs over the process lifetime, and a
// mutex is small enough that reclaiming idle ones is not worth the
// bookkeeping.
type keyedMutex struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func (k *keyedMutex) lock(key string) *sync.Mutex {
	k.mu.Lock()
	if k.locks == nil {
		k.locks = make(map[string]*sync.Mutex)
	}
	m, ok := k.locks[key]
	if !ok {
		m = &sync.Mutex{}
		k.locks[key] = m
	}
	k.mu.Unlock()

	m.Lock()
	return m
}

// NegotiationService applies accept/counter/reject actions to the offer
// ledger, appends cap-table entries on acceptance, invalidates the cached
// round view and emits offer events to the queue.
type NegotiationService struct {
	offerRepo    repository.OfferRepository
	roundRepo    repository.FundingRoundRepository
	investorRepo repository.InvestorRepository
	cache        RoundCache
	notifier     OfferNotifier
	locks        keyedMutex
}

func NewNegotiationService(
	offerRepo repository.OfferRepository,
	roundRepo repository.FundingRoundRepository,
	investorRepo repository.InvestorRepository,
	cache RoundCache,
	notifier OfferNotifier,
) *NegotiationService {
	return &NegotiationService{
		offerRepo:    offerRepo,
		roundRepo:    roundRepo,
		investorRepo: investorRepo,
		cache:        cache,
		notifier:     notifier,
	}
}

// ExpressInterest creates a reviewing offer for the pair if none exists yet.
// It is the entry point of every negotiation; accept and counter require the
// row to be present. Calling it again returns the existing offer unchanged.
func (s *NegotiationService) ExpressInterest(ctx context.Context, roundID, investorID string) (*models.Offer, error) {
	m := s.locks.lock(negotiationKey(roundID, investorID))
	defer m.Unlock()

	offer, err := s.offerRepo.FindByRoundAndInvestor(roundID, investorID)
	if err == nil {
		return offer, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	if _, err := s.findRound(roundID); err != nil {
		return nil, err
	}
	if _, err := s.investorRepo.FindByID(investorID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvestorNotFound
		}
		return nil, err
	}

	offer = &models.Offer{
		FundingRoundID: roundID,
		InvestorID:     investorID,
		Status:         models.OfferStatusReviewing,
	}
	if err := s.offerRepo.Create(offer); err != nil {
		return nil, err
	}
	s.invalidate(ctx, roundID)
	return offer, nil
}

// SubmitOffer records the investor's proposed terms and moves the offer to
// offered. Re-submitting overwrites the previous terms.
func (s *NegotiationService) SubmitOffer(ctx context.Context, roundID, investorID string, amount, equity float64) (*models.Offer, error) {
	m := s.locks.lock(negotiationKey(roundID, investorID))
	defer m.Unlock()

	offer, err := s.findOffer(roundID, investorID)
	if err != nil {
		return nil, err
	}
	if offer.Status == models.OfferStatusAccepted {
		return nil, ErrOfferAlreadyAccepted
	}

	offer.Amount = amount
	offer.EquityPercentage = equity
	offer.Status = models.OfferStatusOffered
	if err := s.offerRepo.Update(offer); err != nil {
		return nil, err
	}

	s.invalidate(ctx, roundID)
	s.notify(ctx, "submitted", offer)
	return offer, nil
}

// AcceptOffer transitions the offer to accepted, stamps the acceptance time
// and appends exactly one cap-table entry recording the agreed terms.
// Accepted is terminal: a second accept fails with ErrOfferAlreadyAccepted
// and the cap table is untouched.
func (s *NegotiationService) AcceptOffer(ctx context.Context, roundID, investorID string) (*models.Offer, error) {
	m := s.locks.lock(negotiationKey(roundID, investorID))
	defer m.Unlock()

	offer, err := s.findOffer(roundID, investorID)
	if err != nil {
		return nil, err
	}
	if offer.Status == models.OfferStatusAccepted {
		return nil, ErrOfferAlreadyAccepted
	}

	round, err := s.findRound(roundID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	prevStatus := offer.Status
	offer.Status = models.OfferStatusAccepted
	offer.AcceptedAt = &now

	entry := &models.CapTableEntry{
		StartupID:  round.StartupID,
		InvestorID: investorID,
		Equity:     offer.EquityPercentage,
		Investment: offer.Amount,
		Date:       now,
	}
	// The status flip and the cap-table insert commit together. On failure
	// the offer stays open so a retry can complete the acceptance; flipping
	// first would strand an accepted offer with no cap-table entry behind
	// the terminal guard above.
	if err := s.offerRepo.Accept(offer, entry); err != nil {
		offer.Status = prevStatus
		offer.AcceptedAt = nil
		return nil, err
	}

	s.invalidate(ctx, roundID)
	s.notify(ctx, "accepted", offer)
	return offer, nil
}

// CounterOffer overwrites the offer's terms with the counterparty's numbers
// and moves it to countered. Prior terms are not retained; the single offer
// row is the negotiation's current state. Term validation (> 0) is the
// HTTP boundary's job.
func (s *NegotiationService) CounterOffer(ctx context.Context, roundID, investorID string, amount, equity float64) (*models.Offer, error) {
	m := s.locks.lock(negotiationKey(roundID, investorID))
	defer m.Unlock()

	offer, err := s.findOffer(roundID, investorID)
	if err != nil {
		return nil, err
	}
	if offer.Status == models.OfferStatusAccepted {
		return nil, ErrOfferAlreadyAccepted
	}

	offer.Amount = amount
	offer.EquityPercentage = equity
	offer.Status = models.OfferStatusCountered
	if err := s.offerRepo.Update(offer); err != nil {
		return nil, err
	}

	s.invalidate(ctx, roundID)
	s.notify(ctx, "countered", offer)
	return offer, nil
}

// RejectOffer transitions the offer to rejected and stamps the time.
func (s *NegotiationService) RejectOffer(ctx context.Context, roundID, investorID string) (*models.Offer, error) {
	m := s.locks.lock(negotiationKey(roundID, investorID))
	defer m.Unlock()

	offer, err := s.findOffer(roundID, investorID)
	if err != nil {
		return nil, err
	}
	if offer.Status == models.OfferStatusAccepted {
		return nil, ErrOfferAlreadyAccepted
	}

	now := time.Now()
	offer.Status = models.OfferStatusRejected
	offer.RejectedAt = &now
	if err := s.offerRepo.Update(offer); err != nil {
		return nil, err
	}

	s.invalidate(ctx, roundID)
	s.notify(ctx, "rejected", offer)
	return offer, nil
}

func (s *NegotiationService) findOffer(roundID, investorID string) (*models.Offer, error) {
	offer, err := s.offerRepo.FindByRoundAndInvestor(roundID, investorID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOfferNotFound
		}
		return nil, err
	}
	return offer, nil
}

func (s *NegotiationService) findRound(roundID string) (*models.FundingRound, error) {
	round, err := s.roundRepo.FindByID(roundID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRoundNotFound
		}
		return nil, err
	}
	return round, nil
}

func (s *NegotiationService) invalidate(ctx context.Context, roundID string) {
	if err := s.cache.Invalidate(ctx, roundID); err != nil {
		log.Printf("round %s: invalidate cache: %v", roundID, err)
	}
}

func (s *NegotiationService) notify(ctx context.Context, action string, offer *models.Offer) {
	round, err := s.findRound(offer.FundingRoundID)
	if err != nil {
		log.Printf("round %s: notify %s: %v", offer.FundingRoundID, action, err)
		return
	}
	evt := OfferEvent{
		Action:         action,
		FundingRoundID: offer.FundingRoundID,
		StartupID:      round.StartupID,
		InvestorID:     offer.InvestorID,
		Amount:         offer.Amount,
		Equity:         offer.EquityPercentage,
	}
	if err := s.notifier.NotifyOfferEvent(ctx, evt); err != nil {
		log.Printf("round %s: enqueue %s event: %v", offer.FundingRoundID, action, err)
	}
}

func negotiationKey(roundID, investorID string) string {
	return roundID + "/" + investorID
}
