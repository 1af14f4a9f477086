package service

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"time"

	"gorm.io/gorm"

	"venture_web/internal/models"
	"venture_web/internal/repository"
)

const roundCacheTTL = time.Minute

// RoundDetail is the funding-round read model served to both dashboards.
type RoundDetail struct {
	ID                  string               `json:"id"`
	StartupID           string               `json:"startupId"`
	Status              models.RoundStatus   `json:"status"`
	AskAmount           float64              `json:"askAmount"`
	EquityOffered       float64              `json:"equityOffered"`
	ImpliedValuation    float64              `json:"impliedValuation"`
	ClosingDate         time.Time            `json:"closingDate"`
	Progress            RoundProgress        `json:"progress"`
	InterestedInvestors []InterestedInvestor `json:"interestedInvestors"`
}

// RoundProgress reports how much of the ask has been raised. Percentage is
// deliberately unclamped: an over-subscribed round shows more than 100.
type RoundProgress struct {
	Raised     float64 `json:"raised"`
	Total      float64 `json:"total"`
	Percentage float64 `json:"percentage"`
}

type InterestedInvestor struct {
	ID               string             `json:"id"`
	Name             string             `json:"name"`
	Company          string             `json:"company"`
	Avatar           string             `json:"avatar,omitempty"`
	Status           models.OfferStatus `json:"status"`
	Offer            *OfferTerms        `json:"offer,omitempty"`
	MeetingScheduled *time.Time         `json:"meetingScheduled,omitempty"`
}

type OfferTerms struct {
	Amount    float64 `json:"amount"`
	Equity    float64 `json:"equity"`
	Valuation float64 `json:"valuation"`
}

// FundingRoundService composes the round read model and manages round
// lifecycle. Reads go through the cache; the negotiation service invalidates
// it on every mutation.
type FundingRoundService struct {
	roundRepo   repository.FundingRoundRepository
	offerRepo   repository.OfferRepository
	capRepo     repository.CapTableRepository
	startupRepo repository.StartupRepository
	cache       RoundCache
}

func NewFundingRoundService(
	roundRepo repository.FundingRoundRepository,
	offerRepo repository.OfferRepository,
	capRepo repository.CapTableRepository,
	startupRepo repository.StartupRepository,
	cache RoundCache,
) *FundingRoundService {
	return &FundingRoundService{
		roundRepo:   roundRepo,
		offerRepo:   offerRepo,
		capRepo:     capRepo,
		startupRepo: startupRepo,
		cache:       cache,
	}
}

func (s *FundingRoundService) CreateRound(ctx context.Context, startupID string, askAmount, equityOffered float64, closingDate time.Time) (*models.FundingRound, error) {
	if _, err := s.startupRepo.FindByID(startupID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrStartupNotFound
		}
		return nil, err
	}

	round := &models.FundingRound{
		StartupID:     startupID,
		AskAmount:     askAmount,
		EquityOffered: equityOffered,
		Status:        models.RoundStatusActive,
		ClosingDate:   closingDate,
	}
	if err := s.roundRepo.Create(round); err != nil {
		return nil, err
	}
	return round, nil
}

func (s *FundingRoundService) CloseRound(ctx context.Context, roundID string) (*models.FundingRound, error) {
	round, err := s.roundRepo.FindByID(roundID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRoundNotFound
		}
		return nil, err
	}
	round.Status = models.RoundStatusClosed
	if err := s.roundRepo.Update(round); err != nil {
		return nil, err
	}
	if err := s.cache.Invalidate(ctx, roundID); err != nil {
		log.Printf("round %s: invalidate cache: %v", roundID, err)
	}
	return round, nil
}

// GetActiveRound serves the read model of a startup's current active round.
// When several rounds are active the newest one wins.
func (s *FundingRoundService) GetActiveRound(ctx context.Context, startupID string) (*RoundDetail, error) {
	round, err := s.roundRepo.FindActiveByStartup(startupID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRoundNotFound
		}
		return nil, err
	}
	return s.GetRoundDetail(ctx, round.ID)
}

// GetRoundDetail serves the cached view when present and rebuilds it from
// the ledger on a miss.
func (s *FundingRoundService) GetRoundDetail(ctx context.Context, roundID string) (*RoundDetail, error) {
	if payload, err := s.cache.Get(ctx, roundID); err == nil {
		var detail RoundDetail
		if err := json.Unmarshal(payload, &detail); err == nil {
			return &detail, nil
		}
		// A corrupt entry falls through to a rebuild.
	} else if !errors.Is(err, ErrCacheMiss) {
		log.Printf("round %s: read cache: %v", roundID, err)
	}

	round, err := s.roundRepo.FindByID(roundID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRoundNotFound
		}
		return nil, err
	}

	offers, err := s.offerRepo.FindByRound(roundID)
	if err != nil {
		return nil, err
	}

	var raised float64
	investors := make([]InterestedInvestor, 0, len(offers))
	for i := range offers {
		offer := &offers[i]
		if offer.Status == models.OfferStatusAccepted {
			raised += offer.Amount
		}

		entry := InterestedInvestor{
			ID:               offer.InvestorID,
			Status:           offer.Status,
			MeetingScheduled: offer.MeetingScheduled,
		}
		if offer.Investor != nil {
			entry.Name = offer.Investor.Name
			entry.Company = offer.Investor.Company
			entry.Avatar = offer.Investor.Avatar
		}
		switch offer.Status {
		case models.OfferStatusOffered, models.OfferStatusCountered, models.OfferStatusAccepted:
			entry.Offer = &OfferTerms{
				Amount:    offer.Amount,
				Equity:    offer.EquityPercentage,
				Valuation: ImpliedValuation(offer.Amount, offer.EquityPercentage),
			}
		}
		investors = append(investors, entry)
	}

	detail := &RoundDetail{
		ID:               round.ID,
		StartupID:        round.StartupID,
		Status:           round.Status,
		AskAmount:        round.AskAmount,
		EquityOffered:    round.EquityOffered,
		ImpliedValuation: ImpliedValuation(round.AskAmount, round.EquityOffered),
		ClosingDate:      round.ClosingDate,
		Progress: RoundProgress{
			Raised:     raised,
			Total:      round.AskAmount,
			Percentage: progressPercentage(raised, round.AskAmount),
		},
		InterestedInvestors: investors,
	}

	if payload, err := json.Marshal(detail); err == nil {
		if err := s.cache.Set(ctx, roundID, payload, roundCacheTTL); err != nil {
			log.Printf("round %s: write cache: %v", roundID, err)
		}
	}
	return detail, nil
}

// GetCapTable lists the accepted-investment ledger for a startup.
func (s *FundingRoundService) GetCapTable(ctx context.Context, startupID string) ([]models.CapTableEntry, error) {
	return s.capRepo.FindByStartup(startupID)
}

func progressPercentage(raised, ask float64) float64 {
	if ask <= 0 {
		return 0
	}
	return raised / ask * 100
}
