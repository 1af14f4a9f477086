package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/hibiken/asynq"
	"gorm.io/gorm"

	"venture_web/internal/repository"
)

// TaskTypeOfferEvent is the queue task for negotiation updates.
const TaskTypeOfferEvent = "offer:event"

// OfferEvent describes a negotiation mutation. Events are fire-and-forget:
// enqueue failures are logged by the caller and never fail the mutation.
type OfferEvent struct {
	Action         string  `json:"action"` // submitted, accepted, countered, rejected
	FundingRoundID string  `json:"fundingRoundId"`
	StartupID      string  `json:"startupId"`
	InvestorID     string  `json:"investorId"`
	Amount         float64 `json:"amount"`
	Equity         float64 `json:"equity"`
}

type OfferNotifier interface {
	NotifyOfferEvent(ctx context.Context, evt OfferEvent) error
}

// AsynqOfferNotifier enqueues offer events onto the Redis-backed task queue.
type AsynqOfferNotifier struct {
	client *asynq.Client
}

func NewAsynqOfferNotifier(client *asynq.Client) *AsynqOfferNotifier {
	return &AsynqOfferNotifier{client: client}
}

func (n *AsynqOfferNotifier) NotifyOfferEvent(ctx context.Context, evt OfferEvent) error {
	payload, err := json.Marshal(evt)
	if err != nil {
		return err
	}
	_, err = n.client.EnqueueContext(ctx, asynq.NewTask(TaskTypeOfferEvent, payload))
	return err
}

// NoopOfferNotifier drops events. Useful in tests and when the queue is absent.
type NoopOfferNotifier struct{}

func (NoopOfferNotifier) NotifyOfferEvent(ctx context.Context, evt OfferEvent) error {
	return nil
}

// OfferEventWorker consumes offer events and announces them as system frames
// in the pitch room shared by the startup and the investor, so both parties
// see negotiation updates without refreshing.
type OfferEventWorker struct {
	registry *RoomRegistry
	roomRepo repository.PitchRoomRepository
}

func NewOfferEventWorker(registry *RoomRegistry, roomRepo repository.PitchRoomRepository) *OfferEventWorker {
	return &OfferEventWorker{registry: registry, roomRepo: roomRepo}
}

func (w *OfferEventWorker) ProcessTask(ctx context.Context, t *asynq.Task) error {
	var evt OfferEvent
	if err := json.Unmarshal(t.Payload(), &evt); err != nil {
		return fmt.Errorf("decode offer event: %v: %w", err, asynq.SkipRetry)
	}

	room, err := w.roomRepo.FindByStartupAndInvestor(evt.StartupID, evt.InvestorID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// No pitch room for this pair; nothing to announce.
			return nil
		}
		return err
	}

	w.registry.BroadcastSystem(room.ID, offerEventText(evt))
	return nil
}

func offerEventText(evt OfferEvent) string {
	switch evt.Action {
	case "submitted":
		return fmt.Sprintf("New offer: $%.0f for %.2f%% equity", evt.Amount, evt.Equity)
	case "countered":
		return fmt.Sprintf("Counter offer: $%.0f for %.2f%% equity", evt.Amount, evt.Equity)
	case "accepted":
		return fmt.Sprintf("Offer accepted: $%.0f for %.2f%% equity", evt.Amount, evt.Equity)
	case "rejected":
		return "Offer rejected"
	default:
		return "Offer updated"
	}
}
