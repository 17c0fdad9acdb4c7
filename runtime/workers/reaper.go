package workers

import (
	"chat-room/domain"
	"chat-room/observability"
	"chat-room/repositories"
	"chat-room/services"
	"context"
	"log/slog"
	"time"
)

// PresenceReaper periodically evicts participants that stopped sending status.
// Each eviction appends a "left" status message then removes the participant.
// Evictions are independent and best effort: a failure is logged and the batch goes on.
type PresenceReaper struct {
	log                   *slog.Logger
	participantRepository repositories.IParticipantRepository
	messageService        services.IMessageService
	metrics               *observability.Metrics
	interval              time.Duration
	staleThreshold        time.Duration
	now                   func() time.Time
}

func NewPresenceReaper(
	log *slog.Logger,
	participantRepository repositories.IParticipantRepository,
	messageService services.IMessageService,
	metrics *observability.Metrics,
	interval, staleThreshold time.Duration,
) *PresenceReaper {
	return &PresenceReaper{
		log:                   log,
		participantRepository: participantRepository,
		messageService:        messageService,
		metrics:               metrics,
		interval:              interval,
		staleThreshold:        staleThreshold,
		now:                   time.Now,
	}
}

// Run evicts stale participants on every tick until ctx is canceled.
func (w *PresenceReaper) Run(ctx context.Context) error {
	w.log.Info("Starting presence reaper", "interval", w.interval, "stale_threshold", w.staleThreshold)
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			w.Reap()
		}
	}
}

// Reap runs a single eviction pass and returns the number of evicted participants.
func (w *PresenceReaper) Reap() int {
	participants, err := w.participantRepository.List()
	if err != nil {
		w.log.Warn("Failed to list participants", "error", err)
		return 0
	}

	now := w.now()
	evicted := 0
	for _, participant := range participants {
		if !participant.IsStale(now, w.staleThreshold) {
			continue
		}
		if err := w.evict(participant, now); err != nil {
			w.log.Warn("Failed to evict participant", "name", participant.Name, "error", err)
			continue
		}
		evicted++
	}

	if evicted > 0 {
		w.log.Info("Stale participants evicted", "count", evicted)
	}
	return evicted
}

func (w *PresenceReaper) evict(participant domain.Participant, now time.Time) error {
	if err := w.messageService.Publish(domain.NewLeftMessage(participant.Name, now)); err != nil {
		return err
	}
	if err := w.participantRepository.Delete(participant.Name); err != nil {
		return err
	}
	w.metrics.ParticipantsEvicted.Inc()
	return nil
}
