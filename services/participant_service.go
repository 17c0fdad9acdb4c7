//go:generate go run go.uber.org/mock/mockgen -source=participant_service.go -destination=../mocks/mock_participant_service.go -package=mocks
package services

import (
	"chat-room/domain"
	"chat-room/errors"
	"chat-room/observability"
	"chat-room/repositories"
	"fmt"
	"log/slog"
	"time"
)

type IParticipantService interface {
	Register(name string) (domain.Participant, error)
	List() ([]domain.Participant, error)
	Heartbeat(name string) error
}

type ParticipantService struct {
	log                   *slog.Logger
	participantRepository repositories.IParticipantRepository
	messageService        IMessageService
	metrics               *observability.Metrics
	now                   func() time.Time
}

func NewParticipantService(
	log *slog.Logger,
	participantRepository repositories.IParticipantRepository,
	messageService IMessageService,
	metrics *observability.Metrics,
) *ParticipantService {
	return &ParticipantService{
		log:                   log,
		participantRepository: participantRepository,
		messageService:        messageService,
		metrics:               metrics,
		now:                   time.Now,
	}
}

// Register creates the participant and announces it to the room.
func (s *ParticipantService) Register(name string) (domain.Participant, error) {
	name = domain.NormalizeName(name)
	if err := validate.Struct(RegisterRequest{Name: name}); err != nil {
		return domain.Participant{}, fmt.Errorf("%w: %v", errors.ErrInvalidParticipant, err)
	}

	now := s.now()
	participant := domain.NewParticipant(name, now)
	if err := s.participantRepository.Create(participant); err != nil {
		return domain.Participant{}, err // ErrParticipantAlreadyExists when the name is taken
	}

	// A participant nobody saw join is removed so the name can be registered again
	if err := s.messageService.Publish(domain.NewJoinedMessage(name, now)); err != nil {
		if deleteErr := s.participantRepository.Delete(name); deleteErr != nil {
			s.log.Error("Failed to roll back participant", "name", name, "error", deleteErr)
		}
		return domain.Participant{}, fmt.Errorf("failed to announce %s: %w", name, err)
	}
	s.metrics.ParticipantsRegistered.Inc()
	s.log.Info("Participant joined", "name", name)
	return participant, nil
}

func (s *ParticipantService) List() ([]domain.Participant, error) {
	return s.participantRepository.List()
}

// Heartbeat refreshes the last status of name, keeping it away from the reaper.
func (s *ParticipantService) Heartbeat(name string) error {
	if err := validateName(name); err != nil {
		return fmt.Errorf("%w: %v", errors.ErrParticipantNotFound, err)
	}
	if err := s.participantRepository.Touch(name, s.now()); err != nil {
		return err
	}
	s.log.Debug("Heartbeat received", "name", name)
	return nil
}
