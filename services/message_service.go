//go:generate go run go.uber.org/mock/mockgen -source=message_service.go -destination=../mocks/mock_message_service.go -package=mocks
package services

import (
	"chat-room/domain"
	"chat-room/errors"
	"chat-room/moderation"
	"chat-room/observability"
	"chat-room/repositories"
	"context"
	goerrors "errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/samber/lo"
)

// Index hits are filtered by visibility after the search,
// so the index is asked for more candidates than the caller wants.
const searchWindowFactor = 10

type IMessageService interface {
	Post(from, to, text, messageType string) (domain.Message, error)
	List(viewer string, limit *int) ([]domain.Message, error)
	Search(ctx context.Context, viewer, query string, limit *int) ([]domain.Message, error)
	Publish(message domain.Message) error
}

type MessageService struct {
	log                   *slog.Logger
	participantRepository repositories.IParticipantRepository
	messageRepository     repositories.IMessageRepository
	messageIndex          repositories.IMessageIndex
	moderator             *moderation.Moderator
	metrics               *observability.Metrics
	searchLimit           int
	now                   func() time.Time
}

// NewMessageService builds the message service. moderator may be nil to disable censoring.
func NewMessageService(
	log *slog.Logger,
	participantRepository repositories.IParticipantRepository,
	messageRepository repositories.IMessageRepository,
	messageIndex repositories.IMessageIndex,
	moderator *moderation.Moderator,
	metrics *observability.Metrics,
	searchLimit int,
) *MessageService {
	return &MessageService{
		log:                   log,
		participantRepository: participantRepository,
		messageRepository:     messageRepository,
		messageIndex:          messageIndex,
		moderator:             moderator,
		metrics:               metrics,
		searchLimit:           searchLimit,
		now:                   time.Now,
	}
}

// Post validates and appends a message sent by a registered participant.
func (s *MessageService) Post(from, to, text, messageType string) (domain.Message, error) {
	// 1. Validate the payload before touching the store
	request := PostMessageRequest{To: to, Text: text, Type: messageType}
	if err := validate.Struct(request); err != nil {
		return domain.Message{}, fmt.Errorf("%w: %v", errors.ErrInvalidMessage, err)
	}

	// 2. The sender must be an active participant
	if err := validateName(from); err != nil {
		return domain.Message{}, fmt.Errorf("%w: %v", errors.ErrUnknownSender, err)
	}
	if _, err := s.participantRepository.Get(from); err != nil {
		if goerrors.Is(err, errors.ErrParticipantNotFound) {
			return domain.Message{}, fmt.Errorf("%w: %s", errors.ErrUnknownSender, from)
		}
		return domain.Message{}, err
	}

	// 3. Censor then persist
	if s.moderator != nil {
		censored, words := s.moderator.Censor(text)
		if len(words) > 0 {
			s.metrics.MessagesCensored.Inc()
			text = censored
		}
	}

	message := domain.NewMessage(from, to, text, domain.MessageType(messageType), s.now())
	if err := s.Publish(message); err != nil {
		return domain.Message{}, err
	}
	return message, nil
}

// Publish appends a message to the log and indexes its text.
// Indexing is best effort: the log is the source of truth.
func (s *MessageService) Publish(message domain.Message) error {
	if err := s.messageRepository.StoreMessage(message); err != nil {
		return fmt.Errorf("failed to store message: %w", err)
	}
	s.metrics.MessagesPosted.WithLabelValues(string(message.Type)).Inc()

	if err := s.messageIndex.Index(message); err != nil {
		s.log.Warn("Failed to index message", "id", message.ID, "error", err)
	}
	return nil
}

// List returns the messages visible to viewer, oldest first,
// restricted to the most recent limit ones when limit is set.
func (s *MessageService) List(viewer string, limit *int) ([]domain.Message, error) {
	if err := validateLimit(limit); err != nil {
		return nil, err
	}
	return s.messageRepository.GetMessages(viewer, limit)
}

// Search returns the messages visible to viewer whose text matches query, oldest first.
func (s *MessageService) Search(ctx context.Context, viewer, query string, limit *int) ([]domain.Message, error) {
	query = strings.TrimSpace(query)
	if err := validate.Struct(SearchRequest{Query: query}); err != nil {
		return nil, fmt.Errorf("%w: %v", errors.ErrInvalidSearch, err)
	}
	if err := validateLimit(limit); err != nil {
		return nil, err
	}

	size := s.searchLimit
	if limit != nil && *limit < size {
		size = *limit
	}

	keys, err := s.messageIndex.Search(ctx, query, size*searchWindowFactor)
	if err != nil {
		return nil, fmt.Errorf("search failed: %w", err)
	}
	messages, err := s.messageRepository.GetMessagesByKeys(keys)
	if err != nil {
		return nil, err
	}

	visible := lo.Filter(messages, func(m domain.Message, _ int) bool {
		return m.VisibleTo(viewer)
	})
	if len(visible) > size {
		visible = visible[len(visible)-size:]
	}
	return visible, nil
}
