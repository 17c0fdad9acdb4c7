package services

import (
	"chat-room/domain"
	"chat-room/errors"
	"chat-room/mocks"
	"chat-room/moderation"
	"chat-room/observability"
	"chat-room/repositories"
	"context"
	goerrors "errors"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/samber/lo"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type messageFixture struct {
	svc          *MessageService
	participants *mocks.MockIParticipantRepository
	messages     *mocks.MockIMessageRepository
	index        *mocks.MockIMessageIndex
	metrics      *observability.Metrics
}

func newMessageFixture(t *testing.T, moderator *moderation.Moderator) messageFixture {
	ctrl := gomock.NewController(t)
	f := messageFixture{
		participants: mocks.NewMockIParticipantRepository(ctrl),
		messages:     mocks.NewMockIMessageRepository(ctrl),
		index:        mocks.NewMockIMessageIndex(ctrl),
		metrics:      observability.NewMetrics(),
	}
	f.svc = NewMessageService(slog.Default(), f.participants, f.messages, f.index, moderator, f.metrics, 50)
	f.svc.now = func() time.Time { return fixedNow }
	return f
}

func TestMessageService_Post(t *testing.T) {
	t.Run("should store and index a broadcast", func(t *testing.T) {
		req := require.New(t)
		f := newMessageFixture(t, nil)

		f.participants.EXPECT().Get("Alice").Return(domain.NewParticipant("Alice", fixedNow), nil)
		f.messages.EXPECT().StoreMessage(gomock.Any()).Return(nil).Times(1)
		f.index.EXPECT().Index(gomock.Any()).Return(nil).Times(1)

		message, err := f.svc.Post("Alice", domain.Broadcast, "hello", "message")

		req.NoError(err)
		req.Equal("Alice", message.From)
		req.Equal(domain.Broadcast, message.To)
		req.Equal(domain.MessageTypeMessage, message.Type)
		req.Equal("10:00:00", message.Time)
		req.Equal(float64(1), testutil.ToFloat64(f.metrics.MessagesPosted.WithLabelValues("message")))
	})

	invalid := []struct {
		name        string
		to          string
		text        string
		messageType string
	}{
		{"missing recipient", "", "hello", "message"},
		{"missing text", domain.Broadcast, "", "message"},
		{"missing type", domain.Broadcast, "hello", ""},
		{"status type", domain.Broadcast, "hello", "status"},
		{"unknown type", domain.Broadcast, "hello", "shout"},
	}
	for _, tt := range invalid {
		t.Run("should reject "+tt.name, func(t *testing.T) {
			f := newMessageFixture(t, nil)
			f.participants.EXPECT().Get(gomock.Any()).Times(0)
			f.messages.EXPECT().StoreMessage(gomock.Any()).Times(0)

			_, err := f.svc.Post("Alice", tt.to, tt.text, tt.messageType)

			require.ErrorIs(t, err, errors.ErrInvalidMessage)
		})
	}

	t.Run("should reject an unregistered sender", func(t *testing.T) {
		req := require.New(t)
		f := newMessageFixture(t, nil)

		f.participants.EXPECT().Get("Ghost").Return(domain.Participant{}, errors.ErrParticipantNotFound)
		f.messages.EXPECT().StoreMessage(gomock.Any()).Times(0)

		_, err := f.svc.Post("Ghost", domain.Broadcast, "boo", "message")
		req.ErrorIs(err, errors.ErrUnknownSender)

		_, err = f.svc.Post("", domain.Broadcast, "boo", "message")
		req.ErrorIs(err, errors.ErrUnknownSender)
	})

	t.Run("should reject an oversized sender before reading the store", func(t *testing.T) {
		req := require.New(t)
		f := newMessageFixture(t, nil)

		f.participants.EXPECT().Get(gomock.Any()).Times(0)

		_, err := f.svc.Post(strings.Repeat("a", 70000), domain.Broadcast, "boo", "message")
		req.ErrorIs(err, errors.ErrUnknownSender)
	})

	t.Run("should keep the message when indexing fails", func(t *testing.T) {
		req := require.New(t)
		f := newMessageFixture(t, nil)

		f.participants.EXPECT().Get("Alice").Return(domain.NewParticipant("Alice", fixedNow), nil)
		f.messages.EXPECT().StoreMessage(gomock.Any()).Return(nil)
		f.index.EXPECT().Index(gomock.Any()).Return(goerrors.New("index closed"))

		_, err := f.svc.Post("Alice", "Bob", "psst", "private_message")
		req.NoError(err)
	})

	t.Run("should fail when the store fails", func(t *testing.T) {
		req := require.New(t)
		f := newMessageFixture(t, nil)

		f.participants.EXPECT().Get("Alice").Return(domain.NewParticipant("Alice", fixedNow), nil)
		f.messages.EXPECT().StoreMessage(gomock.Any()).Return(goerrors.New("disk full"))
		f.index.EXPECT().Index(gomock.Any()).Times(0)

		_, err := f.svc.Post("Alice", domain.Broadcast, "hello", "message")
		req.Error(err)
	})

	t.Run("should censor forbidden words", func(t *testing.T) {
		req := require.New(t)
		moderator, err := moderation.NewModerator([]string{"badger"}, '*', slog.Default())
		req.NoError(err)
		f := newMessageFixture(t, moderator)

		f.participants.EXPECT().Get("Alice").Return(domain.NewParticipant("Alice", fixedNow), nil)
		f.messages.EXPECT().
			StoreMessage(gomock.Any()).
			DoAndReturn(func(m domain.Message) error {
				req.Equal("The ****** is here", m.Text)
				return nil
			})
		f.index.EXPECT().Index(gomock.Any()).Return(nil)

		message, err := f.svc.Post("Alice", domain.Broadcast, "The badger is here", "message")
		req.NoError(err)
		req.Equal("The ****** is here", message.Text)
		req.Equal(float64(1), testutil.ToFloat64(f.metrics.MessagesCensored))
	})

	t.Run("should censor a private message in portuguese", func(t *testing.T) {
		req := require.New(t)
		moderator, err := moderation.NewModerator([]string{"idiota"}, '#', slog.Default())
		req.NoError(err)
		f := newMessageFixture(t, moderator)

		f.participants.EXPECT().Get("Maria").Return(domain.NewParticipant("Maria", fixedNow), nil)
		f.messages.EXPECT().StoreMessage(gomock.Any()).Return(nil)
		f.index.EXPECT().Index(gomock.Any()).Return(nil)

		message, err := f.svc.Post("Maria", "João", "Você é um 1d10ta, não?", "private_message")
		req.NoError(err)
		req.Equal("Você é um ######, não?", message.Text)
		req.Equal("João", message.To)
		req.Equal(domain.MessageTypePrivateMessage, message.Type)
	})
}

func TestMessageService_List(t *testing.T) {
	t.Run("should forward viewer and limit", func(t *testing.T) {
		req := require.New(t)
		f := newMessageFixture(t, nil)
		expected := []domain.Message{domain.NewJoinedMessage("Alice", fixedNow)}

		f.messages.EXPECT().GetMessages("Bob", lo.ToPtr(2)).Return(expected, nil)

		messages, err := f.svc.List("Bob", lo.ToPtr(2))
		req.NoError(err)
		req.Equal(expected, messages)
	})

	t.Run("should reject a non positive limit", func(t *testing.T) {
		f := newMessageFixture(t, nil)
		f.messages.EXPECT().GetMessages(gomock.Any(), gomock.Any()).Times(0)

		_, err := f.svc.List("Bob", lo.ToPtr(0))
		require.ErrorIs(t, err, errors.ErrInvalidLimit)
	})
}

func TestMessageService_Search(t *testing.T) {
	public := domain.NewMessage("Alice", domain.Broadcast, "badger one", domain.MessageTypeMessage, fixedNow)
	private := domain.NewMessage("Alice", "Clara", "badger two", domain.MessageTypePrivateMessage, fixedNow.Add(time.Second))
	mine := domain.NewMessage("Alice", "Bob", "badger three", domain.MessageTypePrivateMessage, fixedNow.Add(2*time.Second))
	keys := []string{repositories.MessageKey(public), repositories.MessageKey(private), repositories.MessageKey(mine)}

	t.Run("should only return visible hits", func(t *testing.T) {
		req := require.New(t)
		f := newMessageFixture(t, nil)

		f.index.EXPECT().Search(gomock.Any(), "badger", 50*searchWindowFactor).Return(keys, nil)
		f.messages.EXPECT().GetMessagesByKeys(keys).Return([]domain.Message{public, private, mine}, nil)

		messages, err := f.svc.Search(context.Background(), "Bob", " badger ", nil)
		req.NoError(err)
		req.Equal([]domain.Message{public, mine}, messages)
	})

	t.Run("should keep the most recent hits within limit", func(t *testing.T) {
		req := require.New(t)
		f := newMessageFixture(t, nil)

		f.index.EXPECT().Search(gomock.Any(), "badger", 1*searchWindowFactor).Return(keys, nil)
		f.messages.EXPECT().GetMessagesByKeys(keys).Return([]domain.Message{public, private, mine}, nil)

		messages, err := f.svc.Search(context.Background(), "Bob", "badger", lo.ToPtr(1))
		req.NoError(err)
		req.Equal([]domain.Message{mine}, messages)
	})

	t.Run("should reject an empty query", func(t *testing.T) {
		f := newMessageFixture(t, nil)
		f.index.EXPECT().Search(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

		_, err := f.svc.Search(context.Background(), "Bob", "  ", nil)
		require.ErrorIs(t, err, errors.ErrInvalidSearch)
	})
}

func TestParseLimit(t *testing.T) {
	req := require.New(t)

	limit, err := ParseLimit("2")
	req.NoError(err)
	req.Equal(2, *limit)

	for _, raw := range []string{"", "0", "-1", "abc", "2.5"} {
		_, err = ParseLimit(raw)
		req.ErrorIs(err, errors.ErrInvalidLimit, "raw=%q", raw)
	}
}
