package services

import (
	"chat-room/domain"
	"chat-room/errors"
	"chat-room/mocks"
	"chat-room/observability"
	goerrors "errors"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

var fixedNow = time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)

func TestParticipantService_Register(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockRepo := mocks.NewMockIParticipantRepository(ctrl)
	mockMessages := mocks.NewMockIMessageService(ctrl)
	metrics := observability.NewMetrics()
	svc := NewParticipantService(slog.Default(), mockRepo, mockMessages, metrics)
	svc.now = func() time.Time { return fixedNow }

	t.Run("should register and announce the participant", func(t *testing.T) {
		req := require.New(t)

		mockRepo.EXPECT().
			Create(domain.NewParticipant("Alice", fixedNow)).
			Return(nil).
			Times(1)
		mockMessages.EXPECT().
			Publish(gomock.Any()).
			DoAndReturn(func(m domain.Message) error {
				req.Equal("Alice", m.From)
				req.Equal(domain.Broadcast, m.To)
				req.Equal(domain.MessageTypeStatus, m.Type)
				req.Equal(domain.JoinedText, m.Text)
				return nil
			}).
			Times(1)

		participant, err := svc.Register("  Alice ")

		req.NoError(err)
		req.Equal("Alice", participant.Name)
		req.Equal(float64(1), testutil.ToFloat64(metrics.ParticipantsRegistered))
	})

	t.Run("should fail when the name is blank", func(t *testing.T) {
		req := require.New(t)

		// Repository should NEVER be called
		mockRepo.EXPECT().Create(gomock.Any()).Times(0)

		_, err := svc.Register("   ")

		req.ErrorIs(err, errors.ErrInvalidParticipant)
	})

	t.Run("should fail when the name is taken", func(t *testing.T) {
		req := require.New(t)

		mockRepo.EXPECT().
			Create(gomock.Any()).
			Return(errors.ErrParticipantAlreadyExists).
			Times(1)
		mockMessages.EXPECT().Publish(gomock.Any()).Times(0)

		_, err := svc.Register("Alice")

		req.ErrorIs(err, errors.ErrParticipantAlreadyExists)
	})

	t.Run("should fail when the name is too long", func(t *testing.T) {
		req := require.New(t)

		mockRepo.EXPECT().Create(gomock.Any()).Times(0)

		_, err := svc.Register(strings.Repeat("a", 70000))

		req.ErrorIs(err, errors.ErrInvalidParticipant)
	})

	t.Run("should remove the participant when the announcement fails", func(t *testing.T) {
		req := require.New(t)
		before := testutil.ToFloat64(metrics.ParticipantsRegistered)

		gomock.InOrder(
			mockRepo.EXPECT().Create(gomock.Any()).Return(nil),
			mockMessages.EXPECT().Publish(gomock.Any()).Return(goerrors.New("disk full")),
			mockRepo.EXPECT().Delete("Bob").Return(nil),
		)

		_, err := svc.Register("Bob")

		req.Error(err)
		req.Equal(before, testutil.ToFloat64(metrics.ParticipantsRegistered))
	})
}

func TestParticipantService_Heartbeat(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockRepo := mocks.NewMockIParticipantRepository(ctrl)
	svc := NewParticipantService(slog.Default(), mockRepo, mocks.NewMockIMessageService(ctrl), observability.NewMetrics())
	svc.now = func() time.Time { return fixedNow }

	t.Run("should refresh the last status", func(t *testing.T) {
		mockRepo.EXPECT().Touch("Alice", fixedNow).Return(nil).Times(1)

		require.NoError(t, svc.Heartbeat("Alice"))
	})

	t.Run("should treat an oversized name as unknown", func(t *testing.T) {
		mockRepo.EXPECT().Touch(gomock.Any(), gomock.Any()).Times(0)

		require.ErrorIs(t, svc.Heartbeat(strings.Repeat("a", 70000)), errors.ErrParticipantNotFound)
	})

	t.Run("should treat an empty name as unknown", func(t *testing.T) {
		mockRepo.EXPECT().Touch(gomock.Any(), gomock.Any()).Times(0)

		require.ErrorIs(t, svc.Heartbeat(""), errors.ErrParticipantNotFound)
	})

	t.Run("should propagate not found", func(t *testing.T) {
		mockRepo.EXPECT().Touch("Ghost", fixedNow).Return(errors.ErrParticipantNotFound).Times(1)

		require.ErrorIs(t, svc.Heartbeat("Ghost"), errors.ErrParticipantNotFound)
	})
}

func TestParticipantService_List(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	mockRepo := mocks.NewMockIParticipantRepository(ctrl)
	svc := NewParticipantService(slog.Default(), mockRepo, mocks.NewMockIMessageService(ctrl), observability.NewMetrics())

	expected := []domain.Participant{domain.NewParticipant("Alice", fixedNow)}
	mockRepo.EXPECT().List().Return(expected, nil)

	participants, err := svc.List()
	req.NoError(err)
	req.Equal(expected, participants)

	mockRepo.EXPECT().List().Return(nil, goerrors.New("boom"))
	_, err = svc.List()
	req.Error(err)
}
