package repositories

import (
	"chat-room/domain"
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/blugelabs/bluge"
	"github.com/stretchr/testify/require"
)

func Test_Index_And_Search_Messages(t *testing.T) {
	req := require.New(t)
	writer, err := bluge.OpenWriter(bluge.DefaultConfig(t.TempDir()))
	req.NoError(err)
	defer writer.Close()

	index := NewMessageIndex(writer, slog.Default())
	at := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)
	badgerMessage := domain.NewMessage("Alice", domain.Broadcast, "the badger is asleep", domain.MessageTypeMessage, at)
	snake := domain.NewMessage("Bob", domain.Broadcast, "a snake in the grass", domain.MessageTypeMessage, at.Add(time.Second))
	req.NoError(index.Index(badgerMessage))
	req.NoError(index.Index(snake))

	keys, err := index.Search(context.Background(), "badger", 10)
	req.NoError(err)
	req.Equal([]string{MessageKey(badgerMessage)}, keys)

	keys, err = index.Search(context.Background(), "unicorn", 10)
	req.NoError(err)
	req.Empty(keys)
}
