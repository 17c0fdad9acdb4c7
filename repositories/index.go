//go:generate go run go.uber.org/mock/mockgen -source=index.go -destination=../mocks/mock_message_index.go -package=mocks
package repositories

import (
	"chat-room/domain"
	"context"
	"fmt"
	"log/slog"

	"github.com/blugelabs/bluge"
)

const (
	textField = "text"
	idField   = "_id"
)

// IMessageIndex keeps a full text index of message contents.
// Documents are identified by their MessageKey so hits can be loaded back from Badger.
type IMessageIndex interface {
	Index(message domain.Message) error
	Search(ctx context.Context, query string, size int) ([]string, error)
}

type MessageIndex struct {
	writer *bluge.Writer
	log    *slog.Logger
}

func NewMessageIndex(writer *bluge.Writer, log *slog.Logger) *MessageIndex {
	return &MessageIndex{writer: writer, log: log}
}

func (i *MessageIndex) Index(message domain.Message) error {
	doc := bluge.NewDocument(MessageKey(message)).
		AddField(bluge.NewTextField(textField, message.Text))
	return i.writer.Update(doc.ID(), doc)
}

// Search returns the keys of the best matching messages, at most size of them.
func (i *MessageIndex) Search(ctx context.Context, query string, size int) ([]string, error) {
	reader, err := i.writer.Reader()
	if err != nil {
		return nil, fmt.Errorf("failed to open bluge reader: %w", err)
	}
	defer func() {
		_ = reader.Close()
	}()

	request := bluge.NewTopNSearch(size, bluge.NewMatchQuery(query).SetField(textField))
	iterator, err := reader.Search(ctx, request)
	if err != nil {
		return nil, err
	}

	var keys []string
	match, err := iterator.Next()
	for err == nil && match != nil {
		err = match.VisitStoredFields(func(field string, value []byte) bool {
			if field == idField {
				keys = append(keys, string(value))
			}
			return true
		})
		if err != nil {
			return nil, err
		}
		match, err = iterator.Next()
	}
	if err != nil {
		return nil, err
	}
	i.log.Debug("Message search", "query", query, "hits", len(keys))
	return keys, nil
}
