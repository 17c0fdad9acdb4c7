//go:generate go run go.uber.org/mock/mockgen -source=message.go -destination=../mocks/mock_message_repository.go -package=mocks
package repositories

import (
	"chat-room/domain"
	goerrors "errors"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"
	"github.com/samber/lo"
)

const messagePrefix = "msg:"

type IMessageRepository interface {
	StoreMessage(message domain.Message) error
	GetMessages(viewer string, limit *int) ([]domain.Message, error)
	GetMessagesByKeys(keys []string) ([]domain.Message, error)
}

type MessageRepository struct {
	db  *badger.DB
	log *slog.Logger
}

func NewMessageRepository(db *badger.DB, log *slog.Logger) MessageRepository {
	return MessageRepository{db: db, log: log}
}

// MessageKey is formatted as "msg:{timestamp_padded}:{uuid}" to:
//  1. Ensure chronological sorting using 19-digit zero padding (lexicographical order).
//  2. Prevent data loss by using UUID as a collision disconnector if two messages
//     arrive at the same nanosecond.
func MessageKey(message domain.Message) string {
	return fmt.Sprintf("%s%019d:%s", messagePrefix, message.CreatedAt.UnixNano(), message.ID)
}

// StoreMessage appends a message to the log.
func (m MessageRepository) StoreMessage(message domain.Message) error {
	bytes, err := fromMessage(message)
	if err != nil {
		return err
	}
	return m.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(MessageKey(message)), bytes)
	})
}

// GetMessages returns the messages visible to viewer, oldest first.
// Keys are scanned newest first so the scan stops as soon as limit visible
// messages have been collected.
func (m MessageRepository) GetMessages(viewer string, limit *int) ([]domain.Message, error) {
	messages := make([]domain.Message, 0)
	err := m.db.View(func(txn *badger.Txn) error {
		prefix := []byte(messagePrefix)
		options := badger.DefaultIteratorOptions
		options.Reverse = true
		it := txn.NewIterator(options)
		defer it.Close()

		// Reverse iteration starts at the last key lower or equal to the seek key.
		seekKey := append([]byte(messagePrefix), []byte("9999999999999999999;")...)
		for it.Seek(seekKey); it.ValidForPrefix(prefix); it.Next() {
			if limit != nil && len(messages) == *limit {
				m.log.Debug(fmt.Sprintf("Maximum of %d message reached", *limit))
				break
			}
			err := it.Item().Value(func(val []byte) error {
				message, err := toMessage(val)
				if err != nil {
					return err
				}
				if message.VisibleTo(viewer) {
					messages = append(messages, message)
				}
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	slices.Reverse(messages)
	return messages, nil
}

// GetMessagesByKeys loads the messages stored under keys, oldest first.
// Keys that no longer exist are skipped.
func (m MessageRepository) GetMessagesByKeys(keys []string) ([]domain.Message, error) {
	sorted := slices.Clone(lo.Uniq(keys))
	slices.Sort(sorted)

	messages := make([]domain.Message, 0, len(sorted))
	err := m.db.View(func(txn *badger.Txn) error {
		for _, key := range sorted {
			item, err := txn.Get([]byte(key))
			if goerrors.Is(err, badger.ErrKeyNotFound) {
				m.log.Debug("Indexed message missing from store", "key", key)
				continue
			}
			if err != nil {
				return err
			}
			err = item.Value(func(val []byte) error {
				message, err := toMessage(val)
				if err != nil {
					return err
				}
				messages = append(messages, message)
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return messages, nil
}

func fromMessage(message domain.Message) ([]byte, error) {
	return marshalDocument(map[string]any{
		"id":         message.ID.String(),
		"from":       message.From,
		"to":         message.To,
		"text":       message.Text,
		"type":       string(message.Type),
		"time":       message.Time,
		"created_at": message.CreatedAt.UTC().Format(time.RFC3339Nano),
	})
}

func toMessage(bytes []byte) (domain.Message, error) {
	doc, err := unmarshalDocument(bytes)
	if err != nil {
		return domain.Message{}, err
	}
	id, err := uuid.Parse(stringField(doc, "id"))
	if err != nil {
		return domain.Message{}, err
	}
	createdAt, err := timeField(doc, "created_at")
	if err != nil {
		return domain.Message{}, err
	}
	return domain.Message{
		ID:        id,
		From:      stringField(doc, "from"),
		To:        stringField(doc, "to"),
		Text:      stringField(doc, "text"),
		Type:      domain.MessageType(stringField(doc, "type")),
		Time:      stringField(doc, "time"),
		CreatedAt: createdAt,
	}, nil
}
