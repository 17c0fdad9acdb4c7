//go:generate go run go.uber.org/mock/mockgen -source=participant.go -destination=../mocks/mock_participant_repository.go -package=mocks
package repositories

import (
	"chat-room/domain"
	"chat-room/errors"
	goerrors "errors"
	"time"

	"github.com/dgraph-io/badger/v4"
)

const participantPrefix = "participant:"

type IParticipantRepository interface {
	Create(participant domain.Participant) error
	Get(name string) (domain.Participant, error)
	List() ([]domain.Participant, error)
	Touch(name string, at time.Time) error
	Delete(name string) error
}

type ParticipantRepository struct {
	db *badger.DB
}

func NewParticipantRepository(db *badger.DB) IParticipantRepository {
	return &ParticipantRepository{db: db}
}

func participantKey(name string) []byte {
	return []byte(participantPrefix + name)
}

// Create persists a new participant.
// The existence check and the write share one transaction, so two concurrent
// registrations of the same name cannot both succeed.
func (p ParticipantRepository) Create(participant domain.Participant) error {
	data, err := fromParticipant(participant)
	if err != nil {
		return err
	}

	err = p.db.Update(func(txn *badger.Txn) error {
		key := participantKey(participant.Name)
		if _, err := txn.Get(key); err == nil {
			return errors.ErrParticipantAlreadyExists
		} else if !goerrors.Is(err, badger.ErrKeyNotFound) {
			return err
		}
		return txn.Set(key, data)
	})
	// A conflict means a concurrent transaction wrote the same key first
	if goerrors.Is(err, badger.ErrConflict) {
		return errors.ErrParticipantAlreadyExists
	}
	return err
}

func (p ParticipantRepository) Get(name string) (domain.Participant, error) {
	var participant domain.Participant
	err := p.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(participantKey(name))
		if goerrors.Is(err, badger.ErrKeyNotFound) {
			return errors.ErrParticipantNotFound
		}
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			participant, err = toParticipant(val)
			return err
		})
	})
	return participant, err
}

// List returns every active participant, ordered by name.
func (p ParticipantRepository) List() ([]domain.Participant, error) {
	participants := make([]domain.Participant, 0)
	err := p.db.View(func(txn *badger.Txn) error {
		prefix := []byte(participantPrefix)
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			err := it.Item().Value(func(val []byte) error {
				participant, err := toParticipant(val)
				if err != nil {
					return err
				}
				participants = append(participants, participant)
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
	return participants, nil
}

// Touch refreshes the last status of an existing participant.
func (p ParticipantRepository) Touch(name string, at time.Time) error {
	data, err := fromParticipant(domain.NewParticipant(name, at))
	if err != nil {
		return err
	}

	return p.db.Update(func(txn *badger.Txn) error {
		key := participantKey(name)
		if _, err := txn.Get(key); goerrors.Is(err, badger.ErrKeyNotFound) {
			return errors.ErrParticipantNotFound
		} else if err != nil {
			return err
		}
		return txn.Set(key, data)
	})
}

func (p ParticipantRepository) Delete(name string) error {
	return p.db.Update(func(txn *badger.Txn) error {
		return txn.Delete(participantKey(name))
	})
}

func fromParticipant(participant domain.Participant) ([]byte, error) {
	return marshalDocument(map[string]any{
		"name":        participant.Name,
		"last_status": participant.LastStatus.UTC().Format(time.RFC3339Nano),
	})
}

func toParticipant(bytes []byte) (domain.Participant, error) {
	doc, err := unmarshalDocument(bytes)
	if err != nil {
		return domain.Participant{}, err
	}
	lastStatus, err := timeField(doc, "last_status")
	if err != nil {
		return domain.Participant{}, err
	}
	return domain.NewParticipant(stringField(doc, "name"), lastStatus), nil
}
