package database

import (
	"context"
	"errors"
	"time"

	"github.com/yeremiapane/pos-ledger/models"
	"gorm.io/gorm"
)

// GormStore keeps collections in a `collections` table and appends one
// `db_changes` row per write.
type GormStore struct {
	DB     *gorm.DB
	Origin string
}

func NewGormStore(db *gorm.DB, origin string) *GormStore {
	return &GormStore{DB: db, Origin: origin}
}

func (s *GormStore) Load(ctx context.Context, name string) ([]byte, error) {
	var c models.Collection
	err := s.DB.WithContext(ctx).Where("name = ?", name).Take(&c).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return c.Payload, nil
}

func (s *GormStore) Save(ctx context.Context, name string, payload []byte) error {
	if payload == nil {
		payload = []byte{}
	}
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		now := time.Now().UTC()

		var c models.Collection
		err := tx.Where("name = ?", name).Take(&c).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			c = models.Collection{Name: name, Payload: payload, Revision: 1, UpdatedAt: now}
			if err := tx.Create(&c).Error; err != nil {
				return err
			}
		case err != nil:
			return err
		default:
			c.Revision++
			if err := tx.Model(&models.Collection{}).
				Where("name = ?", name).
				Updates(map[string]interface{}{
					"payload":    payload,
					"revision":   c.Revision,
					"updated_at": now,
				}).Error; err != nil {
				return err
			}
		}

		return tx.Create(&models.DBChange{
			Collection: name,
			Revision:   c.Revision,
			Origin:     s.Origin,
			ChangedAt:  now,
		}).Error
	})
}

func (s *GormStore) Remove(ctx context.Context, name string) error {
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("name = ?", name).Delete(&models.Collection{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return nil
		}
		return tx.Create(&models.DBChange{
			Collection: name,
			Origin:     s.Origin,
			ChangedAt:  time.Now().UTC(),
		}).Error
	})
}

func (s *GormStore) ChangesSince(ctx context.Context, afterID uint, limit int) ([]models.DBChange, error) {
	var changes []models.DBChange
	q := s.DB.WithContext(ctx).Where("id > ?", afterID).Order("id ASC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&changes).Error; err != nil {
		return nil, err
	}
	return changes, nil
}

func (s *GormStore) LastChangeID(ctx context.Context) (uint, error) {
	var last models.DBChange
	err := s.DB.WithContext(ctx).Order("id DESC").Take(&last).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return last.ID, nil
}

func (s *GormStore) PruneChanges(ctx context.Context, before time.Time) (int64, error) {
	res := s.DB.WithContext(ctx).Where("changed_at < ?", before.UTC()).Delete(&models.DBChange{})
	return res.RowsAffected, res.Error
}

// Ping checks that the underlying connection answers.
func (s *GormStore) Ping(ctx context.Context) error {
	sqlDB, err := s.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}
