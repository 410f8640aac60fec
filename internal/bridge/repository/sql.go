package repository

import (
	"context"
	"errors"
	"time"

	"github.com/gogotex/bridges/internal/bridge"
	"github.com/gogotex/bridges/internal/bridge/pager"
	"github.com/samber/lo"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// sqlItem maps the single-table layout onto a relational table with a
// composite (pk, id) primary key.
type sqlItem struct {
	PK          string            `gorm:"column:pk;primaryKey"`
	ID          string            `gorm:"column:id;primaryKey"`
	Title       string            `gorm:"column:title;not null"`
	Description *string           `gorm:"column:description"`
	CreatedOn   time.Time         `gorm:"column:created_on;not null"`
	SavedOn     time.Time         `gorm:"column:saved_on;not null"`
	CreatedBy   *bridge.CreatedBy `gorm:"column:created_by;serializer:json"`
	Version     string            `gorm:"column:version"`
}

func (sqlItem) TableName() string { return "bridges" }

func (it *sqlItem) toBridge() *bridge.Bridge {
	return &bridge.Bridge{
		ID:          it.ID,
		Title:       it.Title,
		Description: it.Description,
		CreatedOn:   it.CreatedOn.UTC(),
		SavedOn:     it.SavedOn.UTC(),
		CreatedBy:   it.CreatedBy,
		Version:     it.Version,
	}
}

// SQLStore implements Store on a gorm database.
type SQLStore struct {
	db *gorm.DB
}

func NewSQLStore(db *gorm.DB) *SQLStore {
	return &SQLStore{db: db}
}

// Migrate creates or updates the bridges table.
func (s *SQLStore) Migrate(ctx context.Context) error {
	return s.db.WithContext(ctx).AutoMigrate(&sqlItem{})
}

func (s *SQLStore) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func (s *SQLStore) Get(ctx context.Context, pk, id string) (*bridge.Bridge, error) {
	var it sqlItem
	err := s.db.WithContext(ctx).Where("pk = ? AND id = ?", pk, id).Take(&it).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return it.toBridge(), nil
}

func (s *SQLStore) Put(ctx context.Context, pk string, b *bridge.Bridge) error {
	it := sqlItem{
		PK:          pk,
		ID:          b.ID,
		Title:       b.Title,
		Description: b.Description,
		CreatedOn:   b.CreatedOn,
		SavedOn:     b.SavedOn,
		CreatedBy:   b.CreatedBy,
		Version:     b.Version,
	}
	return s.db.WithContext(ctx).
		Clauses(clause.OnConflict{UpdateAll: true}).
		Create(&it).Error
}

func (s *SQLStore) Delete(ctx context.Context, pk, id string) error {
	res := s.db.WithContext(ctx).Where("pk = ? AND id = ?", pk, id).Delete(&sqlItem{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *SQLStore) Query(ctx context.Context, pk string, r pager.Range) ([]*bridge.Bridge, error) {
	q := s.db.WithContext(ctx).Where("pk = ?", pk)
	if r.GT != "" {
		q = q.Where("id > ?", r.GT)
	}
	if r.LT != "" {
		q = q.Where("id < ?", r.LT)
	}
	q = q.Order(lo.Ternary(r.Reverse, "id DESC", "id ASC"))
	if r.Limit > 0 {
		q = q.Limit(r.Limit)
	}

	var rows []sqlItem
	if err := q.Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]*bridge.Bridge, 0, len(rows))
	for i := range rows {
		out = append(out, rows[i].toBridge())
	}
	return out, nil
}
