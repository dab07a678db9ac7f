// Package export mirrors stamp categories into a SQLite database for external tooling
package export

import (
	"errors"
	"fmt"
	"time"

	sqlite "github.com/glebarez/sqlite"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/lixenwraith/cpstamp/core"
)

// ErrNoPath is returned when no database path is configured
var ErrNoPath = errors.New("export database path is required")

// Row is one exported stamp
type Row struct {
	Category          string `gorm:"column:category;primaryKey;size:190;not null"`
	StampID           uint32 `gorm:"column:stamp_id;primaryKey;not null"`
	Position          int    `gorm:"column:position;not null"`
	Title             string `gorm:"column:title;size:255;not null"`
	Kind              string `gorm:"column:kind;size:16;not null"`
	Difficulty        string `gorm:"column:difficulty;size:16;not null"`
	Earned            bool   `gorm:"column:earned;not null"`
	ExportedAtSeconds int64  `gorm:"column:exported_at_s;not null"`
}

// TableName provides the explicit table binding for GORM.
func (Row) TableName() string {
	return "stamps"
}

// Store is an open export database
type Store struct {
	db     *gorm.DB
	logger *zap.Logger
	now    func() time.Time
}

// Open establishes a SQLite connection and migrates the schema
func Open(path string, logger *zap.Logger) (*Store, error) {
	if path == "" {
		return nil, ErrNoPath
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("open export db: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(&Row{}); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("migrate export db: %w", err)
	}

	logger.Info("export database initialized", zap.String("path", path))
	return &Store{db: db, logger: logger, now: time.Now}, nil
}

// SaveCategory upserts every record of a category and removes stamps no longer in it
func (s *Store) SaveCategory(name string, kind core.Kind, records []core.Record) error {
	exportedAt := s.now().Unix()

	rows := make([]Row, len(records))
	ids := make([]uint32, len(records))
	for i, r := range records {
		rows[i] = Row{
			Category:          name,
			StampID:           r.ID,
			Position:          i,
			Title:             r.Title,
			Kind:              r.Kind.String(),
			Difficulty:        r.Difficulty.String(),
			Earned:            r.Earned,
			ExportedAtSeconds: exportedAt,
		}
		ids[i] = r.ID
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		stale := tx.Where("category = ?", name)
		if len(ids) > 0 {
			stale = stale.Where("stamp_id NOT IN ?", ids)
		}
		if err := stale.Delete(&Row{}).Error; err != nil {
			return err
		}
		if len(rows) == 0 {
			return nil
		}
		return tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "category"}, {Name: "stamp_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"position", "title", "kind", "difficulty", "earned", "exported_at_s"}),
		}).Create(&rows).Error
	})
	if err != nil {
		return fmt.Errorf("export category %q: %w", name, err)
	}

	s.logger.Debug("category exported",
		zap.String("category", name),
		zap.Stringer("kind", kind),
		zap.Int("stamps", len(rows)),
	)
	return nil
}

// Load returns the exported rows of a category in catalog order
func (s *Store) Load(name string) ([]Row, error) {
	var rows []Row
	if err := s.db.Where("category = ?", name).Order("position").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("load category %q: %w", name, err)
	}
	return rows, nil
}

// Close releases the database connection
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
