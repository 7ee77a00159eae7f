// Package history keeps a log of posted reports so a scheduled run can tell
// whether it has already said the same thing.
package history

import (
	"context"
	"errors"
	"time"

	pkgerrors "github.com/pkg/errors"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// ErrNotFound is returned by Latest when a station has no posts.
var ErrNotFound = errors.New("no posts recorded")

// Post is one delivered report.
type Post struct {
	gorm.Model
	StationID   string `gorm:"index"`
	StationName string
	Link        string
	Text        string
	Destination string
	PostedAt    time.Time
}

// Store reads and writes posts.
type Store struct {
	db *gorm.DB
}

// Open connects to Postgres with a DSN such as
// "host=localhost user=postgres dbname=currents sslmode=disable".
func Open(dsn string) (*Store, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, pkgerrors.Wrap(err, "connect to history database")
	}
	return New(db)
}

// New uses an open database, creating the posts table if needed.
func New(db *gorm.DB) (*Store, error) {
	if err := db.AutoMigrate(&Post{}); err != nil {
		return nil, pkgerrors.Wrap(err, "migrate history")
	}
	return &Store{db: db}, nil
}

// Record saves a post.
func (s *Store) Record(ctx context.Context, p Post) error {
	if err := s.db.WithContext(ctx).Create(&p).Error; err != nil {
		return pkgerrors.Wrapf(err, "record post for station %q", p.StationID)
	}
	return nil
}

// Latest returns the most recent post for a station.
func (s *Store) Latest(ctx context.Context, stationID string) (Post, error) {
	var p Post
	res := s.db.WithContext(ctx).
		Where("station_id = ?", stationID).
		Order("posted_at desc, id desc").
		Limit(1).
		Find(&p)
	if res.Error != nil {
		return Post{}, pkgerrors.Wrapf(res.Error, "latest post for station %q", stationID)
	}
	if res.RowsAffected == 0 {
		return Post{}, ErrNotFound
	}
	return p, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
