/*****************************************************************************************************************/

//	@package	envprobe
//	@license	MIT

/*****************************************************************************************************************/

// Package lightstore persists extracted lights to a SQLite database via
// gorm, tagging every run with a ULID so successive extraction passes
// over the same panorama can be told apart.
package lightstore

/*****************************************************************************************************************/

import (
	"crypto/rand"
	"fmt"
	"time"

	"github.com/oklog/ulid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/lumenforge/envprobe/pkg/lightextract"
)

/*****************************************************************************************************************/

// LightRecord is the persisted row for a single extracted light.
type LightRecord struct {
	ID         uint `gorm:"primaryKey"`
	RunID      string `gorm:"index"`
	X, Y, W, H float64
	CentroidX  float64
	CentroidY  float64
	AreaSize   float64
	Sum        float64
	Variance   float64
	LumAverage float64
	RAverage   float64
	GAverage   float64
	BAverage   float64
	MergedNum  int
	CreatedAt  time.Time
}

/*****************************************************************************************************************/

// TableName pins the table name so it survives struct renames.
func (LightRecord) TableName() string {
	return "light_records"
}

/*****************************************************************************************************************/

// Store wraps a gorm/sqlite connection scoped to light persistence.
type Store struct {
	db *gorm.DB
}

/*****************************************************************************************************************/

// Open opens (creating if necessary) a SQLite database at path and
// migrates the LightRecord schema.
func Open(path string) (*Store, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("lightstore: opening %s: %w", path, err)
	}

	if err := db.AutoMigrate(&LightRecord{}); err != nil {
		return nil, fmt.Errorf("lightstore: migrating schema: %w", err)
	}

	return &Store{db: db}, nil
}

/*****************************************************************************************************************/

// NewRunID mints a fresh ULID to tag a batch of lights from the same
// extraction pass.
func NewRunID() (string, error) {
	id, err := ulid.New(ulid.Timestamp(time.Now()), rand.Reader)
	if err != nil {
		return "", fmt.Errorf("lightstore: generating run id: %w", err)
	}
	return id.String(), nil
}

/*****************************************************************************************************************/

// SaveRun persists every light from a single extraction pass under the
// given run ID.
func (s *Store) SaveRun(runID string, lights []lightextract.Light) error {
	records := make([]LightRecord, 0, len(lights))

	for _, l := range lights {
		records = append(records, LightRecord{
			RunID:      runID,
			X:          l.X,
			Y:          l.Y,
			W:          l.W,
			H:          l.H,
			CentroidX:  l.CentroidX,
			CentroidY:  l.CentroidY,
			AreaSize:   l.AreaSize,
			Sum:        l.Sum,
			Variance:   l.Variance,
			LumAverage: l.LumAverage,
			RAverage:   l.RAverage,
			GAverage:   l.GAverage,
			BAverage:   l.BAverage,
			MergedNum:  l.MergedNum,
		})
	}

	if len(records) == 0 {
		return nil
	}

	if err := s.db.Create(&records).Error; err != nil {
		return fmt.Errorf("lightstore: saving run %s: %w", runID, err)
	}

	return nil
}

/*****************************************************************************************************************/

// LoadRun returns every light previously persisted under runID, ordered
// by descending sum.
func (s *Store) LoadRun(runID string) ([]LightRecord, error) {
	var records []LightRecord

	if err := s.db.Where("run_id = ?", runID).Order("sum DESC").Find(&records).Error; err != nil {
		return nil, fmt.Errorf("lightstore: loading run %s: %w", runID, err)
	}

	return records, nil
}

/*****************************************************************************************************************/

// Close releases the underlying database connection.
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return fmt.Errorf("lightstore: closing: %w", err)
	}
	return sqlDB.Close()
}

/*****************************************************************************************************************/
