package store

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"sync"

	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"molinolab.org/plant-mapping-service/pkg/common"
	"molinolab.org/plant-mapping-service/pkg/models"
	"molinolab.org/plant-mapping-service/pkg/plantmap"
)

// associationRow is the relational shape of one association. additional_data
// is kept as an opaque JSON string column; seq preserves insertion order so a
// loaded snapshot round-trips byte for byte.
type associationRow struct {
	Seq            uint    `gorm:"primaryKey;autoIncrement"`
	AssociationID  string  `gorm:"uniqueIndex"`
	DeviceID       string  `gorm:"index"`
	PlantName      string
	PlantSpecies   *string
	GPSLatitude    *float64
	GPSLongitude   *float64
	GPSAltitude    *float64
	AdditionalData string
	StartTime      string
	EndTime        *string
	CreatedTS      string  `gorm:"column:created_at"`
	UpdatedTS      string  `gorm:"column:updated_at"`
}

func (associationRow) TableName() string {
	return "associations"
}

// SqliteAdapter keeps the snapshot in a sqlite table. Save still rewrites the
// whole set, matching the file adapter's semantics, just inside one
// transaction instead of one rename.
type SqliteAdapter struct {
	Conn *gorm.DB
}

var (
	instance *SqliteAdapter
	once     sync.Once
)

func GetSqliteInstance(dialector gorm.Dialector) *SqliteAdapter {
	var logger = common.GetLogger()
	once.Do(func() {
		conn, err := gorm.Open(dialector, &gorm.Config{})
		if err != nil {
			log.Fatal("Failed to connect to database:", err)
		}

		logger.Info("Connected to database with dialector:", zap.String("dialector", dialector.Name()))

		instance = &SqliteAdapter{Conn: conn}

		if err := instance.Conn.AutoMigrate(&associationRow{}); err != nil {
			log.Fatal("Failed to migrate database:", err)
		}

		logger.Info("Database migration completed")

		if err := instance.Conn.Exec("PRAGMA journal_mode = WAL").Error; err != nil {
			log.Fatal("Failed to set sqlite journal mode", err)
		}
	})
	return instance
}

func UseSqliteDialector() gorm.Dialector {
	var dbPath string
	var found bool
	if dbPath, found = os.LookupEnv(common.EnvKeyStorePath); !found {
		dbPath = "device-plant-mapping.db"
	}
	return sqlite.Open(dbPath)
}

func UseMemorySqliteDialector() gorm.Dialector {
	return sqlite.Open("file::memory:?cache=shared")
}

func rowOf(a models.Association) (associationRow, error) {
	extra, err := json.Marshal(a.AdditionalData)
	if err != nil {
		return associationRow{}, fmt.Errorf("%w: encode additional_data of %s: %v", plantmap.ErrStorage, a.ID, err)
	}
	return associationRow{
		AssociationID:  a.ID,
		DeviceID:       a.DeviceID,
		PlantName:      a.PlantName,
		PlantSpecies:   a.PlantSpecies,
		GPSLatitude:    a.GPSLatitude,
		GPSLongitude:   a.GPSLongitude,
		GPSAltitude:    a.GPSAltitude,
		AdditionalData: string(extra),
		StartTime:      a.StartTime,
		EndTime:        a.EndTime,
		CreatedTS:      a.CreatedAt,
		UpdatedTS:      a.UpdatedAt,
	}, nil
}

func assocOf(r associationRow) (models.Association, error) {
	var extra map[string]any
	if r.AdditionalData != "" {
		if err := json.Unmarshal([]byte(r.AdditionalData), &extra); err != nil {
			return models.Association{}, fmt.Errorf("%w: malformed additional_data of %s: %v", plantmap.ErrStorage, r.AssociationID, err)
		}
	}
	if extra == nil {
		extra = map[string]any{}
	}
	return models.Association{
		ID:             r.AssociationID,
		DeviceID:       r.DeviceID,
		PlantName:      r.PlantName,
		PlantSpecies:   r.PlantSpecies,
		GPSLatitude:    r.GPSLatitude,
		GPSLongitude:   r.GPSLongitude,
		GPSAltitude:    r.GPSAltitude,
		AdditionalData: extra,
		StartTime:      r.StartTime,
		EndTime:        r.EndTime,
		CreatedAt:      r.CreatedTS,
		UpdatedAt:      r.UpdatedTS,
	}, nil
}

func (s *SqliteAdapter) Load() (*models.Snapshot, error) {
	var rows []associationRow
	if err := s.Conn.Order("seq asc").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("%w: load associations: %v", plantmap.ErrStorage, err)
	}

	snap := &models.Snapshot{Associations: make([]models.Association, 0, len(rows))}
	for _, r := range rows {
		a, err := assocOf(r)
		if err != nil {
			return nil, err
		}
		snap.Associations = append(snap.Associations, a)
	}
	return snap, nil
}

func (s *SqliteAdapter) Save(snap *models.Snapshot) error {
	rows := make([]associationRow, 0, len(snap.Associations))
	for _, a := range snap.Associations {
		r, err := rowOf(a)
		if err != nil {
			return err
		}
		rows = append(rows, r)
	}

	err := s.Conn.Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM associations").Error; err != nil {
			return err
		}
		if len(rows) == 0 {
			return nil
		}
		return tx.Create(&rows).Error
	})
	if err != nil {
		return fmt.Errorf("%w: save associations: %v", plantmap.ErrStorage, err)
	}
	return nil
}
