package database

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Migration struct {
	Version     int
	Description string
	Up          func(ctx context.Context, db *mongo.Database) error
	Down        func(ctx context.Context, db *mongo.Database) error
}

// Migrator applies schema migrations in version order, tracking the current
// version in the "migrations" collection.
type Migrator struct {
	db         *mongo.Database
	migrations []Migration
}

func NewMigrator(db *mongo.Database) *Migrator {
	return &Migrator{db: db, migrations: migrations()}
}

func (m *Migrator) Up() error {
	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	current, err := m.currentVersion(ctx)
	if err != nil {
		return err
	}

	for _, migration := range m.migrations {
		if migration.Version <= current {
			continue
		}

		log.Printf("Running migration %d: %s", migration.Version, migration.Description)
		if err := migration.Up(ctx, m.db); err != nil {
			return fmt.Errorf("migration %d failed: %w", migration.Version, err)
		}
		if err := m.setVersion(ctx, migration.Version); err != nil {
			return fmt.Errorf("failed to record migration version %d: %w", migration.Version, err)
		}
	}
	return nil
}

// Down reverts migrations above targetVersion, newest first.
func (m *Migrator) Down(targetVersion int) error {
	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	current, err := m.currentVersion(ctx)
	if err != nil {
		return err
	}

	for i := len(m.migrations) - 1; i >= 0; i-- {
		migration := m.migrations[i]
		if migration.Version > current || migration.Version <= targetVersion {
			continue
		}

		log.Printf("Reverting migration %d: %s", migration.Version, migration.Description)
		if err := migration.Down(ctx, m.db); err != nil {
			return fmt.Errorf("migration %d rollback failed: %w", migration.Version, err)
		}

		previous := targetVersion
		if i > 0 {
			previous = m.migrations[i-1].Version
		}
		if err := m.setVersion(ctx, previous); err != nil {
			return fmt.Errorf("failed to record migration version %d: %w", previous, err)
		}
	}
	return nil
}

func (m *Migrator) currentVersion(ctx context.Context) (int, error) {
	var doc struct {
		Version int `bson:"version"`
	}
	err := m.db.Collection("migrations").FindOne(ctx, bson.D{}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return doc.Version, nil
}

func (m *Migrator) setVersion(ctx context.Context, version int) error {
	_, err := m.db.Collection("migrations").ReplaceOne(ctx, bson.D{},
		bson.D{
			{Key: "version", Value: version},
			{Key: "updated_at", Value: time.Now()},
		},
		options.Replace().SetUpsert(true))
	return err
}

func createIndexes(ctx context.Context, db *mongo.Database, collection string, indexes []mongo.IndexModel) error {
	_, err := db.Collection(collection).Indexes().CreateMany(ctx, indexes)
	return err
}

func dropCollections(ctx context.Context, db *mongo.Database, names ...string) error {
	for _, name := range names {
		if err := db.Collection(name).Drop(ctx); err != nil {
			return err
		}
	}
	return nil
}

func asc(field string) mongo.IndexModel {
	return mongo.IndexModel{Keys: bson.D{{Key: field, Value: 1}}}
}

func desc(field string) mongo.IndexModel {
	return mongo.IndexModel{Keys: bson.D{{Key: field, Value: -1}}}
}

func unique(field string) mongo.IndexModel {
	return mongo.IndexModel{
		Keys:    bson.D{{Key: field, Value: 1}},
		Options: options.Index().SetUnique(true),
	}
}

func migrations() []Migration {
	return []Migration{
		{
			Version:     1,
			Description: "users indexes",
			Up: func(ctx context.Context, db *mongo.Database) error {
				return createIndexes(ctx, db, "users", []mongo.IndexModel{
					unique("username"),
					asc("role"),
					desc("created_at"),
				})
			},
			Down: func(ctx context.Context, db *mongo.Database) error {
				return dropCollections(ctx, db, "users")
			},
		},
		{
			Version:     2,
			Description: "maintenance_requests indexes",
			Up: func(ctx context.Context, db *mongo.Database) error {
				return createIndexes(ctx, db, "maintenance_requests", []mongo.IndexModel{
					asc("plate_number"),
					asc("status"),
					asc("reporting_driver"),
					desc("created_at"),
				})
			},
			Down: func(ctx context.Context, db *mongo.Database) error {
				return dropCollections(ctx, db, "maintenance_requests")
			},
		},
		{
			Version:     3,
			Description: "fuel_requests indexes",
			Up: func(ctx context.Context, db *mongo.Database) error {
				return createIndexes(ctx, db, "fuel_requests", []mongo.IndexModel{
					asc("status"),
					asc("mechanic_name"),
					asc("plate_number"),
					desc("request_date"),
				})
			},
			Down: func(ctx context.Context, db *mongo.Database) error {
				return dropCollections(ctx, db, "fuel_requests")
			},
		},
		{
			Version:     4,
			Description: "inspections indexes",
			Up: func(ctx context.Context, db *mongo.Database) error {
				return createIndexes(ctx, db, "inspections", []mongo.IndexModel{
					asc("plate_number"),
					asc("overall_status"),
					asc("inspector_name"),
					desc("created_at"),
				})
			},
			Down: func(ctx context.Context, db *mongo.Database) error {
				return dropCollections(ctx, db, "inspections")
			},
		},
		{
			Version:     5,
			Description: "organization_cars and rent_cars indexes",
			Up: func(ctx context.Context, db *mongo.Database) error {
				// Plates are unique within each collection, not across them.
				for _, name := range []string{"organization_cars", "rent_cars"} {
					err := createIndexes(ctx, db, name, []mongo.IndexModel{
						unique("plate_number"),
						asc("status"),
						asc("vehicle_type"),
					})
					if err != nil {
						return err
					}
				}
				return nil
			},
			Down: func(ctx context.Context, db *mongo.Database) error {
				return dropCollections(ctx, db, "organization_cars", "rent_cars")
			},
		},
		{
			Version:     6,
			Description: "employees, car_assignments and routes indexes",
			Up: func(ctx context.Context, db *mongo.Database) error {
				if err := createIndexes(ctx, db, "employees", []mongo.IndexModel{
					asc("full_name"),
					asc("department"),
				}); err != nil {
					return err
				}
				// One seat per employee.
				if err := createIndexes(ctx, db, "car_assignments", []mongo.IndexModel{
					unique("employee_id"),
					asc("plate_number"),
				}); err != nil {
					return err
				}
				return createIndexes(ctx, db, "routes", []mongo.IndexModel{
					asc("plate_number"),
					asc("source"),
				})
			},
			Down: func(ctx context.Context, db *mongo.Database) error {
				return dropCollections(ctx, db, "employees", "car_assignments", "routes")
			},
		},
	}
}
