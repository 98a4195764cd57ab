package persistence

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/orbita/backend/internal/domain/identity"
	"github.com/orbita/backend/internal/domain/meeting"
	"github.com/orbita/backend/internal/domain/notification"
	"github.com/orbita/backend/internal/infrastructure/config"
	"go.uber.org/zap"
)

// Snapshot file names inside the data directory
const (
	MeetingsFile      = "meetings.json"
	UsersFile         = "users.json"
	NotificationsFile = "notifications.json"
)

// Registries bundles the three in-memory registries and whatever backs them
type Registries struct {
	Meetings      *MeetingRegistry
	Participants  *ParticipantRegistry
	Notifications *NotificationRegistry

	closers []func(context.Context) error
}

// Close releases the storage connections
func (r *Registries) Close(ctx context.Context) error {
	var errs []error
	for _, c := range r.closers {
		errs = append(errs, c(ctx))
	}
	return errors.Join(errs...)
}

type snapshotStores struct {
	meetings      meeting.SnapshotStore
	participants  identity.SnapshotStore
	notifications notification.SnapshotStore
}

// OpenRegistries builds the stores selected by cfg.Storage.Driver and loads the registries
func OpenRegistries(ctx context.Context, cfg *config.Config, log *zap.Logger) (*Registries, error) {
	if log == nil {
		log = zap.NewNop()
	}
	regs := &Registries{}

	var stores snapshotStores
	switch cfg.Storage.Driver {
	case config.StorageFile, "":
		stores = snapshotStores{
			meetings:      NewFileStore[*meeting.Meeting](filepath.Join(cfg.Storage.DataDir, MeetingsFile)),
			participants:  NewFileStore[identity.Participant](filepath.Join(cfg.Storage.DataDir, UsersFile)),
			notifications: NewFileStore[*notification.Notification](filepath.Join(cfg.Storage.DataDir, NotificationsFile)),
		}

	case config.StorageDatabase:
		db, err := NewDatabase(&cfg.Database, DatabaseOptions{
			Logger:   log,
			LogLevel: cfg.Log.Level,
			Tracing:  cfg.Telemetry.Enabled && cfg.Telemetry.DBTraceEnabled,
		})
		if err != nil {
			return nil, err
		}
		regs.closers = append(regs.closers, func(context.Context) error { return db.Close() })
		if cfg.Database.AutoMigrate || cfg.Database.Driver == config.DatabaseSQLite {
			if err := db.AutoMigrate(); err != nil {
				_ = regs.Close(ctx)
				return nil, fmt.Errorf("failed to migrate snapshot tables: %w", err)
			}
		}
		stores = snapshotStores{
			meetings:      NewGormMeetingStore(db.DB),
			participants:  NewGormParticipantStore(db.DB),
			notifications: NewGormNotificationStore(db.DB),
		}

	case config.StorageMongo:
		client, err := ConnectMongo(ctx, cfg.Mongo.URI, cfg.Mongo.Timeout)
		if err != nil {
			return nil, err
		}
		regs.closers = append(regs.closers, client.Disconnect)
		mdb := client.Database(cfg.Mongo.Database)

		ms, err := NewMongoStore(ctx, mdb.Collection("meetings"), func(m *meeting.Meeting) string { return m.ID.String() })
		if err != nil {
			_ = regs.Close(ctx)
			return nil, err
		}
		ps, err := NewMongoStore(ctx, mdb.Collection("participants"), func(p identity.Participant) string { return p.ID })
		if err != nil {
			_ = regs.Close(ctx)
			return nil, err
		}
		ns, err := NewMongoStore(ctx, mdb.Collection("notifications"), func(n *notification.Notification) string { return n.ID.String() })
		if err != nil {
			_ = regs.Close(ctx)
			return nil, err
		}
		stores = snapshotStores{meetings: ms, participants: ps, notifications: ns}

	default:
		return nil, fmt.Errorf("unsupported storage driver %q", cfg.Storage.Driver)
	}

	var err error
	if regs.Participants, err = NewParticipantRegistry(ctx, stores.participants, log); err != nil {
		_ = regs.Close(ctx)
		return nil, err
	}
	if regs.Meetings, err = NewMeetingRegistry(ctx, stores.meetings, log); err != nil {
		_ = regs.Close(ctx)
		return nil, err
	}
	if regs.Notifications, err = NewNotificationRegistry(ctx, stores.notifications, log); err != nil {
		_ = regs.Close(ctx)
		return nil, err
	}

	log.Info("Storage ready", zap.String("driver", cfg.Storage.Driver))
	return regs, nil
}
