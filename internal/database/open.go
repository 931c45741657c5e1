package database

import (
	"fmt"

	"go.uber.org/zap"
)

// Options selects and configures a Store backend
type Options struct {
	Type        string
	Path        string // sqlite file
	DatabaseURL string // postgres DSN
	BadgerDir   string
	Logger      *zap.Logger
}

// Open returns the Store selected by opts.Type
func Open(opts Options) (Store, error) {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	switch opts.Type {
	case TypeMemory:
		return NewMemory(), nil
	case TypeSQLite, "":
		db, err := Connect(TypeSQLite, opts.Path)
		if err != nil {
			return nil, err
		}
		logger.Info("opened sqlite store", zap.String("path", opts.Path))
		return NewSQLStore(db), nil
	case TypePostgres:
		db, err := Connect(TypePostgres, opts.DatabaseURL)
		if err != nil {
			return nil, err
		}
		logger.Info("opened postgres store")
		return NewSQLStore(db), nil
	case TypeBadger:
		store, err := OpenBadger(BadgerConfig{Dir: opts.BadgerDir, SyncWrites: true, Logger: logger})
		if err != nil {
			return nil, err
		}
		logger.Info("opened badger store", zap.String("dir", opts.BadgerDir))
		return store, nil
	default:
		return nil, fmt.Errorf("unknown DB_TYPE %q", opts.Type)
	}
}
