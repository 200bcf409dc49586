package db

import (
	"context"
	"log/slog"

	_ "github.com/mattn/go-sqlite3"
	"github.com/samber/oops"
	"xorm.io/xorm"
	"xorm.io/xorm/log"
	"xorm.io/xorm/names"
)

type Connection struct {
	engine *xorm.Engine
}

// Close the database.
func (conn *Connection) Close() error {
	return conn.engine.Close()
}

// New returns a database connection for the sqlite db file at the given path.
// If it does not exist it is created.  SQL statements are logged only when
// the default slog logger has debug logging enabled.
func New(path string) (*Connection, error) {
	db, err := xorm.NewEngine("sqlite3", path)
	if err != nil {
		return nil, oops.Code("DB_OPEN_FAILED").With("path", path).Wrap(err)
	}
	if slog.Default().Enabled(context.Background(), slog.LevelDebug) {
		db.Logger().SetLevel(log.LOG_DEBUG)
	} else {
		db.Logger().SetLevel(log.LOG_WARNING)
	}
	db.SetMapper(names.GonicMapper{})

	if err := db.Sync2(new(Attempt)); err != nil {
		return nil, oops.Code("DB_SYNC_FAILED").With("path", path).Wrap(err)
	}
	return &Connection{db}, nil
}
