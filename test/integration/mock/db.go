package mock

import (
	"database/sql"
	"fmt"
	"strings"
	"sync"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var dbOnce sync.Once
var sharedDb *Db

// Db wraps the shared in-memory sqlite connection used by the BDD suite. The
// pool is capped at one connection so the server under test and the step
// definitions see the same database.
type Db struct {
	DbConn *gorm.DB
	models map[string]any
	schema string
}

// NewDb returns the shared test database, creating and migrating it on the
// first call. Later calls ignore the arguments and return the same instance.
func NewDb(schema string, models map[string]any) *Db {
	dbOnce.Do(func() {
		sharedDb = open(schema, models)
	})

	return sharedDb
}

func open(schema string, models map[string]any) *Db {
	dbSQL, err := sql.Open("sqlite", "file::memory:?cache=shared")
	if err != nil {
		panic(err)
	}

	dbSQL.SetMaxOpenConns(1)

	conn, err := gorm.Open(sqlite.Dialector{Conn: dbSQL}, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		panic("failed to connect to database. err: " + err.Error())
	}

	d := &Db{
		DbConn: conn,
		schema: schema,
		models: models,
	}

	if err := d.migrate(); err != nil {
		panic(fmt.Sprintf("failed to prepare database. err: %s", err.Error()))
	}

	return d
}

func (d *Db) migrate() error {
	err := d.DbConn.Exec("ATTACH ':memory:' AS " + d.schema).Error
	if err != nil && !strings.Contains(err.Error(), "is already in use") {
		return err
	}

	modelList := make([]any, 0, len(d.models))
	for _, m := range d.models {
		modelList = append(modelList, m)
	}

	if err := d.DbConn.AutoMigrate(modelList...); err != nil {
		return err
	}

	for _, m := range modelList {
		if !d.DbConn.Migrator().HasTable(m) {
			return fmt.Errorf("table for model %T was not created", m)
		}
	}

	return nil
}

// ClearDB wipes every registered table between scenarios.
func (d *Db) ClearDB() error {
	for _, m := range d.models {
		err := d.DbConn.Session(&gorm.Session{AllowGlobalUpdate: true}).Unscoped().Delete(m).Error
		if err != nil {
			return err
		}
	}

	return nil
}

// GetModel returns the registered model for a table name.
func (d *Db) GetModel(table string) (any, bool) {
	m, ok := d.models[table]
	return m, ok
}
