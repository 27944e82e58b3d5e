/*
Copyright © 2026 Red Hat, Inc.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package interpreter

// Generated documentation is available at:
// https://pkg.go.dev/github.com/RedHatInsights/rpn-interpreter/interpreter

// This source file contains an implementation of interface between Go code and
// SQL database (PostgreSQL or SQLite) used to store history of evaluations.
//
// It is possible to configure connection to selected database by using
// HistoryConfiguration structure. The most important parameters are:
//
// Driver - a SQL driver, "sqlite3" or "postgres"
// SQLiteDataSource - data source for SQLite, for example file name
// PG* - parameters used to construct data source for PostgreSQL

import (
	"database/sql"
	"fmt"
	"math"
	"strings"
	"time"

	_ "github.com/lib/pq"           // PostgreSQL database driver
	_ "github.com/mattn/go-sqlite3" // SQLite database driver

	"github.com/rs/zerolog/log"

	"github.com/RedHatInsights/rpn-interpreter/conf"
	"github.com/RedHatInsights/rpn-interpreter/types"
)

// Storage represents an interface to almost any database or storage system
// able to keep history of evaluations
type Storage interface {
	Close() error
	InitDatabase() error
	WriteEvaluationRecord(record *types.EvaluationRecord) error
	ReadEvaluationHistory(limit int) ([]types.EvaluationRecord, error)
	PrintHistoryForCleanup(maxAge string) error
	CleanupHistory(maxAge string) (int, error)
}

// DBStorage is an implementation of Storage interface that use selected SQL
// like database (SQLite or PostgreSQL). That implementation is based on the
// standard sql package.
type DBStorage struct {
	connection    *sql.DB
	dbDriverType  types.DBDriver
	logSQLQueries bool
}

// error messages
const (
	unableToCloseDBRowsHandle = "Unable to close DB rows handle"
)

// other messages
const (
	EvaluationIDMessage = "Evaluation ID"
	ExpressionMessage   = "Expression"
	EvaluatedAtMessage  = "Evaluated at"
	AgeMessage          = "Age"
	MaxAgeAttribute     = "max age"
	DeleteStatement     = "delete statement"
)

// SQL statements
const (
	// Create table with evaluation history if it does not exist
	createEvaluationsTable = `
		CREATE TABLE IF NOT EXISTS evaluations (
		    id           VARCHAR(36) NOT NULL,
		    expression   VARCHAR NOT NULL,
		    postfix      VARCHAR NOT NULL,
		    succeeded    BOOLEAN NOT NULL,
		    result       DOUBLE PRECISION,
		    error_text   VARCHAR NOT NULL,
		    ui           VARCHAR NOT NULL,
		    evaluated_at TIMESTAMP NOT NULL,
		    PRIMARY KEY (id)
		)
`

	// Insert one evaluation record
	insertEvaluationRecord = `
		INSERT INTO evaluations
		       (id, expression, postfix, succeeded, result, error_text, ui, evaluated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
`

	// Read the latest evaluation records
	readEvaluationHistory = `
		SELECT id, expression, postfix, succeeded, result, error_text, ui, evaluated_at
		  FROM evaluations
		 ORDER BY evaluated_at DESC
		 LIMIT $1
`

	// Delete older records from evaluations table (PostgreSQL)
	deleteOldRecordsPostgres = `
		DELETE
		  FROM evaluations
		 WHERE evaluated_at < NOW() - $1::INTERVAL
`

	// Display older records from evaluations table (PostgreSQL)
	displayOldRecordsPostgres = `
		SELECT id, expression, evaluated_at
		  FROM evaluations
		 WHERE evaluated_at < NOW() - $1::INTERVAL
		 ORDER BY evaluated_at
`

	// Delete older records from evaluations table (SQLite)
	deleteOldRecordsSQLite = `
		DELETE
		  FROM evaluations
		 WHERE evaluated_at < datetime('now', '-' || $1)
`

	// Display older records from evaluations table (SQLite)
	displayOldRecordsSQLite = `
		SELECT id, expression, evaluated_at
		  FROM evaluations
		 WHERE evaluated_at < datetime('now', '-' || $1)
		 ORDER BY evaluated_at
`
)

// NewStorage function creates and initializes a new instance of Storage interface
func NewStorage(configuration *conf.HistoryConfiguration) (*DBStorage, error) {
	driverType, driverName, dataSource, err := initAndGetDriver(configuration)
	if err != nil {
		return nil, err
	}

	log.Info().
		Str("driver", driverName).
		Msg("Making connection to data storage")

	connection, err := sql.Open(driverName, dataSource)
	if err != nil {
		log.Error().Err(err).Msg("Can not connect to data storage")
		return nil, err
	}

	// every SQLite connection to :memory: opens its own empty database
	if driverType == types.DBDriverSQLite3 {
		connection.SetMaxOpenConns(1)
	}

	storage := NewFromConnection(connection, driverType)
	storage.logSQLQueries = configuration.LogSQLQueries
	return storage, nil
}

// NewFromConnection function creates and initializes a new instance of
// Storage interface from prepared connection
func NewFromConnection(connection *sql.DB, dbDriverType types.DBDriver) *DBStorage {
	return &DBStorage{
		connection:   connection,
		dbDriverType: dbDriverType,
	}
}

// initAndGetDriver checks if the driver is supported and returns driver
// type, driver name, dataSource and error
func initAndGetDriver(configuration *conf.HistoryConfiguration) (driverType types.DBDriver, driverName, dataSource string, err error) {
	driverName = configuration.Driver

	switch driverName {
	case "sqlite3":
		driverType = types.DBDriverSQLite3
		dataSource = configuration.SQLiteDataSource
	case "postgres":
		driverType = types.DBDriverPostgres
		dataSource = fmt.Sprintf(
			"postgresql://%v:%v@%v:%v/%v?%v",
			configuration.PGUsername,
			configuration.PGPassword,
			configuration.PGHost,
			configuration.PGPort,
			configuration.PGDBName,
			configuration.PGParams,
		)
	default:
		err = fmt.Errorf("driver %v is not supported", driverName)
		return
	}

	return
}

// Close method closes the connection to database. Needs to be called at the
// end of application lifecycle.
func (storage DBStorage) Close() error {
	log.Info().Msg("Closing connection to data storage")
	if storage.connection != nil {
		err := storage.connection.Close()
		if err != nil {
			log.Error().Err(err).Msg("Can not close connection to data storage")
			return err
		}
	}
	return nil
}

// getPrintableStatement returns SQL statement in form prepared for logging
func getPrintableStatement(sqlStatement string) string {
	s := strings.ReplaceAll(sqlStatement, "\n", " ")
	s = strings.ReplaceAll(s, "\t", "")
	return strings.Trim(s, " ")
}

// logQuery logs SQL statement when logging of SQL queries is enabled
func (storage DBStorage) logQuery(sqlStatement string) {
	if storage.logSQLQueries {
		log.Debug().Str("query", getPrintableStatement(sqlStatement)).Msg("SQL query")
	}
}

// InitDatabase method creates table for evaluation history if it does not
// exist yet
func (storage DBStorage) InitDatabase() error {
	storage.logQuery(createEvaluationsTable)

	_, err := storage.connection.Exec(createEvaluationsTable)
	return err
}

// WriteEvaluationRecord method writes one evaluation record into the
// database
func (storage DBStorage) WriteEvaluationRecord(record *types.EvaluationRecord) error {
	storage.logQuery(insertEvaluationRecord)

	// result is NULL for failed evaluations
	result := sql.NullFloat64{Float64: record.Result, Valid: record.Succeeded}

	_, err := storage.connection.Exec(insertEvaluationRecord,
		string(record.ID),
		string(record.Expression),
		record.Postfix,
		record.Succeeded,
		result,
		record.ErrorText,
		record.UIType.String(),
		time.Time(record.EvaluatedAt).UTC())
	return err
}

// ReadEvaluationHistory method reads at most limit latest evaluation records,
// the newest one first
func (storage DBStorage) ReadEvaluationHistory(limit int) ([]types.EvaluationRecord, error) {
	var records = make([]types.EvaluationRecord, 0)

	storage.logQuery(readEvaluationHistory)

	rows, err := storage.connection.Query(readEvaluationHistory, limit)
	if err != nil {
		return records, err
	}

	defer func() {
		err := rows.Close()
		if err != nil {
			log.Error().Err(err).Msg(unableToCloseDBRowsHandle)
		}
	}()

	for rows.Next() {
		var (
			record      types.EvaluationRecord
			id          string
			expression  string
			result      sql.NullFloat64
			uiType      string
			evaluatedAt time.Time
		)

		if err := rows.Scan(&id, &expression, &record.Postfix, &record.Succeeded,
			&result, &record.ErrorText, &uiType, &evaluatedAt); err != nil {
			return records, err
		}

		record.ID = types.EvaluationID(id)
		record.Expression = types.Expression(expression)
		record.Result = result.Float64
		record.UIType = types.BasicUI
		if uiType == types.EnhancedUI.String() {
			record.UIType = types.EnhancedUI
		}
		record.EvaluatedAt = types.Timestamp(evaluatedAt)

		records = append(records, record)
	}

	return records, rows.Err()
}

// printQuery returns query used to display old records for current driver
func (storage DBStorage) printQuery() string {
	if storage.dbDriverType == types.DBDriverSQLite3 {
		return displayOldRecordsSQLite
	}
	return displayOldRecordsPostgres
}

// deleteStatement returns statement used to delete old records for current
// driver
func (storage DBStorage) deleteStatement() string {
	if storage.dbDriverType == types.DBDriverSQLite3 {
		return deleteOldRecordsSQLite
	}
	return deleteOldRecordsPostgres
}

// PrintHistoryForCleanup method prints all evaluation records older than
// specified relative time
func (storage DBStorage) PrintHistoryForCleanup(maxAge string) error {
	query := storage.printQuery()

	log.Info().
		Str(MaxAgeAttribute, maxAge).
		Str("select statement", getPrintableStatement(query)).
		Msg("PrintHistoryForCleanup operation")

	rows, err := storage.connection.Query(query, maxAge)
	if err != nil {
		return err
	}

	defer func() {
		err := rows.Close()
		if err != nil {
			log.Error().Err(err).Msg(unableToCloseDBRowsHandle)
		}
	}()

	// used to compute a real record age
	now := time.Now()

	// iterate over all old records
	for rows.Next() {
		var (
			id          string
			expression  string
			evaluatedAt time.Time
		)

		if err := rows.Scan(&id, &expression, &evaluatedAt); err != nil {
			return err
		}

		// compute the real record age
		age := int(math.Ceil(now.Sub(evaluatedAt).Hours() / 24)) // in days

		log.Info().
			Str(EvaluationIDMessage, id).
			Str(ExpressionMessage, expression).
			Str(EvaluatedAtMessage, evaluatedAt.Format(time.RFC3339)).
			Int(AgeMessage, age).
			Msg("Old record from `evaluations` table")
	}
	return rows.Err()
}

// CleanupHistory method deletes all evaluation records older than specified
// relative time. Number of deleted records is returned.
func (storage DBStorage) CleanupHistory(maxAge string) (int, error) {
	statement := storage.deleteStatement()

	log.Info().
		Str(MaxAgeAttribute, maxAge).
		Str(DeleteStatement, getPrintableStatement(statement)).
		Msg("Cleanup operation for evaluation history")

	// perform the SQL statement
	result, err := storage.connection.Exec(statement, maxAge)
	if err != nil {
		return 0, err
	}

	// read number of affected (deleted) rows
	affected, err := result.RowsAffected()
	if err != nil {
		return 0, err
	}
	return int(affected), nil
}

// NoopStorage is an implementation of Storage interface used when history is
// disabled. Nothing is stored and nothing is read.
type NoopStorage struct{}

// Close method does nothing
func (NoopStorage) Close() error { return nil }

// InitDatabase method does nothing
func (NoopStorage) InitDatabase() error { return nil }

// WriteEvaluationRecord method drops the record
func (NoopStorage) WriteEvaluationRecord(*types.EvaluationRecord) error { return nil }

// ReadEvaluationHistory method returns empty history
func (NoopStorage) ReadEvaluationHistory(int) ([]types.EvaluationRecord, error) {
	return []types.EvaluationRecord{}, nil
}

// PrintHistoryForCleanup method does nothing
func (NoopStorage) PrintHistoryForCleanup(string) error { return nil }

// CleanupHistory method does nothing
func (NoopStorage) CleanupHistory(string) (int, error) { return 0, nil }
