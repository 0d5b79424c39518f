package rlog

import (
	"database/sql"
	"fmt"
	"os"
	"strings"

	_ "github.com/mattn/go-sqlite3"
)

// SQLiteLogger is a DataLogger that writes diagnostic rows into a
// SQLite database instead of CSV files, grounded on the teacher's
// SQLiteLogger (sqlite_logger.go) and its OpenSQLiteDB helper
// (logger.go).
type SQLiteLogger struct {
	nodePath  string
	cyclePath string
	instance  int

	nodeDB  *sql.DB
	cycleDB *sql.DB
}

func NewSQLiteLogger(basepath string, instance int) *SQLiteLogger {
	l := new(SQLiteLogger)
	l.SetBasePath(basepath, instance)
	return l
}

func (l *SQLiteLogger) SetBasePath(basepath string, instance int) {
	if info, err := os.Stat(basepath); err == nil && info.IsDir() {
		basepath += fmt.Sprintf("log.%03d", instance)
	}
	trimmed := strings.TrimSuffix(basepath, ".")
	l.nodePath = trimmed + ".nodes.db"
	l.cyclePath = trimmed + ".cycles.db"
	l.instance = instance
}

// Init creates this instance's tables, dropping any that already
// exist from a previous run at the same path.
func (l *SQLiteLogger) Init() error {
	var err error
	l.nodeDB, err = OpenSQLiteDB(l.nodePath)
	if err != nil {
		return err
	}
	nodeTable := fmt.Sprintf("Node%03d", l.instance)
	if _, err := l.nodeDB.Exec(fmt.Sprintf(
		`drop table if exists %s;
		 create table %s (id integer not null primary key, node_id integer, lineage text, time real, population integer, flags integer);`,
		nodeTable, nodeTable)); err != nil {
		return fmt.Errorf("rlog: creating node table: %s", err)
	}

	l.cycleDB, err = OpenSQLiteDB(l.cyclePath)
	if err != nil {
		return err
	}
	cycleTable := fmt.Sprintf("Cycle%03d", l.instance)
	if _, err := l.cycleDB.Exec(fmt.Sprintf(
		`drop table if exists %s;
		 create table %s (id integer not null primary key, cycle integer, nodes_before integer, nodes_after integer, edges_before integer, edges_after integer, duration_ns integer);`,
		cycleTable, cycleTable)); err != nil {
		return fmt.Errorf("rlog: creating cycle table: %s", err)
	}
	return nil
}

func (l *SQLiteLogger) WriteNodes(rows []NodeRow) error {
	nodeTable := fmt.Sprintf("Node%03d", l.instance)
	tx, err := l.nodeDB.Begin()
	if err != nil {
		return err
	}
	stmt, err := tx.Prepare(fmt.Sprintf(
		"insert into %s (node_id, lineage, time, population, flags) values (?, ?, ?, ?, ?)", nodeTable))
	if err != nil {
		return err
	}
	defer stmt.Close()
	for _, row := range rows {
		if _, err := stmt.Exec(row.NodeID, row.Lineage, row.Time, row.Population, row.Flags); err != nil {
			tx.Rollback()
			return err
		}
	}
	return tx.Commit()
}

func (l *SQLiteLogger) WriteCycle(c CycleRecord) error {
	cycleTable := fmt.Sprintf("Cycle%03d", l.instance)
	_, err := l.cycleDB.Exec(fmt.Sprintf(
		"insert into %s (cycle, nodes_before, nodes_after, edges_before, edges_after, duration_ns) values (?, ?, ?, ?, ?, ?)", cycleTable),
		c.Cycle, c.NodesBefore, c.NodesAfter, c.EdgesBefore, c.EdgesAfter, c.Duration.Nanoseconds())
	return err
}

func (l *SQLiteLogger) Close() error {
	var firstErr error
	if l.nodeDB != nil {
		if err := l.nodeDB.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	if l.cycleDB != nil {
		if err := l.cycleDB.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// OpenSQLiteDB establishes a database connection with WAL journaling
// and exclusive locking, matching the teacher's
// OpenSQLiteDBOptimized/OpenSQLiteDB pair (logger.go).
func OpenSQLiteDB(path string) (*sql.DB, error) {
	dsn := fmt.Sprintf("file:%s?_journal=WAL&_locking=EXCLUSIVE&_sync=NORMAL", path)
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, err
	}
	return db, nil
}
