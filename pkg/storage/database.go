package storage

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/oarkflow/squealx"

	"github.com/oakvale/wedding-backend/pkg/models"
)

// DatabaseType represents the backing database driver.
type DatabaseType string

const (
	MySQL      DatabaseType = "mysql"
	PostgreSQL DatabaseType = "postgres"
	SQLite     DatabaseType = "sqlite"
)

// DatabaseStorage persists RSVPs through squealx with driver-aware schema.
type DatabaseStorage struct {
	db     *squealx.DB
	dbType DatabaseType
}

func NewDatabaseStorage(db *squealx.DB) (*DatabaseStorage, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is nil")
	}
	storage := &DatabaseStorage{
		db:     db,
		dbType: DatabaseType(db.DriverName()),
	}
	if err := storage.createTables(); err != nil {
		return nil, fmt.Errorf("failed to create database schema: %w", err)
	}
	return storage, nil
}

func (d *DatabaseStorage) createTables() error {
	var query string
	switch d.dbType {
	case MySQL:
		query = `CREATE TABLE IF NOT EXISTS rsvps (
			id VARCHAR(64) PRIMARY KEY,
			name VARCHAR(255) NOT NULL,
			email VARCHAR(255) UNIQUE NOT NULL,
			attending TINYINT(1) NOT NULL,
			guests TEXT,
			dietary TEXT,
			message TEXT,
			locale VARCHAR(16) DEFAULT 'en',
			client_ip VARCHAR(45),
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			INDEX idx_rsvps_email (email)
		) ENGINE=InnoDB`
	case PostgreSQL:
		query = `CREATE TABLE IF NOT EXISTS rsvps (
			id VARCHAR(64) PRIMARY KEY,
			name VARCHAR(255) NOT NULL,
			email VARCHAR(255) UNIQUE NOT NULL,
			attending BOOLEAN NOT NULL,
			guests TEXT,
			dietary TEXT,
			message TEXT,
			locale VARCHAR(16) DEFAULT 'en',
			client_ip VARCHAR(45),
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)`
	case SQLite:
		query = `CREATE TABLE IF NOT EXISTS rsvps (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			email TEXT UNIQUE NOT NULL,
			attending INTEGER NOT NULL,
			guests TEXT,
			dietary TEXT,
			message TEXT,
			locale TEXT DEFAULT 'en',
			client_ip TEXT,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)`
	default:
		return fmt.Errorf("unsupported database type: %s", d.dbType)
	}
	if _, err := d.db.Exec(query); err != nil {
		return fmt.Errorf("failed to execute schema query: %w", err)
	}
	return nil
}

func (d *DatabaseStorage) SaveRSVP(rsvp models.RSVP) error {
	guests, err := json.Marshal(rsvp.Guests)
	if err != nil {
		return fmt.Errorf("failed to serialize guests: %w", err)
	}

	params := map[string]any{
		"id":         rsvp.ID,
		"name":       rsvp.Name,
		"email":      emailKey(rsvp.Email),
		"attending":  d.convertBoolToDB(rsvp.Attending),
		"guests":     string(guests),
		"dietary":    rsvp.Dietary,
		"message":    rsvp.Message,
		"locale":     rsvp.Locale,
		"client_ip":  rsvp.ClientIP,
		"created_at": rsvp.CreatedAt,
	}

	// Replace rather than reject: guests change their answers.
	deleteQuery := `DELETE FROM rsvps WHERE email = :email`
	if _, err := d.db.NamedExec(deleteQuery, map[string]any{"email": emailKey(rsvp.Email)}); err != nil {
		return fmt.Errorf("failed to clear previous rsvp: %w", err)
	}

	insertQuery := `INSERT INTO rsvps (id, name, email, attending, guests, dietary, message, locale, client_ip, created_at)
		VALUES (:id, :name, :email, :attending, :guests, :dietary, :message, :locale, :client_ip, :created_at)`
	if _, err := d.db.NamedExec(insertQuery, params); err != nil {
		return fmt.Errorf("failed to insert rsvp: %w", err)
	}
	return nil
}

func (d *DatabaseStorage) GetRSVP(email string) (models.RSVP, bool, error) {
	query := `SELECT id, name, email, attending, guests, dietary, message, locale, client_ip, created_at
		FROM rsvps WHERE email = :email`
	params := map[string]any{"email": emailKey(email)}

	var row rsvpRow
	err := d.db.NamedGet(&row, query, params)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.RSVP{}, false, nil
		}
		return models.RSVP{}, false, err
	}
	return d.toModel(row), true, nil
}

func (d *DatabaseStorage) ListRSVPs() ([]models.RSVP, error) {
	query := `SELECT id, name, email, attending, guests, dietary, message, locale, client_ip, created_at
		FROM rsvps ORDER BY created_at`

	var rows []rsvpRow
	if err := d.db.Select(&rows, query); err != nil {
		return nil, err
	}
	out := make([]models.RSVP, 0, len(rows))
	for _, row := range rows {
		out = append(out, d.toModel(row))
	}
	return out, nil
}

type rsvpRow struct {
	ID        string    `db:"id"`
	Name      string    `db:"name"`
	Email     string    `db:"email"`
	Attending any       `db:"attending"`
	Guests    string    `db:"guests"`
	Dietary   string    `db:"dietary"`
	Message   string    `db:"message"`
	Locale    string    `db:"locale"`
	ClientIP  string    `db:"client_ip"`
	CreatedAt time.Time `db:"created_at"`
}

func (d *DatabaseStorage) toModel(row rsvpRow) models.RSVP {
	var guests []string
	if row.Guests != "" {
		_ = json.Unmarshal([]byte(row.Guests), &guests)
	}
	return models.RSVP{
		ID:        row.ID,
		Name:      row.Name,
		Email:     row.Email,
		Attending: d.convertBoolFromDB(row.Attending),
		Guests:    guests,
		Dietary:   row.Dietary,
		Message:   row.Message,
		Locale:    row.Locale,
		ClientIP:  row.ClientIP,
		CreatedAt: row.CreatedAt,
	}
}

// MySQL and SQLite store booleans as integers, PostgreSQL natively.
func (d *DatabaseStorage) convertBoolToDB(value bool) any {
	switch d.dbType {
	case PostgreSQL:
		return value
	default:
		if value {
			return 1
		}
		return 0
	}
}

func (d *DatabaseStorage) convertBoolFromDB(value any) bool {
	switch v := value.(type) {
	case bool:
		return v
	case int64:
		return v != 0
	case int:
		return v != 0
	case []byte:
		s := strings.TrimSpace(string(v))
		return s == "1" || strings.EqualFold(s, "true")
	case string:
		return v == "1" || strings.EqualFold(v, "true")
	default:
		return false
	}
}
