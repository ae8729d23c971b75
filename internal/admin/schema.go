// Package admin holds the one-shot maintenance procedures behind the
// artsnetwork-admin CLI: schema repairs on the CMS database, CMS collection
// bootstrapping and the storage migration. Every procedure reads the current
// state first and applies only the missing delta, so reruns are safe.
package admin

import (
	"database/sql"
	"fmt"

	"github.com/lib/pq"

	"github.com/cvan-em/artsnetwork/internal/config"
	"github.com/cvan-em/artsnetwork/internal/domain"
	"github.com/cvan-em/artsnetwork/internal/logger"
)

// StatusValues is the full moderation status set every content collection
// must accept.
var StatusValues = []string{
	domain.StatusPending,
	domain.StatusPublished,
	domain.StatusRejected,
	domain.StatusDraft,
}

// TeamMemberTypes are the valid values of team_members.type.
var TeamMemberTypes = []string{"team", "steering_group"}

// OpenDB connects to the CMS's Postgres database.
func OpenDB(cfg *config.Pg) (*sql.DB, error) {
	dsn := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.Dbname)
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	return db, nil
}

// EnumValues lists the labels of a Postgres enum type in sort order.
func EnumValues(db *sql.DB, typeName string) ([]string, error) {
	rows, err := db.Query(`
		SELECT e.enumlabel
		FROM pg_enum e
		JOIN pg_type t ON t.oid = e.enumtypid
		WHERE t.typname = $1
		ORDER BY e.enumsortorder`, typeName)
	if err != nil {
		return nil, fmt.Errorf("query enum %s: %w", typeName, err)
	}
	defer rows.Close()

	var values []string
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, err
		}
		values = append(values, v)
	}
	return values, rows.Err()
}

// EnumTypeExists reports whether an enum type is present.
func EnumTypeExists(db *sql.DB, typeName string) (bool, error) {
	var exists bool
	err := db.QueryRow(`SELECT EXISTS (SELECT 1 FROM pg_type WHERE typname = $1 AND typtype = 'e')`, typeName).Scan(&exists)
	return exists, err
}

// MissingEnumValues returns the wanted values absent from existing, in
// wanted order.
func MissingEnumValues(existing, wanted []string) []string {
	have := make(map[string]bool, len(existing))
	for _, v := range existing {
		have[v] = true
	}
	var missing []string
	for _, v := range wanted {
		if !have[v] {
			missing = append(missing, v)
		}
	}
	return missing
}

// EnsureEnumValues adds any wanted values missing from the enum type.
// Returns the values that were added.
func EnsureEnumValues(db *sql.DB, typeName string, wanted []string) ([]string, error) {
	exists, err := EnumTypeExists(db, typeName)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, fmt.Errorf("enum type %s does not exist", typeName)
	}

	existing, err := EnumValues(db, typeName)
	if err != nil {
		return nil, err
	}

	missing := MissingEnumValues(existing, wanted)
	for _, value := range missing {
		// ADD VALUE cannot be parameterized; quote both identifiers and
		// literal explicitly.
		stmt := fmt.Sprintf("ALTER TYPE %s ADD VALUE IF NOT EXISTS %s",
			pq.QuoteIdentifier(typeName), pq.QuoteLiteral(value))
		if _, err := db.Exec(stmt); err != nil {
			return nil, fmt.Errorf("add enum value %s to %s: %w", value, typeName, err)
		}
		logger.Log.Info("added enum value", "type", typeName, "value", value)
	}
	return missing, nil
}

// EnsureStatusColumnDefault makes new rows in a content table start out
// pending even when inserted directly in the CMS admin app.
func EnsureStatusColumnDefault(db *sql.DB, table string) error {
	stmt := fmt.Sprintf("ALTER TABLE %s ALTER COLUMN status SET DEFAULT %s",
		pq.QuoteIdentifier(table), pq.QuoteLiteral(domain.StatusPending))
	if _, err := db.Exec(stmt); err != nil {
		return fmt.Errorf("set status default on %s: %w", table, err)
	}
	return nil
}
