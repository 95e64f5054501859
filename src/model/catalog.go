package model

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/username/ibportal/src/models"
)

// ListAccountTypes returns all account types in their stored order.
func ListAccountTypes(ctx context.Context, db *sql.DB) ([]models.AccountType, error) {
	rows, err := db.QueryContext(ctx, `SELECT id, name, description, ib_type, usd_per_lot, spread_share_percentage FROM account_types ORDER BY position ASC, id ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	accountTypes := []models.AccountType{}
	for rows.Next() {
		var at models.AccountType
		var description, ibType sql.NullString
		if err := rows.Scan(&at.ID, &at.Name, &description, &ibType, &at.USDPerLot, &at.SpreadSharePercentage); err != nil {
			return nil, err
		}
		at.Description = description.String
		at.IBType = ibType.String
		accountTypes = append(accountTypes, at)
	}
	return accountTypes, rows.Err()
}

func ListInstruments(ctx context.Context, db *sql.DB) ([]models.Instrument, error) {
	rows, err := db.QueryContext(ctx, `SELECT id, name, category FROM instruments ORDER BY position ASC, id ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	instruments := []models.Instrument{}
	for rows.Next() {
		var in models.Instrument
		var category sql.NullString
		if err := rows.Scan(&in.ID, &in.Name, &category); err != nil {
			return nil, err
		}
		in.Category = category.String
		instruments = append(instruments, in)
	}
	return instruments, rows.Err()
}

// ListCommissionLevels returns the levels in insertion order, so duplicate
// levels keep the order they were written in.
func ListCommissionLevels(ctx context.Context, db *sql.DB) ([]models.CommissionLevel, error) {
	rows, err := db.QueryContext(ctx, `SELECT level, structure_name, usd_per_lot, spread_share_percentage FROM commission_levels ORDER BY id ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	levels := []models.CommissionLevel{}
	for rows.Next() {
		var lvl models.CommissionLevel
		if err := rows.Scan(&lvl.Level, &lvl.StructureName, &lvl.USDPerLot, &lvl.SpreadSharePercentage); err != nil {
			return nil, err
		}
		levels = append(levels, lvl)
	}
	return levels, rows.Err()
}

// ReplaceCatalog overwrites all catalog tables with the given catalog in one transaction.
func ReplaceCatalog(db *sql.DB, catalog *models.Catalog) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("error beginning database transaction: %w", err)
	}
	defer tx.Rollback()

	for _, table := range []string{"account_types", "instruments", "commission_levels"} {
		if _, err := tx.Exec("DELETE FROM " + table); err != nil {
			return fmt.Errorf("error clearing %s: %w", table, err)
		}
	}

	atStmt, err := tx.Prepare(`INSERT INTO account_types (id, name, description, ib_type, usd_per_lot, spread_share_percentage, position, updated_at) VALUES (?, ?, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP)`)
	if err != nil {
		return fmt.Errorf("error preparing account type insert: %w", err)
	}
	defer atStmt.Close()
	for i, at := range catalog.AccountTypes {
		if _, err := atStmt.Exec(at.ID, at.Name, at.Description, at.IBType, at.USDPerLot, at.SpreadSharePercentage, i); err != nil {
			return fmt.Errorf("error inserting account type %s: %w", at.ID, err)
		}
	}

	inStmt, err := tx.Prepare(`INSERT INTO instruments (id, name, category, position) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("error preparing instrument insert: %w", err)
	}
	defer inStmt.Close()
	for i, in := range catalog.Instruments {
		if _, err := inStmt.Exec(in.ID, in.Name, in.Category, i); err != nil {
			return fmt.Errorf("error inserting instrument %s: %w", in.ID, err)
		}
	}

	lvlStmt, err := tx.Prepare(`INSERT INTO commission_levels (level, structure_name, usd_per_lot, spread_share_percentage) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("error preparing commission level insert: %w", err)
	}
	defer lvlStmt.Close()
	for _, lvl := range catalog.CommissionLevels {
		if _, err := lvlStmt.Exec(lvl.Level, lvl.StructureName, lvl.USDPerLot, lvl.SpreadSharePercentage); err != nil {
			return fmt.Errorf("error inserting commission level %d: %w", lvl.Level, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("error committing catalog: %w", err)
	}
	return nil
}
