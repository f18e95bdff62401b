package helper

import (
	"database/sql"
	"strconv"

	"github.com/shopspring/decimal"
)

// =======================
// STRING
// =======================

func StringPtr(s string) *string {
	return &s
}

// =======================
// FLOAT (Postgres NUMERIC / Mongo double)
// =======================

// NullFloat64ToPtr mengembalikan nil untuk kolom NULL.
func NullFloat64ToPtr(f sql.NullFloat64) *float64 {
	if !f.Valid {
		return nil
	}
	v := f.Float64
	return &v
}

// =======================
// DECIMAL
// =======================

// Lewat string conversion supaya 19.99 tetap 19.99, bukan 19.989999...
func Float64ToDecimalExact(f float64) decimal.Decimal {
	return decimal.RequireFromString(
		strconv.FormatFloat(f, 'f', -1, 64),
	)
}
