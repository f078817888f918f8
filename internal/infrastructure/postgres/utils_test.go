package postgres

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPgCode_ReconoceErroresEnvueltos(t *testing.T) {
	unique := fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23505"})
	check := &pgconn.PgError{Code: "23514"}

	assert.True(t, isUniqueViolation(unique))
	assert.False(t, isCheckViolation(unique))
	assert.True(t, isCheckViolation(check))
	assert.False(t, isUniqueViolation(errors.New("23505 en el texto no cuenta")))
}

func TestMigrations_EsquemaProtegeStockYVentas(t *testing.T) {
	script, err := migrationsFS.ReadFile("migrations/001_schema.sql")
	require.NoError(t, err)
	sql := string(script)

	assert.Contains(t, sql, "CHECK (stock >= 0)")
	assert.Contains(t, sql, "CHECK (quantity > 0)")
	assert.True(t, strings.Contains(sql, "BEFORE UPDATE OR DELETE ON sales"))
	assert.True(t, strings.Contains(sql, "BEFORE UPDATE OR DELETE ON sale_items"))
}
