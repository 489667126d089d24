package postgres

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/phenrril/codstore/internal/domain"
)

// dryRunDB builds statements without a server; pgx only parses the DSN.
func dryRunDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(postgres.New(postgres.Config{DSN: "host=localhost user=codstore dbname=codstore sslmode=disable"}),
		&gorm.Config{DryRun: true, DisableAutomaticPing: true, SkipDefaultTransaction: true})
	require.NoError(t, err)
	return db
}

// insertedValue returns the value bound to column in the INSERT built for row.
func insertedValue(t *testing.T, db *gorm.DB, row any, column string) any {
	t.Helper()
	stmt := db.Create(row).Statement
	c, ok := stmt.Clauses["VALUES"]
	require.True(t, ok, "no VALUES clause in %s", stmt.SQL.String())
	values, ok := c.Expression.(clause.Values)
	require.True(t, ok)
	require.Len(t, values.Values, 1)
	for i, col := range values.Columns {
		if col.Name == column {
			return values.Values[0][i]
		}
	}
	t.Fatalf("column %q not inserted: %s", column, stmt.SQL.String())
	return nil
}

func TestInsertKeepsUnavailableProduct(t *testing.T) {
	db := dryRunDB(t)

	hidden := &domain.Product{ID: uuid.New(), Name: "Old case", Available: false}
	assert.Equal(t, false, insertedValue(t, db, hidden, "available"))

	listed := &domain.Product{ID: uuid.New(), Name: "New case", Available: true}
	assert.Equal(t, true, insertedValue(t, db, listed, "available"))
}

func TestInsertKeepsHiddenFAQ(t *testing.T) {
	db := dryRunDB(t)

	faq := &domain.FAQ{ID: uuid.New(), Question: "Q", Answer: "A", Visible: false}
	assert.Equal(t, false, insertedValue(t, db, faq, "visible"))
}
