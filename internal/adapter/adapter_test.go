package adapter

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func TestTableNotFoundError(t *testing.T) {
	err := &TableNotFoundError{Schema: "app", Table: "users"}
	assert.Equal(t, "table app.users not found", err.Error())
}

func TestConnectionErrorUnwrap(t *testing.T) {
	inner := assert.AnError
	err := &ConnectionError{Dialect: "postgres", Err: inner}
	assert.ErrorIs(t, err, inner)
	assert.Contains(t, err.Error(), "postgres connection failed")
}

func TestMarkPrimaryKeys(t *testing.T) {
	columns := []Column{
		{Name: "id"},
		{Name: "tenant_id"},
		{Name: "email"},
	}
	markPrimaryKeys(columns, map[string]bool{"id": true, "tenant_id": true})

	assert.True(t, columns[0].PrimaryKey)
	assert.True(t, columns[1].PrimaryKey)
	assert.False(t, columns[2].PrimaryKey)
}
