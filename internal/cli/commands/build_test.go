package commands

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const buildSpec = `
project:
  name: acme
  dir: .

models:
  - name: stg_customers
    layer: staging
    sql: select 1
  - name: fct_orders
    layer: mart
    sql_file: sql/fct_orders.sql
    config:
      materialized: table
`

func TestBuildCommand(t *testing.T) {
	tmpDir := t.TempDir()
	oldWd, _ := os.Getwd()
	require.NoError(t, os.Chdir(tmpDir))
	defer func() { _ = os.Chdir(oldWd) }()

	require.NoError(t, os.WriteFile("dbtgen.yaml", []byte(buildSpec), 0600))
	require.NoError(t, os.MkdirAll("sql", 0750))
	require.NoError(t, os.WriteFile(filepath.Join("sql", "fct_orders.sql"), []byte("select * from orders"), 0600))

	cmd := NewBuildCommand()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)

	require.NoError(t, cmd.Execute())

	raw, err := os.ReadFile(filepath.Join("acme", "models", "staging", "stg_customers.sql"))
	require.NoError(t, err)
	assert.Equal(t, "select 1", string(raw))

	raw, err = os.ReadFile(filepath.Join("acme", "models", "mart", "fct_orders.sql"))
	require.NoError(t, err)
	assert.Contains(t, string(raw), "{{ config(")
	assert.Contains(t, string(raw), "materialized='table'")
	assert.Contains(t, string(raw), "schema='mart'")
	assert.Contains(t, string(raw), "select * from orders")

	assert.Contains(t, buf.String(), "Generated project")
}

func TestBuildCommandMissingSpec(t *testing.T) {
	tmpDir := t.TempDir()
	oldWd, _ := os.Getwd()
	require.NoError(t, os.Chdir(tmpDir))
	defer func() { _ = os.Chdir(oldWd) }()

	cmd := NewBuildCommand()
	cmd.SetOut(new(bytes.Buffer))
	cmd.SetErr(new(bytes.Buffer))

	assert.Error(t, cmd.Execute())
}

func TestBuildCommandInvalidLayer(t *testing.T) {
	tmpDir := t.TempDir()
	oldWd, _ := os.Getwd()
	require.NoError(t, os.Chdir(tmpDir))
	defer func() { _ = os.Chdir(oldWd) }()

	spec := "project:\n  name: acme\nmodels:\n  - name: bad\n    layer: gold\n    sql: select 1\n"
	require.NoError(t, os.WriteFile("dbtgen.yaml", []byte(spec), 0600))

	cmd := NewBuildCommand()
	cmd.SetOut(new(bytes.Buffer))
	cmd.SetErr(new(bytes.Buffer))

	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid layer")
}
