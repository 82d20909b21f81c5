package main

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDatabasePath(t *testing.T) {
	tgt, err := parseDatabasePath("projects/p1/instances/i1/databases/pricing")
	require.NoError(t, err)
	assert.Equal(t, "p1", tgt.project)
	assert.Equal(t, "i1", tgt.instance)
	assert.Equal(t, "pricing", tgt.database)
	assert.Equal(t, "projects/p1/instances/i1/databases/pricing", tgt.databasePath())

	_, err = parseDatabasePath("pricing")
	assert.Error(t, err)
}

func TestSplitDDLStatements(t *testing.T) {
	stmts := splitDDLStatements("-- header\nCREATE TABLE a (\n  id INT64,\n) PRIMARY KEY (id);\n\nCREATE INDEX a_by_id ON a(id);\n")
	require.Len(t, stmts, 2)
	assert.Equal(t, "CREATE TABLE a (\nid INT64,\n) PRIMARY KEY (id)", stmts[0])
	assert.Equal(t, "CREATE INDEX a_by_id ON a(id)", stmts[1])
}

func TestSchemaFileSplits(t *testing.T) {
	content, err := os.ReadFile("../../migrations/001_pricing_schema.sql")
	require.NoError(t, err)

	stmts := splitDDLStatements(string(content))
	assert.Len(t, stmts, 18)
	for _, s := range stmts {
		assert.NotContains(t, s, "--")
	}
}
