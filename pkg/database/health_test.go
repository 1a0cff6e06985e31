package database

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHealth_HealthyPing(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectPing()

	status, err := Health(context.Background(), db)
	require.NoError(t, err)
	assert.Equal(t, "healthy", status.Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHealth_UnhealthyOnPingFailure(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectPing().WillReturnError(assertErr{})

	status, err := Health(context.Background(), db)
	require.Error(t, err)
	assert.Equal(t, "unhealthy", status.Status)
}

type assertErr struct{}

func (assertErr) Error() string { return "connection refused" }
