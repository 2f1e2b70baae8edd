package store

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-gateway/internal/config"
	"github.com/MKhiriev/go-gateway/internal/logger"
)

func TestNewConnectDB_UnsupportedDriver(t *testing.T) {
	_, err := NewConnectDB(context.Background(), config.DB{Driver: "oracle"}, logger.Nop())
	assert.ErrorIs(t, err, ErrUnsupportedDriver)
}

func TestNewStorages_UnsupportedDriver(t *testing.T) {
	_, err := NewStorages(context.Background(), config.Storage{DB: config.DB{Driver: "oracle"}}, config.SessionStoreSQL, logger.Nop())
	assert.ErrorIs(t, err, ErrUnsupportedDriver)
}

func TestStorages_PingAndClose(t *testing.T) {
	conn, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)

	s := &Storages{DB: newDB(conn, config.DriverSQLite, logger.Nop())}

	mock.ExpectPing()
	assert.NoError(t, s.Ping(context.Background()))

	mock.ExpectPing().WillReturnError(errors.New("gone"))
	assert.Error(t, s.Ping(context.Background()))

	mock.ExpectClose()
	assert.NoError(t, s.Close())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDB_Driver(t *testing.T) {
	db, _ := newTestDB(t)
	assert.Equal(t, config.DriverPostgres, db.Driver())
}
