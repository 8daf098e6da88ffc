package database

import (
	"context"
	"errors"
	"fmt"
	"net"
	"syscall"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestClassify(t *testing.T) {
	opErr := &net.OpError{Op: "dial", Net: "tcp", Err: syscall.ECONNREFUSED}

	tests := []struct {
		name    string
		err     error
		target  error
		matches bool
	}{
		{name: "record not found", err: gorm.ErrRecordNotFound, target: ErrNotFound, matches: true},
		{name: "wrapped not found", err: fmt.Errorf("load: %w", gorm.ErrRecordNotFound), target: ErrNotFound, matches: true},
		{name: "dial refused", err: opErr, target: ErrUnavailable, matches: true},
		{name: "deadline", err: context.DeadlineExceeded, target: ErrUnavailable, matches: true},
		{name: "unique violation", err: &pgconn.PgError{Code: "23505"}, target: ErrConflict, matches: true},
		{name: "duplicated key", err: gorm.ErrDuplicatedKey, target: ErrConflict, matches: true},
		{name: "query error", err: errors.New("syntax error at or near"), target: ErrUnavailable, matches: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Classify(tt.err)
			assert.Equal(t, tt.matches, errors.Is(got, tt.target))
			assert.ErrorIs(t, got, tt.err)
		})
	}
}

func TestClassifyNil(t *testing.T) {
	assert.NoError(t, Classify(nil))
	assert.False(t, IsConnectivity(nil))
}

func TestCloseNil(t *testing.T) {
	assert.NoError(t, Close(nil))
}
