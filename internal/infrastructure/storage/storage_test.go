package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"backoffice/internal/domain/audit"
	"backoffice/internal/domain/supplier"
)

func TestOpen_Memory(t *testing.T) {
	codec, err := audit.NewCodec(0)
	require.NoError(t, err)

	repos, err := Open(context.Background(), Config{Driver: DriverMemory}, codec, nil)
	require.NoError(t, err)
	defer repos.Close()

	ctx := context.Background()
	s := supplier.New("Green Farm")
	require.NoError(t, repos.TxManager.RunInTransaction(ctx, func(ctx context.Context) error {
		return repos.Suppliers.Create(ctx, s)
	}))

	got, err := repos.Suppliers.GetByID(ctx, s.ID)
	require.NoError(t, err)
	assert.Equal(t, "Green Farm", got.Name)
}

func TestOpen_UnknownDriver(t *testing.T) {
	_, err := Open(context.Background(), Config{Driver: "sqlite"}, nil, nil)
	assert.Error(t, err)
}
