package postgres

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"job-catalog/internal/models"
	"job-catalog/internal/repository"
)

func TestProfileStore_SaveAll(t *testing.T) {
	ctx := context.Background()
	store, mock := newMockStore(t)

	mock.ExpectBegin()
	for i, name := range []string{models.ProfileSupervisor, models.ProfileAdministrator, models.ProfileUser} {
		mock.ExpectQuery(`INSERT INTO profiles \(name\) VALUES \('` + name + `'\) RETURNING id`).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(i + 1))
	}
	mock.ExpectCommit()

	ps, err := store.Profiles().SaveAll(ctx, []models.Profile{
		{Name: models.ProfileSupervisor},
		{Name: models.ProfileAdministrator},
		{Name: models.ProfileUser},
	})

	require.NoError(t, err)
	require.Len(t, ps, 3)
	assert.Equal(t, int64(1), ps[0].ID)
	assert.Equal(t, int64(3), ps[2].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProfileStore_SaveAll_InvalidItem(t *testing.T) {
	store, mock := newMockStore(t)

	_, err := store.Profiles().SaveAll(context.Background(), []models.Profile{{Name: "OK"}, {}})

	assert.ErrorContains(t, err, "item 1")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProfileStore_FindAll(t *testing.T) {
	ctx := context.Background()
	store, mock := newMockStore(t)

	mock.ExpectQuery(`SELECT id, name FROM (.*)profiles(.*) ORDER BY id ASC`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}).
			AddRow(1, models.ProfileSupervisor).
			AddRow(2, models.ProfileAdministrator))

	ps, err := store.Profiles().FindAll(ctx)

	require.NoError(t, err)
	assert.Equal(t, []models.Profile{
		{ID: 1, Name: models.ProfileSupervisor},
		{ID: 2, Name: models.ProfileAdministrator},
	}, ps)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProfileStore_UpdateAndDelete(t *testing.T) {
	ctx := context.Background()
	store, mock := newMockStore(t)

	mock.ExpectExec(`UPDATE (.*)profiles(.*) SET (.*)GERENTE(.*) WHERE (.*)id = 4`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`DELETE FROM (.*)profiles(.*) WHERE (.*)id = 4`).
		WillReturnResult(sqlmock.NewResult(0, 0))

	p, err := store.Profiles().Save(ctx, &models.Profile{ID: 4, Name: "GERENTE"})
	require.NoError(t, err)
	assert.Equal(t, int64(4), p.ID)

	err = store.Profiles().DeleteByID(ctx, 4)
	assert.ErrorIs(t, err, repository.ErrNotFound)

	assert.NoError(t, mock.ExpectationsWereMet())
}
