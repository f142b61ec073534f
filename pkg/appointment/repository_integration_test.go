package appointment

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/clinicadobicho/clinicadobicho/internal/test_utils"
	"github.com/clinicadobicho/clinicadobicho/pkg/animal"
	"github.com/clinicadobicho/clinicadobicho/pkg/client"
	"github.com/clinicadobicho/clinicadobicho/pkg/vet"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixtures struct {
	ownerId  int
	animalId int
	vetId    int
}

func seedFixtures(t *testing.T, db *sql.DB) fixtures {
	t.Helper()
	ctx := context.Background()

	ownerId, err := client.NewClientRepo(db).CreateClient(ctx, client.Client{
		Name:  "Maria Silva",
		TaxId: "12345678901",
	})
	require.NoError(t, err)

	animalId, err := animal.NewAnimalRepo(db).CreateAnimal(ctx, animal.Animal{
		Name:    "Rex",
		Species: animal.SpeciesDog,
		OwnerId: ownerId,
	})
	require.NoError(t, err)

	vetId, err := vet.NewVetRepo(db).CreateVet(ctx, vet.Veterinarian{
		Name: "Dra. Ana",
		Crmv: "SP-12345",
	})
	require.NoError(t, err)

	return fixtures{ownerId: ownerId, animalId: animalId, vetId: vetId}
}

func TestRepository(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping container test in short mode")
	}

	db := test_utils.TestWithDB(t)
	repo := NewRepository(db)
	f := seedFixtures(t, db)
	ctx := context.Background()
	at := time.Date(2025, 9, 9, 13, 0, 0, 0, time.UTC)

	t.Run("store and read back", func(t *testing.T) {
		id, err := repo.StoreAppointment(ctx, Appointment{
			AnimalId:       f.animalId,
			VeterinarianId: &f.vetId,
			Date:           at,
			Reason:         "Consulta de rotina",
			Status:         StatusScheduled,
		})
		require.NoError(t, err)

		stored, err := repo.GetAppointment(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, f.animalId, stored.AnimalId)
		assert.True(t, stored.Date.Equal(at))
		assert.Equal(t, "Rex", stored.Animal.Name)
		assert.Equal(t, "Maria Silva", stored.Animal.OwnerName)
		require.NotNil(t, stored.Veterinarian)
		assert.Equal(t, "Dra. Ana", stored.Veterinarian.Name)
	})

	t.Run("unique index rejects double booking", func(t *testing.T) {
		_, err := repo.StoreAppointment(ctx, Appointment{
			AnimalId:       f.animalId,
			VeterinarianId: &f.vetId,
			Date:           at,
			Reason:         "Vacinação",
			Status:         StatusScheduled,
		})

		var conflict *DoubleBookedError
		require.ErrorAs(t, err, &conflict)
		assert.Equal(t, f.vetId, conflict.VeterinarianId)
	})

	t.Run("unassigned appointments are not constrained", func(t *testing.T) {
		for i := 0; i < 2; i++ {
			_, err := repo.StoreAppointment(ctx, Appointment{
				AnimalId: f.animalId,
				Date:     at,
				Reason:   "Triagem",
				Status:   StatusScheduled,
			})
			require.NoError(t, err)
		}
	})

	t.Run("count conflicting excludes the given id", func(t *testing.T) {
		existing, err := repo.GetAppointmentsByVet(ctx, f.vetId)
		require.NoError(t, err)
		require.NotEmpty(t, existing)

		count, err := repo.CountConflicting(ctx, f.vetId, at, existing[0].Id)
		require.NoError(t, err)
		assert.Equal(t, 0, count)

		count, err = repo.CountConflicting(ctx, f.vetId, at, 0)
		require.NoError(t, err)
		assert.Equal(t, 1, count)
	})

	t.Run("update status and summarize", func(t *testing.T) {
		existing, err := repo.GetAppointmentsByVet(ctx, f.vetId)
		require.NoError(t, err)
		require.NotEmpty(t, existing)

		require.NoError(t, repo.UpdateStatus(ctx, existing[0].Id, StatusCompleted))

		summary, err := repo.CountByStatus(ctx)
		require.NoError(t, err)
		assert.Equal(t, 1, summary.Completed)
		assert.Equal(t, 2, summary.Scheduled)
		assert.Equal(t, 3, summary.Total)
	})

	t.Run("owner listing follows the animal join", func(t *testing.T) {
		appointments, err := repo.GetAppointmentsByOwner(ctx, f.ownerId)
		require.NoError(t, err)
		assert.Len(t, appointments, 3)
	})

	t.Run("delete", func(t *testing.T) {
		existing, err := repo.GetAppointmentsByVet(ctx, f.vetId)
		require.NoError(t, err)
		require.NotEmpty(t, existing)

		require.NoError(t, repo.DeleteAppointment(ctx, existing[0].Id))
		_, err = repo.GetAppointment(ctx, existing[0].Id)
		assert.ErrorIs(t, err, ErrAppointmentNotFound)
	})

	t.Run("delete missing id", func(t *testing.T) {
		err := repo.DeleteAppointment(ctx, 99999)
		assert.ErrorIs(t, err, ErrAppointmentNotFound)
	})
}
