package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lenregele/tipsplit/internal/models"
)

func newTipFixture(t *testing.T) (*TipService, *EmployeeService, *memStore) {
	t.Helper()
	store := newMemStore()
	return NewTipService(store, TipServiceOptions{}), NewEmployeeService(store), store
}

func TestComputeAndRecord(t *testing.T) {
	ctx := context.Background()

	t.Run("equal hours split evenly", func(t *testing.T) {
		tips, employees, _ := newTipFixture(t)
		ana, _ := employees.Add(ctx, "Ana", "")
		bogdan, _ := employees.Add(ctx, "Bogdan", "")

		calc, err := tips.ComputeAndRecord(ctx, 100, "RON", []SessionInput{
			{EmployeeID: ana.ID, HoursWorked: 5},
			{EmployeeID: bogdan.ID, HoursWorked: 5},
		})
		require.NoError(t, err)

		assert.Equal(t, 10.0, calc.TotalHours)
		assert.Equal(t, 10.0, calc.TipPerHour)
		assert.Equal(t, "RON", calc.Currency)
		assert.Equal(t, 50.0, calc.IndividualTips[ana.ID])
		assert.Equal(t, 50.0, calc.IndividualTips[bogdan.ID])
		assert.NotEmpty(t, calc.ID)
		assert.False(t, calc.Date.IsZero())
	})

	t.Run("proportional split", func(t *testing.T) {
		tips, employees, _ := newTipFixture(t)
		ana, _ := employees.Add(ctx, "Ana", "")
		bogdan, _ := employees.Add(ctx, "Bogdan", "")

		calc, err := tips.ComputeAndRecord(ctx, 90, "", []SessionInput{
			{EmployeeID: ana.ID, HoursWorked: 1},
			{EmployeeID: bogdan.ID, HoursWorked: 2},
		})
		require.NoError(t, err)

		assert.Equal(t, 3.0, calc.TotalHours)
		assert.Equal(t, 30.0, calc.TipPerHour)
		assert.Equal(t, 30.0, calc.IndividualTips[ana.ID])
		assert.Equal(t, 60.0, calc.IndividualTips[bogdan.ID])
		// Currency falls back to the configured default.
		assert.Equal(t, "RON", calc.Currency)
	})

	t.Run("names are denormalized from the directory", func(t *testing.T) {
		tips, employees, _ := newTipFixture(t)
		ana, _ := employees.Add(ctx, "Ana", "")

		calc, err := tips.ComputeAndRecord(ctx, 40, "RON", []SessionInput{
			{EmployeeID: ana.ID, EmployeeName: "stale name", HoursWorked: 4},
		})
		require.NoError(t, err)
		assert.Equal(t, "Ana", calc.WorkSessions[0].EmployeeName)
	})

	t.Run("split-shift sessions for one employee are merged", func(t *testing.T) {
		tips, employees, _ := newTipFixture(t)
		ana, _ := employees.Add(ctx, "Ana", "")
		bogdan, _ := employees.Add(ctx, "Bogdan", "")

		calc, err := tips.ComputeAndRecord(ctx, 100, "RON", []SessionInput{
			{EmployeeID: ana.ID, HoursWorked: 3},
			{EmployeeID: bogdan.ID, HoursWorked: 5},
			{EmployeeID: ana.ID, HoursWorked: 2},
		})
		require.NoError(t, err)

		require.Len(t, calc.WorkSessions, 2)
		assert.Equal(t, 10.0, calc.TotalHours)
		assert.Equal(t, 50.0, calc.IndividualTips[ana.ID])
		assert.Equal(t, 50.0, calc.IndividualTips[bogdan.ID])
		// One session per employee, hours summed.
		for _, ws := range calc.WorkSessions {
			if ws.EmployeeID == ana.ID {
				assert.Equal(t, 5.0, ws.HoursWorked)
			}
		}
	})

	t.Run("zero-hour sessions are excluded", func(t *testing.T) {
		tips, employees, _ := newTipFixture(t)
		ana, _ := employees.Add(ctx, "Ana", "")
		bogdan, _ := employees.Add(ctx, "Bogdan", "")

		calc, err := tips.ComputeAndRecord(ctx, 60, "RON", []SessionInput{
			{EmployeeID: ana.ID, HoursWorked: 6},
			{EmployeeID: bogdan.ID, HoursWorked: 0},
			{EmployeeID: bogdan.ID, HoursWorked: -2},
		})
		require.NoError(t, err)

		require.Len(t, calc.WorkSessions, 1)
		assert.NotContains(t, calc.IndividualTips, bogdan.ID)
		assert.Equal(t, 60.0, calc.IndividualTips[ana.ID])
	})

	t.Run("unknown employees are dropped silently", func(t *testing.T) {
		tips, employees, _ := newTipFixture(t)
		ana, _ := employees.Add(ctx, "Ana", "")

		calc, err := tips.ComputeAndRecord(ctx, 50, "RON", []SessionInput{
			{EmployeeID: ana.ID, HoursWorked: 5},
			{EmployeeID: "gone", HoursWorked: 5},
		})
		require.NoError(t, err)

		require.Len(t, calc.WorkSessions, 1)
		assert.Equal(t, 5.0, calc.TotalHours)
		assert.Equal(t, 50.0, calc.IndividualTips[ana.ID])
	})

	t.Run("all employees unknown fails validation", func(t *testing.T) {
		tips, _, store := newTipFixture(t)

		_, err := tips.ComputeAndRecord(ctx, 50, "RON", []SessionInput{
			{EmployeeID: "gone", HoursWorked: 5},
		})
		assert.ErrorIs(t, err, models.ErrValidation)
		assert.Empty(t, store.calculations, "no record may be written on failure")
	})

	t.Run("only non-positive hours fails validation", func(t *testing.T) {
		tips, employees, store := newTipFixture(t)
		ana, _ := employees.Add(ctx, "Ana", "")

		_, err := tips.ComputeAndRecord(ctx, 50, "RON", []SessionInput{
			{EmployeeID: ana.ID, HoursWorked: 0},
		})
		assert.ErrorIs(t, err, models.ErrValidation)
		assert.Empty(t, store.calculations)
	})

	t.Run("non-positive total fails validation", func(t *testing.T) {
		tips, employees, _ := newTipFixture(t)
		ana, _ := employees.Add(ctx, "Ana", "")

		for _, total := range []float64{0, -5} {
			_, err := tips.ComputeAndRecord(ctx, total, "RON", []SessionInput{
				{EmployeeID: ana.ID, HoursWorked: 5},
			})
			assert.ErrorIs(t, err, models.ErrValidation, "total=%v", total)
		}
	})

	t.Run("store failure surfaces as internal error", func(t *testing.T) {
		tips, employees, store := newTipFixture(t)
		ana, _ := employees.Add(ctx, "Ana", "")
		store.failCreateCalculation = true

		_, err := tips.ComputeAndRecord(ctx, 50, "RON", []SessionInput{
			{EmployeeID: ana.ID, HoursWorked: 5},
		})
		require.Error(t, err)
		assert.NotErrorIs(t, err, models.ErrValidation)
	})

	t.Run("deleting employee afterwards leaves record intact", func(t *testing.T) {
		tips, employees, _ := newTipFixture(t)
		ana, _ := employees.Add(ctx, "Ana", "")

		calc, err := tips.ComputeAndRecord(ctx, 30, "RON", []SessionInput{
			{EmployeeID: ana.ID, HoursWorked: 3},
		})
		require.NoError(t, err)
		require.NoError(t, employees.Delete(ctx, ana.ID))

		got, err := tips.Get(ctx, calc.ID)
		require.NoError(t, err)
		assert.Equal(t, "Ana", got.WorkSessions[0].EmployeeName)
		assert.Equal(t, 30.0, got.IndividualTips[ana.ID])
	})
}

func TestListHistory(t *testing.T) {
	ctx := context.Background()
	tips, employees, store := newTipFixture(t)
	ana, _ := employees.Add(ctx, "Ana", "")

	base := time.Now().UTC()
	for i := 1; i <= 15; i++ {
		_, err := tips.ComputeAndRecord(ctx, float64(i*10), "RON", []SessionInput{
			{EmployeeID: ana.ID, HoursWorked: 1},
		})
		require.NoError(t, err)
		// Spread creation times so ordering is deterministic.
		store.calculations[len(store.calculations)-1].CreatedAt = base.Add(time.Duration(i) * time.Second)
	}

	t.Run("default limit is 10", func(t *testing.T) {
		calcs, err := tips.ListHistory(ctx, 0)
		require.NoError(t, err)
		assert.Len(t, calcs, 10)
	})

	t.Run("newest first", func(t *testing.T) {
		calcs, err := tips.ListHistory(ctx, 3)
		require.NoError(t, err)
		require.Len(t, calcs, 3)
		assert.Equal(t, 150.0, calcs[0].TotalTips)
		assert.Equal(t, 140.0, calcs[1].TotalTips)
		assert.Equal(t, 130.0, calcs[2].TotalTips)
	})

	t.Run("negative limit rejected", func(t *testing.T) {
		_, err := tips.ListHistory(ctx, -1)
		assert.ErrorIs(t, err, models.ErrValidation)
	})

	t.Run("limit above max is capped", func(t *testing.T) {
		svc := NewTipService(store, TipServiceOptions{MaxHistoryLimit: 5})
		calcs, err := svc.ListHistory(ctx, 500)
		require.NoError(t, err)
		assert.Len(t, calcs, 5)
	})
}

func TestStatistics(t *testing.T) {
	ctx := context.Background()

	t.Run("empty history yields zero stats", func(t *testing.T) {
		tips, _, _ := newTipFixture(t)
		stats, err := tips.Statistics(ctx)
		require.NoError(t, err)
		assert.Equal(t, 0, stats.TotalCalculations)
		assert.Nil(t, stats.MostActiveEmployee)
	})

	t.Run("aggregates recent calculations", func(t *testing.T) {
		tips, employees, _ := newTipFixture(t)
		ana, _ := employees.Add(ctx, "Ana", "")
		bogdan, _ := employees.Add(ctx, "Bogdan", "")

		_, err := tips.ComputeAndRecord(ctx, 100, "RON", []SessionInput{
			{EmployeeID: ana.ID, HoursWorked: 4},
			{EmployeeID: bogdan.ID, HoursWorked: 6},
		})
		require.NoError(t, err)
		_, err = tips.ComputeAndRecord(ctx, 50, "RON", []SessionInput{
			{EmployeeID: ana.ID, HoursWorked: 8},
		})
		require.NoError(t, err)

		stats, err := tips.Statistics(ctx)
		require.NoError(t, err)
		assert.Equal(t, 2, stats.TotalCalculations)
		assert.Equal(t, 150.0, stats.TotalTipsDistributed)
		assert.Equal(t, 75.0, stats.AverageTipsPerCalculation)
		require.NotNil(t, stats.MostActiveEmployee)
		assert.Equal(t, "Ana", stats.MostActiveEmployee.Name)
		assert.Equal(t, 12.0, stats.MostActiveEmployee.TotalHours)
	})

	t.Run("tied hours pick the smaller employee ID", func(t *testing.T) {
		tips, employees, _ := newTipFixture(t)
		ana, _ := employees.Add(ctx, "Ana", "")
		bogdan, _ := employees.Add(ctx, "Bogdan", "")

		_, err := tips.ComputeAndRecord(ctx, 100, "RON", []SessionInput{
			{EmployeeID: ana.ID, HoursWorked: 5},
			{EmployeeID: bogdan.ID, HoursWorked: 5},
		})
		require.NoError(t, err)

		wantName := ana.Name
		if bogdan.ID < ana.ID {
			wantName = bogdan.Name
		}
		for i := 0; i < 5; i++ {
			stats, err := tips.Statistics(ctx)
			require.NoError(t, err)
			require.NotNil(t, stats.MostActiveEmployee)
			assert.Equal(t, wantName, stats.MostActiveEmployee.Name)
		}
	})
}
