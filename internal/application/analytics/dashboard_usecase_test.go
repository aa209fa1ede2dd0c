package analytics_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Tienda-api/internal/application/analytics"
	"github.com/jhoicas/Tienda-api/internal/domain/entity"
	"github.com/jhoicas/Tienda-api/internal/domain/repository"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

type fakeSales struct {
	repository.SaleRepository
	sales []entity.Sale
	err   error
}

func (f *fakeSales) SumCompleted(_ context.Context, from, to time.Time) (decimal.Decimal, int, error) {
	if f.err != nil {
		return decimal.Zero, 0, f.err
	}
	sum, n := decimal.Zero, 0
	for _, s := range f.sales {
		if s.Status == entity.SaleStatusCompleted && !s.Date.Before(from) && s.Date.Before(to) {
			sum = sum.Add(s.NetAmount)
			n++
		}
	}
	return sum, n, nil
}

type fakeProducts struct {
	repository.ProductRepository
}

func (fakeProducts) Summary(context.Context) (int, decimal.Decimal, error) {
	return 3, dec("120.5"), nil
}

type fakeContacts struct {
	repository.ContactRepository
}

func (fakeContacts) Count(context.Context) (int, error) { return 7, nil }

func sale(at time.Time, net, status string) entity.Sale {
	return entity.Sale{Date: at, NetAmount: dec(net), Status: status}
}

func TestWindowsAt_Bordes(t *testing.T) {
	bkk := time.FixedZone("ICT", 7*3600)
	w := analytics.WindowsAt(time.Date(2026, 3, 1, 0, 30, 0, 0, bkk), bkk)

	assert.Equal(t, time.Date(2026, 3, 1, 0, 0, 0, 0, bkk), w.TodayStart)
	assert.Equal(t, time.Date(2026, 2, 28, 0, 0, 0, 0, bkk), w.YesterdayStart)
	assert.Equal(t, time.Date(2026, 4, 1, 0, 0, 0, 0, bkk), w.NextMonthStart)
	assert.Equal(t, time.Date(2026, 2, 1, 0, 0, 0, 0, bkk), w.LastMonthStart)

	w = analytics.WindowsAt(time.Date(2026, 1, 15, 12, 0, 0, 0, bkk), bkk)
	assert.Equal(t, time.Date(2025, 12, 1, 0, 0, 0, 0, bkk), w.LastMonthStart, "enero compara con diciembre del año anterior")
}

func TestPercentChange(t *testing.T) {
	assert.True(t, analytics.PercentChange(dec("150"), dec("100")).Equal(dec("50")))
	assert.True(t, analytics.PercentChange(dec("50"), dec("200")).Equal(dec("-75")))
	assert.True(t, analytics.PercentChange(dec("100"), dec("300")).Equal(dec("-66.67")))
	assert.True(t, analytics.PercentChange(dec("100"), decimal.Zero).IsZero(), "sin período anterior la variación es 0")
}

func TestGetStats_VentanasYConteos(t *testing.T) {
	bkk := time.FixedZone("ICT", 7*3600)
	now := time.Date(2026, 3, 10, 15, 0, 0, 0, bkk)
	repo := &fakeSales{sales: []entity.Sale{
		sale(time.Date(2026, 3, 10, 8, 0, 0, 0, bkk), "300", entity.SaleStatusCompleted),
		sale(time.Date(2026, 3, 10, 9, 0, 0, 0, bkk), "900", entity.SaleStatusDraft),
		sale(time.Date(2026, 3, 10, 0, 0, 0, 0, bkk), "100", entity.SaleStatusCompleted),
		sale(time.Date(2026, 3, 9, 23, 59, 0, 0, bkk), "200", entity.SaleStatusCompleted),
		sale(time.Date(2026, 3, 2, 12, 0, 0, 0, bkk), "600", entity.SaleStatusCompleted),
		sale(time.Date(2026, 2, 20, 12, 0, 0, 0, bkk), "800", entity.SaleStatusCompleted),
		sale(time.Date(2026, 4, 1, 0, 0, 0, 0, bkk), "5000", entity.SaleStatusCompleted),
	}}

	uc := analytics.NewDashboardUseCase(repo, fakeProducts{}, fakeContacts{}, bkk).
		WithClock(func() time.Time { return now })

	stats, err := uc.GetStats(context.Background())
	require.NoError(t, err)

	assert.True(t, stats.Sales.Today.Equal(dec("400")))
	assert.Equal(t, 2, stats.Sales.TodayOrders, "los borradores no cuentan")
	assert.True(t, stats.Sales.Yesterday.Equal(dec("200")))
	assert.True(t, stats.Sales.TodayChange.Equal(dec("100")))
	assert.True(t, stats.Sales.TodayHasPrevious)

	assert.True(t, stats.Sales.ThisMonth.Equal(dec("1200")), "el mes termina al inicio del siguiente")
	assert.True(t, stats.Sales.LastMonth.Equal(dec("800")))
	assert.True(t, stats.Sales.MonthChange.Equal(dec("50")))

	assert.Equal(t, 3, stats.Stats.TotalProducts)
	assert.Equal(t, 7, stats.Stats.TotalContacts)
	assert.True(t, stats.Stats.InventoryValue.Equal(dec("120.5")))
	assert.Equal(t, "Marzo 2026", stats.DateLabel)
}

func TestGetStats_SinPeriodoAnterior(t *testing.T) {
	now := time.Date(2026, 3, 10, 15, 0, 0, 0, time.UTC)
	repo := &fakeSales{sales: []entity.Sale{
		sale(time.Date(2026, 3, 10, 8, 0, 0, 0, time.UTC), "300", entity.SaleStatusCompleted),
	}}
	uc := analytics.NewDashboardUseCase(repo, fakeProducts{}, fakeContacts{}, time.UTC).
		WithClock(func() time.Time { return now })

	stats, err := uc.GetStats(context.Background())
	require.NoError(t, err)
	assert.True(t, stats.Sales.TodayChange.IsZero())
	assert.False(t, stats.Sales.TodayHasPrevious)
	assert.False(t, stats.Sales.MonthHasPrevious)
}

func TestGetStats_ErrorDelRepositorio(t *testing.T) {
	boom := errors.New("sin conexión")
	uc := analytics.NewDashboardUseCase(&fakeSales{err: boom}, fakeProducts{}, fakeContacts{}, time.UTC)
	_, err := uc.GetStats(context.Background())
	assert.ErrorIs(t, err, boom)
}
