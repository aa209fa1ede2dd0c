// Package analytics contiene el resumen del dashboard: ventas completadas por ventana
// de tiempo y conteos del catálogo.
package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/jhoicas/Tienda-api/internal/application/dto"
	"github.com/jhoicas/Tienda-api/internal/domain/repository"
)

var hundred = decimal.NewFromInt(100)

// DashboardUseCase genera el resumen de hoy, ayer, el mes en curso y el mes anterior.
//
// Las ventanas son semiabiertas [inicio, fin) en la zona configurada y sólo cuentan
// ventas completadas.
type DashboardUseCase struct {
	sales    repository.SaleRepository
	products repository.ProductRepository
	contacts repository.ContactRepository
	location *time.Location
	now      func() time.Time
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(
	sales repository.SaleRepository,
	products repository.ProductRepository,
	contacts repository.ContactRepository,
	loc *time.Location,
) *DashboardUseCase {
	if loc == nil {
		loc = time.Local
	}
	return &DashboardUseCase{sales: sales, products: products, contacts: contacts, location: loc, now: time.Now}
}

// WithClock reemplaza el reloj (tests).
func (uc *DashboardUseCase) WithClock(now func() time.Time) *DashboardUseCase {
	uc.now = now
	return uc
}

// Windows rangos usados por el dashboard.
type Windows struct {
	TodayStart     time.Time
	TomorrowStart  time.Time
	YesterdayStart time.Time
	MonthStart     time.Time
	NextMonthStart time.Time
	LastMonthStart time.Time
}

// WindowsAt calcula los rangos para el instante now en loc.
func WindowsAt(now time.Time, loc *time.Location) Windows {
	now = now.In(loc)
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc)
	month := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, loc)
	return Windows{
		TodayStart:     today,
		TomorrowStart:  today.AddDate(0, 0, 1),
		YesterdayStart: today.AddDate(0, 0, -1),
		MonthStart:     month,
		NextMonthStart: month.AddDate(0, 1, 0),
		LastMonthStart: month.AddDate(0, -1, 0),
	}
}

// GetStats ejecuta las consultas en paralelo y arma el DTO.
func (uc *DashboardUseCase) GetStats(ctx context.Context) (*dto.DashboardStatsDTO, error) {
	now := uc.now().In(uc.location)
	w := WindowsAt(now, uc.location)

	var (
		today, yesterday, thisMonth, lastMonth decimal.Decimal
		todayOrders                            int
		productCount, contactCount             int
		inventoryValue                         decimal.Decimal
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		today, todayOrders, err = uc.sales.SumCompleted(gctx, w.TodayStart, w.TomorrowStart)
		if err != nil {
			return fmt.Errorf("dashboard: ventas de hoy: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		yesterday, _, err = uc.sales.SumCompleted(gctx, w.YesterdayStart, w.TodayStart)
		if err != nil {
			return fmt.Errorf("dashboard: ventas de ayer: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		thisMonth, _, err = uc.sales.SumCompleted(gctx, w.MonthStart, w.NextMonthStart)
		if err != nil {
			return fmt.Errorf("dashboard: ventas del mes: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		lastMonth, _, err = uc.sales.SumCompleted(gctx, w.LastMonthStart, w.MonthStart)
		if err != nil {
			return fmt.Errorf("dashboard: ventas del mes anterior: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		productCount, inventoryValue, err = uc.products.Summary(gctx)
		if err != nil {
			return fmt.Errorf("dashboard: catálogo: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		contactCount, err = uc.contacts.Count(gctx)
		if err != nil {
			return fmt.Errorf("dashboard: contactos: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &dto.DashboardStatsDTO{
		Sales: dto.SalesStatsDTO{
			Today:            today.Round(2),
			Yesterday:        yesterday.Round(2),
			TodayChange:      PercentChange(today, yesterday),
			TodayHasPrevious: !yesterday.IsZero(),
			ThisMonth:        thisMonth.Round(2),
			LastMonth:        lastMonth.Round(2),
			MonthChange:      PercentChange(thisMonth, lastMonth),
			MonthHasPrevious: !lastMonth.IsZero(),
			TodayOrders:      todayOrders,
		},
		Stats: dto.CatalogStatsDTO{
			TotalProducts:  productCount,
			TotalContacts:  contactCount,
			InventoryValue: inventoryValue.Round(2),
		},
		DateLabel: monthLabel(now),
	}, nil
}

// PercentChange (cur - prev) / prev × 100 redondeado a 2 decimales; 0 si prev es 0.
func PercentChange(cur, prev decimal.Decimal) decimal.Decimal {
	if prev.IsZero() {
		return decimal.Zero
	}
	return cur.Sub(prev).Div(prev).Mul(hundred).Round(2)
}

// monthLabel devuelve una etiqueta legible del mes, ej: "Febrero 2026".
func monthLabel(t time.Time) string {
	months := [...]string{
		"Enero", "Febrero", "Marzo", "Abril", "Mayo", "Junio",
		"Julio", "Agosto", "Septiembre", "Octubre", "Noviembre", "Diciembre",
	}
	return fmt.Sprintf("%s %d", months[t.Month()-1], t.Year())
}
