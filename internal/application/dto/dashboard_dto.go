package dto

import "github.com/shopspring/decimal"

// DashboardStatsDTO respuesta de GET /api/dashboard/stats.
type DashboardStatsDTO struct {
	Sales     SalesStatsDTO   `json:"sales"`
	Stats     CatalogStatsDTO `json:"stats"`
	DateLabel string          `json:"date_label"` // ej: "Marzo 2026"
}

// SalesStatsDTO ventas completadas por ventana. Los porcentajes valen 0 cuando el período
// anterior es 0; *HasPrevious distingue ese caso de una variación real nula.
type SalesStatsDTO struct {
	Today            decimal.Decimal `json:"today"`
	Yesterday        decimal.Decimal `json:"yesterday"`
	TodayChange      decimal.Decimal `json:"today_change"`
	TodayHasPrevious bool            `json:"today_has_previous"`
	ThisMonth        decimal.Decimal `json:"this_month"`
	LastMonth        decimal.Decimal `json:"last_month"`
	MonthChange      decimal.Decimal `json:"month_change"`
	MonthHasPrevious bool            `json:"month_has_previous"`
	TodayOrders      int             `json:"today_orders"`
}

// CatalogStatsDTO conteos del catálogo y del directorio.
type CatalogStatsDTO struct {
	TotalProducts  int             `json:"total_products"`
	TotalContacts  int             `json:"total_contacts"`
	InventoryValue decimal.Decimal `json:"inventory_value"` // suma simple de precios de venta
}
