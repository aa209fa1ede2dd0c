package sales_test

import (
	"context"
	"errors"
	"io"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Tienda-api/internal/application/sales"
	"github.com/jhoicas/Tienda-api/internal/domain"
	"github.com/jhoicas/Tienda-api/internal/domain/entity"
	"github.com/jhoicas/Tienda-api/internal/domain/repository"
)

// memSales repositorio de ventas en memoria. RunSale trabaja sobre una copia y sólo
// la confirma si fn no devuelve error.
type memSales struct {
	mu       sync.Mutex
	sales    map[string]*entity.Sale
	failNext error // ReplaceItems devuelve este error una vez
}

func newMemSales() *memSales { return &memSales{sales: map[string]*entity.Sale{}} }

var errItems = errors.New("fallo al insertar líneas")

func cloneSale(s *entity.Sale) *entity.Sale {
	c := *s
	c.Items = append([]entity.SaleItem(nil), s.Items...)
	return &c
}

func (m *memSales) snapshot() map[string]*entity.Sale {
	out := make(map[string]*entity.Sale, len(m.sales))
	for k, v := range m.sales {
		out[k] = cloneSale(v)
	}
	return out
}

func (m *memSales) RunSale(ctx context.Context, fn func(repository.SaleRepository) error) error {
	m.mu.Lock()
	tx := &memSales{sales: m.snapshot(), failNext: m.failNext}
	m.failNext = nil
	m.mu.Unlock()

	if err := fn(tx); err != nil {
		return err
	}
	m.mu.Lock()
	m.sales = tx.sales
	m.mu.Unlock()
	return nil
}

func (m *memSales) Create(_ context.Context, s *entity.Sale) error {
	if s.ID == "" {
		s.ID = uuid.New().String()
	}
	c := cloneSale(s)
	c.Items = nil
	m.sales[s.ID] = c
	return nil
}

func (m *memSales) UpdateHeader(_ context.Context, s *entity.Sale) error {
	cur, ok := m.sales[s.ID]
	if !ok {
		return domain.ErrNotFound
	}
	c := cloneSale(s)
	c.Items = cur.Items
	c.CreatedAt = cur.CreatedAt
	m.sales[s.ID] = c
	return nil
}

func (m *memSales) ReplaceItems(_ context.Context, saleID string, items []entity.SaleItem) error {
	if m.failNext != nil {
		err := m.failNext
		m.failNext = nil
		return err
	}
	s, ok := m.sales[saleID]
	if !ok {
		return domain.ErrNotFound
	}
	s.Items = make([]entity.SaleItem, len(items))
	for i, it := range items {
		it.ID = uuid.New().String()
		it.SaleID = saleID
		s.Items[i] = it
	}
	return nil
}

func (m *memSales) LockStatus(_ context.Context, id string) (string, error) {
	if s, ok := m.sales[id]; ok {
		return s.Status, nil
	}
	return "", nil
}

func (m *memSales) GetByID(_ context.Context, id string) (*entity.Sale, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if s, ok := m.sales[id]; ok {
		return cloneSale(s), nil
	}
	return nil, nil
}

func (m *memSales) List(_ context.Context, status string) ([]*entity.Sale, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*entity.Sale
	for _, s := range m.sales {
		if status == "" || s.Status == status {
			out = append(out, cloneSale(s))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UpdatedAt.After(out[j].UpdatedAt) })
	return out, nil
}

func (m *memSales) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.sales[id]; !ok {
		return domain.ErrNotFound
	}
	delete(m.sales, id)
	return nil
}

func (m *memSales) SumCompleted(_ context.Context, from, to time.Time) (decimal.Decimal, int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	sum, n := decimal.Zero, 0
	for _, s := range m.sales {
		if s.Status == entity.SaleStatusCompleted && !s.Date.Before(from) && s.Date.Before(to) {
			sum = sum.Add(s.NetAmount)
			n++
		}
	}
	return sum, n, nil
}

// memProducts catálogo mínimo para el carrito.
type memProducts struct {
	repository.ProductRepository
	byName map[string]*entity.Product
}

func (m *memProducts) GetByName(_ context.Context, name string) (*entity.Product, error) {
	return m.byName[name], nil
}

// captureRenderer guarda el último ReceiptData recibido.
type captureRenderer struct {
	last sales.ReceiptData
}

func (r *captureRenderer) RenderReceipt(w io.Writer, data sales.ReceiptData) error {
	r.last = data
	_, err := io.WriteString(w, "ok")
	return err
}
