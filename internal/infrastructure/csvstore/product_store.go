// Package csvstore guarda el catálogo en un archivo CSV plano. Es la alternativa a la
// tabla products para instalaciones sin base de datos.
package csvstore

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Tienda-api/internal/application/catalog"
	"github.com/jhoicas/Tienda-api/internal/domain"
	"github.com/jhoicas/Tienda-api/internal/domain/entity"
	"github.com/jhoicas/Tienda-api/internal/domain/repository"
	"github.com/jhoicas/Tienda-api/internal/infrastructure/spreadsheet"
)

var (
	_ repository.ProductRepository = (*ProductStore)(nil)
	_ catalog.TxRunner             = (*ProductStore)(nil)
)

// ProductStore catálogo sobre un archivo. Cada operación lee el archivo completo y,
// si hubo cambios, lo reescribe de forma atómica (temporal + rename). Un mutex
// serializa las operaciones del proceso.
type ProductStore struct {
	path string
	mu   sync.Mutex
}

// NewProductStore crea el store; el archivo se crea en la primera escritura.
func NewProductStore(path string) *ProductStore {
	return &ProductStore{path: path}
}

func fileHeader() []string {
	h := []string{spreadsheet.ColID, spreadsheet.ColProductName, spreadsheet.ColBarcode, spreadsheet.ColSalePrice}
	for i := 0; i < entity.MaxSuppliers; i++ {
		h = append(h, spreadsheet.StoreNameCol(i), spreadsheet.StorePriceCol(i))
	}
	return append(h, spreadsheet.ColCreatedAt, spreadsheet.ColUpdatedAt)
}

// storeErr marca como no disponible un sistema de archivos de sólo lectura o sin permisos.
func storeErr(op string, err error) error {
	if errors.Is(err, syscall.EROFS) || errors.Is(err, fs.ErrPermission) {
		return fmt.Errorf("%s: %w: %w", op, domain.ErrStoreUnavailable, err)
	}
	return fmt.Errorf("%s: %w", op, err)
}

func (s *ProductStore) load() ([]*entity.Product, error) {
	f, err := os.Open(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, storeErr("abrir catálogo", err)
	}
	defer f.Close()
	if fi, err := f.Stat(); err == nil && fi.Size() == 0 {
		return nil, nil
	}

	recs, err := spreadsheet.ReadCSV(f)
	if err != nil {
		return nil, fmt.Errorf("leer catálogo %s: %w", s.path, err)
	}
	list := make([]*entity.Product, 0, len(recs))
	for _, rec := range recs {
		p, err := rec.ToProduct()
		if err != nil {
			return nil, fmt.Errorf("catálogo %s: %w", s.path, err)
		}
		if p.ID == "" {
			p.ID = uuid.New().String()
		}
		p.CreatedAt = parseTime(rec.Get(spreadsheet.ColCreatedAt))
		p.UpdatedAt = parseTime(rec.Get(spreadsheet.ColUpdatedAt))
		list = append(list, p)
	}
	return list, nil
}

func parseTime(v string) time.Time {
	t, err := time.Parse(time.RFC3339Nano, v)
	if err != nil {
		return time.Time{}
	}
	return t
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339Nano)
}

func (s *ProductStore) save(list []*entity.Product) error {
	rows := make([][]string, len(list))
	for i, p := range list {
		row := []string{p.ID, p.Name, p.Barcode, p.SalePrice.String()}
		for _, sp := range p.Suppliers {
			row = append(row, sp.Name, sp.Price.String())
		}
		rows[i] = append(row, formatTime(p.CreatedAt), formatTime(p.UpdatedAt))
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return storeErr("crear directorio", err)
	}
	tmp, err := os.CreateTemp(dir, ".products-*.csv")
	if err != nil {
		return storeErr("crear temporal", err)
	}
	defer os.Remove(tmp.Name())

	if err := spreadsheet.WriteRows(tmp, fileHeader(), rows); err != nil {
		tmp.Close()
		return storeErr("escribir catálogo", err)
	}
	if err := tmp.Close(); err != nil {
		return storeErr("cerrar temporal", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return storeErr("reemplazar catálogo", err)
	}
	return nil
}

// do carga el archivo, ejecuta fn sobre la copia en memoria y guarda si fn modificó algo.
func (s *ProductStore) do(ctx context.Context, fn func(m *memRepo) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	list, err := s.load()
	if err != nil {
		return err
	}
	m := &memRepo{list: list}
	if err := fn(m); err != nil {
		return err
	}
	if !m.dirty {
		return nil
	}
	return s.save(m.list)
}

// RunCatalog ejecuta fn con el archivo bloqueado; se escribe una sola vez al final
// y sólo si fn no devolvió error.
func (s *ProductStore) RunCatalog(ctx context.Context, fn func(products repository.ProductRepository) error) error {
	return s.do(ctx, func(m *memRepo) error { return fn(m) })
}

func (s *ProductStore) List(ctx context.Context, search string) (out []*entity.Product, err error) {
	err = s.do(ctx, func(m *memRepo) error {
		out, err = m.List(ctx, search)
		return err
	})
	return out, err
}

func (s *ProductStore) GetByName(ctx context.Context, name string) (out *entity.Product, err error) {
	err = s.do(ctx, func(m *memRepo) error {
		out, err = m.GetByName(ctx, name)
		return err
	})
	return out, err
}

func (s *ProductStore) Create(ctx context.Context, product *entity.Product) error {
	return s.do(ctx, func(m *memRepo) error { return m.Create(ctx, product) })
}

func (s *ProductStore) UpdateByName(ctx context.Context, oldName string, product *entity.Product) error {
	return s.do(ctx, func(m *memRepo) error { return m.UpdateByName(ctx, oldName, product) })
}

func (s *ProductStore) DeleteByName(ctx context.Context, name string) error {
	return s.do(ctx, func(m *memRepo) error { return m.DeleteByName(ctx, name) })
}

func (s *ProductStore) Names(ctx context.Context) (out map[string]struct{}, err error) {
	err = s.do(ctx, func(m *memRepo) error {
		out, err = m.Names(ctx)
		return err
	})
	return out, err
}

func (s *ProductStore) BulkCreate(ctx context.Context, products []*entity.Product) (n int, err error) {
	err = s.do(ctx, func(m *memRepo) error {
		n, err = m.BulkCreate(ctx, products)
		return err
	})
	return n, err
}

func (s *ProductStore) Summary(ctx context.Context) (count int, value decimal.Decimal, err error) {
	err = s.do(ctx, func(m *memRepo) error {
		count, value, err = m.Summary(ctx)
		return err
	})
	return count, value, err
}

// memRepo ProductRepository sobre la lista cargada; marca dirty al modificarla.
type memRepo struct {
	list  []*entity.Product
	dirty bool
}

func clone(p *entity.Product) *entity.Product {
	c := *p
	return &c
}

func (m *memRepo) index(name string) int {
	for i, p := range m.list {
		if p.Name == name {
			return i
		}
	}
	return -1
}

func (m *memRepo) List(_ context.Context, search string) ([]*entity.Product, error) {
	out := make([]*entity.Product, 0, len(m.list))
	for _, p := range m.list {
		if p.Matches(search) {
			out = append(out, clone(p))
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].UpdatedAt.Equal(out[j].UpdatedAt) {
			return out[i].UpdatedAt.After(out[j].UpdatedAt)
		}
		return out[i].Name < out[j].Name
	})
	return out, nil
}

func (m *memRepo) GetByName(_ context.Context, name string) (*entity.Product, error) {
	if i := m.index(name); i >= 0 {
		return clone(m.list[i]), nil
	}
	return nil, nil
}

func stamp(p *entity.Product) {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	now := time.Now()
	if p.CreatedAt.IsZero() {
		p.CreatedAt = now
	}
	if p.UpdatedAt.IsZero() {
		p.UpdatedAt = now
	}
}

func (m *memRepo) Create(_ context.Context, product *entity.Product) error {
	if m.index(product.Name) >= 0 {
		return domain.ErrDuplicate
	}
	stamp(product)
	m.list = append(m.list, clone(product))
	m.dirty = true
	return nil
}

func (m *memRepo) UpdateByName(_ context.Context, oldName string, product *entity.Product) error {
	i := m.index(oldName)
	if i < 0 {
		return domain.ErrNotFound
	}
	if product.Name != oldName && m.index(product.Name) >= 0 {
		return domain.ErrDuplicate
	}
	product.ID = m.list[i].ID
	product.CreatedAt = m.list[i].CreatedAt
	if product.UpdatedAt.IsZero() {
		product.UpdatedAt = time.Now()
	}
	m.list[i] = clone(product)
	m.dirty = true
	return nil
}

func (m *memRepo) DeleteByName(_ context.Context, name string) error {
	i := m.index(name)
	if i < 0 {
		return domain.ErrNotFound
	}
	m.list = append(m.list[:i], m.list[i+1:]...)
	m.dirty = true
	return nil
}

func (m *memRepo) Names(context.Context) (map[string]struct{}, error) {
	set := make(map[string]struct{}, len(m.list))
	for _, p := range m.list {
		set[p.Name] = struct{}{}
	}
	return set, nil
}

func (m *memRepo) BulkCreate(ctx context.Context, products []*entity.Product) (int, error) {
	seen, _ := m.Names(ctx)
	for _, p := range products {
		if _, ok := seen[p.Name]; ok {
			return 0, domain.ErrDuplicate
		}
		seen[p.Name] = struct{}{}
	}
	for _, p := range products {
		stamp(p)
		m.list = append(m.list, clone(p))
	}
	if len(products) > 0 {
		m.dirty = true
	}
	return len(products), nil
}

func (m *memRepo) Summary(context.Context) (int, decimal.Decimal, error) {
	total := decimal.Zero
	for _, p := range m.list {
		total = total.Add(p.SalePrice)
	}
	return len(m.list), total, nil
}
