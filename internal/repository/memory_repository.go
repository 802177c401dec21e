package repository

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"route-spreadsheet-go/internal/model"
)

// memoryRepository хранит таблицы в памяти процесса.
// Используется, когда база данных отключена.
type memoryRepository struct {
	mu     sync.RWMutex
	sheets map[string]*model.Spreadsheet
	seq    map[string]int64
	next   int64
}

// NewMemoryRepository создает хранилище таблиц в памяти
func NewMemoryRepository() SpreadsheetRepository {
	return &memoryRepository{
		sheets: make(map[string]*model.Spreadsheet),
		seq:    make(map[string]int64),
	}
}

func (r *memoryRepository) Save(sheet *model.Spreadsheet) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now()
	stored := clone(sheet)
	if prev, ok := r.sheets[sheet.Name]; ok {
		stored.CreatedAt = prev.CreatedAt
	} else {
		stored.CreatedAt = now
	}
	stored.UpdatedAt = now
	for i := range stored.Rows {
		stored.Rows[i].ID = uint(i + 1)
		stored.Rows[i].SpreadsheetID = stored.ID
	}

	r.next++
	r.sheets[sheet.Name] = stored
	r.seq[sheet.Name] = r.next
	return nil
}

func (r *memoryRepository) GetByName(name string) (*model.Spreadsheet, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	sheet, ok := r.sheets[name]
	if !ok {
		return nil, fmt.Errorf("spreadsheet %q: %w", name, ErrNotFound)
	}
	return clone(sheet), nil
}

// List возвращает таблицы от последней сохраненной к первой
func (r *memoryRepository) List(page, pageSize int) ([]*model.Spreadsheet, int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.sheets))
	for name := range r.sheets {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool { return r.seq[names[i]] > r.seq[names[j]] })

	total := int64(len(names))
	offset := (page - 1) * pageSize
	if offset < 0 || offset >= len(names) {
		return []*model.Spreadsheet{}, total, nil
	}
	end := offset + pageSize
	if end > len(names) {
		end = len(names)
	}

	sheets := make([]*model.Spreadsheet, 0, end-offset)
	for _, name := range names[offset:end] {
		summary := *r.sheets[name]
		summary.Rows = nil
		sheets = append(sheets, &summary)
	}
	return sheets, total, nil
}

func (r *memoryRepository) Delete(name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.sheets[name]; !ok {
		return fmt.Errorf("spreadsheet %q: %w", name, ErrNotFound)
	}
	delete(r.sheets, name)
	delete(r.seq, name)
	return nil
}

func clone(sheet *model.Spreadsheet) *model.Spreadsheet {
	out := *sheet
	out.Rows = append([]model.SpreadsheetRow(nil), sheet.Rows...)
	return &out
}
