package repository

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"route-spreadsheet-go/internal/model"
)

// ErrNotFound таблица с таким именем не сохранена
var ErrNotFound = errors.New("spreadsheet not found")

// SpreadsheetRepository интерфейс для работы с сохраненными таблицами.
// Save с уже существующим именем заменяет таблицу целиком, последняя запись побеждает.
type SpreadsheetRepository interface {
	Save(sheet *model.Spreadsheet) error
	GetByName(name string) (*model.Spreadsheet, error)
	List(page, pageSize int) ([]*model.Spreadsheet, int64, error)
	Delete(name string) error
}

// spreadsheetRepository реализация SpreadsheetRepository на gorm
type spreadsheetRepository struct {
	db *gorm.DB
}

// NewSpreadsheetRepository создает новый instance SpreadsheetRepository
func NewSpreadsheetRepository(db *gorm.DB) SpreadsheetRepository {
	return &spreadsheetRepository{
		db: db,
	}
}

// Save сохраняет таблицу, заменяя предыдущую с тем же именем
func (r *spreadsheetRepository) Save(sheet *model.Spreadsheet) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		// Удаляем предыдущую версию вместе со строками
		if err := deleteByName(tx, sheet.Name); err != nil && !errors.Is(err, ErrNotFound) {
			return err
		}

		if err := tx.Omit("Rows").Create(sheet).Error; err != nil {
			return fmt.Errorf("failed to create spreadsheet: %w", err)
		}

		for i := range sheet.Rows {
			sheet.Rows[i].ID = 0 // Обнуляем ID для auto-increment
			sheet.Rows[i].SpreadsheetID = sheet.ID
		}
		if len(sheet.Rows) > 0 {
			if err := tx.CreateInBatches(sheet.Rows, 500).Error; err != nil {
				return fmt.Errorf("failed to create spreadsheet rows: %w", err)
			}
		}
		return nil
	})
}

// GetByName получает таблицу по имени вместе со строками
func (r *spreadsheetRepository) GetByName(name string) (*model.Spreadsheet, error) {
	var sheet model.Spreadsheet
	err := r.db.Preload("Rows", func(db *gorm.DB) *gorm.DB {
		return db.Order("position ASC")
	}).Where("name = ?", name).First(&sheet).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("spreadsheet %q: %w", name, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get spreadsheet: %w", err)
	}
	return &sheet, nil
}

// List получает список таблиц с пагинацией, без строк
func (r *spreadsheetRepository) List(page, pageSize int) ([]*model.Spreadsheet, int64, error) {
	var sheets []*model.Spreadsheet
	var total int64

	// Подсчитываем общее количество
	if err := r.db.Model(&model.Spreadsheet{}).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count spreadsheets: %w", err)
	}

	offset := (page - 1) * pageSize
	err := r.db.
		Offset(offset).
		Limit(pageSize).
		Order("updated_at DESC").
		Find(&sheets).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list spreadsheets: %w", err)
	}

	return sheets, total, nil
}

// Delete удаляет таблицу по имени
func (r *spreadsheetRepository) Delete(name string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		return deleteByName(tx, name)
	})
}

func deleteByName(tx *gorm.DB, name string) error {
	var ids []string
	if err := tx.Model(&model.Spreadsheet{}).Where("name = ?", name).Pluck("id", &ids).Error; err != nil {
		return fmt.Errorf("failed to find spreadsheet: %w", err)
	}
	if len(ids) == 0 {
		return fmt.Errorf("spreadsheet %q: %w", name, ErrNotFound)
	}

	// Сначала удаляем строки
	if err := tx.Where("spreadsheet_id IN ?", ids).Delete(&model.SpreadsheetRow{}).Error; err != nil {
		return fmt.Errorf("failed to delete spreadsheet rows: %w", err)
	}
	if err := tx.Where("id IN ?", ids).Delete(&model.Spreadsheet{}).Error; err != nil {
		return fmt.Errorf("failed to delete spreadsheet: %w", err)
	}
	return nil
}
