package repository

import (
	"errors"

	"gorm.io/gorm"
)

// columnRef - ссылка на удаляемую строку из другой таблицы
type columnRef struct {
	Table  string
	Column string
}

// clearRefs обнуляет внешние ключи, указывающие на id. Так удаление справочной
// записи сохраняет зависимые строки на любом диалекте
func clearRefs(tx *gorm.DB, refs []columnRef, id int64) error {
	for _, ref := range refs {
		err := tx.Table(ref.Table).
			Where(ref.Column+" = ?", id).
			Update(ref.Column, gorm.Expr("NULL")).Error
		if err != nil {
			return err
		}
	}
	return nil
}

// dropLinks удаляет строки связующих таблиц many-to-many
func dropLinks(tx *gorm.DB, refs []columnRef, id int64) error {
	for _, ref := range refs {
		if err := tx.Exec("DELETE FROM "+ref.Table+" WHERE "+ref.Column+" = ?", id).Error; err != nil {
			return err
		}
	}
	return nil
}

// notFound переводит gorm.ErrRecordNotFound в доменную ошибку
func notFound(err, domainErr error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domainErr
	}
	return err
}

// duplicate переводит нарушение уникальности в доменную ошибку
func duplicate(err, domainErr error) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return domainErr
	}
	return err
}

// replaceLinks заменяет набор связей ownerID в связующей таблице на ids
func replaceLinks(tx *gorm.DB, table, ownerColumn string, ownerID int64, otherColumn string, ids []int64) error {
	if err := tx.Exec("DELETE FROM "+table+" WHERE "+ownerColumn+" = ?", ownerID).Error; err != nil {
		return err
	}

	seen := make(map[int64]bool, len(ids))
	rows := make([]map[string]any, 0, len(ids))
	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true
		rows = append(rows, map[string]any{ownerColumn: ownerID, otherColumn: id})
	}
	if len(rows) == 0 {
		return nil
	}
	return tx.Table(table).Create(&rows).Error
}
