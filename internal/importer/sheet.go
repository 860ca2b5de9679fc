package importer

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
)

// Row - строка листа, адресуемая по заголовку столбца
type Row map[string]string

// Get возвращает значение столбца без пробелов по краям
func (r Row) Get(column string) string {
	return strings.TrimSpace(r[column])
}

// Ptr возвращает nil для пустого значения
func (r Row) Ptr(column string) *string {
	v := r.Get(column)
	if v == "" {
		return nil
	}
	return &v
}

var dateLayouts = []string{
	"2006-01-02",
	"2006/1/2",
	"2006/01/02",
	"2006.1.2",
	"2006-01-02 15:04:05",
	"01-02-06",
	"1/2/06",
}

// Date разбирает дату в одном из распространённых форматов Excel или серийный номер дня.
// Пустая ячейка даёт nil
func (r Row) Date(column string) (*string, error) {
	v := r.Get(column)
	if v == "" {
		return nil, nil
	}

	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, v); err == nil {
			s := t.Format("2006-01-02")
			return &s, nil
		}
	}
	if serial, err := strconv.ParseFloat(v, 64); err == nil {
		t, err := excelize.ExcelDateToTime(serial, false)
		if err == nil {
			s := t.Format("2006-01-02")
			return &s, nil
		}
	}
	return nil, fmt.Errorf("column %s: unrecognized date %q", column, v)
}

// ReadSheet читает первый лист книги: первая строка - заголовки, остальные - данные.
// Полностью пустые строки пропускаются
func ReadSheet(r io.Reader) ([]Row, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	rows, err := f.GetRows(f.GetSheetName(0))
	if err != nil {
		return nil, fmt.Errorf("read sheet: %w", err)
	}
	if len(rows) < 2 {
		return nil, nil
	}

	header := make([]string, len(rows[0]))
	for i, h := range rows[0] {
		header[i] = strings.TrimSpace(h)
	}

	result := make([]Row, 0, len(rows)-1)
	for _, cells := range rows[1:] {
		row := make(Row, len(header))
		empty := true
		for i, name := range header {
			if name == "" || i >= len(cells) {
				continue
			}
			row[name] = cells[i]
			if strings.TrimSpace(cells[i]) != "" {
				empty = false
			}
		}
		if !empty {
			result = append(result, row)
		}
	}
	return result, nil
}
