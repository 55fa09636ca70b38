package bookings

import (
	"sort"
	"strings"

	"github.com/m04kA/SMC-AvailabilityService/internal/service/bookings/models"
)

// matchesFilters проверяет строку по фильтрам.
// Текстовые фильтры сравниваются с отображаемыми значениями точно.
func matchesFilters(row *models.BookingRow, f models.ListFilters) bool {
	if f.Location != "" && row.Location != f.Location {
		return false
	}
	if f.Item != "" && row.Item != f.Item {
		return false
	}
	if f.User != "" && row.User != f.User {
		return false
	}
	if f.Status != "" && row.Status != f.Status {
		return false
	}
	if f.StartDate != nil && f.StartDate.After(row.EndDate) {
		return false
	}
	if f.EndDate != nil && f.EndDate.Before(row.StartDate) {
		return false
	}
	return true
}

func collectFilterOptions(rows []models.BookingRow) models.FilterOptions {
	users := make([]string, 0, len(rows))
	items := make([]string, 0, len(rows))
	locations := make([]string, 0, len(rows))
	statuses := make([]string, 0, len(rows))
	for i := range rows {
		users = append(users, rows[i].User)
		items = append(items, rows[i].Item)
		locations = append(locations, rows[i].Location)
		statuses = append(statuses, rows[i].Status)
	}
	return models.FilterOptions{
		User:     uniqueSorted(users),
		Item:     uniqueSorted(items),
		Location: uniqueSorted(locations),
		Status:   uniqueSorted(statuses),
	}
}

func uniqueSorted(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	result := make([]string, 0, len(values))
	for _, v := range values {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		result = append(result, v)
	}
	sort.Strings(result)
	return result
}

// search оставляет строки, у которых хотя бы одно поле содержит term без учета регистра
func search(rows []models.BookingRow, term string) []models.BookingRow {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return rows
	}

	found := rows[:0]
	for _, row := range rows {
		for _, field := range row.SearchFields() {
			if strings.Contains(strings.ToLower(field), term) {
				found = append(found, row)
				break
			}
		}
	}
	return found
}

// sortRows сортирует строки по полю; строки сравниваются без учета регистра
func sortRows(rows []models.BookingRow, field, order string) {
	compare := func(a, b *models.BookingRow) int {
		switch field {
		case models.SortStartDate:
			return a.StartDate.Compare(b.StartDate)
		case models.SortEndDate:
			return a.EndDate.Compare(b.EndDate)
		case models.SortBookingDate:
			return a.CreatedAt.Compare(b.CreatedAt)
		case models.SortItem:
			return strings.Compare(strings.ToLower(a.Item), strings.ToLower(b.Item))
		case models.SortLocation:
			return strings.Compare(strings.ToLower(a.Location), strings.ToLower(b.Location))
		case models.SortUser:
			return strings.Compare(strings.ToLower(a.User), strings.ToLower(b.User))
		case models.SortStatus:
			return strings.Compare(strings.ToLower(a.Status), strings.ToLower(b.Status))
		default:
			return 0
		}
	}

	sort.SliceStable(rows, func(i, j int) bool {
		c := compare(&rows[i], &rows[j])
		if order == models.OrderDesc {
			return c > 0
		}
		return c < 0
	})
}

func totalPages(total, perPage int) int {
	if perPage <= 0 {
		return 0
	}
	return (total + perPage - 1) / perPage
}

func paginate(rows []models.BookingRow, page, perPage int) []models.BookingRow {
	offset := (page - 1) * perPage
	if offset >= len(rows) {
		return []models.BookingRow{}
	}
	end := offset + perPage
	if end > len(rows) {
		end = len(rows)
	}
	return rows[offset:end]
}
