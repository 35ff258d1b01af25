package domain

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// Category категория услуг салона
type Category string

const (
	CategoryHair   Category = "Cabello"
	CategoryNails  Category = "Uñas"
	CategoryFacial Category = "Facial"
)

// Categories все категории в порядке отображения
var Categories = []Category{CategoryHair, CategoryNails, CategoryFacial}

// ParseCategory конвертирует строку в Category с валидацией
func ParseCategory(s string) (Category, error) {
	c := Category(s)
	if err := c.Validate(); err != nil {
		return "", err
	}
	return c, nil
}

// Validate проверяет, что категория известна
func (c Category) Validate() error {
	for _, known := range Categories {
		if c == known {
			return nil
		}
	}
	return fmt.Errorf("%w: %q", ErrInvalidCategory, string(c))
}

// Service услуга из каталога. Неизменяема после загрузки.
type Service struct {
	ID              int64
	Name            string
	DurationMinutes int
	Price           int64
	Category        Category
}

// Validate проверяет инварианты услуги
func (s *Service) Validate() error {
	if strings.TrimSpace(s.Name) == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidService)
	}
	if utf8.RuneCountInString(s.Name) > MaxNameLength {
		return fmt.Errorf("%w: name longer than %d characters", ErrInvalidService, MaxNameLength)
	}
	if s.DurationMinutes < MinServiceDurationMinutes || s.DurationMinutes > MaxServiceDurationMinutes {
		return fmt.Errorf("%w: duration %d out of range", ErrInvalidService, s.DurationMinutes)
	}
	if s.Price < 0 {
		return fmt.Errorf("%w: price must be non-negative", ErrInvalidService)
	}
	if err := s.Category.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidService, err)
	}
	return nil
}

// Worker мастер салона. Schedule только для отображения и не проверяется при бронировании.
type Worker struct {
	ID        int64
	Name      string
	Specialty Category
	Schedule  string // "9:00-17:00"
}

// Validate проверяет инварианты мастера
func (w *Worker) Validate() error {
	if strings.TrimSpace(w.Name) == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidWorker)
	}
	if utf8.RuneCountInString(w.Name) > MaxNameLength {
		return fmt.Errorf("%w: name longer than %d characters", ErrInvalidWorker, MaxNameLength)
	}
	if err := w.Specialty.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidWorker, err)
	}
	return nil
}

// CanPerform возвращает true, если специализация мастера совпадает с категорией услуги
func (w *Worker) CanPerform(service *Service) bool {
	return service != nil && w.Specialty == service.Category
}

// Initials инициалы мастера для аватара ("Ana García" -> "AG")
func (w *Worker) Initials() string {
	var b strings.Builder
	for _, part := range strings.Fields(w.Name) {
		for _, r := range part {
			b.WriteRune(r)
			break
		}
	}
	return strings.ToUpper(b.String())
}
