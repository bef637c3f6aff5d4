package validate

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/Gunvolt24/adbridge/internal/domain"
	"github.com/Gunvolt24/adbridge/internal/ports"
)

// Проверка, что AdValidator удовлетворяет интерфейсу AdValidator.
var _ ports.AdValidator = (*AdValidator)(nil)

// ErrInvalidAd — базовая (sentinel error) ошибка валидации.
var ErrInvalidAd = errors.New("ad validation failed")

var minDate = time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)

// AdValidator — валидация события объявления.
type AdValidator struct{}

// NewAdValidator — конструктор AdValidator.
// Validate возвращает ErrInvalidAd (с обёрнутой причиной) при любой проблеме.
func NewAdValidator() *AdValidator { return &AdValidator{} }

// Validate — проверяет корректность полей объявления.
func (v *AdValidator) Validate(_ context.Context, ad *domain.Ad) error {
	if err := v.validateCore(ad); err != nil {
		return err
	}
	if err := v.validateDates(ad); err != nil {
		return err
	}
	return v.validateEmployer(ad.Employer)
}

func (v *AdValidator) validateCore(ad *domain.Ad) error {
	if ad == nil {
		return fmt.Errorf("%w: объявление не может быть nil", ErrInvalidAd)
	}
	if ad.UUID == "" {
		return fmt.Errorf("%w: uuid обязателен", ErrInvalidAd)
	}
	if _, err := uuid.Parse(ad.UUID); err != nil {
		return fmt.Errorf("%w: uuid некорректен", ErrInvalidAd)
	}
	if ad.Status == "" {
		return fmt.Errorf("%w: status обязателен", ErrInvalidAd)
	}
	if _, ok := domain.KnownStatuses[ad.Status]; !ok {
		return fmt.Errorf("%w: неизвестный status %q", ErrInvalidAd, ad.Status)
	}
	// у удалённого объявления заголовок может не приходить
	if ad.Title == "" && ad.Status != domain.StatusDeleted {
		return fmt.Errorf("%w: title обязателен", ErrInvalidAd)
	}
	return nil
}

// Валидация дат
func (v *AdValidator) validateDates(ad *domain.Ad) error {
	if ad.Updated.IsZero() || ad.Updated.Before(minDate) {
		return fmt.Errorf("%w: updated некорректен", ErrInvalidAd)
	}
	if ad.Published != nil && ad.Expires != nil && ad.Expires.Before(*ad.Published) {
		return fmt.Errorf("%w: expires раньше published", ErrInvalidAd)
	}
	return nil
}

// Валидация работодателя: orgnr — 9 цифр, если указан
func (v *AdValidator) validateEmployer(e *domain.Employer) error {
	if e == nil || e.Orgnr == "" {
		return nil
	}
	if len(e.Orgnr) != 9 {
		return fmt.Errorf("%w: employer.orgnr должен состоять из 9 цифр", ErrInvalidAd)
	}
	for _, r := range e.Orgnr {
		if r < '0' || r > '9' {
			return fmt.Errorf("%w: employer.orgnr должен состоять из 9 цифр", ErrInvalidAd)
		}
	}
	return nil
}
