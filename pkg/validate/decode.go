package validate

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/Gunvolt24/adbridge/internal/domain"
	"github.com/Gunvolt24/adbridge/internal/ports"
)

// DecodeAd — разбор payload события.
// Неизвестные поля допустимы (источник добавляет поля без предупреждения), исходный JSON
// сохраняется в Raw. Данные после объекта — ошибка.
func DecodeAd(raw []byte) (domain.Ad, error) {
	var ad domain.Ad
	dec := json.NewDecoder(bytes.NewReader(raw))
	if err := dec.Decode(&ad); err != nil {
		return domain.Ad{}, fmt.Errorf("invalid json: %w", err)
	}
	if err := dec.Decode(new(struct{})); err != io.EOF {
		return domain.Ad{}, fmt.Errorf("invalid json: trailing data")
	}
	ad.Raw = json.RawMessage(bytes.TrimSpace(raw))
	return ad, nil
}

// ValidateAdFromJSON — разбор и валидация объявления из JSON.
func ValidateAdFromJSON(ctx context.Context, validator ports.AdValidator, raw []byte) (*domain.Ad, error) {
	ad, err := DecodeAd(raw)
	if err != nil {
		return nil, err
	}
	if err := validator.Validate(ctx, &ad); err != nil {
		return nil, err
	}
	return &ad, nil
}
