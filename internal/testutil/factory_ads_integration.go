//go:build integration

package testutil

import (
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Gunvolt24/adbridge/internal/domain"
)

func randHex(n int) string {
	b := make([]byte, n)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}

func UniqSuffix() string { return randHex(6) }

// NewUUID — случайный UUID v4 в каноническом виде.
func NewUUID() string {
	b := make([]byte, 16)
	_, _ = rand.Read(b)
	b[6] = (b[6] & 0x0f) | 0x40
	b[8] = (b[8] & 0x3f) | 0x80
	return fmt.Sprintf("%x-%x-%x-%x-%x", b[0:4], b[4:6], b[6:8], b[8:10], b[10:16])
}

// Мини-генератор валидного объявления
func MakeAd(opts ...func(*domain.Ad)) domain.Ad {
	now := time.Now().UTC().Truncate(time.Second)
	published := now.Add(-time.Hour)
	expires := now.Add(30 * 24 * time.Hour)

	ad := domain.Ad{
		UUID:         NewUUID(),
		AdNumber:     "adnr-" + UniqSuffix(),
		Title:        "Backend developer",
		Status:       domain.StatusActive,
		Source:       "IMPORTAPI",
		Medium:       "itest",
		Reference:    "ref-" + UniqSuffix(),
		BusinessName: "Acme AS",
		Employer:     &domain.Employer{Name: "Acme AS", Orgnr: "123456789"},
		Published:    &published,
		Expires:      &expires,
		Created:      &published,
		Updated:      now,
	}

	for _, fn := range opts {
		fn(&ad)
	}
	return ad
}

// MakeAdJSON — объявление, сериализованное в payload сообщения.
func MakeAdJSON(opts ...func(*domain.Ad)) (domain.Ad, []byte) {
	ad := MakeAd(opts...)
	raw, err := json.Marshal(ad)
	if err != nil {
		panic(err)
	}
	ad.Raw = raw
	return ad, raw
}

func WithUUID(uuid string) func(*domain.Ad) {
	return func(a *domain.Ad) { a.UUID = uuid }
}

func WithStatus(status string) func(*domain.Ad) {
	return func(a *domain.Ad) { a.Status = status }
}

func WithUpdated(t time.Time) func(*domain.Ad) {
	return func(a *domain.Ad) { a.Updated = t.UTC().Truncate(time.Microsecond) }
}
