package domain

import (
	"encoding/json"
	"time"
)

// Employer — работодатель из объявления.
type Employer struct {
	Name  string `json:"name"`
	Orgnr string `json:"orgnr,omitempty"`
}

// Ad — событие изменения объявления о вакансии (payload сообщения из топика).
type Ad struct {
	UUID         string     `json:"uuid"`
	AdNumber     string     `json:"adnr,omitempty"`
	Title        string     `json:"title"`
	Status       string     `json:"status"`
	Source       string     `json:"source,omitempty"`
	Medium       string     `json:"medium,omitempty"`
	Reference    string     `json:"reference,omitempty"`
	BusinessName string     `json:"businessName,omitempty"`
	Employer     *Employer  `json:"employer,omitempty"`
	Published    *time.Time `json:"published,omitempty"`
	Expires      *time.Time `json:"expires,omitempty"`
	Created      *time.Time `json:"created,omitempty"`
	Updated      time.Time  `json:"updated"`

	// Raw — исходный JSON; пишется в хранилище как есть.
	Raw json.RawMessage `json:"-"`
}

// AdHistoryEntry — одна сохранённая строка истории объявления.
type AdHistoryEntry struct {
	Ad
	Position   LogPosition `json:"position"`
	InsertedAt time.Time   `json:"inserted_at"`
}

// Статусы объявлений.
const (
	StatusActive   = "ACTIVE"
	StatusInactive = "INACTIVE"
	StatusStopped  = "STOPPED"
	StatusDeleted  = "DELETED"
	StatusRejected = "REJECTED"
)

// KnownStatuses — допустимые значения поля status.
var KnownStatuses = map[string]struct{}{
	StatusActive:   {},
	StatusInactive: {},
	StatusStopped:  {},
	StatusDeleted:  {},
	StatusRejected: {},
}
