package validate

import (
	"fmt"
	"sort"
	"strings"
)

// maxIssues — сколько проблемных записей держим в отчёте; остальные только считаются.
const maxIssues = 100

// Issue — невалидная запись выгрузки.
// Pos — номер строки для JSONL и порядковый номер элемента (с 1) для JSON-массива.
type Issue struct {
	Pos  int
	UUID string
	Err  string
}

// Report — итог проверки выгрузки.
type Report struct {
	Valid    int
	Invalid  int
	ByStatus map[string]int
	Issues   []Issue
	// Truncated — в Issues попали не все невалидные записи.
	Truncated bool
}

func newReport() Report {
	return Report{ByStatus: make(map[string]int)}
}

func (r *Report) addValid(status string) {
	r.Valid++
	r.ByStatus[status]++
}

func (r *Report) addInvalid(pos int, uuid string, err error) {
	r.Invalid++
	if len(r.Issues) >= maxIssues {
		r.Truncated = true
		return
	}
	r.Issues = append(r.Issues, Issue{Pos: pos, UUID: uuid, Err: err.Error()})
}

// Summary — короткий итог: "N valid / M invalid".
func (r Report) Summary() string {
	return fmt.Sprintf("%d valid / %d invalid", r.Valid, r.Invalid)
}

// StatusLine — разбивка валидных записей по статусам в стабильном порядке.
func (r Report) StatusLine() string {
	if len(r.ByStatus) == 0 {
		return ""
	}
	keys := make([]string, 0, len(r.ByStatus))
	for k := range r.ByStatus {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s=%d", k, r.ByStatus[k]))
	}
	return strings.Join(parts, " ")
}
