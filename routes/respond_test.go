package routes

import (
	"net/http/httptest"
	"testing"
)

func TestClampQueryInt(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  int
	}{
		{"в пределах диапазона", "months=10", 10},
		{"ниже минимума", "months=1", 3},
		{"выше максимума", "months=50", 24},
		{"отсутствует", "", 12},
		{"нечисловое значение", "months=abc", 12},
		{"отрицательное значение", "months=-5", 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/api/predictions/admissions?"+tt.query, nil)
			got := clampQueryInt(req, "months", 12, 3, 24)
			if got != tt.want {
				t.Errorf("получено %d, ожидалось %d", got, tt.want)
			}
		})
	}
}
