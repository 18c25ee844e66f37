package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRelativeTime(t *testing.T) {
	now := time.Date(2025, 3, 15, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		createdAt time.Time
		want      string
	}{
		{"thirty seconds ago", now.Add(-30 * time.Second), "agora"},
		{"ninety seconds ago", now.Add(-90 * time.Second), "há 1 minuto"},
		{"five minutes ago", now.Add(-5 * time.Minute), "há 5 minutos"},
		{"ninety minutes ago", now.Add(-90 * time.Minute), "há 1 hora"},
		{"six hours ago", now.Add(-6 * time.Hour), "há 6 horas"},
		{"twenty five hours ago", now.Add(-25 * time.Hour), "há 1 dia"},
		{"two days ago", now.Add(-48 * time.Hour), "há 2 dias"},
		{"ten days ago renders the date", now.Add(-10 * 24 * time.Hour), "05/03/2025"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, RelativeTime(tt.createdAt, now))
		})
	}
}

func TestFormatDateTime(t *testing.T) {
	ts := time.Date(2025, 3, 5, 9, 7, 0, 0, time.UTC)
	assert.Equal(t, "05/03/2025 09:07", FormatDateTime(ts))
}
