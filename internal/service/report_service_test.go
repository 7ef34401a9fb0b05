package service

import (
	"testing"
	"time"

	"space-admin-be/internal/dto"
	"space-admin-be/internal/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestReportRange_DefaultsToLast30Days(t *testing.T) {
	from, to, err := reportRange(&dto.ReportRangeRequest{})

	assert.NoError(t, err)
	assert.WithinDuration(t, time.Now(), to, time.Minute)
	assert.WithinDuration(t, time.Now().AddDate(0, 0, -30), from, time.Minute)
}

func TestReportRange_InclusiveOfEndDay(t *testing.T) {
	from, to, err := reportRange(&dto.ReportRangeRequest{FromDate: "2026-01-01", ToDate: "2026-01-31"})

	assert.NoError(t, err)
	assert.Equal(t, time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), from)
	assert.Equal(t, time.Date(2026, 1, 31, 23, 59, 59, 0, time.UTC), to)
}

func TestReportRange_RejectsInvertedAndMalformed(t *testing.T) {
	cases := []dto.ReportRangeRequest{
		{FromDate: "2026-02-01", ToDate: "2026-01-01"},
		{FromDate: "not-a-date", ToDate: "2026-01-01"},
		{FromDate: "2026-01-01", ToDate: ""},
	}
	for _, req := range cases {
		_, _, err := reportRange(&req)
		assert.ErrorIs(t, err, ErrInvalidDateRange)
	}
}

func TestParseRange_RequiresBothBounds(t *testing.T) {
	_, _, ok := parseRange("2026-01-01", "")
	assert.False(t, ok)

	from, to, ok := parseRange("2026-01-01", "2026-01-02")
	assert.True(t, ok)
	assert.Equal(t, time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), from)
	assert.Equal(t, time.Date(2026, 1, 2, 23, 59, 59, 0, time.UTC), to)
}

func TestToFeeSettingsResponse_FlagsDefaults(t *testing.T) {
	def := toFeeSettingsResponse(&entity.FeeConfig{ServiceRate: 0.12})
	assert.True(t, def.IsDefault)

	saved := toFeeSettingsResponse(&entity.FeeConfig{Id: uuid.New(), ServiceRate: 0.10})
	assert.False(t, saved.IsDefault)
}
