package types

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Date
		wantErr bool
	}{
		{name: "canonical", input: "2025-01-10", want: NewDate(2025, time.January, 10)},
		{name: "legacy app format", input: "10-01-2025", want: NewDate(2025, time.January, 10)},
		{name: "leap day", input: "2024-02-29", want: NewDate(2024, time.February, 29)},
		{name: "empty", input: "", wantErr: true},
		{name: "garbage", input: "tomorrow", wantErr: true},
		{name: "non existing day", input: "2025-02-30", wantErr: true},
		{name: "with time", input: "2025-01-10T10:00:00Z", wantErr: true},
		{name: "year zero", input: "0000-01-10", wantErr: true},
		{name: "year zero legacy", input: "10-01-0000", wantErr: true},
		{name: "first year", input: "0001-01-01", want: NewDate(1, time.January, 1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseDate(tt.input)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrInvalidDate)
				assert.True(t, got.IsZero())
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDate_Compare(t *testing.T) {
	a := MustParseDate("2025-01-10")
	b := MustParseDate("2025-01-15")

	assert.True(t, a.Before(b))
	assert.False(t, b.Before(a))
	assert.True(t, b.After(a))
	assert.True(t, a.Equal(MustParseDate("10-01-2025")))
	assert.Equal(t, 0, a.Compare(a))
	assert.Equal(t, -1, MustParseDate("2024-12-31").Compare(a))
	assert.Equal(t, 1, MustParseDate("2025-02-01").Compare(a))
}

func TestDate_AddDays(t *testing.T) {
	d := MustParseDate("2024-12-30")

	assert.Equal(t, MustParseDate("2025-01-02"), d.AddDays(3))
	assert.Equal(t, MustParseDate("2024-12-29"), d.AddDays(-1))
	assert.Equal(t, 3, d.DaysUntil(d.AddDays(3)))
	assert.Equal(t, -1, d.DaysUntil(d.AddDays(-1)))
}

func TestDate_DaysUntil_WideSpan(t *testing.T) {
	from := MustParseDate("0001-01-01")
	to := MustParseDate("9999-12-31")

	// 1 января 1 года .. 31 декабря 9999 года
	assert.Equal(t, 3652058, from.DaysUntil(to))
	assert.Equal(t, -3652058, to.DaysUntil(from))
	assert.Equal(t, to, from.AddDays(from.DaysUntil(to)))
}

func TestDateOf_UsesLocationOfTime(t *testing.T) {
	loc := time.FixedZone("UTC+10", 10*60*60)
	// 2025-01-10 20:00 UTC это уже 11 января в UTC+10
	instant := time.Date(2025, time.January, 10, 20, 0, 0, 0, time.UTC)

	assert.Equal(t, MustParseDate("2025-01-10"), DateOf(instant))
	assert.Equal(t, MustParseDate("2025-01-11"), DateOf(instant.In(loc)))
}

func TestDate_JSON(t *testing.T) {
	type payload struct {
		From Date `json:"from"`
	}

	data, err := json.Marshal(payload{From: MustParseDate("2025-01-10")})
	require.NoError(t, err)
	assert.JSONEq(t, `{"from":"2025-01-10"}`, string(data))

	var p payload
	require.NoError(t, json.Unmarshal([]byte(`{"from":"15-01-2025"}`), &p))
	assert.Equal(t, MustParseDate("2025-01-15"), p.From)

	err = json.Unmarshal([]byte(`{"from":"32-01-2025"}`), &p)
	assert.ErrorIs(t, err, ErrInvalidDate)
}

func TestDate_Scan(t *testing.T) {
	var d Date

	require.NoError(t, d.Scan(time.Date(2025, time.March, 3, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, MustParseDate("2025-03-03"), d)

	require.NoError(t, d.Scan([]byte("2025-03-04")))
	assert.Equal(t, MustParseDate("2025-03-04"), d)

	require.NoError(t, d.Scan("2025-03-05T00:00:00Z"))
	assert.Equal(t, MustParseDate("2025-03-05"), d)

	assert.ErrorIs(t, d.Scan(42), ErrInvalidDate)

	v, err := MustParseDate("2025-03-05").Value()
	require.NoError(t, err)
	assert.Equal(t, "2025-03-05", v)

	v, err = Date{}.Value()
	require.NoError(t, err)
	assert.Nil(t, v)
}
