package holiday

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(s string) time.Time {
	d, _ := time.Parse(dateLayout, s)
	return d
}

func TestDefault(t *testing.T) {
	cal := Default()

	name, ok := cal.Name(date("2024-06-06"))
	assert.True(t, ok)
	assert.Equal(t, "현충일", name)

	assert.True(t, cal.IsHoliday(date("2025-10-06")))
	assert.False(t, cal.IsHoliday(date("2025-10-10")))
}

func TestLoad_EmptyPathUsesDefault(t *testing.T) {
	cal, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, len(Default()), len(cal))
}

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "holidays.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"2024-06-05": "창립기념일"}`), 0o644))

	cal, err := Load(path)
	require.NoError(t, err)
	assert.True(t, cal.IsHoliday(date("2024-06-05")))
	assert.False(t, cal.IsHoliday(date("2024-06-06")))
}

func TestLoad_Errors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)

	_, err = Parse([]byte(`{"2024/06/05": "bad"}`))
	assert.Error(t, err)

	_, err = Parse([]byte(`[]`))
	assert.Error(t, err)
}

func TestNilCalendar(t *testing.T) {
	var cal Calendar
	assert.False(t, cal.IsHoliday(date("2024-01-01")))
}
