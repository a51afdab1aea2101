package holiday

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"time"
)

const dateLayout = "2006-01-02"

//go:embed holidays_kr.json
var defaultTable []byte

// Calendar maps an ISO date ("2006-01-02") to the holiday name. It is read-only
// once loaded and safe for concurrent use.
type Calendar map[string]string

// Default returns the bundled Korean public holiday table.
func Default() Calendar {
	cal, err := Parse(defaultTable)
	if err != nil {
		panic(fmt.Sprintf("holiday: bundled table is invalid: %v", err))
	}
	return cal
}

// Load reads a calendar from path, or returns Default when path is empty.
func Load(path string) (Calendar, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read holiday file: %w", err)
	}
	return Parse(data)
}

// Parse decodes a JSON object of date to name and rejects malformed dates.
func Parse(data []byte) (Calendar, error) {
	var raw map[string]string
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decode holiday table: %w", err)
	}

	cal := make(Calendar, len(raw))
	for date, name := range raw {
		if _, err := time.Parse(dateLayout, date); err != nil {
			return nil, fmt.Errorf("invalid holiday date %q: %w", date, err)
		}
		cal[date] = name
	}
	return cal, nil
}

// Name returns the holiday name for d, if any.
func (c Calendar) Name(d time.Time) (string, bool) {
	name, ok := c[d.Format(dateLayout)]
	return name, ok
}

func (c Calendar) IsHoliday(d time.Time) bool {
	_, ok := c[d.Format(dateLayout)]
	return ok
}
