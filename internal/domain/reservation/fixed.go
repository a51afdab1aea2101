package reservation

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/sarang-church/groupware-backend-go/internal/pkg/validator"
)

// FixedIDPrefix marks interval IDs generated from fixed blocks.
const FixedIDPrefix = "fixed-"

// FixedBlock is a weekly recurring booking, such as a Sunday service holding
// the main hall. Blocks are expanded per view and never stored.
type FixedBlock struct {
	ResourceID string `json:"resource_id" validate:"required"`
	Weekday    string `json:"weekday" validate:"required,oneof=sunday monday tuesday wednesday thursday friday saturday"`
	Start      string `json:"start" validate:"required,clock"`
	End        string `json:"end" validate:"required,clock"`
	Label      string `json:"label" validate:"required,max=100"`
}

func IsFixedID(id string) bool {
	return strings.HasPrefix(id, FixedIDPrefix)
}

// LoadFixedBlocks reads blocks from a JSON file. An empty path means no blocks.
func LoadFixedBlocks(path string) ([]FixedBlock, error) {
	if path == "" {
		return nil, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read fixed blocks file: %w", err)
	}
	return ParseFixedBlocks(data)
}

func ParseFixedBlocks(data []byte) ([]FixedBlock, error) {
	var blocks []FixedBlock
	if err := json.Unmarshal(data, &blocks); err != nil {
		return nil, fmt.Errorf("decode fixed blocks: %w", err)
	}

	for i := range blocks {
		blocks[i].Weekday = strings.ToLower(strings.TrimSpace(blocks[i].Weekday))
		if errs := validator.Struct(blocks[i]); len(errs) > 0 {
			return nil, fmt.Errorf("fixed block %d: %w", i, errs)
		}
		// HH:MM compares correctly as a string
		if blocks[i].Start >= blocks[i].End {
			return nil, fmt.Errorf("fixed block %d: start %s must be before end %s", i, blocks[i].Start, blocks[i].End)
		}
	}
	return blocks, nil
}

// On returns the block's interval on date when date falls on its weekday.
func (f FixedBlock) On(date time.Time) (BookingInterval, bool) {
	if strings.ToLower(date.Weekday().String()) != f.Weekday {
		return BookingInterval{}, false
	}
	start, err1 := atClock(date, f.Start)
	end, err2 := atClock(date, f.End)
	if err1 != nil || err2 != nil {
		return BookingInterval{}, false
	}

	return BookingInterval{
		Kind:       KindFixed,
		ID:         FixedIDPrefix + f.ResourceID + "-" + date.Format("20060102") + "-" + strings.ReplaceAll(f.Start, ":", ""),
		ResourceID: f.ResourceID,
		Start:      start,
		End:        end,
		Label:      f.Label,
		Status:     StatusActive,
	}, true
}

// ExpandFixed generates the fixed intervals for every calendar day from from's
// date through to's date, in from's location.
func ExpandFixed(blocks []FixedBlock, from, to time.Time) []BookingInterval {
	if len(blocks) == 0 {
		return nil
	}
	loc := from.Location()
	y, m, d := from.Date()
	day := time.Date(y, m, d, 0, 0, 0, 0, loc)
	to = to.In(loc)

	var out []BookingInterval
	for !day.After(to) {
		for _, b := range blocks {
			if in, ok := b.On(day); ok {
				out = append(out, in)
			}
		}
		day = day.AddDate(0, 0, 1)
	}
	return out
}

func atClock(date time.Time, clock string) (time.Time, error) {
	c, err := time.Parse("15:04", clock)
	if err != nil {
		return time.Time{}, err
	}
	y, m, d := date.Date()
	return time.Date(y, m, d, c.Hour(), c.Minute(), 0, 0, date.Location()), nil
}
