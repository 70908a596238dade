package normalizer

import "fmt"

// ParseError is reported for a row whose date and time could not be parsed.
// The row is kept with a missing timestamp.
type ParseError struct {
	// Index of the row in the table given to Normalize
	Row   int    `json:"row"`
	Value string `json:"value"`
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("row %d: unrecognized date-time %q", e.Row, e.Value)
}

// DefaultLayouts are tried in order when no layouts are configured.
var DefaultLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02 15:04",
	"2006-01-02 3:04:05 PM",
	"2006-01-02 3:04 PM",
	"2006/01/02 15:04:05",
	"2006/01/02 15:04",
	"1/2/2006 15:04:05",
	"1/2/2006 15:04",
	"1/2/2006 3:04:05 PM",
	"1/2/2006 3:04 PM",
	"02.01.2006 15:04:05",
	"02.01.2006 15:04",
	"2006-01-02T15:04:05Z07:00",
	"2006-01-02",
	"2006/01/02",
	"1/2/2006",
	"02.01.2006",
}
