package report

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/fatih/color"

	"github.com/username/weekday-picker/internal/calendar"
	"github.com/username/weekday-picker/pkg/dateutil"
)

const weekWidth = len("Su Mo Tu We Th Fr Sa")

// WriteMonth prints a Sunday-first month grid with weekends dimmed and
// today in bold, followed by the month's day counts.
func WriteMonth(w io.Writer, year int, month time.Month, today time.Time) error {
	head := color.New(color.FgWhite, color.Italic)
	weekday := color.New()
	weekend := color.New(color.Faint)
	bold := color.New(color.Bold, color.Underline)

	var b strings.Builder

	title := fmt.Sprintf("%s %d", month, year)
	mid := (weekWidth - len(title)) / 2
	if mid < 0 {
		mid = 0
	}
	head.Fprintf(&b, "%s%s\n", strings.Repeat(" ", mid), title)
	b.WriteString("Su Mo Tu We Th Fr Sa\n")

	for _, week := range calendar.Weeks(calendar.MonthGrid(year, month)) {
		cells := make([]string, 0, len(week))
		for _, slot := range week {
			if slot.Empty {
				cells = append(cells, "  ")
				continue
			}
			printer := weekday
			if dateutil.IsWeekend(slot.Date) {
				printer = weekend
			}
			if dateutil.IsSameDay(slot.Date, today) {
				printer = bold
			}
			cells = append(cells, printer.Sprintf("%2d", slot.Date.Day()))
		}
		b.WriteString(strings.Join(cells, " "))
		b.WriteString("\n")
	}

	sum := calendar.SummarizeMonth(year, month)
	fmt.Fprintf(&b, "\n%d days: %d weekdays, %d weekends\n", sum.Days, sum.Weekdays, sum.Weekends)

	_, err := io.WriteString(w, b.String())
	return err
}
