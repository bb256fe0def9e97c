package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	ics "github.com/arran4/golang-ical"
	"github.com/fatih/color"
	"github.com/gosuri/uitable"
	"gopkg.in/yaml.v3"

	"github.com/username/weekday-picker/internal/calendar"
	"github.com/username/weekday-picker/pkg/dateutil"
)

type textWriter struct {
	w io.Writer
}

func (t *textWriter) WriteResults(results []Result) error {
	title := color.New(color.Bold, color.Underline)
	bold := color.New(color.Bold)
	faint := color.New(color.Faint)

	for i, r := range results {
		if i > 0 {
			if _, err := fmt.Fprintln(t.w); err != nil {
				return err
			}
		}

		if _, err := title.Fprintln(t.w, r.Title()); err != nil {
			return err
		}

		tbl := uitable.New()
		tbl.Separator = "  "
		tbl.Wrap = true
		tbl.MaxColWidth = 72
		tbl.AddRow(bold.Sprint("Range"), calendar.DateRange{Start: r.Start, End: r.End}.String())
		tbl.AddRow(bold.Sprintf("Weekdays (%d)", len(r.Weekdays)), joinOrNone(r.Weekdays))
		tbl.AddRow(faint.Sprintf("Weekends (%d)", len(r.Weekends)), joinOrNone(r.Weekends))

		if _, err := fmt.Fprintln(t.w, tbl); err != nil {
			return err
		}
	}
	return nil
}

func (t *textWriter) WriteRanges(ranges []calendar.ResolvedRange) error {
	bold := color.New(color.Bold)

	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow(bold.Sprint("#"), bold.Sprint("Range"), bold.Sprint("Start"), bold.Sprint("End"),
		bold.Sprint("Weekdays"), bold.Sprint("Weekends"))
	for i, rr := range ranges {
		sum := calendar.Summarize(rr.Range.Start, rr.Range.End)
		tbl.AddRow(i+1, rr.Label, dateutil.FormatDMY(rr.Range.Start), dateutil.FormatDMY(rr.Range.End),
			sum.Weekdays, sum.Weekends)
	}
	tbl.RightAlign(0)

	_, err := fmt.Fprintln(t.w, tbl)
	return err
}

func joinOrNone(dates []string) string {
	if len(dates) == 0 {
		return "-"
	}
	return strings.Join(dates, ", ")
}

type jsonWriter struct {
	w io.Writer
}

func (j *jsonWriter) WriteResults(results []Result) error {
	return j.encode(toDocuments(results))
}

func (j *jsonWriter) WriteRanges(ranges []calendar.ResolvedRange) error {
	return j.encode(toRangeDocuments(ranges))
}

func (j *jsonWriter) encode(v interface{}) error {
	enc := json.NewEncoder(j.w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	return nil
}

type yamlWriter struct {
	w io.Writer
}

func (y *yamlWriter) WriteResults(results []Result) error {
	return y.encode(toDocuments(results))
}

func (y *yamlWriter) WriteRanges(ranges []calendar.ResolvedRange) error {
	return y.encode(toRangeDocuments(ranges))
}

func (y *yamlWriter) encode(v interface{}) error {
	enc := yaml.NewEncoder(y.w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to encode YAML: %w", err)
	}
	return enc.Close()
}

// icsWriter exports one all-day event per classified day, or per
// predefined range
type icsWriter struct {
	w   io.Writer
	now func() time.Time
}

const icsProductID = "-//weekday-picker//EN"

func (c *icsWriter) newCalendar(name string) *ics.Calendar {
	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId(icsProductID)
	cal.SetXWRCalName(name)
	return cal
}

func (c *icsWriter) WriteResults(results []Result) error {
	cal := c.newCalendar("Weekday picker")
	stamp := c.now().UTC()

	for i, r := range results {
		weekdays, weekends := calendar.Classify(r.Start, r.End)
		for _, d := range weekdays {
			c.addDay(cal, i+1, d, calendar.DayTypeWeekday, r.Title(), stamp)
		}
		for _, d := range weekends {
			c.addDay(cal, i+1, d, calendar.DayTypeWeekend, r.Title(), stamp)
		}
	}

	return c.serialize(cal)
}

// addDay adds one all-day event. Results may overlap, so the UID carries
// the result number as well as the day.
func (c *icsWriter) addDay(cal *ics.Calendar, n int, d time.Time, kind calendar.DayType, title string, stamp time.Time) {
	uid := fmt.Sprintf("%s-%d-%s@weekday-picker", strings.ToLower(kind.String()), n, d.Format("20060102"))
	ev := cal.AddEvent(uid)
	ev.SetDtStampTime(stamp)
	ev.SetAllDayStartAt(d)
	ev.SetAllDayEndAt(dateutil.AddDays(d, 1))
	ev.SetSummary(kind.String())
	ev.SetDescription(title)
}

func (c *icsWriter) WriteRanges(ranges []calendar.ResolvedRange) error {
	cal := c.newCalendar("Predefined ranges")
	stamp := c.now().UTC()

	for i, rr := range ranges {
		ev := cal.AddEvent(fmt.Sprintf("range-%d-%s@weekday-picker", i+1, rr.Range.Start.Format("20060102")))
		ev.SetDtStampTime(stamp)
		ev.SetAllDayStartAt(rr.Range.Start)
		ev.SetAllDayEndAt(dateutil.AddDays(rr.Range.End, 1))
		ev.SetSummary(rr.Label)
	}

	return c.serialize(cal)
}

func (c *icsWriter) serialize(cal *ics.Calendar) error {
	if _, err := io.WriteString(c.w, cal.Serialize()); err != nil {
		return fmt.Errorf("failed to write calendar: %w", err)
	}
	return nil
}
