// Package report renders confirmed ranges and the predefined catalog for the
// host: a colored table for people, JSON/YAML for scripts and iCalendar for
// calendar apps.
package report

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/username/weekday-picker/internal/calendar"
	"github.com/username/weekday-picker/internal/picker"
)

// Supported output formats
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
	FormatICS  = "ics"
)

// Formats lists the accepted values of --format
func Formats() []string {
	return []string{FormatText, FormatJSON, FormatYAML, FormatICS}
}

// Result is one host notification
type Result struct {
	Label    string
	Start    time.Time
	End      time.Time
	Weekdays []string
	Weekends []string
}

// FromEmission converts a picker notification
func FromEmission(em picker.Emission) Result {
	return Result{
		Label:    em.Label,
		Start:    em.Range.Start,
		End:      em.Range.End,
		Weekdays: em.Weekdays,
		Weekends: em.Weekends,
	}
}

// Title is the label, or the formatted range when there is none
func (r Result) Title() string {
	if r.Label != "" {
		return r.Label
	}
	return calendar.DateRange{Start: r.Start, End: r.End}.String()
}

// Writer renders results and catalogs in one format
type Writer interface {
	WriteResults(results []Result) error
	WriteRanges(ranges []calendar.ResolvedRange) error
}

// NewWriter returns the writer for format
func NewWriter(format string, w io.Writer) (Writer, error) {
	switch strings.ToLower(format) {
	case "", FormatText:
		return &textWriter{w: w}, nil
	case FormatJSON:
		return &jsonWriter{w: w}, nil
	case FormatYAML:
		return &yamlWriter{w: w}, nil
	case FormatICS:
		return &icsWriter{w: w, now: time.Now}, nil
	}
	return nil, fmt.Errorf("unknown output format %q (want one of %s)", format, strings.Join(Formats(), ", "))
}

// Collector receives picker notifications and keeps them until the front
// end is done with the terminal.
type Collector struct {
	mu      sync.Mutex
	results []Result
	logger  *zap.Logger
}

// NewCollector creates an empty collector
func NewCollector(logger *zap.Logger) *Collector {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Collector{logger: logger}
}

// Emit records a notification; it has the picker's OnEmit signature
func (c *Collector) Emit(em picker.Emission) {
	r := FromEmission(em)

	c.mu.Lock()
	c.results = append(c.results, r)
	c.mu.Unlock()

	c.logger.Info("Range emitted",
		zap.String("range", r.Title()),
		zap.Int("weekdays", len(r.Weekdays)),
		zap.Int("weekends", len(r.Weekends)))
}

// Results returns a copy of everything collected so far
func (c *Collector) Results() []Result {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]Result, len(c.results))
	copy(out, c.results)
	return out
}

// Len returns the number of collected results
func (c *Collector) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.results)
}

// document is the serialized form shared by JSON and YAML
type document struct {
	Label    string   `json:"label,omitempty" yaml:"label,omitempty"`
	Start    string   `json:"start" yaml:"start"`
	End      string   `json:"end" yaml:"end"`
	Weekdays []string `json:"weekdays" yaml:"weekdays"`
	Weekends []string `json:"weekends" yaml:"weekends"`
}

type rangeDocument struct {
	Label    string `json:"label" yaml:"label"`
	Start    string `json:"start" yaml:"start"`
	End      string `json:"end" yaml:"end"`
	Days     int    `json:"days" yaml:"days"`
	Weekdays int    `json:"weekdays" yaml:"weekdays"`
	Weekends int    `json:"weekends" yaml:"weekends"`
}

const isoDate = "2006-01-02"

func toDocuments(results []Result) []document {
	docs := make([]document, len(results))
	for i, r := range results {
		docs[i] = document{
			Label:    r.Label,
			Start:    r.Start.Format(isoDate),
			End:      r.End.Format(isoDate),
			Weekdays: nonNil(r.Weekdays),
			Weekends: nonNil(r.Weekends),
		}
	}
	return docs
}

func toRangeDocuments(ranges []calendar.ResolvedRange) []rangeDocument {
	docs := make([]rangeDocument, len(ranges))
	for i, rr := range ranges {
		sum := calendar.Summarize(rr.Range.Start, rr.Range.End)
		docs[i] = rangeDocument{
			Label:    rr.Label,
			Start:    rr.Range.Start.Format(isoDate),
			End:      rr.Range.End.Format(isoDate),
			Days:     sum.Days,
			Weekdays: sum.Weekdays,
			Weekends: sum.Weekends,
		}
	}
	return docs
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
