package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/fatih/color"
	"gopkg.in/yaml.v3"

	"github.com/example/tpp/internal/core/calendar"
	"github.com/example/tpp/internal/core/period"
	"github.com/example/tpp/internal/core/symptoms"
	"github.com/example/tpp/internal/ports/primary"
)

// CalendarAdapter translates CLI operations to SymptomService and PeriodService calls.
type CalendarAdapter struct {
	symptoms primary.SymptomService
	periods  primary.PeriodService
	out      io.Writer
}

// NewCalendarAdapter creates a new CalendarAdapter with the given services.
func NewCalendarAdapter(symptomService primary.SymptomService, periodService primary.PeriodService, out io.Writer) *CalendarAdapter {
	return &CalendarAdapter{
		symptoms: symptomService,
		periods:  periodService,
		out:      out,
	}
}

// LogSymptoms replaces the record for date.
func (a *CalendarAdapter) LogSymptoms(ctx context.Context, date calendar.Date, s symptoms.Symptoms) error {
	err := a.symptoms.LogSymptomsForDate(ctx, primary.LogSymptomsRequest{Date: date, Symptoms: s})
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "✓ Logged symptoms for %s\n", date)
	if s.Flow != symptoms.FlowUnset {
		fmt.Fprintf(a.out, "  Flow: %s\n", flowLabel(s.Flow))
	}
	return nil
}

// LogPeriod marks dates as period days and reports what happened to each.
// A partial failure is printed and returned.
func (a *CalendarAdapter) LogPeriod(ctx context.Context, dates []calendar.Date) (*primary.BatchResult, error) {
	result, err := a.periods.LogMultipleDayPeriod(ctx, dates)
	if result == nil {
		return nil, err
	}

	fmt.Fprintf(a.out, "✓ Period logged: %d day(s) marked, %d already set\n",
		result.Count(period.StatusApplied),
		result.Count(period.StatusUnchanged))
	for _, o := range result.Skipped() {
		fmt.Fprintf(a.out, "  ✗ %s skipped: %s\n", o.Date, o.Reason)
	}
	for _, y := range result.FailedYears() {
		fmt.Fprintf(a.out, "  ✗ %d not saved\n", y.Year)
	}

	return result, err
}

// Show prints the record for date.
func (a *CalendarAdapter) Show(ctx context.Context, date calendar.Date) (*symptoms.Symptoms, error) {
	s, err := a.symptoms.GetSymptomsForDate(ctx, date)
	if err != nil {
		return nil, err
	}

	if s == nil {
		fmt.Fprintf(a.out, "Nothing logged for %s.\n", date)
		return nil, nil
	}

	fmt.Fprintf(a.out, "\n%s (%s)\n", date, date.Time().Weekday())
	w := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
	writeField(w, "Flow", flowLabel(s.Flow))
	writeField(w, "Mood", s.Mood)
	writeField(w, "Cramps", s.Cramps)
	writeField(w, "Exercise", s.Exercise)
	if s.Sleep > 0 {
		writeField(w, "Sleep", (time.Duration(s.Sleep) * time.Minute).String())
	}
	writeField(w, "Notes", s.Notes)
	keys := make([]string, 0, len(s.Extra))
	for k := range s.Extra {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		writeField(w, k, s.Extra[k])
	}
	w.Flush()
	fmt.Fprintln(a.out)

	return s, nil
}

// Calendar prints a month grid for month of year, or every month when month is 0.
func (a *CalendarAdapter) Calendar(ctx context.Context, year, month int) (calendar.YearData, error) {
	if month < 0 || month > 12 {
		return calendar.YearData{}, fmt.Errorf("month must be between 1 and 12, got %d", month)
	}

	data, err := a.symptoms.GetCalendarByYear(ctx, year)
	if err != nil {
		return calendar.YearData{}, err
	}

	first, last := 1, 12
	if month != 0 {
		first, last = month, month
	}
	for m := first; m <= last; m++ {
		a.printMonth(&data, year, m)
	}
	fmt.Fprintf(a.out, "Legend: %s heavy  %s medium  %s light  %s none  %s other symptoms\n",
		flowGlyph(symptoms.FlowHeavy), flowGlyph(symptoms.FlowMedium),
		flowGlyph(symptoms.FlowLight), flowGlyph(symptoms.FlowNone), otherGlyph)

	return data, nil
}

// Export formats for Export.
const (
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// ExportDay is one logged day in an export.
type ExportDay struct {
	Date     string            `json:"date" yaml:"date"`
	Symptoms symptoms.Symptoms `json:"symptoms" yaml:"symptoms"`
}

// ExportDocument is the exported form of a year.
type ExportDocument struct {
	Year int         `json:"year" yaml:"year"`
	Days []ExportDay `json:"days" yaml:"days"`
}

// Export writes every logged day of year in format.
func (a *CalendarAdapter) Export(ctx context.Context, year int, format string) (*ExportDocument, error) {
	if format != FormatJSON && format != FormatYAML {
		return nil, fmt.Errorf("unsupported export format %q (use json or yaml)", format)
	}

	data, err := a.symptoms.GetCalendarByYear(ctx, year)
	if err != nil {
		return nil, err
	}

	doc := &ExportDocument{Year: year, Days: []ExportDay{}}
	for _, d := range data.LoggedDates(year) {
		doc.Days = append(doc.Days, ExportDay{Date: d.String(), Symptoms: data.SymptomsOrEmpty(d.Day, d.Month)})
	}

	switch format {
	case FormatYAML:
		enc := yaml.NewEncoder(a.out)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return nil, fmt.Errorf("failed to encode yaml: %w", err)
		}
		if err := enc.Close(); err != nil {
			return nil, fmt.Errorf("failed to encode yaml: %w", err)
		}
	default:
		enc := json.NewEncoder(a.out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(doc); err != nil {
			return nil, fmt.Errorf("failed to encode json: %w", err)
		}
	}

	return doc, nil
}

// Helper methods

const otherGlyph = "·"

var (
	heavyColor = color.New(color.FgRed, color.Bold)
	flowColor  = color.New(color.FgRed)
	lightColor = color.New(color.FgMagenta)
	mutedColor = color.New(color.Faint)
)

func (a *CalendarAdapter) printMonth(data *calendar.YearData, year, month int) {
	fmt.Fprintf(a.out, "\n%s %d\n", time.Month(month), year)
	fmt.Fprintln(a.out, "Mo    Tu    We    Th    Fr    Sa    Su")

	// Monday-first column of the 1st.
	offset := (int(time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC).Weekday()) + 6) % 7
	var line strings.Builder
	line.WriteString(strings.Repeat("      ", offset))

	for day := 1; day <= calendar.DaysInMonth(month, year); day++ {
		s := data.SymptomsOrEmpty(day, month)
		mark := " "
		switch {
		case s.Flow != symptoms.FlowUnset:
			mark = flowGlyph(s.Flow)
		case !s.IsEmpty():
			mark = otherGlyph
		}
		fmt.Fprintf(&line, "%2d%s   ", day, mark)

		if (offset+day)%7 == 0 {
			fmt.Fprintln(a.out, strings.TrimRight(line.String(), " "))
			line.Reset()
		}
	}
	if line.Len() > 0 {
		fmt.Fprintln(a.out, strings.TrimRight(line.String(), " "))
	}
}

func flowGlyph(f symptoms.FlowLevel) string {
	switch f {
	case symptoms.FlowHeavy:
		return heavyColor.Sprint("●")
	case symptoms.FlowMedium:
		return flowColor.Sprint("◉")
	case symptoms.FlowLight:
		return lightColor.Sprint("○")
	case symptoms.FlowNone:
		return mutedColor.Sprint("-")
	default:
		return " "
	}
}

func flowLabel(f symptoms.FlowLevel) string {
	if f == symptoms.FlowUnset {
		return ""
	}
	return strings.ToLower(string(f))
}

func writeField(w io.Writer, name, value string) {
	if value == "" {
		return
	}
	fmt.Fprintf(w, "  %s:\t%s\n", name, value)
}
