package service

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/xolan/shifttrack/internal/entry"
	"github.com/xolan/shifttrack/internal/filter"
	"github.com/xolan/shifttrack/internal/store"
	"gopkg.in/yaml.v3"
)

// Export formats
const (
	FormatJSON = "json"
	FormatCSV  = "csv"
	FormatYAML = "yaml"
)

// ExportProfile is the profile header of an export document.
type ExportProfile struct {
	ID      string `json:"id" yaml:"id"`
	Name    string `json:"name" yaml:"name"`
	Surname string `json:"surname" yaml:"surname"`
}

// ExportRecord is one entry as written by an export.
type ExportRecord struct {
	ID       string  `json:"id" yaml:"id"`
	Date     string  `json:"date" yaml:"date"`
	Start    string  `json:"start,omitempty" yaml:"start,omitempty"`
	End      string  `json:"end,omitempty" yaml:"end,omitempty"`
	Minutes  int     `json:"duration_minutes" yaml:"duration_minutes"`
	Hours    float64 `json:"hours" yaml:"hours"`
	Note     string  `json:"note,omitempty" yaml:"note,omitempty"`
	Recorded string  `json:"created_at" yaml:"created_at"`
}

// ExportDocument is the full JSON/YAML export of a profile.
type ExportDocument struct {
	Profile    ExportProfile  `json:"profile" yaml:"profile"`
	Period     string         `json:"period" yaml:"period"`
	TotalHours float64        `json:"total_hours" yaml:"total_hours"`
	Entries    []ExportRecord `json:"entries" yaml:"entries"`
}

var csvExportHeader = []string{"id", "date", "start", "end", "duration_minutes", "hours", "note"}

// ExportService writes a profile's entries in machine-readable formats
type ExportService struct {
	store store.Store
}

// NewExportService creates a new ExportService
func NewExportService(st store.Store) *ExportService {
	return &ExportService{store: st}
}

// Formats returns the supported export format names.
func (s *ExportService) Formats() []string {
	return []string{FormatJSON, FormatCSV, FormatYAML}
}

// Document builds the export document for the entries of profileID matching f.
func (s *ExportService) Document(profileID string, f filter.Filter) (*ExportDocument, error) {
	p, err := s.store.GetProfile(profileID)
	if err != nil {
		return nil, err
	}
	entries, err := s.store.ListEntries(profileID)
	if err != nil {
		return nil, err
	}
	entries = filter.Apply(entries, f)

	doc := &ExportDocument{
		Profile: ExportProfile{ID: p.ID, Name: p.Name, Surname: p.Surname},
		Period:  describePeriod(f.Range),
		Entries: make([]ExportRecord, 0, len(entries)),
	}
	total := 0
	for _, e := range entries {
		doc.Entries = append(doc.Entries, toExportRecord(e))
		total += e.DurationMinutes
	}
	doc.TotalHours = entry.Entry{DurationMinutes: total}.Hours()
	return doc, nil
}

// Write exports the entries of profileID matching f to w in the given format.
func (s *ExportService) Write(w io.Writer, format, profileID string, f filter.Filter) error {
	format = strings.ToLower(strings.TrimSpace(format))
	switch format {
	case FormatJSON, FormatCSV, FormatYAML:
	default:
		return fmt.Errorf("unsupported export format %q (use json, csv or yaml)", format)
	}

	doc, err := s.Document(profileID, f)
	if err != nil {
		return err
	}

	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(doc)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return fmt.Errorf("failed to encode yaml: %w", err)
		}
		return enc.Close()
	default:
		return writeCSV(w, doc.Entries)
	}
}

func writeCSV(w io.Writer, records []ExportRecord) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvExportHeader); err != nil {
		return err
	}
	for _, r := range records {
		row := []string{
			r.ID,
			r.Date,
			r.Start,
			r.End,
			strconv.Itoa(r.Minutes),
			strconv.FormatFloat(r.Hours, 'f', 2, 64),
			r.Note,
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func toExportRecord(e entry.Entry) ExportRecord {
	return ExportRecord{
		ID:       e.ID,
		Date:     e.DateString(),
		Start:    e.Start.String(),
		End:      e.End.String(),
		Minutes:  e.DurationMinutes,
		Hours:    e.Hours(),
		Note:     e.Note,
		Recorded: e.CreatedAt.Format(time.RFC3339),
	}
}
