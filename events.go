package main

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
)

// Column names a usable event row must carry. Rows blank on any of these
// never surface to the form.
const (
	colTitle       = "Title"
	colDate        = "Date"
	colEduCode     = "EDU code"
	colPartnerCode = "Partner code"
	colGeneralURL  = "General URL"
	colEduURL      = "EDU URL"
	colPartnerURL  = "Partner URL"

	colID = "ID" // optional; Title stands in when absent
)

// EventRecord is one usable row of the remote Events sheet. Values are kept
// raw; trimming happens only while deciding completeness. Columns beyond the
// fixed schema land in Extra.
type EventRecord struct {
	ID          string
	Title       string
	Date        string
	EduCode     string
	PartnerCode string
	GeneralURL  string
	EduURL      string
	PartnerURL  string

	Extra map[string]string
}

// newEventRecord builds a record from a header-keyed row map.
func newEventRecord(fields map[string]string) EventRecord {
	record := EventRecord{
		Title:       fields[colTitle],
		Date:        fields[colDate],
		EduCode:     fields[colEduCode],
		PartnerCode: fields[colPartnerCode],
		GeneralURL:  fields[colGeneralURL],
		EduURL:      fields[colEduURL],
		PartnerURL:  fields[colPartnerURL],
	}

	record.ID = fields[colID]
	if strings.TrimSpace(record.ID) == "" {
		record.ID = record.Title
	}

	record.Extra = make(map[string]string)
	for name, value := range fields {
		switch name {
		case colTitle, colDate, colEduCode, colPartnerCode,
			colGeneralURL, colEduURL, colPartnerURL, colID:
		default:
			record.Extra[name] = value
		}
	}

	return record
}

// complete reports whether every required column is non-empty after
// trimming. Raw values stay untouched either way.
func (e EventRecord) complete() bool {
	for _, value := range []string{
		e.Title, e.Date, e.EduCode, e.PartnerCode,
		e.GeneralURL, e.EduURL, e.PartnerURL,
	} {
		if strings.TrimSpace(value) == "" {
			return false
		}
	}
	return true
}

// NormalizeTable zips a header row and data rows into complete EventRecords,
// preserving row order. All-empty rows are skipped; on a repeated header the
// last value wins. A nil/empty header row yields an empty catalog.
func NormalizeTable(headers []string, rows [][]string) []EventRecord {
	if len(headers) == 0 {
		return []EventRecord{}
	}

	records := make([]EventRecord, 0, len(rows))
	for _, row := range rows {
		empty := lo.EveryBy(row, func(cell string) bool {
			return cell == ""
		})
		if empty {
			continue
		}

		fields := make(map[string]string, len(headers))
		for i, header := range headers {
			if i < len(row) {
				fields[header] = row[i]
			} else {
				fields[header] = ""
			}
		}

		record := newEventRecord(fields)
		if !record.complete() {
			log.Debug().Str("title", record.Title).Msg("Incomplete Event Row Dropped")
			continue
		}
		records = append(records, record)
	}

	return records
}

// NormalizeRows filters already header-keyed row maps through the same
// completeness rule as NormalizeTable.
func NormalizeRows(rows []map[string]string) []EventRecord {
	records := make([]EventRecord, 0, len(rows))
	for _, fields := range rows {
		record := newEventRecord(fields)
		if !record.complete() {
			log.Debug().Str("title", record.Title).Msg("Incomplete Event Row Dropped")
			continue
		}
		records = append(records, record)
	}
	return records
}

// cellString renders a raw JSON cell the way the sheet shows it. The Apps
// Script endpoint emits numbers for numeric-looking cells.
func cellString(cell interface{}) string {
	switch v := cell.(type) {
	case nil:
		return ""
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(v)
	default:
		encoded, _ := json.Marshal(v)
		return string(encoded)
	}
}

// decodeEvents normalizes the `data` payload of the events endpoint. Two
// shapes exist in the wild: an array of header-keyed objects, and a raw 2-D
// table whose first row is the header row. Unparseable payloads yield an
// empty catalog.
func decodeEvents(data []json.RawMessage) []EventRecord {
	if len(data) == 0 {
		return []EventRecord{}
	}

	// Probe the first element to pick a shape
	var probe []interface{}
	if err := json.Unmarshal(data[0], &probe); err == nil {
		headers := lo.Map(probe, func(cell interface{}, _ int) string {
			return cellString(cell)
		})

		rows := make([][]string, 0, len(data)-1)
		for _, raw := range data[1:] {
			var cells []interface{}
			if err := json.Unmarshal(raw, &cells); err != nil {
				log.Warn().Err(err).Msg("Malformed Event Table Row Skipped")
				continue
			}
			rows = append(rows, lo.Map(cells, func(cell interface{}, _ int) string {
				return cellString(cell)
			}))
		}

		return NormalizeTable(headers, rows)
	}

	rows := make([]map[string]string, 0, len(data))
	for _, raw := range data {
		var object map[string]interface{}
		if err := json.Unmarshal(raw, &object); err != nil {
			log.Warn().Err(err).Msg("Malformed Event Object Skipped")
			continue
		}

		fields := make(map[string]string, len(object))
		for name, cell := range object {
			fields[name] = cellString(cell)
		}
		rows = append(rows, fields)
	}

	return NormalizeRows(rows)
}

// FindEvent selects the visitor's event by ID, falling back to title match.
func FindEvent(events []EventRecord, id string) (EventRecord, bool) {
	event, found := lo.Find(events, func(e EventRecord) bool {
		return e.ID == id
	})
	if found {
		return event, true
	}
	return lo.Find(events, func(e EventRecord) bool {
		return e.Title == id
	})
}
