package egov

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"egovassist-backend/lib/htmlutil"
	"egovassist-backend/lib/textutil"
)

// a table qualifies as attendance-relevant when its header row mentions any
// of these. the live portal has no stable schema to key off of.
var attendanceKeywords = []string{"course", "subject", "attendance", "present", "percentage"}

// RawRecord maps a table header to the corresponding cell text of one row.
// Headers are whatever the live table happened to contain.
type RawRecord map[string]string

func rowCells(row *goquery.Selection) []string {
	var cells []string
	row.Find("th,td").Each(func(_ int, cell *goquery.Selection) {
		cells = append(cells, htmlutil.CellText(cell))
	})
	return cells
}

func hasAttendanceTable(doc *goquery.Document) bool {
	found := false
	doc.Find("table").EachWithBreak(func(_ int, table *goquery.Selection) bool {
		rows := table.Find("tr")
		if rows.Length() < 2 {
			return true
		}
		header := strings.ToLower(strings.Join(rowCells(rows.First()), " "))
		if textutil.ContainsAny(header, attendanceKeywords) {
			found = true
			return false
		}
		return true
	})
	return found
}

// ExtractAttendanceRecords scans every table in the document, keeps the ones
// whose header row looks attendance-related and zips each data row against
// the header positionally. Ragged rows produce shorter records, rows with no
// non-empty cell are dropped. Qualifying tables merge into one sequence in
// document order.
func ExtractAttendanceRecords(doc *goquery.Document) []RawRecord {
	var records []RawRecord

	doc.Find("table").Each(func(_ int, table *goquery.Selection) {
		rows := table.Find("tr")
		if rows.Length() < 2 {
			return
		}

		headers := rowCells(rows.First())
		joined := strings.ToLower(strings.Join(headers, " "))
		if !textutil.ContainsAny(joined, attendanceKeywords) {
			return
		}

		rows.Slice(1, rows.Length()).Each(func(_ int, row *goquery.Selection) {
			cells := rowCells(row)

			empty := true
			for _, c := range cells {
				if c != "" {
					empty = false
					break
				}
			}
			if empty {
				return
			}

			record := RawRecord{}
			for i, cell := range cells {
				if i >= len(headers) {
					break
				}
				record[headers[i]] = cell
			}
			records = append(records, record)
		})
	})

	return records
}
