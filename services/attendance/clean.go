package attendance

import (
	"strings"

	"egovassist-backend/lib/scrapers/egov"
	"egovassist-backend/lib/textutil"
)

// header names the portal's detail tables use. the lookup table rows and the
// attendance rows come from different tables on the same page.
const (
	colCourse       = "Course"
	colClassType    = "Class Type"
	colPercentage   = "Percentage"
	colPresentTotal = "Present / Total"
	// some portal revisions drop the spaces around the slash
	colPresentTotalCompact = "Present/Total"
	colCourseCode          = "Course Code"
	colCourseName          = "Course Name"
)

// CleanedRecord is one attendance row with its scraped strings parsed into
// typed fields. Present/Total/Percentage stay nil when the source cell did
// not parse, nil means "unknown" and must never be coerced to zero or a
// subject would silently drop out of low-attendance warnings.
type CleanedRecord struct {
	CourseCode string   `json:"course_code"`
	ClassType  string   `json:"class_type"`
	Present    *int     `json:"present"`
	Total      *int     `json:"total"`
	Percentage *float64 `json:"percentage"`
	CourseName string   `json:"course_name,omitempty"`
}

// courseNameTable collects the code→name lookup from rows that carry both
// columns.
func courseNameTable(raw []egov.RawRecord) map[string]string {
	names := map[string]string{}
	for _, record := range raw {
		code := strings.TrimSpace(record[colCourseCode])
		name := strings.TrimSpace(record[colCourseName])
		if code != "" && name != "" {
			names[code] = name
		}
	}
	return names
}

func normalizePresentTotal(s string) string {
	// the portal sometimes breaks "present / total" across lines around
	// the slash
	s = strings.ReplaceAll(s, "/\n", "/")
	s = strings.ReplaceAll(s, "\n/", "/")
	return textutil.CollapseWhitespace(s)
}

// CleanRecords turns raw table rows into typed attendance records. Rows
// lacking the course/class-type/percentage columns (lookup-table rows,
// stray headers) are skipped.
func CleanRecords(raw []egov.RawRecord) []CleanedRecord {
	names := courseNameTable(raw)

	var cleaned []CleanedRecord
	for _, record := range raw {
		course, hasCourse := record[colCourse]
		classType, hasClassType := record[colClassType]
		percentage, hasPercentage := record[colPercentage]
		if !hasCourse || !hasClassType || !hasPercentage {
			continue
		}

		out := CleanedRecord{
			CourseCode: strings.TrimSpace(course),
			ClassType:  strings.TrimSpace(classType),
		}

		presentTotal, ok := record[colPresentTotal]
		if !ok {
			presentTotal = record[colPresentTotalCompact]
		}
		if present, total, ok := textutil.ExtractFraction(normalizePresentTotal(presentTotal)); ok {
			out.Present = &present
			out.Total = &total
		}

		if value, ok := textutil.ExtractPercentStrict(percentage); ok {
			out.Percentage = &value
		}

		if name, ok := names[out.CourseCode]; ok {
			out.CourseName = name
		}

		cleaned = append(cleaned, out)
	}
	return cleaned
}
