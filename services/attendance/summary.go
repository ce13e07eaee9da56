package attendance

import (
	"fmt"
	"math"
)

type SubjectSummary struct {
	CourseCode   string  `json:"course_code"`
	ClassType    string  `json:"class_type"`
	CourseName   string  `json:"course_name"`
	TotalPresent int     `json:"total_present"`
	TotalClasses int     `json:"total_classes"`
	Percentage   float64 `json:"percentage"`
}

type OverallSummary struct {
	TotalPresent         int     `json:"total_present"`
	TotalClasses         int     `json:"total_classes"`
	CalculatedPercentage float64 `json:"calculated_percentage"`
	// the portal's own pre-computed figure, absent when the dashboard did
	// not report one
	GrossAttendance   *float64 `json:"gross_attendance,omitempty"`
	OverallPercentage float64  `json:"overall_percentage"`
	TotalRecords      int      `json:"total_records"`
	// keyed by (course code, class type), lecture and lab rows for the
	// same course track independent attendance thresholds and are never
	// merged
	Subjects []SubjectSummary `json:"subjects"`
}

func intOrZero(v *int) int {
	if v == nil {
		return 0
	}
	return *v
}

func dedupeKey(r CleanedRecord) string {
	present := "?"
	if r.Present != nil {
		present = fmt.Sprint(*r.Present)
	}
	total := "?"
	if r.Total != nil {
		total = fmt.Sprint(*r.Total)
	}
	return fmt.Sprintf("%s\x00%s\x00%s\x00%s", r.CourseCode, r.ClassType, present, total)
}

// Dedupe drops exact duplicate records (same course, class type, present and
// total), keeping the first occurrence. The same lecture row scraped from
// two overlapping tables is the typical case.
func Dedupe(records []CleanedRecord) []CleanedRecord {
	seen := map[string]bool{}
	var out []CleanedRecord
	for _, r := range records {
		key := dedupeKey(r)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, r)
	}
	return out
}

func percentage(present, total int) float64 {
	if total <= 0 {
		return 0
	}
	return round2(float64(present) / float64(total) * 100)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// Summarize aggregates deduplicated records into the overall summary. When
// the portal reported a gross figure it is authoritative for the overall
// percentage, the recomputed figure is still reported alongside for
// diagnostic comparison.
func Summarize(records []CleanedRecord, gross *float64) OverallSummary {
	summary := OverallSummary{
		GrossAttendance: gross,
		TotalRecords:    len(records),
	}

	subjectIndex := map[string]bool{}
	for _, r := range records {
		summary.TotalPresent += intOrZero(r.Present)
		summary.TotalClasses += intOrZero(r.Total)

		key := r.CourseCode + "\x00" + r.ClassType
		if subjectIndex[key] {
			// same subject+type with different counts, the first
			// occurrence wins
			continue
		}
		subjectIndex[key] = true

		name := r.CourseName
		if name == "" {
			name = r.CourseCode
		}
		summary.Subjects = append(summary.Subjects, SubjectSummary{
			CourseCode:   r.CourseCode,
			ClassType:    r.ClassType,
			CourseName:   name,
			TotalPresent: intOrZero(r.Present),
			TotalClasses: intOrZero(r.Total),
			Percentage:   percentage(intOrZero(r.Present), intOrZero(r.Total)),
		})
	}

	summary.CalculatedPercentage = percentage(summary.TotalPresent, summary.TotalClasses)
	if gross != nil {
		summary.OverallPercentage = *gross
	} else {
		summary.OverallPercentage = summary.CalculatedPercentage
	}
	return summary
}
