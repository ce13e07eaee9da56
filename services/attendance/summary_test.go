package attendance

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func record(course, classType string, present, total int) CleanedRecord {
	return CleanedRecord{
		CourseCode: course,
		ClassType:  classType,
		Present:    intPtr(present),
		Total:      intPtr(total),
	}
}

func TestDedupe(t *testing.T) {
	records := []CleanedRecord{
		record("CS101", "LECT", 18, 20),
		record("CS101", "LAB", 9, 10),
		// same lecture row scraped from an overlapping table
		record("CS101", "LECT", 18, 20),
	}

	deduped := Dedupe(records)
	if len(deduped) != 2 {
		t.Fatalf("expected 2 records, got %d", len(deduped))
	}

	// idempotent: feeding the sequence twice changes nothing
	twice := Dedupe(append(records, records...))
	if diff := cmp.Diff(deduped, twice); diff != "" {
		t.Fatal(diff)
	}
}

func TestDedupeKeepsLectureAndLabSeparate(t *testing.T) {
	deduped := Dedupe([]CleanedRecord{
		record("CS101", "LECT", 18, 20),
		record("CS101", "LAB", 18, 20),
	})
	if len(deduped) != 2 {
		t.Fatal("lecture and lab rows for the same course must never merge")
	}
}

func TestSummarizeCalculatedPercentage(t *testing.T) {
	summary := Summarize([]CleanedRecord{
		record("CS101", "LECT", 18, 20),
		record("CS101", "LAB", 9, 10),
	}, nil)

	if summary.TotalPresent != 27 || summary.TotalClasses != 30 {
		t.Fatal("wrong totals", summary.TotalPresent, summary.TotalClasses)
	}
	if summary.CalculatedPercentage != 90.0 {
		t.Fatal("expected 90.0, got", summary.CalculatedPercentage)
	}
	if summary.OverallPercentage != 90.0 {
		t.Fatal("without a gross figure the calculated one is overall")
	}
	if len(summary.Subjects) != 2 {
		t.Fatal("expected 2 subjects", summary.Subjects)
	}
}

func TestSummarizeGrossIsAuthoritative(t *testing.T) {
	summary := Summarize([]CleanedRecord{
		record("CS101", "LECT", 37, 50),
	}, floatPtr(76.5))

	if summary.OverallPercentage != 76.5 {
		t.Fatal("gross attendance must win, got", summary.OverallPercentage)
	}
	if summary.CalculatedPercentage != 74.0 {
		t.Fatal("calculated must still be reported, got", summary.CalculatedPercentage)
	}
	if summary.GrossAttendance == nil || *summary.GrossAttendance != 76.5 {
		t.Fatal("gross figure missing from summary")
	}
}

func TestSummarizeGrossWithoutDetail(t *testing.T) {
	summary := Summarize(nil, floatPtr(82))
	if summary.OverallPercentage != 82 {
		t.Fatal("gross figure is independent of detail-table availability")
	}
	if summary.TotalClasses != 0 || summary.CalculatedPercentage != 0 {
		t.Fatal("no records means zero totals")
	}
}

func TestSummarizeFirstOccurrenceWinsPerSubject(t *testing.T) {
	summary := Summarize([]CleanedRecord{
		record("CS101", "LECT", 18, 20),
		// same subject+type with different counts, not an exact duplicate
		record("CS101", "LECT", 3, 4),
	}, nil)

	if len(summary.Subjects) != 1 {
		t.Fatal("expected a single subject entry")
	}
	if summary.Subjects[0].TotalPresent != 18 {
		t.Fatal("first occurrence should define the subject totals")
	}
	// both rows still count toward the overall totals
	if summary.TotalPresent != 21 || summary.TotalClasses != 24 {
		t.Fatal("wrong totals", summary.TotalPresent, summary.TotalClasses)
	}
}

func TestSummarizeNilCountsContributeNothing(t *testing.T) {
	summary := Summarize([]CleanedRecord{
		{CourseCode: "HS103", ClassType: "LAB"},
		record("CS101", "LECT", 9, 10),
	}, nil)

	if summary.TotalPresent != 9 || summary.TotalClasses != 10 {
		t.Fatal("nil counts must not affect totals")
	}
	if summary.Subjects[0].CourseCode != "HS103" {
		t.Fatal("unknown-count subjects still appear in the summary")
	}
	if summary.Subjects[0].Percentage != 0 {
		t.Fatal("zero classes yields zero percentage")
	}
}
