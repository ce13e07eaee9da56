package egov

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestExtractAttendanceRecords(t *testing.T) {
	t.Run("qualifying and decorative tables", func(t *testing.T) {
		doc := docFromString(t, `
			<table>
				<tr><td>Quick Links</td><td>Help</td></tr>
				<tr><td>Home</td><td>Logout</td></tr>
			</table>
			<table>
				<tr><th>Course</th><th>Class Type</th><th>Present / Total</th><th>Percentage</th></tr>
				<tr><td>CS101</td><td>LECT</td><td>18/20</td><td>90%</td></tr>
				<tr><td>CS101</td><td>LAB</td><td>9/10</td><td>90%</td></tr>
				<tr><td>MA102</td><td>LECT</td><td>15/20</td><td>75%</td></tr>
			</table>`)

		records := ExtractAttendanceRecords(doc)
		if len(records) != 3 {
			t.Fatalf("expected 3 records, got %d: %v", len(records), records)
		}
		expected := RawRecord{
			"Course":          "CS101",
			"Class Type":      "LECT",
			"Present / Total": "18/20",
			"Percentage":      "90%",
		}
		if diff := cmp.Diff(expected, records[0]); diff != "" {
			t.Fatal(diff)
		}
	})

	t.Run("tables under two rows are skipped", func(t *testing.T) {
		doc := docFromString(t, `
			<table><tr><th>Course</th><th>Attendance</th></tr></table>`)
		if records := ExtractAttendanceRecords(doc); records != nil {
			t.Fatal("expected no records, got", records)
		}
	})

	t.Run("ragged rows produce shorter records", func(t *testing.T) {
		doc := docFromString(t, `
			<table>
				<tr><th>Course</th><th>Class Type</th><th>Percentage</th></tr>
				<tr><td>CS101</td><td>LECT</td></tr>
				<tr><td>CS101</td><td>LECT</td><td>90%</td><td>extra</td></tr>
			</table>`)

		records := ExtractAttendanceRecords(doc)
		if len(records) != 2 {
			t.Fatalf("expected 2 records, got %d", len(records))
		}
		if len(records[0]) != 2 {
			t.Fatal("short row should zip to a shorter record", records[0])
		}
		if len(records[1]) != 3 {
			t.Fatal("extra cells beyond the header should be dropped", records[1])
		}
	})

	t.Run("rows with no non-empty cell are dropped", func(t *testing.T) {
		doc := docFromString(t, `
			<table>
				<tr><th>Subject</th><th>Present</th></tr>
				<tr><td></td><td></td></tr>
				<tr><td>CS101</td><td>18</td></tr>
			</table>`)
		records := ExtractAttendanceRecords(doc)
		if len(records) != 1 {
			t.Fatalf("expected 1 record, got %d", len(records))
		}
	})

	t.Run("multiple qualifying tables merge in document order", func(t *testing.T) {
		doc := docFromString(t, `
			<table>
				<tr><th>Course Code</th><th>Course Name</th></tr>
				<tr><td>CS101</td><td>Data Structures</td></tr>
			</table>
			<table>
				<tr><th>Course</th><th>Percentage</th></tr>
				<tr><td>CS101</td><td>90%</td></tr>
			</table>`)
		records := ExtractAttendanceRecords(doc)
		if len(records) != 2 {
			t.Fatalf("expected 2 records, got %d", len(records))
		}
		if records[0]["Course Code"] != "CS101" {
			t.Fatal("first table should come first", records[0])
		}
		if records[1]["Percentage"] != "90%" {
			t.Fatal("second table should come second", records[1])
		}
	})
}

func TestGrossAttendanceText(t *testing.T) {
	doc := docFromString(t, `<div id="pnlGrossAtt"><span id="lblPopGrossAtt"> 76.5% </span></div>`)
	text, ok := GrossAttendanceText(doc)
	if !ok {
		t.Fatal("expected gross attendance label to be found")
	}
	if text != "76.5%" {
		t.Fatalf("expected %q, got %q", "76.5%", text)
	}

	doc = docFromString(t, `<div>nope</div>`)
	if _, ok := GrossAttendanceText(doc); ok {
		t.Fatal("should not find a gross attendance label")
	}
}

func TestClassifyPage(t *testing.T) {
	cases := []struct {
		name     string
		html     string
		expected PageKind
	}{
		{
			name:     "dashboard",
			html:     `<div id="pnlGrossAtt"></div>`,
			expected: DashboardPage,
		},
		{
			name:     "intermediate",
			html:     `<a href="javascript:__doPostBack('dlAppList$ctl00$ImageButton1','')">eGovernance</a>`,
			expected: IntermediatePage,
		},
		{
			name:     "login",
			html:     `<form><input name="txtUserName" /><input name="txtPassword" /></form>`,
			expected: LoginPage,
		},
		{
			name: "attendance detail",
			html: `<table>
				<tr><th>Course</th><th>Present / Total</th></tr>
				<tr><td>CS101</td><td>18/20</td></tr>
			</table>`,
			expected: AttendanceDetailPage,
		},
		{
			name:     "unknown",
			html:     `<p>session expired</p>`,
			expected: UnknownPage,
		},
	}

	for _, test := range cases {
		t.Run(test.name, func(t *testing.T) {
			kind := ClassifyPage(docFromString(t, test.html))
			if kind != test.expected {
				t.Fatalf("expected %s, got %s", test.expected, kind)
			}
		})
	}
}
