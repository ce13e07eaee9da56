package egov

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/google/go-cmp/cmp"
)

func docFromString(t *testing.T, html string) *goquery.Document {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		t.Fatal(err)
	}
	return doc
}

func TestExtractFormState(t *testing.T) {
	cases := []struct {
		name     string
		html     string
		expected FormState
	}{
		{
			name: "all tokens present",
			html: `<form>
				<input type="hidden" name="__VIEWSTATE" value="vs123" />
				<input type="hidden" name="__VIEWSTATEGENERATOR" value="gen456" />
				<input type="hidden" name="__EVENTVALIDATION" value="ev789" />
			</form>`,
			expected: FormState{
				ViewState:          "vs123",
				ViewStateGenerator: "gen456",
				EventValidation:    "ev789",
			},
		},
		{
			name: "missing tokens default to empty",
			html: `<form>
				<input type="hidden" name="__VIEWSTATE" value="vs123" />
			</form>`,
			expected: FormState{ViewState: "vs123"},
		},
		{
			name:     "no form at all",
			html:     `<p>nothing here</p>`,
			expected: FormState{},
		},
	}

	for _, test := range cases {
		t.Run(test.name, func(t *testing.T) {
			doc := docFromString(t, test.html)

			state := ExtractFormState(doc)
			if diff := cmp.Diff(test.expected, state); diff != "" {
				t.Fatal(diff)
			}

			// extraction must be idempotent
			again := ExtractFormState(doc)
			if diff := cmp.Diff(state, again); diff != "" {
				t.Fatal("second extraction differed:", diff)
			}
		})
	}
}

func TestPostbackPayload(t *testing.T) {
	state := FormState{
		ViewState:          "vs",
		ViewStateGenerator: "gen",
		EventValidation:    "ev",
	}

	fields := state.Postback(eventTargetAttendanceView)
	expected := map[string]string{
		"__VIEWSTATE":          "vs",
		"__VIEWSTATEGENERATOR": "gen",
		"__EVENTVALIDATION":    "ev",
		"__EVENTTARGET":        "grdGrossAtt$ctl01$lnkRequestViewTT",
		"__EVENTARGUMENT":      "",
	}
	if diff := cmp.Diff(expected, fields); diff != "" {
		t.Fatal(diff)
	}

	login := FormState{}.LoginPostback("23CS012", "hunter2")
	if login["txtUserName"] != "23CS012" || login["txtPassword"] != "hunter2" {
		t.Fatal("credentials not present in login payload", login)
	}
	if login["__EVENTTARGET"] != "btnLogin" {
		t.Fatal("wrong login event target", login["__EVENTTARGET"])
	}
	// absent tokens submit as empty strings, not missing keys
	if _, ok := login["__VIEWSTATE"]; !ok {
		t.Fatal("empty viewstate should still be submitted")
	}
}
