package egov

import (
	"github.com/PuerkitoBio/goquery"

	"egovassist-backend/lib/htmlutil"
)

// Form field names and event targets are part of the portal's wire
// contract, the server rejects submissions that do not match them exactly.
const (
	fieldViewState          = "__VIEWSTATE"
	fieldViewStateGenerator = "__VIEWSTATEGENERATOR"
	fieldEventValidation    = "__EVENTVALIDATION"
	fieldEventTarget        = "__EVENTTARGET"
	fieldEventArgument      = "__EVENTARGUMENT"
	fieldUsername           = "txtUserName"
	fieldPassword           = "txtPassword"

	eventTargetLogin          = "btnLogin"
	eventTargetAppSelect      = "dlAppList$ctl00$ImageButton1"
	eventTargetAttendanceView = "grdGrossAtt$ctl01$lnkRequestViewTT"

	appSelectionPage = "/frmAppSelection.aspx"

	// href substring of the application-list image button anchor
	appListHrefMarker = "dlAppList"
	// id of the panel only rendered on the dashboard
	dashboardPanelId = "pnlGrossAtt"
	// id of the inline gross attendance label
	grossAttendanceLabelId = "lblPopGrossAtt"
)

type PageKind int

const (
	UnknownPage PageKind = iota
	LoginPage
	IntermediatePage
	DashboardPage
	AttendanceDetailPage
)

func (k PageKind) String() string {
	switch k {
	case LoginPage:
		return "login"
	case IntermediatePage:
		return "intermediate"
	case DashboardPage:
		return "dashboard"
	case AttendanceDetailPage:
		return "attendance_detail"
	}
	return "unknown"
}

// Page is a parsed portal response tagged with the screen it represents.
type Page struct {
	Kind PageKind
	Doc  *goquery.Document
}

// ClassifyPage decides which portal screen a document represents based on
// marker elements. The dashboard marker wins over the application list since
// some accounts skip the application selector entirely.
func ClassifyPage(doc *goquery.Document) PageKind {
	if doc.Find("#" + dashboardPanelId).Length() > 0 {
		return DashboardPage
	}
	if _, ok := htmlutil.FindAnchorByHref(doc, appListHrefMarker); ok {
		return IntermediatePage
	}
	if doc.Find("input[name="+fieldUsername+"]").Length() > 0 {
		return LoginPage
	}
	if hasAttendanceTable(doc) {
		return AttendanceDetailPage
	}
	return UnknownPage
}

// GrossAttendanceText returns the raw text of the inline gross attendance
// label, or false when the document does not carry one.
func GrossAttendanceText(doc *goquery.Document) (string, bool) {
	label := doc.Find("#" + grossAttendanceLabelId)
	if label.Length() == 0 {
		return "", false
	}
	return htmlutil.CellText(label), true
}
