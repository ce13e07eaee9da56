package egov

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"

	"egovassist-backend/lib/htmlutil"
)

var tracer = otel.Tracer("scrapers/egov")

type Credentials struct {
	StudentId string
	Password  string
}

// Navigator drives the portal's postback-based navigation. Every step is
// blocking, its payload requires tokens extracted from the previous step's
// response, so there is no valid parallelism within one navigation.
type Navigator struct {
	client *Client
}

func NewNavigator(client *Client) Navigator {
	return Navigator{client: client}
}

// Login performs the credential postback and lands on the dashboard,
// following the intermediate application-selector screen when the portal
// presents one. The returned page always has Kind DashboardPage on success.
func (n Navigator) Login(ctx context.Context, creds Credentials) (Page, error) {
	ctx, span := tracer.Start(ctx, "navigator:Login")
	defer span.End()

	status, body, err := n.client.Get(ctx, "/")
	if err != nil || status != http.StatusOK {
		span.SetStatus(codes.Error, string(ReasonLoginPageUnreachable))
		return Page{}, &NavError{Reason: ReasonLoginPageUnreachable, Status: status, Err: err}
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(body))
	if err != nil {
		span.SetStatus(codes.Error, string(ReasonUnparseableResponse))
		return Page{}, &NavError{Reason: ReasonUnparseableResponse, Err: err}
	}

	state := ExtractFormState(doc)
	status, body, err = n.client.PostForm(ctx, "/", state.LoginPostback(creds.StudentId, creds.Password))
	if err != nil || status != http.StatusOK {
		span.SetStatus(codes.Error, string(ReasonLoginRequestFailed))
		return Page{}, &NavError{Reason: ReasonLoginRequestFailed, Status: status, Err: err}
	}
	doc, err = goquery.NewDocumentFromReader(strings.NewReader(body))
	if err != nil {
		span.SetStatus(codes.Error, string(ReasonUnparseableResponse))
		return Page{}, &NavError{Reason: ReasonUnparseableResponse, Err: err}
	}

	kind := ClassifyPage(doc)
	if kind == DashboardPage {
		// the portal sometimes skips the application selector and lands
		// straight on the dashboard
		slog.DebugContext(ctx, "login landed on dashboard directly")
		return Page{Kind: DashboardPage, Doc: doc}, nil
	}

	anchor, ok := htmlutil.FindAnchorByHref(doc, appListHrefMarker)
	if !ok {
		// a successful login always exposes either the dashboard marker or
		// the application-list link, so this is almost certainly bad
		// credentials
		span.SetStatus(codes.Error, string(ReasonNoApplicationLink))
		return Page{}, &NavError{Reason: ReasonNoApplicationLink}
	}
	slog.DebugContext(ctx, "following application link", "name", anchor.Name)

	state = ExtractFormState(doc)
	status, body, err = n.client.PostForm(ctx, "/", state.Postback(eventTargetAppSelect))
	if err != nil || status != http.StatusOK {
		span.SetStatus(codes.Error, string(ReasonDashboardPostbackFailed))
		return Page{}, &NavError{Reason: ReasonDashboardPostbackFailed, Status: status, Err: err}
	}
	doc, err = goquery.NewDocumentFromReader(strings.NewReader(body))
	if err != nil {
		span.SetStatus(codes.Error, string(ReasonUnparseableResponse))
		return Page{}, &NavError{Reason: ReasonUnparseableResponse, Err: err}
	}

	return Page{Kind: DashboardPage, Doc: doc}, nil
}

// RequestAttendanceDetail posts the attendance-grid request-view postback
// from the dashboard and returns the detail page.
func (n Navigator) RequestAttendanceDetail(ctx context.Context, dashboard Page) (Page, error) {
	ctx, span := tracer.Start(ctx, "navigator:RequestAttendanceDetail")
	defer span.End()

	state := ExtractFormState(dashboard.Doc)
	status, body, err := n.client.PostForm(
		ctx, appSelectionPage,
		state.Postback(eventTargetAttendanceView),
	)
	if err != nil || status != http.StatusOK {
		span.SetStatus(codes.Error, string(ReasonAttendancePostbackFailed))
		return Page{}, &NavError{Reason: ReasonAttendancePostbackFailed, Status: status, Err: err}
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(body))
	if err != nil {
		span.SetStatus(codes.Error, string(ReasonUnparseableResponse))
		return Page{}, &NavError{Reason: ReasonUnparseableResponse, Err: err}
	}

	return Page{Kind: AttendanceDetailPage, Doc: doc}, nil
}
