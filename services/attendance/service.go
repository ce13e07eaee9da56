package attendance

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"egovassist-backend/lib/restyutil"
	"egovassist-backend/lib/scrapers/egov"
	"egovassist-backend/lib/textutil"
)

var tracer = otel.Tracer("services/attendance")

// ErrorKind is the failure class reported back to callers. An
// authentication failure must never be confused with a network fault, and a
// portal with no data is not a connectivity issue.
type ErrorKind string

const (
	ErrorNetwork        ErrorKind = "network error"
	ErrorAuthentication ErrorKind = "authentication error"
	ErrorParse          ErrorKind = "parse error"
	ErrorNoData         ErrorKind = "no data error"
)

// Result is the contract exposed to collaborators (the chat orchestrator and
// the client transports). A failed result always carries empty data and a
// zero summary, and the message always names the student and failure class.
type Result struct {
	Success bool            `json:"success"`
	Data    []CleanedRecord `json:"data"`
	Message string          `json:"message"`
	Summary OverallSummary  `json:"summary"`
}

type ServiceOptions struct {
	// portal root, e.g. "https://charusat.edu.in:912/eGovernance/"
	BaseUrl string
	// per-request timeout for every portal call
	Timeout time.Duration
	// optional sink for raw http dumps while debugging scrapes
	DumpOutput restyutil.InstrumentOutput
}

// Service fetches attendance for one student per call. Each call constructs
// its own portal client and cookie jar, concurrent fetches for different
// students never share session state.
type Service struct {
	opts ServiceOptions
}

func NewService(opts ServiceOptions) Service {
	return Service{opts: opts}
}

type FetchRequest struct {
	StudentId string
	Password  string
	// fetch per-subject detail even when the dashboard already reports a
	// gross figure
	FullDetail bool
}

func failure(kind ErrorKind, studentId string, err error) Result {
	return Result{
		Success: false,
		Data:    []CleanedRecord{},
		Message: fmt.Sprintf("%s for student %s: %s", kind, studentId, err),
	}
}

func kindForError(err error) ErrorKind {
	var navErr *egov.NavError
	if errors.As(err, &navErr) {
		switch {
		case navErr.Reason.Authentication():
			return ErrorAuthentication
		case navErr.Reason.Parse():
			return ErrorParse
		}
	}
	return ErrorNetwork
}

func (s Service) newClient(ctx context.Context) (*egov.Client, error) {
	return egov.NewClient(ctx, egov.ClientOptions{
		BaseUrl:    s.opts.BaseUrl,
		Timeout:    s.opts.Timeout,
		DumpOutput: s.opts.DumpOutput,
	})
}

// FetchAttendance runs the whole pipeline: navigate, extract, clean,
// summarize. It never panics or returns an error, every failure surfaces as
// a structured unsuccessful Result.
func (s Service) FetchAttendance(ctx context.Context, req FetchRequest) Result {
	ctx, span := tracer.Start(ctx, "FetchAttendance")
	defer span.End()
	span.SetAttributes(attribute.String("student", req.StudentId))

	if req.StudentId == "" || req.Password == "" {
		return failure(
			ErrorAuthentication, req.StudentId,
			errors.New("student id and password must be provided"),
		)
	}

	client, err := s.newClient(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to construct portal client")
		return failure(ErrorNetwork, req.StudentId, err)
	}
	nav := egov.NewNavigator(client)

	dashboard, err := nav.Login(ctx, egov.Credentials{
		StudentId: req.StudentId,
		Password:  req.Password,
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "login navigation failed")
		return failure(kindForError(err), req.StudentId, err)
	}

	gross := grossFromPage(ctx, dashboard)
	if gross != nil && !req.FullDetail {
		// cheap path: the dashboard already told us everything the caller
		// asked for
		summary := Summarize(nil, gross)
		return Result{
			Success: true,
			Data:    []CleanedRecord{},
			Message: fmt.Sprintf(
				"Attendance for student %s retrieved: overall %v%%",
				req.StudentId, *gross,
			),
			Summary: summary,
		}
	}

	detail, err := nav.RequestAttendanceDetail(ctx, dashboard)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "attendance detail navigation failed")
		return failure(kindForError(err), req.StudentId, err)
	}

	if gross == nil {
		// the detail page renders the same label when the dashboard
		// skipped it
		gross = grossFromPage(ctx, detail)
	}

	records := Dedupe(CleanRecords(egov.ExtractAttendanceRecords(detail.Doc)))
	if len(records) == 0 && gross == nil {
		span.SetStatus(codes.Error, "no attendance data found")
		return failure(
			ErrorNoData, req.StudentId,
			errors.New("no attendance rows or gross figure found"),
		)
	}

	summary := Summarize(records, gross)
	return Result{
		Success: true,
		Data:    records,
		Message: fmt.Sprintf(
			"Attendance for student %s retrieved: overall %v%% (%d records)",
			req.StudentId, summary.OverallPercentage, len(records),
		),
		Summary: summary,
	}
}

func grossFromPage(ctx context.Context, page egov.Page) *float64 {
	text, ok := egov.GrossAttendanceText(page.Doc)
	if !ok {
		return nil
	}
	value, ok := textutil.ExtractPercent(text)
	if !ok {
		slog.WarnContext(ctx, "could not parse gross attendance", "text", text)
		return nil
	}
	return &value
}

// VerifyCredentials runs the navigation through the login step only. It
// reports invalid credentials as (false, nil), anything else that prevented
// the check is an error.
func (s Service) VerifyCredentials(ctx context.Context, studentId, password string) (bool, error) {
	ctx, span := tracer.Start(ctx, "VerifyCredentials")
	defer span.End()
	span.SetAttributes(attribute.String("student", studentId))

	if studentId == "" || password == "" {
		return false, nil
	}

	client, err := s.newClient(ctx)
	if err != nil {
		span.RecordError(err)
		return false, err
	}

	_, err = egov.NewNavigator(client).Login(ctx, egov.Credentials{
		StudentId: studentId,
		Password:  password,
	})
	if err != nil {
		if kindForError(err) == ErrorAuthentication {
			return false, nil
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, "credential check did not complete")
		return false, err
	}
	return true, nil
}
