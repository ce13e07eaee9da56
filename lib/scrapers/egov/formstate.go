package egov

import (
	"github.com/PuerkitoBio/goquery"
)

// FormState holds the hidden postback tokens the server expects back on the
// next form submission. Each token is optional, a missing hidden input
// yields an empty string in the payload rather than an error.
//
// A FormState is only valid for the page it was extracted from, every
// navigation step extracts a fresh one from the previous response.
type FormState struct {
	ViewState          string
	ViewStateGenerator string
	EventValidation    string
}

func ExtractFormState(doc *goquery.Document) FormState {
	return FormState{
		ViewState:          hiddenInput(doc, fieldViewState),
		ViewStateGenerator: hiddenInput(doc, fieldViewStateGenerator),
		EventValidation:    hiddenInput(doc, fieldEventValidation),
	}
}

func hiddenInput(doc *goquery.Document, name string) string {
	return doc.Find("input[name="+name+"]").AttrOr("value", "")
}

// Postback builds the form payload for a __doPostBack submission targeting
// the given control.
func (s FormState) Postback(eventTarget string) map[string]string {
	return map[string]string{
		fieldViewState:          s.ViewState,
		fieldViewStateGenerator: s.ViewStateGenerator,
		fieldEventValidation:    s.EventValidation,
		fieldEventTarget:        eventTarget,
		fieldEventArgument:      "",
	}
}

// LoginPostback is Postback plus the credential fields of the login form.
func (s FormState) LoginPostback(username, password string) map[string]string {
	fields := s.Postback(eventTargetLogin)
	fields[fieldUsername] = username
	fields[fieldPassword] = password
	return fields
}
