package form

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

// DashboardPath is where an authenticated user is sent.
const DashboardPath = "/dashboard"

// ErrInvalidForm is returned by Submit when any field failed validation.
var ErrInvalidForm = errors.New("registration form has errors")

// Session is the auth capability the page depends on.
type Session interface {
	IsAuthenticated() bool
	Register(ctx context.Context, name, email, password string) error
	Login(ctx context.Context, email, password string) error
	Logout(ctx context.Context) error
	Error() string
	ClearError()
}

// Navigator moves the user to another page.
type Navigator interface {
	NavigateTo(path string)
}

// Registration is the state of the form. Transitions return a new value.
type Registration struct {
	Values Values `json:"values"`
	Errors Values `json:"errors"`
	Banner string `json:"banner,omitempty"`
}

// Change sets f to value and clears its error.
func (r Registration) Change(f Field, value string) Registration {
	r.Values = r.Values.With(f, value)
	r.Errors = r.Errors.With(f, "")
	return r
}

// Blur validates f alone. Other field errors are untouched.
func (r Registration) Blur(f Field) Registration {
	r.Errors = r.Errors.With(f, ValidateField(f, r.Values.Get(f), r.Values))
	return r
}

// Validate checks every field and replaces all field errors.
func (r Registration) Validate() Registration {
	var errs Values
	for _, f := range AllFields {
		errs = errs.With(f, ValidateField(f, r.Values.Get(f), r.Values))
	}
	r.Errors = errs
	return r
}

// Valid reports whether no field error is set.
func (r Registration) Valid() bool {
	return !r.Errors.Any()
}

// RegisterPage drives a Registration against a Session.
type RegisterPage struct {
	session Session
	nav     Navigator

	mu   sync.Mutex
	form Registration
}

// NewRegisterPage returns a page with an empty form. If the session is
// already authenticated the user is sent to the dashboard immediately. nav
// may be nil.
func NewRegisterPage(session Session, nav Navigator) *RegisterPage {
	p := &RegisterPage{session: session, nav: nav}
	p.Sync()
	return p
}

// Form returns the current form state.
func (p *RegisterPage) Form() Registration {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.form
}

// Change applies an input change.
func (p *RegisterPage) Change(f Field, value string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.form = p.form.Change(f, value)
}

// Blur validates a field that lost focus.
func (p *RegisterPage) Blur(f Field) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.form = p.form.Blur(f)
}

// Submit validates every field and, when all pass, registers through the
// session. A failed registration is surfaced on the banner via Sync.
func (p *RegisterPage) Submit(ctx context.Context) error {
	p.mu.Lock()
	p.form = p.form.Validate()
	form := p.form
	p.mu.Unlock()

	if !form.Valid() {
		return ErrInvalidForm
	}

	err := p.session.Register(ctx, form.Values.Name, form.Values.Email, form.Values.Password)
	p.Sync()
	if err != nil {
		return fmt.Errorf("register: %w", err)
	}
	return nil
}

// Sync reacts to session changes: an authenticated session navigates to the
// dashboard, and a pending session error moves into the banner and is
// cleared on the session. It reports whether navigation happened.
func (p *RegisterPage) Sync() bool {
	if p.session.IsAuthenticated() {
		if p.nav != nil {
			p.nav.NavigateTo(DashboardPath)
		}
		return true
	}

	if msg := p.session.Error(); msg != "" {
		p.mu.Lock()
		p.form.Banner = msg
		p.mu.Unlock()
		p.session.ClearError()
	}
	return false
}
