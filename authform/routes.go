// Common routes and pages
package authform

import (
	"net/http"
	"sync"

	"github.com/G-Node/authform/authform/db"
	"github.com/G-Node/authform/authform/form"
	"github.com/G-Node/authform/authform/schema"
	"github.com/G-Node/authform/templates"
	"github.com/gorilla/mux"
)

// formPage binds a form schema to the endpoint it submits to and the page it
// is rendered on.
type formPage struct {
	schema   *schema.Schema
	endpoint form.Endpoint
	title    string
	action   string
}

var (
	loginPage = formPage{
		schema:   schema.Login(),
		endpoint: form.LoginEndpoint,
		title:    "Sign in",
		action:   "/login",
	}
	registerPage = formPage{
		schema:   schema.Register(),
		endpoint: form.RegisterEndpoint,
		title:    "Create an account",
		action:   "/register",
	}
)

// fieldView is the template data for a single input.
type fieldView struct {
	Name        string
	Label       string
	Placeholder string
	Kind        schema.Kind
	Required    bool
	Value       string
	Error       string
}

// setupWebRoutes sets up the routes of the web interface.
//
// Sign-in and sign-up forms, home page, and submission attempt log.
func (srv *Service) setupWebRoutes() error {
	router := srv.web.Router
	router.StrictSlash(true)

	for _, page := range []formPage{loginPage, registerPage} {
		page := page
		router.HandleFunc(page.action, func(w http.ResponseWriter, r *http.Request) {
			srv.renderForm(w, http.StatusOK, page, form.State{})
		}).Methods("GET")
		router.HandleFunc(page.action, func(w http.ResponseWriter, r *http.Request) {
			srv.processForm(w, r, page)
		}).Methods("POST")
	}

	router.HandleFunc("/", srv.renderHome).Methods("GET")
	router.HandleFunc("/log", srv.renderLog).Methods("GET")
	router.HandleFunc("/log/{id:[0-9a-f-]+}", srv.showAttempt).Methods("GET")
	return nil
}

func (srv *Service) renderForm(w http.ResponseWriter, status int, page formPage, state form.State) {
	fields := make([]fieldView, len(page.schema.Fields))
	for idx, f := range page.schema.Fields {
		fields[idx] = fieldView{
			Name:        f.Name,
			Label:       f.Label,
			Placeholder: f.Placeholder,
			Kind:        f.Kind,
			Required:    f.Required,
			Error:       state.FieldError(f.Name),
		}
		// passwords are never sent back to the browser
		if f.Kind != schema.PasswordField {
			fields[idx].Value = state.Values[f.Name]
		}
	}

	data := make(map[string]interface{})
	data["Title"] = page.title
	data["Name"] = page.schema.Name
	data["Action"] = page.action
	data["Fields"] = fields
	data["FormError"] = state.FormError
	srv.web.Render(w, status, templates.AuthForm, data)
}

// processForm runs a submission of the posted values through a form
// controller that lives for the duration of the request.
func (srv *Service) processForm(w http.ResponseWriter, r *http.Request, page formPage) {
	if err := r.ParseForm(); err != nil {
		srv.web.ErrorResponse(w, http.StatusBadRequest, "Failed to parse form")
		return
	}

	target := ""
	navigator := form.NavigatorFunc(func(path string) { target = path })
	ctrl := form.NewController(page.schema, page.endpoint, srv.client, navigator, form.WithLogger(srv.log))
	defer ctrl.Close()

	for _, name := range page.schema.FieldNames() {
		ctrl.SetValue(name, r.PostForm.Get(name))
	}

	res, err := ctrl.Submit(r.Context())
	if err != nil {
		srv.log.Warn("Submission abandoned", "form", page.schema.Name, "error", err)
		srv.web.ErrorResponse(w, http.StatusServiceUnavailable, "Submission abandoned")
		return
	}

	if res.Status == form.StatusSucceeded {
		for _, c := range res.Outcome.Cookies {
			srv.sessionCookies.add(c.Name)
			http.SetCookie(w, relayCookie(c))
		}
		http.Redirect(w, r, target, http.StatusSeeOther)
		return
	}
	srv.renderForm(w, http.StatusUnprocessableEntity, page, ctrl.State())
}

// relayCookie copies a cookie set by the remote API so the browser stores it
// for this host.
func relayCookie(c *http.Cookie) *http.Cookie {
	return &http.Cookie{
		Name:     c.Name,
		Value:    c.Value,
		Path:     "/",
		Expires:  c.Expires,
		MaxAge:   c.MaxAge,
		Secure:   c.Secure,
		HttpOnly: c.HttpOnly,
		SameSite: c.SameSite,
	}
}

// cookieNames is the set of session cookie names relayed to browsers so far.
type cookieNames struct {
	mu    sync.RWMutex
	names map[string]struct{}
}

func (cn *cookieNames) add(name string) {
	cn.mu.Lock()
	defer cn.mu.Unlock()
	if cn.names == nil {
		cn.names = make(map[string]struct{})
	}
	cn.names[name] = struct{}{}
}

// present reports whether the request carries one of the relayed cookies.
func (cn *cookieNames) present(r *http.Request) bool {
	cn.mu.RLock()
	defer cn.mu.RUnlock()
	for _, c := range r.Cookies() {
		if _, ok := cn.names[c.Name]; ok && c.Value != "" {
			return true
		}
	}
	return false
}

func (srv *Service) renderHome(w http.ResponseWriter, r *http.Request) {
	data := make(map[string]interface{})
	data["Title"] = "Home"
	data["SignedIn"] = srv.sessionCookies.present(r)
	srv.web.Render(w, http.StatusOK, templates.Home, data)
}

func (srv *Service) renderLog(w http.ResponseWriter, r *http.Request) {
	if srv.db == nil {
		srv.web.ErrorResponse(w, http.StatusNotFound, "Attempt log is disabled")
		return
	}
	identity := r.URL.Query().Get("identity")
	var attempts []db.Attempt
	var err error
	if identity != "" {
		attempts, err = srv.db.GetIdentityAttempts(identity)
	} else {
		attempts, err = srv.db.AllAttempts()
	}
	if err != nil {
		srv.log.Error("Error reading attempts from DB", "error", err)
		srv.web.ErrorResponse(w, http.StatusInternalServerError, "Error reading attempts from DB")
		return
	}
	data := make(map[string]interface{})
	data["Title"] = "Attempts"
	data["Identity"] = identity
	data["Attempts"] = attempts
	srv.web.Render(w, http.StatusOK, templates.LogView, data)
}

func (srv *Service) showAttempt(w http.ResponseWriter, r *http.Request) {
	if srv.db == nil {
		srv.web.ErrorResponse(w, http.StatusNotFound, "Attempt log is disabled")
		return
	}
	id := mux.Vars(r)["id"]
	attempt, err := srv.db.GetAttempt(id)
	if err != nil || attempt == nil {
		srv.web.ErrorResponse(w, http.StatusNotFound, "No such attempt")
		return
	}
	data := make(map[string]interface{})
	data["Title"] = "Attempt"
	data["Attempt"] = attempt
	srv.web.Render(w, http.StatusOK, templates.AttemptView, data)
}
