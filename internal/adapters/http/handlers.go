package web

import (
	"bytes"
	"encoding/json"
	"errors"
	"html/template"
	"log/slog"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/csrf"
	"github.com/yuin/goldmark"
	goldmarkHTML "github.com/yuin/goldmark/renderer/html"

	"bafs/internal/adapters/http/middleware"
	auditStore "bafs/internal/adapters/storage/audit"
	gameStore "bafs/internal/adapters/storage/game"
	profileStore "bafs/internal/adapters/storage/profile"
	workStore "bafs/internal/adapters/storage/work"
	"bafs/internal/application/listutil"
	"bafs/internal/application/orchestrators"
	"bafs/internal/application/projections"
	auditDomain "bafs/internal/domain/audit"
	gameDomain "bafs/internal/domain/game"
	profileDomain "bafs/internal/domain/profile"
)

// timeNow is a variable for testability.
var timeNow = time.Now

// mdRenderer is a goldmark instance configured for safe HTML output.
// Raw HTML in markdown input is escaped (WithUnsafe is NOT set), preventing XSS.
var mdRenderer = goldmark.New(
	goldmark.WithRendererOptions(
		goldmarkHTML.WithHardWraps(),
	),
)

// generateID creates a new UUID string.
func generateID() string {
	return uuid.New().String()
}

// internalError logs the real error and returns a generic message to the client.
// This prevents leaking internal details.
func internalError(w http.ResponseWriter, err error) {
	slog.Error("internal_error", "error", err.Error())
	http.Error(w, "internal server error", http.StatusInternalServerError)
}

// strictDecode decodes JSON from the request body, rejecting unknown fields.
func strictDecode(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}

const templatesDir = "internal/adapters/http/templates"

func isJSONRequest(r *http.Request) bool {
	return strings.HasPrefix(r.Header.Get("Content-Type"), "application/json")
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func renderTemplate(w http.ResponseWriter, r *http.Request, templateName string, data any) {
	sess, ok := middleware.GetSessionFromContext(r.Context())
	role := ""
	name := ""
	if ok {
		role = sess.Role
		name = sess.Name
	}

	funcMap := template.FuncMap{
		"currentRole": func() string { return role },
		"currentName": func() string { return name },
		"isLoggedIn":  func() bool { return role != "" },
		"isStaff":     func() bool { return role == profileDomain.RoleAdmin || role == profileDomain.RoleTeacher },
		"csrfToken":   func() string { return csrf.Token(r) },
		"renderMarkdown": func(md string) template.HTML {
			var buf bytes.Buffer
			if err := mdRenderer.Convert([]byte(md), &buf); err != nil {
				return template.HTML(template.HTMLEscapeString(md))
			}
			return template.HTML(buf.String())
		},
		"optionKey": func(i int) string {
			return string(rune('A' + i))
		},
	}

	layoutPath := filepath.Join(templatesDir, "layout.html")
	pagePath := filepath.Join(templatesDir, templateName)
	tpl, err := template.New("layout.html").Funcs(funcMap).ParseFiles(layoutPath, pagePath)
	if err != nil {
		http.Error(w, "Template error: "+err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := tpl.Execute(w, data); err != nil {
		http.Error(w, "Render error: "+err.Error(), http.StatusInternalServerError)
		return
	}
}

// rankingCache adapts the optional global cache for orchestrator deps.
// A plain nil-pointer assignment would produce a non-nil interface.
func rankingCache() orchestrators.LeaderboardCacheForPayout {
	if leaderboardCache == nil {
		return nil
	}
	return leaderboardCache
}

// projectionCache adapts the optional global cache for projection deps.
func projectionCache() projections.LeaderboardCache {
	if leaderboardCache == nil {
		return nil
	}
	return leaderboardCache
}

func dashboardDeps() projections.GetDashboardDeps {
	return projections.GetDashboardDeps{
		ProfileStore:  stores.ProfileStore,
		CompanyStore:  stores.CompanyStore,
		GameStore:     stores.GameStore,
		WorkStore:     stores.WorkStore,
		MaterialStore: stores.MaterialStore,
		LeaderboardDeps: projections.GetLeaderboardDeps{
			ProfileStore: stores.ProfileStore,
			Cache:        projectionCache(),
		},
	}
}

// registerRoutes attaches all application routes to the mux.
func registerRoutes(mux *http.ServeMux) {
	staff := middleware.RequireRole(profileDomain.RoleAdmin, profileDomain.RoleTeacher)

	mux.HandleFunc("/", handleIndex)
	mux.HandleFunc("/login", handleLogin)
	mux.HandleFunc("/logout", handleLogout)
	mux.HandleFunc("/change-password", handleChangePassword)
	mux.Handle("/dashboard", middleware.RequireAuth(http.HandlerFunc(handleDashboard)))
	mux.Handle("/game/answer", middleware.RequireAuth(http.HandlerFunc(handleGameAnswer)))
	mux.Handle("/work", middleware.RequireAuth(http.HandlerFunc(handleWork)))
	mux.Handle("/companies", middleware.RequireAuth(http.HandlerFunc(handleCompanies)))
	mux.Handle("/companies/join", middleware.RequireAuth(http.HandlerFunc(handleCompanyJoin)))
	mux.Handle("/api/leaderboard", middleware.RequireAuth(http.HandlerFunc(handleLeaderboard)))

	mux.Handle("/admin", staff(http.HandlerFunc(handleAdminPage)))
	mux.Handle("/admin/games", staff(http.HandlerFunc(handleAdminGames)))
	mux.Handle("/admin/materials", staff(http.HandlerFunc(handleAdminMaterials)))
	mux.Handle("/admin/profiles", staff(http.HandlerFunc(handleAdminProfiles)))
	mux.Handle("/admin/audit-trail", middleware.RequireRole(profileDomain.RoleAdmin)(http.HandlerFunc(handleAdminAuditTrail)))
}

// handleIndex redirects to the dashboard or login page.
func handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	if _, ok := middleware.GetSessionFromContext(r.Context()); ok {
		http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
		return
	}
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

// handleLogin handles GET (form) and POST (authenticate) for /login.
func handleLogin(w http.ResponseWriter, r *http.Request) {
	if r.Method == "GET" {
		// If already logged in, redirect to dashboard
		if _, ok := middleware.GetSessionFromContext(r.Context()); ok {
			http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
			return
		}
		renderTemplate(w, r, "login.html", map[string]any{
			"CSRFToken": csrf.Token(r),
		})
		return
	}

	if r.Method == "POST" {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Invalid form submission", http.StatusBadRequest)
			return
		}

		input := orchestrators.LoginInput{
			StudentID: r.FormValue("StudentID"),
			Password:  r.FormValue("Password"),
		}

		deps := orchestrators.LoginDeps{
			ProfileStore: stores.ProfileStore,
		}

		result, err := orchestrators.ExecuteLogin(r.Context(), input, deps)
		if err != nil {
			renderTemplate(w, r, "login.html", map[string]any{
				"CSRFToken": csrf.Token(r),
				"Error":     err.Error(),
			})
			return
		}

		// Create session
		token, err := sessions.Create(result.StudentID, result.Name, result.Role)
		if err != nil {
			http.Error(w, "Session error", http.StatusInternalServerError)
			return
		}

		middleware.SetSessionCookie(w, token)
		http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
		return
	}

	w.WriteHeader(http.StatusMethodNotAllowed)
}

// handleLogout handles POST /logout.
func handleLogout(w http.ResponseWriter, r *http.Request) {
	if r.Method != "POST" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	cookie, err := r.Cookie("bafs_session")
	if err == nil {
		sessions.Delete(cookie.Value)
	}

	middleware.ClearSessionCookie(w)
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

// handleChangePassword handles GET (form) and POST (update) for /change-password.
func handleChangePassword(w http.ResponseWriter, r *http.Request) {
	session, ok := middleware.GetSessionFromContext(r.Context())
	if !ok {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	if r.Method == "GET" {
		renderTemplate(w, r, "change_password.html", map[string]any{
			"CSRFToken": csrf.Token(r),
		})
		return
	}

	if r.Method == "POST" {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Form error", http.StatusBadRequest)
			return
		}

		if r.FormValue("NewPassword") != r.FormValue("ConfirmPassword") {
			renderTemplate(w, r, "change_password.html", map[string]any{
				"CSRFToken": csrf.Token(r),
				"Error":     "New passwords do not match",
			})
			return
		}

		input := orchestrators.ChangePasswordInput{
			StudentID:       session.StudentID,
			CurrentPassword: r.FormValue("CurrentPassword"),
			NewPassword:     r.FormValue("NewPassword"),
		}
		deps := orchestrators.ChangePasswordDeps{
			ProfileStore: stores.ProfileStore,
		}

		if err := orchestrators.ExecuteChangePassword(r.Context(), input, deps); err != nil {
			renderTemplate(w, r, "change_password.html", map[string]any{
				"CSRFToken": csrf.Token(r),
				"Error":     err.Error(),
			})
			return
		}

		http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
		return
	}

	w.WriteHeader(http.StatusMethodNotAllowed)
}

// handleDashboard handles GET /dashboard — the main student page.
func handleDashboard(w http.ResponseWriter, r *http.Request) {
	if r.Method != "GET" {
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		return
	}
	sess, _ := middleware.GetSessionFromContext(r.Context())

	query := projections.GetDashboardQuery{StudentID: sess.StudentID}
	result, err := projections.QueryGetDashboard(r.Context(), query, dashboardDeps(), timeNow())
	if err != nil {
		internalError(w, err)
		return
	}

	renderTemplate(w, r, "dashboard.html", map[string]any{
		"CSRFToken": csrf.Token(r),
		"Result":    result,
	})
}

// handleGameAnswer handles POST /game/answer — grade the current quiz.
func handleGameAnswer(w http.ResponseWriter, r *http.Request) {
	if r.Method != "POST" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	sess, _ := middleware.GetSessionFromContext(r.Context())

	var input orchestrators.SubmitAnswerInput
	if isJSONRequest(r) {
		var body struct {
			GameID    string `json:"game_id"`
			Selected  string `json:"selected"`
			AnswerKey string `json:"answer_key"`
		}
		if err := strictDecode(r, &body); err != nil {
			http.Error(w, "invalid JSON body", http.StatusBadRequest)
			return
		}
		input = orchestrators.SubmitAnswerInput{
			GameID:    body.GameID,
			Selected:  body.Selected,
			AnswerKey: body.AnswerKey,
		}
	} else {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Form error", http.StatusBadRequest)
			return
		}
		input = orchestrators.SubmitAnswerInput{
			GameID:    r.FormValue("GameID"),
			Selected:  r.FormValue("Selected"),
			AnswerKey: r.FormValue("AnswerKey"),
		}
	}
	input.StudentID = sess.StudentID

	deps := orchestrators.SubmitAnswerDeps{
		GameStore:    stores.GameStore,
		ProfileStore: stores.ProfileStore,
		AuditStore:   stores.AuditStore,
		Cache:        rankingCache(),
		GenerateID:   generateID,
		Now:          timeNow,
	}

	result, err := orchestrators.ExecuteSubmitAnswer(r.Context(), input, deps)
	if err != nil {
		switch {
		case errors.Is(err, gameStore.ErrDuplicateAttempt):
			if isJSONRequest(r) {
				writeJSON(w, http.StatusConflict, map[string]string{"error": err.Error()})
				return
			}
			http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
		case errors.Is(err, gameDomain.ErrEmptySelection),
			errors.Is(err, gameDomain.ErrInvalidAnswerKey),
			errors.Is(err, orchestrators.ErrGameMismatch):
			if isJSONRequest(r) {
				writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
				return
			}
			http.Error(w, err.Error(), http.StatusBadRequest)
		default:
			internalError(w, err)
		}
		return
	}

	if isJSONRequest(r) {
		writeJSON(w, http.StatusOK, map[string]any{
			"status": result.Status,
			"answer": result.Answer,
			"reward": result.Reward,
		})
		return
	}
	http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
}

// handleWork handles POST /work — record a day of work for a wage.
func handleWork(w http.ResponseWriter, r *http.Request) {
	if r.Method != "POST" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	sess, _ := middleware.GetSessionFromContext(r.Context())

	deps := orchestrators.DoWorkDeps{
		WorkStore:    stores.WorkStore,
		ProfileStore: stores.ProfileStore,
		Cache:        rankingCache(),
		Wage:         workWage,
		GenerateID:   generateID,
		Now:          timeNow,
	}

	result, err := orchestrators.ExecuteDoWork(r.Context(), orchestrators.DoWorkInput{StudentID: sess.StudentID}, deps)
	if err != nil {
		if errors.Is(err, workStore.ErrDuplicateEntry) {
			if isJSONRequest(r) {
				writeJSON(w, http.StatusConflict, map[string]string{"error": err.Error()})
				return
			}
			http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
			return
		}
		internalError(w, err)
		return
	}

	if isJSONRequest(r) {
		writeJSON(w, http.StatusOK, map[string]any{
			"wage": result.Wage,
			"date": result.Date,
		})
		return
	}
	http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
}

// handleCompanies handles POST /companies — found a company.
func handleCompanies(w http.ResponseWriter, r *http.Request) {
	if r.Method != "POST" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	sess, _ := middleware.GetSessionFromContext(r.Context())

	name := ""
	if isJSONRequest(r) {
		var body struct {
			Name string `json:"name"`
		}
		if err := strictDecode(r, &body); err != nil {
			http.Error(w, "invalid JSON body", http.StatusBadRequest)
			return
		}
		name = body.Name
	} else {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Form error", http.StatusBadRequest)
			return
		}
		name = r.FormValue("Name")
	}

	deps := orchestrators.CreateCompanyDeps{
		CompanyStore: stores.CompanyStore,
		ProfileStore: stores.ProfileStore,
		AuditStore:   stores.AuditStore,
		GenerateID:   generateID,
		Now:          timeNow,
	}

	c, err := orchestrators.ExecuteCreateCompany(r.Context(), orchestrators.CreateCompanyInput{
		StudentID: sess.StudentID,
		Name:      name,
	}, deps)
	if err != nil {
		if isJSONRequest(r) {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
			return
		}
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if isJSONRequest(r) {
		writeJSON(w, http.StatusCreated, c)
		return
	}
	http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
}

// handleCompanyJoin handles POST /companies/join.
func handleCompanyJoin(w http.ResponseWriter, r *http.Request) {
	if r.Method != "POST" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	sess, _ := middleware.GetSessionFromContext(r.Context())

	companyID := ""
	if isJSONRequest(r) {
		var body struct {
			CompanyID string `json:"company_id"`
		}
		if err := strictDecode(r, &body); err != nil {
			http.Error(w, "invalid JSON body", http.StatusBadRequest)
			return
		}
		companyID = body.CompanyID
	} else {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Form error", http.StatusBadRequest)
			return
		}
		companyID = r.FormValue("CompanyID")
	}

	deps := orchestrators.JoinCompanyDeps{
		CompanyStore: stores.CompanyStore,
		ProfileStore: stores.ProfileStore,
	}

	if _, err := orchestrators.ExecuteJoinCompany(r.Context(), orchestrators.JoinCompanyInput{
		StudentID: sess.StudentID,
		CompanyID: companyID,
	}, deps); err != nil {
		if isJSONRequest(r) {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
			return
		}
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if isJSONRequest(r) {
		writeJSON(w, http.StatusOK, map[string]string{"company_id": companyID})
		return
	}
	http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
}

// handleLeaderboard handles GET /api/leaderboard — JSON top ranking.
func handleLeaderboard(w http.ResponseWriter, r *http.Request) {
	if r.Method != "GET" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	limit := 0
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		if l, err := strconv.Atoi(limitStr); err == nil && l > 0 && l <= 100 {
			limit = l
		}
	}

	rows, err := projections.QueryGetLeaderboard(r.Context(), projections.GetLeaderboardQuery{Limit: limit}, projections.GetLeaderboardDeps{
		ProfileStore: stores.ProfileStore,
		Cache:        projectionCache(),
	})
	if err != nil {
		internalError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rows)
}

// handleAdminPage handles GET /admin — authoring overview for staff.
func handleAdminPage(w http.ResponseWriter, r *http.Request) {
	if r.Method != "GET" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	games, err := stores.GameStore.List(r.Context(), 20)
	if err != nil {
		internalError(w, err)
		return
	}
	materials, err := stores.MaterialStore.List(r.Context())
	if err != nil {
		internalError(w, err)
		return
	}
	companies, err := stores.CompanyStore.List(r.Context())
	if err != nil {
		internalError(w, err)
		return
	}

	renderTemplate(w, r, "admin.html", map[string]any{
		"CSRFToken": csrf.Token(r),
		"Games":     games,
		"Materials": materials,
		"Companies": companies,
		"Error":     r.URL.Query().Get("error"),
	})
}

// handleAdminGames handles POST /admin/games — publish a daily game.
func handleAdminGames(w http.ResponseWriter, r *http.Request) {
	if r.Method != "POST" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	sess, _ := middleware.GetSessionFromContext(r.Context())

	var input orchestrators.PublishGameInput
	if isJSONRequest(r) {
		var body struct {
			Date      string    `json:"date"`
			Topic     string    `json:"topic"`
			Reward    int       `json:"reward"`
			Question  string    `json:"question"`
			Options   [4]string `json:"options"`
			Answer    string    `json:"answer"`
			AnswerKey string    `json:"answer_key"`
		}
		if err := strictDecode(r, &body); err != nil {
			http.Error(w, "invalid JSON body", http.StatusBadRequest)
			return
		}
		input = orchestrators.PublishGameInput{
			Date:      body.Date,
			Topic:     body.Topic,
			Reward:    body.Reward,
			Question:  body.Question,
			Options:   body.Options,
			Answer:    body.Answer,
			AnswerKey: body.AnswerKey,
		}
	} else {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Form error", http.StatusBadRequest)
			return
		}
		reward := 0
		if v := r.FormValue("Reward"); v != "" {
			parsed, err := strconv.Atoi(v)
			if err != nil || parsed <= 0 {
				http.Redirect(w, r, "/admin?error=reward+must+be+a+positive+number", http.StatusSeeOther)
				return
			}
			reward = parsed
		}
		input = orchestrators.PublishGameInput{
			Date:     r.FormValue("Date"),
			Topic:    r.FormValue("Topic"),
			Reward:   reward,
			Question: r.FormValue("Question"),
			Options: [gameDomain.OptionCount]string{
				r.FormValue("OptionA"),
				r.FormValue("OptionB"),
				r.FormValue("OptionC"),
				r.FormValue("OptionD"),
			},
			AnswerKey: r.FormValue("AnswerKey"),
		}
	}
	input.ActorID = sess.StudentID

	deps := orchestrators.PublishGameDeps{
		GameStore:    stores.GameStore,
		ProfileStore: stores.ProfileStore,
		AuditStore:   stores.AuditStore,
		Sender:       emailSender,
		NotifyEmail:  notifyEmail,
		GenerateID:   generateID,
		Now:          timeNow,
	}

	g, err := orchestrators.ExecutePublishGame(r.Context(), input, deps)
	if err != nil {
		if errors.Is(err, orchestrators.ErrNotAuthorized) {
			http.Error(w, "Forbidden", http.StatusForbidden)
			return
		}
		if isJSONRequest(r) {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
			return
		}
		http.Redirect(w, r, "/admin?error="+template.URLQueryEscaper(err.Error()), http.StatusSeeOther)
		return
	}

	if isJSONRequest(r) {
		writeJSON(w, http.StatusCreated, g)
		return
	}
	http.Redirect(w, r, "/admin", http.StatusSeeOther)
}

// handleAdminMaterials handles POST /admin/materials — add a learning material.
func handleAdminMaterials(w http.ResponseWriter, r *http.Request) {
	if r.Method != "POST" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	sess, _ := middleware.GetSessionFromContext(r.Context())

	var input orchestrators.AddMaterialInput
	if isJSONRequest(r) {
		var body struct {
			Title       string `json:"title"`
			Type        string `json:"type"`
			URL         string `json:"url"`
			Description string `json:"description"`
		}
		if err := strictDecode(r, &body); err != nil {
			http.Error(w, "invalid JSON body", http.StatusBadRequest)
			return
		}
		input = orchestrators.AddMaterialInput{
			Title:       body.Title,
			Type:        body.Type,
			URL:         body.URL,
			Description: body.Description,
		}
	} else {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Form error", http.StatusBadRequest)
			return
		}
		input = orchestrators.AddMaterialInput{
			Title:       r.FormValue("Title"),
			Type:        r.FormValue("Type"),
			URL:         r.FormValue("URL"),
			Description: r.FormValue("Description"),
		}
	}
	input.ActorID = sess.StudentID

	deps := orchestrators.AddMaterialDeps{
		MaterialStore: stores.MaterialStore,
		ProfileStore:  stores.ProfileStore,
		AuditStore:    stores.AuditStore,
		GenerateID:    generateID,
		Now:           timeNow,
	}

	m, err := orchestrators.ExecuteAddMaterial(r.Context(), input, deps)
	if err != nil {
		if errors.Is(err, orchestrators.ErrNotAuthorized) {
			http.Error(w, "Forbidden", http.StatusForbidden)
			return
		}
		if isJSONRequest(r) {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
			return
		}
		http.Redirect(w, r, "/admin?error="+template.URLQueryEscaper(err.Error()), http.StatusSeeOther)
		return
	}

	if isJSONRequest(r) {
		writeJSON(w, http.StatusCreated, m)
		return
	}
	http.Redirect(w, r, "/admin", http.StatusSeeOther)
}

// handleAdminProfiles handles GET (paginated roster) and POST (create) for /admin/profiles.
func handleAdminProfiles(w http.ResponseWriter, r *http.Request) {
	if r.Method == "GET" {
		handleAdminRoster(w, r)
		return
	}
	if r.Method != "POST" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	var input orchestrators.CreateProfileInput
	if isJSONRequest(r) {
		var body struct {
			StudentID string `json:"student_id"`
			Name      string `json:"name"`
			Password  string `json:"password"`
			Role      string `json:"role"`
		}
		if err := strictDecode(r, &body); err != nil {
			http.Error(w, "invalid JSON body", http.StatusBadRequest)
			return
		}
		input = orchestrators.CreateProfileInput{
			StudentID: body.StudentID,
			Name:      body.Name,
			Password:  body.Password,
			Role:      body.Role,
		}
	} else {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Form error", http.StatusBadRequest)
			return
		}
		input = orchestrators.CreateProfileInput{
			StudentID: r.FormValue("StudentID"),
			Name:      r.FormValue("Name"),
			Password:  r.FormValue("Password"),
			Role:      r.FormValue("Role"),
		}
	}
	if input.Role == "" {
		input.Role = profileDomain.RoleStudent
	}

	deps := orchestrators.CreateProfileDeps{
		ProfileStore: stores.ProfileStore,
	}

	id, err := orchestrators.ExecuteCreateProfile(r.Context(), input, deps)
	if err != nil {
		if isJSONRequest(r) {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
			return
		}
		http.Redirect(w, r, "/admin?error="+template.URLQueryEscaper(err.Error()), http.StatusSeeOther)
		return
	}

	if isJSONRequest(r) {
		writeJSON(w, http.StatusCreated, map[string]string{"student_id": id})
		return
	}
	http.Redirect(w, r, "/admin", http.StatusSeeOther)
}

// handleAdminRoster renders the paginated profile roster. The profile
// counts are classroom scale, so filtering and paging happen in memory
// over one List call.
func handleAdminRoster(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	role := q.Get("role")
	if role != "" && role != profileDomain.RoleStudent && role != profileDomain.RoleTeacher && role != profileDomain.RoleAdmin {
		role = ""
	}

	profiles, err := stores.ProfileStore.List(r.Context(), profileStore.ListFilter{Role: role})
	if err != nil {
		internalError(w, err)
		return
	}

	params := listutil.ParsePageParams(q)
	info := listutil.NewPageInfo(params.Page, params.PerPage, len(profiles))
	start, end := info.Offset(), info.EndRow()
	page := profiles[start:end]

	renderTemplate(w, r, "admin_roster.html", map[string]any{
		"CSRFToken": csrf.Token(r),
		"Profiles":  page,
		"PageInfo":  info,
		"Role":      role,
	})
}

// handleAdminAuditTrail renders the admin audit trail page (GET /admin/audit-trail).
// PRE: User must be authenticated as admin
// POST: Renders audit trail with optional filters
func handleAdminAuditTrail(w http.ResponseWriter, r *http.Request) {
	if r.Method != "GET" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	filter := auditStore.Filter{}
	if category := r.URL.Query().Get("category"); category != "" {
		cat := auditDomain.Category(category)
		filter.Category = &cat
	}
	if action := r.URL.Query().Get("action"); action != "" {
		act := auditDomain.Action(action)
		filter.Action = &act
	}
	if actorID := r.URL.Query().Get("actor_id"); actorID != "" {
		filter.ActorID = &actorID
	}
	if fromDate := r.URL.Query().Get("from"); fromDate != "" {
		filter.FromDate = &fromDate
	}
	if toDate := r.URL.Query().Get("to"); toDate != "" {
		filter.ToDate = &toDate
	}

	limit := 100
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		if l, err := strconv.Atoi(limitStr); err == nil && l > 0 && l <= 1000 {
			limit = l
		}
	}

	events, err := stores.AuditStore.List(r.Context(), filter, limit)
	if err != nil {
		internalError(w, err)
		return
	}

	renderTemplate(w, r, "admin_audit_trail.html", map[string]any{
		"Events": events,
		"Limit":  limit,
	})
}
