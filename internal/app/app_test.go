package app

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"skillpath_backend/internal/config"
	"skillpath_backend/internal/service"
	"skillpath_backend/internal/testutil"

	"github.com/gin-gonic/gin"
)

type envelope struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

type client struct {
	t      *testing.T
	router http.Handler
}

func (c client) do(method, path, token string, body interface{}) (int, envelope) {
	c.t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			c.t.Fatalf("marshal: %v", err)
		}
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	c.router.ServeHTTP(w, req)

	var env envelope
	if strings.HasPrefix(w.Header().Get("Content-Type"), "application/json") {
		if err := json.Unmarshal(w.Body.Bytes(), &env); err != nil {
			c.t.Fatalf("%s %s: decode: %v (%s)", method, path, err, w.Body.String())
		}
	}
	return w.Code, env
}

func (c client) mustDo(method, path, token string, body interface{}, want int, out interface{}) {
	c.t.Helper()
	code, env := c.do(method, path, token, body)
	if code != want {
		c.t.Fatalf("%s %s = %d (%s), want %d", method, path, code, env.Message, want)
	}
	if out != nil {
		if err := json.Unmarshal(env.Data, out); err != nil {
			c.t.Fatalf("%s %s: decode data: %v", method, path, err)
		}
	}
}

func newTestApp(t *testing.T) (*App, *testutil.FakeGenerator) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := testutil.NewTestDB(t)
	gen := &testutil.FakeGenerator{Respond: func(prompt string) (string, error) {
		if strings.Contains(prompt, "multiple choice questions for skill SQL") {
			return testutil.MCQJSON("SQL", 5), nil
		}
		return `{"strengths":["SQL"],"weaknesses":["Python"],"summary":"Solid SQL."}`, nil
	}}
	cfg := &config.Config{
		Server:  config.ServerConfig{Port: "0", Mode: gin.TestMode},
		JWT:     config.JWTConfig{Secret: "test-secret", ExpireTime: time.Hour, RefreshExpireTime: 24 * time.Hour},
		Storage: config.StorageConfig{Type: "local", LocalPath: t.TempDir()},
	}

	testutil.CreateContent(t, db, "SQL Joins", "SQL")
	testutil.CreateContent(t, db, "Python Basics", "Python")

	app := New(cfg, Deps{DB: db, Generator: gen, Lock: service.NewLocalLock()})
	return app, gen
}

func login(c client, username, password string) string {
	c.t.Helper()
	var res struct {
		Access string `json:"access"`
	}
	c.mustDo(http.MethodPost, "/api/auth/login", "", gin.H{"username": username, "password": password}, http.StatusOK, &res)
	if res.Access == "" {
		c.t.Fatalf("login %s: empty access token", username)
	}
	return res.Access
}

func TestLearnerFlow(t *testing.T) {
	app, _ := newTestApp(t)
	c := client{t: t, router: app.Router}

	c.mustDo(http.MethodPost, "/api/auth/register", "", gin.H{
		"username": "admin", "password": "secret123", "email": "admin@example.com", "role": "admin",
	}, http.StatusCreated, nil)
	adminToken := login(c, "admin", "secret123")

	var employee struct {
		ID uint `json:"id"`
	}
	c.mustDo(http.MethodPost, "/api/employees", adminToken, gin.H{
		"name": "Ana", "email": "ana@example.com", "jobRole": "Data Analyst", "skills": []string{"SQL"},
	}, http.StatusCreated, &employee)
	var other struct {
		ID uint `json:"id"`
	}
	c.mustDo(http.MethodPost, "/api/employees", adminToken, gin.H{
		"name": "Bo", "jobRole": "Data Analyst", "skills": []string{"Excel"},
	}, http.StatusCreated, &other)

	c.mustDo(http.MethodPost, "/api/auth/register", "", gin.H{
		"username": "ana", "password": "secret123", "email": "ana@example.com", "employeeId": employee.ID,
	}, http.StatusCreated, nil)
	token := login(c, "ana", "secret123")
	base := fmt.Sprintf("/api/learner/%d", employee.ID)

	// 访问控制
	if code, _ := c.do(http.MethodGet, base+"/dashboard", "", nil); code != http.StatusUnauthorized {
		t.Fatalf("anonymous dashboard = %d, want 401", code)
	}
	if code, _ := c.do(http.MethodGet, fmt.Sprintf("/api/learner/%d/dashboard", other.ID), token, nil); code != http.StatusForbidden {
		t.Fatalf("foreign dashboard = %d, want 403", code)
	}
	if code, _ := c.do(http.MethodGet, "/api/admin/analytics", token, nil); code != http.StatusForbidden {
		t.Fatalf("employee analytics = %d, want 403", code)
	}

	c.mustDo(http.MethodPost, base+"/assessment/start", token, nil, http.StatusCreated, nil)
	c.mustDo(http.MethodPost, base+"/assessment/start", token, nil, http.StatusOK, nil)

	var generated struct {
		Questions []service.QuestionView `json:"questions"`
	}
	c.mustDo(http.MethodPost, base+"/assessment/generate", token, nil, http.StatusOK, &generated)
	if len(generated.Questions) != 5 {
		t.Fatalf("questions = %d, want 5", len(generated.Questions))
	}

	answers := map[string]string{}
	for i, q := range generated.Questions {
		option := "A"
		if i < 2 {
			option = "B"
		}
		answers[fmt.Sprint(q.ID)] = option
	}
	var submitted service.SubmitResult
	c.mustDo(http.MethodPost, base+"/assessment/submit", token, gin.H{"answers": answers}, http.StatusOK, &submitted)
	if submitted.Results["SQL"] != 60 {
		t.Fatalf("SQL score = %d, want 60", submitted.Results["SQL"])
	}

	var results service.ResultsView
	c.mustDo(http.MethodGet, base+"/assessment/results", token, nil, http.StatusOK, &results)
	if results.Results["SQL"] != 60 {
		t.Fatalf("latest SQL score = %d, want 60", results.Results["SQL"])
	}

	c.mustDo(http.MethodPost, base+"/learning-path/generate", token, nil, http.StatusOK, nil)
	var path struct {
		LearningItems []struct {
			ID    uint   `json:"id"`
			Skill string `json:"skill"`
		} `json:"learningItems"`
	}
	c.mustDo(http.MethodGet, base+"/learning-path", token, nil, http.StatusOK, &path)
	if len(path.LearningItems) != 1 || path.LearningItems[0].Skill != "SQL" {
		t.Fatalf("learning items = %+v, want the SQL content", path.LearningItems)
	}
	contentID := path.LearningItems[0].ID

	c.mustDo(http.MethodPost, fmt.Sprintf("%s/learning/%d/start", base, contentID), token, nil, http.StatusOK, nil)
	c.mustDo(http.MethodPost, fmt.Sprintf("%s/learning/%d/complete", base, contentID), token, nil, http.StatusOK, nil)
	var workflow service.WorkflowStatus
	c.mustDo(http.MethodGet, base+"/workflow", token, nil, http.StatusOK, &workflow)
	if !workflow.AssessmentCompleted || !workflow.LearningInProgress {
		t.Fatalf("workflow = %+v", workflow)
	}
	var bar service.ProgressBar
	c.mustDo(http.MethodGet, base+"/progress-bar", token, nil, http.StatusOK, &bar)
	if bar.ProgressPercent != 100 {
		t.Fatalf("progress = %d, want 100", bar.ProgressPercent)
	}
	c.mustDo(http.MethodGet, base+"/dashboard", token, nil, http.StatusOK, nil)

	var summary struct {
		TotalEmployees       int64 `json:"totalEmployees"`
		AssessmentsCompleted int64 `json:"assessmentsCompleted"`
	}
	c.mustDo(http.MethodGet, "/api/admin/analytics", adminToken, nil, http.StatusOK, &summary)
	if summary.TotalEmployees != 2 || summary.AssessmentsCompleted != 1 {
		t.Fatalf("summary = %+v, want 2 employees and 1 assessment", summary)
	}

	var events []struct {
		EventType string `json:"eventType"`
	}
	c.mustDo(http.MethodGet, fmt.Sprintf("/api/admin/employees/%d/events", employee.ID), adminToken, nil, http.StatusOK, &events)
	if len(events) == 0 {
		t.Fatal("expected learning events")
	}
}

func TestSystemRoutes(t *testing.T) {
	app, _ := newTestApp(t)
	c := client{t: t, router: app.Router}

	c.mustDo(http.MethodGet, "/api/health", "", nil, http.StatusOK, nil)

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	w := httptest.NewRecorder()
	app.Router.ServeHTTP(w, req)
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), "http_requests_total") {
		t.Fatalf("metrics = %d", w.Code)
	}

	c.mustDo(http.MethodGet, "/api/employees/public", "", nil, http.StatusOK, nil)
	if code, _ := c.do(http.MethodGet, "/api/employees", "", nil); code != http.StatusUnauthorized {
		t.Fatalf("anonymous employee list = %d, want 401", code)
	}
}

func TestConfigCallbacks(t *testing.T) {
	app, _ := newTestApp(t)

	var got string
	app.RegisterConfigCallback(func(cfg *config.Config) { got = cfg.AI.Model })
	app.applyConfig(&config.Config{AI: config.AIConfig{Model: "gemini-2.5-pro"}})
	if got != "gemini-2.5-pro" {
		t.Fatalf("callback saw %q", got)
	}
}
