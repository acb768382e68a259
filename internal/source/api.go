package source

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/specialistvlad/sweepgrid/internal/ctxlog"
	"github.com/specialistvlad/sweepgrid/internal/document"
	"github.com/specialistvlad/sweepgrid/internal/model"
	"github.com/specialistvlad/sweepgrid/internal/progress"
	"github.com/specialistvlad/sweepgrid/internal/sensitivity"
	"github.com/tidwall/gjson"
	"golang.org/x/oauth2/clientcredentials"
)

// DefaultUserAgent identifies the tool to the project API.
const DefaultUserAgent = "sweepgrid/1.0"

// APIError is returned when the project API answers with an error.
type APIError struct {
	StatusCode int
	Reason     string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("project API error %d: %s", e.StatusCode, e.Reason)
}

// APIConfig configures an APISource.
type APIConfig struct {
	BaseURL      string
	TokenURL     string
	ClientID     string
	ClientSecret string
	Scopes       []string
	UserAgent    string
	// HTTPClient is used as is when set. Otherwise a client authenticated
	// with the client-credentials grant is built from the fields above.
	HTTPClient *http.Client
}

// APISource reads base inputs from the project API.
type APISource struct {
	base      string
	userAgent string
	client    *http.Client
	now       func() time.Time
}

// NewAPISource creates a source for cfg.
func NewAPISource(ctx context.Context, cfg APIConfig) (*APISource, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("project API base URL is required")
	}
	client := cfg.HTTPClient
	if client == nil {
		if cfg.ClientID == "" || cfg.TokenURL == "" {
			return nil, fmt.Errorf("project API client id and token URL are required")
		}
		cc := clientcredentials.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			TokenURL:     cfg.TokenURL,
			Scopes:       cfg.Scopes,
		}
		client = cc.Client(ctx)
	}
	ua := cfg.UserAgent
	if ua == "" {
		ua = DefaultUserAgent
	}
	return &APISource{
		base:      strings.TrimRight(cfg.BaseURL, "/"),
		userAgent: ua,
		client:    client,
		now:       time.Now,
	}, nil
}

type apiProject struct {
	ID         json.Number `json:"id"`
	Name       string      `json:"name"`
	Technology string      `json:"technology"`
	Phase      int         `json:"phase"`
	Parent     struct {
		Name string `json:"name"`
	} `json:"parent"`
}

func (p apiProject) model(currency string) model.Project {
	return model.Project{
		ProjectID:   p.ID.String(),
		ProjectName: p.Name,
		Technology:  p.Technology,
		Phase:       p.Phase,
		Country:     p.Parent.Name,
		Currency:    currency,
	}
}

type listing struct {
	Projects []struct {
		Project        apiProject      `json:"project"`
		LiveAssessment json.RawMessage `json:"live_assessment"`
	} `json:"projects"`
}

// BaseInputs implements Source. It lists every project with a live
// assessment under the settings' folder, screens it and fetches the engine
// input of those that pass.
func (s *APISource) BaseInputs(ctx context.Context, settings *sensitivity.Settings) (*model.BaseInputs, error) {
	logger := ctxlog.FromContext(ctx)
	start := s.now()
	today := model.NewDate(start.Year(), start.Month(), start.Day())

	q := url.Values{"recursive": {"true"}}
	var list listing
	if err := s.getJSON(ctx, "/folders/"+url.PathEscape(settings.Folder)+"/projects?"+q.Encode(), &list); err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}

	out := model.NewCollection[model.BaseInput]()
	for _, item := range list.Projects {
		assessment := gjson.ParseBytes(item.LiveAssessment)
		hasLive := len(item.LiveAssessment) > 0 && assessment.Type != gjson.Null
		project := item.Project.model(assessment.Get("results.currency").String())
		plog := logger.With("project_id", project.ProjectID, "project_name", project.ProjectName)

		verdict := Screen(Candidate{
			Project:           project,
			HasLiveAssessment: hasLive,
			Imported:          assessment.Get("imported").Bool(),
			SaleDate:          assessment.Get("results.data_dict.project_sale_date").String(),
			FinancialClose:    assessment.Get("results.data_dict.financial_close").String(),
		}, settings, today)
		if !verdict.Accepted {
			if verdict.Reason != "" {
				plog.Warn("Project skipped", "reason", verdict.Reason)
			}
			continue
		}

		fetchStart := s.now()
		doc, err := s.engineInput(ctx, item.LiveAssessment)
		if err != nil {
			return nil, fmt.Errorf("project '%s': %w", project.ProjectID, err)
		}
		if v := ScreenEngineInput(doc); !v.Accepted {
			plog.Warn("Project skipped", "reason", v.Reason)
			continue
		}
		out.Add(model.BaseInput{Project: project, EngineInput: &doc})
		plog.Info("Got engine input", "duration", progress.FormatDuration(s.now().Sub(fetchStart)))
	}

	logger.Info("Loaded live assessments",
		"count", out.Len(),
		"listed", len(list.Projects),
		"duration", progress.FormatDuration(s.now().Sub(start)),
	)
	return out, nil
}

// Assessment fetches one specific assessment of a project. Design runs use it
// to pin the assessment a design was drawn up against.
func (s *APISource) Assessment(ctx context.Context, projectID, assessmentID string) (model.BaseInput, error) {
	var raw json.RawMessage
	path := "/projects/" + url.PathEscape(projectID) + "/assessments/" + url.PathEscape(assessmentID)
	if err := s.getJSON(ctx, path, &raw); err != nil {
		return model.BaseInput{}, fmt.Errorf("get assessment '%s' of project '%s': %w", assessmentID, projectID, err)
	}
	var project apiProject
	if err := s.getJSON(ctx, "/projects/"+url.PathEscape(projectID), &project); err != nil {
		return model.BaseInput{}, fmt.Errorf("get project '%s': %w", projectID, err)
	}

	doc, err := s.engineInput(ctx, raw)
	if err != nil {
		return model.BaseInput{}, fmt.Errorf("project '%s': %w", projectID, err)
	}
	if v := ScreenEngineInput(doc); !v.Accepted {
		return model.BaseInput{}, &APIError{StatusCode: http.StatusOK, Reason: string(v.Reason)}
	}
	currency := gjson.GetBytes(raw, "results.currency").String()
	return model.BaseInput{Project: project.model(currency), EngineInput: &doc}, nil
}

// Assessments fetches every referenced assessment in order.
func (s *APISource) Assessments(ctx context.Context, refs []AssessmentRef) (*model.BaseInputs, error) {
	out := model.NewCollection[model.BaseInput]()
	for _, ref := range refs {
		base, err := s.Assessment(ctx, ref.ProjectID, ref.AssessmentID)
		if err != nil {
			return nil, err
		}
		out.Add(base)
	}
	return out, nil
}

// engineInput asks the API to turn an assessment into an engine-input
// document. The assessment is sent with its results cleared.
func (s *APISource) engineInput(ctx context.Context, assessment json.RawMessage) (document.Document, error) {
	var payload map[string]json.RawMessage
	if err := json.Unmarshal(assessment, &payload); err != nil {
		return document.Document{}, fmt.Errorf("decode assessment: %w", err)
	}
	payload["results"] = json.RawMessage("null")
	body, err := json.Marshal(payload)
	if err != nil {
		return document.Document{}, fmt.Errorf("encode assessment: %w", err)
	}

	status, resp, err := s.do(ctx, http.MethodPost, "/calculation/validate", body)
	if err != nil {
		return document.Document{}, err
	}
	if status != http.StatusOK {
		return document.Document{}, &APIError{StatusCode: status, Reason: "error getting calculation engine input: " + string(resp)}
	}
	parsed := gjson.ParseBytes(resp)
	if errs := parsed.Get("errors"); truthy(errs) {
		return document.Document{}, &APIError{StatusCode: status, Reason: "error getting calculation engine input: " + errs.Raw}
	}
	input := parsed.Get("calculationInput")
	if !input.Exists() || !input.IsObject() {
		return document.Document{}, &APIError{StatusCode: status, Reason: "response has no calculationInput"}
	}
	return document.Parse([]byte(input.Raw))
}

// truthy reports whether r holds a non-empty value.
func truthy(r gjson.Result) bool {
	switch {
	case !r.Exists():
		return false
	case r.IsArray():
		return len(r.Array()) > 0
	case r.IsObject():
		return len(r.Map()) > 0
	case r.Type == gjson.String:
		return r.Str != ""
	default:
		return r.Bool()
	}
}

func (s *APISource) getJSON(ctx context.Context, path string, v any) error {
	status, body, err := s.do(ctx, http.MethodGet, path, nil)
	if err != nil {
		return err
	}
	if status != http.StatusOK {
		return &APIError{StatusCode: status, Reason: strings.TrimSpace(string(body))}
	}
	if err := json.Unmarshal(body, v); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}

func (s *APISource) do(ctx context.Context, method, path string, body []byte) (int, []byte, error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, s.base+path, reader)
	if err != nil {
		return 0, nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", s.userAgent)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return 0, nil, fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, fmt.Errorf("read %s response: %w", path, err)
	}
	return resp.StatusCode, data, nil
}
