package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gofrs/uuid/v5"

	"github.com/rankforge/audit-service/internal/entity"
)

type Service interface {
	SubmitIntake(ctx context.Context, sub entity.IntakeSubmission) (entity.AuditIntake, error)
	MarkIntakeSubmitted(ctx context.Context, intakeID uuid.UUID) (entity.AuditIntake, error)
	ApproveIntake(ctx context.Context, intakeID uuid.UUID) (entity.AuditIntake, error)

	RequestRun(ctx context.Context, intakeID uuid.UUID, scope entity.RunScope) (entity.AuditRun, error)
	CancelRun(ctx context.Context, runID uuid.UUID) (entity.AuditRun, error)

	Runs(ctx context.Context, filter entity.RunFilter) ([]entity.AuditRun, int, error)
	Findings(ctx context.Context, runID uuid.UUID, filter entity.FindingFilter) ([]entity.AuditFinding, int, error)
	RunSummary(ctx context.Context, runID uuid.UUID) (entity.RunSummary, error)
	UpdateFindingStatus(ctx context.Context, findingID uuid.UUID, status entity.FindingStatus) (entity.AuditFinding, error)
}

type Handler struct {
	s Service
}

func NewHandler(s Service) *Handler {
	return &Handler{
		s,
	}
}

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	_, err := w.Write([]byte("OK\n"))
	if err != nil {
		SendErr(ctx, w, http.StatusInternalServerError, err, errInternalText)
	}
}

type IntakeResponse struct {
	ID           uuid.UUID `json:"id"`
	ClientID     uuid.UUID `json:"clientId"`
	ContactName  string    `json:"contactName"`
	ContactEmail string    `json:"contactEmail"`
	WebsiteURL   string    `json:"websiteUrl"`
	CMS          string    `json:"cms"`
	Status       string    `json:"status"`
	Goals        int       `json:"goals"`
	Competitors  int       `json:"competitors"`
	Keywords     int       `json:"keywords"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

func (h *Handler) CreateIntake(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var sub entity.IntakeSubmission

	err := json.NewDecoder(r.Body).Decode(&sub)
	if err != nil {
		SendErr(ctx, w, http.StatusBadRequest, err, "invalid request body")
		return
	}

	intake, err := h.s.SubmitIntake(ctx, sub)
	if err != nil {
		SendServiceErr(ctx, w, err)
		return
	}

	SendJSON(ctx, w, http.StatusCreated, intakeToAPI(intake))
}

func (h *Handler) SubmitIntake(w http.ResponseWriter, r *http.Request) {
	h.transitionIntake(w, r, h.s.MarkIntakeSubmitted)
}

func (h *Handler) ApproveIntake(w http.ResponseWriter, r *http.Request) {
	h.transitionIntake(w, r, h.s.ApproveIntake)
}

func (h *Handler) transitionIntake(
	w http.ResponseWriter,
	r *http.Request,
	transition func(context.Context, uuid.UUID) (entity.AuditIntake, error),
) {
	ctx := r.Context()

	intakeID, err := uuid.FromString(chi.URLParam(r, "id"))
	if err != nil {
		SendErr(ctx, w, http.StatusBadRequest, err, "invalid intake id")
		return
	}

	intake, err := transition(ctx, intakeID)
	if err != nil {
		SendServiceErr(ctx, w, err)
		return
	}

	SendJSON(ctx, w, http.StatusOK, intakeToAPI(intake))
}

type RequestRunRequest struct {
	IntakeID uuid.UUID       `json:"intakeId"`
	Scope    entity.RunScope `json:"scope"`
}

type RunResponse struct {
	ID          uuid.UUID       `json:"id"`
	ClientID    uuid.UUID       `json:"clientId"`
	IntakeID    uuid.UUID       `json:"intakeId"`
	Status      string          `json:"status"`
	Scope       entity.RunScope `json:"scope"`
	ErrorDetail string          `json:"errorDetail,omitempty"`
	StartedAt   *time.Time      `json:"startedAt"`
	CompletedAt *time.Time      `json:"completedAt"`
	CreatedAt   time.Time       `json:"createdAt"`
}

func (h *Handler) RequestRun(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req RequestRunRequest

	err := json.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		SendErr(ctx, w, http.StatusBadRequest, err, "invalid request body")
		return
	}

	if req.IntakeID.IsNil() {
		SendErr(ctx, w, http.StatusBadRequest, fmt.Errorf("intakeId is required"), "invalid request body")
		return
	}

	run, err := h.s.RequestRun(ctx, req.IntakeID, req.Scope)
	if err != nil {
		SendServiceErr(ctx, w, err)
		return
	}

	SendJSON(ctx, w, http.StatusCreated, runToAPI(run))
}

func (h *Handler) CancelRun(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	runID, err := uuid.FromString(chi.URLParam(r, "id"))
	if err != nil {
		SendErr(ctx, w, http.StatusBadRequest, err, "invalid run id")
		return
	}

	run, err := h.s.CancelRun(ctx, runID)
	if err != nil {
		SendServiceErr(ctx, w, err)
		return
	}

	SendJSON(ctx, w, http.StatusOK, runToAPI(run))
}

type RunsListResponse struct {
	TotalRuns int           `json:"totalRuns"`
	Runs      []RunResponse `json:"runs"`
}

func (h *Handler) Runs(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	filter, err := parseRunFilter(r.URL.Query())
	if err != nil {
		SendErr(ctx, w, http.StatusBadRequest, err, "invalid query parameters: "+err.Error())
		return
	}

	runs, total, err := h.s.Runs(ctx, filter)
	if err != nil {
		SendServiceErr(ctx, w, err)
		return
	}

	resp := RunsListResponse{
		TotalRuns: total,
		Runs:      make([]RunResponse, 0, len(runs)),
	}

	for _, run := range runs {
		resp.Runs = append(resp.Runs, runToAPI(run))
	}

	SendJSON(ctx, w, http.StatusOK, resp)
}

func parseRunFilter(url url.Values) (entity.RunFilter, error) {
	filter := entity.RunFilter{
		Page:    parsePositive(url.Get("page"), 1),
		Limit:   parsePositive(url.Get("limit"), 0),
		SortBy:  entity.RunSortCol(url.Get("sortBy")),
		OrderBy: entity.OrderByCol(url.Get("orderBy")),
	}

	if q := url.Get("status"); q != "" {
		status := entity.RunStatus(q)
		filter.Status = &status
	}

	if q := url.Get("clientId"); q != "" {
		clientID, err := uuid.FromString(q)
		if err != nil {
			return entity.RunFilter{}, fmt.Errorf("invalid clientId: %s", q)
		}

		filter.ClientID = &clientID
	}

	if q := url.Get("dateFrom"); q != "" {
		dateFrom, err := time.Parse(time.RFC3339, q)
		if err != nil {
			return entity.RunFilter{}, fmt.Errorf("invalid dateFrom: %s", q)
		}

		filter.DateFrom = &dateFrom
	}

	if q := url.Get("dateTo"); q != "" {
		dateTo, err := time.Parse(time.RFC3339, q)
		if err != nil {
			return entity.RunFilter{}, fmt.Errorf("invalid dateTo: %s", q)
		}

		filter.DateTo = &dateTo
	}

	return filter, nil
}

type FindingResponse struct {
	ID             uuid.UUID `json:"id"`
	RunID          uuid.UUID `json:"runId"`
	Title          string    `json:"title"`
	Description    string    `json:"description"`
	Category       string    `json:"category"`
	Location       string    `json:"location,omitempty"`
	Recommendation string    `json:"recommendation,omitempty"`
	Severity       string    `json:"severity"`
	Status         string    `json:"status"`
	ImpactScore    int       `json:"impactScore"`
	EffortScore    int       `json:"effortScore"`
	PriorityScore  int       `json:"priorityScore"`
	CreatedAt      time.Time `json:"createdAt"`
}

type FindingsListResponse struct {
	TotalFindings int               `json:"totalFindings"`
	Findings      []FindingResponse `json:"findings"`
}

func (h *Handler) RunFindings(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	runID, err := uuid.FromString(chi.URLParam(r, "id"))
	if err != nil {
		SendErr(ctx, w, http.StatusBadRequest, err, "invalid run id")
		return
	}

	filter := parseFindingFilter(r.URL.Query())

	findings, total, err := h.s.Findings(ctx, runID, filter)
	if err != nil {
		SendServiceErr(ctx, w, err)
		return
	}

	resp := FindingsListResponse{
		TotalFindings: total,
		Findings:      make([]FindingResponse, 0, len(findings)),
	}

	for _, f := range findings {
		resp.Findings = append(resp.Findings, findingToAPI(f))
	}

	SendJSON(ctx, w, http.StatusOK, resp)
}

func parseFindingFilter(url url.Values) entity.FindingFilter {
	filter := entity.FindingFilter{
		Page:    parsePositive(url.Get("page"), 1),
		Limit:   parsePositive(url.Get("limit"), 0),
		SortBy:  entity.FindingSortCol(url.Get("sortBy")),
		OrderBy: entity.OrderByCol(url.Get("orderBy")),
	}

	if q := url.Get("status"); q != "" {
		status := entity.FindingStatus(q)
		filter.Status = &status
	}

	if q := url.Get("severity"); q != "" {
		severity := entity.Severity(q)
		filter.Severity = &severity
	}

	if q := url.Get("category"); q != "" {
		category := q
		filter.Category = &category
	}

	return filter
}

type RunSummaryResponse struct {
	RunID      uuid.UUID      `json:"runId"`
	Total      int            `json:"total"`
	BySeverity map[string]int `json:"bySeverity"`
	ByStatus   map[string]int `json:"byStatus"`
}

func (h *Handler) RunSummary(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	runID, err := uuid.FromString(chi.URLParam(r, "id"))
	if err != nil {
		SendErr(ctx, w, http.StatusBadRequest, err, "invalid run id")
		return
	}

	summary, err := h.s.RunSummary(ctx, runID)
	if err != nil {
		SendServiceErr(ctx, w, err)
		return
	}

	resp := RunSummaryResponse{
		RunID:      summary.RunID,
		Total:      summary.Total,
		BySeverity: make(map[string]int, len(summary.BySeverity)),
		ByStatus:   make(map[string]int, len(summary.ByStatus)),
	}

	for severity, count := range summary.BySeverity {
		resp.BySeverity[severity.String()] = count
	}

	for status, count := range summary.ByStatus {
		resp.ByStatus[status.String()] = count
	}

	SendJSON(ctx, w, http.StatusOK, resp)
}

type UpdateFindingStatusRequest struct {
	Status string `json:"status"`
}

func (h *Handler) UpdateFindingStatus(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	findingID, err := uuid.FromString(chi.URLParam(r, "id"))
	if err != nil {
		SendErr(ctx, w, http.StatusBadRequest, err, "invalid finding id")
		return
	}

	var req UpdateFindingStatusRequest

	err = json.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		SendErr(ctx, w, http.StatusBadRequest, err, "invalid request body")
		return
	}

	finding, err := h.s.UpdateFindingStatus(ctx, findingID, entity.FindingStatus(req.Status))
	if err != nil {
		SendServiceErr(ctx, w, err)
		return
	}

	SendJSON(ctx, w, http.StatusOK, findingToAPI(finding))
}

func parsePositive(q string, fallback uint64) uint64 {
	v, err := strconv.Atoi(q)
	if err != nil || v <= 0 {
		return fallback
	}

	return uint64(v)
}

func intakeToAPI(intake entity.AuditIntake) IntakeResponse {
	return IntakeResponse{
		ID:           intake.ID,
		ClientID:     intake.ClientID,
		ContactName:  intake.ContactName,
		ContactEmail: intake.ContactEmail,
		WebsiteURL:   intake.WebsiteURL,
		CMS:          intake.CMS.String(),
		Status:       intake.Status.String(),
		Goals:        len(intake.Goals),
		Competitors:  len(intake.Competitors),
		Keywords:     len(intake.Keywords),
		CreatedAt:    intake.CreatedAt,
		UpdatedAt:    intake.UpdatedAt,
	}
}

func runToAPI(run entity.AuditRun) RunResponse {
	return RunResponse{
		ID:          run.ID,
		ClientID:    run.ClientID,
		IntakeID:    run.IntakeID,
		Status:      run.Status.String(),
		Scope:       run.Scope,
		ErrorDetail: run.ErrorDetail,
		StartedAt:   run.StartedAt,
		CompletedAt: run.CompletedAt,
		CreatedAt:   run.CreatedAt,
	}
}

func findingToAPI(f entity.AuditFinding) FindingResponse {
	return FindingResponse{
		ID:             f.ID,
		RunID:          f.RunID,
		Title:          f.Title,
		Description:    f.Description,
		Category:       f.Category,
		Location:       f.Location,
		Recommendation: f.Recommendation,
		Severity:       f.Severity.String(),
		Status:         f.Status.String(),
		ImpactScore:    f.ImpactScore,
		EffortScore:    f.EffortScore,
		PriorityScore:  f.PriorityScore,
		CreatedAt:      f.CreatedAt,
	}
}
