package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/gofrs/uuid/v5"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype/zeronull"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/rankforge/audit-service/internal/entity"
)

// activeRunConstraint is the partial unique index enforcing at most one
// QUEUED or RUNNING audit per client.
const activeRunConstraint = "audit_runs_one_active_per_client"

const uniqueViolationCode = "23505"

type Repository struct {
	db *pgxpool.Pool
}

func New(pool *pgxpool.Pool) *Repository {
	return &Repository{
		db: pool,
	}
}

func (r *Repository) ClientOwnership(ctx context.Context, clientID uuid.UUID) (entity.Ownership, error) {
	const q = `
	SELECT c.id, c.agency_id, a.tenant_id
	FROM clients c
	JOIN agencies a ON a.id = c.agency_id
	WHERE c.id = $1`

	var own entity.Ownership

	err := r.db.QueryRow(ctx, q, clientID).Scan(&own.ClientID, &own.AgencyID, &own.TenantID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return entity.Ownership{}, entity.ErrNotFound
		}

		return entity.Ownership{}, err
	}

	return own, nil
}

func (r *Repository) CreateIntake(ctx context.Context, intake entity.AuditIntake) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}

	defer tx.Rollback(ctx)

	const q = `
	INSERT INTO audit_intakes (
		id, client_id, requested_by,
		contact_name, contact_email, contact_phone,
		website_url, staging_url, subdomains, cms, cms_version, hosting_provider,
		has_google_analytics, has_search_console, has_business_profile, has_tag_manager,
		markets, primary_services, notes, status, created_at, updated_at
	)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22)`

	_, err = tx.Exec(ctx, q,
		intake.ID,
		intake.ClientID,
		intake.RequestedBy,
		intake.ContactName,
		intake.ContactEmail,
		intake.ContactPhone,
		intake.WebsiteURL,
		intake.StagingURL,
		intake.Subdomains,
		intake.CMS,
		intake.CMSVersion,
		intake.HostingProvider,
		intake.HasGoogleAnalytics,
		intake.HasSearchConsole,
		intake.HasBusinessProfile,
		intake.HasTagManager,
		intake.Markets,
		intake.PrimaryServices,
		intake.Notes,
		intake.Status,
		intake.CreatedAt,
		intake.UpdatedAt,
	)
	if err != nil {
		return err
	}

	for _, g := range intake.Goals {
		_, err = tx.Exec(ctx,
			`INSERT INTO audit_intake_goals (id, intake_id, name, description) VALUES ($1, $2, $3, $4)`,
			g.ID, intake.ID, g.Name, g.Description,
		)
		if err != nil {
			return err
		}
	}

	for _, c := range intake.Competitors {
		_, err = tx.Exec(ctx,
			`INSERT INTO audit_intake_competitors (id, intake_id, name, website_url) VALUES ($1, $2, $3, $4)`,
			c.ID, intake.ID, c.Name, c.WebsiteURL,
		)
		if err != nil {
			return err
		}
	}

	for _, kw := range intake.Keywords {
		_, err = tx.Exec(ctx,
			`INSERT INTO audit_intake_keywords (id, intake_id, phrase, intent) VALUES ($1, $2, $3, $4)`,
			kw.ID, intake.ID, kw.Phrase, kw.Intent,
		)
		if err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

func (r *Repository) IntakeByID(ctx context.Context, id uuid.UUID) (entity.AuditIntake, error) {
	const q = `
	SELECT id, client_id, requested_by,
		contact_name, contact_email, contact_phone,
		website_url, staging_url, subdomains, cms, cms_version, hosting_provider,
		has_google_analytics, has_search_console, has_business_profile, has_tag_manager,
		markets, primary_services, notes, status, created_at, updated_at
	FROM audit_intakes
	WHERE id = $1`

	var intake entity.AuditIntake

	err := r.db.QueryRow(ctx, q, id).Scan(
		&intake.ID,
		&intake.ClientID,
		&intake.RequestedBy,
		&intake.ContactName,
		&intake.ContactEmail,
		&intake.ContactPhone,
		&intake.WebsiteURL,
		&intake.StagingURL,
		&intake.Subdomains,
		&intake.CMS,
		&intake.CMSVersion,
		&intake.HostingProvider,
		&intake.HasGoogleAnalytics,
		&intake.HasSearchConsole,
		&intake.HasBusinessProfile,
		&intake.HasTagManager,
		&intake.Markets,
		&intake.PrimaryServices,
		&intake.Notes,
		&intake.Status,
		&intake.CreatedAt,
		&intake.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return entity.AuditIntake{}, entity.ErrNotFound
		}

		return entity.AuditIntake{}, err
	}

	err = r.loadIntakeChildren(ctx, &intake)
	if err != nil {
		return entity.AuditIntake{}, err
	}

	return intake, nil
}

func (r *Repository) loadIntakeChildren(ctx context.Context, intake *entity.AuditIntake) error {
	rows, err := r.db.Query(ctx,
		`SELECT id, name, description FROM audit_intake_goals WHERE intake_id = $1 ORDER BY name`, intake.ID)
	if err != nil {
		return err
	}

	defer rows.Close()

	for rows.Next() {
		var g entity.ConversionGoal

		err = rows.Scan(&g.ID, &g.Name, &g.Description)
		if err != nil {
			return err
		}

		intake.Goals = append(intake.Goals, g)
	}

	rows, err = r.db.Query(ctx,
		`SELECT id, name, website_url FROM audit_intake_competitors WHERE intake_id = $1 ORDER BY website_url`, intake.ID)
	if err != nil {
		return err
	}

	defer rows.Close()

	for rows.Next() {
		var c entity.IntakeCompetitor

		err = rows.Scan(&c.ID, &c.Name, &c.WebsiteURL)
		if err != nil {
			return err
		}

		intake.Competitors = append(intake.Competitors, c)
	}

	rows, err = r.db.Query(ctx,
		`SELECT id, phrase, intent FROM audit_intake_keywords WHERE intake_id = $1 ORDER BY phrase`, intake.ID)
	if err != nil {
		return err
	}

	defer rows.Close()

	for rows.Next() {
		var kw entity.IntakeKeyword

		err = rows.Scan(&kw.ID, &kw.Phrase, &kw.Intent)
		if err != nil {
			return err
		}

		intake.Keywords = append(intake.Keywords, kw)
	}

	return nil
}

func (r *Repository) UpdateIntakeStatus(
	ctx context.Context,
	id uuid.UUID,
	from, to entity.IntakeStatus,
	updatedAt time.Time,
) error {
	const q = `UPDATE audit_intakes SET status = $1, updated_at = $2 WHERE id = $3 AND status = $4`

	result, err := r.db.Exec(ctx, q, to, updatedAt, id, from)
	if err != nil {
		return err
	}

	if result.RowsAffected() == 0 {
		return entity.ErrNotFound
	}

	return nil
}

func (r *Repository) CreateRun(ctx context.Context, run entity.AuditRun) error {
	const q = `
	INSERT INTO audit_runs (
		id, client_id, intake_id, initiated_by, status, scope,
		error_detail, started_at, completed_at, created_at, updated_at
	)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

	_, err := r.db.Exec(ctx, q,
		run.ID,
		run.ClientID,
		run.IntakeID,
		run.InitiatedBy,
		run.Status,
		run.Scope,
		zeronull.Text(run.ErrorDetail),
		run.StartedAt,
		run.CompletedAt,
		run.CreatedAt,
		run.UpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode && pgErr.ConstraintName == activeRunConstraint {
			return entity.ErrActiveRunExists
		}

		return err
	}

	return nil
}

const selectRun = `
	SELECT r.id, r.client_id, r.intake_id, r.initiated_by, r.status, r.scope,
		r.error_detail, r.started_at, r.completed_at, r.created_at, r.updated_at
	FROM audit_runs r`

func (r *Repository) RunByID(ctx context.Context, id uuid.UUID) (entity.AuditRun, error) {
	q := selectRun + " WHERE r.id = $1"
	return scanRun(r.db.QueryRow(ctx, q, id))
}

func (r *Repository) StartRun(ctx context.Context, id uuid.UUID, startedAt time.Time) error {
	const q = `
	UPDATE audit_runs SET status = $1, started_at = $2, updated_at = $2
	WHERE id = $3 AND status = $4`

	result, err := r.db.Exec(ctx, q, entity.RunStatusRunning, startedAt, id, entity.RunStatusQueued)
	if err != nil {
		return err
	}

	if result.RowsAffected() == 0 {
		return entity.ErrNotFound
	}

	return nil
}

func (r *Repository) FinishRun(
	ctx context.Context,
	id uuid.UUID,
	status entity.RunStatus,
	errorDetail string,
	completedAt time.Time,
) error {
	const q = `
	UPDATE audit_runs SET status = $1, error_detail = $2, completed_at = $3, updated_at = $3
	WHERE id = $4 AND status = $5`

	result, err := r.db.Exec(ctx, q, status, zeronull.Text(errorDetail), completedAt, id, entity.RunStatusRunning)
	if err != nil {
		return err
	}

	if result.RowsAffected() == 0 {
		return entity.ErrNotFound
	}

	return nil
}

func (r *Repository) CancelRun(ctx context.Context, id uuid.UUID, canceledAt time.Time) error {
	const q = `
	UPDATE audit_runs SET status = $1, completed_at = $2, updated_at = $2
	WHERE id = $3 AND status IN ($4, $5)`

	result, err := r.db.Exec(ctx, q, entity.RunStatusCanceled, canceledAt, id, entity.RunStatusQueued, entity.RunStatusRunning)
	if err != nil {
		return err
	}

	if result.RowsAffected() == 0 {
		return entity.ErrNotFound
	}

	return nil
}

func (r *Repository) Runs(ctx context.Context, f entity.RunFilter) ([]entity.AuditRun, int, error) {
	stmt := sq.Select(
		"r.id",
		"r.client_id",
		"r.intake_id",
		"r.initiated_by",
		"r.status",
		"r.scope",
		"r.error_detail",
		"r.started_at",
		"r.completed_at",
		"r.created_at",
		"r.updated_at",
		"COUNT(*) OVER() AS total_count",
	).From("audit_runs r").
		Join("clients c ON c.id = r.client_id").
		PlaceholderFormat(sq.Dollar)

	stmt = applyRunFilter(stmt, f).
		Limit(f.Limit).
		Offset(f.Page*f.Limit - f.Limit).
		OrderBy(fmt.Sprintf("r.%s %s", f.SortBy, f.OrderBy))

	query, args, err := stmt.ToSql()
	if err != nil {
		return nil, 0, err
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	runs := make([]entity.AuditRun, 0, f.Limit)

	var totalCount int

	for rows.Next() {
		var run entity.AuditRun

		var count int

		err = rows.Scan(
			&run.ID,
			&run.ClientID,
			&run.IntakeID,
			&run.InitiatedBy,
			&run.Status,
			&run.Scope,
			(*zeronull.Text)(&run.ErrorDetail),
			&run.StartedAt,
			&run.CompletedAt,
			&run.CreatedAt,
			&run.UpdatedAt,
			&count,
		)
		if err != nil {
			return nil, 0, err
		}

		totalCount = count

		runs = append(runs, run)
	}

	return runs, totalCount, nil
}

func applyRunFilter(stmt sq.SelectBuilder, f entity.RunFilter) sq.SelectBuilder {
	if f.Status != nil {
		stmt = stmt.Where(sq.Eq{"r.status": *f.Status})
	}

	if f.ClientID != nil {
		stmt = stmt.Where(sq.Eq{"r.client_id": *f.ClientID})
	}

	if f.DateFrom != nil {
		stmt = stmt.Where(sq.GtOrEq{"r.created_at": *f.DateFrom})
	}

	if f.DateTo != nil {
		stmt = stmt.Where(sq.LtOrEq{"r.created_at": *f.DateTo})
	}

	if len(f.ClientIDs) > 0 {
		stmt = stmt.Where(sq.Eq{"r.client_id": f.ClientIDs})
	}

	if f.AgencyID != nil {
		stmt = stmt.Where(sq.Eq{"c.agency_id": *f.AgencyID})
	}

	return stmt
}

func scanRun(row pgx.Row) (run entity.AuditRun, err error) {
	err = row.Scan(
		&run.ID,
		&run.ClientID,
		&run.IntakeID,
		&run.InitiatedBy,
		&run.Status,
		&run.Scope,
		(*zeronull.Text)(&run.ErrorDetail),
		&run.StartedAt,
		&run.CompletedAt,
		&run.CreatedAt,
		&run.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return entity.AuditRun{}, entity.ErrNotFound
		}

		return entity.AuditRun{}, err
	}

	return run, nil
}

func (r *Repository) CreateFindings(ctx context.Context, findings ...entity.AuditFinding) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}

	defer tx.Rollback(ctx)

	const q = `
	INSERT INTO audit_findings (
		id, client_id, audit_run_id, title, description, category, location,
		recommendation, severity, status, impact_score, effort_score, priority_score,
		created_at, updated_at
	)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`

	for _, f := range findings {
		_, err = tx.Exec(ctx, q,
			f.ID,
			f.ClientID,
			f.RunID,
			f.Title,
			f.Description,
			f.Category,
			f.Location,
			f.Recommendation,
			f.Severity,
			f.Status,
			f.ImpactScore,
			f.EffortScore,
			f.PriorityScore,
			f.CreatedAt,
			f.UpdatedAt,
		)
		if err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

const selectFinding = `
	SELECT f.id, f.client_id, f.audit_run_id, f.title, f.description, f.category, f.location,
		f.recommendation, f.severity, f.status, f.impact_score, f.effort_score, f.priority_score,
		f.created_at, f.updated_at
	FROM audit_findings f`

func (r *Repository) FindingByID(ctx context.Context, id uuid.UUID) (entity.AuditFinding, error) {
	q := selectFinding + " WHERE f.id = $1"

	var f entity.AuditFinding

	err := r.db.QueryRow(ctx, q, id).Scan(
		&f.ID,
		&f.ClientID,
		&f.RunID,
		&f.Title,
		&f.Description,
		&f.Category,
		&f.Location,
		&f.Recommendation,
		&f.Severity,
		&f.Status,
		&f.ImpactScore,
		&f.EffortScore,
		&f.PriorityScore,
		&f.CreatedAt,
		&f.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return entity.AuditFinding{}, entity.ErrNotFound
		}

		return entity.AuditFinding{}, err
	}

	return f, nil
}

func (r *Repository) UpdateFindingStatus(ctx context.Context, id uuid.UUID, status entity.FindingStatus, updatedAt time.Time) error {
	const q = `UPDATE audit_findings SET status = $1, updated_at = $2 WHERE id = $3`

	result, err := r.db.Exec(ctx, q, status, updatedAt, id)
	if err != nil {
		return err
	}

	if result.RowsAffected() == 0 {
		return entity.ErrNotFound
	}

	return nil
}

func (r *Repository) Findings(ctx context.Context, f entity.FindingFilter) ([]entity.AuditFinding, int, error) {
	stmt := sq.Select(
		"f.id",
		"f.client_id",
		"f.audit_run_id",
		"f.title",
		"f.description",
		"f.category",
		"f.location",
		"f.recommendation",
		"f.severity",
		"f.status",
		"f.impact_score",
		"f.effort_score",
		"f.priority_score",
		"f.created_at",
		"f.updated_at",
		"COUNT(*) OVER() AS total_count",
	).From("audit_findings f").
		Join("clients c ON c.id = f.client_id").
		PlaceholderFormat(sq.Dollar)

	stmt = applyFindingFilter(stmt, f).
		Limit(f.Limit).
		Offset(f.Page*f.Limit - f.Limit).
		OrderBy(fmt.Sprintf("f.%s %s", f.SortBy, f.OrderBy))

	query, args, err := stmt.ToSql()
	if err != nil {
		return nil, 0, err
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	findings := make([]entity.AuditFinding, 0, f.Limit)

	var totalCount int

	for rows.Next() {
		var finding entity.AuditFinding

		var count int

		err = rows.Scan(
			&finding.ID,
			&finding.ClientID,
			&finding.RunID,
			&finding.Title,
			&finding.Description,
			&finding.Category,
			&finding.Location,
			&finding.Recommendation,
			&finding.Severity,
			&finding.Status,
			&finding.ImpactScore,
			&finding.EffortScore,
			&finding.PriorityScore,
			&finding.CreatedAt,
			&finding.UpdatedAt,
			&count,
		)
		if err != nil {
			return nil, 0, err
		}

		totalCount = count

		findings = append(findings, finding)
	}

	return findings, totalCount, nil
}

func applyFindingFilter(stmt sq.SelectBuilder, f entity.FindingFilter) sq.SelectBuilder {
	if f.RunID != nil {
		stmt = stmt.Where(sq.Eq{"f.audit_run_id": *f.RunID})
	}

	if f.Status != nil {
		stmt = stmt.Where(sq.Eq{"f.status": *f.Status})
	}

	if f.Severity != nil {
		stmt = stmt.Where(sq.Eq{"f.severity": *f.Severity})
	}

	if f.Category != nil {
		stmt = stmt.Where(sq.Eq{"f.category": *f.Category})
	}

	if len(f.ClientIDs) > 0 {
		stmt = stmt.Where(sq.Eq{"f.client_id": f.ClientIDs})
	}

	if f.AgencyID != nil {
		stmt = stmt.Where(sq.Eq{"c.agency_id": *f.AgencyID})
	}

	return stmt
}

func (r *Repository) RunSummary(ctx context.Context, runID uuid.UUID) (entity.RunSummary, error) {
	const q = `
	SELECT severity, status, COUNT(*)
	FROM audit_findings
	WHERE audit_run_id = $1
	GROUP BY severity, status`

	rows, err := r.db.Query(ctx, q, runID)
	if err != nil {
		return entity.RunSummary{}, err
	}
	defer rows.Close()

	summary := entity.RunSummary{
		RunID:      runID,
		BySeverity: make(map[entity.Severity]int),
		ByStatus:   make(map[entity.FindingStatus]int),
	}

	for rows.Next() {
		var (
			severity entity.Severity
			status   entity.FindingStatus
			count    int
		)

		err = rows.Scan(&severity, &status, &count)
		if err != nil {
			return entity.RunSummary{}, err
		}

		summary.BySeverity[severity] += count
		summary.ByStatus[status] += count
		summary.Total += count
	}

	return summary, nil
}
