package db

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"golang.org/x/sync/errgroup"

	"github.com/karim/wadhifa/internal/query"
	"github.com/karim/wadhifa/internal/types"
)

const jobColumns = `j.id, j.company_id, c.name, c.industry, j.title, j.description,
	j.seniority, j.work_arrangement, j.country, j.city, j.requirements,
	j.salary_min, j.salary_max, j.visa_sponsorship, j.relocation_assistance,
	j.arabic_required, j.featured, j.application_count, j.saved_count, j.posted_at`

// predicateColumns maps descriptor fields to SQL columns. Only fields listed
// here may reach the query; anything else is a programming error.
var predicateColumns = map[string]string{
	"country":               "j.country",
	"seniority":             "j.seniority",
	"work_arrangement":      "j.work_arrangement",
	"company_industry":      "c.industry",
	"visa_sponsorship":      "j.visa_sponsorship",
	"relocation_assistance": "j.relocation_assistance",
	"posted_at":             "j.posted_at",
}

// sortOrders maps each sort option to its ORDER BY clause. Featured postings
// lead the default ordering; missing salaries sink to the bottom of the
// salary sort.
var sortOrders = map[types.SortOption]string{
	types.SortNewest:       "j.featured DESC, j.posted_at DESC",
	types.SortSalary:       "j.salary_max DESC NULLS LAST, j.posted_at DESC",
	types.SortApplications: "j.application_count DESC, j.posted_at DESC",
}

// JobPage is one page of job results plus the total match count.
type JobPage struct {
	Jobs  []types.Job
	Total int
}

// ListJobs executes a board query descriptor. The count and page queries run
// concurrently against the pool.
func (db *DB) ListJobs(ctx context.Context, q query.Descriptor) (*JobPage, error) {
	where, args, err := buildJobWhere(q)
	if err != nil {
		return nil, err
	}

	order, ok := sortOrders[q.Sort]
	if !ok {
		order = sortOrders[types.SortNewest]
	}

	base := `FROM jobs j JOIN companies c ON c.id = j.company_id` + where

	var page JobPage
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		err := db.pool.QueryRow(gctx, `SELECT COUNT(*) `+base, args...).Scan(&page.Total)
		if err != nil {
			return fmt.Errorf("failed to count jobs: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		pageArgs := append(append([]any{}, args...), q.Limit, q.Offset)
		sql := fmt.Sprintf("SELECT %s %s ORDER BY %s LIMIT $%d OFFSET $%d",
			jobColumns, base, order, len(args)+1, len(args)+2)

		rows, err := db.pool.Query(gctx, sql, pageArgs...)
		if err != nil {
			return fmt.Errorf("failed to list jobs: %w", err)
		}
		defer rows.Close()

		for rows.Next() {
			job, err := scanJob(rows)
			if err != nil {
				return err
			}
			page.Jobs = append(page.Jobs, job)
		}
		return rows.Err()
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &page, nil
}

// buildJobWhere renders the descriptor's predicates and search into a WHERE
// clause with numbered args.
func buildJobWhere(q query.Descriptor) (string, []any, error) {
	clauses := []string{}
	args := []any{}

	for _, p := range q.Predicates {
		col, ok := predicateColumns[p.Field]
		if !ok {
			return "", nil, fmt.Errorf("unknown filter field: %s", p.Field)
		}
		op := "="
		if p.Op == query.OpGte {
			op = ">="
		}
		args = append(args, p.Value)
		clauses = append(clauses, fmt.Sprintf("%s %s $%d", col, op, len(args)))
	}

	if q.Search != "" {
		args = append(args, "%"+q.Search+"%")
		n := len(args)
		clauses = append(clauses, fmt.Sprintf(
			"(j.title ILIKE $%d OR j.description ILIKE $%d OR c.name ILIKE $%d)", n, n, n))
	}

	if len(clauses) == 0 {
		return "", args, nil
	}
	return " WHERE " + strings.Join(clauses, " AND "), args, nil
}

func scanJob(row pgx.Row) (types.Job, error) {
	var job types.Job
	err := row.Scan(
		&job.ID, &job.CompanyID, &job.CompanyName, &job.CompanyIndustry,
		&job.Title, &job.Description, &job.Seniority, &job.WorkArrangement,
		&job.Country, &job.City, &job.Requirements,
		&job.SalaryMin, &job.SalaryMax, &job.VisaSponsorship,
		&job.RelocationAssistance, &job.ArabicRequired, &job.Featured,
		&job.ApplicationCount, &job.SavedCount, &job.PostedAt,
	)
	if err != nil {
		return types.Job{}, fmt.Errorf("failed to scan job: %w", err)
	}
	return job, nil
}

// GetJob retrieves a single job posting by ID
func (db *DB) GetJob(ctx context.Context, jobID string) (*types.Job, error) {
	row := db.pool.QueryRow(ctx,
		fmt.Sprintf(`SELECT %s FROM jobs j JOIN companies c ON c.id = j.company_id WHERE j.id = $1`, jobColumns),
		jobID,
	)
	job, err := scanJob(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, &NotFoundError{Resource: "job", ID: jobID}
		}
		return nil, err
	}
	return &job, nil
}

// SuggestTitles returns distinct job titles starting with the given prefix,
// most-applied first.
func (db *DB) SuggestTitles(ctx context.Context, prefix string, limit int) ([]string, error) {
	if limit <= 0 {
		limit = 8
	}
	rows, err := db.pool.Query(ctx,
		`SELECT title FROM (
			SELECT DISTINCT ON (title) title, application_count
			FROM jobs WHERE title ILIKE $1
			ORDER BY title, application_count DESC
		 ) t ORDER BY application_count DESC LIMIT $2`,
		prefix+"%", limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to suggest titles: %w", err)
	}
	defer rows.Close()

	var titles []string
	for rows.Next() {
		var title string
		if err := rows.Scan(&title); err != nil {
			return nil, fmt.Errorf("failed to scan title: %w", err)
		}
		titles = append(titles, title)
	}
	return titles, rows.Err()
}
