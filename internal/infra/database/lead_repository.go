package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/lib/pq"

	"github.com/xavierca1/leadlocal/internal/entity"
)

type LeadRepository struct {
	DB *sql.DB
}

func NewLeadRepository(db *sql.DB) *LeadRepository {
	return &LeadRepository{DB: db}
}

const leadColumns = `id, name, address, city, zip_code, phone, email, website, industry,
	employee_count, revenue, social_media, review_count, rating, latitude, longitude,
	sources, readiness_score, opportunities, insight, status, tags, created_at, updated_at`

// Upsert stores a lead keyed by its dedupe key. A re-found business keeps
// its id, status, tags and insight; provider fields are refreshed, and
// blanks never overwrite stored values.
func (r *LeadRepository) Upsert(ctx context.Context, lead *entity.Lead) error {
	key := lead.Key
	if key == "" {
		key = "id:" + lead.ID
	}
	status := lead.Status
	if status == "" {
		status = entity.LeadStatusNew
	}

	query := `
		INSERT INTO leads (
			id, dedupe_key, name, address, city, zip_code, phone, email, website, industry,
			employee_count, revenue, social_media, review_count, rating, latitude, longitude,
			sources, readiness_score, opportunities, status, tags, created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10,
			$11, $12, $13, $14, $15, $16, $17,
			$18, $19, $20, $21, $22, NOW(), NOW()
		)
		ON CONFLICT (dedupe_key)
		DO UPDATE SET
			name = EXCLUDED.name,
			address = COALESCE(EXCLUDED.address, leads.address),
			city = COALESCE(EXCLUDED.city, leads.city),
			zip_code = COALESCE(EXCLUDED.zip_code, leads.zip_code),
			phone = COALESCE(EXCLUDED.phone, leads.phone),
			email = COALESCE(EXCLUDED.email, leads.email),
			website = COALESCE(EXCLUDED.website, leads.website),
			industry = COALESCE(EXCLUDED.industry, leads.industry),
			employee_count = GREATEST(EXCLUDED.employee_count, leads.employee_count),
			revenue = COALESCE(EXCLUDED.revenue, leads.revenue),
			social_media = CASE WHEN cardinality(EXCLUDED.social_media) > 0 THEN EXCLUDED.social_media ELSE leads.social_media END,
			review_count = EXCLUDED.review_count,
			rating = EXCLUDED.rating,
			latitude = EXCLUDED.latitude,
			longitude = EXCLUDED.longitude,
			sources = EXCLUDED.sources,
			readiness_score = EXCLUDED.readiness_score,
			opportunities = EXCLUDED.opportunities,
			updated_at = NOW()
		RETURNING id, status, tags, insight, created_at, updated_at
	`

	var (
		tags    []string
		insight []byte
	)
	err := r.DB.QueryRowContext(ctx, query,
		lead.ID,
		key,
		lead.Name,
		nullString(lead.Address),
		nullString(lead.City),
		nullString(lead.ZipCode),
		nullString(lead.Phone),
		nullString(lead.Email),
		nullString(lead.Website),
		nullString(lead.Industry),
		lead.EmployeeCount,
		nullString(lead.Revenue),
		pq.Array(nonNil(lead.SocialMedia)),
		lead.ReviewCount,
		lead.Rating,
		lead.Latitude,
		lead.Longitude,
		pq.Array(nonNil(lead.Sources)),
		lead.ReadinessScore,
		pq.Array(nonNil(lead.Opportunities)),
		string(status),
		pq.Array(nonNil(lead.Tags)),
	).Scan(&lead.ID, &lead.Status, pq.Array(&tags), &insight, &lead.CreatedAt, &lead.UpdatedAt)
	if err != nil {
		return fmt.Errorf("upsert lead: %w", err)
	}
	lead.Tags = tags
	if lead.Insight, err = decodeInsight(insight); err != nil {
		return fmt.Errorf("decode insight of lead %s: %w", lead.ID, err)
	}
	return nil
}

func (r *LeadRepository) FindByID(ctx context.Context, id string) (*entity.Lead, error) {
	row := r.DB.QueryRowContext(ctx, `SELECT `+leadColumns+` FROM leads WHERE id = $1`, id)
	lead, err := scanLead(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, entity.ErrLeadNotFound
	}
	if err != nil {
		return nil, err
	}
	return lead, nil
}

// FindByIDs returns the leads that exist, in the order of ids.
func (r *LeadRepository) FindByIDs(ctx context.Context, ids []string) ([]entity.Lead, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	rows, err := r.DB.QueryContext(ctx, `SELECT `+leadColumns+` FROM leads WHERE id = ANY($1)`, pq.Array(ids))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	byID := make(map[string]entity.Lead, len(ids))
	for rows.Next() {
		lead, err := scanLead(rows)
		if err != nil {
			return nil, err
		}
		byID[lead.ID] = *lead
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	out := make([]entity.Lead, 0, len(byID))
	for _, id := range ids {
		if l, ok := byID[id]; ok {
			out = append(out, l)
		}
	}
	return out, nil
}

func (r *LeadRepository) List(ctx context.Context, filter entity.LeadFilter) ([]entity.Lead, error) {
	query, args := buildListQuery(filter)
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []entity.Lead
	for rows.Next() {
		lead, err := scanLead(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *lead)
	}
	return out, rows.Err()
}

func (r *LeadRepository) UpdateStatus(ctx context.Context, id string, status entity.LeadStatus) error {
	res, err := r.DB.ExecContext(ctx,
		`UPDATE leads SET status = $1, updated_at = NOW() WHERE id = $2`,
		string(status), id,
	)
	if err != nil {
		return err
	}
	return expectOneRow(res, entity.ErrLeadNotFound)
}

func (r *LeadRepository) SaveInsight(ctx context.Context, id string, insight *entity.Insight) error {
	raw, err := json.Marshal(insight)
	if err != nil {
		return err
	}
	res, err := r.DB.ExecContext(ctx,
		`UPDATE leads SET insight = $1, updated_at = NOW() WHERE id = $2`,
		raw, id,
	)
	if err != nil {
		return err
	}
	return expectOneRow(res, entity.ErrLeadNotFound)
}

// UpdateContact applies the non-nil fields; an empty string clears a field.
func (r *LeadRepository) UpdateContact(ctx context.Context, id string, c entity.LeadContact) error {
	query, args := buildContactUpdate(id, c)
	res, err := r.DB.ExecContext(ctx, query, args...)
	if err != nil {
		return err
	}
	return expectOneRow(res, entity.ErrLeadNotFound)
}

func buildContactUpdate(id string, c entity.LeadContact) (string, []any) {
	var (
		set  []string
		args []any
	)
	for _, f := range []struct {
		column string
		value  *string
	}{
		{"email", c.Email},
		{"phone", c.Phone},
		{"website", c.Website},
	} {
		if f.value == nil {
			continue
		}
		args = append(args, nullString(*f.value))
		set = append(set, fmt.Sprintf("%s = $%d", f.column, len(args)))
	}
	set = append(set, "updated_at = NOW()")
	args = append(args, id)
	return fmt.Sprintf("UPDATE leads SET %s WHERE id = $%d", strings.Join(set, ", "), len(args)), args
}

func buildListQuery(f entity.LeadFilter) (string, []any) {
	var (
		where []string
		args  []any
	)
	add := func(cond string, v any) {
		args = append(args, v)
		where = append(where, fmt.Sprintf(cond, len(args)))
	}

	if f.Status != "" {
		add("status = $%d", string(f.Status))
	}
	if f.Industry != "" {
		add("LOWER(industry) = LOWER($%d)", f.Industry)
	}
	if f.MinScore > 0 {
		add("readiness_score >= $%d", f.MinScore)
	}

	var b strings.Builder
	b.WriteString("SELECT " + leadColumns + " FROM leads")
	if len(where) > 0 {
		b.WriteString(" WHERE " + strings.Join(where, " AND "))
	}
	b.WriteString(" ORDER BY readiness_score DESC, created_at DESC")

	limit := f.Limit
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	args = append(args, limit)
	fmt.Fprintf(&b, " LIMIT $%d", len(args))
	if f.Offset > 0 {
		args = append(args, f.Offset)
		fmt.Fprintf(&b, " OFFSET $%d", len(args))
	}
	return b.String(), args
}

type scanner interface {
	Scan(dest ...any) error
}

func scanLead(s scanner) (*entity.Lead, error) {
	var (
		l                                                        entity.Lead
		address, city, zip, phone, email, website, industry, rev sql.NullString
		status                                                   string
		insight                                                  []byte
	)
	err := s.Scan(
		&l.ID, &l.Name, &address, &city, &zip, &phone, &email, &website, &industry,
		&l.EmployeeCount, &rev, pq.Array(&l.SocialMedia), &l.ReviewCount, &l.Rating, &l.Latitude, &l.Longitude,
		pq.Array(&l.Sources), &l.ReadinessScore, pq.Array(&l.Opportunities), &insight, &status, pq.Array(&l.Tags),
		&l.CreatedAt, &l.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	l.Address, l.City, l.ZipCode = address.String, city.String, zip.String
	l.Phone, l.Email, l.Website = phone.String, email.String, website.String
	l.Industry, l.Revenue = industry.String, rev.String
	l.Status = entity.LeadStatus(status)

	if l.Insight, err = decodeInsight(insight); err != nil {
		return nil, fmt.Errorf("decode insight of lead %s: %w", l.ID, err)
	}
	return &l, nil
}

// decodeInsight returns nil for a NULL column.
func decodeInsight(raw []byte) (*entity.Insight, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	var in entity.Insight
	if err := json.Unmarshal(raw, &in); err != nil {
		return nil, err
	}
	return &in, nil
}

func expectOneRow(res sql.Result, notFound error) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return notFound
	}
	return nil
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
