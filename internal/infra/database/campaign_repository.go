package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"github.com/xavierca1/leadlocal/internal/entity"
)

var ErrUnknownMetric = errors.New("unknown campaign metric")

// metricColumns whitelists the counters IncrementMetric may touch.
var metricColumns = map[string]string{
	entity.MetricSent:    "sent",
	"delivered":          "delivered",
	"opened":             "opened",
	"clicked":            "clicked",
	"replied":            "replied",
	"converted":          "converted",
	"unsubscribed":       "unsubscribed",
	entity.MetricBounced: "bounced",
}

const campaignColumns = `id, name, description, status, template_id, lead_ids, tags,
	sent, delivered, opened, clicked, replied, converted, unsubscribed, bounced,
	start_date, end_date, created_at, updated_at`

type CampaignRepository struct {
	DB *sql.DB
}

func NewCampaignRepository(db *sql.DB) *CampaignRepository {
	return &CampaignRepository{DB: db}
}

func (r *CampaignRepository) Create(ctx context.Context, c *entity.Campaign) error {
	query := `
		INSERT INTO campaigns (id, name, description, status, template_id, lead_ids, tags, start_date, end_date, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`
	_, err := r.DB.ExecContext(ctx, query,
		c.ID,
		c.Name,
		nullString(c.Description),
		string(c.Status),
		c.TemplateID,
		pq.Array(nonNil(c.LeadIDs)),
		pq.Array(nonNil(c.Tags)),
		c.StartDate,
		c.EndDate,
		c.CreatedAt,
		c.UpdatedAt,
	)
	return err
}

func (r *CampaignRepository) FindByID(ctx context.Context, id string) (*entity.Campaign, error) {
	row := r.DB.QueryRowContext(ctx, `SELECT `+campaignColumns+` FROM campaigns WHERE id = $1`, id)
	c, err := scanCampaign(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, entity.ErrCampaignNotFound
	}
	return c, err
}

func (r *CampaignRepository) List(ctx context.Context) ([]entity.Campaign, error) {
	rows, err := r.DB.QueryContext(ctx, `SELECT `+campaignColumns+` FROM campaigns ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []entity.Campaign
	for rows.Next() {
		c, err := scanCampaign(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *c)
	}
	return out, rows.Err()
}

func (r *CampaignRepository) UpdateStatus(ctx context.Context, id string, status entity.CampaignStatus) error {
	res, err := r.DB.ExecContext(ctx,
		`UPDATE campaigns SET status = $1, updated_at = NOW() WHERE id = $2`,
		string(status), id,
	)
	if err != nil {
		return err
	}
	return expectOneRow(res, entity.ErrCampaignNotFound)
}

func (r *CampaignRepository) IncrementMetric(ctx context.Context, id, metric string) error {
	col, ok := metricColumns[metric]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownMetric, metric)
	}
	res, err := r.DB.ExecContext(ctx,
		fmt.Sprintf(`UPDATE campaigns SET %[1]s = %[1]s + 1, updated_at = NOW() WHERE id = $1`, col),
		id,
	)
	if err != nil {
		return err
	}
	return expectOneRow(res, entity.ErrCampaignNotFound)
}

func scanCampaign(s scanner) (*entity.Campaign, error) {
	var (
		c           entity.Campaign
		description sql.NullString
		status      string
		end         sql.NullTime
	)
	m := &c.Metrics
	err := s.Scan(
		&c.ID, &c.Name, &description, &status, &c.TemplateID, pq.Array(&c.LeadIDs), pq.Array(&c.Tags),
		&m.Sent, &m.Delivered, &m.Opened, &m.Clicked, &m.Replied, &m.Converted, &m.Unsubscribed, &m.Bounced,
		&c.StartDate, &end, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	c.Description = description.String
	c.Status = entity.CampaignStatus(status)
	if end.Valid {
		t := end.Time
		c.EndDate = &t
	}
	return &c, nil
}
