package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"

	id "extendbee/pkg/domain"
	"extendbee/pkg/platform/sentinel"

	"extendbee/internal/page/models"
)

// PostgresStore persists pages and sections in PostgreSQL. Section config is
// stored as JSONB since its shape is owned by the renderers, not the store.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgres constructs a PostgreSQL-backed page store.
func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// SavePage upserts a page.
func (s *PostgresStore) SavePage(ctx context.Context, p *models.Page) error {
	query := `
		INSERT INTO pages (id, tenant_id, slug, page_type, title, show_header, show_footer, published)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (id)
		DO UPDATE SET slug = $3, page_type = $4, title = $5, show_header = $6, show_footer = $7, published = $8
	`
	_, err := s.db.ExecContext(ctx, query,
		uuid.UUID(p.ID), uuid.UUID(p.TenantID), p.Slug.String(), string(p.Type),
		p.Title, p.ShowHeader, p.ShowFooter, p.Published,
	)
	if err != nil {
		return fmt.Errorf("save page: %w", err)
	}
	return nil
}

// SaveSections replaces the sections of a page.
func (s *PostgresStore) SaveSections(ctx context.Context, pageID id.PageID, sections []models.Section) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin sections tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM sections WHERE page_id = $1`, uuid.UUID(pageID)); err != nil {
		return fmt.Errorf("clear sections: %w", err)
	}
	for _, section := range sections {
		config, err := json.Marshal(section.Config)
		if err != nil {
			return fmt.Errorf("encode section config: %w", err)
		}
		_, err = tx.ExecContext(ctx, `
			INSERT INTO sections (id, page_id, section_type, config, visible, sort_order, position)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
		`, uuid.UUID(section.ID), uuid.UUID(pageID), section.Type, config,
			section.Visible, section.SortOrder, string(section.Position))
		if err != nil {
			return fmt.Errorf("insert section: %w", err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit sections tx: %w", err)
	}
	return nil
}

// FindPublishedBySlug returns the tenant's published page with the slug.
func (s *PostgresStore) FindPublishedBySlug(ctx context.Context, tenantID id.TenantID, slug id.Slug) (*models.Page, error) {
	query := `
		SELECT id, tenant_id, slug, page_type, title, show_header, show_footer, published
		FROM pages
		WHERE tenant_id = $1 AND slug = $2 AND published = TRUE
	`
	return s.queryPage(ctx, query, uuid.UUID(tenantID), slug.String())
}

// FindPublishedHomepage returns the tenant's single published homepage.
func (s *PostgresStore) FindPublishedHomepage(ctx context.Context, tenantID id.TenantID) (*models.Page, error) {
	query := `
		SELECT id, tenant_id, slug, page_type, title, show_header, show_footer, published
		FROM pages
		WHERE tenant_id = $1 AND page_type = 'homepage' AND published = TRUE
	`
	return s.queryPage(ctx, query, uuid.UUID(tenantID))
}

func (s *PostgresStore) queryPage(ctx context.Context, query string, args ...any) (*models.Page, error) {
	var p models.Page
	var pageID, tenantID uuid.UUID
	var slug, pageType string
	err := s.db.QueryRowContext(ctx, query, args...).Scan(
		&pageID, &tenantID, &slug, &pageType, &p.Title, &p.ShowHeader, &p.ShowFooter, &p.Published,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("find page: %w", err)
	}
	p.ID = id.PageID(pageID)
	p.TenantID = id.TenantID(tenantID)
	p.Slug = id.Slug(slug)
	p.Type = models.PageType(pageType)
	return &p, nil
}

// VisibleSections returns the page's visible sections ordered by sort order
// ascending; the insertion sequence breaks ties so the order is stable.
func (s *PostgresStore) VisibleSections(ctx context.Context, pageID id.PageID) ([]models.Section, error) {
	query := `
		SELECT id, page_id, section_type, config, visible, sort_order, position
		FROM sections
		WHERE page_id = $1 AND visible = TRUE
		ORDER BY sort_order ASC, inserted_seq ASC
	`
	rows, err := s.db.QueryContext(ctx, query, uuid.UUID(pageID))
	if err != nil {
		return nil, fmt.Errorf("list sections: %w", err)
	}
	defer rows.Close()

	var sections []models.Section
	for rows.Next() {
		var section models.Section
		var sectionID, sectionPageID uuid.UUID
		var config []byte
		var position string
		if err := rows.Scan(&sectionID, &sectionPageID, &section.Type, &config, &section.Visible, &section.SortOrder, &position); err != nil {
			return nil, fmt.Errorf("scan section: %w", err)
		}
		section.ID = id.SectionID(sectionID)
		section.PageID = id.PageID(sectionPageID)
		section.Position = models.SectionPosition(position)
		if len(config) > 0 {
			if err := json.Unmarshal(config, &section.Config); err != nil {
				return nil, fmt.Errorf("decode section config: %w", err)
			}
		}
		sections = append(sections, section)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate sections: %w", err)
	}
	return sections, nil
}
