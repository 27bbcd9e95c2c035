package branding

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"extendbee/internal/tenant/models"
	id "extendbee/pkg/domain"
	"extendbee/pkg/platform/sentinel"
)

// PostgresStore persists branding data in PostgreSQL. Theme and chrome maps
// are stored as JSONB; navigation items are a table ordered by sort_order.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgres constructs a PostgreSQL-backed branding store.
func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// ActiveTheme returns the tenant's single active theme.
func (s *PostgresStore) ActiveTheme(ctx context.Context, tenantID id.TenantID) (models.Theme, error) {
	query := `
		SELECT colors, typography, layout
		FROM tenant_themes
		WHERE tenant_id = $1 AND active = TRUE
	`
	var colors, typography, layout []byte
	err := s.db.QueryRowContext(ctx, query, uuid.UUID(tenantID)).Scan(&colors, &typography, &layout)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Theme{}, sentinel.ErrNotFound
		}
		return models.Theme{}, fmt.Errorf("find active theme: %w", err)
	}

	var theme models.Theme
	if err := decodeJSONMap(colors, &theme.Colors); err != nil {
		return models.Theme{}, fmt.Errorf("decode theme colors: %w", err)
	}
	if err := decodeJSONMap(typography, &theme.Typography); err != nil {
		return models.Theme{}, fmt.Errorf("decode theme typography: %w", err)
	}
	if err := decodeJSONMap(layout, &theme.Layout); err != nil {
		return models.Theme{}, fmt.Errorf("decode theme layout: %w", err)
	}
	return theme, nil
}

// HeaderFooter returns the tenant's chrome configuration.
func (s *PostgresStore) HeaderFooter(ctx context.Context, tenantID id.TenantID) (models.HeaderFooterConfig, error) {
	query := `
		SELECT header_options, footer_options, social_links
		FROM tenant_header_footer
		WHERE tenant_id = $1
	`
	var header, footer, social []byte
	err := s.db.QueryRowContext(ctx, query, uuid.UUID(tenantID)).Scan(&header, &footer, &social)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.HeaderFooterConfig{}, sentinel.ErrNotFound
		}
		return models.HeaderFooterConfig{}, fmt.Errorf("find header footer: %w", err)
	}

	var cfg models.HeaderFooterConfig
	if err := decodeJSONMap(header, &cfg.HeaderOptions); err != nil {
		return models.HeaderFooterConfig{}, fmt.Errorf("decode header options: %w", err)
	}
	if err := decodeJSONMap(footer, &cfg.FooterOptions); err != nil {
		return models.HeaderFooterConfig{}, fmt.Errorf("decode footer options: %w", err)
	}
	if len(social) > 0 {
		if err := json.Unmarshal(social, &cfg.SocialLinks); err != nil {
			return models.HeaderFooterConfig{}, fmt.Errorf("decode social links: %w", err)
		}
	}
	return cfg, nil
}

// NavigationItems returns the tenant's navigation items ordered by sort_order
// ascending; the insertion sequence breaks ties so the order is stable.
func (s *PostgresStore) NavigationItems(ctx context.Context, tenantID id.TenantID) ([]models.NavigationItem, error) {
	query := `
		SELECT id, tenant_id, location, parent_id, label, url, sort_order
		FROM navigation_items
		WHERE tenant_id = $1
		ORDER BY sort_order ASC, inserted_seq ASC
	`
	rows, err := s.db.QueryContext(ctx, query, uuid.UUID(tenantID))
	if err != nil {
		return nil, fmt.Errorf("list navigation items: %w", err)
	}
	defer rows.Close()

	var items []models.NavigationItem
	for rows.Next() {
		var item models.NavigationItem
		var itemID, itemTenantID uuid.UUID
		var location string
		var parentID uuid.NullUUID
		if err := rows.Scan(&itemID, &itemTenantID, &location, &parentID, &item.Label, &item.URL, &item.SortOrder); err != nil {
			return nil, fmt.Errorf("scan navigation item: %w", err)
		}
		item.ID = id.NavItemID(itemID)
		item.TenantID = id.TenantID(itemTenantID)
		item.Location = models.NavLocation(location)
		if parentID.Valid {
			parent := id.NavItemID(parentID.UUID)
			item.ParentID = &parent
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate navigation items: %w", err)
	}
	return items, nil
}

// SaveTheme upserts the tenant's active theme.
func (s *PostgresStore) SaveTheme(ctx context.Context, tenantID id.TenantID, theme models.Theme) error {
	colors, err := json.Marshal(theme.Colors)
	if err != nil {
		return fmt.Errorf("encode theme colors: %w", err)
	}
	typography, err := json.Marshal(theme.Typography)
	if err != nil {
		return fmt.Errorf("encode theme typography: %w", err)
	}
	layout, err := json.Marshal(theme.Layout)
	if err != nil {
		return fmt.Errorf("encode theme layout: %w", err)
	}
	query := `
		INSERT INTO tenant_themes (tenant_id, active, colors, typography, layout)
		VALUES ($1, TRUE, $2, $3, $4)
		ON CONFLICT (tenant_id) WHERE active
		DO UPDATE SET colors = $2, typography = $3, layout = $4
	`
	if _, err := s.db.ExecContext(ctx, query, uuid.UUID(tenantID), colors, typography, layout); err != nil {
		return fmt.Errorf("save theme: %w", err)
	}
	return nil
}

// SaveHeaderFooter upserts the tenant's chrome configuration.
func (s *PostgresStore) SaveHeaderFooter(ctx context.Context, tenantID id.TenantID, cfg models.HeaderFooterConfig) error {
	header, err := json.Marshal(cfg.HeaderOptions)
	if err != nil {
		return fmt.Errorf("encode header options: %w", err)
	}
	footer, err := json.Marshal(cfg.FooterOptions)
	if err != nil {
		return fmt.Errorf("encode footer options: %w", err)
	}
	social, err := json.Marshal(cfg.SocialLinks)
	if err != nil {
		return fmt.Errorf("encode social links: %w", err)
	}
	query := `
		INSERT INTO tenant_header_footer (tenant_id, header_options, footer_options, social_links)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (tenant_id)
		DO UPDATE SET header_options = $2, footer_options = $3, social_links = $4
	`
	if _, err := s.db.ExecContext(ctx, query, uuid.UUID(tenantID), header, footer, social); err != nil {
		return fmt.Errorf("save header footer: %w", err)
	}
	return nil
}

// SaveNavigationItems replaces the tenant's navigation items.
func (s *PostgresStore) SaveNavigationItems(ctx context.Context, tenantID id.TenantID, items []models.NavigationItem) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin nav items tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM navigation_items WHERE tenant_id = $1`, uuid.UUID(tenantID)); err != nil {
		return fmt.Errorf("clear navigation items: %w", err)
	}
	for _, item := range items {
		var parentID any
		if item.ParentID != nil {
			parentID = uuid.UUID(*item.ParentID)
		}
		_, err := tx.ExecContext(ctx, `
			INSERT INTO navigation_items (id, tenant_id, location, parent_id, label, url, sort_order)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
		`, uuid.UUID(item.ID), uuid.UUID(tenantID), string(item.Location), parentID, item.Label, item.URL, item.SortOrder)
		if err != nil {
			return fmt.Errorf("insert navigation item: %w", err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit nav items tx: %w", err)
	}
	return nil
}

func decodeJSONMap(data []byte, dst *map[string]string) error {
	if len(data) == 0 {
		*dst = nil
		return nil
	}
	return json.Unmarshal(data, dst)
}
