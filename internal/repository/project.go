package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/dwproject/portfolio-api/internal/domain"
)

const projectColumns = `id, owner_id, project_name, start_date, end_date,
	description, technologies, image, created_at, updated_at, deleted_at`

// projectRow is the raw database shape of a project. Technologies are stored
// as a JSON array and the image as raw bytes; both are re-expressed in their
// client representation when converted to the domain type.
type projectRow struct {
	ID           int64        `db:"id"`
	OwnerID      int64        `db:"owner_id"`
	ProjectName  string       `db:"project_name"`
	StartDate    sql.NullTime `db:"start_date"`
	EndDate      sql.NullTime `db:"end_date"`
	Description  *string      `db:"description"`
	Technologies []byte       `db:"technologies"`
	Image        []byte       `db:"image"`
	CreatedAt    time.Time    `db:"created_at"`
	UpdatedAt    time.Time    `db:"updated_at"`
	DeletedAt    sql.NullTime `db:"deleted_at"`
}

func (row projectRow) toDomain() (*domain.Project, error) {
	p := domain.Project{
		ID:          row.ID,
		OwnerID:     row.OwnerID,
		ProjectName: row.ProjectName,
		Description: row.Description,
		Image:       domain.EncodeImage(row.Image),
		CreatedAt:   row.CreatedAt,
		UpdatedAt:   row.UpdatedAt,
	}
	if row.StartDate.Valid {
		t := row.StartDate.Time
		p.StartDate = &t
	}
	if row.EndDate.Valid {
		t := row.EndDate.Time
		p.EndDate = &t
	}
	if row.DeletedAt.Valid {
		t := row.DeletedAt.Time
		p.DeletedAt = &t
	}
	if len(row.Technologies) > 0 {
		if err := json.Unmarshal(row.Technologies, &p.Technologies); err != nil {
			return nil, fmt.Errorf("decode technologies for project %d: %w", row.ID, err)
		}
	}
	return &p, nil
}

// ProjectRepository handles project data access operations.
type ProjectRepository struct {
	db *sqlx.DB
}

// NewProjectRepository creates a new ProjectRepository.
func NewProjectRepository(db *sqlx.DB) *ProjectRepository {
	return &ProjectRepository{db: db}
}

func encodeFields(p domain.Project) (technologies []byte, image []byte, err error) {
	if p.Technologies == nil {
		p.Technologies = []string{}
	}
	technologies, err = json.Marshal(p.Technologies)
	if err != nil {
		return nil, nil, fmt.Errorf("encode technologies: %w", err)
	}
	if p.Image != nil {
		image, err = domain.DecodeImage(*p.Image)
		if err != nil {
			return nil, nil, err
		}
	}
	return technologies, image, nil
}

// Insert stores a new active project and returns the created record.
func (r *ProjectRepository) Insert(ctx context.Context, p domain.Project) (*domain.Project, error) {
	technologies, image, err := encodeFields(p)
	if err != nil {
		return nil, err
	}

	var row projectRow
	err = r.db.QueryRowxContext(ctx,
		`INSERT INTO projects (owner_id, project_name, start_date, end_date, description, technologies, image)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING `+projectColumns,
		p.OwnerID, p.ProjectName, p.StartDate, p.EndDate, p.Description, technologies, image,
	).StructScan(&row)
	if err != nil {
		return nil, fmt.Errorf("insert project: %w", err)
	}
	return row.toDomain()
}

// ListActive returns the owner's active projects, newest first.
func (r *ProjectRepository) ListActive(ctx context.Context, ownerID int64) ([]domain.Project, error) {
	return r.list(ctx,
		`SELECT `+projectColumns+` FROM projects
		 WHERE owner_id = $1 AND deleted_at IS NULL
		 ORDER BY created_at DESC`, ownerID)
}

// ListDeleted returns the owner's soft-deleted projects, most recently
// deleted first.
func (r *ProjectRepository) ListDeleted(ctx context.Context, ownerID int64) ([]domain.Project, error) {
	return r.list(ctx,
		`SELECT `+projectColumns+` FROM projects
		 WHERE owner_id = $1 AND deleted_at IS NOT NULL
		 ORDER BY deleted_at DESC`, ownerID)
}

func (r *ProjectRepository) list(ctx context.Context, query string, ownerID int64) ([]domain.Project, error) {
	var rows []projectRow
	if err := r.db.SelectContext(ctx, &rows, query, ownerID); err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}

	projects := make([]domain.Project, 0, len(rows))
	for _, row := range rows {
		p, err := row.toDomain()
		if err != nil {
			return nil, err
		}
		projects = append(projects, *p)
	}
	return projects, nil
}

// FindActive retrieves a project by ID, excluding soft-deleted rows.
func (r *ProjectRepository) FindActive(ctx context.Context, id int64) (*domain.Project, error) {
	return r.find(ctx,
		`SELECT `+projectColumns+` FROM projects WHERE id = $1 AND deleted_at IS NULL`, id)
}

// FindAny retrieves a project by ID regardless of lifecycle state. Used by
// the ownership guard ahead of restore and permanent delete, which must see
// soft-deleted rows.
func (r *ProjectRepository) FindAny(ctx context.Context, id int64) (*domain.Project, error) {
	return r.find(ctx,
		`SELECT `+projectColumns+` FROM projects WHERE id = $1`, id)
}

func (r *ProjectRepository) find(ctx context.Context, query string, id int64) (*domain.Project, error) {
	var row projectRow
	if err := r.db.GetContext(ctx, &row, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("find project %d: %w", id, err)
	}
	return row.toDomain()
}

// Update replaces the mutable fields of an active project and bumps
// updated_at. Soft-deleted and absent rows report not found.
func (r *ProjectRepository) Update(ctx context.Context, id int64, p domain.Project) (*domain.Project, error) {
	technologies, image, err := encodeFields(p)
	if err != nil {
		return nil, err
	}

	var row projectRow
	err = r.db.QueryRowxContext(ctx,
		`UPDATE projects
		 SET project_name = $1, start_date = $2, end_date = $3, description = $4,
		     technologies = $5, image = $6, updated_at = NOW()
		 WHERE id = $7 AND deleted_at IS NULL
		 RETURNING `+projectColumns,
		p.ProjectName, p.StartDate, p.EndDate, p.Description, technologies, image, id,
	).StructScan(&row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("update project %d: %w", id, err)
	}
	return row.toDomain()
}

// SoftDelete marks an active project as deleted. Already-deleted and absent
// rows report not found.
func (r *ProjectRepository) SoftDelete(ctx context.Context, id int64) (*domain.Project, error) {
	var row projectRow
	err := r.db.QueryRowxContext(ctx,
		`UPDATE projects SET deleted_at = NOW()
		 WHERE id = $1 AND deleted_at IS NULL
		 RETURNING `+projectColumns, id,
	).StructScan(&row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("soft delete project %d: %w", id, err)
	}
	return row.toDomain()
}

// Restore clears the deletion mark. Restoring a row that was never deleted
// succeeds as a no-op.
func (r *ProjectRepository) Restore(ctx context.Context, id int64) (*domain.Project, error) {
	var row projectRow
	err := r.db.QueryRowxContext(ctx,
		`UPDATE projects SET deleted_at = NULL
		 WHERE id = $1
		 RETURNING `+projectColumns, id,
	).StructScan(&row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("restore project %d: %w", id, err)
	}
	return row.toDomain()
}

// HardDelete permanently removes a project row.
func (r *ProjectRepository) HardDelete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM projects WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("hard delete project %d: %w", id, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("hard delete project %d: %w", id, err)
	}
	if affected == 0 {
		return domain.ErrNotFound
	}
	return nil
}
