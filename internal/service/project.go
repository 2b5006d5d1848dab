package service

import (
	"context"
	"time"

	"github.com/dwproject/portfolio-api/internal/domain"
)

// ProjectStore defines the project data access interface consumed by
// ProjectService. Images cross this boundary in their client representation
// (data URI); the store owns the conversion to and from raw bytes.
type ProjectStore interface {
	Insert(ctx context.Context, p domain.Project) (*domain.Project, error)
	ListActive(ctx context.Context, ownerID int64) ([]domain.Project, error)
	ListDeleted(ctx context.Context, ownerID int64) ([]domain.Project, error)
	FindActive(ctx context.Context, id int64) (*domain.Project, error)
	FindAny(ctx context.Context, id int64) (*domain.Project, error)
	Update(ctx context.Context, id int64, p domain.Project) (*domain.Project, error)
	SoftDelete(ctx context.Context, id int64) (*domain.Project, error)
	Restore(ctx context.Context, id int64) (*domain.Project, error)
	HardDelete(ctx context.Context, id int64) error
}

// ProjectInput carries the validated fields of a create or update request.
// Validation (name presence and length, date formats, description length,
// image shape) happens at the route boundary before this type is built.
type ProjectInput struct {
	ProjectName  string
	StartDate    *time.Time
	EndDate      *time.Time
	Description  *string
	Technologies []string
	Image        *string
}

func (in ProjectInput) toProject(ownerID int64) domain.Project {
	return domain.Project{
		OwnerID:      ownerID,
		ProjectName:  in.ProjectName,
		StartDate:    in.StartDate,
		EndDate:      in.EndDate,
		Description:  in.Description,
		Technologies: in.Technologies,
		Image:        in.Image,
	}
}

// ProjectService implements the project lifecycle state machine
// (Active -> SoftDeleted -> restored or purged) with a uniform ownership
// guard in front of every per-project operation.
type ProjectService struct {
	projects ProjectStore
}

// NewProjectService creates a new ProjectService.
func NewProjectService(projects ProjectStore) *ProjectService {
	return &ProjectService{projects: projects}
}

// authorize loads the project and compares its owner against the caller. The
// existence check runs before the ownership comparison, so a missing resource
// never reveals more than not-found. Restore and permanent delete pass
// anyState to keep working on soft-deleted rows.
func (s *ProjectService) authorize(ctx context.Context, caller domain.Identity, id int64, anyState bool) (*domain.Project, error) {
	find := s.projects.FindActive
	if anyState {
		find = s.projects.FindAny
	}
	p, err := find(ctx, id)
	if err != nil {
		return nil, err
	}
	if p.OwnerID != caller.ID {
		return nil, domain.ErrForbidden
	}
	return p, nil
}

// Create inserts a new active project owned by the caller.
func (s *ProjectService) Create(ctx context.Context, caller domain.Identity, in ProjectInput) (*domain.Project, error) {
	return s.projects.Insert(ctx, in.toProject(caller.ID))
}

// List returns the caller's active projects, newest first.
func (s *ProjectService) List(ctx context.Context, caller domain.Identity) ([]domain.Project, error) {
	return s.projects.ListActive(ctx, caller.ID)
}

// ListDeleted returns the caller's soft-deleted projects, most recently
// deleted first.
func (s *ProjectService) ListDeleted(ctx context.Context, caller domain.Identity) ([]domain.Project, error) {
	return s.projects.ListDeleted(ctx, caller.ID)
}

// Get returns a single active project of the caller. Soft-deleted projects
// answer not-found on the detail path.
func (s *ProjectService) Get(ctx context.Context, caller domain.Identity, id int64) (*domain.Project, error) {
	return s.authorize(ctx, caller, id, false)
}

// Update replaces the fields of an active project.
func (s *ProjectService) Update(ctx context.Context, caller domain.Identity, id int64, in ProjectInput) (*domain.Project, error) {
	if _, err := s.authorize(ctx, caller, id, false); err != nil {
		return nil, err
	}
	return s.projects.Update(ctx, id, in.toProject(caller.ID))
}

// SoftDelete transitions an active project to the soft-deleted state.
func (s *ProjectService) SoftDelete(ctx context.Context, caller domain.Identity, id int64) (*domain.Project, error) {
	if _, err := s.authorize(ctx, caller, id, false); err != nil {
		return nil, err
	}
	return s.projects.SoftDelete(ctx, id)
}

// Restore clears the deletion mark. Restoring a project that was never
// soft-deleted succeeds as a no-op.
func (s *ProjectService) Restore(ctx context.Context, caller domain.Identity, id int64) (*domain.Project, error) {
	if _, err := s.authorize(ctx, caller, id, true); err != nil {
		return nil, err
	}
	return s.projects.Restore(ctx, id)
}

// HardDelete permanently removes a project in any state. Irreversible.
func (s *ProjectService) HardDelete(ctx context.Context, caller domain.Identity, id int64) (*domain.Project, error) {
	p, err := s.authorize(ctx, caller, id, true)
	if err != nil {
		return nil, err
	}
	if err := s.projects.HardDelete(ctx, id); err != nil {
		return nil, err
	}
	return p, nil
}
