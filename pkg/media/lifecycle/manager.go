package lifecycle

import (
	"context"

	"ai-mediagen-be/internal/constant"
	"ai-mediagen-be/internal/pkg/apperror"
	"ai-mediagen-be/internal/repository/specification"
	"ai-mediagen-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

// Artifact is a generated media record with a saved/unsaved flag.
type Artifact interface {
	IsSaved() bool
	MarkSaved(saved bool)
}

// Repository is the slice of an artifact repository the lifecycle needs.
type Repository[T any] interface {
	FindOne(ctx context.Context, specs ...specification.Specification) (*T, error)
	CompareAndSetStatus(ctx context.Context, id uuid.UUID, expected, next bool) (bool, error)
}

// Manager drives the unsaved -> saved -> unsaved cycle for one artifact kind.
type Manager[T any, PT interface {
	*T
	Artifact
}] struct {
	kind             constant.ArtifactKind
	label            string
	repository       func(uow unitofwork.UnitOfWork) Repository[T]
	enforceOwnership bool
}

func NewManager[T any, PT interface {
	*T
	Artifact
}](kind constant.ArtifactKind, label string, repository func(uow unitofwork.UnitOfWork) Repository[T], enforceOwnership bool) *Manager[T, PT] {
	return &Manager[T, PT]{
		kind:             kind,
		label:            label,
		repository:       repository,
		enforceOwnership: enforceOwnership,
	}
}

func (m *Manager[T, PT]) Kind() constant.ArtifactKind {
	return m.kind
}

// Save marks the artifact saved. It fails with a state error when the
// artifact is already saved, including when a concurrent call won the race.
func (m *Manager[T, PT]) Save(ctx context.Context, uow unitofwork.UnitOfWork, id uuid.UUID, ownerUserId uuid.UUID) (PT, error) {
	return m.transition(ctx, uow, id, ownerUserId, true)
}

// Unsave clears the saved flag; it fails with a state error when the
// artifact is not saved.
func (m *Manager[T, PT]) Unsave(ctx context.Context, uow unitofwork.UnitOfWork, id uuid.UUID, ownerUserId uuid.UUID) (PT, error) {
	return m.transition(ctx, uow, id, ownerUserId, false)
}

func (m *Manager[T, PT]) transition(ctx context.Context, uow unitofwork.UnitOfWork, id uuid.UUID, ownerUserId uuid.UUID, saved bool) (PT, error) {
	repo := m.repository(uow)

	found, err := repo.FindOne(ctx,
		specification.ByID{ID: id},
		specification.OwnedByWhen(ownerUserId, m.enforceOwnership),
	)
	if err != nil {
		return nil, err
	}
	if found == nil {
		return nil, apperror.NotFound("%s not found", m.label)
	}

	artifact := PT(found)
	if artifact.IsSaved() == saved {
		return nil, m.stateError(saved)
	}

	swapped, err := repo.CompareAndSetStatus(ctx, id, !saved, saved)
	if err != nil {
		return nil, err
	}
	if !swapped {
		return nil, m.stateError(saved)
	}

	artifact.MarkSaved(saved)
	return artifact, nil
}

func (m *Manager[T, PT]) stateError(saved bool) error {
	if saved {
		return apperror.State("%s has already been saved", m.label)
	}
	return apperror.State("%s has already been removed", m.label)
}
