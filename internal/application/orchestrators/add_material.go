package orchestrators

import (
	"context"
	"log/slog"
	"time"

	"bafs/internal/domain/audit"
	materialDomain "bafs/internal/domain/material"
)

// MaterialStoreForAdd defines the store interface needed by AddMaterial.
type MaterialStoreForAdd interface {
	Save(ctx context.Context, m materialDomain.Material) error
}

// AddMaterialInput carries input for the add-material orchestrator.
type AddMaterialInput struct {
	ActorID     string
	Title       string
	Type        string // Video or Article
	URL         string
	Description string
}

// AddMaterialDeps holds dependencies for AddMaterial.
type AddMaterialDeps struct {
	MaterialStore MaterialStoreForAdd
	ProfileStore  ProfileStoreForSubmit
	AuditStore    AuditStoreForOrchestrator // optional: nil skips audit logging
	GenerateID    func() string
	Now           func() time.Time
}

// ExecuteAddMaterial validates and stores a learning material.
// PRE: ActorID identifies a teacher or admin profile
// POST: Material persisted and listed for all students
func ExecuteAddMaterial(ctx context.Context, input AddMaterialInput, deps AddMaterialDeps) (materialDomain.Material, error) {
	actor, err := deps.ProfileStore.GetByStudentID(ctx, input.ActorID)
	if err != nil {
		return materialDomain.Material{}, err
	}
	if !actor.IsTeacherOrAdmin() {
		slog.Info("auth_event", "event", "material_denied", "student_id", input.ActorID, "role", actor.Role)
		return materialDomain.Material{}, ErrNotAuthorized
	}

	m := materialDomain.Material{
		ID:          deps.GenerateID(),
		Title:       input.Title,
		Type:        input.Type,
		URL:         input.URL,
		Description: input.Description,
		CreatedAt:   deps.Now(),
	}
	if err := m.Validate(); err != nil {
		return materialDomain.Material{}, err
	}

	if err := deps.MaterialStore.Save(ctx, m); err != nil {
		return materialDomain.Material{}, err
	}

	slog.Info("event", "action", "material_added", "material_id", m.ID, "title", m.Title, "created_by", actor.StudentID)

	if deps.AuditStore != nil {
		e := audit.NewEvent(deps.GenerateID(), actor.StudentID, actor.Role, audit.CategoryMaterial, audit.ActionCreate).
			WithResource("material", m.ID).
			WithDescription("material added: " + m.Title)
		_ = deps.AuditStore.Save(ctx, e)
	}

	return m, nil
}
