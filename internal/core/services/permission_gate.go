package services

import (
	"github.com/chasseuragace/code-sub001/internal/core/domain"
	portssvc "github.com/chasseuragace/code-sub001/internal/core/ports/services"
)

type permissionGate struct {
	matrix *domain.PermissionMatrix
}

// NewPermissionGate wraps a matrix loaded at startup. A nil matrix denies everything.
func NewPermissionGate(matrix *domain.PermissionMatrix) portssvc.PermissionGate {
	return &permissionGate{matrix: matrix}
}

func (g *permissionGate) Allowed(role domain.Role, action domain.Action) bool {
	return g.matrix.Allowed(role, action)
}
