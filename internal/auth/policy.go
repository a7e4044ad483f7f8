package auth

import (
	"errors"
	"slices"

	"onthegomusic/internal/domain"
)

var (
	// ErrUnauthenticated means the action needs a principal and none was presented.
	ErrUnauthenticated = errors.New("authentication required")
	// ErrForbidden means the principal's role may not perform the action.
	ErrForbidden = errors.New("insufficient role")
)

// Resource names a collection exposed over HTTP.
type Resource string

const (
	ResourceUsuarios  Resource = "usuarios"
	ResourceProductos Resource = "productos"
	ResourceBoletas   Resource = "boletas"
)

// Operation names one of the handler operations on a resource.
type Operation string

const (
	OpList   Operation = "list"
	OpGet    Operation = "get"
	OpCreate Operation = "create"
	OpUpdate Operation = "update"
	OpDelete Operation = "delete"
)

// Action is a (resource, operation) pair.
type Action struct {
	Resource  Resource
	Operation Operation
}

// Rule says who may perform an action. Public rules need no principal.
type Rule struct {
	Public bool
	Roles  []domain.Rol
}

// Policy maps each action to its rule. Actions missing from the table are denied.
type Policy map[Action]Rule

var staff = []domain.Rol{domain.RolAdmin, domain.RolVendedor}

// DefaultPolicy is the storefront's access table.
func DefaultPolicy() Policy {
	admin := []domain.Rol{domain.RolAdmin}
	return Policy{
		{ResourceUsuarios, OpList}:   {Roles: admin},
		{ResourceUsuarios, OpGet}:    {Roles: admin},
		{ResourceUsuarios, OpCreate}: {Roles: admin},
		{ResourceUsuarios, OpUpdate}: {Roles: admin},
		{ResourceUsuarios, OpDelete}: {Roles: admin},

		{ResourceProductos, OpList}:   {Public: true},
		{ResourceProductos, OpGet}:    {Public: true},
		{ResourceProductos, OpCreate}: {Roles: staff},
		{ResourceProductos, OpUpdate}: {Roles: staff},
		{ResourceProductos, OpDelete}: {Roles: staff},

		{ResourceBoletas, OpList}:   {Roles: staff},
		{ResourceBoletas, OpGet}:    {Roles: staff},
		{ResourceBoletas, OpCreate}: {Public: true},
	}
}

// IsPublic reports whether action can be performed without a principal.
func (p Policy) IsPublic(action Action) bool {
	return p[action].Public
}

// Authorize is the single access check. A nil principal is only accepted on
// public actions.
func Authorize(principal *Principal, policy Policy, action Action) error {
	rule, ok := policy[action]
	if !ok {
		return ErrForbidden
	}
	if rule.Public {
		return nil
	}
	if principal == nil {
		return ErrUnauthenticated
	}
	if !slices.Contains(rule.Roles, principal.Rol) {
		return ErrForbidden
	}
	return nil
}
