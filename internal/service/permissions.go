package service

import (
	"socialhub/internal/apperror"
	"socialhub/internal/models"
)

type Operation string

const (
	OpList     Operation = "list"
	OpRetrieve Operation = "retrieve"
	OpCreate   Operation = "create"
	OpUpdate   Operation = "update"
	OpDelete   Operation = "delete"
)

// ReadOnly reports operations that never change state.
func (o Operation) ReadOnly() bool {
	return o == OpList || o == OpRetrieve
}

// Permission decides whether an actor may perform an operation.
// HasPermission runs before any object is loaded, HasObjectPermission
// against the user owning the loaded object.
type Permission interface {
	HasPermission(actor models.Actor, op Operation) error
	HasObjectPermission(actor models.Actor, op Operation, ownerID string) error
}

// ReadOnlyOrOwner lets any authenticated actor read and create, and only
// the owner change or delete.
type ReadOnlyOrOwner struct{}

func (ReadOnlyOrOwner) HasPermission(actor models.Actor, _ Operation) error {
	if !actor.Authenticated() {
		return apperror.ErrUnauthorized
	}
	return nil
}

func (ReadOnlyOrOwner) HasObjectPermission(actor models.Actor, op Operation, ownerID string) error {
	if !actor.Authenticated() {
		return apperror.ErrUnauthorized
	}
	if op.ReadOnly() || ownerID == actor.UserID {
		return nil
	}
	return apperror.ErrForbidden
}

// AuthenticatedOnly lets any authenticated actor do anything.
type AuthenticatedOnly struct{}

func (AuthenticatedOnly) HasPermission(actor models.Actor, _ Operation) error {
	if !actor.Authenticated() {
		return apperror.ErrUnauthorized
	}
	return nil
}

func (p AuthenticatedOnly) HasObjectPermission(actor models.Actor, op Operation, _ string) error {
	return p.HasPermission(actor, op)
}
