package application

import (
	domainerrors "postline/contexts/content/feed-service/domain/errors"
	"postline/contracts/session"
)

// Operation names a guarded feed action.
type Operation string

const (
	OpCreatePost  Operation = "create-post"
	OpListPosts   Operation = "list-posts"
	OpReadPost    Operation = "read-post"
	OpUpdatePost  Operation = "update-post"
	OpDeletePost  Operation = "delete-post"
	OpUploadImage Operation = "upload-image"
)

type requirement struct {
	authenticated bool
	owner         bool
}

// policy is the single authorization table for feed operations. Guard
// calls happen inside each operation, after whatever resource load the
// ownership half of the decision needs.
var policy = map[Operation]requirement{
	OpCreatePost:  {authenticated: true},
	OpListPosts:   {authenticated: true},
	OpReadPost:    {authenticated: true},
	OpUpdatePost:  {authenticated: true, owner: true},
	OpDeletePost:  {authenticated: true, owner: true},
	OpUploadImage: {authenticated: true},
}

// Authorize evaluates the policy for op. Checks are sequential and
// short-circuit: a missing identity fails with ErrUnauthenticated before
// ownership is considered, and an ownership mismatch fails with the
// distinct ErrForbidden. ownerID is the loaded resource owner; operations
// without an ownership requirement ignore it.
func Authorize(sctx session.Context, op Operation, ownerID string) error {
	req, ok := policy[op]
	if !ok {
		return domainerrors.ErrForbidden
	}
	if req.authenticated && !sctx.Authenticated {
		return domainerrors.ErrUnauthenticated
	}
	if req.owner && sctx.UserID != ownerID {
		return domainerrors.ErrForbidden
	}
	return nil
}
