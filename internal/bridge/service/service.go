// Package service implements the Bridges operations as free functions over
// an Env.
package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/gogotex/bridges/internal/bridge"
	"github.com/gogotex/bridges/internal/bridge/pager"
	"github.com/gogotex/bridges/internal/bridge/repository"
	"github.com/gogotex/bridges/internal/identity"
	"github.com/gogotex/bridges/internal/ids"
)

const DefaultPartition = "BRIDGES"

var errTitleRequired = errors.New("title is required")

// Env holds the collaborators every operation needs.
type Env struct {
	Store     repository.Store
	Identity  identity.Provider
	IDs       ids.Generator
	Clock     func() time.Time
	Partition string
	Version   string
}

func (e *Env) now() time.Time {
	if e.Clock == nil {
		return time.Now().UTC()
	}
	return e.Clock().UTC()
}

func (e *Env) partition() string {
	if e.Partition == "" {
		return DefaultPartition
	}
	return e.Partition
}

func (e *Env) caller(ctx context.Context) (*bridge.CreatedBy, error) {
	if e.Identity == nil {
		return nil, nil
	}
	who, err := e.Identity.Identity(ctx)
	if err != nil || who == nil {
		return nil, err
	}
	return &bridge.CreatedBy{ID: who.ID, Type: who.Type, DisplayName: who.DisplayName}, nil
}

func Get(ctx context.Context, env *Env, id string) (*bridge.Bridge, error) {
	b, err := env.Store.Get(ctx, env.partition(), id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, &bridge.NotFoundError{ID: id}
	}
	return b, err
}

// List returns one page of the collection.
func List(ctx context.Context, env *Env, params bridge.ListParams) (*bridge.List, error) {
	plan, err := pager.NewPlan(params)
	if err != nil {
		return nil, bridge.InvalidInput(err)
	}
	items, err := env.Store.Query(ctx, env.partition(), plan.Range())
	if err != nil {
		return nil, err
	}
	page := pager.Assemble(plan, items, (*bridge.Bridge).Key)
	return &page, nil
}

func Create(ctx context.Context, env *Env, in bridge.CreateInput) (*bridge.Bridge, error) {
	if strings.TrimSpace(in.Title) == "" {
		return nil, bridge.InvalidInput(errTitleRequired)
	}
	by, err := env.caller(ctx)
	if err != nil {
		return nil, err
	}
	now := env.now()
	b := &bridge.Bridge{
		ID:          env.IDs.NewID(),
		Title:       in.Title,
		Description: in.Description,
		CreatedOn:   now,
		SavedOn:     now,
		CreatedBy:   by,
		Version:     env.Version,
	}
	if err := env.Store.Put(ctx, env.partition(), b); err != nil {
		return nil, err
	}
	return b, nil
}

// Update merges the non-nil fields of in over the stored record. The
// identifier, creation time and author are preserved.
func Update(ctx context.Context, env *Env, id string, in bridge.UpdateInput) (*bridge.Bridge, error) {
	if in.Title != nil && strings.TrimSpace(*in.Title) == "" {
		return nil, bridge.InvalidInput(errTitleRequired)
	}
	b, err := Get(ctx, env, id)
	if err != nil {
		return nil, err
	}
	if in.Title != nil {
		b.Title = *in.Title
	}
	if in.Description != nil {
		b.Description = in.Description
	}
	b.SavedOn = env.now()
	if err := env.Store.Put(ctx, env.partition(), b); err != nil {
		return nil, err
	}
	return b, nil
}

// Delete removes the record and returns its last known state.
func Delete(ctx context.Context, env *Env, id string) (*bridge.Bridge, error) {
	b, err := Get(ctx, env, id)
	if err != nil {
		return nil, err
	}
	if err := env.Store.Delete(ctx, env.partition(), id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, &bridge.NotFoundError{ID: id}
		}
		return nil, err
	}
	return b, nil
}
