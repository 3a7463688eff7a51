package keeper

import (
	"context"
	"encoding/binary"

	"github.com/taskchain-labs/taskchain/x/marketplace/types"
)

// GetParams returns the current marketplace parameters, falling back to
// defaults when the store has not been initialized.
func (k Keeper) GetParams(ctx context.Context) types.Params {
	store := k.getStore(ctx)
	bz := store.Get(ParamsKey)
	if bz == nil {
		return types.DefaultParams()
	}

	var params types.Params
	k.mustUnmarshal(bz, &params)
	return params
}

// SetParams validates and persists the marketplace parameters.
func (k Keeper) SetParams(ctx context.Context, params types.Params) error {
	if err := params.Validate(); err != nil {
		return err
	}

	store := k.getStore(ctx)
	store.Set(ParamsKey, k.mustMarshal(params))
	return nil
}

// getNextTaskID returns the next task ID and advances the counter.
func (k Keeper) getNextTaskID(ctx context.Context) uint64 {
	return k.nextID(ctx, NextTaskIDKey)
}

// getNextSubmissionID returns the next submission ID and advances the counter.
func (k Keeper) getNextSubmissionID(ctx context.Context) uint64 {
	return k.nextID(ctx, NextSubmissionIDKey)
}

// getNextDisputeID returns the next dispute ID and advances the counter.
func (k Keeper) getNextDisputeID(ctx context.Context) uint64 {
	return k.nextID(ctx, NextDisputeIDKey)
}

func (k Keeper) nextID(ctx context.Context, key []byte) uint64 {
	store := k.getStore(ctx)

	id := uint64(1)
	if bz := store.Get(key); bz != nil {
		id = GetIDFromBytes(bz)
	}

	next := make([]byte, 8)
	binary.BigEndian.PutUint64(next, id+1)
	store.Set(key, next)
	return id
}

// peekNextID reads a counter without advancing it. Used by genesis export.
func (k Keeper) peekNextID(ctx context.Context, key []byte) uint64 {
	store := k.getStore(ctx)
	if bz := store.Get(key); bz != nil {
		return GetIDFromBytes(bz)
	}
	return 1
}

// setNextID seeds a counter. Used by genesis import.
func (k Keeper) setNextID(ctx context.Context, key []byte, id uint64) {
	store := k.getStore(ctx)
	bz := make([]byte, 8)
	binary.BigEndian.PutUint64(bz, id)
	store.Set(key, bz)
}
