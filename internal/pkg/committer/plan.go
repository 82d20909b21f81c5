// Package committer collects Spanner mutations produced by repositories into a
// CommitPlan and applies them in one transaction.
//
// Repositories never write on their own. A use case loads aggregates, calls
// domain methods, asks repositories for mutations, adds the outbox rows for the
// recorded domain events, and applies the whole plan at the end:
//
//	plan := committer.NewPlan()
//	mut, err := productRepo.UpdateMut(product)
//	if err != nil {
//	    return err
//	}
//	plan.Add(mut)
//	plan.AddMultiple(eventMuts)
//	plan.Guard(productRepo.VersionGuard(product))
//	return c.Apply(ctx, plan)
//
// A plan that carries version guards is applied inside a read-write
// transaction which re-reads each guarded row first and aborts with
// ErrVersionConflict when another writer got there before us.
package committer

import (
	"context"
	"errors"
	"fmt"

	"cloud.google.com/go/spanner"
)

// ErrVersionConflict is returned when a guarded row changed since it was loaded.
var ErrVersionConflict = errors.New("optimistic lock conflict: row was modified concurrently")

// VersionGuard describes a row whose version column must still hold Expected
// at commit time.
type VersionGuard struct {
	Table    string
	Key      spanner.Key
	Column   string
	Expected int64
}

// CommitPlan is an ordered set of mutations plus the version guards that protect them.
type CommitPlan struct {
	mutations []*spanner.Mutation
	guards    []VersionGuard
}

// NewPlan creates a new empty CommitPlan.
func NewPlan() *CommitPlan {
	return &CommitPlan{
		mutations: make([]*spanner.Mutation, 0),
	}
}

// Add adds a mutation to the plan. Nil mutations are ignored so callers can
// pass "no change" results straight through.
func (cp *CommitPlan) Add(mut *spanner.Mutation) {
	if mut != nil {
		cp.mutations = append(cp.mutations, mut)
	}
}

// AddMultiple adds multiple mutations to the plan.
func (cp *CommitPlan) AddMultiple(muts []*spanner.Mutation) {
	for _, mut := range muts {
		cp.Add(mut)
	}
}

// Guard registers an optimistic-lock check for the plan.
func (cp *CommitPlan) Guard(g VersionGuard) {
	cp.guards = append(cp.guards, g)
}

// Mutations returns all collected mutations.
func (cp *CommitPlan) Mutations() []*spanner.Mutation {
	return cp.mutations
}

// Guards returns the registered version guards.
func (cp *CommitPlan) Guards() []VersionGuard {
	return cp.guards
}

// IsEmpty returns true if the plan has no mutations.
func (cp *CommitPlan) IsEmpty() bool {
	return len(cp.mutations) == 0
}

// Count returns the number of mutations in the plan.
func (cp *CommitPlan) Count() int {
	return len(cp.mutations)
}

// Committer applies CommitPlans against a Spanner client.
type Committer struct {
	client *spanner.Client
}

// NewCommitter creates a new Committer.
func NewCommitter(client *spanner.Client) *Committer {
	return &Committer{client: client}
}

// Apply executes the plan atomically. Plans with guards go through a
// read-write transaction, plain plans through a blind write.
func (c *Committer) Apply(ctx context.Context, plan *CommitPlan) error {
	if plan.IsEmpty() {
		return nil
	}

	if len(plan.guards) == 0 {
		if _, err := c.client.Apply(ctx, plan.Mutations()); err != nil {
			return fmt.Errorf("failed to apply commit plan: %w", err)
		}
		return nil
	}

	_, err := c.client.ReadWriteTransaction(ctx, func(ctx context.Context, txn *spanner.ReadWriteTransaction) error {
		for _, g := range plan.guards {
			if err := checkVersion(ctx, txn, g); err != nil {
				return err
			}
		}
		return txn.BufferWrite(plan.Mutations())
	})
	if err != nil {
		if errors.Is(err, ErrVersionConflict) {
			return err
		}
		return fmt.Errorf("failed to apply commit plan with version check: %w", err)
	}

	return nil
}

func checkVersion(ctx context.Context, txn *spanner.ReadWriteTransaction, g VersionGuard) error {
	row, err := txn.ReadRow(ctx, g.Table, g.Key, []string{g.Column})
	if err != nil {
		return fmt.Errorf("failed to read %s version: %w", g.Table, err)
	}

	var current int64
	if err := row.Column(0, &current); err != nil {
		return fmt.Errorf("failed to parse %s version: %w", g.Table, err)
	}

	if current != g.Expected {
		return fmt.Errorf("%w: %s %v expected version %d, found %d", ErrVersionConflict, g.Table, g.Key, g.Expected, current)
	}
	return nil
}
