package depot

import (
	"errors"
	"fmt"

	"go.uber.org/zap"
)

type operation struct {
	typ    operationType
	entity EntityID
	kind   Kind
	value  any
}

type operationType int

const (
	opNone operationType = iota
	opAddComponent
	opRemoveComponent
)

type opKey struct {
	entity EntityID
	kind   kindID
}

type opQueue struct {
	componentOps   []operation
	destroyOps     []EntityID
	pendingDestroy map[EntityID]struct{}
	pendingMods    map[opKey]int
}

func newOpQueue() opQueue {
	return opQueue{
		pendingDestroy: make(map[EntityID]struct{}),
		pendingMods:    make(map[opKey]int),
	}
}

func (q *opQueue) empty() bool {
	return len(q.componentOps) == 0 && len(q.destroyOps) == 0
}

func (q *opQueue) enqueueDestroy(id EntityID) {
	if _, exists := q.pendingDestroy[id]; exists {
		return
	}
	q.pendingDestroy[id] = struct{}{}
	q.destroyOps = append(q.destroyOps, id)

	// Component ops on a doomed entity are moot
	for key, idx := range q.pendingMods {
		if key.entity == id {
			q.componentOps[idx].typ = opNone
			delete(q.pendingMods, key)
		}
	}
}

// enqueueComponentOp keeps one op per (entity, kind); the latest one wins.
func (q *opQueue) enqueueComponentOp(op operation) {
	if _, doomed := q.pendingDestroy[op.entity]; doomed {
		return
	}
	key := opKey{entity: op.entity, kind: op.kind.id()}
	if idx, exists := q.pendingMods[key]; exists {
		q.componentOps[idx] = op
		return
	}
	q.pendingMods[key] = len(q.componentOps)
	q.componentOps = append(q.componentOps, op)
}

func (q *opQueue) reset() {
	q.componentOps = q.componentOps[:0]
	q.destroyOps = q.destroyOps[:0]
	clear(q.pendingDestroy)
	clear(q.pendingMods)
}

// processOperationQueue applies component ops in order, then destroys.
// Adds of a kind already present and removes of an absent kind are skipped.
func (sto *storage) processOperationQueue() error {
	if sto.opQueue.empty() {
		return nil
	}
	componentOps := sto.opQueue.componentOps
	destroyOps := sto.opQueue.destroyOps
	defer sto.opQueue.reset()

	for _, op := range componentOps {
		var err error
		switch op.typ {
		case opNone:
			continue
		case opAddComponent:
			err = sto.AddComponent(op.entity, op.kind, op.value)
		case opRemoveComponent:
			err = sto.RemoveComponent(op.entity, op.kind)
		}
		if err == nil {
			continue
		}
		if errors.As(err, &ComponentExistsError{}) || errors.As(err, &ComponentNotFoundError{}) {
			Config.logger.Debug("queued component op skipped", zap.Error(err))
			continue
		}
		return fmt.Errorf("failed to apply queued component op: %w", err)
	}

	for _, id := range destroyOps {
		if err := sto.DestroyEntity(id); err != nil {
			return fmt.Errorf("failed to destroy queued entity: %w", err)
		}
	}
	return nil
}
