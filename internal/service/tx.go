package service

import (
	"context"
	"errors"
	"time"

	"rentease-backend/internal/apperror"
	"rentease-backend/internal/domain"
	"rentease-backend/internal/logger"
	"rentease-backend/internal/metrics"
	"rentease-backend/internal/repository"
)

// recordTx is a loaded snapshot plus the collections a mutation touched.
type recordTx struct {
	*repository.Snapshot
	dirty       map[repository.Collection]bool
	transitions []transition
}

type transition struct {
	rentalID   string
	propertyID string
	from       domain.RentalStatus
	to         domain.RentalStatus
}

func (tx *recordTx) touch(cs ...repository.Collection) {
	for _, c := range cs {
		tx.dirty[c] = true
	}
}

// move applies a lifecycle edge to the rental at index i and records it.
func (tx *recordTx) move(i int, next domain.RentalStatus, at time.Time) error {
	r := &tx.Rentals[i]
	from := r.Status
	if err := r.TransitionTo(next, at); err != nil {
		return apperror.Conflict("%s", err.Error())
	}
	tx.transitions = append(tx.transitions, transition{rentalID: r.ID, propertyID: r.PropertyID, from: from, to: next})
	tx.touch(repository.CollectionRentals)
	return nil
}

func (tx *recordTx) flush(ctx context.Context, w repository.Writer) error {
	for _, c := range repository.Collections {
		if !tx.dirty[c] {
			continue
		}
		var err error
		switch c {
		case repository.CollectionUsers:
			err = repository.WriteAll(ctx, w, c, tx.Users)
		case repository.CollectionProperties:
			err = repository.WriteAll(ctx, w, c, tx.Properties)
		case repository.CollectionRentals:
			err = repository.WriteAll(ctx, w, c, tx.Rentals)
		case repository.CollectionPayments:
			err = repository.WriteAll(ctx, w, c, tx.Payments)
		case repository.CollectionTerminations:
			err = repository.WriteAll(ctx, w, c, tx.Terminations)
		case repository.CollectionRenewals:
			err = repository.WriteAll(ctx, w, c, tx.Renewals)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// update loads every collection inside one store update, runs fn and writes
// back what fn touched. Committed transitions are logged and counted.
func update(ctx context.Context, store repository.Store, m *metrics.Metrics, fn func(tx *recordTx) error) error {
	var committed []transition
	err := store.Update(ctx, func(w repository.Writer) error {
		snap, err := repository.LoadSnapshot(ctx, w)
		if err != nil {
			return err
		}
		tx := &recordTx{Snapshot: snap, dirty: make(map[repository.Collection]bool)}
		if err := fn(tx); err != nil {
			return err
		}
		if err := tx.flush(ctx, w); err != nil {
			return err
		}
		committed = tx.transitions
		return nil
	})
	if err != nil {
		return err
	}
	for _, t := range committed {
		logger.Transition(ctx, t.rentalID, t.propertyID, t.from, t.to)
		m.IncrementTransition(string(t.from), string(t.to))
	}
	return nil
}

// view runs fn against one consistent snapshot.
func view(ctx context.Context, store repository.Store, fn func(snap *repository.Snapshot) error) error {
	return store.View(ctx, func(r repository.Reader) error {
		snap, err := repository.LoadSnapshot(ctx, r)
		if err != nil {
			return err
		}
		return fn(snap)
	})
}

// finish classifies err for callers. Errors that are not already classified
// become internal errors; classified ones are expected rejections.
func finish(op string, m *metrics.Metrics, err error) error {
	if err == nil {
		return nil
	}
	var appErr *apperror.Error
	if !errors.As(err, &appErr) {
		err = apperror.Internal(err, op+" failed")
	}
	kind := apperror.KindOf(err)
	logger.ExitMethodWithError(op, err, kind != apperror.KindInternal)
	m.IncrementRejection(op, kind.String())
	return err
}
