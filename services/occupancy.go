package services

import (
	"errors"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"restaurant-ops/models"
	"restaurant-ops/store"
	"restaurant-ops/utils"
)

// Occupancy owns the open/close protocol for physical tables. It keeps no
// table state of its own: every decision starts from a fresh read, and the
// storage-level unique index on live openings is what arbitrates races.
type Occupancy struct {
	store *store.Store

	staleRepairs atomic.Uint64
}

func NewOccupancy(st *store.Store) *Occupancy {
	return &Occupancy{store: st}
}

// OpenTable starts an occupancy session for tableID on behalf of userID and
// returns the new opening.
//
// A table marked occupied without a live opening record is stale state left
// by an earlier partial failure; it is repaired here (logged and counted)
// and the open proceeds. When two callers race on the same free table the
// opening insert decides the winner; the loser sees the conflict dressed up
// as an OccupiedError once the winning session is readable, or a bare
// conflict if it is not yet.
func (o *Occupancy) OpenTable(tableID, userID uint) (*models.TableOpening, error) {
	table, err := o.store.GetTable(tableID)
	if err != nil {
		return nil, err
	}
	if table.Status == models.TableInactive {
		return nil, ErrInvalidState
	}

	if table.Status == models.TableOccupied {
		live, err := o.store.GetOpenOpening(tableID)
		switch {
		case err == nil:
			return nil, &OccupiedError{
				TableID:  tableID,
				OpenedBy: live.OpenedBy,
				OpenedAt: live.OpenedAt,
			}
		case errors.Is(err, store.ErrNotFound):
			// Occupied flag with no live session: stale state from a
			// close that freed the opening but not the table.
			o.staleRepairs.Add(1)
			utils.ErrorLogger.Printf("table %d marked occupied with no open session, repairing", tableID)
		default:
			return nil, err
		}
	}

	opening := &models.TableOpening{
		TableID:       tableID,
		ActiveTableID: &tableID,
		SessionKey:    uuid.NewString(),
		Status:        models.OpeningOpen,
		OpenedBy:      userID,
		OpenedAt:      time.Now(),
	}
	if err := o.store.InsertOpening(opening); err != nil {
		if errors.Is(err, store.ErrConflict) {
			// Lost the insert race. Name the winner if already visible.
			if live, lerr := o.store.GetOpenOpening(tableID); lerr == nil {
				return nil, &OccupiedError{
					TableID:  tableID,
					OpenedBy: live.OpenedBy,
					OpenedAt: live.OpenedAt,
				}
			}
		}
		return nil, err
	}

	if err := o.store.UpdateTableStatus(tableID, models.TableOccupied); err != nil {
		// The session is already live; the occupied flag catches up on the
		// next read path. Report the write failure to the caller anyway.
		utils.ErrorLogger.Printf("table %d: opening %d created but status update failed: %v", tableID, opening.ID, err)
		return nil, err
	}

	utils.InfoLogger.Printf("table %d opened by user %d (opening %d)", tableID, userID, opening.ID)
	return opening, nil
}

// CloseTable ends the live session for tableID. Only the user who opened
// the session may close it; there is no transfer of ownership.
//
// The two writes cannot be atomic, so the opening is closed first: a table
// left occupied with no open session is the repairable direction (see
// OpenTable), whereas a freed table with a live session would violate the
// one-open-session invariant.
func (o *Occupancy) CloseTable(tableID, userID uint) (*models.TableOpening, error) {
	if _, err := o.store.GetTable(tableID); err != nil {
		return nil, err
	}

	opening, err := o.store.GetOpenOpening(tableID)
	if err != nil {
		return nil, err
	}
	if opening.OpenedBy != userID {
		return nil, ErrForbidden
	}

	now := time.Now()
	opening.Status = models.OpeningClosed
	opening.ClosedBy = &userID
	opening.ClosedAt = &now
	opening.ActiveTableID = nil
	if err := o.store.UpdateOpening(opening); err != nil {
		return nil, err
	}

	if err := o.store.UpdateTableStatus(tableID, models.TableAvailable); err != nil {
		utils.ErrorLogger.Printf("table %d: opening %d closed but table not freed: %v", tableID, opening.ID, err)
		return nil, err
	}

	utils.InfoLogger.Printf("table %d closed by user %d (opening %d)", tableID, userID, opening.ID)
	return opening, nil
}

// StaleRepairs reports how many times OpenTable found and repaired an
// occupied flag with no live session. Exposed for monitoring.
func (o *Occupancy) StaleRepairs() uint64 {
	return o.staleRepairs.Load()
}
