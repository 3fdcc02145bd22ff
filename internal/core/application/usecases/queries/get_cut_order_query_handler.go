package queries

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"bundletrack/internal/core/domain/model/bundle"
	"bundletrack/internal/core/domain/model/kernel"
	"bundletrack/internal/core/domain/services"
	"bundletrack/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// workOrderNone is how an unassigned bundle's work order renders in the
// read model.
const workOrderNone = "none"

// GetCutOrderQueryHandler projects one cut order and its bundles into the
// read model. Domain bundles are reconstructed from the rows so that the
// derived fields (current work order, display names) come from the same
// logic the write side uses.
type GetCutOrderQueryHandler struct {
	db    *gorm.DB
	namer services.DisplayNamer
}

// NewGetCutOrderQueryHandler creates a handler for cut order projections.
// Requires a GORM database connection for query execution.
func NewGetCutOrderQueryHandler(db *gorm.DB) GetCutOrderQueryHandler {
	return GetCutOrderQueryHandler{
		db:    db,
		namer: services.NewDisplayNamer(),
	}
}

// Handle executes the projection for one cut order.
func (h GetCutOrderQueryHandler) Handle(
	ctx context.Context,
	query GetCutOrderQuery,
) (GetCutOrderQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetCutOrderQueryResponse{}, err
	}

	response, err := h.loadOrder(ctx, query.OrderID())
	if err != nil {
		return GetCutOrderQueryResponse{}, err
	}

	bundles, locationCodes, err := h.loadBundles(ctx, query.OrderID())
	if err != nil {
		return GetCutOrderQueryResponse{}, err
	}

	names := h.namer.Names(bundles)

	response.Bundles = make([]BundleResponse, 0, len(bundles))
	for _, b := range bundles {
		response.Bundles = append(response.Bundles, h.projectBundle(b, names[b.ID()], locationCodes))
	}

	return response, nil
}

// loadOrder reads the order row.
func (h GetCutOrderQueryHandler) loadOrder(ctx context.Context, orderID kernel.UUID) (GetCutOrderQueryResponse, error) {
	row := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			code,
			date,
			declared_bundle_count,
			active
		FROM cut_orders
		WHERE id = ?
	`, orderID.Bytes()).Row()

	var (
		id       uuid.UUID
		code     string
		date     time.Time
		declared int
		active   bool
	)
	if err := row.Scan(&id, &code, &date, &declared, &active); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return GetCutOrderQueryResponse{}, errs.NewObjectNotFoundError("cutOrder", orderID.String())
		}
		return GetCutOrderQueryResponse{}, err
	}

	responseID, err := kernel.UUIDFromBytes(id[:])
	if err != nil {
		return GetCutOrderQueryResponse{}, err
	}

	return GetCutOrderQueryResponse{
		ID:                  responseID,
		Code:                code,
		Date:                date,
		DeclaredBundleCount: declared,
		Active:              active,
	}, nil
}

// loadBundles reconstructs every bundle of the order, oldest first, along
// with the site codes referenced by bundles and their ledgers.
func (h GetCutOrderQueryHandler) loadBundles(
	ctx context.Context,
	orderID kernel.UUID,
) ([]*bundle.Bundle, map[kernel.UUID]string, error) {
	histories, locationCodes, err := h.loadHistories(ctx, orderID)
	if err != nil {
		return nil, nil, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			b.id,
			b.number,
			b.sheets,
			b.status,
			b.location_id,
			l.code,
			b.sscc,
			b.luid,
			b.created_at,
			b.version
		FROM bundles b
		LEFT JOIN locations l ON l.id = b.location_id
		WHERE b.order_id = ?
		ORDER BY b.created_at, b.id
	`, orderID.Bytes()).Rows()
	if err != nil {
		return nil, nil, err
	}
	defer rows.Close()

	var bundles []*bundle.Bundle
	for rows.Next() {
		var (
			id         uuid.UUID
			number     sql.NullInt64
			sheets     int
			status     int
			locationID uuid.NullUUID
			code       sql.NullString
			sscc       string
			luid       string
			createdAt  time.Time
			version    int
		)
		if err = rows.Scan(&id, &number, &sheets, &status, &locationID, &code, &sscc, &luid, &createdAt, &version); err != nil {
			return nil, nil, err
		}

		bundleID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, nil, idErr
		}

		var storedNumber *int
		if number.Valid {
			value := int(number.Int64)
			storedNumber = &value
		}

		var locRef *kernel.UUID
		if locationID.Valid {
			loc, locErr := kernel.UUIDFromBytes(locationID.UUID[:])
			if locErr != nil {
				return nil, nil, locErr
			}
			locRef = &loc
			if code.Valid {
				locationCodes[loc] = code.String
			}
		}

		restored, restoreErr := bundle.RestoreBundle(
			bundleID,
			orderID,
			bundle.NumberFromStored(storedNumber),
			sheets,
			bundle.Status(status),
			locRef,
			sscc,
			luid,
			createdAt,
			histories[bundleID],
			version,
		)
		if restoreErr != nil {
			return nil, nil, restoreErr
		}

		bundles = append(bundles, restored)
	}

	if err = rows.Err(); err != nil {
		return nil, nil, err
	}

	return bundles, locationCodes, nil
}

// loadHistories reads every ledger entry of the order's bundles, ordered
// oldest first per bundle with insertion order breaking timestamp ties.
func (h GetCutOrderQueryHandler) loadHistories(
	ctx context.Context,
	orderID kernel.UUID,
) (map[kernel.UUID][]bundle.HistoryEntry, map[kernel.UUID]string, error) {
	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			e.bundle_id,
			e.id,
			e.action,
			e.destination_id,
			l.code,
			e.work_order_number,
			e.occurred_at
		FROM bundle_history e
		LEFT JOIN locations l ON l.id = e.destination_id
		WHERE e.bundle_id IN (SELECT id FROM bundles WHERE order_id = ?)
		ORDER BY e.bundle_id, e.occurred_at, e.seq
	`, orderID.Bytes()).Rows()
	if err != nil {
		return nil, nil, err
	}
	defer rows.Close()

	histories := make(map[kernel.UUID][]bundle.HistoryEntry)
	locationCodes := make(map[kernel.UUID]string)

	for rows.Next() {
		var (
			bundleID      uuid.UUID
			entryID       uuid.UUID
			action        string
			destinationID uuid.NullUUID
			code          sql.NullString
			workOrder     string
			occurredAt    time.Time
		)
		if err = rows.Scan(&bundleID, &entryID, &action, &destinationID, &code, &workOrder, &occurredAt); err != nil {
			return nil, nil, err
		}

		owner, idErr := kernel.UUIDFromBytes(bundleID[:])
		if idErr != nil {
			return nil, nil, idErr
		}

		id, idErr := kernel.UUIDFromBytes(entryID[:])
		if idErr != nil {
			return nil, nil, idErr
		}

		parsedAction, actionErr := bundle.ActionFromString(action)
		if actionErr != nil {
			return nil, nil, actionErr
		}

		var destRef *kernel.UUID
		if destinationID.Valid {
			dest, destErr := kernel.UUIDFromBytes(destinationID.UUID[:])
			if destErr != nil {
				return nil, nil, destErr
			}
			destRef = &dest
			if code.Valid {
				locationCodes[dest] = code.String
			}
		}

		entry, entryErr := bundle.RestoreHistoryEntry(id, parsedAction, destRef, workOrder, occurredAt)
		if entryErr != nil {
			return nil, nil, entryErr
		}

		histories[owner] = append(histories[owner], entry)
	}

	if err = rows.Err(); err != nil {
		return nil, nil, err
	}

	return histories, locationCodes, nil
}

// projectBundle maps one domain bundle into its read model.
func (h GetCutOrderQueryHandler) projectBundle(
	b *bundle.Bundle,
	displayName string,
	locationCodes map[kernel.UUID]string,
) BundleResponse {
	response := BundleResponse{
		ID:              b.ID(),
		DisplayName:     displayName,
		Number:          b.Number().Stored(),
		Variant:         b.Number().Variant(),
		Sheets:          b.Sheets(),
		Status:          b.Status().String(),
		WorkOrderNumber: workOrderNone,
		SSCC:            b.SSCC(),
		LUID:            b.LUID(),
		CreatedAt:       b.CreatedAt(),
	}

	if base, ok := b.Number().Base(); ok {
		response.BaseNumber = &base
	}
	if loc := b.LocationID(); loc != nil {
		response.LocationCode = locationCodes[*loc]
	}
	if wo := b.CurrentWorkOrder(); wo != "" {
		response.WorkOrderNumber = wo
	}

	history := b.History()
	response.History = make([]HistoryEntryResponse, 0, len(history))
	for _, entry := range history {
		entryResponse := HistoryEntryResponse{
			Action:          entry.Action().String(),
			WorkOrderNumber: entry.WorkOrderNumber(),
			OccurredAt:      entry.OccurredAt(),
		}
		if dest := entry.DestinationID(); dest != nil {
			entryResponse.DestinationCode = locationCodes[*dest]
		}
		response.History = append(response.History, entryResponse)
	}

	return response
}
