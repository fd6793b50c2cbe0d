package orders

import (
	"context"
	"fmt"

	"restaurant/internal/repository"
	"restaurant/pkg/apperrors"
	"restaurant/pkg/models"

	"github.com/doug-martin/goqu/v9"
)

type ProcessingRepository interface {
	InsertRecord(ctx context.Context, orderID, staffID int) (*models.OrderProcessingRecord, error)
	GetRecord(ctx context.Context, id int) (*models.OrderProcessingRecord, error)
	TransitionRecord(ctx context.Context, id int, from, to models.ProcessingStatus) (*models.OrderProcessingRecord, error)
}

type processingRepositoryImpl struct {
	repository *repository.Repository
}

func NewProcessingRepository(r *repository.Repository) ProcessingRepository {
	return &processingRepositoryImpl{repository: r}
}

var processingColumns = []interface{}{
	"id", "order_id", "staff_id", "status", "picked_at", "completed_at",
}

// InsertRecord claims an order for a staff member. The partial unique
// index on order_processing(order_id) for non-completed rows makes the
// store linearize concurrent claims: the loser's insert fails with a
// unique violation, which surfaces as a conflict.
func (r *processingRepositoryImpl) InsertRecord(ctx context.Context, orderID, staffID int) (*models.OrderProcessingRecord, error) {
	query := r.repository.GoquDBWrapper.Insert("order_processing").
		Rows(goqu.Record{
			"order_id":  orderID,
			"staff_id":  staffID,
			"status":    string(models.ProcessingPicked),
			"picked_at": goqu.L("NOW()"),
		}).
		Returning(processingColumns...)

	var record models.OrderProcessingRecord
	found, err := query.Executor().ScanStructContext(ctx, &record)
	if err != nil {
		if apperrors.IsUniqueViolation(err) {
			return nil, apperrors.Conflict(fmt.Sprintf("order %d is already picked", orderID))
		}
		if apperrors.IsForeignKeyViolation(err) {
			return nil, apperrors.NotFound("order", orderID)
		}
		return nil, fmt.Errorf("failed to insert processing record: %w", err)
	}
	if !found {
		return nil, fmt.Errorf("insert processing record returned no row")
	}

	return &record, nil
}

func (r *processingRepositoryImpl) GetRecord(ctx context.Context, id int) (*models.OrderProcessingRecord, error) {
	var record models.OrderProcessingRecord
	query := r.repository.GoquDBWrapper.
		Select(processingColumns...).
		From("order_processing").
		Where(goqu.Ex{"id": id})

	found, err := query.Executor().ScanStructContext(ctx, &record)
	if err != nil {
		return nil, apperrors.StoreUnavailable(err)
	}
	if !found {
		return nil, apperrors.NotFound("processing record", id)
	}

	return &record, nil
}

// TransitionRecord applies a status change conditionally on the current
// status, so two concurrent advances cannot both apply. Completing a
// record stamps completed_at.
func (r *processingRepositoryImpl) TransitionRecord(ctx context.Context, id int, from, to models.ProcessingStatus) (*models.OrderProcessingRecord, error) {
	record := goqu.Record{"status": string(to)}
	if to == models.ProcessingCompleted {
		record["completed_at"] = goqu.L("NOW()")
	}

	query := r.repository.GoquDBWrapper.Update("order_processing").
		Set(record).
		Where(goqu.Ex{
			"id":     id,
			"status": string(from),
		}).
		Returning(processingColumns...)

	var updated models.OrderProcessingRecord
	found, err := query.Executor().ScanStructContext(ctx, &updated)
	if err != nil {
		return nil, fmt.Errorf("failed to transition processing record: %w", err)
	}
	if !found {
		return nil, apperrors.Conflict(fmt.Sprintf("processing record %d changed concurrently", id))
	}

	return &updated, nil
}
