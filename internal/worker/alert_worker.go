package worker

import (
	"context"
	"errors"
	"fmt"
	"time"

	"foodloss/internal/amqp"
	"foodloss/internal/core"
	"foodloss/internal/inventory"
	applog "foodloss/internal/log"
	"foodloss/internal/services"
)

// Inventory is the read side the alert worker needs.
type Inventory interface {
	ClassifyIngredient(ctx context.Context, id int64) (core.ClassifiedIngredient, error)
	ListIngredients(ctx context.Context) ([]core.ClassifiedIngredient, error)
}

// AlertWorker logs freshness alerts for newly registered ingredients and
// periodically summarizes the whole inventory.
type AlertWorker struct {
	inventory Inventory
	logger    *applog.Logger
}

func NewAlertWorker(inv Inventory, logger *applog.Logger) *AlertWorker {
	if logger == nil {
		logger = applog.New(applog.DefaultConfig())
	}
	return &AlertWorker{
		inventory: inv,
		logger:    logger.WithComponent(applog.ComponentWorker),
	}
}

// HandleIngredientRegistered classifies the announced ingredient. A missing
// ingredient is logged and acknowledged; any other error requeues the message.
func (w *AlertWorker) HandleIngredientRegistered(ctx context.Context, msg *amqp.IngredientRegisteredMessage) error {
	item, err := w.inventory.ClassifyIngredient(ctx, msg.ID)
	if err != nil {
		if errors.Is(err, inventory.ErrNotFound) {
			w.logger.WarnContext(ctx, "Announced ingredient not found, dropping message",
				applog.FieldIngredientID, msg.ID,
				"message_id", msg.MessageID)
			return nil
		}
		return fmt.Errorf("classify ingredient %d: %w", msg.ID, err)
	}

	w.alert(ctx, item)
	return nil
}

func (w *AlertWorker) alert(ctx context.Context, item core.ClassifiedIngredient) {
	fields := applog.NewFields().
		WithIngredient(item.ID, item.Name, string(item.StorageLocation)).
		WithFreshness(string(item.Status)).
		WithOperation(applog.OpClassify).
		ToSlice()

	switch item.Status {
	case core.StatusCritical:
		w.logger.WarnContext(ctx, "Ingredient should be used today", fields...)
	case core.StatusWarning:
		w.logger.InfoContext(ctx, "Ingredient should be used soon", fields...)
	default:
		w.logger.DebugContext(ctx, "Ingredient is fresh", fields...)
	}
}

// Sweep classifies every ingredient and logs the per-status counts.
func (w *AlertWorker) Sweep(ctx context.Context) (map[core.Freshness]int, error) {
	items, err := w.inventory.ListIngredients(ctx)
	if err != nil {
		return nil, fmt.Errorf("list ingredients: %w", err)
	}

	counts := services.StatusCounts(items)
	w.logger.InfoContext(ctx, "Freshness sweep completed",
		applog.FieldOperation, applog.OpSweep,
		"total", len(items),
		"critical", counts[core.StatusCritical],
		"warning", counts[core.StatusWarning],
		"normal", counts[core.StatusNormal])
	return counts, nil
}

// RunSweeps sweeps once immediately and then on every tick until ctx is done.
func (w *AlertWorker) RunSweeps(ctx context.Context, interval time.Duration) error {
	if _, err := w.Sweep(ctx); err != nil {
		w.logger.ErrorContext(ctx, "Freshness sweep failed", applog.FieldError, err)
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if _, err := w.Sweep(ctx); err != nil {
				w.logger.ErrorContext(ctx, "Freshness sweep failed", applog.FieldError, err)
			}
		}
	}
}
