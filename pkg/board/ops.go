package board

import (
	"context"
	"encoding/json"
	"time"

	"github.com/tessella/gridlock/pkg/errors"
	"github.com/tessella/gridlock/pkg/grid"
	"github.com/tessella/gridlock/pkg/observability"
)

// Byte-level operations mirroring the engine entry points: JSON in, JSON
// out. These exist for callers that hold serialized state - the HTTP API and
// any host application embedding the engine behind a string boundary.

// OptimizeLayout compacts a serialized widget list and returns the
// repositioned widgets as JSON.
func OptimizeLayout(ctx context.Context, widgetsJSON, configJSON []byte) ([]byte, error) {
	widgets, cfg, err := parseLayoutArgs("optimize layout", widgetsJSON, configJSON)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	observability.Engine().OnOptimizeStart(ctx, len(widgets))

	out, err := marshalWidgets("optimize layout", grid.Optimize(widgets, cfg))
	observability.Engine().OnOptimizeComplete(ctx, len(widgets), time.Since(start), err)
	return out, err
}

// ResolveConflictsLayout reflows a serialized widget list around the widget
// being dragged. A draggedID matching no widget is not an error; the
// operation degrades to plain compaction.
func ResolveConflictsLayout(ctx context.Context, widgetsJSON, configJSON []byte, draggedID string) ([]byte, error) {
	widgets, cfg, err := parseLayoutArgs("resolve conflicts", widgetsJSON, configJSON)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	observability.Engine().OnResolveStart(ctx, len(widgets), draggedID)

	out, err := marshalWidgets("resolve conflicts", grid.ResolveConflicts(widgets, cfg, draggedID))
	observability.Engine().OnResolveComplete(ctx, len(widgets), draggedID, time.Since(start), err)
	return out, err
}

// FindBestPosition returns the first free position for a serialized new
// widget as JSON. Every existing widget counts as occupied; nothing moves.
func FindBestPosition(ctx context.Context, widgetsJSON, newWidgetJSON, configJSON []byte) ([]byte, error) {
	widgets, cfg, err := parseLayoutArgs("find best position", widgetsJSON, configJSON)
	if err != nil {
		return nil, err
	}

	var newWidget grid.Widget
	if err := json.Unmarshal(newWidgetJSON, &newWidget); err != nil {
		return nil, errors.Wrap(errors.ErrCodeDecode, err, "find best position: parse new widget")
	}

	start := time.Now()
	observability.Engine().OnPlaceStart(ctx, len(widgets))

	pos := grid.FindBestPosition(widgets, newWidget, cfg)
	out, err := json.Marshal(pos)
	if err != nil {
		err = errors.Wrap(errors.ErrCodeEncode, err, "find best position: marshal position")
	}
	observability.Engine().OnPlaceComplete(ctx, len(widgets), time.Since(start), err)
	return out, err
}

// parseLayoutArgs decodes the widget list and config shared by all three
// operations, tagging failures with the operation name.
func parseLayoutArgs(op string, widgetsJSON, configJSON []byte) ([]grid.Widget, grid.GridConfig, error) {
	var widgets []grid.Widget
	if err := json.Unmarshal(widgetsJSON, &widgets); err != nil {
		return nil, grid.GridConfig{}, errors.Wrap(errors.ErrCodeDecode, err, "%s: parse widgets", op)
	}
	var cfg grid.GridConfig
	if err := json.Unmarshal(configJSON, &cfg); err != nil {
		return nil, grid.GridConfig{}, errors.Wrap(errors.ErrCodeDecode, err, "%s: parse config", op)
	}
	return widgets, cfg, nil
}

func marshalWidgets(op string, widgets []grid.Widget) ([]byte, error) {
	out, err := json.Marshal(widgets)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeEncode, err, "%s: marshal widgets", op)
	}
	return out, nil
}
