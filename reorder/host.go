package reorder

// Host is the list the engine drives.
//
//go:generate mockgen -source=host.go -destination=mocks/mock_host.go -package=mocks
type Host interface {
	// ScrollToOffset asks the list to scroll to an absolute content offset.
	// The request is fire-and-forget; completion is observed through the
	// next scroll notification.
	ScrollToOffset(offset int, animated bool)
	// MeasureContainer measures the container's current screen position and
	// extent and reports them through done, possibly later on the event loop.
	MeasureContainer(done func(pos, extent int))
}

// Handlers are the application callbacks. Every field is optional.
type Handlers struct {
	// OnArmed is called when an item signals a drag start.
	OnArmed func(index int)
	// OnDragBegin is called once the pointer is captured.
	OnDragBegin func(index int)
	// OnDragEnd is called when the pointer is released, whether or not a
	// reorder follows.
	OnDragEnd func()
	// OnHoverChanged is called whenever the candidate drop slot changes.
	OnHoverChanged func(index int)
	// OnReordered applies the reorder. It gates further drags until it
	// returns.
	OnReordered ReorderFunc

	// Pass-through of collaborator notifications.
	OnScroll          func(offset int)
	OnLayout          func(key string, pos, extent int)
	OnContainerLayout func(pos, extent int)
}

// ItemProps is handed to the item renderer for every rendered item.
type ItemProps struct {
	Key   string
	Index int
	// Active is set for the dragged item.
	Active bool
	// Offset is the item's current visual offset along the axis: the pan for
	// the dragged item, the animated displacement for the others.
	Offset int

	// DragStart arms a drag of this item.
	DragStart func()
	// DragEnd signals that the press on this item ended.
	DragEnd func()
	// Layout reports the item's measured position and extent.
	Layout LayoutReporter
}
