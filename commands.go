package tview

// Command is an effect a handler asks the event loop to carry out once the
// handler returned. nil means nothing to do.
type Command any

// BatchCommand runs its commands in order.
type BatchCommand []Command

// AppendCommand returns a command running current, then next. Batches are
// flattened and nil commands dropped.
func AppendCommand(current, next Command) Command {
	switch {
	case next == nil:
		return current
	case current == nil:
		return next
	}
	return append(batchOf(current), batchOf(next)...)
}

func batchOf(cmd Command) BatchCommand {
	if batch, ok := cmd.(BatchCommand); ok {
		return append(BatchCommand(nil), batch...)
	}
	return BatchCommand{cmd}
}

type (
	// SetFocusCommand moves the keyboard focus to Target.
	SetFocusCommand struct{ Target Primitive }
	// RedrawCommand draws the screen after the event.
	RedrawCommand struct{}
	// QuitCommand stops the application.
	QuitCommand struct{}
	// ConsumeEventCommand tells a container that the event was handled and
	// must not reach other children.
	ConsumeEventCommand struct{}
)
