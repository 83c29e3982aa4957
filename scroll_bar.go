package tview

import "github.com/gdamore/tcell/v2"

// eighths is the number of thumb steps per cell.
const eighths = 8

var (
	thumbLower = [eighths]string{"▁", "▂", "▃", "▄", "▅", "▆", "▇", "█"}
	thumbUpper = [eighths]string{"▔", "🮂", "🮃", "▀", "🮄", "🮅", "🮆", "█"}
)

// ScrollLengths are the content and viewport lengths of a scrolled view, in
// rows.
type ScrollLengths struct {
	ContentLen  int
	ViewportLen int
}

// ScrollBar is a one column vertical scroll bar. It is hidden while the
// content fits the viewport.
type ScrollBar struct {
	*Box

	lengths ScrollLengths
	offset  int

	track      string
	trackStyle tcell.Style
	thumbStyle tcell.Style

	// jump scrolls track clicks to the clicked position instead of paging.
	jump bool
}

// NewScrollBar returns a new scroll bar.
func NewScrollBar() *ScrollBar {
	return &ScrollBar{
		Box:        NewBox(),
		track:      " ",
		trackStyle: tcell.StyleDefault.Dim(true),
		thumbStyle: tcell.StyleDefault.Foreground(Styles.SecondaryTextColor),
	}
}

// SetLengths sets the content and viewport lengths.
func (s *ScrollBar) SetLengths(lengths ScrollLengths) *ScrollBar {
	lengths.ContentLen = max(lengths.ContentLen, 0)
	lengths.ViewportLen = max(lengths.ViewportLen, 0)
	if s.lengths != lengths {
		s.lengths = lengths
		s.MarkDirty()
	}
	return s
}

// SetOffset sets the scroll offset.
func (s *ScrollBar) SetOffset(offset int) *ScrollBar {
	offset = max(offset, 0)
	if s.offset != offset {
		s.offset = offset
		s.MarkDirty()
	}
	return s
}

// Offset returns the scroll offset.
func (s *ScrollBar) Offset() int {
	return s.offset
}

// SetTrack sets the glyph and style of the track behind the thumb.
func (s *ScrollBar) SetTrack(glyph string, style tcell.Style) *ScrollBar {
	s.track = glyph
	s.trackStyle = style
	s.MarkDirty()
	return s
}

// SetThumbStyle sets the style of the thumb.
func (s *ScrollBar) SetThumbStyle(style tcell.Style) *ScrollBar {
	s.thumbStyle = style
	s.MarkDirty()
	return s
}

// SetJumpToClick makes track clicks scroll to the clicked position. By
// default they page towards it.
func (s *ScrollBar) SetJumpToClick(jump bool) *ScrollBar {
	s.jump = jump
	return s
}

// thumb is the thumb position on a track, in eighths of a cell.
type thumb struct {
	track int
	start int
	size  int
}

func (t thumb) end() int {
	return t.start + t.size
}

// viewport returns the viewport length, falling back to the bar height.
func (s *ScrollBar) viewport(height int) int {
	if s.lengths.ViewportLen > 0 {
		return s.lengths.ViewportLen
	}
	return height
}

func (s *ScrollBar) maxOffset(height int) int {
	return max(s.lengths.ContentLen-s.viewport(height), 0)
}

// thumb returns the thumb on a track of height cells, and false when there
// is nothing to scroll.
func (s *ScrollBar) thumb(height int) (thumb, bool) {
	viewport := s.viewport(height)
	if height <= 0 || s.lengths.ContentLen <= viewport {
		return thumb{}, false
	}
	track := height * eighths
	size := min(max(track*viewport/s.lengths.ContentLen, eighths), track)
	offset := min(s.offset, s.maxOffset(height))
	return thumb{
		track: track,
		start: (track - size) * offset / s.maxOffset(height),
		size:  size,
	}, true
}

// glyph returns what to draw in the cell at row.
func (t thumb) glyph(row int) (string, bool) {
	top := row * eighths
	start := max(t.start, top)
	end := min(t.end(), top+eighths)
	if end <= start {
		return "", false
	}
	filled := end - start
	if start == top && filled < eighths {
		return thumbUpper[filled-1], true
	}
	return thumbLower[filled-1], true
}

// TrackClick returns the offset a click on row, relative to the inner rect,
// scrolls to. Clicks on the thumb are not handled.
func (s *ScrollBar) TrackClick(row int) (offset int, ok bool) {
	_, _, _, height := s.GetInnerRect()
	t, visible := s.thumb(height)
	if !visible || row < 0 || row >= height {
		return s.offset, false
	}

	at := row*eighths + eighths/2
	maxOffset := s.maxOffset(height)
	clamp := func(v int) int { return min(max(v, 0), maxOffset) }
	switch {
	case at >= t.start && at < t.end():
		return s.offset, false
	case s.jump:
		return clamp((at - t.size/2) * maxOffset / max(t.track-t.size, 1)), true
	case at < t.start:
		return clamp(s.offset - s.viewport(height)), true
	default:
		return clamp(s.offset + s.viewport(height)), true
	}
}

// Draw draws this primitive onto the screen.
func (s *ScrollBar) Draw(screen tcell.Screen) {
	s.DrawForSubclass(screen, s)

	x, y, _, height := s.GetInnerRect()
	t, visible := s.thumb(height)
	if !visible {
		return
	}
	for row := range height {
		if glyph, ok := t.glyph(row); ok {
			setCell(screen, x, y+row, glyph, s.thumbStyle)
		} else {
			setCell(screen, x, y+row, s.track, s.trackStyle)
		}
	}
}

var _ Primitive = &ScrollBar{}
