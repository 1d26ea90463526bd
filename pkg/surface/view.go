package surface

// View is a widget-like surface with an optional image and background.
// Either drawable may be replaced at any time; sinks read them on each call.
type View struct {
	// Image is the foreground drawable, preferred when present.
	Image *Drawable
	// Background is painted when there is no Image.
	Background *Drawable
	// MeasuredWidth and MeasuredHeight are the laid-out size of the view,
	// used for snapshots when the drawable has no intrinsic size.
	MeasuredWidth  int
	MeasuredHeight int
}

// TargetDrawable returns the image drawable if present, else the background.
func (v *View) TargetDrawable() *Drawable {
	if v == nil {
		return nil
	}
	if v.Image != nil {
		return v.Image
	}
	return v.Background
}
