package ui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
)

// pickerOverlay covers the canvas, shows a value picker at a fixed position
// and reports taps that land outside of it.
type pickerOverlay struct {
	widget.BaseWidget

	content   fyne.CanvasObject
	box       fyne.CanvasObject
	at        fyne.Position
	canvas    fyne.Canvas
	onOutside func()
}

func newPickerOverlay(content fyne.CanvasObject, c fyne.Canvas, at fyne.Position, onOutside func()) *pickerOverlay {
	bg := canvas.NewRectangle(theme.Color(theme.ColorNameOverlayBackground))
	o := &pickerOverlay{
		content:   content,
		box:       container.NewStack(bg, container.NewPadded(content)),
		at:        at,
		canvas:    c,
		onOutside: onOutside,
	}
	o.ExtendBaseWidget(o)
	return o
}

func (o *pickerOverlay) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(container.New(anchorLayout{at: o.at}, o.box))
}

// Show places the picker on top of the canvas.
func (o *pickerOverlay) Show() {
	o.box.Resize(o.box.MinSize())
	o.box.Move(o.at)
	o.Resize(o.canvas.Size())
	o.canvas.Overlays().Add(o)
	o.BaseWidget.Show()
}

// Hide removes the picker from the canvas.
func (o *pickerOverlay) Hide() {
	o.canvas.Overlays().Remove(o)
	o.BaseWidget.Hide()
}

func (o *pickerOverlay) Tapped(ev *fyne.PointEvent) {
	if !o.inside(ev.Position) && o.onOutside != nil {
		o.onOutside()
	}
}

func (o *pickerOverlay) TappedSecondary(ev *fyne.PointEvent) {
	o.Tapped(ev)
}

func (o *pickerOverlay) inside(p fyne.Position) bool {
	size := o.box.Size()
	return p.X >= o.at.X && p.Y >= o.at.Y &&
		p.X < o.at.X+size.Width && p.Y < o.at.Y+size.Height
}

// anchorLayout gives every object its minimum size at a fixed position.
type anchorLayout struct {
	at fyne.Position
}

func (l anchorLayout) Layout(objects []fyne.CanvasObject, _ fyne.Size) {
	for _, o := range objects {
		o.Resize(o.MinSize())
		o.Move(l.at)
	}
}

func (l anchorLayout) MinSize([]fyne.CanvasObject) fyne.Size {
	return fyne.NewSize(0, 0)
}
