package main

import "github.com/hajimehoshi/ebiten/v2"

// ebitenCursor hides and locks the pointer to the window while captured.
type ebitenCursor struct{}

func (ebitenCursor) SetHidden(hidden bool) {
	if hidden {
		ebiten.SetCursorMode(ebiten.CursorModeCaptured)
		return
	}
	ebiten.SetCursorMode(ebiten.CursorModeVisible)
}
