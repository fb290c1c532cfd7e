package game

// DebugState holds the debug overlay flags. It is owned by the Game that
// created it and handed to whoever needs it.
type DebugState struct {
	ShowHUD bool // Show fps, particle and line counts
}

// Toggle flips the HUD flag and returns the new value
func (d *DebugState) Toggle() bool {
	d.ShowHUD = !d.ShowHUD
	return d.ShowHUD
}
