// Package viz is the terminal display sink: a Bubble Tea program that
// generates rows live and scrolls them down the screen.
//
// Each terminal cell shows two rows as a half block, foreground on top and
// background below. Rows wider than the terminal are sampled down.
//
// # Key Bindings
//
//	Space - Pause/Resume
//	R     - Reseed and restart
//	T     - Cycle themes
//	Q     - Quit
package viz
