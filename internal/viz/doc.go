// Package viz renders a quick-return mechanism in the terminal.
//
//   - [Canvas]: braille pixel canvas
//   - [View], [DrawMechanism]: project and draw one solved pose
//   - [Animator]: Bubble Tea model that turns the crank
//   - [Output]: where a pose or an animation goes (display, stream or file)
//
// # Key Bindings
//
//	Space - Pause/Resume
//	[ ]   - Step the crank back/forward
//	R     - Reset to the start angle
//	T     - Cycle color themes
//	G     - Toggle GIF recording
//	S     - Save the frame as SVG
//	?     - Show help overlay
//	Q     - Quit
package viz
