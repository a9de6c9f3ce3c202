// Package viz renders simulations in the terminal.
//
// [Model] is a Bubble Tea program that draws a top-down view on a braille
// [Canvas] through a [Camera]. It either advances a universe live
// ([NewModel]) or replays frames read back from a trace ([NewReplayModel]).
// [FrameTable] and [DistancePlot] format recorded trace frames for the
// inspect and plot commands.
//
// # Key Bindings
//
//	Space     - Pause/Resume
//	R         - Restart from the first state
//	+/-       - Zoom
//	[/]       - Fewer/more steps per frame
//	Left/B    - Rewind 5 frames (replay only)
//	Right/F   - Fast-forward 5 frames (replay only)
//	Tab       - Centre on next body
//	Shift+Tab - Centre on previous body
//	T         - Cycle color themes
//	?         - Show help overlay
package viz
