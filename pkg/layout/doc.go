// Package layout solves node geometry in two phases.
//
// Phase one, [Measure], runs leaves to root and gives every node a virtual
// size per axis: a percentage of the space its parent will offer plus a
// pixel amount. Automatic sizes are (100%, 0px); fit-content containers sum
// their children along the main axis (adding gaps) and take the maximum
// across the cross axis, plus their own padding.
//
// Phase two, [Place], runs root to leaves. Each node resolves its virtual
// size against the content box of its parent (or the viewport for roots),
// resolves margin and padding, and is positioned after its earlier siblings
// along the parent's main axis. Positions are box centers.
//
// [Solver] wraps both phases, keeps the transforms of the previous pass and
// reports which nodes changed, so the spatial index can update only those.
package layout
