// Package ui contains the Bubble Tea program that drives the torrent client.
// Model is the session loop; everything it draws comes from a tree of
// components that route actions among themselves.
//
// Message flow:
//   - Bubble Tea invokes Model.Update with key presses, resizes, and actions
//     read from the action bus by a single outstanding waitForAction command.
//   - Key presses are translated according to the current mode (see
//     internal/action) and dispatched immediately. Bus actions are dispatched
//     in arrival order.
//   - Dispatch starts at the session tier (quit, mode switches, mutation
//     submission) and continues into MainWindow, which gives global popups
//     the first look before handing the action to the tab bar or the active
//     tab.
//
// Return contract of Component.HandleAction:
//   - nil: handled, nothing else to do.
//   - action.Render: handled, the screen must be redrawn.
//   - the same action: not handled. The session drops it.
//   - any other action: a follow-up, posted back onto the bus.
//
// A popup asks its parent to close it by returning action.Quit; the parent
// turns that into Render.
//
// Rendering happens only when a Render action is processed (or the terminal
// is resized). View returns the cached frame. Components read snapshots from
// internal/state and never hold a lock while drawing.
package ui
