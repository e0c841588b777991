// Package ui contains the Bubble Tea program that draws the player and
// forwards terminal input to the event pipeline.
//
// Message flow:
//   - Bubble Tea invokes Model.Update with incoming messages. Key, mouse and
//     resize messages are converted to event.Event values and pushed onto
//     the pipeline's source; the model never mutates application state in
//     response to input itself.
//   - A periodic tick redraws the screen so playback progress and the
//     results of completed client requests show up, and quits the program
//     once the pipeline has cleared UI.IsRunning.
//
// State ownership:
//   - All application state lives in internal/state.Shared. View takes the
//     player, data and UI read locks one at a time and never holds two.
//   - The only value View writes back is UI.ProgressBarRect, the cells of the
//     progress bar, which the pipeline uses to turn clicks into seeks.
package ui
