// Package dispatcher routes input actions to handlers and coordinates execution.
//
// Actions arrive from the keymap, from Lua plugins and from batch mode on
// the command line. The dispatcher looks them up in two places:
//
//  1. Namespace Router: "orgmode.navigate" is routed to the handler
//     registered for the "orgmode" namespace.
//  2. Handler Registry: exact action names, used for application actions
//     such as "app.quit" and for commands defined by plugins.
//
// When an action is dispatched:
//
//  1. Pre-dispatch hooks run and may cancel the action
//  2. An ExecutionContext is built around the engine
//  3. The handler runs, with panic recovery unless disabled
//  4. Post-dispatch hooks run
//  5. Metrics are recorded (if enabled) and the outcome is logged
//
// An action nobody handles yields an error result wrapping ErrNoHandler.
//
// Built-in handlers live under handlers/: orgmode (outline navigation),
// cursor (motion), edit (undo/redo) and file (save/reload).
package dispatcher
