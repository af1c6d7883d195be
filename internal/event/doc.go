// Package event is a small synchronous publish/subscribe bus.
//
// Topics are dot separated ("outline.toggle", "document.saved").
// Subscription patterns may use "*" for exactly one segment and "**" for
// zero or more trailing segments:
//
//	bus := event.NewBus(event.WithLogger(logger))
//	id, _ := bus.Subscribe("outline.*", func(ev event.Event) error {
//		logger.Info("outline changed", "topic", ev.Topic)
//		return nil
//	})
//	defer bus.Unsubscribe(id)
//
// Publish delivers to every matching subscriber on the caller's goroutine,
// in priority order. A failing or panicking handler does not stop delivery
// to the others; its error is returned joined with the rest.
package event
