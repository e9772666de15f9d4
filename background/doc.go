// Package background implements the ambient particle animation drawn behind a page or window.
//
// A [Background] owns a fixed-shape [Particle] set, the logical [Viewport] and the handle of the
// pending frame. The host environment drives it through a small set of interfaces:
//
//   - [Host]: mount lookup, reduced-motion preference, visibility, frame request/cancel
//   - [Canvas]: the mount target, reporting its size and device pixel ratio
//   - [Surface]: the 2D immediate-mode drawing context
//   - [Listener]: resize and visibility notifications, implemented by [Background]
//
// # Lifecycle
//
// A new Background is stopped. [Background.Start] checks the mount and the reduced-motion
// preference once, sizes the canvas, seeds the particles and requests the first frame. Each
// frame updates then draws and requests the next one. Hiding the host cancels the pending
// frame; showing it again requests exactly one.
//
// # Thread Safety
//
// Background is NOT thread-safe. Every method, including frame callbacks, must run on the
// host's single UI goroutine.
package background
