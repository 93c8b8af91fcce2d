// Package body defines the rigid bodies managed by a simulation space.
//
// Three variants exist, discriminated by [Kind]:
//
//   - [Element]: a dynamic body owned by an external physics element
//   - [Block]: a static terrain proxy
//   - [Generic]: a plain dynamic body with no owner
//
// A body's current transform and motion are swapped whole through atomic
// pointers, so the solver worker may write them while the caller context
// reads them for rendering. The previous-frame snapshot ([RigidBody.Frame])
// is only ever touched from the caller context.
package body
