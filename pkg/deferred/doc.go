// Package deferred provides the pending-value handle used throughout the
// hydration pipeline.
//
// Loader fields, lazily loaded route modules, and wire values decoded from
// their deferred form are all represented as *Deferred: a value that may not
// exist yet, settles exactly once, and is consumed with Await.
//
// Example:
//
//	d := deferred.Go(func() (any, error) {
//	    return fetchUser(ctx)
//	})
//	user, err := d.Await(ctx)
package deferred
