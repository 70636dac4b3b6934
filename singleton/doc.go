// Package singleton is a catalog of five variants of a lazily-initialized,
// process-wide singleton accessor, ordered from broken to recommended:
//
//  1. Naive — lazy, unsynchronized. Races on first access: two goroutines
//     can both construct, and callers can see different instances.
//  2. Locked — a mutex around every call. Correct, but every steady-state
//     read pays the full lock cost.
//  3. RacyDoubleChecked — the classic double-checked-locking bug: a plain
//     (non-atomic) fast-path read can observe a non-nil pointer to an
//     object whose field writes are not yet visible. Kept broken on
//     purpose, for contrast with DoubleChecked.
//  4. DoubleChecked — the same fast/slow-path structure made correct with
//     atomic.Pointer: the Load/Store pair gives the happens-before edge the
//     racy variant is missing, and the lock is never touched after
//     initialization.
//  5. Once — sync.Once does all of the above for you. Use this one.
//
// Every variant exposes the same contract: Get() returns the one shared
// instance, constructing it on first access. The instance is built by an
// init func injected at construction, is never replaced, and lives until
// process exit. Accessors must not be copied after first use — share the
// pointer returned by the New* constructor instead. Every variant except
// Naive embeds a mutex, a Once, or an atomic.Pointer, so go vet's
// copylocks check flags accidental copies.
//
// Construction is assumed infallible: init returns *T, not (*T, error).
// An initializer that can fail should record the error inside T, the same
// trade-off sync.Once makes (a panicking f still marks the Once done).
package singleton
