// Package engine implements histdb's allocation-and-validation engine.
//
// The engine has three parts:
//
//   - Counter allocator (allocator.go): hands out session and boot epoch
//     identifiers. Identifiers come from the store's autoincrement keys inside
//     one committed transaction per call, so they are unique and increasing
//     across every process sharing the database.
//   - Insert validator (validate.go): parses "<history_id> <command>" fields
//     and checks them without touching the store.
//   - Commit engine (commit.go): checks the session exists and writes the
//     history entry in one transaction. Either both happen or neither does.
//
// Each operation is self-contained. The engine keeps no identifiers or
// sessions in memory between calls and never retries a failed operation;
// retrying is the caller's decision. Lock contention inside the store is
// bounded by the store's busy timeout and retry budget.
//
// Every failure is an *Error carrying one of the ErrorKind values. Only
// StoreUnavailable can be transient.
package engine
