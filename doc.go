// Package shippin is the client-side session and authorization core for the
// Shippin delivery platform. It tracks who is signed in (seller or delivery
// partner), obtains and attaches bearer tokens to outbound API calls, and
// drives the rest of the client through session-state transitions.
//
// Session lifecycle:
//   - SessionStore owns the process-wide Session: at most one Identity plus a
//     status (anonymous, authenticating, authenticated, error). Only the
//     session operations (Auther, the register/reset command handlers) write
//     it; every view reads it through the store's accessors.
//   - Operations are serialized by a monotonically increasing sequence number:
//     an in-flight call that resolves after a later successful transition is
//     treated as stale and its effect on the Identity is discarded.
//
// Role dispatch:
//   - Both roles share one set of operations. EndpointsFor maps a Role to its
//     backend operation set so handlers stay role-agnostic instead of
//     branching per role at every call site.
//
// Notice sinks:
//   - NoticeSink receives user-facing notices (cold-start latency advisory,
//     login outcomes). Delivery is best-effort; sink errors are logged and
//     never block an operation.
package shippin
