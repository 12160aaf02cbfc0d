// Package journey implements the capability façade at the core of a personal
// self-improvement application: persisted domain records (safe, profile, mood)
// that are mutated exclusively through named, schema-validated capabilities an
// autonomous chat agent invokes on the user's behalf.
//
// Responsibilities:
//   - Registry holds capabilities keyed by globally unique names and validates
//     declared arguments (presence, type, optional rule expressions) before a
//     handler ever touches the store.
//   - Handlers compose load -> transition -> save against pkg/store domains and
//     hand the effects produced by transitions to a Dispatcher.
//   - Evaluators (expr, CEL, optional JS) execute rule expressions and
//     read-only record queries; they never mutate state.
//
// Data flow:
//
//	agent -> Registry.Invoke(name, args) -> handler -> store.Domain.Update
//	       -> Dispatcher (activity entries, bus events) -> Result back to agent
//
// Persistence stays behind pkg/store; side-effect sinks stay behind
// pkg/activity and pkg/events. The UI layer is an external collaborator that
// re-reads the store on its own schedule.
package journey
