/*
Package ports defines the driven ports (interfaces) of Quill.

These interfaces decouple the value walkers and the session driver from the
concrete transcript medium and from checkpoint storage.

# Key Interfaces

  - Responder: receives scope framing and answered statements (display mode).
  - Requester: a Responder that can also ask for answers and report feedback (build mode).
  - LogStore: persists the answer log of resumable sessions.
*/
package ports
