/*
Package domain contains the core vocabulary shared by every layer of Quill.

It defines the kinds of transcript calls a walker makes, the control actions an
operator can raise mid-session, the error taxonomy used to decide whether a
session is retried, and the checkpoint record persisted by resumable sessions.
The package is kept free of I/O and persistence concerns.

# Key Entities

  - RequestKind: Datum, Question or Synthetic; decides whether an answer is logged.
  - ReportKind: BadResponse or Help; the feedback channel back to the operator.
  - Action: Cancel, Undo(n) or Restart(n), raised as an *ActionError.
  - Checkpoint: the answer log of a session, as stored by a ports.LogStore.
*/
package domain
