/*
Package prompt provides the transport decorators that turn a raw transcript
medium into a correctable session.

  - Compact folds single-child scopes into compound labels ("Order -> id -> uint32").
  - Meta interprets operator meta-commands (!undo, !restart, !cancel, !help).
  - Replay logs answers and feeds them back into a fresh walk after an undo or restart.

The build driver composes them as Replay(Meta(Compact(transport))); the
display driver uses Meta(Compact(transport)).
*/
package prompt
