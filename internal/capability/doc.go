// Package capability defines the external-collaborator contracts the core
// engine consumes but never implements: tokenizers, completion sources, the
// system clipboard, and a buffer's language Mode. Concrete tokenizer
// families, completion backends, and renderer-facing code live outside this
// module (per spec.md's "Out of scope" list); this package only pins down
// the interfaces the engine calls through.
package capability
