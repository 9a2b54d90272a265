// Package filechat provides a local, CLI-based assistant for conversing with
// documents on disk. It discovers documents under configured folders, ingests
// them into a remote document-search index, provisions an assistant bound to
// that index, and streams cited answers back to an interactive prompt.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., sqlite/, openai/, mimetype/).
package filechat
