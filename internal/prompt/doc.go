// Package prompt implements the interactive console session for repo-setup.
//
// The session is a scoped resource: it is opened once at the start of a run,
// answers the three ordered prompts (destination folder, repository URLs,
// package-manager preference), and is closed immediately after the last
// prompt is answered — before any external process is invoked. Once closed,
// no further prompt can be issued.
//
// The package also owns the parsing of prompt answers: semicolon splitting
// of the URL list and the case-insensitive manager token matching.
package prompt
