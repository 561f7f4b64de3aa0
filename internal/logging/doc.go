// Package logging provides leveled logging for the spine-db tools.
//
// The level is resolved once from the environment: DEBUG=true forces
// debug logging, otherwise LOG_LEVEL selects one of debug, info, warn,
// error (default info). Messages below the active level are dropped.
package logging
