// Package store persists client-side state between runs.
//
// The only state this client keeps is the current session, written to a
// fixed pair of files under the config directory and sealed at rest. Reads
// are deliberately forgiving: damaged or missing state means "not logged
// in", never a failure.
package store
