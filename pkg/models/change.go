package models

import "github.com/google/uuid"

// Change is a single entry of the change log: a value or name in a file that
// was replaced during a run.
type Change struct {
	Path     string
	Original string
	Updated  string
}

// RunSummary reports what a rekey run did.
type RunSummary struct {
	RunID              uuid.UUID
	OutputRoot         string
	LogPath            string
	FilesProcessed     int
	FilesSkipped       int
	ChangesLogged      int
	FilesRelocated     int
	DirectoriesRenamed int
}
