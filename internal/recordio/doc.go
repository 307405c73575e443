// Package recordio parses the master's input file and writes its output
// file and console summary. It is kept deliberately thin: just the input
// and output contracts the orchestrator exchanges with the filesystem.
package recordio
