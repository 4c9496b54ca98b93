package telegram

import (
	"strings"
)

// Callback action constants.
const (
	actionSolution = "solution"
	actionAgain    = "again"
	actionExport   = "export"
)

// callbackData represents structured callback data.
type callbackData struct {
	Action string
	Params []string
}

// encode creates callback string.
func (cd callbackData) encode() string {
	if len(cd.Params) == 0 {
		return cd.Action
	}
	return cd.Action + ":" + strings.Join(cd.Params, ":")
}

// decodeCallback parses callback data string.
func decodeCallback(data string) callbackData {
	parts := strings.Split(data, ":")
	return callbackData{
		Action: parts[0],
		Params: parts[1:],
	}
}

// buildSolutionCallback builds callback data revealing the answer of a question.
// Telegram limits callback data to 64 bytes; a uuid fits comfortably.
func buildSolutionCallback(mcqID string) string {
	return callbackData{
		Action: actionSolution,
		Params: []string{mcqID},
	}.encode()
}

func buildAgainCallback() string {
	return actionAgain
}

func buildExportCallback() string {
	return actionExport
}
