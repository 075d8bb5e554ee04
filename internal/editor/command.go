package editor

// Direction names the cursor movement targets.
type Direction int

const (
	Up Direction = iota
	Down
	Left
	Right
	PageUp
	PageDown
	Home
	End
)

type CommandKind int

const (
	CmdInsertChar CommandKind = iota
	CmdInsertNewline
	CmdDeleteForward
	CmdDeleteBackward
	CmdMove
	CmdToggleLineMove
	CmdMoveLine
	CmdFind
	CmdDeleteLine
	CmdSetName
)

// Command is one discrete editing or navigation step. The input layer
// produces them one at a time and each runs to completion before the next
// is accepted.
type Command struct {
	Kind  CommandKind
	Ch    string    // CmdInsertChar: the grapheme cluster to insert
	Dir   Direction // CmdMove, CmdMoveLine
	Query string    // CmdFind
	Name  string    // CmdSetName
}
