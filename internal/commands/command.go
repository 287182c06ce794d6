package commands

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/sandeepkv93/focusd/internal/model"
)

type Type string

const (
	TypeAdd    Type = "add"
	TypeMode   Type = "mode"
	TypeAdjust Type = "adjust"
	TypePlay   Type = "play"
	TypeVolume Type = "volume"
	TypeClear  Type = "clear"
	TypeTrack  Type = "track"
	TypeSave   Type = "save"
)

type TrackAction string

const (
	TrackAdd    TrackAction = "add"
	TrackRemove TrackAction = "rm"
	TrackRename TrackAction = "rename"
	TrackReset  TrackAction = "reset"
)

type ErrorCode string

const (
	ErrCodeEmptyInput      ErrorCode = "empty_input"
	ErrCodeUnknownCommand  ErrorCode = "unknown_command"
	ErrCodeInvalidArgument ErrorCode = "invalid_argument"
	ErrCodeHandlerMissing  ErrorCode = "handler_missing"
)

type CommandError struct {
	Code    ErrorCode
	Message string
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

type AddArgs struct {
	Title string
}

type ModeArgs struct {
	Mode model.Mode
}

// AdjustArgs carries a signed change in seconds.
type AdjustArgs struct {
	DeltaSec int
}

// PlayArgs addresses a track by its 1-based playlist position.
type PlayArgs struct {
	Index int
}

type VolumeArgs struct {
	Level int
}

type ClearArgs struct{}

// TrackArgs edits the playlist. Index is 1-based and unused by add and reset;
// Path is only set by add.
type TrackArgs struct {
	Action TrackAction
	Index  int
	Path   string
	Title  string
}

type SaveArgs struct{}

type Command struct {
	Type   Type
	Raw    string
	Add    *AddArgs
	Mode   *ModeArgs
	Adjust *AdjustArgs
	Play   *PlayArgs
	Volume *VolumeArgs
	Clear  *ClearArgs
	Track  *TrackArgs
	Save   *SaveArgs
}

func Parse(input string) (Command, error) {
	raw := strings.TrimSpace(input)
	if raw == "" {
		return Command{}, &CommandError{Code: ErrCodeEmptyInput, Message: "command is empty"}
	}
	if strings.HasPrefix(raw, "/") {
		raw = strings.TrimSpace(strings.TrimPrefix(raw, "/"))
	}
	if raw == "" {
		return Command{}, &CommandError{Code: ErrCodeEmptyInput, Message: "command is empty"}
	}

	parts := strings.Fields(raw)
	head := strings.ToLower(parts[0])
	args := parts[1:]

	switch Type(head) {
	case TypeAdd:
		return parseAdd(input, args)
	case TypeMode:
		return parseMode(input, args)
	case TypeAdjust:
		return parseAdjust(input, args)
	case TypePlay:
		return parsePlay(input, args)
	case TypeVolume:
		return parseVolume(input, args)
	case TypeClear:
		return Command{Type: TypeClear, Raw: input, Clear: &ClearArgs{}}, nil
	case TypeTrack:
		return parseTrack(input, args)
	case TypeSave:
		return Command{Type: TypeSave, Raw: input, Save: &SaveArgs{}}, nil
	default:
		return Command{}, &CommandError{Code: ErrCodeUnknownCommand, Message: fmt.Sprintf("unsupported command: %s", head)}
	}
}

func parseAdd(raw string, args []string) (Command, error) {
	if len(args) == 0 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "add requires a title"}
	}
	title := strings.TrimSpace(strings.Join(args, " "))
	if title == "" {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "add requires a title"}
	}
	return Command{Type: TypeAdd, Raw: raw, Add: &AddArgs{Title: title}}, nil
}

func parseMode(raw string, args []string) (Command, error) {
	if len(args) == 0 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "mode requires pomodoro, short or long"}
	}
	mode, err := model.ParseMode(strings.Join(args, " "))
	if err != nil {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: err.Error()}
	}
	return Command{Type: TypeMode, Raw: raw, Mode: &ModeArgs{Mode: mode}}, nil
}

// parseAdjust accepts minutes ("+5", "-10") or an explicit seconds suffix ("-90s").
func parseAdjust(raw string, args []string) (Command, error) {
	if len(args) != 1 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "adjust requires a signed amount like +5 or -90s"}
	}
	text := strings.ToLower(args[0])
	unit := 60
	switch {
	case strings.HasSuffix(text, "s"):
		unit = 1
		text = strings.TrimSuffix(text, "s")
	case strings.HasSuffix(text, "m"):
		text = strings.TrimSuffix(text, "m")
	}
	n, err := strconv.Atoi(text)
	if err != nil || n == 0 || n > model.MaxDurationSeconds/unit || n < -model.MaxDurationSeconds/unit {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("invalid adjust amount: %s", args[0])}
	}
	return Command{Type: TypeAdjust, Raw: raw, Adjust: &AdjustArgs{DeltaSec: n * unit}}, nil
}

func parsePlay(raw string, args []string) (Command, error) {
	if len(args) != 1 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "play requires a track number"}
	}
	n, err := strconv.Atoi(args[0])
	if err != nil || n <= 0 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("invalid track number: %s", args[0])}
	}
	return Command{Type: TypePlay, Raw: raw, Play: &PlayArgs{Index: n}}, nil
}

func parseVolume(raw string, args []string) (Command, error) {
	if len(args) != 1 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "volume requires a level 0-100"}
	}
	n, err := strconv.Atoi(strings.TrimSuffix(args[0], "%"))
	if err != nil || n < 0 || n > 100 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("invalid volume: %s", args[0])}
	}
	return Command{Type: TypeVolume, Raw: raw, Volume: &VolumeArgs{Level: n}}, nil
}

// parseTrack accepts "add <path> [title]", "rm <n>", "rename <n> <title>" and
// "reset". A missing title on add falls back to the file name.
func parseTrack(raw string, args []string) (Command, error) {
	usage := &CommandError{Code: ErrCodeInvalidArgument, Message: "track requires add <path> [title], rm <n>, rename <n> <title> or reset"}
	if len(args) == 0 {
		return Command{}, usage
	}
	action := TrackAction(strings.ToLower(args[0]))
	rest := args[1:]
	out := TrackArgs{Action: action}
	switch action {
	case TrackAdd:
		if len(rest) == 0 {
			return Command{}, usage
		}
		out.Path = rest[0]
		out.Title = strings.Join(rest[1:], " ")
		if out.Title == "" {
			base := filepath.Base(out.Path)
			out.Title = strings.TrimSuffix(base, filepath.Ext(base))
		}
	case TrackRemove, TrackRename:
		if len(rest) == 0 || (action == TrackRename && len(rest) < 2) || (action == TrackRemove && len(rest) != 1) {
			return Command{}, usage
		}
		n, err := strconv.Atoi(rest[0])
		if err != nil || n <= 0 {
			return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("invalid track number: %s", rest[0])}
		}
		out.Index = n
		out.Title = strings.Join(rest[1:], " ")
	case TrackReset:
		if len(rest) != 0 {
			return Command{}, usage
		}
	default:
		return Command{}, usage
	}
	return Command{Type: TypeTrack, Raw: raw, Track: &out}, nil
}
