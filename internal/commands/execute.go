package commands

import "fmt"

type Result struct {
	Message string
}

type Handlers struct {
	Add    func(AddArgs) (Result, error)
	Mode   func(ModeArgs) (Result, error)
	Adjust func(AdjustArgs) (Result, error)
	Play   func(PlayArgs) (Result, error)
	Volume func(VolumeArgs) (Result, error)
	Clear  func(ClearArgs) (Result, error)
	Track  func(TrackArgs) (Result, error)
	Save   func(SaveArgs) (Result, error)
}

func Execute(cmd Command, handlers Handlers) (Result, error) {
	switch cmd.Type {
	case TypeAdd:
		if handlers.Add == nil {
			return Result{}, &CommandError{Code: ErrCodeHandlerMissing, Message: "add handler not configured"}
		}
		return handlers.Add(*cmd.Add)
	case TypeMode:
		if handlers.Mode == nil {
			return Result{}, &CommandError{Code: ErrCodeHandlerMissing, Message: "mode handler not configured"}
		}
		return handlers.Mode(*cmd.Mode)
	case TypeAdjust:
		if handlers.Adjust == nil {
			return Result{}, &CommandError{Code: ErrCodeHandlerMissing, Message: "adjust handler not configured"}
		}
		return handlers.Adjust(*cmd.Adjust)
	case TypePlay:
		if handlers.Play == nil {
			return Result{}, &CommandError{Code: ErrCodeHandlerMissing, Message: "play handler not configured"}
		}
		return handlers.Play(*cmd.Play)
	case TypeVolume:
		if handlers.Volume == nil {
			return Result{}, &CommandError{Code: ErrCodeHandlerMissing, Message: "volume handler not configured"}
		}
		return handlers.Volume(*cmd.Volume)
	case TypeClear:
		if handlers.Clear == nil {
			return Result{}, &CommandError{Code: ErrCodeHandlerMissing, Message: "clear handler not configured"}
		}
		return handlers.Clear(*cmd.Clear)
	case TypeTrack:
		if handlers.Track == nil {
			return Result{}, &CommandError{Code: ErrCodeHandlerMissing, Message: "track handler not configured"}
		}
		return handlers.Track(*cmd.Track)
	case TypeSave:
		if handlers.Save == nil {
			return Result{}, &CommandError{Code: ErrCodeHandlerMissing, Message: "save handler not configured"}
		}
		return handlers.Save(*cmd.Save)
	default:
		return Result{}, &CommandError{Code: ErrCodeUnknownCommand, Message: fmt.Sprintf("unknown command type: %s", cmd.Type)}
	}
}
