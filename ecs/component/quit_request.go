package component

type QuitRequest struct {
	Reason string
}

var QuitRequestComponent = NewComponent[QuitRequest]()
