package coordinator

// Events pushed to clients
const (
	EventFriendOnline             = "friendOnline"
	EventFriendOffline            = "friendOffline"
	EventFriendIngame             = "friendIngame"
	EventFriendOffgame            = "friendOffgame"
	EventFriendMatchRequest       = "friendMatchRequest"
	EventDeleteFriendMatchRequest = "deleteFriendMatchRequest"
	EventNewMatch                 = "newMatch"
	EventMatch                    = "match"
	EventRandomMatchRequest       = "randomMatchRequest"
	EventCancelRandomMatchRequest = "cancelRandomMatchRequest"
	EventFriendChat               = "friendChat"
)

// RequestPayload is the body of friendMatchRequest and deleteFriendMatchRequest
type RequestPayload struct {
	Sender   string `json:"sender"`
	Receiver string `json:"receiver"`
}
