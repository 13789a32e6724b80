package game

// Phase is the turn phase of a game
type Phase int

const (
	AwaitingDraw Phase = iota
	HoldingCard
)

// PlayerPhase is the externally observable phase of a single player
type PlayerPhase int

const (
	Peeking PlayerPhase = iota
	Ready
	Waiting
	Drawing
	Holding
	Finished
)

var playerPhaseNames = map[PlayerPhase]string{
	Peeking:  "Peeking",
	Ready:    "Ready",
	Waiting:  "Waiting",
	Drawing:  "Drawing",
	Holding:  "Holding",
	Finished: "Finished",
}

func (p PlayerPhase) String() string {
	return playerPhaseNames[p]
}

// PlayerState is what anyone at the table may know about a player
type PlayerState struct {
	Name       string      `json:"name"`
	HandSize   int         `json:"handSize"`
	Phase      PlayerPhase `json:"phase"`
	PeeksLeft  int         `json:"peeksLeft"`
	CalledKabo bool        `json:"calledKabo"`
}
