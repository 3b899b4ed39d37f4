package game

// Outbound payloads. Field names match what the mobile client already
// parses, so they stay camelCase and carry millisecond time limits.

type SearchingMessage struct {
	Type    string `json:"type"` // "searching"
	Message string `json:"message"`
}

type MatchFoundMessage struct {
	Type      string `json:"type"` // "match_found"
	GameID    string `json:"gameId"`
	Opponent  string `json:"opponent"`
	Phase     Phase  `json:"phase"`
	TimeLimit int64  `json:"timeLimit"`
}

type TeamSelectedConfirmMessage struct {
	Type string `json:"type"` // "team_selected_confirm"
	Team string `json:"team"`
}

type TeamDisplayMessage struct {
	Type         string `json:"type"` // "team_display"
	PlayerTeam   string `json:"playerTeam"`
	OpponentTeam string `json:"opponentTeam"`
	TimeLimit    int64  `json:"timeLimit"`
}

type GameStartedMessage struct {
	Type         string    `json:"type"` // "game_started"
	QuestionText string    `json:"questionText"`
	Teams        [2]string `json:"teams"`
	TimeLimit    int64     `json:"timeLimit"`
}

type WrongAnswerMessage struct {
	Type    string `json:"type"` // "wrong_answer"
	Message string `json:"message"`
}

type GameFinishedMessage struct {
	Type         string `json:"type"`   // "game_finished"
	Winner       string `json:"winner"` // display name, empty on a draw
	Won          bool   `json:"won"`
	Points       int    `json:"points"`
	Reason       string `json:"reason,omitempty"`
	QuestionText string `json:"questionText"`
	PlayerTeam   string `json:"playerTeam"`
	OpponentTeam string `json:"opponentTeam"`
	PlayerName   string `json:"playerName"`
	OpponentName string `json:"opponentName"`
}
