package hockey

// CheckGoals scores a goal when the puck reaches a goal-mouth line inside the
// opening. The puck reaching the +z end (paddle 1's end) counts for player 2
// and the -z end counts for player 1. Each goal resets the round. Both ends
// are checked every call with no guard against the other.
func CheckGoals(s *State) []Event {
	var events []Event
	half := s.Table.HalfHeight()

	if s.Puck.Position[1]+s.Puck.Radius >= half && s.Table.InGoalMouth(s.Puck.Position[0]) {
		events = append(events, goal(s, Player2))
	}
	if s.Puck.Position[1]-s.Puck.Radius <= -half && s.Table.InGoalMouth(s.Puck.Position[0]) {
		events = append(events, goal(s, Player1))
	}
	return events
}

func goal(s *State, scorer Side) Event {
	s.Score.add(scorer)
	ev := Goal{Scorer: scorer, Score: s.Score}
	Reset(s)
	return ev
}

// CheckWin ends the match when either side has reached WinScore: both
// scores go back to zero and the round is reset.
func CheckWin(s *State) (MatchWon, bool) {
	if s.Score.Player1 < WinScore && s.Score.Player2 < WinScore {
		return MatchWon{}, false
	}
	won := MatchWon{Winner: Player1, Final: s.Score}
	if s.Score.Player2 > s.Score.Player1 {
		won.Winner = Player2
	}
	s.Score = Score{}
	Reset(s)
	return won, true
}

// Reset puts every body back at its canonical start position with zero
// velocity. Scores are left alone.
func Reset(s *State) {
	for side := Player1; side <= Player2; side++ {
		p := s.Paddle(side)
		p.Position = s.Table.StartPosition(side)
		p.Velocity = Vec{}
	}
	s.Puck.Position = Vec{}
	s.Puck.Velocity = Vec{}
}
