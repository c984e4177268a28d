package converter

import (
	"roulette_casino/internal/api/dto/roulette"
	"roulette_casino/internal/model"
)

func ToBet(req roulette.BetRequest) (model.Bet, error) {
	return model.ParseBet(req.Kind, req.Pick, req.Amount)
}

func ToBetResponse(rec model.ResolutionRecord) roulette.BetResponse {
	return roulette.BetResponse{
		RoundID:  rec.RoundID.String(),
		Bet:      rec.Bet.String(),
		Slot:     int(rec.Slot),
		Color:    string(rec.Slot.Color()),
		Outcome:  string(rec.Outcome),
		Payout:   rec.Payout,
		Delta:    rec.Delta,
		Balance:  rec.ResultingBalance,
		Bankrupt: rec.Bankrupt(),
	}
}

func ToHistoryResponse(records []model.HistoryRecord) roulette.HistoryResponse {
	items := make([]roulette.HistoryItem, len(records))
	for i, h := range records {
		items[i] = roulette.HistoryItem{
			ID:        h.ID,
			Bet:       h.BetDesc,
			Amount:    h.Amount,
			Outcome:   string(h.Status),
			Slot:      int(h.OutcomeSlot),
			Payout:    h.Payout,
			CreatedAt: h.CreatedAt,
		}
	}
	return roulette.HistoryResponse{Items: items}
}

func ToStatsResponse(s model.SessionStats) roulette.StatsResponse {
	return roulette.StatsResponse{
		Spins:          s.Spins,
		Wins:           s.Wins,
		Losses:         s.Losses,
		TotalWagered:   s.TotalWagered,
		TotalPayout:    s.TotalPayout,
		RTP:            s.RTP,
		BiggestWin:     s.BiggestWin,
		BiggestLoss:    s.BiggestLoss,
		RecentOutcomes: slotsToInts(s.RecentOutcomes),
		HotNumbers:     slotsToInts(s.HotNumbers),
	}
}

func ToFrameMessage(f model.RevealFrame) roulette.RevealMessage {
	msg := roulette.RevealMessage{
		Type:      "frame",
		RoundID:   f.RoundID.String(),
		Phase:     f.Phase.String(),
		Fraction:  f.Fraction,
		Angle:     f.Angle,
		Done:      f.Done,
		Cancelled: f.Cancelled,
	}
	// Число открываем только в конце показа
	if f.Done {
		slot := int(f.Slot)
		msg.Slot = &slot
	}
	return msg
}

func ToCommentMessage(c model.DealerComment) roulette.RevealMessage {
	return roulette.RevealMessage{
		Type:    "comment",
		RoundID: c.RoundID.String(),
		Text:    c.Text,
	}
}

func slotsToInts(slots []model.Slot) []int {
	out := make([]int, len(slots))
	for i, s := range slots {
		out[i] = int(s)
	}
	return out
}
