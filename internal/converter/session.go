package converter

import (
	"roulette_casino/internal/api/dto/session"
	"roulette_casino/internal/model"
)

func ToPlayerResponse(p model.PlayerAccount) session.PlayerResponse {
	return session.PlayerResponse{
		ID:      p.ID,
		Name:    p.Name,
		Balance: p.Balance,
	}
}
