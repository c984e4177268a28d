package dealer

import (
	"net/http"

	dto "roulette_casino/internal/api/dto/dealer"
	"roulette_casino/internal/service"
	"roulette_casino/pkg/req"
	"roulette_casino/pkg/resp"
)

type HandlerDeps struct {
	Serv service.RouletteService
}

type Handler struct {
	serv service.RouletteService
}

func NewHandler(deps HandlerDeps) *Handler {
	return &Handler{serv: deps.Serv}
}

// Ask вопрос крупье. Ответ есть всегда, даже если модель недоступна.
func (h *Handler) Ask(w http.ResponseWriter, r *http.Request) {
	payload, err := req.DecodeValid[dto.AskRequest](r.Body)
	if err != nil {
		resp.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	answer := h.serv.AskDealer(r.Context(), payload.Question)

	resp.WriteJSONResponse(w, http.StatusOK, dto.AskResponse{Answer: answer})
}
