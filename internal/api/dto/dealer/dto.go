package dealer

type AskRequest struct {
	Question string `json:"question" validate:"required,max=500"`
}

type AskResponse struct {
	Answer string `json:"answer"`
}
