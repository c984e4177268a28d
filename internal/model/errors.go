package model

import "errors"

var (
	// ErrInsufficientFunds ставка больше текущего баланса
	ErrInsufficientFunds = errors.New("insufficient funds")
	// ErrInvalidBet некорректные параметры ставки
	ErrInvalidBet = errors.New("invalid bet parameters")
	// ErrCommentaryUnavailable сервис комментариев недоступен или не ответил вовремя
	ErrCommentaryUnavailable = errors.New("commentary unavailable")
	// ErrPersistence ошибка хранилища; баланс в памяти при этом уже зафиксирован
	ErrPersistence = errors.New("persistence failure")
	// ErrRevealInProgress колесо ещё крутится, новые ставки не принимаются
	ErrRevealInProgress = errors.New("reveal in progress")
	ErrNoSession        = errors.New("no active session")
	ErrPlayerNotFound   = errors.New("player not found")
	ErrInvalidName      = errors.New("invalid player name")
)
