package response

import "github.com/km-silat/km-silat-api/internal/domain"

type LoginResponse struct {
	Token string      `json:"token"`
	User  domain.User `json:"user"`
}

type Message struct {
	Message string `json:"message"`
}

type DBHealth struct {
	Status     string `json:"status"`
	Categories int64  `json:"categories"`
}
