package service

import (
	"github.com/deppfellow/person-api/internal/model"
	"github.com/deppfellow/person-api/internal/server"
)

// AuthService is a login stub: it accepts any password and echoes the username.
type AuthService struct {
	server *server.Server
}

func NewAuthService(s *server.Server) *AuthService {
	return &AuthService{
		server: s,
	}
}

func (as *AuthService) Login(req *model.LoginRequest) model.LoginResult {
	return model.LoginResult{
		Username: req.Username,
		Message:  model.LoginSuccessMessage,
	}
}
