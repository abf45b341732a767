package service

import (
	"github.com/deppfellow/person-api/internal/model"
	"github.com/deppfellow/person-api/internal/server"
)

type ContactService struct {
	server *server.Server
}

func NewContactService(s *server.Server) *ContactService {
	return &ContactService{
		server: s,
	}
}

// Submit accepts a contact message and returns the sender's User-Agent.
func (cs *ContactService) Submit(req *model.ContactRequest) string {
	cs.server.Logger.Debug().
		Str("email", req.Email).
		Bool("ads_cookie", req.Ads != nil).
		Int("message_length", len(req.Message)).
		Msg("contact message received")

	return req.UserAgent
}
