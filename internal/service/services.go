package service

import (
	"github.com/deppfellow/nzwalks/internal/lib/token"
	"github.com/deppfellow/nzwalks/internal/repository"
	"github.com/deppfellow/nzwalks/internal/server"
)

type Services struct {
	Region *RegionService
	Walk   *WalkService
	Image  *ImageService
	Auth   *AuthService
	Tokens *token.Manager
}

func NewServices(s *server.Server, repos *repository.Repositories) (*Services, error) {
	tokens := token.NewManager(&s.Config.Auth)

	var notifier WelcomeNotifier
	if s.Job != nil {
		notifier = s.Job
	}

	authService, err := NewAuthService(repos, tokens, &s.Config.Auth, notifier, s.Logger)
	if err != nil {
		return nil, err
	}

	return &Services{
		Region: NewRegionService(repos.Region),
		Walk:   NewWalkService(repos.Walk, repos.Region),
		Image:  NewImageService(repos.Image, s.Images),
		Auth:   authService,
		Tokens: tokens,
	}, nil
}
