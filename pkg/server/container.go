package server

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"edge-header-policy/internal/config"
	"edge-header-policy/internal/services"
)

// Container holds all application dependencies
type Container struct {
	Config       *config.Config
	Logger       *logrus.Logger
	HeaderPolicy services.HeaderPolicyService

	services *services.ServiceContainer
}

// NewContainer creates a new dependency injection container
func NewContainer(cfg *config.Config) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}

	logger, err := config.NewLogger(cfg.Logging, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	serviceContainer, err := services.NewServiceContainer(&services.ServiceConfig{
		Logger: logger,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create service container: %w", err)
	}

	return &Container{
		Config:       cfg,
		Logger:       logger,
		HeaderPolicy: serviceContainer.HeaderPolicy,
		services:     serviceContainer,
	}, nil
}

// Close releases container resources
func (c *Container) Close() error {
	c.services = nil
	return nil
}
