package services

import (
	"github.com/sirupsen/logrus"
)

// ServiceContainer holds all service instances
type ServiceContainer struct {
	HeaderPolicy HeaderPolicyService
}

// ServiceConfig holds configuration for services
type ServiceConfig struct {
	Logger *logrus.Logger
}

// NewServiceContainer creates a new service container with all services
func NewServiceContainer(config *ServiceConfig) (*ServiceContainer, error) {
	if config == nil {
		config = &ServiceConfig{}
	}

	return &ServiceContainer{
		HeaderPolicy: NewHeaderPolicyService(config.Logger),
	}, nil
}
