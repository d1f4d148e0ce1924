package lambda

import (
	"sync"

	"edge-header-policy/internal/config"
	"edge-header-policy/pkg/server"
)

// ContainerManager builds the service container once per execution environment
// and hands the same instance to every invocation.
type ContainerManager struct {
	container *server.Container
	err       error
	initOnce  sync.Once
	load      func() (*config.Config, error)
}

var (
	globalContainerManager *ContainerManager
	containerManagerOnce   sync.Once
)

// GetContainerManager returns the global container manager instance
func GetContainerManager() *ContainerManager {
	containerManagerOnce.Do(func() {
		globalContainerManager = NewContainerManager(config.GetOptimizedConfig)
	})
	return globalContainerManager
}

// NewContainerManager creates a manager that loads configuration with load
func NewContainerManager(load func() (*config.Config, error)) *ContainerManager {
	return &ContainerManager{load: load}
}

// GetContainer returns the service container, initializing it on first use.
// An initialization failure is sticky: the execution environment is unusable.
func (cm *ContainerManager) GetContainer() (*server.Container, error) {
	cm.initOnce.Do(func() {
		cfg, err := cm.load()
		if err != nil {
			cm.err = err
			return
		}
		cm.container, cm.err = server.NewContainer(cfg)
	})
	return cm.container, cm.err
}

// Handler returns a Lambda handler wired to the managed container
func (cm *ContainerManager) Handler() (*Handler, error) {
	container, err := cm.GetContainer()
	if err != nil {
		return nil, err
	}
	return NewHandler(container.HeaderPolicy, container.Logger), nil
}
