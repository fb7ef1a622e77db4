package app

import (
	"github.com/vk/stepforge/internal/registry"
	"github.com/vk/stepforge/modules/pim"
)

// coreModules is the default connector set registered when the caller does
// not inject its own.
func coreModules() []registry.Module {
	return []registry.Module{
		&pim.Module{},
	}
}
