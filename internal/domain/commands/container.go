package commands

import (
	"go.uber.org/dig"
)

// RegisterProviders registers all command providers with the DIG container.
func RegisterProviders(container *dig.Container) error {
	// Register command constructors
	if err := container.Provide(NewCloneCommand); err != nil {
		return err
	}
	if err := container.Provide(NewRefsCommand); err != nil {
		return err
	}

	// Bind interfaces to implementations
	if err := container.Provide(func(impl *CloneCommand) Clone {
		return impl
	}); err != nil {
		return err
	}
	if err := container.Provide(func(impl *RefsCommand) ListRefs {
		return impl
	}); err != nil {
		return err
	}

	return nil
}
