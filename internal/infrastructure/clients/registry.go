package clients

import (
	"github.com/whiteakyloff/metis-back-v2/internal/application/auth"
	"github.com/whiteakyloff/metis-back-v2/internal/service"
)

// Registry holds the configured external clients and implements the lookup
// interfaces of the auth use cases and the translation service.
type Registry struct {
	authClients        map[string]auth.AuthClient
	translationClients map[string]service.TranslationClient
}

// NewRegistry creates an empty client registry.
func NewRegistry() *Registry {
	return &Registry{
		authClients:        make(map[string]auth.AuthClient),
		translationClients: make(map[string]service.TranslationClient),
	}
}

// RegisterAuth adds an OAuth provider to the registry.
func (r *Registry) RegisterAuth(client auth.AuthClient) {
	r.authClients[client.Name()] = client
}

// RegisterTranslation adds a translation backend to the registry.
func (r *Registry) RegisterTranslation(client service.TranslationClient) {
	r.translationClients[client.Name()] = client
}

// Auth looks up an OAuth provider by name.
func (r *Registry) Auth(name string) (auth.AuthClient, bool) {
	c, ok := r.authClients[name]
	return c, ok
}

// Translation looks up a translation backend by name.
func (r *Registry) Translation(name string) (service.TranslationClient, bool) {
	c, ok := r.translationClients[name]
	return c, ok
}
