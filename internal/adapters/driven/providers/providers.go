// Package providers holds the per-provider OAuth clients. Each provider is
// one package supplying endpoint URLs and response-field mapping; the
// registry is the closed set the rest of the system dispatches through.
package providers

import (
	"net/http"
	"time"

	"github.com/blackburnd/portfolio-core/internal/adapters/driven/providers/google"
	"github.com/blackburnd/portfolio-core/internal/adapters/driven/providers/linkedin"
	"github.com/blackburnd/portfolio-core/internal/core/domain"
	"github.com/blackburnd/portfolio-core/internal/core/ports/driven"
)

// Ensure Registry implements the interface.
var _ driven.ProviderRegistry = (*Registry)(nil)

// requestTimeout bounds every outbound provider call.
const requestTimeout = 15 * time.Second

// Registry maps provider ids to their clients.
type Registry struct {
	clients map[domain.ProviderID]driven.ProviderClient
}

// NewRegistry creates the registry with all supported providers.
func NewRegistry() *Registry {
	httpClient := &http.Client{Timeout: requestTimeout}
	return &Registry{
		clients: map[domain.ProviderID]driven.ProviderClient{
			domain.ProviderGoogle:   google.NewClient(httpClient),
			domain.ProviderLinkedIn: linkedin.NewClient(httpClient),
		},
	}
}

// Get returns the client for a provider, or nil if unsupported.
func (r *Registry) Get(provider domain.ProviderID) driven.ProviderClient {
	return r.clients[provider]
}

// Descriptors returns static descriptors for all providers in display order.
func (r *Registry) Descriptors() []*domain.ProviderDescriptor {
	var descs []*domain.ProviderDescriptor
	for _, id := range domain.AllProviders() {
		if client, ok := r.clients[id]; ok {
			descs = append(descs, client.Descriptor())
		}
	}
	return descs
}
