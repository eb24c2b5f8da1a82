package memory

import (
	"context"
	"strings"
)

// AdminGate is a fixed-set capability check fed from process configuration.
type AdminGate struct {
	identities map[string]struct{}
}

func NewAdminGate(identities []string) *AdminGate {
	set := make(map[string]struct{}, len(identities))
	for _, identity := range identities {
		identity = strings.TrimSpace(identity)
		if identity != "" {
			set[identity] = struct{}{}
		}
	}
	return &AdminGate{identities: set}
}

func (g *AdminGate) IsAdministrator(_ context.Context, identity string) (bool, error) {
	_, ok := g.identities[strings.TrimSpace(identity)]
	return ok, nil
}
