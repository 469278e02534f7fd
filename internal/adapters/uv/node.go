package uv

import (
	"context"

	"github.com/grindlemire/graft"
	"github.com/hypercompute/seedlock/internal/adapters/config"
	"github.com/hypercompute/seedlock/internal/adapters/logger"
	"github.com/hypercompute/seedlock/internal/core/ports"
)

// NodeID is the unique identifier for the resolver runner Graft node.
const NodeID graft.ID = "adapter.resolver"

func init() {
	graft.Register(graft.Node[ports.ResolverRunner]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{config.NodeID, logger.NodeID},
		Run: func(ctx context.Context) (ports.ResolverRunner, error) {
			loader, err := graft.Dep[ports.ConfigLoader](ctx)
			if err != nil {
				return nil, err
			}

			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}

			// The binary comes from the default config location; an explicit
			// --config file still overrides everything else at run time.
			cfg, err := loader.Load("")
			if err != nil {
				return nil, err
			}

			return NewRunner(cfg.ResolverBin, log), nil
		},
	})
}
